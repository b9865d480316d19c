package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// cliFlags holds all command-line flags.
type cliFlags struct {
	config     string
	options    []string
	extensions []string
	output     string
	workers    int
	quiet      bool
	verbose    bool
	version    bool
	help       bool
}

// parseFlags parses args (without the program name) and returns positional args.
func parseFlags(args []string) (*cliFlags, []string, error) {
	fs := flag.NewFlagSet("commonmark", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	f := &cliFlags{}

	fs.StringVarP(&f.config, "config", "c", "", "site config file (default: _config.yml in working directory)")
	fs.StringSliceVarP(&f.options, "option", "O", nil, "rendering option, repeatable (e.g. SMART)")
	fs.StringSliceVarP(&f.extensions, "extension", "e", nil, "syntax extension, repeatable (e.g. table)")
	fs.StringVarP(&f.output, "output", "o", "", "output directory (default: stdout)")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel conversions (0 = auto)")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed timing")
	fs.BoolVar(&f.version, "version", false, "show version information")
	fs.BoolVarP(&f.help, "help", "h", false, "show help")

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}
