package main

import (
	"fmt"
	"io"
)

// printUsage prints the usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: commonmark [flags] [file|dir ...]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert CommonMark files to HTML. Reads stdin when no input is given.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <dir>        Write <name>.html files into dir (default: stdout)")
	fmt.Fprintln(w, "  -c, --config <path>       Site config file (default: ./_config.yml)")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel conversions (0 = auto)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Rendering:")
	fmt.Fprintln(w, "  -O, --option <token>      Rendering option, repeatable")
	fmt.Fprintln(w, "                            DEFAULT, FOOTNOTES, FULL_INFO_STRING,")
	fmt.Fprintln(w, "                            GITHUB_PRE_LANG, HARDBREAKS, NOBREAKS, SMART,")
	fmt.Fprintln(w, "                            STRIKETHROUGH_DOUBLE_TILDE, UNSAFE, VALIDATE_UTF8")
	fmt.Fprintln(w, "  -e, --extension <token>   Syntax extension, repeatable")
	fmt.Fprintln(w, "                            autolink, strikethrough, table, tagfilter, tasklist")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show detailed timing")
	fmt.Fprintln(w, "      --version             Show version information")
	fmt.Fprintln(w, "  -h, --help                Show this help")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Config file section:")
	fmt.Fprintln(w, "  commonmark:")
	fmt.Fprintln(w, "    options: [\"SMART\", \"FOOTNOTES\"]")
	fmt.Fprintln(w, "    extensions: [\"strikethrough\", \"autolink\", \"table\"]")
}
