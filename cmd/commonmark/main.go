package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	// Parse flags first to get verbose; runMain reports parse errors.
	flags, _, err := parseFlags(os.Args[1:])
	verbose := err == nil && flags.verbose

	// Configure GOMAXPROCS with conditional logging
	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	if verbose {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
			fmt.Fprintf(os.Stderr, format+"\n", args...)
		}))
	} else {
		_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))
	}

	os.Exit(runMain(os.Args, DefaultDeps()))
}

// runMain runs the CLI and returns the process exit code.
func runMain(args []string, deps *Dependencies) int {
	flags, inputs, err := parseFlags(args[1:])
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n\n", err)
		printUsage(deps.Stderr)
		return ExitUsage
	}

	if flags.help {
		printUsage(deps.Stdout)
		return ExitSuccess
	}
	if flags.version {
		printVersion(deps.Stdout)
		return ExitSuccess
	}

	ctx, stop := notifyContext(context.Background())
	defer stop()

	if err := runConvert(ctx, inputs, flags, deps); err != nil {
		fmt.Fprintln(deps.Stderr, err)
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// printVersion prints the version line.
func printVersion(w io.Writer) {
	fmt.Fprintf(w, "commonmark %s\n", Version)
}
