package main

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

// Dependencies holds injectable dependencies for testability.
type Dependencies struct {
	Stdin   io.Reader
	Stdout  io.Writer
	Stderr  io.Writer
	WorkDir string // Directory searched for a site config when --config is unset

	// StdinIsTerminal disables the stdin fallback so an interactive run
	// without inputs fails instead of waiting for input.
	StdinIsTerminal bool
}

// DefaultDeps returns production dependencies.
func DefaultDeps() *Dependencies {
	wd, err := os.Getwd()
	if err != nil {
		wd = "."
	}
	return &Dependencies{
		Stdin:   os.Stdin,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		WorkDir: wd,

		StdinIsTerminal: isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd()),
	}
}
