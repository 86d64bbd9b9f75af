package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"pyrsc/internal/diagfmt"
	"pyrsc/internal/driver"
)

var astCmd = &cobra.Command{
	Use:   "ast [flags] file.py",
	Short: "Parse a source file and print its syntax tree",
	Args:  cobra.ExactArgs(1),
	RunE:  runAST,
}

func runAST(cmd *cobra.Command, args []string) error {
	result, err := driver.Diagnose(args[0], driver.Options{
		Stage:          driver.StageParse,
		MaxDiagnostics: maxDiagnostics(cmd),
	})
	if err != nil {
		return fmt.Errorf("parse failed: %w", err)
	}

	if result.Bag.Len() > 0 {
		opts := diagfmt.PrettyOpts{Color: useColor(cmd, os.Stderr), ShowNotes: true}
		diagfmt.Pretty(os.Stderr, result.Bag, result.FileSet, opts)
	}
	if result.Builder != nil {
		diagfmt.DumpAST(os.Stdout, result.Builder, result.ASTFile)
	}
	if result.HasErrors() {
		os.Exit(1)
	}
	return nil
}
