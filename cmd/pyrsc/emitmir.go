package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"pyrsc/internal/diagfmt"
	"pyrsc/internal/driver"
	"pyrsc/internal/mir"
)

var emitMIRCmd = &cobra.Command{
	Use:   "emit-mir [flags] file.py",
	Short: "Lower a source file and print the typed IR",
	Long: `Emit-mir runs the full pipeline and, when the program is free of
errors, prints the lowered module in its textual form.`,
	Args: cobra.ExactArgs(1),
	RunE: runEmitMIR,
}

func runEmitMIR(cmd *cobra.Command, args []string) error {
	timings, _ := cmd.Root().PersistentFlags().GetBool("timings")
	result, err := driver.Lower(args[0], driver.Options{
		MaxDiagnostics: maxDiagnostics(cmd),
		EnableTimings:  timings,
	})
	if err != nil {
		return fmt.Errorf("lowering failed: %w", err)
	}

	if result.Bag.Len() > 0 {
		opts := diagfmt.PrettyOpts{Color: useColor(cmd, os.Stderr), ShowNotes: true}
		diagfmt.Pretty(os.Stderr, result.Bag, result.FileSet, opts)
	}
	if result.Module == nil {
		os.Exit(1)
	}
	if err := mir.DumpModule(os.Stdout, result.Module, result.Sema.Types); err != nil {
		return fmt.Errorf("failed to print module: %w", err)
	}
	if timings && result.Timing != nil {
		printTimings(os.Stderr, result.Timing)
	}
	return nil
}
