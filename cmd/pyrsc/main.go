package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"pyrsc/internal/prof"
	"pyrsc/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "pyrsc",
	Short: "Strict Python-subset compiler frontend",
	Long:  `pyrsc checks a strict, fully annotated Python subset and lowers it to a typed IR`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if path, _ := cmd.Root().PersistentFlags().GetString("cpu-profile"); path != "" {
			if err := prof.StartCPU(path); err != nil {
				return fmt.Errorf("cannot start CPU profile: %w", err)
			}
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Root().PersistentFlags()
		if path, _ := flags.GetString("cpu-profile"); path != "" {
			prof.StopCPU()
		}
		if path, _ := flags.GetString("mem-profile"); path != "" {
			if err := prof.WriteMem(path); err != nil {
				return fmt.Errorf("cannot write heap profile: %w", err)
			}
		}
		return nil
	},
}

func main() {
	rootCmd.Version = version.Version
	rootCmd.SilenceUsage = true

	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(astCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(emitMIRCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|always|never)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to show")
	rootCmd.PersistentFlags().String("cpu-profile", "", "write a CPU profile to the given file")
	rootCmd.PersistentFlags().String("mem-profile", "", "write a heap profile to the given file")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// useColor resolves the --color mode against the output terminal.
func useColor(cmd *cobra.Command, f *os.File) bool {
	mode, _ := cmd.Root().PersistentFlags().GetString("color")
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default:
		return isTerminal(f)
	}
}

func maxDiagnostics(cmd *cobra.Command) int {
	n, _ := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	return n
}
