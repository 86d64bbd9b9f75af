package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"pyrsc/internal/project"
)

var initCmd = &cobra.Command{
	Use:   "init [flags] [dir]",
	Short: "Create a project manifest in a directory",
	Long: `Init writes a starter ` + project.ManifestName + ` into the given directory
(the current directory by default). The package name defaults to the
directory's base name.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func init() {
	initCmd.Flags().String("name", "", "package name (defaults to the directory name)")
}

func runInit(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return err
	}
	name, _ := cmd.Flags().GetString("name")
	if name == "" {
		name = filepath.Base(abs)
	}

	if err := os.MkdirAll(abs, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", abs, err)
	}
	manifestPath := filepath.Join(abs, project.ManifestName)
	if err := project.WriteDefault(manifestPath, name); err != nil {
		return err
	}

	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")
	if !quiet {
		fmt.Fprintf(os.Stdout, "created %s\n", manifestPath)
	}
	return nil
}
