package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"pyrsc/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(os.Stdout, "pyrsc %s\n", version.Full())
	},
}
