package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/animflow"
	"github.com/aretw0/animflow/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of animflow",
	Run: func(cmd *cobra.Command, args []string) {
		version := strings.TrimSpace(animflow.Version)
		if short, _ := cmd.Flags().GetBool("short"); short {
			fmt.Fprintf(cmd.OutOrStdout(), "animflow version %s\n", version)
			return
		}
		tui.PrintBanner(cmd.OutOrStdout(), newStyle(cmd).Profile, version)
	},
}

func init() {
	versionCmd.Flags().Bool("short", false, "Print only the version line")
	rootCmd.AddCommand(versionCmd)
}
