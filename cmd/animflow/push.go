package main

import (
	"fmt"

	"github.com/aretw0/animflow/internal/cli"
	"github.com/spf13/cobra"
)

var pushCmd = &cobra.Command{
	Use:   "push <file>",
	Short: "Upload a graph document to Redis",
	Long:  `Stores the graph under its name on the --redis server and notifies watchers.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := newLogger(cmd)
		if err != nil {
			return err
		}
		name, err := cli.Push(cmd.Context(), newSource(cmd, logger), args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), newStyle(cmd).Success("pushed "+name))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(pushCmd)
}
