package main

import (
	"fmt"

	"github.com/aretw0/animflow/internal/compiler"
	"github.com/aretw0/animflow/internal/presentation/graph"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph <graph>",
	Short: "Export the flow graph visualization",
	Long:  `Outputs a Mermaid diagram (graph TD) of the validated graph.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := newLogger(cmd)
		if err != nil {
			return err
		}
		g, err := newSource(cmd, logger).Resolve(args[0])
		if err != nil {
			return err
		}

		flow := compiler.New(g, compiler.WithLogger(logger))
		flow.Validate()
		fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(flow.Graph(), nil))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
}
