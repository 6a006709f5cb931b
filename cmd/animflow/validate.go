package main

import (
	"fmt"

	"github.com/aretw0/animflow/internal/cli"
	"github.com/aretw0/animflow/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <graph>",
	Short: "Check a graph for authoring problems",
	Long: `Reports repaired ids, missing initial states, dangling transitions,
unknown tags, parameter mismatches and states no transition can reach.
<graph> is a document path or a graph name in --dir (or --redis).`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := newLogger(cmd)
		if err != nil {
			return err
		}
		g, err := newSource(cmd, logger).Resolve(args[0])
		if err != nil {
			return err
		}

		opts := cli.ValidateOptions{Style: newStyle(cmd), Logger: logger}
		if pretty, _ := cmd.Flags().GetBool("pretty"); pretty {
			opts.Render = tui.NewRenderer()
		}
		diags, err := cli.Validate(cmd.OutOrStdout(), g, opts)
		if err != nil {
			return err
		}

		if strict, _ := cmd.Flags().GetBool("strict"); strict && len(diags) > 0 {
			return fmt.Errorf("%d issue(s) found", len(diags))
		}
		return nil
	},
}

func init() {
	validateCmd.Flags().Bool("strict", false, "Exit with an error when any issue is found")
	validateCmd.Flags().Bool("pretty", false, "Render a Markdown report")
	rootCmd.AddCommand(validateCmd)
}
