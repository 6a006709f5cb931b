package main

import (
	"github.com/aretw0/animflow/internal/cli"
	"github.com/spf13/cobra"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate <graph>",
	Short: "Run a graph headless against a software animator",
	Long: `Ticks the graph with a fixed delta, applies scripted parameter writes
and prints every state change.

  animflow simulate combat.yaml --ticks 20 --set Attack=true@2 --set Attack=false@3`,
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

		ticks, _ := cmd.Flags().GetInt("ticks")
		dt, _ := cmd.Flags().GetFloat64("dt")
		sets, _ := cmd.Flags().GetStringArray("set")
		frames, _ := cmd.Flags().GetInt("frames")
		fps, _ := cmd.Flags().GetFloat64("fps")
		metrics, _ := cmd.Flags().GetBool("metrics")

		_, err = cli.Simulate(cmd.OutOrStdout(), g, cli.SimulateOptions{
			Ticks:   ticks,
			DT:      dt,
			Sets:    sets,
			Clips:   cli.ClipOptions{Frames: frames, FPS: fps},
			Metrics: metrics,
			Style:   newStyle(cmd),
			Logger:  logger,
		})
		return err
	},
}

func init() {
	simulateCmd.Flags().Int("ticks", 60, "Number of ticks to run")
	simulateCmd.Flags().Float64("dt", 1.0/60, "Seconds per tick")
	simulateCmd.Flags().StringArray("set", nil, "Parameter write as name=value[@tick] (repeatable)")
	simulateCmd.Flags().Int("frames", 8, "Frames per simulated clip")
	simulateCmd.Flags().Float64("fps", 12, "Frame rate of simulated clips")
	simulateCmd.Flags().Bool("metrics", false, "Print Prometheus metrics after the run")
	rootCmd.AddCommand(simulateCmd)
}
