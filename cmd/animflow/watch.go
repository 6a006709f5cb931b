package main

import (
	"context"
	"fmt"

	"github.com/aretw0/animflow/internal/cli"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-validate graphs whenever they change",
	Long:  `Validates every graph in --dir (or --redis), then again on each change, until interrupted.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := newLogger(cmd)
		if err != nil {
			return err
		}
		loader, closeFn, err := newSource(cmd, logger).Loader()
		if err != nil {
			return err
		}
		defer closeFn()

		wl, ok := loader.(cli.WatchLoader)
		if !ok {
			return fmt.Errorf("graph backend does not support watching")
		}

		ctx := cli.NewSignalContext(context.Background())
		defer ctx.Cancel()

		err = cli.Watch(ctx, cmd.OutOrStdout(), wl, cli.ValidateOptions{Style: newStyle(cmd), Logger: logger})
		if sig := ctx.Signal(); sig != nil {
			logger.Info("Stopping watcher", "signal", sig)
		}
		return err
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
