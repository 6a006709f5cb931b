package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/animflow/internal/cli"
	"github.com/aretw0/animflow/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "animflow",
	Short: "animflow runs data-driven animation state machines",
	Long: `animflow validates, visualizes and simulates animation flow graphs
authored as YAML, JSON or TOML documents.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("dir", ".", "Directory containing graph documents")
	rootCmd.PersistentFlags().Bool("loam", false, "Treat --dir as a Loam vault of Markdown graph documents")
	rootCmd.PersistentFlags().String("redis", "", "Load graphs from the Redis server at this address instead of --dir")
	rootCmd.PersistentFlags().String("log-level", "warn", "Log level: debug, info, warn, error or off")
	rootCmd.PersistentFlags().Bool("no-color", false, "Disable colored output")
}

func newLogger(cmd *cobra.Command) (*slog.Logger, error) {
	level, _ := cmd.Flags().GetString("log-level")
	return cli.NewLogger(os.Stderr, level)
}

func newStyle(cmd *cobra.Command) tui.Style {
	noColor, _ := cmd.Flags().GetBool("no-color")
	return tui.NewStyle(noColor)
}

func newSource(cmd *cobra.Command, logger *slog.Logger) cli.Source {
	dir, _ := cmd.Flags().GetString("dir")
	vault, _ := cmd.Flags().GetBool("loam")
	addr, _ := cmd.Flags().GetString("redis")
	return cli.Source{Dir: dir, Loam: vault, RedisAddr: addr, Logger: logger}
}
