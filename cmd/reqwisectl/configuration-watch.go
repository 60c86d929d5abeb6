package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"reqwise/pkg/config"
)

// configurationWatchCmd represents the configuration watch command
var configurationWatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the config file and print reloads",
	Long: `Watch the configuration file and reload it whenever it changes.

Each reload prints the new effective configuration. Stop with Ctrl-C.

Example:
  reqwisectl configuration watch`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := watchConfiguration(); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to watch configuration: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	configurationCmd.AddCommand(configurationWatchCmd)
}

func watchConfiguration() error {
	cfg := config.Get()
	fmt.Printf("Watching %s\n", cfg.ConfigFilePath())
	fmt.Print(cfg.FormatText())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return config.Watch(ctx, func(c *config.Config) {
		fmt.Println("Configuration reloaded:")
		fmt.Print(c.FormatText())
	})
}
