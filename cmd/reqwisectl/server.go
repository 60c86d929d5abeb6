package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"reqwise/pkg/auth"
	"reqwise/pkg/config"
	"reqwise/pkg/db"
	"reqwise/pkg/server"
	"reqwise/pkg/server/endpoints"
	gormstore "reqwise/pkg/server/store/gorm"
)

func defaultBindAddress() string {
	if addr := os.Getenv("BIND_ADDRESS"); addr != "" {
		return addr
	}
	return "0.0.0.0"
}

func defaultPort() string {
	if port := os.Getenv("PORT"); port != "" {
		return port
	}
	return "8000"
}

func defaultPortInt() int {
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			return p
		}
	}
	return 8000
}

// serverCmd represents the server command
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Run the ReqWise application server",
	Long: `Run the ReqWise application server.

To run the server requires the environment variables SECRET_KEY and
DATABASE_URL. Tables are created on startup if they do not exist.`,
	Run: func(cmd *cobra.Command, args []string) {
		// Validate required environment variables first (fail fast)
		secret, err := config.SecretKey()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		if os.Getenv("DATABASE_URL") == "" {
			fmt.Fprintln(os.Stderr, "DATABASE_URL environment variable is required")
			os.Exit(1)
		}

		cfg := config.Get()
		if err := cfg.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
			os.Exit(1)
		}

		database, err := db.Connect(db.Config{})
		if err != nil {
			fmt.Fprintln(os.Stderr, "Unable to connect to DB:", err)
			os.Exit(1)
		}

		if err := db.Setup(database); err != nil {
			fmt.Fprintln(os.Stderr, "Unable to create schema:", err)
			os.Exit(1)
		}

		codec := auth.NewCodec(secret)
		users := gormstore.NewUsersStore(database)
		projects := gormstore.NewProjectsStore(database)
		requirements := gormstore.NewRequirementsStore(database)

		host, _ := cmd.Flags().GetString("bind-address")
		port, _ := cmd.Flags().GetString("port")
		s := server.NewServer(database, cfg, codec, users, projects, requirements, host, port)

		endpoints.RegisterAll(s)

		watch, _ := cmd.Flags().GetBool("watch-config")
		if watch {
			go func() {
				err := config.Watch(context.Background(), func(c *config.Config) {
					log.Printf("Configuration reloaded from %s\n", c.ConfigFilePath())
				})
				if err != nil {
					log.Printf("Config watch stopped: %v\n", err)
				}
			}()
		}

		log.Printf("Running server at http://%s:%s...\n", host, port)
		log.Fatal(s.Start())
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)

	serverCmd.Flags().StringP("port", "p", defaultPort(), "server listen port")
	serverCmd.Flags().StringP("bind-address", "b", defaultBindAddress(), "server bind address")
	serverCmd.Flags().Bool("watch-config", false, "reload the config file when it changes")
}
