package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"reqwise/pkg/db"
)

// dbSetupCmd represents the db setup command
var dbSetupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Create the ReqWise tables",
	Long: `Create the users, projects and requirements tables if they do not
already exist. Safe to run repeatedly.

Example:
  reqwisectl db setup`,
	Run: func(cmd *cobra.Command, args []string) {
		database, err := db.Connect(db.Config{})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Unable to connect to DB: %v\n", err)
			os.Exit(1)
		}

		if err := db.Setup(database); err != nil {
			fmt.Fprintf(os.Stderr, "Schema setup failed: %v\n", err)
			os.Exit(1)
		}

		fmt.Println("Database schema is up to date.")
	},
}

func init() {
	dbCmd.AddCommand(dbSetupCmd)
}
