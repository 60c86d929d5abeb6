package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"reqwise/pkg/auth"
	"reqwise/pkg/db"
	"reqwise/pkg/model"
	gormstore "reqwise/pkg/server/store/gorm"
)

// userResetPasswordCmd represents the user reset-password command
var userResetPasswordCmd = &cobra.Command{
	Use:   "reset-password <email>",
	Short: "Reset an account's password",
	Long: `Reset the password for the account with the given email.

The new password is printed to stdout. Existing tokens stay valid until
they expire.

Example:
  reqwisectl user reset-password alice@example.com`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		email := args[0]

		password, err := resetPassword(email)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to reset password for %s: %v\n", email, err)
			os.Exit(1)
		}
		fmt.Println(password)
	},
}

func init() {
	userCmd.AddCommand(userResetPasswordCmd)
}

func resetPassword(email string) (string, error) {
	database, err := db.Connect(db.Config{})
	if err != nil {
		return "", err
	}

	users := gormstore.NewUsersStore(database)
	user, err := users.GetUserByEmail(email)
	if err != nil {
		return "", fmt.Errorf("account not found: %s", email)
	}

	password, err := generatePassword()
	if err != nil {
		return "", fmt.Errorf("failed to generate password: %w", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	err = database.Model(&model.User{}).
		Where("id = ?", user.ID).
		Update("hashed_password", hash).Error
	if err != nil {
		return "", fmt.Errorf("failed to update credentials: %w", err)
	}

	return password, nil
}
