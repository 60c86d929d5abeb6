package main

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"reqwise/pkg/auth"
	"reqwise/pkg/db"
	"reqwise/pkg/model"
	"reqwise/pkg/server/store"
	gormstore "reqwise/pkg/server/store/gorm"
)

// userCreateCmd represents the user create command
var userCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a user account",
	Long: `Create a user account with the given role.

If no password is provided, a random one is generated and printed to STDOUT.

Example:
  reqwisectl user create --username alice --email alice@example.com --role owner
  reqwisectl user create --username bob --email bob@example.com --password secret-pass`,
	Run: func(cmd *cobra.Command, args []string) {
		username, _ := cmd.Flags().GetString("username")
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")
		role, _ := cmd.Flags().GetString("role")

		generated, err := createUser(username, email, password, model.Role(role))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create user: %v\n", err)
			os.Exit(1)
		}

		fmt.Fprintf(os.Stderr, "Created %s account '%s'\n", role, username)
		if generated != "" {
			fmt.Printf("Password for %s: %s\n", username, generated)
		}
	},
}

func init() {
	userCmd.AddCommand(userCreateCmd)
	userCreateCmd.Flags().StringP("username", "u", "", "Username (required)")
	userCreateCmd.Flags().StringP("email", "e", "", "Email address (required)")
	userCreateCmd.Flags().StringP("password", "p", "", "Password (generated if omitted)")
	userCreateCmd.Flags().StringP("role", "r", string(model.RoleCustomer), "Account role (customer or owner)")
	_ = userCreateCmd.MarkFlagRequired("username")
	_ = userCreateCmd.MarkFlagRequired("email")
}

// createUser inserts the account. Returns the generated password when the
// caller did not supply one, otherwise the empty string.
func createUser(username, email, password string, role model.Role) (string, error) {
	if !role.Valid() {
		return "", fmt.Errorf("role must be customer or owner, got %q", role)
	}

	generated := ""
	if password == "" {
		p, err := generatePassword()
		if err != nil {
			return "", fmt.Errorf("failed to generate password: %w", err)
		}
		password = p
		generated = p
	}

	database, err := db.Connect(db.Config{})
	if err != nil {
		return "", err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	users := gormstore.NewUsersStore(database)
	user := &model.User{
		Username:       username,
		Email:          email,
		HashedPassword: hash,
		Role:           role,
	}

	if err := users.CreateUser(user); err != nil {
		if errors.Is(err, store.ErrConflict) {
			return "", fmt.Errorf("an account with that email or username already exists")
		}
		return "", err
	}

	return generated, nil
}

func generatePassword() (string, error) {
	buf := make([]byte, 24)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(buf), nil
}
