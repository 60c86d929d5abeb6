package store

import "reqwise/pkg/model"

// UsersStore abstracts account storage operations
type UsersStore interface {
	// GetUserByEmail retrieves a user by email
	GetUserByEmail(email string) (*model.User, error)

	// GetUserByUsername retrieves a user by username
	GetUserByUsername(username string) (*model.User, error)

	// CreateUser inserts a new user record
	CreateUser(user *model.User) error
}
