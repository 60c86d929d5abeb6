package gorm

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"reqwise/pkg/model"
	"reqwise/pkg/server/store"
)

// Ensure UsersStore implements store.UsersStore
var _ store.UsersStore = (*UsersStore)(nil)

// UsersStore implements store.UsersStore using GORM
type UsersStore struct {
	db *gorm.DB
}

// NewUsersStore creates a new UsersStore
func NewUsersStore(db *gorm.DB) *UsersStore {
	return &UsersStore{db: db}
}

// GetUserByEmail retrieves a user by email
func (s *UsersStore) GetUserByEmail(email string) (*model.User, error) {
	var user model.User
	tx := s.db.Where("email = ?", email).First(&user)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, store.ErrNotFound
		}
		return nil, tx.Error
	}
	return &user, nil
}

// GetUserByUsername retrieves a user by username
func (s *UsersStore) GetUserByUsername(username string) (*model.User, error) {
	var user model.User
	tx := s.db.Where("username = ?", username).First(&user)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, store.ErrNotFound
		}
		return nil, tx.Error
	}
	return &user, nil
}

// CreateUser inserts a new user record
func (s *UsersStore) CreateUser(user *model.User) error {
	if err := s.db.Create(user).Error; err != nil {
		// Unique index on username and email; a concurrent registration
		// can still slip past the handler's pre-check.
		if strings.Contains(err.Error(), "duplicate key") {
			return store.ErrConflict
		}
		return err
	}
	return nil
}
