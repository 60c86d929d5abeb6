// Package store provides storage abstractions for the ReqWise server.
//
// This package defines interfaces for database operations, allowing the
// server endpoints to be decoupled from the specific database implementation.
// This enables easier testing with mocks and potential support for different
// storage backends.
//
// # Available Stores
//
//   - UsersStore: Account lookup and registration
//   - ProjectsStore: Project CRUD and listing
//   - RequirementsStore: Requirement CRUD and per-project listing
//
// # Usage
//
//	users := gorm.NewUsersStore(db)
//	user, err := users.GetUserByEmail("alice@example.com")
//	if err != nil {
//	    if errors.Is(err, store.ErrNotFound) {
//	        // Handle not found
//	    }
//	}
package store
