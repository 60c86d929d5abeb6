package model

import "time"

// Role is the closed set of account roles. There are exactly two and they
// have disjoint capabilities; gates compare by exact equality, there is no
// hierarchy.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleOwner    Role = "owner"
)

// Valid reports whether r is one of the two known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleOwner:
		return true
	}
	return false
}

func (r Role) String() string {
	return string(r)
}

// User represents an account. The role is fixed at registration and the
// record is read-only from the auth core's perspective.
type User struct {
	ID             uint      `gorm:"column:id;primaryKey" json:"id"`
	Username       string    `gorm:"column:username;uniqueIndex;not null" json:"username"`
	Email          string    `gorm:"column:email;uniqueIndex;not null" json:"email"`
	HashedPassword string    `gorm:"column:hashed_password;not null" json:"-"`
	Role           Role      `gorm:"column:role;not null;default:customer" json:"role"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime" json:"-"`
}

func (User) TableName() string {
	return "users"
}
