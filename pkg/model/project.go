package model

import "time"

// Project is a body of work owned by exactly one owner account. Ownership
// of everything beneath a project is derived from OwnerID at check time,
// never denormalized onto child rows.
type Project struct {
	ID          uint      `gorm:"column:id;primaryKey" json:"id"`
	Name        string    `gorm:"column:name;index;not null" json:"name"`
	Description string    `gorm:"column:description" json:"description,omitempty"`
	OwnerID     uint      `gorm:"column:owner_id;not null;index" json:"owner_id"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"-"`
}

func (Project) TableName() string {
	return "projects"
}
