package model

import "time"

// RequirementType classifies how essential a requirement is.
type RequirementType string

const (
	TypeMustHave   RequirementType = "must_have"
	TypeNiceToHave RequirementType = "nice_to_have"
)

// Valid reports whether t is a known requirement type.
func (t RequirementType) Valid() bool {
	switch t {
	case TypeMustHave, TypeNiceToHave:
		return true
	}
	return false
}

// RequirementStatus tracks a requirement's progress.
//
// The upstream system persisted the in-progress value with mixed case
// ("in_PROGRESS"). That was a bug, not a wire contract; this implementation
// normalizes to lowercase.
type RequirementStatus string

const (
	StatusPending    RequirementStatus = "pending"
	StatusInProgress RequirementStatus = "in_progress"
	StatusDone       RequirementStatus = "done"
)

// Valid reports whether s is a known requirement status.
func (s RequirementStatus) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// Requirement belongs to exactly one project. It carries no owner field;
// ownership is always resolved through the parent project.
type Requirement struct {
	ID          uint              `gorm:"column:id;primaryKey" json:"id"`
	Description string            `gorm:"column:description;not null" json:"description"`
	Type        RequirementType   `gorm:"column:type;not null;default:must_have" json:"type"`
	Status      RequirementStatus `gorm:"column:status;not null;default:pending" json:"status"`
	ProjectID   uint              `gorm:"column:project_id;not null;index" json:"project_id"`
	CreatedAt   time.Time         `gorm:"column:created_at;autoCreateTime" json:"-"`
}

func (Requirement) TableName() string {
	return "requirements"
}
