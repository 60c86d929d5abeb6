package store

import "reqwise/pkg/model"

// RequirementsStore abstracts requirement storage operations
type RequirementsStore interface {
	// CreateRequirement inserts a new requirement record
	CreateRequirement(requirement *model.Requirement) error

	// GetRequirement retrieves a requirement by ID
	GetRequirement(id uint) (*model.Requirement, error)

	// UpdateRequirement persists changes to an existing requirement
	UpdateRequirement(requirement *model.Requirement) error

	// DeleteRequirement removes a requirement by ID
	DeleteRequirement(id uint) error

	// ListRequirementsByProject returns a project's requirements, paginated
	ListRequirementsByProject(projectID uint, skip, limit int) ([]model.Requirement, error)
}
