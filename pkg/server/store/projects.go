package store

import "reqwise/pkg/model"

// ProjectsStore abstracts project storage operations
type ProjectsStore interface {
	// CreateProject inserts a new project record
	CreateProject(project *model.Project) error

	// GetProject retrieves a project by ID
	GetProject(id uint) (*model.Project, error)

	// ListProjects returns all projects, paginated
	ListProjects(skip, limit int) ([]model.Project, error)

	// ListProjectsByOwner returns the projects owned by an account, paginated
	ListProjectsByOwner(ownerID uint, skip, limit int) ([]model.Project, error)
}
