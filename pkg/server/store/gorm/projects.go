package gorm

import (
	"errors"

	"gorm.io/gorm"

	"reqwise/pkg/model"
	"reqwise/pkg/server/store"
)

// Ensure ProjectsStore implements store.ProjectsStore
var _ store.ProjectsStore = (*ProjectsStore)(nil)

// ProjectsStore implements store.ProjectsStore using GORM
type ProjectsStore struct {
	db *gorm.DB
}

// NewProjectsStore creates a new ProjectsStore
func NewProjectsStore(db *gorm.DB) *ProjectsStore {
	return &ProjectsStore{db: db}
}

// CreateProject inserts a new project record
func (s *ProjectsStore) CreateProject(project *model.Project) error {
	return s.db.Create(project).Error
}

// GetProject retrieves a project by ID
func (s *ProjectsStore) GetProject(id uint) (*model.Project, error) {
	var project model.Project
	tx := s.db.First(&project, id)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, store.ErrNotFound
		}
		return nil, tx.Error
	}
	return &project, nil
}

// ListProjects returns all projects, paginated
func (s *ProjectsStore) ListProjects(skip, limit int) ([]model.Project, error) {
	projects := []model.Project{}
	tx := s.db.Order("id").Offset(skip).Limit(limit).Find(&projects)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return projects, nil
}

// ListProjectsByOwner returns the projects owned by an account, paginated
func (s *ProjectsStore) ListProjectsByOwner(ownerID uint, skip, limit int) ([]model.Project, error) {
	projects := []model.Project{}
	tx := s.db.Where("owner_id = ?", ownerID).Order("id").Offset(skip).Limit(limit).Find(&projects)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return projects, nil
}
