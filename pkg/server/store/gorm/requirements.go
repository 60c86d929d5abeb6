package gorm

import (
	"errors"

	"gorm.io/gorm"

	"reqwise/pkg/model"
	"reqwise/pkg/server/store"
)

// Ensure RequirementsStore implements store.RequirementsStore
var _ store.RequirementsStore = (*RequirementsStore)(nil)

// RequirementsStore implements store.RequirementsStore using GORM
type RequirementsStore struct {
	db *gorm.DB
}

// NewRequirementsStore creates a new RequirementsStore
func NewRequirementsStore(db *gorm.DB) *RequirementsStore {
	return &RequirementsStore{db: db}
}

// CreateRequirement inserts a new requirement record
func (s *RequirementsStore) CreateRequirement(requirement *model.Requirement) error {
	return s.db.Create(requirement).Error
}

// GetRequirement retrieves a requirement by ID
func (s *RequirementsStore) GetRequirement(id uint) (*model.Requirement, error) {
	var requirement model.Requirement
	tx := s.db.First(&requirement, id)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, store.ErrNotFound
		}
		return nil, tx.Error
	}
	return &requirement, nil
}

// UpdateRequirement persists changes to an existing requirement
func (s *RequirementsStore) UpdateRequirement(requirement *model.Requirement) error {
	return s.db.Save(requirement).Error
}

// DeleteRequirement removes a requirement by ID
func (s *RequirementsStore) DeleteRequirement(id uint) error {
	tx := s.db.Delete(&model.Requirement{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

// ListRequirementsByProject returns a project's requirements, paginated
func (s *RequirementsStore) ListRequirementsByProject(projectID uint, skip, limit int) ([]model.Requirement, error) {
	requirements := []model.Requirement{}
	tx := s.db.Where("project_id = ?", projectID).Order("id").Offset(skip).Limit(limit).Find(&requirements)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return requirements, nil
}
