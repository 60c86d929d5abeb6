package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"reqwise/pkg/model"
	"reqwise/pkg/server/store"
)

type stubProjectsStore struct {
	projects map[uint]*model.Project
}

func (s *stubProjectsStore) CreateProject(p *model.Project) error { return nil }

func (s *stubProjectsStore) GetProject(id uint) (*model.Project, error) {
	if p, ok := s.projects[id]; ok {
		return p, nil
	}
	return nil, store.ErrNotFound
}

func (s *stubProjectsStore) ListProjects(skip, limit int) ([]model.Project, error) {
	return nil, nil
}

func (s *stubProjectsStore) ListProjectsByOwner(ownerID uint, skip, limit int) ([]model.Project, error) {
	return nil, nil
}

func TestRequireRole(t *testing.T) {
	owner := &model.User{ID: 1, Role: model.RoleOwner}
	customer := &model.User{ID: 2, Role: model.RoleCustomer}

	tests := []struct {
		name    string
		user    *model.User
		role    model.Role
		wantErr string
	}{
		{"owner passes owner gate", owner, model.RoleOwner, ""},
		{"customer passes customer gate", customer, model.RoleCustomer, ""},
		{"customer fails owner gate", customer, model.RoleOwner, "Owner role required"},
		{"owner fails customer gate", owner, model.RoleCustomer, "Customer role required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := RequireRole(tt.user, tt.role)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrForbidden)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestRequireProjectOwnership(t *testing.T) {
	alice := &model.User{ID: 1, Role: model.RoleOwner}
	carol := &model.User{ID: 3, Role: model.RoleOwner}
	project := &model.Project{ID: 10, OwnerID: 1}

	assert.NoError(t, RequireProjectOwnership(alice, project))
	assert.ErrorIs(t, RequireProjectOwnership(carol, project), ErrForbidden)
}

func TestRequireRequirementOwnership(t *testing.T) {
	alice := &model.User{ID: 1, Role: model.RoleOwner}
	carol := &model.User{ID: 3, Role: model.RoleOwner}

	gate := NewGate(&stubProjectsStore{projects: map[uint]*model.Project{
		10: {ID: 10, OwnerID: 1},
	}})

	owned := &model.Requirement{ID: 100, ProjectID: 10}
	orphaned := &model.Requirement{ID: 101, ProjectID: 99}

	t.Run("owner of parent project passes", func(t *testing.T) {
		assert.NoError(t, gate.RequireRequirementOwnership(alice, owned))
	})

	t.Run("different owner is forbidden", func(t *testing.T) {
		assert.ErrorIs(t, gate.RequireRequirementOwnership(carol, owned), ErrForbidden)
	})

	t.Run("vanished parent project is not found", func(t *testing.T) {
		assert.ErrorIs(t, gate.RequireRequirementOwnership(alice, orphaned), store.ErrNotFound)
	})
}
