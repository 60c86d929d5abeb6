package endpoints

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"reqwise/pkg/model"
)

func TestCreateProject(t *testing.T) {
	t.Run("owner creates a project", func(t *testing.T) {
		env := newTestEnv(t)

		owner := testOwner()
		token := env.tokenFor(t, owner)

		env.projects.On("CreateProject", mock.AnythingOfType("*model.Project")).Run(func(args mock.Arguments) {
			args.Get(0).(*model.Project).ID = 7
		}).Return(nil)

		rec := env.do(t, "POST", "/projects", token, ProjectRequest{
			Name:        "Billing revamp",
			Description: "Replace the invoicing pipeline",
		})

		require.Equal(t, http.StatusCreated, rec.Code)
		body := decodeBody[model.Project](t, rec)
		assert.Equal(t, uint(7), body.ID)
		assert.Equal(t, owner.ID, body.OwnerID)
	})

	t.Run("ownership comes from the token, not the body", func(t *testing.T) {
		env := newTestEnv(t)

		owner := testOwner()
		token := env.tokenFor(t, owner)

		var created *model.Project
		env.projects.On("CreateProject", mock.AnythingOfType("*model.Project")).Run(func(args mock.Arguments) {
			created = args.Get(0).(*model.Project)
		}).Return(nil)

		rec := env.do(t, "POST", "/projects", token, map[string]interface{}{
			"name":     "Billing revamp",
			"owner_id": 999,
		})

		require.Equal(t, http.StatusCreated, rec.Code)
		require.NotNil(t, created)
		assert.Equal(t, owner.ID, created.OwnerID)
	})

	t.Run("customer is forbidden", func(t *testing.T) {
		env := newTestEnv(t)

		token := env.tokenFor(t, testCustomer())

		rec := env.do(t, "POST", "/projects", token, ProjectRequest{Name: "Nope"})

		assertError(t, rec, http.StatusForbidden, "Owner role required")
	})

	t.Run("name length is bounded", func(t *testing.T) {
		tests := []struct {
			name        string
			projectName string
		}{
			{name: "blank", projectName: "   "},
			{name: "too short", projectName: "ab"},
			{name: "too long", projectName: strings.Repeat("x", 101)},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				env := newTestEnv(t)

				token := env.tokenFor(t, testOwner())

				rec := env.do(t, "POST", "/projects", token, ProjectRequest{Name: tt.projectName})

				assertError(t, rec, http.StatusBadRequest, "Project name must be between 3 and 100 characters")
				env.projects.AssertNotCalled(t, "CreateProject", mock.Anything)
			})
		}
	})

	t.Run("anonymous is rejected", func(t *testing.T) {
		env := newTestEnv(t)

		rec := env.do(t, "POST", "/projects", "", ProjectRequest{Name: "Nope"})

		assertError(t, rec, http.StatusUnauthorized, "Not authenticated")
	})
}

func TestListProjects(t *testing.T) {
	t.Run("customer browses the catalog", func(t *testing.T) {
		env := newTestEnv(t)

		token := env.tokenFor(t, testCustomer())

		env.projects.On("ListProjects", 0, 100).Return([]model.Project{
			{ID: 1, Name: "One", OwnerID: 1},
			{ID: 2, Name: "Two", OwnerID: 3},
		}, nil)

		rec := env.do(t, "GET", "/projects", token, nil)

		require.Equal(t, http.StatusOK, rec.Code)
		body := decodeBody[[]model.Project](t, rec)
		assert.Len(t, body, 2)
	})

	t.Run("owner is forbidden from the catalog view", func(t *testing.T) {
		env := newTestEnv(t)

		token := env.tokenFor(t, testOwner())

		rec := env.do(t, "GET", "/projects", token, nil)

		assertError(t, rec, http.StatusForbidden, "Customer role required")
	})

	t.Run("pagination parameters pass through", func(t *testing.T) {
		env := newTestEnv(t)

		token := env.tokenFor(t, testCustomer())

		env.projects.On("ListProjects", 5, 10).Return([]model.Project{}, nil)

		rec := env.do(t, "GET", "/projects?skip=5&limit=10", token, nil)

		require.Equal(t, http.StatusOK, rec.Code)
		env.projects.AssertExpectations(t)
	})

	t.Run("limit is clamped to the configured maximum", func(t *testing.T) {
		env := newTestEnv(t)

		token := env.tokenFor(t, testCustomer())

		env.projects.On("ListProjects", 0, 100).Return([]model.Project{}, nil)

		rec := env.do(t, "GET", "/projects?limit=5000", token, nil)

		require.Equal(t, http.StatusOK, rec.Code)
		env.projects.AssertExpectations(t)
	})
}

func TestListOwnerProjects(t *testing.T) {
	t.Run("owner sees only their projects", func(t *testing.T) {
		env := newTestEnv(t)

		owner := testOwner()
		token := env.tokenFor(t, owner)

		env.projects.On("ListProjectsByOwner", owner.ID, 0, 100).Return([]model.Project{
			{ID: 1, Name: "Mine", OwnerID: owner.ID},
		}, nil)

		rec := env.do(t, "GET", "/projects/owner", token, nil)

		require.Equal(t, http.StatusOK, rec.Code)
		body := decodeBody[[]model.Project](t, rec)
		require.Len(t, body, 1)
		assert.Equal(t, owner.ID, body[0].OwnerID)
	})

	t.Run("customer is forbidden", func(t *testing.T) {
		env := newTestEnv(t)

		token := env.tokenFor(t, testCustomer())

		rec := env.do(t, "GET", "/projects/owner", token, nil)

		assertError(t, rec, http.StatusForbidden, "Owner role required")
	})
}
