package endpoints

import (
	"github.com/stretchr/testify/mock"

	"reqwise/pkg/model"
)

// MockUsersStore implements store.UsersStore for testing using testify/mock
type MockUsersStore struct {
	mock.Mock
}

func NewMockUsersStore() *MockUsersStore {
	return &MockUsersStore{}
}

func (m *MockUsersStore) GetUserByEmail(email string) (*model.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUsersStore) GetUserByUsername(username string) (*model.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUsersStore) CreateUser(user *model.User) error {
	args := m.Called(user)
	return args.Error(0)
}

// MockProjectsStore implements store.ProjectsStore for testing using testify/mock
type MockProjectsStore struct {
	mock.Mock
}

func NewMockProjectsStore() *MockProjectsStore {
	return &MockProjectsStore{}
}

func (m *MockProjectsStore) CreateProject(project *model.Project) error {
	args := m.Called(project)
	return args.Error(0)
}

func (m *MockProjectsStore) GetProject(id uint) (*model.Project, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Project), args.Error(1)
}

func (m *MockProjectsStore) ListProjects(skip, limit int) ([]model.Project, error) {
	args := m.Called(skip, limit)
	return args.Get(0).([]model.Project), args.Error(1)
}

func (m *MockProjectsStore) ListProjectsByOwner(ownerID uint, skip, limit int) ([]model.Project, error) {
	args := m.Called(ownerID, skip, limit)
	return args.Get(0).([]model.Project), args.Error(1)
}

// MockRequirementsStore implements store.RequirementsStore for testing using testify/mock
type MockRequirementsStore struct {
	mock.Mock
}

func NewMockRequirementsStore() *MockRequirementsStore {
	return &MockRequirementsStore{}
}

func (m *MockRequirementsStore) CreateRequirement(requirement *model.Requirement) error {
	args := m.Called(requirement)
	return args.Error(0)
}

func (m *MockRequirementsStore) GetRequirement(id uint) (*model.Requirement, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Requirement), args.Error(1)
}

func (m *MockRequirementsStore) UpdateRequirement(requirement *model.Requirement) error {
	args := m.Called(requirement)
	return args.Error(0)
}

func (m *MockRequirementsStore) DeleteRequirement(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockRequirementsStore) ListRequirementsByProject(projectID uint, skip, limit int) ([]model.Requirement, error) {
	args := m.Called(projectID, skip, limit)
	return args.Get(0).([]model.Requirement), args.Error(1)
}

// MockHealthStore implements store.HealthStore for testing using testify/mock
type MockHealthStore struct {
	mock.Mock
}

func NewMockHealthStore() *MockHealthStore {
	return &MockHealthStore{}
}

func (m *MockHealthStore) CheckConnectivity() error {
	args := m.Called()
	return args.Error(0)
}
