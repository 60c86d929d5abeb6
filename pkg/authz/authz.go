package authz

import (
	"errors"
	"fmt"

	"reqwise/pkg/model"
	"reqwise/pkg/server/store"
)

// ErrForbidden indicates a valid identity that lacks the required role or
// does not own the resource it is trying to change.
var ErrForbidden = errors.New("forbidden")

// RequireRole returns nil if the account carries exactly the required role.
// There is no hierarchy: an owner is not a customer for read purposes, and
// vice versa. The switch is exhaustive over the closed role set so a third
// role would be a compile-visible change here.
func RequireRole(user *model.User, role model.Role) error {
	if user.Role == role {
		return nil
	}
	switch role {
	case model.RoleOwner:
		return fmt.Errorf("%w: Owner role required", ErrForbidden)
	case model.RoleCustomer:
		return fmt.Errorf("%w: Customer role required", ErrForbidden)
	default:
		return fmt.Errorf("%w: unknown role %q", ErrForbidden, role)
	}
}

// RequireProjectOwnership returns nil iff the account owns the project.
func RequireProjectOwnership(user *model.User, project *model.Project) error {
	if project.OwnerID != user.ID {
		return fmt.Errorf("%w: not the project owner", ErrForbidden)
	}
	return nil
}

// Gate performs ownership checks that need a project lookup.
type Gate struct {
	projects store.ProjectsStore
}

// NewGate creates an ownership gate over the given projects store.
func NewGate(projects store.ProjectsStore) *Gate {
	return &Gate{projects: projects}
}

// RequireRequirementOwnership walks the requirement's parent project and
// checks that the account owns it. A requirement whose project has vanished
// yields store.ErrNotFound rather than a forbidden error.
// The walk happens on every call so ownership always reflects the current
// project assignment.
func (g *Gate) RequireRequirementOwnership(user *model.User, requirement *model.Requirement) error {
	project, err := g.projects.GetProject(requirement.ProjectID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.ErrNotFound
		}
		return err
	}
	return RequireProjectOwnership(user, project)
}
