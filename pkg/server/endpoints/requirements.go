package endpoints

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"reqwise/pkg/audit"
	"reqwise/pkg/authz"
	"reqwise/pkg/config"
	"reqwise/pkg/identity"
	"reqwise/pkg/model"
	"reqwise/pkg/server"
	"reqwise/pkg/server/middleware"
	"reqwise/pkg/server/store"
)

const minDescriptionLength = 5

// RequirementRequest is the body of POST /projects/{id}/requirements
type RequirementRequest struct {
	Description string                `json:"description"`
	Type        model.RequirementType `json:"type"`
}

// RequirementUpdateRequest is the body of PUT /requirements/{id}. Nil fields
// are left untouched.
type RequirementUpdateRequest struct {
	Description *string                `json:"description"`
	Type        *model.RequirementType `json:"type"`
}

// RequirementStatusRequest is the body of PATCH /requirements/{id}/status
type RequirementStatusRequest struct {
	Status model.RequirementStatus `json:"status"`
}

// RegisterRequirementsEndpoints registers requirement CRUD. Every mutation
// is owner-gated and walks ownership through the parent project.
func RegisterRequirementsEndpoints(s *server.Server) {
	bearer := middleware.NewBearerAuthenticator(s.Resolver)

	projectReqRouter := s.Router.PathPrefix("/projects/{id:[0-9]+}/requirements").Subrouter()
	projectReqRouter.Use(bearer.Middleware)
	projectReqRouter.HandleFunc("", handleCreateRequirement(s.Projects, s.Requirements)).Methods("POST")
	projectReqRouter.HandleFunc("", handleListRequirements(s.Projects, s.Requirements, s.Config)).Methods("GET")

	reqRouter := s.Router.PathPrefix("/requirements").Subrouter()
	reqRouter.Use(bearer.Middleware)
	reqRouter.HandleFunc("/{id:[0-9]+}", handleUpdateRequirement(s.Gate, s.Requirements)).Methods("PUT")
	reqRouter.HandleFunc("/{id:[0-9]+}/status", handleUpdateRequirementStatus(s.Gate, s.Requirements)).Methods("PATCH")
	reqRouter.HandleFunc("/{id:[0-9]+}", handleDeleteRequirement(s.Gate, s.Requirements)).Methods("DELETE")
}

func handleCreateRequirement(projects store.ProjectsStore, requirements store.RequirementsStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := identity.Get(r.Context())
		if !ok {
			respondWithError(w, http.StatusUnauthorized, "Not authenticated")
			return
		}

		if err := authz.RequireRole(user, model.RoleOwner); err != nil {
			respondWithError(w, http.StatusForbidden, forbiddenMessage(err))
			return
		}

		projectID, ok := pathID(r)
		if !ok {
			respondWithError(w, http.StatusBadRequest, "Invalid project id")
			return
		}

		// Existence before ownership: a missing project is 404 for
		// everyone, not a 403 leak.
		project, err := projects.GetProject(projectID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				respondWithError(w, http.StatusNotFound, "Project not found")
				return
			}
			respondWithError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		if err := authz.RequireProjectOwnership(user, project); err != nil {
			audit.Log(audit.CheckEvent{
				UserEmail: user.Email,
				ClientIP:  clientIP(r),
				Resource:  fmt.Sprintf("project:%d", project.ID),
				Privilege: "create-requirement",
			})
			respondWithError(w, http.StatusForbidden, forbiddenMessage(err))
			return
		}

		var req RequirementRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		req.Description = strings.TrimSpace(req.Description)
		if len(req.Description) < minDescriptionLength {
			respondWithError(w, http.StatusBadRequest, "Requirement description must be at least 5 characters")
			return
		}
		if req.Type == "" {
			req.Type = model.TypeMustHave
		}
		if !req.Type.Valid() {
			respondWithError(w, http.StatusBadRequest, "Type must be must_have or nice_to_have")
			return
		}

		requirement := &model.Requirement{
			Description: req.Description,
			Type:        req.Type,
			Status:      model.StatusPending,
			ProjectID:   project.ID,
		}

		if err := requirements.CreateRequirement(requirement); err != nil {
			respondWithError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		audit.Log(audit.ResourceEvent{
			UserEmail: user.Email,
			ClientIP:  clientIP(r),
			Resource:  fmt.Sprintf("requirement:%d", requirement.ID),
			Operation: "create",
			Success:   true,
		})

		respondWithJSON(w, http.StatusCreated, requirement)
	}
}

func handleListRequirements(projects store.ProjectsStore, requirements store.RequirementsStore, cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := identity.Get(r.Context())
		if !ok {
			respondWithError(w, http.StatusUnauthorized, "Not authenticated")
			return
		}

		if err := authz.RequireRole(user, model.RoleCustomer); err != nil {
			respondWithError(w, http.StatusForbidden, forbiddenMessage(err))
			return
		}

		projectID, ok := pathID(r)
		if !ok {
			respondWithError(w, http.StatusBadRequest, "Invalid project id")
			return
		}

		if _, err := projects.GetProject(projectID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				respondWithError(w, http.StatusNotFound, "Project not found")
				return
			}
			respondWithError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		skip, limit := pagination(r, cfg)
		result, err := requirements.ListRequirementsByProject(projectID, skip, limit)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		respondWithJSON(w, http.StatusOK, result)
	}
}

// ownedRequirement loads a requirement and runs the full mutation gate:
// owner role, then the ownership walk through the parent project.
func ownedRequirement(r *http.Request, gate *authz.Gate, requirements store.RequirementsStore, w http.ResponseWriter) (*model.User, *model.Requirement, bool) {
	user, ok := identity.Get(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Not authenticated")
		return nil, nil, false
	}

	if err := authz.RequireRole(user, model.RoleOwner); err != nil {
		respondWithError(w, http.StatusForbidden, forbiddenMessage(err))
		return nil, nil, false
	}

	id, ok := pathID(r)
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid requirement id")
		return nil, nil, false
	}

	requirement, err := requirements.GetRequirement(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "Requirement not found")
			return nil, nil, false
		}
		respondWithError(w, http.StatusInternalServerError, "Internal server error")
		return nil, nil, false
	}

	if err := gate.RequireRequirementOwnership(user, requirement); err != nil {
		if errors.Is(err, authz.ErrForbidden) {
			audit.Log(audit.CheckEvent{
				UserEmail: user.Email,
				ClientIP:  clientIP(r),
				Resource:  fmt.Sprintf("requirement:%d", requirement.ID),
				Privilege: "modify",
			})
		}
		respondWithAuthzError(w, err, "Project not found")
		return nil, nil, false
	}

	return user, requirement, true
}

func handleUpdateRequirement(gate *authz.Gate, requirements store.RequirementsStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, requirement, ok := ownedRequirement(r, gate, requirements, w)
		if !ok {
			return
		}

		var req RequirementUpdateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		if req.Description != nil {
			desc := strings.TrimSpace(*req.Description)
			if len(desc) < minDescriptionLength {
				respondWithError(w, http.StatusBadRequest, "Requirement description must be at least 5 characters")
				return
			}
			requirement.Description = desc
		}
		if req.Type != nil {
			if !req.Type.Valid() {
				respondWithError(w, http.StatusBadRequest, "Type must be must_have or nice_to_have")
				return
			}
			requirement.Type = *req.Type
		}

		if err := requirements.UpdateRequirement(requirement); err != nil {
			respondWithError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		audit.Log(audit.ResourceEvent{
			UserEmail: user.Email,
			ClientIP:  clientIP(r),
			Resource:  fmt.Sprintf("requirement:%d", requirement.ID),
			Operation: "update",
			Success:   true,
		})

		respondWithJSON(w, http.StatusOK, requirement)
	}
}

func handleUpdateRequirementStatus(gate *authz.Gate, requirements store.RequirementsStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, requirement, ok := ownedRequirement(r, gate, requirements, w)
		if !ok {
			return
		}

		var req RequirementStatusRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		// Status casing on the wire is forgiving; the stored set stays
		// lowercase.
		req.Status = model.RequirementStatus(strings.ToLower(string(req.Status)))
		if !req.Status.Valid() {
			respondWithError(w, http.StatusBadRequest, "Status must be pending, in_progress or done")
			return
		}

		requirement.Status = req.Status
		if err := requirements.UpdateRequirement(requirement); err != nil {
			respondWithError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		audit.Log(audit.ResourceEvent{
			UserEmail: user.Email,
			ClientIP:  clientIP(r),
			Resource:  fmt.Sprintf("requirement:%d", requirement.ID),
			Operation: "update",
			Success:   true,
		})

		respondWithJSON(w, http.StatusOK, requirement)
	}
}

func handleDeleteRequirement(gate *authz.Gate, requirements store.RequirementsStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, requirement, ok := ownedRequirement(r, gate, requirements, w)
		if !ok {
			return
		}

		if err := requirements.DeleteRequirement(requirement.ID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				respondWithError(w, http.StatusNotFound, "Requirement not found")
				return
			}
			respondWithError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		audit.Log(audit.ResourceEvent{
			UserEmail: user.Email,
			ClientIP:  clientIP(r),
			Resource:  fmt.Sprintf("requirement:%d", requirement.ID),
			Operation: "delete",
			Success:   true,
		})

		w.WriteHeader(http.StatusNoContent)
	}
}
