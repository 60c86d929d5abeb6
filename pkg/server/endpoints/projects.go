package endpoints

import (
	"encoding/json"
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

const (
	minProjectNameLength = 3
	maxProjectNameLength = 100
)

// ProjectRequest is the body of POST /projects
type ProjectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// RegisterProjectsEndpoints registers project creation and listing. Writes
// are owner-only; the catalog view is customer-only.
func RegisterProjectsEndpoints(s *server.Server) {
	bearer := middleware.NewBearerAuthenticator(s.Resolver)

	projectsRouter := s.Router.PathPrefix("/projects").Subrouter()
	projectsRouter.Use(bearer.Middleware)

	projectsRouter.HandleFunc("", handleCreateProject(s.Projects)).Methods("POST")
	projectsRouter.HandleFunc("", handleListProjects(s.Projects, s.Config)).Methods("GET")
	projectsRouter.HandleFunc("/owner", handleListOwnerProjects(s.Projects, s.Config)).Methods("GET")
}

func handleCreateProject(projects store.ProjectsStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := identity.Get(r.Context())
		if !ok {
			respondWithError(w, http.StatusUnauthorized, "Not authenticated")
			return
		}

		if err := authz.RequireRole(user, model.RoleOwner); err != nil {
			audit.Log(audit.CheckEvent{
				UserEmail: user.Email,
				ClientIP:  clientIP(r),
				Resource:  "projects",
				Privilege: "create",
			})
			respondWithError(w, http.StatusForbidden, forbiddenMessage(err))
			return
		}

		var req ProjectRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		req.Name = strings.TrimSpace(req.Name)
		if len(req.Name) < minProjectNameLength || len(req.Name) > maxProjectNameLength {
			respondWithError(w, http.StatusBadRequest, "Project name must be between 3 and 100 characters")
			return
		}

		project := &model.Project{
			Name:        req.Name,
			Description: req.Description,
			OwnerID:     user.ID,
		}

		if err := projects.CreateProject(project); err != nil {
			respondWithError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		audit.Log(audit.ResourceEvent{
			UserEmail: user.Email,
			ClientIP:  clientIP(r),
			Resource:  fmt.Sprintf("project:%d", project.ID),
			Operation: "create",
			Success:   true,
		})

		respondWithJSON(w, http.StatusCreated, project)
	}
}

func handleListProjects(projects store.ProjectsStore, cfg *config.Config) http.HandlerFunc {
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

		skip, limit := pagination(r, cfg)
		result, err := projects.ListProjects(skip, limit)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		respondWithJSON(w, http.StatusOK, result)
	}
}

func handleListOwnerProjects(projects store.ProjectsStore, cfg *config.Config) http.HandlerFunc {
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

		skip, limit := pagination(r, cfg)
		result, err := projects.ListProjectsByOwner(user.ID, skip, limit)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		respondWithJSON(w, http.StatusOK, result)
	}
}
