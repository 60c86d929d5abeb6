package endpoints

import (
	"bytes"
	"errors"
	"fmt"
	"html"
	"net/http"

	"github.com/yuin/goldmark"

	"reqwise/pkg/authz"
	"reqwise/pkg/identity"
	"reqwise/pkg/model"
	"reqwise/pkg/server"
	"reqwise/pkg/server/middleware"
	"reqwise/pkg/server/store"
)

// RegisterReportEndpoint registers the HTML requirement report for a
// project. Owner-only; requirement descriptions are treated as markdown.
func RegisterReportEndpoint(s *server.Server) {
	bearer := middleware.NewBearerAuthenticator(s.Resolver)

	reportRouter := s.Router.PathPrefix("/projects/{id:[0-9]+}/report").Subrouter()
	reportRouter.Use(bearer.Middleware)

	reportRouter.HandleFunc("", handleProjectReport(s.Projects, s.Requirements, s.Config.ListLimitMax)).Methods("GET")
}

func handleProjectReport(projects store.ProjectsStore, requirements store.RequirementsStore, listLimit int) http.HandlerFunc {
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
			respondWithError(w, http.StatusForbidden, forbiddenMessage(err))
			return
		}

		reqs, err := requirements.ListRequirementsByProject(project.ID, 0, listLimit)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		body, err := renderReport(project, reqs)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(body)
	}
}

// renderReport builds a markdown document for the project and converts it
// to HTML. Descriptions pass through the markdown renderer, so owners can
// use emphasis, lists and links in them.
func renderReport(project *model.Project, reqs []model.Requirement) ([]byte, error) {
	var md bytes.Buffer

	fmt.Fprintf(&md, "# %s\n\n", project.Name)
	if project.Description != "" {
		fmt.Fprintf(&md, "%s\n\n", project.Description)
	}
	fmt.Fprintf(&md, "## Requirements (%d)\n\n", len(reqs))

	if len(reqs) == 0 {
		md.WriteString("No requirements recorded yet.\n")
	}
	for _, req := range reqs {
		fmt.Fprintf(&md, "- **%s** `%s` %s\n", req.Type, req.Status, req.Description)
	}

	var htmlBody bytes.Buffer
	if err := goldmark.Convert(md.Bytes(), &htmlBody); err != nil {
		return nil, err
	}

	var page bytes.Buffer
	fmt.Fprintf(&page, `<!DOCTYPE html>
<html>
  <head>
    <meta charset="utf-8">
    <title>%s - Requirements Report</title>
  </head>
  <body>
%s  </body>
</html>
`, html.EscapeString(project.Name), htmlBody.String())

	return page.Bytes(), nil
}
