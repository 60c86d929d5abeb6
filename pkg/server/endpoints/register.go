package endpoints

import (
	"reqwise/pkg/server"
)

// RegisterAll registers all API endpoints on the server
func RegisterAll(srv *server.Server) {
	RegisterUsersEndpoints(srv)
	RegisterWhoamiEndpoint(srv)
	RegisterProjectsEndpoints(srv)
	RegisterRequirementsEndpoints(srv)
	RegisterReportEndpoint(srv)
	RegisterStatusEndpoint(srv)
}
