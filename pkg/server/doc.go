// Package server provides the HTTP server for the ReqWise API.
//
// This package implements the core HTTP server that handles all REST API
// requests. It uses gorilla/mux for routing and provides middleware for
// bearer token authentication.
//
// # Server Setup
//
//	srv := server.NewServer(db, cfg, codec, users, projects, requirements, host, port)
//	endpoints.RegisterAll(srv)
//	if err := srv.Start(); err != nil {
//	    log.Fatal(err)
//	}
//
// # Endpoints
//
// API endpoints are registered via the endpoints subpackage:
//
//   - /users/register - Account registration
//   - /users/token - Credential login, returns a bearer token
//   - /whoami - Token introspection
//   - /projects - Project creation and listing
//   - /projects/{id}/requirements - Requirement creation and listing
//   - /requirements/{id} - Requirement update, status change, deletion
//   - /projects/{id}/report - HTML requirement report
//   - /status - Service health
package server
