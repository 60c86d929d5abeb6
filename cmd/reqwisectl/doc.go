// Package main provides reqwisectl, the ReqWise server CLI.
//
// ReqWise is a multi-tenant requirements-tracking service. Owners create
// projects and manage the requirements beneath them; customers browse the
// catalog. All API access is authenticated with bearer tokens minted from
// account credentials.
//
// # Quick Start
//
//	# The token-signing secret must be present in the environment
//	export SECRET_KEY=$(openssl rand -hex 32)
//	export DATABASE_URL=postgres://localhost/reqwise
//
//	# Create the schema
//	reqwisectl db setup
//
//	# Create an owner account
//	reqwisectl user create --username alice --email alice@example.com --role owner
//
//	# Start the server
//	reqwisectl server
//
// # Environment Variables
//
//   - DATABASE_URL: PostgreSQL connection string
//   - SECRET_KEY: Token-signing secret (required by the server)
//   - ACCESS_TOKEN_EXPIRE_MINUTES: Access-token lifetime (default: 30)
//   - AUDIT_DATABASE_URL: Optional Postgres sink for audit events
//   - REQWISE_CONFIG_PATH: Directory containing reqwise.yml
//   - PORT: Server port (default: 8000)
package main
