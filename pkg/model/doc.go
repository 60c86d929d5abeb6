// Package model defines the database models for ReqWise.
//
// This package contains GORM models that map to the ReqWise database schema.
//
// # Core Models
//
//   - User: Account records with a fixed role (owner or customer)
//   - Project: A body of work owned by exactly one owner
//   - Requirement: A single requirement attached to a project
//
// # Database Schema
//
// The database uses PostgreSQL with three tables:
//
//   - users: Account records, unique on username and email
//   - projects: Projects, owner_id references users
//   - requirements: Requirements, project_id references projects
//
// Tables are created on boot via AutoMigrate; there is no separate
// migration pipeline.
package model
