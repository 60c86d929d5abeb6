// Package db provides database connection utilities for ReqWise.
package db
