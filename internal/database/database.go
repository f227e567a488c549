package database

import (
	"context"
	"errors"
)

// Standard errors for database operations.
// Use errors.Is() to check these error types in calling code.
var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate indicates a unique constraint violation (e.g., duplicate email).
	ErrDuplicate = errors.New("duplicate record")
	// ErrConnection indicates a failure to connect to or communicate with the database.
	ErrConnection = errors.New("database connection error")
	// ErrQuery indicates a query execution failure (syntax error, invalid reference, etc.).
	ErrQuery = errors.New("query error")
)

// Row is a single record decoded from a query result.
type Row = map[string]interface{}

// Database defines the interface for database operations
type Database interface {
	// Connection management
	Connect(ctx context.Context) error
	Close() error
	Ping(ctx context.Context) error

	// Query executes a query and returns the raw statement results
	Query(ctx context.Context, query string, vars map[string]interface{}) ([]interface{}, error)
	// QueryOne executes a query and returns the first record of the first statement
	QueryOne(ctx context.Context, query string, vars map[string]interface{}) (interface{}, error)
	// QueryRows executes a query and returns the records of the last statement
	QueryRows(ctx context.Context, query string, vars map[string]interface{}) ([]Row, error)
	// Execute runs a query without returning results (for mutations)
	Execute(ctx context.Context, query string, vars map[string]interface{}) error
}

// Config holds database configuration
type Config struct {
	Host      string
	Port      string
	User      string
	Password  string
	Namespace string
	Database  string
}
