package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/surrealdb/surrealdb.go"
)

// SurrealDB implements the Database interface for SurrealDB
type SurrealDB struct {
	db     *surrealdb.DB
	config Config
}

// NewSurrealDB creates a new SurrealDB instance
func NewSurrealDB(cfg Config) *SurrealDB {
	return &SurrealDB{
		config: cfg,
	}
}

// Connect establishes a connection to SurrealDB and selects the namespace
func (s *SurrealDB) Connect(ctx context.Context) error {
	endpoint := fmt.Sprintf("ws://%s:%s", s.config.Host, s.config.Port)

	db, err := surrealdb.FromEndpointURLString(ctx, endpoint)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConnection, err)
	}

	_, err = db.SignIn(ctx, &surrealdb.Auth{
		Username: s.config.User,
		Password: s.config.Password,
	})
	if err != nil {
		_ = db.Close(ctx)
		return fmt.Errorf("%w: signin failed: %v", ErrConnection, err)
	}

	if err := db.Use(ctx, s.config.Namespace, s.config.Database); err != nil {
		_ = db.Close(ctx)
		return fmt.Errorf("%w: use failed: %v", ErrConnection, err)
	}

	s.db = db
	return nil
}

// Close closes the database connection
func (s *SurrealDB) Close() error {
	if s.db != nil {
		return s.db.Close(context.Background())
	}
	return nil
}

// Ping checks the database connection
func (s *SurrealDB) Ping(ctx context.Context) error {
	if s.db == nil {
		return ErrConnection
	}
	if _, err := s.db.Version(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrConnection, err)
	}
	return nil
}

// Query executes a query and returns one {status, result} entry per statement
func (s *SurrealDB) Query(ctx context.Context, query string, vars map[string]interface{}) ([]interface{}, error) {
	if s.db == nil {
		return nil, ErrConnection
	}

	results, err := surrealdb.Query[interface{}](ctx, s.db, query, vars)
	if err != nil {
		if isUniqueViolation(err.Error()) {
			return nil, fmt.Errorf("%w: %v", ErrDuplicate, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrQuery, err)
	}
	if results == nil {
		return nil, nil
	}

	output := make([]interface{}, 0, len(*results))
	for _, r := range *results {
		if r.Status != "OK" {
			if r.Error != nil {
				if isUniqueViolation(r.Error.Message) {
					return nil, fmt.Errorf("%w: %s", ErrDuplicate, r.Error.Message)
				}
				return nil, fmt.Errorf("%w: %s", ErrQuery, r.Error.Message)
			}
			return nil, ErrQuery
		}
		output = append(output, map[string]interface{}{
			"status": r.Status,
			"result": r.Result,
		})
	}

	return output, nil
}

// QueryOne executes a query and returns the first record of the first statement
func (s *SurrealDB) QueryOne(ctx context.Context, query string, vars map[string]interface{}) (interface{}, error) {
	results, err := s.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, ErrNotFound
	}

	resp, ok := results[0].(map[string]interface{})
	if !ok {
		return results[0], nil
	}
	if resultData, ok := resp["result"].([]interface{}); ok {
		if len(resultData) == 0 {
			return nil, ErrNotFound
		}
		return resultData[0], nil
	}
	// Scalar results (e.g. RETURN count(...)) come back unwrapped
	return resp["result"], nil
}

// QueryRows executes a query and returns the records of the last statement
func (s *SurrealDB) QueryRows(ctx context.Context, query string, vars map[string]interface{}) ([]Row, error) {
	results, err := s.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return []Row{}, nil
	}
	return rowsFromResult(results[len(results)-1]), nil
}

// Execute runs a query without returning results
func (s *SurrealDB) Execute(ctx context.Context, query string, vars map[string]interface{}) error {
	_, err := s.Query(ctx, query, vars)
	return err
}

// rowsFromResult unwraps a {status, result} entry into decoded rows
func rowsFromResult(entry interface{}) []Row {
	rows := make([]Row, 0)
	resp, ok := entry.(map[string]interface{})
	if !ok {
		return rows
	}
	switch data := resp["result"].(type) {
	case []interface{}:
		for _, item := range data {
			if m, ok := item.(map[string]interface{}); ok {
				rows = append(rows, m)
			}
		}
	case map[string]interface{}:
		rows = append(rows, data)
	}
	return rows
}

func isUniqueViolation(msg string) bool {
	msg = strings.ToLower(msg)
	return strings.Contains(msg, "already contains") ||
		strings.Contains(msg, "unique") ||
		strings.Contains(msg, "already exists")
}
