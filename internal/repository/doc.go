// Package repository implements the SurrealDB data access layer for the
// Guild API.
//
// # Repository Pattern
//
//   - Constructor function (NewXxxRepository) accepts a database connection
//   - Methods implement specific data operations (Create, Unsubscribe, List, ...)
//   - SurrealQL queries are used for all database interactions
//   - Results are parsed and mapped to model structs
//
// The SQLite implementation of the same operations lives in the sqlite
// subpackage; the service layer only sees the interface both satisfy.
//
// # Query Patterns
//
//   - Parameterized queries with $variable syntax
//   - type::record() for safe ID handling
//   - time::now() for server-side timestamps
//   - conditional UPDATE ... WHERE field = NONE for set-once timestamps
//
// # Example Usage
//
//	repo := NewWaitlistRepository(db)
//	changed, err := repo.Unsubscribe(ctx, token)
//	if err != nil {
//	    return err
//	}
package repository
