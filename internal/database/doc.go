// Package database provides the SurrealDB access layer for the Guild API.
//
// The Database interface hides the SurrealDB client so repositories only deal
// with SurrealQL strings, bound variables and decoded rows:
//   - Query: raw statement results ({status, result} per statement)
//   - QueryOne: first record of the first statement, ErrNotFound if empty
//   - QueryRows: records of the last statement, empty slice if none
//   - Execute: mutations whose results are not needed
//
// Use errors.Is() with ErrNotFound, ErrDuplicate, ErrConnection and ErrQuery:
//
//	if errors.Is(err, database.ErrNotFound) {
//	    // Handle missing record
//	}
//
// Usage:
//
//	db := database.NewSurrealDB(cfg)
//	if err := db.Connect(ctx); err != nil { ... }
//	defer db.Close()
//
//	rows, err := db.QueryRows(ctx, "SELECT * FROM waitlist_signup WHERE role = $role", map[string]interface{}{"role": "contractor"})
package database
