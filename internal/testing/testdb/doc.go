// # Migrations
//
// The embedded SurrealQL migrations from the top-level migrations package
// are applied to every new namespace:
//
//	tdb := testdb.New(t) // applies migrations/*.surql
//
// # Isolation
//
// Each test gets its own namespace, removed again by Close.
//
// # Availability
//
// Without a reachable server the test is skipped. Set TEST_DB_REQUIRED=1
// in CI to turn that into a failure. TEST_DB_HOST, TEST_DB_PORT,
// TEST_DB_USER and TEST_DB_PASSWORD override the connection defaults.
package testdb
