// Package migrations holds the SurrealQL schema for the waitlist store.
package migrations

import "embed"

// FS contains the .surql migrations, applied in file name order.
//
//go:embed *.surql
var FS embed.FS
