package database

import (
	"context"
	"fmt"
	"io/fs"
	"sort"
	"strings"
)

// Migrate runs every .surql file in fsys in file name order. The schema
// files only use DEFINE ... IF NOT EXISTS, so running them on every start
// is safe.
func Migrate(ctx context.Context, db Database, fsys fs.FS) error {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations: %w", err)
	}

	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".surql") {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)

	for _, name := range files {
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading %s: %w", name, err)
		}
		if err := db.Execute(ctx, string(content), nil); err != nil {
			return fmt.Errorf("migration %s: %w", name, err)
		}
	}
	return nil
}
