package db

import (
	"context"
	"embed"
	"io/fs"
	"sort"

	"github.com/cockroachdb/errors"
)

//go:embed schema/*.sql
var schemaFS embed.FS

// Migrate applies every embedded schema file in name order. Statements are
// idempotent so running it against an initialised database is a no-op.
func (db *DB) Migrate(ctx context.Context) error {
	files, err := SchemaFiles()
	if err != nil {
		return err
	}

	conn, err := db.pool.Acquire(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to acquire migration connection")
	}
	defer conn.Release()

	for _, f := range files {
		if _, err := conn.Exec(ctx, f.SQL); err != nil {
			return errors.Wrapf(err, "failed to apply %s", f.Name)
		}
	}
	return nil
}

// SchemaFile is one embedded migration.
type SchemaFile struct {
	Name string
	SQL  string
}

// SchemaFiles returns the embedded Postgres migrations sorted by name.
func SchemaFiles() ([]SchemaFile, error) {
	entries, err := fs.ReadDir(schemaFS, "schema")
	if err != nil {
		return nil, errors.Wrap(err, "failed to read schema dir")
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})

	files := make([]SchemaFile, 0, len(entries))
	for _, e := range entries {
		data, err := fs.ReadFile(schemaFS, "schema/"+e.Name())
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read %s", e.Name())
		}
		files = append(files, SchemaFile{Name: e.Name(), SQL: string(data)})
	}
	return files, nil
}
