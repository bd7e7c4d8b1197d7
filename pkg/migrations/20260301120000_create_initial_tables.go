package migrations

import (
	"context"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

func init() {
	up := func(_ context.Context, db *bun.DB) error {
		// Create comics table. Multi-value fields are stored as JSON arrays;
		// the record id comes from the source dataset and keeps leading
		// zeros, so it stays TEXT.
		_, err := db.Exec(`
			CREATE TABLE comics (
				id TEXT PRIMARY KEY,
				created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
				updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
				title TEXT NOT NULL,
				variant_titles TEXT NOT NULL DEFAULT '[]',
				authors TEXT NOT NULL DEFAULT '[]',
				publication_years TEXT NOT NULL DEFAULT '[]',
				genres TEXT NOT NULL DEFAULT '[]',
				languages TEXT NOT NULL DEFAULT '[]',
				isbns TEXT NOT NULL DEFAULT '[]',
				edition TEXT,
				publisher TEXT,
				place_of_publication TEXT,
				topics TEXT,
				physical_description TEXT,
				notes TEXT
			)
		`)
		if err != nil {
			return errors.WithStack(err)
		}

		_, err = db.Exec(`CREATE INDEX ix_comics_title ON comics (title COLLATE NOCASE)`)
		if err != nil {
			return errors.WithStack(err)
		}

		// Create search_logs table (append-only).
		_, err = db.Exec(`
			CREATE TABLE search_logs (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
				query_text TEXT NOT NULL,
				result_count INTEGER NOT NULL DEFAULT 0,
				result_ids TEXT NOT NULL DEFAULT '[]'
			)
		`)
		if err != nil {
			return errors.WithStack(err)
		}

		_, err = db.Exec(`CREATE INDEX ix_search_logs_created_at ON search_logs (created_at)`)
		return errors.WithStack(err)
	}

	down := func(_ context.Context, db *bun.DB) error {
		_, err := db.Exec(`DROP TABLE search_logs`)
		if err != nil {
			return errors.WithStack(err)
		}
		_, err = db.Exec(`DROP TABLE comics`)
		return errors.WithStack(err)
	}

	Migrations.MustRegister(up, down)
}
