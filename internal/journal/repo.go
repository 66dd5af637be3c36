package journal

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ExportRow represents one exported post.
type ExportRow struct {
	Path       string    `json:"path"`
	Slug       string    `json:"slug"`
	Title      string    `json:"title"`
	Checksum   string    `json:"checksum"`
	ExportedAt time.Time `json:"exported_at"`
}

// AssetRow represents one copied asset.
type AssetRow struct {
	Name     string    `json:"name"`
	Slug     string    `json:"slug"`
	CopiedAt time.Time `json:"copied_at"`
}

// Stats summarises journal contents.
type Stats struct {
	Posts      int       `json:"posts"`
	Assets     int       `json:"assets"`
	LastExport time.Time `json:"last_export"`
}

// RecordExport inserts or replaces the journal entry for a post.
func (db *DB) RecordExport(row ExportRow) error {
	_, err := db.conn.Exec(`
		INSERT INTO exports (path, slug, title, checksum, exported_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			slug        = excluded.slug,
			title       = excluded.title,
			checksum    = excluded.checksum,
			exported_at = excluded.exported_at
	`, row.Path, row.Slug, row.Title, row.Checksum, row.ExportedAt)
	if err != nil {
		return fmt.Errorf("journal: record export: %w", err)
	}
	return nil
}

// RecordAsset inserts or replaces the journal entry for a copied asset.
func (db *DB) RecordAsset(row AssetRow) error {
	_, err := db.conn.Exec(`
		INSERT INTO assets (name, slug, copied_at)
		VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			slug      = excluded.slug,
			copied_at = excluded.copied_at
	`, row.Name, row.Slug, row.CopiedAt)
	if err != nil {
		return fmt.Errorf("journal: record asset: %w", err)
	}
	return nil
}

// Recent returns the most recently exported posts, newest first.
func (db *DB) Recent(limit int) ([]ExportRow, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := db.conn.Query(`
		SELECT path, slug, title, checksum, exported_at
		FROM exports
		ORDER BY exported_at DESC, path
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("journal: recent: %w", err)
	}
	defer rows.Close()

	var out []ExportRow
	for rows.Next() {
		var r ExportRow
		if err := rows.Scan(&r.Path, &r.Slug, &r.Title, &r.Checksum, &r.ExportedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Stats returns post/asset counts and the timestamp of the latest export.
func (db *DB) Stats() (Stats, error) {
	var s Stats
	if err := db.conn.QueryRow(`SELECT COUNT(*) FROM exports`).Scan(&s.Posts); err != nil {
		return Stats{}, fmt.Errorf("journal: count exports: %w", err)
	}
	if err := db.conn.QueryRow(`SELECT COUNT(*) FROM assets`).Scan(&s.Assets); err != nil {
		return Stats{}, fmt.Errorf("journal: count assets: %w", err)
	}
	// Select the column directly: aggregate expressions lose the declared
	// DATETIME type and come back as strings.
	var last time.Time
	err := db.conn.QueryRow(`SELECT exported_at FROM exports ORDER BY exported_at DESC LIMIT 1`).Scan(&last)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		// Empty journal; LastExport stays zero.
	case err != nil:
		return Stats{}, fmt.Errorf("journal: last export: %w", err)
	default:
		s.LastExport = last
	}
	return s, nil
}
