package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/y2km/internal/y2km"
)

// ReadColumn returns the latest version of the named column.
// Returns an error wrapping ErrNotFound if the column has never been written.
func (s *Store) ReadColumn(ctx context.Context, name string) (*y2km.Sequence, Version, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, seq, type_name, length, null_count, payload
		FROM column_versions
		WHERE name = ?
		ORDER BY seq DESC
		LIMIT 1
	`, name)
	return s.scanColumn(row, name)
}

// ReadVersion returns a specific version of the named column.
func (s *Store) ReadVersion(ctx context.Context, name string, seq int64) (*y2km.Sequence, Version, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, seq, type_name, length, null_count, payload
		FROM column_versions
		WHERE name = ? AND seq = ?
	`, name, seq)
	return s.scanColumn(row, fmt.Sprintf("%s@%d", name, seq))
}

func (s *Store) scanColumn(row *sql.Row, label string) (*y2km.Sequence, Version, error) {
	var (
		v       Version
		payload []byte
	)
	err := row.Scan(&v.ID, &v.Name, &v.Seq, &v.TypeName, &v.Length, &v.NullCount, &payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, Version{}, fmt.Errorf("read column %s: %w", label, ErrNotFound)
	}
	if err != nil {
		return nil, Version{}, fmt.Errorf("read column %s: %w", label, err)
	}

	col, err := unmarshalColumn(payload, s.types, v.TypeName)
	if err != nil {
		return nil, Version{}, fmt.Errorf("read column %s: %w", label, err)
	}
	if col.Len() != v.Length {
		return nil, Version{}, fmt.Errorf("read column %s: payload has %d elements, expected %d", label, col.Len(), v.Length)
	}

	seq, ok := y2km.SequenceOf(col)
	if !ok {
		return nil, Version{}, fmt.Errorf("read column %s: stored type %q is not %s", label, v.TypeName, y2km.TypeName)
	}
	return seq.With(y2km.WithRangePolicy(s.policy)), v, nil
}

// ListColumns returns the latest version of every column, ordered by name.
// Returns an empty slice (not nil) if the store is empty.
func (s *Store) ListColumns(ctx context.Context) ([]Version, error) {
	return s.queryVersions(ctx, `
		SELECT v.id, v.name, v.seq, v.type_name, v.length, v.null_count
		FROM column_versions v
		JOIN (
			SELECT name, MAX(seq) AS seq FROM column_versions GROUP BY name
		) latest ON v.name = latest.name AND v.seq = latest.seq
		ORDER BY v.name COLLATE BINARY ASC
	`)
}

// History returns every version of the named column, oldest first.
func (s *Store) History(ctx context.Context, name string) ([]Version, error) {
	return s.queryVersions(ctx, `
		SELECT id, name, seq, type_name, length, null_count
		FROM column_versions
		WHERE name = ?
		ORDER BY seq ASC
	`, name)
}

func (s *Store) queryVersions(ctx context.Context, query string, args ...any) ([]Version, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query versions: %w", err)
	}
	defer rows.Close()

	versions := []Version{}
	for rows.Next() {
		var v Version
		if err := rows.Scan(&v.ID, &v.Name, &v.Seq, &v.TypeName, &v.Length, &v.NullCount); err != nil {
			return nil, fmt.Errorf("scan version: %w", err)
		}
		versions = append(versions, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate versions: %w", err)
	}
	return versions, nil
}
