package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/roach88/y2km/internal/y2km"
)

// Version describes one stored version of a column.
type Version struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Seq       int64  `json:"seq"`
	TypeName  string `json:"type_name"`
	Length    int    `json:"length"`
	NullCount int    `json:"null_count"`
}

// WriteColumn appends a new version of the named column.
// The version's seq is one past the column's current highest seq, starting at 1.
func (s *Store) WriteColumn(ctx context.Context, name string, seq *y2km.Sequence) (Version, error) {
	if name == "" {
		return Version{}, fmt.Errorf("write column: name is required")
	}
	if seq == nil {
		return Version{}, fmt.Errorf("write column %q: nil sequence", name)
	}

	payload, err := marshalColumn(name, seq)
	if err != nil {
		return Version{}, fmt.Errorf("write column %q: %w", name, err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Version{}, fmt.Errorf("write column %q: begin tx: %w", name, err)
	}
	defer tx.Rollback() // No-op if committed

	v := Version{
		ID:        s.ids.Generate(),
		Name:      name,
		TypeName:  y2km.DType.Name(),
		Length:    seq.Len(),
		NullCount: seq.NullCount(),
	}

	if err := tx.QueryRowContext(ctx, `
		SELECT COALESCE(MAX(seq), 0) + 1 FROM column_versions WHERE name = ?
	`, name).Scan(&v.Seq); err != nil {
		return Version{}, fmt.Errorf("write column %q: next seq: %w", name, err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO column_versions
		(id, name, seq, type_name, length, null_count, payload)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		v.ID,
		v.Name,
		v.Seq,
		v.TypeName,
		v.Length,
		v.NullCount,
		payload,
	)
	if err != nil {
		return Version{}, fmt.Errorf("write column %q: %w", name, err)
	}

	if err := tx.Commit(); err != nil {
		return Version{}, fmt.Errorf("write column %q: commit: %w", name, err)
	}

	slog.Debug("column written",
		"name", v.Name,
		"seq", v.Seq,
		"length", v.Length,
		"null_count", v.NullCount,
		"payload_bytes", len(payload),
	)
	return v, nil
}
