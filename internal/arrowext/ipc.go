package arrowext

import (
	"fmt"
	"io"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/ipc"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/roach88/y2km/internal/column"
	"github.com/roach88/y2km/internal/y2km"
)

// Schema returns the single-column schema used for persisted columns.
func Schema(field string) *arrow.Schema {
	return arrow.NewSchema([]arrow.Field{
		{Name: field, Type: NewMonthType(), Nullable: true},
	}, nil)
}

// WriteIPC writes s to w as an Arrow IPC stream with one column named field.
func WriteIPC(w io.Writer, field string, s *y2km.Sequence) error {
	mem := memory.NewGoAllocator()
	schema := Schema(field)

	col := ToArrow(mem, s)
	defer col.Release()

	rec := array.NewRecord(schema, []arrow.Array{col}, int64(s.Len()))
	defer rec.Release()

	wr := ipc.NewWriter(w, ipc.WithSchema(schema), ipc.WithAllocator(mem))
	if err := wr.Write(rec); err != nil {
		wr.Close()
		return fmt.Errorf("write ipc: %w", err)
	}
	if err := wr.Close(); err != nil {
		return fmt.Errorf("write ipc: close: %w", err)
	}
	return nil
}

// ReadIPC reads a stream written by WriteIPC and returns the column name and
// its values. typeName is resolved through reg and the column is built by
// that type's factory. Record batches are concatenated in order.
func ReadIPC(r io.Reader, reg *column.Registry, typeName string) (string, column.Array, error) {
	ct, err := reg.Resolve(typeName)
	if err != nil {
		return "", nil, fmt.Errorf("read ipc: %w", err)
	}
	if err := Register(); err != nil {
		return "", nil, fmt.Errorf("read ipc: %w", err)
	}

	rdr, err := ipc.NewReader(r, ipc.WithAllocator(memory.NewGoAllocator()))
	if err != nil {
		return "", nil, fmt.Errorf("read ipc: %w", err)
	}
	defer rdr.Release()

	schema := rdr.Schema()
	if schema.NumFields() != 1 {
		return "", nil, fmt.Errorf("read ipc: expected 1 column, got %d", schema.NumFields())
	}
	field := schema.Field(0)

	var parts []column.Array
	for rdr.Next() {
		// The record is only valid until the next call to Next; Decode copies.
		part, err := Decode(ct, rdr.Record().Column(0))
		if err != nil {
			return "", nil, fmt.Errorf("read ipc: column %q: %w", field.Name, err)
		}
		parts = append(parts, part)
	}
	if err := rdr.Err(); err != nil {
		return "", nil, fmt.Errorf("read ipc: %w", err)
	}

	col, err := ct.ArrayFactory().Concat(parts)
	if err != nil {
		return "", nil, fmt.Errorf("read ipc: column %q: %w", field.Name, err)
	}
	return field.Name, col, nil
}
