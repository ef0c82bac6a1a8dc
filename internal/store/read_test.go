package store

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/y2km/internal/column"
	"github.com/roach88/y2km/internal/y2km"
)

func TestReadColumn_ReturnsLatest(t *testing.T) {
	s := createTestStore(t, "id-1", "id-2")
	ctx := context.Background()

	_, err := s.WriteColumn(ctx, "start", createTestSequence(t, "2000-01"))
	require.NoError(t, err)
	_, err = s.WriteColumn(ctx, "start", createTestSequence(t, "1999-12", nil, "2001-06"))
	require.NoError(t, err)

	seq, v, err := s.ReadColumn(ctx, "start")
	require.NoError(t, err)
	assert.Equal(t, "id-2", v.ID)
	assert.Equal(t, int64(2), v.Seq)
	assert.Equal(t, []string{"1999-12", "", "2001-06"}, seq.ToText())
	assert.Equal(t, []bool{false, true, false}, seq.IsMissing())
}

func TestReadVersion(t *testing.T) {
	s := createTestStore(t, "id-1", "id-2")
	ctx := context.Background()

	_, err := s.WriteColumn(ctx, "start", createTestSequence(t, "2000-01"))
	require.NoError(t, err)
	_, err = s.WriteColumn(ctx, "start", createTestSequence(t, "2001-06"))
	require.NoError(t, err)

	seq, v, err := s.ReadVersion(ctx, "start", 1)
	require.NoError(t, err)
	assert.Equal(t, "id-1", v.ID)
	assert.Equal(t, []string{"2000-01"}, seq.ToText())

	_, _, err = s.ReadVersion(ctx, "start", 3)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReadColumn_NotFound(t *testing.T) {
	s := createTestStore(t)

	_, _, err := s.ReadColumn(context.Background(), "missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReadColumn_AppliesRangePolicy(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path, WithRangePolicy(y2km.RangeSaturate))
	require.NoError(t, err)
	defer s.Close()
	ctx := context.Background()

	_, err = s.WriteColumn(ctx, "edge", createTestSequence(t, "4730-08"))
	require.NoError(t, err)

	seq, _, err := s.ReadColumn(ctx, "edge")
	require.NoError(t, err)
	assert.Equal(t, y2km.RangeSaturate, seq.Policy())

	shifted, err := seq.Shift(1)
	require.NoError(t, err)
	assert.Equal(t, y2km.MaxMonth, shifted.Value(0))
}

func TestReadColumn_RejectsUnknownType(t *testing.T) {
	s := createTestStore(t, "id-1")
	ctx := context.Background()

	_, err := s.WriteColumn(ctx, "start", createTestSequence(t, "2000-01"))
	require.NoError(t, err)
	_, err = s.db.Exec(`UPDATE column_versions SET type_name = 'int16' WHERE id = 'id-1'`)
	require.NoError(t, err)

	_, _, err = s.ReadColumn(ctx, "start")
	require.Error(t, err)
	assert.ErrorIs(t, err, column.ErrUnknownType)
}

func TestReadColumn_BuildsThroughRegisteredFactory(t *testing.T) {
	reg := column.NewRegistry()
	require.NoError(t, reg.Register(wrappedType{y2km.DType}))

	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path, WithTypes(reg))
	require.NoError(t, err)
	defer s.Close()
	ctx := context.Background()

	_, err = s.WriteColumn(ctx, "start", createTestSequence(t, "2000-01", nil))
	require.NoError(t, err)

	_, _, err = s.ReadColumn(ctx, "start")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `stored type "y2km" is not y2km`)
}

// wrappedType registers under the y2km name but builds arrays that are not
// y2km Sequences.
type wrappedType struct{ column.DType }

func (w wrappedType) ArrayFactory() column.Factory {
	return wrappedFactory{w.DType.ArrayFactory()}
}

type wrappedFactory struct{ column.Factory }

func (f wrappedFactory) FromStorage(values []int64, valid []bool) (column.Array, error) {
	arr, err := f.Factory.FromStorage(values, valid)
	if err != nil {
		return nil, err
	}
	return wrappedArray{arr}, nil
}

func (wrappedFactory) Concat(arrays []column.Array) (column.Array, error) {
	if len(arrays) != 1 {
		return nil, fmt.Errorf("wrapped concat of %d arrays", len(arrays))
	}
	return arrays[0], nil
}

type wrappedArray struct{ column.Array }

func TestListColumnsAndHistory(t *testing.T) {
	s := createTestStore(t, "id-1", "id-2", "id-3")
	ctx := context.Background()

	versions, err := s.ListColumns(ctx)
	require.NoError(t, err)
	assert.NotNil(t, versions)
	assert.Empty(t, versions)

	_, err = s.WriteColumn(ctx, "start", createTestSequence(t, "2000-01"))
	require.NoError(t, err)
	_, err = s.WriteColumn(ctx, "end", createTestSequence(t, "2001-06", "2001-07"))
	require.NoError(t, err)
	_, err = s.WriteColumn(ctx, "start", createTestSequence(t, "2000-02", nil))
	require.NoError(t, err)

	versions, err = s.ListColumns(ctx)
	require.NoError(t, err)
	require.Len(t, versions, 2)
	assert.Equal(t, "end", versions[0].Name)
	assert.Equal(t, "start", versions[1].Name)
	assert.Equal(t, int64(2), versions[1].Seq)
	assert.Equal(t, 1, versions[1].NullCount)

	history, err := s.History(ctx, "start")
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, []string{"id-1", "id-3"}, []string{history[0].ID, history[1].ID})
}
