package store

import (
	"bytes"
	"fmt"

	"github.com/klauspost/compress/zstd"

	"github.com/roach88/y2km/internal/arrowext"
	"github.com/roach88/y2km/internal/column"
	"github.com/roach88/y2km/internal/y2km"
)

// Encoder and decoder are safe for concurrent EncodeAll/DecodeAll calls.
var (
	encoder *zstd.Encoder
	decoder *zstd.Decoder
)

func init() {
	var err error
	if encoder, err = zstd.NewWriter(nil); err != nil {
		panic(fmt.Sprintf("store: zstd encoder: %v", err))
	}
	if decoder, err = zstd.NewReader(nil); err != nil {
		panic(fmt.Sprintf("store: zstd decoder: %v", err))
	}
}

// marshalColumn encodes a column as zstd-compressed Arrow IPC.
func marshalColumn(name string, seq *y2km.Sequence) ([]byte, error) {
	var buf bytes.Buffer
	if err := arrowext.WriteIPC(&buf, name, seq); err != nil {
		return nil, fmt.Errorf("marshal column %q: %w", name, err)
	}
	return encoder.EncodeAll(buf.Bytes(), nil), nil
}

// unmarshalColumn decodes a payload written by marshalColumn. typeName is
// resolved through types, whose factory builds the returned array.
func unmarshalColumn(payload []byte, types *column.Registry, typeName string) (column.Array, error) {
	raw, err := decoder.DecodeAll(payload, nil)
	if err != nil {
		return nil, fmt.Errorf("unmarshal column: decompress: %w", err)
	}
	_, col, err := arrowext.ReadIPC(bytes.NewReader(raw), types, typeName)
	if err != nil {
		return nil, fmt.Errorf("unmarshal column: %w", err)
	}
	return col, nil
}
