// Package store provides SQLite-backed durable storage for y2km columns.
//
// The store is an append-only log of column versions. Writing a column never
// updates a row; it appends a new version with the next per-name seq, and
// reads return the highest seq unless a specific version is requested.
//
// # Payload format
//
// Each version stores the column as an Arrow IPC stream (one int16 column
// carrying the "y2km" extension name) compressed with zstd. The type name is
// also kept in its own column so listings never need to decode payloads.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//
// Version IDs are UUIDv7, so they sort by creation time.
package store
