package testutil

import (
	"fmt"
	"sync"
)

// SequentialIDs generates version IDs "<prefix>-0001", "<prefix>-0002", ...
//
// Unlike store.FixedGenerator it never runs out, so scenarios can write any
// number of versions and still produce byte-identical traces.
//
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type SequentialIDs struct {
	mu     sync.Mutex
	prefix string
	n      int
}

// NewSequentialIDs creates a generator. An empty prefix defaults to "ver".
func NewSequentialIDs(prefix string) *SequentialIDs {
	if prefix == "" {
		prefix = "ver"
	}
	return &SequentialIDs{prefix: prefix}
}

// Generate returns the next ID. Implements store.IDGenerator.
func (g *SequentialIDs) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("%s-%04d", g.prefix, g.n)
}

// Reset restarts numbering. After Reset, the next ID ends in 0001.
func (g *SequentialIDs) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n = 0
}
