// Package keys mints block and entity identifiers.
//
// The only contract is uniqueness within one document: a Generator never
// returns the same block key twice, nor the same entity key twice.
package keys

import (
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Generator mints identifiers for blocks and entities.
type Generator interface {
	BlockKey() string
	EntityKey() string
}

// BlockKeyLength is the length of keys produced by Random, matching the
// five character keys draft.js generates.
const BlockKeyLength = 5

// Random produces short random block keys and monotonic entity keys.
type Random struct {
	mu     sync.Mutex
	seen   map[string]struct{}
	entity int
	source func() string
}

// NewRandom returns a Random generator backed by UUIDv4.
func NewRandom() *Random {
	return &Random{
		seen: make(map[string]struct{}),
		source: func() string {
			return strings.ReplaceAll(uuid.NewString(), "-", "")
		},
	}
}

// BlockKey returns a fresh random key, retrying on collision.
func (g *Random) BlockKey() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	for {
		raw := g.source()
		for i := 0; i+BlockKeyLength <= len(raw); i += BlockKeyLength {
			key := raw[i : i+BlockKeyLength]
			if _, dup := g.seen[key]; dup {
				continue
			}
			g.seen[key] = struct{}{}
			return key
		}
	}
}

// EntityKey returns "0", "1", "2", ... in creation order.
func (g *Random) EntityKey() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	key := strconv.Itoa(g.entity)
	g.entity++
	return key
}

// Sequential produces deterministic keys, useful for tests and diffable output.
type Sequential struct {
	mu     sync.Mutex
	block  int
	entity int
}

// NewSequential returns a generator yielding block keys "b0", "b1", ... and
// entity keys "0", "1", ...
func NewSequential() *Sequential {
	return &Sequential{}
}

func (g *Sequential) BlockKey() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	key := "b" + strconv.Itoa(g.block)
	g.block++
	return key
}

func (g *Sequential) EntityKey() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	key := strconv.Itoa(g.entity)
	g.entity++
	return key
}
