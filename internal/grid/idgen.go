package grid

import (
	"strconv"

	"github.com/google/uuid"
)

// IDGenerator produces widget ids.
type IDGenerator interface {
	Next() string
}

// UUIDGenerator produces random UUIDv4 ids.
type UUIDGenerator struct{}

// Next returns a fresh UUID string.
func (UUIDGenerator) Next() string {
	return uuid.NewString()
}

// SequenceGenerator produces auto-incrementing ids with a fixed prefix.
type SequenceGenerator struct {
	Prefix string
	id     int
}

// NewSequenceGenerator creates a sequence generator. Ids look like "w-1".
func NewSequenceGenerator(prefix string) *SequenceGenerator {
	return &SequenceGenerator{Prefix: prefix}
}

// Reset resets the counter to 0.
func (g *SequenceGenerator) Reset() {
	g.id = 0
}

// Next returns the next id.
func (g *SequenceGenerator) Next() string {
	g.id++
	return g.Prefix + strconv.Itoa(g.id)
}
