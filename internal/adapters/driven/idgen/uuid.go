package idgen

import (
	"github.com/google/uuid"

	"github.com/custodia-labs/respona-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.IDGenerator = (*UUIDGenerator)(nil)

// UUIDGenerator produces random UUIDv4 identifiers
type UUIDGenerator struct{}

// NewUUIDGenerator creates a new UUIDGenerator
func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// NewID returns a random UUIDv4 string
func (g *UUIDGenerator) NewID() string {
	return uuid.NewString()
}
