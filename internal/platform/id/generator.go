package id

import (
	"fmt"

	"github.com/google/uuid"
)

// Generator creates opaque IDs for queue items and stat rows.
type Generator interface {
	NewID() (string, error)
}

// TimeOrderedGenerator emits UUIDv7 values, which sort by creation time.
type TimeOrderedGenerator struct{}

func NewTimeOrderedGenerator() *TimeOrderedGenerator {
	return &TimeOrderedGenerator{}
}

func (g *TimeOrderedGenerator) NewID() (string, error) {
	value, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("generate uuid v7: %w", err)
	}

	return value.String(), nil
}
