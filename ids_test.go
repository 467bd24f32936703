package main

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSequenceGeneratorStartsAfterSeed(t *testing.T) {
	g := NewSequenceGenerator([]Card{{ID: "3"}, {ID: "abc"}, {ID: "12"}})
	assert.Equal(t, "13", g.NewID())
	assert.Equal(t, "14", g.NewID())
}

func TestSequenceGeneratorEmptySeed(t *testing.T) {
	g := NewSequenceGenerator(nil)
	assert.Equal(t, "1", g.NewID())
}

func TestUUIDGenerator(t *testing.T) {
	var g UUIDGenerator
	a, b := g.NewID(), g.NewID()
	assert.NotEqual(t, a, b)
	_, err := uuid.Parse(a)
	require.NoError(t, err)
}

func TestNewIDGenerator(t *testing.T) {
	assert.IsType(t, UUIDGenerator{}, newIDGenerator(idStrategyUUID, nil))
	assert.IsType(t, &SequenceGenerator{}, newIDGenerator(idStrategySequence, nil))
}
