package challenge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateProducesSixDigits(t *testing.T) {
	g := NewGenerator()
	for i := 0; i < 100; i++ {
		code, err := g.Generate()
		require.NoError(t, err)
		require.Len(t, code, CodeLength)
		for _, c := range code {
			assert.True(t, c >= '0' && c <= '9', "non-digit %q in code %q", c, code)
		}
	}
}

func TestGenerateDoesNotRepeatImmediately(t *testing.T) {
	// Collisions in a million-value space are possible but a run of
	// duplicates across 20 draws points at a broken generator.
	g := NewGenerator()
	seen := make(map[string]int)
	for i := 0; i < 20; i++ {
		code, err := g.Generate()
		require.NoError(t, err)
		seen[code]++
	}
	assert.Greater(t, len(seen), 15)
}
