package palette

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestColorFor_When_CalledTwice_ReturnsSameColor(t *testing.T) {
	t.Parallel()

	names := []string{"My App", "my-app", "Gatsby Blog", "", "café", "ÅÄÖ", "a b c d"}
	for _, name := range names {
		first := ColorFor(name)
		second := ColorFor(name)
		assert.Equal(t, first, second, "color for %q must be stable", name)
	}
}

func TestColorFor_When_AnyName_ReturnsPaletteMember(t *testing.T) {
	t.Parallel()

	for i := 0; i < 200; i++ {
		c := ColorFor(fmt.Sprintf("project-%d", i))
		assert.True(t, Contains(c.Hex), "color %q not in palette", c.Hex)
		assert.NotEmpty(t, c.Name)
	}
}

func TestColorFor_When_ManyNames_UsesMultiplePaletteEntries(t *testing.T) {
	t.Parallel()

	seen := make(map[string]struct{})
	for i := 0; i < 200; i++ {
		c := ColorFor(fmt.Sprintf("project-%d", i))
		seen[c.Hex] = struct{}{}
	}
	// 200 draws across 8 colors should not all land on one entry.
	assert.Greater(t, len(seen), 1)
}

func TestContains_When_UnknownHex(t *testing.T) {
	t.Parallel()

	assert.False(t, Contains("#000000"))
	assert.False(t, Contains(""))
}
