// Package palette assigns each project a stable accent color.
//
// The palette is fixed at eight entries. Selection is a pure function of the
// project name: the name seeds a PRNG that draws a single index, so the same
// name maps to the same color on every run and every platform. Different
// names may collide; no uniqueness is promised or needed.
package palette

import (
	"hash/fnv"
	"math/rand"

	"github.com/charmbracelet/lipgloss"
)

// Color is one palette entry.
type Color struct {
	Name string
	Hex  string
}

// Style returns a lipgloss foreground style for the color.
func (c Color) Style() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(c.Hex))
}

// Palette is the fixed set of project accent colors.
var Palette = [8]Color{
	{Name: "hot-pink", Hex: "#F50057"},
	{Name: "pink", Hex: "#C51162"},
	{Name: "red", Hex: "#F44336"},
	{Name: "orange", Hex: "#FF9800"},
	{Name: "green", Hex: "#388E3C"},
	{Name: "teal", Hex: "#00796B"},
	{Name: "violet", Hex: "#7C4DFF"},
	{Name: "purple", Hex: "#9C27B0"},
}

// ColorFor returns the palette entry for a project name.
// Deterministic: the FNV-64a hash of the name seeds the draw.
func ColorFor(name string) Color {
	h := fnv.New64a()
	_, _ = h.Write([]byte(name))
	rng := rand.New(rand.NewSource(int64(h.Sum64()))) //nolint:gosec // not crypto, determinism is the point
	return Palette[rng.Intn(len(Palette))]
}

// Contains reports whether hex matches a palette entry.
func Contains(hex string) bool {
	for _, c := range Palette {
		if c.Hex == hex {
			return true
		}
	}
	return false
}
