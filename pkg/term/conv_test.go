package term

import (
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLine_When_PlainText(t *testing.T) {
	t.Parallel()

	segs := ParseLine("yarn install v1.7.0")
	require.Len(t, segs, 1)
	assert.Equal(t, "yarn install v1.7.0", segs[0].Text)
	assert.Empty(t, segs[0].Foreground)
	assert.False(t, segs[0].Bold)
}

func TestParseLine_When_BasicColor(t *testing.T) {
	t.Parallel()

	segs := ParseLine("\x1b[32msuccess\x1b[0m Saved lockfile.")
	require.Len(t, segs, 2)
	assert.Equal(t, "success", segs[0].Text)
	assert.Equal(t, "2", segs[0].Foreground)
	assert.Equal(t, " Saved lockfile.", segs[1].Text)
	assert.Empty(t, segs[1].Foreground)
}

func TestParseLine_When_BrightColorAndAttributes(t *testing.T) {
	t.Parallel()

	segs := ParseLine("\x1b[1;91merror\x1b[22;39m detail")
	require.Len(t, segs, 2)
	assert.Equal(t, "error", segs[0].Text)
	assert.Equal(t, "9", segs[0].Foreground)
	assert.True(t, segs[0].Bold)
	assert.Equal(t, " detail", segs[1].Text)
	assert.False(t, segs[1].Bold)
	assert.Empty(t, segs[1].Foreground)
}

func TestParseLine_When_256AndTruecolor(t *testing.T) {
	t.Parallel()

	segs := ParseLine("\x1b[38;5;208morange\x1b[0m \x1b[38;2;245;0;87mpink\x1b[0m")
	require.Len(t, segs, 3)
	assert.Equal(t, "208", segs[0].Foreground)
	assert.Equal(t, "#f50057", segs[2].Foreground)
}

func TestParseLine_When_BackgroundColors(t *testing.T) {
	t.Parallel()

	segs := ParseLine("\x1b[44;37m info \x1b[0m")
	require.Len(t, segs, 1)
	assert.Equal(t, "4", segs[0].Background)
	assert.Equal(t, "7", segs[0].Foreground)
}

func TestParseLine_When_MalformedSequences_DegradeGracefully(t *testing.T) {
	t.Parallel()

	// Unknown final byte, non-SGR CSI, bare ESC, unterminated CSI.
	cases := map[string]string{
		"\x1b[999ztext":     "text",
		"\x1b[2Kcleared":    "cleared",
		"plain \x1b then":   "plain then",
		"trailing\x1b[38;5": "trailing",
		"cut\x1b":           "cut",
	}
	for input, want := range cases {
		var got strings.Builder
		for _, seg := range ParseLine(input) {
			got.WriteString(seg.Text)
		}
		assert.Equal(t, want, got.String(), "input %q", input)
	}
}

func TestParseLine_When_ResetMidLine(t *testing.T) {
	t.Parallel()

	segs := ParseLine("\x1b[31;1mfail\x1b[m done")
	require.Len(t, segs, 2)
	assert.Equal(t, "1", segs[0].Foreground)
	assert.True(t, segs[0].Bold)
	assert.Empty(t, segs[1].Foreground)
	assert.False(t, segs[1].Bold)
}

func TestConvertLine_When_ANSIProfile_ReemitsStyledText(t *testing.T) {
	t.Parallel()

	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.ANSI)
	conv := NewConverter(r)

	out := conv.ConvertLine("\x1b[31mnpm ERR!\x1b[0m code ELIFECYCLE")
	assert.Contains(t, out, "npm ERR!")
	assert.Contains(t, out, "code ELIFECYCLE")
	assert.Contains(t, out, "31m", "red foreground must survive the round trip")
}

func TestConvertLine_When_PlainText_PassesThroughUnstyled(t *testing.T) {
	t.Parallel()

	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.TrueColor)
	conv := NewConverter(r)

	assert.Equal(t, "Installing packages...", conv.ConvertLine("Installing packages..."))
}

func TestConvertLine_When_Idempotent_ForPlainInput(t *testing.T) {
	t.Parallel()

	conv := NewConverter(nil)
	in := "  added 1324 packages in 42s"
	assert.Equal(t, conv.ConvertLine(in), conv.ConvertLine(in))
}
