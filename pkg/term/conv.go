// Package term converts raw scaffolding-tool output, ANSI escape codes
// included, into styled lines for terminal display.
package term

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Segment is a run of text with uniform styling, produced by ParseLine.
type Segment struct {
	Text       string
	Foreground string // lipgloss color value; empty means default
	Background string
	Bold       bool
	Faint      bool
	Italic     bool
	Underline  bool
}

type sgrState struct {
	fg        string
	bg        string
	bold      bool
	faint     bool
	italic    bool
	underline bool
}

func (s sgrState) segment(text string) Segment {
	return Segment{
		Text:       text,
		Foreground: s.fg,
		Background: s.bg,
		Bold:       s.bold,
		Faint:      s.faint,
		Italic:     s.italic,
		Underline:  s.underline,
	}
}

const esc = '\x1b'

// ParseLine splits a raw line into styled segments. SGR escape sequences
// update the styling state; every other escape sequence is dropped. Malformed
// sequences are discarded, never echoed.
func ParseLine(line string) []Segment {
	var segs []Segment
	var state sgrState
	var text strings.Builder

	flush := func() {
		if text.Len() == 0 {
			return
		}
		segs = append(segs, state.segment(text.String()))
		text.Reset()
	}

	runes := []rune(line)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r != esc {
			text.WriteRune(r)
			continue
		}

		// Escape sequence. CSI sequences run to a final byte in @-~;
		// anything else drops the ESC plus one introducer rune.
		if i+1 >= len(runes) {
			break
		}
		if runes[i+1] != '[' {
			i++
			continue
		}

		j := i + 2
		for j < len(runes) && !isCSIFinal(runes[j]) {
			j++
		}
		if j >= len(runes) {
			// unterminated sequence, drop the rest of the line's escape
			i = len(runes)
			continue
		}
		if runes[j] == 'm' {
			flush()
			state = applySGR(state, string(runes[i+2:j]))
		}
		i = j
	}
	flush()

	return segs
}

func isCSIFinal(r rune) bool {
	return r >= '@' && r <= '~'
}

// applySGR folds one SGR parameter list into the styling state.
func applySGR(state sgrState, params string) sgrState {
	codes := strings.Split(params, ";")
	for i := 0; i < len(codes); i++ {
		n, err := strconv.Atoi(codes[i])
		if err != nil && codes[i] != "" {
			continue // malformed parameter, ignore
		}
		switch {
		case n == 0 || codes[i] == "":
			state = sgrState{}
		case n == 1:
			state.bold = true
		case n == 2:
			state.faint = true
		case n == 3:
			state.italic = true
		case n == 4:
			state.underline = true
		case n == 22:
			state.bold, state.faint = false, false
		case n == 23:
			state.italic = false
		case n == 24:
			state.underline = false
		case n >= 30 && n <= 37:
			state.fg = strconv.Itoa(n - 30)
		case n == 38:
			var color string
			color, i = extendedColor(codes, i)
			if color != "" {
				state.fg = color
			}
		case n == 39:
			state.fg = ""
		case n >= 40 && n <= 47:
			state.bg = strconv.Itoa(n - 40)
		case n == 48:
			var color string
			color, i = extendedColor(codes, i)
			if color != "" {
				state.bg = color
			}
		case n == 49:
			state.bg = ""
		case n >= 90 && n <= 97:
			state.fg = strconv.Itoa(n - 90 + 8)
		case n >= 100 && n <= 107:
			state.bg = strconv.Itoa(n - 100 + 8)
		}
	}
	return state
}

// extendedColor consumes a 38/48 extended color sequence starting after index i.
// Returns the lipgloss color value ("" when malformed) and the last index
// consumed.
func extendedColor(codes []string, i int) (string, int) {
	if i+1 >= len(codes) {
		return "", len(codes)
	}
	switch codes[i+1] {
	case "5": // 256-color: 38;5;n
		if i+2 >= len(codes) {
			return "", len(codes)
		}
		if _, err := strconv.Atoi(codes[i+2]); err != nil {
			return "", i + 2
		}
		return codes[i+2], i + 2
	case "2": // truecolor: 38;2;r;g;b
		if i+4 >= len(codes) {
			return "", len(codes)
		}
		var rgb [3]int
		for k := 0; k < 3; k++ {
			v, err := strconv.Atoi(codes[i+2+k])
			if err != nil || v < 0 || v > 255 {
				return "", i + 4
			}
			rgb[k] = v
		}
		return fmt.Sprintf("#%02x%02x%02x", rgb[0], rgb[1], rgb[2]), i + 4
	default:
		return "", i + 1
	}
}

// Converter renders parsed segments through a lipgloss renderer so the output
// matches the destination's color profile.
type Converter struct {
	renderer *lipgloss.Renderer
}

// NewConverter builds a Converter. A nil renderer uses the lipgloss default.
func NewConverter(r *lipgloss.Renderer) *Converter {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	return &Converter{renderer: r}
}

// ConvertLine re-renders one raw line: ANSI codes in, lipgloss styling out.
func (c *Converter) ConvertLine(line string) string {
	var b strings.Builder
	for _, seg := range ParseLine(line) {
		b.WriteString(c.renderSegment(seg))
	}
	return b.String()
}

func (c *Converter) renderSegment(seg Segment) string {
	style := c.renderer.NewStyle()
	styled := false
	if seg.Foreground != "" {
		style = style.Foreground(lipgloss.Color(seg.Foreground))
		styled = true
	}
	if seg.Background != "" {
		style = style.Background(lipgloss.Color(seg.Background))
		styled = true
	}
	if seg.Bold {
		style = style.Bold(true)
		styled = true
	}
	if seg.Faint {
		style = style.Faint(true)
		styled = true
	}
	if seg.Italic {
		style = style.Italic(true)
		styled = true
	}
	if seg.Underline {
		style = style.Underline(true)
		styled = true
	}
	if !styled {
		return seg.Text
	}
	return style.Render(seg.Text)
}
