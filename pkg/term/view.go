package term

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

const nbsp = ' '

// Renderer produces the scrollback view of raw tool output: the last height
// lines, styled, each truncated to width.
type Renderer struct {
	conv   *Converter
	width  int
	height int
}

// NewRenderer builds a Renderer. Non-positive dimensions fall back to 80x24.
func NewRenderer(r *lipgloss.Renderer, width, height int) *Renderer {
	if width <= 0 {
		width = 80
	}
	if height <= 0 {
		height = 24
	}
	return &Renderer{conv: NewConverter(r), width: width, height: height}
}

// Render converts raw log lines into the styled view. Embedded line breaks
// split into separate lines, leading spaces become non-breaking spaces so
// downstream layout cannot collapse indentation, and only the last height
// lines are kept.
func (r *Renderer) Render(lines []string) string {
	expanded := expandLines(lines)
	if len(expanded) > r.height {
		expanded = expanded[len(expanded)-r.height:]
	}

	out := make([]string, 0, len(expanded))
	for _, line := range expanded {
		segs := truncateSegments(ParseLine(indentNBSP(line)), r.width)
		var b strings.Builder
		for _, seg := range segs {
			b.WriteString(r.conv.renderSegment(seg))
		}
		out = append(out, b.String())
	}
	return strings.Join(out, "\n")
}

// ConvertLine styles a single raw line without truncation.
func (r *Renderer) ConvertLine(line string) string {
	return r.conv.ConvertLine(indentNBSP(line))
}

// expandLines splits raw entries on embedded newlines and drops carriage
// returns.
func expandLines(lines []string) []string {
	var out []string
	for _, line := range lines {
		line = strings.ReplaceAll(line, "\r\n", "\n")
		line = strings.ReplaceAll(line, "\r", "")
		out = append(out, strings.Split(line, "\n")...)
	}
	return out
}

// indentNBSP replaces the leading run of spaces with non-breaking spaces.
func indentNBSP(s string) string {
	i := 0
	for i < len(s) && s[i] == ' ' {
		i++
	}
	if i == 0 {
		return s
	}
	return strings.Repeat(string(nbsp), i) + s[i:]
}

// truncateSegments cuts styled segments to a display width, wide runes
// accounted for.
func truncateSegments(segs []Segment, width int) []Segment {
	used := 0
	out := make([]Segment, 0, len(segs))
	for _, seg := range segs {
		w := runewidth.StringWidth(seg.Text)
		if used+w <= width {
			out = append(out, seg)
			used += w
			continue
		}
		remain := width - used
		if remain > 0 {
			seg.Text = runewidth.Truncate(seg.Text, remain, "")
			if seg.Text != "" {
				out = append(out, seg)
			}
		}
		break
	}
	return out
}
