package term

import (
	"strconv"
	"strings"
)

// RenderASCII joins the grid's rows with "\n", each row at its full width.
// Cell styling is ignored.
func (s *Screen) RenderASCII() string {
	lines := make([]string, s.rows)
	for r := 0; r < s.rows; r++ {
		var b strings.Builder
		for _, cell := range s.cells[r] {
			ch := cell.Ch
			if ch == 0 {
				ch = ' '
			}
			b.WriteRune(ch)
		}
		lines[r] = b.String()
	}
	return strings.Join(lines, "\n")
}

// RenderANSI renders the grid with SGR escape sequences delimiting runs of
// like-styled cells, trimming trailing spaces on each line and emitting a
// reset at the end of every line that carried any styling.
func (s *Screen) RenderANSI() string {
	lines := make([]string, s.rows)
	for r := 0; r < s.rows; r++ {
		lines[r] = s.renderANSILine(r)
	}
	return strings.Join(lines, "\n")
}

func (s *Screen) renderANSILine(row int) string {
	cells := s.cells[row]

	lastCol := -1
	for c := s.cols - 1; c >= 0; c-- {
		if cells[c].Ch != ' ' && cells[c].Ch != 0 || cells[c].Pen != (Pen{}) {
			lastCol = c
			break
		}
	}
	if lastCol == -1 {
		return ""
	}

	var b strings.Builder
	var cur Pen
	first := true
	styled := false
	for c := 0; c <= lastCol; c++ {
		cell := cells[c]
		if first || cell.Pen != cur {
			if cell.Pen != (Pen{}) {
				b.WriteString(sgrEscape(cell.Pen))
				styled = true
			} else if !first {
				b.WriteString("\x1b[0m")
			}
			cur = cell.Pen
		}
		first = false
		ch := cell.Ch
		if ch == 0 {
			ch = ' '
		}
		b.WriteRune(ch)
	}
	if styled {
		b.WriteString("\x1b[0m")
	}
	return b.String()
}

// sgrEscape renders a Pen as a single CSI m sequence.
func sgrEscape(p Pen) string {
	var parts []string
	if p.Attrs&AttrBold != 0 {
		parts = append(parts, "1")
	}
	if p.Attrs&AttrItalic != 0 {
		parts = append(parts, "3")
	}
	if p.Attrs&AttrUnderline != 0 {
		parts = append(parts, "4")
	}
	if p.Attrs&AttrBlink != 0 {
		parts = append(parts, "5")
	}
	if p.Attrs&AttrReverse != 0 {
		parts = append(parts, "7")
	}
	if p.Attrs&AttrStrike != 0 {
		parts = append(parts, "9")
	}
	parts = append(parts, colorParams(p.Fg, 30, 90, 38)...)
	parts = append(parts, colorParams(p.Bg, 40, 100, 48)...)
	if len(parts) == 0 {
		return "\x1b[0m"
	}
	return "\x1b[" + strings.Join(parts, ";") + "m"
}

func colorParams(c Color, base, brightBase, extended int) []string {
	switch c.Kind {
	case ColorBasic:
		if c.Value < 8 {
			return []string{strconv.Itoa(base + c.Value)}
		}
		return []string{strconv.Itoa(brightBase + c.Value - 8)}
	case Color256:
		return []string{strconv.Itoa(extended), "5", strconv.Itoa(c.Value)}
	case ColorRGB:
		return []string{strconv.Itoa(extended), "2", strconv.Itoa(c.R), strconv.Itoa(c.G), strconv.Itoa(c.B)}
	default:
		return nil
	}
}
