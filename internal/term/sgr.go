package term

// applySGR mutates the current pen per CSI m parameters. Unknown or
// unsupported parameters are ignored; SGR sequences are never recorded to
// the Debug Ring even when no-op, since 'm' is itself a recognized final.
func (s *Screen) applySGR(params []int) {
	if len(params) == 0 {
		params = []int{0}
	}
	i := 0
	for i < len(params) {
		p := params[i]
		switch {
		case p == 0:
			s.pen = Pen{}
		case p == 1:
			s.pen.Attrs |= AttrBold
		case p == 3:
			s.pen.Attrs |= AttrItalic
		case p == 4:
			s.pen.Attrs |= AttrUnderline
		case p == 5 || p == 6:
			s.pen.Attrs |= AttrBlink
		case p == 7:
			s.pen.Attrs |= AttrReverse
		case p == 9:
			s.pen.Attrs |= AttrStrike
		case p == 22:
			s.pen.Attrs &^= AttrBold
		case p == 23:
			s.pen.Attrs &^= AttrItalic
		case p == 24:
			s.pen.Attrs &^= AttrUnderline
		case p == 25:
			s.pen.Attrs &^= AttrBlink
		case p == 27:
			s.pen.Attrs &^= AttrReverse
		case p == 29:
			s.pen.Attrs &^= AttrStrike
		case p >= 30 && p <= 37:
			s.pen.Fg = Color{Kind: ColorBasic, Value: p - 30}
		case p == 38:
			color, next := parseExtendedColor(params, i+1)
			s.pen.Fg = color
			i = next
			continue
		case p == 39:
			s.pen.Fg = Color{}
		case p >= 40 && p <= 47:
			s.pen.Bg = Color{Kind: ColorBasic, Value: p - 40}
		case p == 48:
			color, next := parseExtendedColor(params, i+1)
			s.pen.Bg = color
			i = next
			continue
		case p == 49:
			s.pen.Bg = Color{}
		case p >= 90 && p <= 97:
			s.pen.Fg = Color{Kind: ColorBasic, Value: 8 + (p - 90)}
		case p >= 100 && p <= 107:
			s.pen.Bg = Color{Kind: ColorBasic, Value: 8 + (p - 100)}
		}
		i++
	}
}

// parseExtendedColor parses the "5;N" (256-color) or "2;R;G;B" (truecolor)
// subparameters following an SGR 38 or 48, starting at idx. It returns the
// parsed color and the index of the next unconsumed parameter.
func parseExtendedColor(params []int, idx int) (Color, int) {
	if idx >= len(params) {
		return Color{}, idx
	}
	switch params[idx] {
	case 5:
		if idx+1 < len(params) {
			return Color{Kind: Color256, Value: params[idx+1]}, idx + 2
		}
		return Color{}, idx + 1
	case 2:
		if idx+3 < len(params) {
			return Color{Kind: ColorRGB, R: params[idx+1], G: params[idx+2], B: params[idx+3]}, idx + 4
		}
		return Color{}, len(params)
	default:
		return Color{}, idx + 1
	}
}
