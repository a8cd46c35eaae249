package term

import "strconv"

// handleCSI parses one CSI sequence starting at data[0]==ESC, data[1]=='['
// and dispatches it. It returns the number of bytes consumed from data. If
// no final byte (0x40-0x7E) is found before data runs out, the whole chunk is
// recorded to the Debug Ring and consumed (the sequence is assumed to have
// been split across reads, which this parser does not reassemble).
func (s *Screen) handleCSI(data []byte) int {
	i := 2
	private := false
	if i < len(data) && data[i] == '?' {
		private = true
		i++
	}

	var params []int
	cur := ""
	for i < len(data) {
		c := data[i]
		switch {
		case c >= '0' && c <= '9':
			cur += string(c)
			i++
		case c == ';':
			params = append(params, atoiDefault(cur))
			cur = ""
			i++
		case c >= 0x40 && c <= 0x7E:
			if cur != "" || len(params) > 0 {
				params = append(params, atoiDefault(cur))
			}
			final := c
			i++
			s.dispatchCSI(params, final, private, data[:i])
			return i
		default:
			// Unexpected byte inside the sequence; record what we have and
			// stop parsing it as a CSI.
			s.Ring.Record(data[:i])
			return i
		}
	}
	s.Ring.Record(data)
	return len(data)
}

func atoiDefault(s string) int {
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

// param returns the parameter at idx, or def if absent or explicitly 0
// (params default to 0 when empty, and most CSI operations in turn default a
// missing or zero parameter to 1 or another stated default).
func param(params []int, idx, def int) int {
	if idx >= len(params) || params[idx] == 0 {
		return def
	}
	return params[idx]
}

// rawParam returns the parameter at idx without substituting for zero, or
// def if the parameter is absent entirely.
func rawParam(params []int, idx, def int) int {
	if idx >= len(params) {
		return def
	}
	return params[idx]
}

func (s *Screen) dispatchCSI(params []int, final byte, private bool, raw []byte) {
	if private {
		// Private-mode CSI is not interpreted (cursor visibility, alternate
		// screen, bracketed paste, etc.); it falls into the same unhandled
		// path as any other unrecognized final byte and is debug-recorded.
		s.pendingWrap = false
		s.Ring.Record(raw)
		return
	}

	if final != 'b' {
		s.pendingWrap = false
	}

	switch final {
	case 'H', 'f':
		r := param(params, 0, 1) - 1
		c := param(params, 1, 1) - 1
		s.cursorRow = s.clampRow(r)
		s.cursorCol = s.clampCol(c)
	case 'A':
		n := maxInt(param(params, 0, 1), 1)
		s.cursorRow = s.clampRow(s.cursorRow - n)
	case 'B':
		n := maxInt(param(params, 0, 1), 1)
		s.cursorRow = s.clampRow(s.cursorRow + n)
	case 'C':
		n := maxInt(param(params, 0, 1), 1)
		s.cursorCol = s.clampCol(s.cursorCol + n)
	case 'D':
		n := maxInt(param(params, 0, 1), 1)
		s.cursorCol = s.clampCol(s.cursorCol - n)
	case 'G':
		c := param(params, 0, 1) - 1
		s.cursorCol = s.clampCol(maxInt(c, 0))
	case 'd':
		r := param(params, 0, 1) - 1
		s.cursorRow = s.clampRow(maxInt(r, 0))
	case 'J':
		s.eraseDisplay(rawParam(params, 0, 0))
	case 'K':
		s.eraseLine(rawParam(params, 0, 0))
	case 'L':
		s.insertLines(maxInt(param(params, 0, 1), 1))
	case 'M':
		s.deleteLines(maxInt(param(params, 0, 1), 1))
	case 'P':
		s.deleteChars(maxInt(param(params, 0, 1), 1))
	case '@':
		s.insertChars(maxInt(param(params, 0, 1), 1))
	case 'X':
		s.eraseChars(maxInt(param(params, 0, 1), 1))
	case 'S':
		n := maxInt(param(params, 0, 1), 1)
		for k := 0; k < n; k++ {
			s.scrollUp()
		}
	case 'T':
		n := maxInt(param(params, 0, 1), 1)
		for k := 0; k < n; k++ {
			s.scrollDown()
		}
	case 'I':
		n := maxInt(param(params, 0, 1), 1)
		col := s.cursorCol
		for k := 0; k < n; k++ {
			col = ((col / 8) + 1) * 8
		}
		s.cursorCol = s.clampCol(col)
	case 'Z':
		if s.cursorCol > 0 {
			s.cursorCol = ((s.cursorCol - 1) / 8) * 8
		}
	case 'b':
		n := maxInt(param(params, 0, 1), 1)
		c := s.lastChar
		for k := 0; k < n; k++ {
			s.printChar(c)
		}
	case 'm':
		s.applySGR(params)
	case 'n':
		s.deviceStatusReport(rawParam(params, 0, 0))
	case 'c':
		if rawParam(params, 0, 0) == 0 {
			s.enqueueReply([]byte("\x1b[?1;2c"))
		}
	default:
		s.Ring.Record(raw)
	}
}

func (s *Screen) eraseDisplay(mode int) {
	switch mode {
	case 0:
		s.clearRange(s.cursorRow, s.cursorCol, s.rows-1, s.cols-1)
	case 2:
		for i := range s.cells {
			s.cells[i] = blankRow(s.cols)
		}
		s.cursorRow, s.cursorCol = 0, 0
	}
}

func (s *Screen) eraseLine(mode int) {
	switch mode {
	case 0:
		s.clearRange(s.cursorRow, s.cursorCol, s.cursorRow, s.cols-1)
	case 1:
		s.clearRange(s.cursorRow, 0, s.cursorRow, s.cursorCol)
	case 2:
		s.clearRange(s.cursorRow, 0, s.cursorRow, s.cols-1)
	}
}

// clearRange blanks cells from (r0,c0) to (r1,c1) inclusive, in row-major
// order, across possibly multiple rows.
func (s *Screen) clearRange(r0, c0, r1, c1 int) {
	for r := r0; r <= r1 && r < s.rows; r++ {
		start, end := 0, s.cols-1
		if r == r0 {
			start = c0
		}
		if r == r1 {
			end = c1
		}
		for c := start; c <= end && c < s.cols; c++ {
			s.cells[r][c] = blankCell
		}
	}
}

func (s *Screen) insertLines(n int) {
	if n > s.rows-s.cursorRow {
		n = s.rows - s.cursorRow
	}
	if n <= 0 {
		return
	}
	rows := s.cells
	kept := rows[s.cursorRow : s.rows-n]
	newRows := make([][]Cell, 0, s.rows)
	newRows = append(newRows, rows[:s.cursorRow]...)
	for k := 0; k < n; k++ {
		newRows = append(newRows, blankRow(s.cols))
	}
	newRows = append(newRows, kept...)
	s.cells = newRows
}

func (s *Screen) deleteLines(n int) {
	if n > s.rows-s.cursorRow {
		n = s.rows - s.cursorRow
	}
	if n <= 0 {
		return
	}
	rows := s.cells
	kept := rows[s.cursorRow+n:]
	newRows := make([][]Cell, 0, s.rows)
	newRows = append(newRows, rows[:s.cursorRow]...)
	newRows = append(newRows, kept...)
	for k := 0; k < n; k++ {
		newRows = append(newRows, blankRow(s.cols))
	}
	s.cells = newRows
}

func (s *Screen) deleteChars(n int) {
	row := s.cells[s.cursorRow]
	if n > s.cols-s.cursorCol {
		n = s.cols - s.cursorCol
	}
	if n <= 0 {
		return
	}
	copy(row[s.cursorCol:], row[s.cursorCol+n:])
	for c := s.cols - n; c < s.cols; c++ {
		row[c] = blankCell
	}
}

func (s *Screen) insertChars(n int) {
	row := s.cells[s.cursorRow]
	if n > s.cols-s.cursorCol {
		n = s.cols - s.cursorCol
	}
	if n <= 0 {
		return
	}
	copy(row[s.cursorCol+n:], row[s.cursorCol:s.cols-n])
	for c := s.cursorCol; c < s.cursorCol+n; c++ {
		row[c] = blankCell
	}
}

func (s *Screen) eraseChars(n int) {
	row := s.cells[s.cursorRow]
	end := s.cursorCol + n
	if end > s.cols {
		end = s.cols
	}
	for c := s.cursorCol; c < end; c++ {
		row[c] = blankCell
	}
}

// deviceStatusReport handles CSI n (DSR). p1==5 is a general status query
// (we always answer "ok"); p1==6 reports the cursor position.
func (s *Screen) deviceStatusReport(p1 int) {
	switch p1 {
	case 5:
		s.enqueueReply([]byte("\x1b[0n"))
	case 6:
		row := s.clampRow(s.cursorRow) + 1
		col := s.clampCol(s.cursorCol) + 1
		s.enqueueReply([]byte("\x1b[" + strconv.Itoa(row) + ";" + strconv.Itoa(col) + "R"))
	}
}
