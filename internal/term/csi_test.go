package term

import "testing"

func TestCUPRoundTripWithDSR(t *testing.T) {
	s := NewScreen(24, 80)
	s.Write([]byte("\x1b[3;5H"))
	r, c := s.Cursor()
	if r != 2 || c != 4 {
		t.Fatalf("cursor after CUP = (%d,%d), want (2,4)", r, c)
	}
	s.Write([]byte("\x1b[6n"))
	replies := s.TakeReplies()
	if len(replies) != 1 {
		t.Fatalf("len(replies) = %d, want 1", len(replies))
	}
	if string(replies[0]) != "\x1b[3;5R" {
		t.Errorf("reply = %q, want %q", replies[0], "\x1b[3;5R")
	}
}

func TestDSR5(t *testing.T) {
	s := NewScreen(24, 80)
	s.Write([]byte("\x1b[5n"))
	replies := s.TakeReplies()
	if len(replies) != 1 || string(replies[0]) != "\x1b[0n" {
		t.Fatalf("replies = %v, want [\\x1b[0n]", replies)
	}
}

func TestDA1(t *testing.T) {
	s := NewScreen(24, 80)
	s.Write([]byte("\x1b[c"))
	replies := s.TakeReplies()
	if len(replies) != 1 || string(replies[0]) != "\x1b[?1;2c" {
		t.Fatalf("replies = %v, want [\\x1b[?1;2c]", replies)
	}
}

func TestEraseDisplayIdempotent(t *testing.T) {
	s := NewScreen(5, 10)
	s.Write([]byte("hello world this overflows"))
	s.Write([]byte("\x1b[2J"))
	first := s.RenderASCII()
	s.Write([]byte("\x1b[2J"))
	second := s.RenderASCII()
	if first != second {
		t.Fatalf("ED-2 not idempotent:\n%q\n%q", first, second)
	}
	r, c := s.Cursor()
	if r != 0 || c != 0 {
		t.Errorf("cursor after ED-2 = (%d,%d), want (0,0)", r, c)
	}
}

func TestREP(t *testing.T) {
	s := NewScreen(5, 10)
	s.Write([]byte("X"))
	s.Write([]byte("\x1b[5b"))
	row0 := s.Row(0)
	for i := 0; i < 6; i++ {
		if row0[i].Ch != 'X' {
			t.Errorf("row0[%d] = %q, want 'X'", i, row0[i].Ch)
		}
	}
}

func TestInsertLine(t *testing.T) {
	s := NewScreen(5, 10)
	s.Write([]byte("ABC\r\nDEF\r\nGHI\r\n"))
	s.Write([]byte("\x1b[H"))
	s.Write([]byte("\x1b[L"))

	if row := string(cellsToRunes(s.Row(0))); row != "          " {
		t.Errorf("row0 = %q, want blank", row)
	}
	if got := string(cellsToRunes(s.Row(1)))[:3]; got != "ABC" {
		t.Errorf("row1 = %q, want ABC...", got)
	}
	if got := string(cellsToRunes(s.Row(2)))[:3]; got != "DEF" {
		t.Errorf("row2 = %q, want DEF...", got)
	}
	if got := string(cellsToRunes(s.Row(3)))[:3]; got != "GHI" {
		t.Errorf("row3 = %q, want GHI...", got)
	}
}

func TestDeleteLine(t *testing.T) {
	s := NewScreen(3, 5)
	s.Write([]byte("AAAAA\r\nBBBBB\r\nCCCCC"))
	s.Write([]byte("\x1b[H")) // cursor at row0
	s.Write([]byte("\x1b[M")) // delete row0
	if got := string(cellsToRunes(s.Row(0))); got != "BBBBB" {
		t.Errorf("row0 = %q, want BBBBB", got)
	}
	if got := string(cellsToRunes(s.Row(1))); got != "CCCCC" {
		t.Errorf("row1 = %q, want CCCCC", got)
	}
	if got := string(cellsToRunes(s.Row(2))); got != "     " {
		t.Errorf("row2 = %q, want blank", got)
	}
}

func TestDeleteChar(t *testing.T) {
	s := NewScreen(2, 5)
	s.Write([]byte("ABCDE"))
	s.Write([]byte("\x1b[H\x1b[2P"))
	if got := string(cellsToRunes(s.Row(0))); got != "CDE  " {
		t.Errorf("row0 = %q, want %q", got, "CDE  ")
	}
}

func TestInsertChar(t *testing.T) {
	s := NewScreen(2, 5)
	s.Write([]byte("ABCDE"))
	s.Write([]byte("\x1b[H\x1b[2@"))
	if got := string(cellsToRunes(s.Row(0))); got != "  ABC" {
		t.Errorf("row0 = %q, want %q", got, "  ABC")
	}
}

func TestEraseChar(t *testing.T) {
	s := NewScreen(2, 5)
	s.Write([]byte("ABCDE"))
	s.Write([]byte("\x1b[H\x1b[2X"))
	if got := string(cellsToRunes(s.Row(0))); got != "  CDE" {
		t.Errorf("row0 = %q, want %q", got, "  CDE")
	}
	_, c := s.Cursor()
	if c != 0 {
		t.Errorf("ECH must not move cursor, got col %d", c)
	}
}

func TestScrollUpDown(t *testing.T) {
	s := NewScreen(3, 5)
	s.Write([]byte("AAAAA\r\nBBBBB\r\nCCCCC"))
	s.Write([]byte("\x1b[1S")) // scroll up
	if got := string(cellsToRunes(s.Row(0))); got != "BBBBB" {
		t.Errorf("row0 after SU = %q, want BBBBB", got)
	}
	s.Write([]byte("\x1b[1T")) // scroll down
	if got := string(cellsToRunes(s.Row(0))); got != "     " {
		t.Errorf("row0 after SD = %q, want blank", got)
	}
	if got := string(cellsToRunes(s.Row(1))); got != "BBBBB" {
		t.Errorf("row1 after SD = %q, want BBBBB", got)
	}
}

func TestTabForwardBack(t *testing.T) {
	s := NewScreen(3, 30)
	s.Write([]byte("\x1b[9G")) // col 8
	s.Write([]byte("\x1b[I"))  // CHT one stop forward
	_, c := s.Cursor()
	if c != 16 {
		t.Errorf("col after CHT = %d, want 16", c)
	}
	s.Write([]byte("\x1b[Z")) // CBT
	_, c = s.Cursor()
	if c != 8 {
		t.Errorf("col after CBT = %d, want 8", c)
	}
}

func TestPrivateModeRecordedToDebugRing(t *testing.T) {
	s := NewScreen(3, 10)
	s.Write([]byte("\x1b[?25l\x1b[?25h"))
	entries, dropped := s.Ring.Drain(false)
	if len(entries) != 2 || dropped != 0 {
		t.Fatalf("len(entries) = %d, dropped = %d, want 2 entries, 0 dropped", len(entries), dropped)
	}
	if entries[0].Sequence != "\\e[?25l" || entries[1].Sequence != "\\e[?25h" {
		t.Errorf("entries = %+v, want \\e[?25l and \\e[?25h", entries)
	}
}

func TestPrivateModeAnyFinalRecorded(t *testing.T) {
	s := NewScreen(3, 10)
	s.Write([]byte("\x1b[?2004h"))
	s.Write([]byte("\x1b[?9999Z"))
	entries, _ := s.Ring.Drain(false)
	if len(entries) != 2 {
		t.Fatalf("len(entries) = %d, want 2", len(entries))
	}
}

func TestCursorAlwaysInBounds(t *testing.T) {
	s := NewScreen(5, 5)
	s.Write([]byte("\x1b[0;0H"))
	r, c := s.Cursor()
	if r < 0 || r >= 5 || c < 0 || c >= 5 {
		t.Fatalf("cursor out of bounds: (%d,%d)", r, c)
	}
	s.Write([]byte("\x1b[999;999H"))
	r, c = s.Cursor()
	if r != 4 || c != 4 {
		t.Fatalf("cursor after oversized CUP = (%d,%d), want (4,4)", r, c)
	}
}
