// Package term implements the in-process terminal emulator: a byte-stream
// parser that maintains a fixed-size cell grid, cursor, and a bounded ring of
// unrecognized escape sequences for diagnostics.
package term

import (
	"fmt"
	"strings"
)

// DefaultRingCapacity is the default number of Debug Ring entries retained.
const DefaultRingCapacity = 10

// RingEntry records one unhandled escape sequence.
type RingEntry struct {
	Sequence string // human-readable form, e.g. "\e[?25l"
	RawHex   string // space-separated hex bytes, e.g. "1b 5b 3f 32 35 6c"
}

// DebugRing is a bounded FIFO of unhandled escape sequences. When full, the
// oldest entry is dropped and Dropped is incremented. Not safe for concurrent
// use; callers serialize access (see hostsession.Session).
type DebugRing struct {
	capacity int
	entries  []RingEntry
	dropped  int
}

// NewDebugRing creates a ring with the given capacity. A non-positive
// capacity falls back to DefaultRingCapacity.
func NewDebugRing(capacity int) *DebugRing {
	if capacity <= 0 {
		capacity = DefaultRingCapacity
	}
	return &DebugRing{capacity: capacity}
}

// Record appends one unhandled sequence, dropping the oldest entry if full.
func (r *DebugRing) Record(raw []byte) {
	entry := RingEntry{
		Sequence: humanize(raw),
		RawHex:   hexDump(raw),
	}
	if len(r.entries) >= r.capacity {
		r.entries = r.entries[1:]
		r.dropped++
	}
	r.entries = append(r.entries, entry)
}

// Drain returns a snapshot of the ring's entries and drop count. If clear is
// true, the ring is reset afterward.
func (r *DebugRing) Drain(clear bool) ([]RingEntry, int) {
	entries := make([]RingEntry, len(r.entries))
	copy(entries, r.entries)
	dropped := r.dropped
	if clear {
		r.entries = nil
		r.dropped = 0
	}
	return entries, dropped
}

func humanize(raw []byte) string {
	var b strings.Builder
	for _, c := range raw {
		switch {
		case c == 0x1B:
			b.WriteString(`\e`)
		case c >= 0x20 && c < 0x7F:
			b.WriteByte(c)
		default:
			fmt.Fprintf(&b, `\x%02x`, c)
		}
	}
	return b.String()
}

func hexDump(raw []byte) string {
	var b strings.Builder
	for i, c := range raw {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%02x", c)
	}
	return b.String()
}
