// Package history keeps the append-only log of accepted scans for one
// session.
package history

import "barcode-scanner/internal/model"

// History records every accepted trigger in insertion order. It only grows:
// there are no update or delete operations and no eviction. Unbounded growth
// is fine for interactive sessions but worth revisiting before reusing this
// for long-running ones.
//
// A history is owned by exactly one scanning session and is not safe for
// concurrent use.
type History struct {
	records []model.ScanRecord
}

// New creates an empty history.
func New() *History {
	return &History{}
}

// Append adds one record. Records are never edited or removed afterwards.
func (h *History) Append(rec model.ScanRecord) {
	h.records = append(h.records, rec)
}

// Recent returns the last n records in insertion order. n <= 0 or n larger
// than the log returns everything recorded so far. The returned slice is a
// copy; callers cannot disturb the log through it.
func (h *History) Recent(n int) []model.ScanRecord {
	if n <= 0 || n > len(h.records) {
		n = len(h.records)
	}
	tail := h.records[len(h.records)-n:]
	out := make([]model.ScanRecord, len(tail))
	copy(out, tail)
	return out
}

// Len returns the number of recorded scans.
func (h *History) Len() int {
	return len(h.records)
}

// Seen reports whether a payload already has a recorded entry. It serves as
// a secondary duplicate guard independent of the time-based gate.
func (h *History) Seen(payload string) bool {
	for _, rec := range h.records {
		if rec.Payload == payload {
			return true
		}
	}
	return false
}
