package model

import "time"

// Symbologies commonly reported by the decode capability. The set is open:
// whatever format string the decoder emits is carried through unchanged.
const (
	SymbologyEAN13   = "EAN_13"
	SymbologyEAN8    = "EAN_8"
	SymbologyUPCA    = "UPC_A"
	SymbologyCode128 = "CODE_128"
	SymbologyQRCode  = "QR_CODE"
)

// Point is one vertex of a detection polygon in frame coordinates.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// BarcodeCandidate is a single decoded-but-not-yet-resolved detection within
// one frame pass. Candidates are produced fresh each pass and never mutated.
type BarcodeCandidate struct {
	Symbology string  `json:"symbology"`
	Payload   string  `json:"payload"`
	Geometry  []Point `json:"geometry,omitempty"`
}

// ScanKey identifies a decoded code. Two candidates with equal keys are the
// same code regardless of which image variant produced them.
type ScanKey struct {
	Symbology string
	Payload   string
}

// Key derives the candidate's identity for deduplication and gating.
func (c BarcodeCandidate) Key() ScanKey {
	return ScanKey{Symbology: c.Symbology, Payload: c.Payload}
}

func (k ScanKey) String() string {
	return k.Symbology + ":" + k.Payload
}

// ScanRecord is one accepted trigger and its resolved product info. History
// is append-only; records are never edited or removed.
type ScanRecord struct {
	Timestamp time.Time   `json:"timestamp"`
	Symbology string      `json:"symbology"`
	Payload   string      `json:"payload"`
	Product   ProductInfo `json:"product"`
}

// ScanResult pairs a candidate with its lookup outcome for one frame.
// Product is nil when the gate suppressed the lookup.
type ScanResult struct {
	Candidate BarcodeCandidate `json:"candidate"`
	Product   *ProductInfo     `json:"product,omitempty"`
	Triggered bool             `json:"triggered"`
}
