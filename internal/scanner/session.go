// Package scanner orchestrates the per-frame pipeline and owns per-session
// state.
package scanner

import (
	"context"
	"image"
	"time"

	"barcode-scanner/internal/gate"
	"barcode-scanner/internal/history"
	"barcode-scanner/internal/model"

	"github.com/rs/zerolog"
)

// Detector produces deduplicated candidates for one frame.
type Detector interface {
	DetectAll(frame image.Image) []model.BarcodeCandidate
}

// Resolver maps a code to product metadata. It never fails: an unresolvable
// code comes back as a not-found value.
type Resolver interface {
	Resolve(ctx context.Context, code string) model.ProductInfo
}

// Session is the state for one camera session. Its gate and history are
// owned exclusively here and must never be shared across sessions; with that
// single-owner discipline no locking is needed on the pipeline path.
type Session struct {
	id       string
	detector Detector
	resolver Resolver
	gate     *gate.Gate
	history  *history.History
	now      func() time.Time
	logger   zerolog.Logger
}

// NewSession wires one scanning session with its own gate and history.
func NewSession(id string, detector Detector, resolver Resolver, cooldown time.Duration, logger zerolog.Logger) *Session {
	return &Session{
		id:       id,
		detector: detector,
		resolver: resolver,
		gate:     gate.New(cooldown),
		history:  history.New(),
		now:      time.Now,
		logger:   logger.With().Str("component", "session").Str("session_id", id).Logger(),
	}
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// ProcessFrame runs one frame through decode, gating, resolution and
// history. Suppressed candidates come back with Triggered=false and no
// product; a frame with no detections yields an empty result list. The
// worst observable outcome for any candidate is a not-found product, never
// an error.
func (s *Session) ProcessFrame(ctx context.Context, frame image.Image) []model.ScanResult {
	candidates := s.detector.DetectAll(frame)
	results := make([]model.ScanResult, 0, len(candidates))

	for _, cand := range candidates {
		now := s.now()
		if !s.gate.ShouldTrigger(cand.Key(), now) {
			s.logger.Debug().
				Str("symbology", cand.Symbology).
				Str("payload", cand.Payload).
				Msg("lookup suppressed by cooldown")
			results = append(results, model.ScanResult{Candidate: cand})
			continue
		}

		info := s.resolver.Resolve(ctx, cand.Payload)
		s.history.Append(model.ScanRecord{
			Timestamp: now,
			Symbology: cand.Symbology,
			Payload:   cand.Payload,
			Product:   info,
		})
		results = append(results, model.ScanResult{
			Candidate: cand,
			Product:   &info,
			Triggered: true,
		})
	}

	return results
}

// Recent returns the last n history records in insertion order.
func (s *Session) Recent(n int) []model.ScanRecord {
	return s.history.Recent(n)
}

// HistoryLen returns the number of accepted scans so far.
func (s *Session) HistoryLen() int {
	return s.history.Len()
}

// Seen reports whether a payload already has a history entry, independent of
// the time-based gate.
func (s *Session) Seen(payload string) bool {
	return s.history.Seen(payload)
}

// Reset clears the gate so the next detection of any code triggers again.
func (s *Session) Reset() {
	s.gate.Reset()
	s.logger.Info().Msg("gate reset, ready to rescan")
}
