// Package decoder turns camera frames into deduplicated barcode candidates
// by fanning one frame out across the preprocessing pipeline.
package decoder

import (
	"image"

	"barcode-scanner/internal/model"
	"barcode-scanner/internal/preprocess"

	"github.com/rs/zerolog"
)

// Decoder is the external decode capability: one image in, zero or more raw
// detections out. Implementations report "nothing found" as an empty slice,
// not an error.
type Decoder interface {
	Decode(img image.Image) ([]model.BarcodeCandidate, error)
}

// Engine applies the decode capability to every preprocessed variant of a
// frame and deduplicates the detections by scan key.
type Engine struct {
	dec    Decoder
	logger zerolog.Logger
}

// NewEngine creates a decode engine around the given capability.
func NewEngine(dec Decoder, logger zerolog.Logger) *Engine {
	return &Engine{
		dec:    dec,
		logger: logger.With().Str("component", "decoder").Logger(),
	}
}

// DetectAll decodes every variant of the frame in pipeline order and keeps
// the first occurrence of each scan key, geometry included, so a code only
// needs to be readable in one variant. A failed decode attempt counts as
// zero detections for that variant and never aborts the pass.
func (e *Engine) DetectAll(frame image.Image) []model.BarcodeCandidate {
	seen := make(map[model.ScanKey]struct{})
	var candidates []model.BarcodeCandidate

	for _, v := range preprocess.Variants(frame) {
		detections, err := e.dec.Decode(v.Image)
		if err != nil {
			e.logger.Debug().
				Err(err).
				Str("variant", v.Label).
				Msg("decode attempt failed")
			continue
		}

		for _, d := range detections {
			key := d.Key()
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			candidates = append(candidates, d)

			e.logger.Debug().
				Str("variant", v.Label).
				Str("symbology", d.Symbology).
				Str("payload", d.Payload).
				Msg("new candidate")
		}
	}

	return candidates
}
