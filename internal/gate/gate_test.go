package gate

import (
	"testing"
	"time"

	"barcode-scanner/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestGate_CooldownWindow(t *testing.T) {
	g := New(2 * time.Second)
	key := model.ScanKey{Symbology: model.SymbologyEAN13, Payload: "5901234123457"}
	t0 := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	assert.True(t, g.ShouldTrigger(key, t0), "first sight must trigger")
	assert.False(t, g.ShouldTrigger(key, t0.Add(500*time.Millisecond)), "repeat inside cooldown must be suppressed")
	assert.True(t, g.ShouldTrigger(key, t0.Add(2100*time.Millisecond)), "repeat after cooldown must trigger")
}

func TestGate_ExactCooldownBoundaryIsSuppressed(t *testing.T) {
	g := New(2 * time.Second)
	key := model.ScanKey{Symbology: model.SymbologyEAN13, Payload: "5901234123457"}
	t0 := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	assert.True(t, g.ShouldTrigger(key, t0))
	// The window is strict: re-triggering requires now-last > cooldown.
	assert.False(t, g.ShouldTrigger(key, t0.Add(2*time.Second)))
}

func TestGate_SuppressionDoesNotExtendWindow(t *testing.T) {
	g := New(2 * time.Second)
	key := model.ScanKey{Symbology: model.SymbologyQRCode, Payload: "hello"}
	t0 := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	assert.True(t, g.ShouldTrigger(key, t0))
	// Suppressed calls must not mutate the slot, so the window still ends
	// 2s after t0, not 2s after the last suppressed sighting.
	assert.False(t, g.ShouldTrigger(key, t0.Add(1900*time.Millisecond)))
	assert.True(t, g.ShouldTrigger(key, t0.Add(2100*time.Millisecond)))
}

func TestGate_DifferentKeyAlwaysTriggers(t *testing.T) {
	g := New(2 * time.Second)
	t0 := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	k1 := model.ScanKey{Symbology: model.SymbologyEAN13, Payload: "111"}
	k2 := model.ScanKey{Symbology: model.SymbologyEAN13, Payload: "222"}

	assert.True(t, g.ShouldTrigger(k1, t0))
	assert.True(t, g.ShouldTrigger(k2, t0.Add(100*time.Millisecond)))
}

func TestGate_SingleSlotLimitation(t *testing.T) {
	// The gate remembers only the most recent key, so alternating between
	// two codes defeats the cooldown for both. Keep this behavior; see the
	// per-key discussion in DESIGN.md before changing it.
	g := New(2 * time.Second)
	t0 := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	k1 := model.ScanKey{Symbology: model.SymbologyEAN13, Payload: "111"}
	k2 := model.ScanKey{Symbology: model.SymbologyEAN13, Payload: "222"}

	assert.True(t, g.ShouldTrigger(k1, t0))
	assert.True(t, g.ShouldTrigger(k2, t0.Add(100*time.Millisecond)))
	assert.True(t, g.ShouldTrigger(k1, t0.Add(200*time.Millisecond)),
		"k2 overwrote the slot, so k1 re-triggers even 0.2s after its last sighting")
}

func TestGate_SameKeyDifferentSymbology(t *testing.T) {
	g := New(2 * time.Second)
	t0 := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	ean := model.ScanKey{Symbology: model.SymbologyEAN13, Payload: "123"}
	qr := model.ScanKey{Symbology: model.SymbologyQRCode, Payload: "123"}

	assert.True(t, g.ShouldTrigger(ean, t0))
	assert.True(t, g.ShouldTrigger(qr, t0.Add(10*time.Millisecond)),
		"identity is (symbology, payload), not payload alone")
}

func TestGate_Reset(t *testing.T) {
	g := New(2 * time.Second)
	key := model.ScanKey{Symbology: model.SymbologyEAN13, Payload: "5901234123457"}
	t0 := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	assert.True(t, g.ShouldTrigger(key, t0))
	assert.False(t, g.ShouldTrigger(key, t0.Add(time.Second)))

	g.Reset()
	assert.True(t, g.ShouldTrigger(key, t0.Add(1100*time.Millisecond)),
		"reset must force the next call to trigger")
}

func TestGate_DefaultCooldown(t *testing.T) {
	g := New(0)
	key := model.ScanKey{Symbology: model.SymbologyEAN13, Payload: "123"}
	t0 := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	assert.True(t, g.ShouldTrigger(key, t0))
	assert.False(t, g.ShouldTrigger(key, t0.Add(time.Second)),
		"non-positive cooldown falls back to the 2s default")
}
