// Package gate suppresses redundant product lookups for a code that stays
// in front of the camera.
package gate

import (
	"time"

	"barcode-scanner/internal/model"
)

// DefaultCooldown is the minimum time before the same code re-triggers.
const DefaultCooldown = 2 * time.Second

// Gate is the per-session re-scan suppressor. It remembers only the most
// recently triggered key: alternating rapidly between two distinct codes
// defeats the cooldown for both, because each trigger overwrites the single
// slot. That limitation is kept for compatibility and pinned by tests; the
// per-key alternative is discussed in DESIGN.md.
//
// A gate is owned by exactly one scanning session and is not safe for
// concurrent use.
type Gate struct {
	cooldown time.Duration
	lastKey  model.ScanKey
	lastTime time.Time
	hasLast  bool
}

// New creates a gate. Non-positive cooldowns fall back to DefaultCooldown.
func New(cooldown time.Duration) *Gate {
	if cooldown <= 0 {
		cooldown = DefaultCooldown
	}
	return &Gate{cooldown: cooldown}
}

// ShouldTrigger reports whether a detection of key at time now warrants a
// fresh lookup, updating the slot when it does. A repeat of the last key
// inside the cooldown window is suppressed without mutating state.
func (g *Gate) ShouldTrigger(key model.ScanKey, now time.Time) bool {
	if g.hasLast && key == g.lastKey && now.Sub(g.lastTime) <= g.cooldown {
		return false
	}
	g.lastKey = key
	g.lastTime = now
	g.hasLast = true
	return true
}

// Reset clears the slot so the next detection of any key triggers.
func (g *Gate) Reset() {
	g.lastKey = model.ScanKey{}
	g.lastTime = time.Time{}
	g.hasLast = false
}
