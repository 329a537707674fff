package tui

import (
	"io"
	"sync"
	"time"
)

// bellCooldown keeps rapid flaps from turning into a continuous beep.
const bellCooldown = 250 * time.Millisecond

// BellHaptics stands in for vibration on terminals by ringing the bell.
// It implements game.Haptics.
type BellHaptics struct {
	mu   sync.Mutex
	w    io.Writer
	last time.Time
	now  func() time.Time
}

// NewBellHaptics rings the bell on w.
func NewBellHaptics(w io.Writer) *BellHaptics {
	return &BellHaptics{w: w, now: time.Now}
}

// Vibrate rings the bell once for the whole pattern.
func (b *BellHaptics) Vibrate(pattern ...time.Duration) {
	if b == nil || b.w == nil || len(pattern) == 0 {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.now()
	if !b.last.IsZero() && now.Sub(b.last) < bellCooldown {
		return
	}
	b.last = now
	_, _ = io.WriteString(b.w, "\a")
}
