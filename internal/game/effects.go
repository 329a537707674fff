package game

import "time"

// Effect is a sound cue emitted by the engine.
type Effect int

const (
	EffectFlap Effect = iota
	EffectPoint
	EffectHit
)

func (e Effect) String() string {
	switch e {
	case EffectFlap:
		return "flap"
	case EffectPoint:
		return "point"
	case EffectHit:
		return "hit"
	default:
		return "unknown"
	}
}

// EffectPlayer plays sound cues. Implementations must not block and must
// swallow their own failures.
type EffectPlayer interface {
	PlayEffect(Effect)
}

// Haptics plays a vibration pattern of alternating on/off durations.
type Haptics interface {
	Vibrate(pattern ...time.Duration)
}

// Capability is an optional host feature.
type Capability int

const (
	CapabilitySound Capability = iota
	CapabilityVibration
)

// Capabilities tells the engine which optional host features are available.
type Capabilities interface {
	Supports(Capability) bool
}

// StaticCapabilities is a fixed capability set, usually built from settings.
type StaticCapabilities struct {
	Sound     bool
	Vibration bool
}

// Supports implements Capabilities.
func (s StaticCapabilities) Supports(c Capability) bool {
	switch c {
	case CapabilitySound:
		return s.Sound
	case CapabilityVibration:
		return s.Vibration
	default:
		return false
	}
}

// KVStore persists small integer records such as the high score.
// Get returns def when the key is missing or the store fails;
// Set reports whether the value was written.
type KVStore interface {
	Get(key string, def int) int
	Set(key string, value int) bool
}

// HighScoreKey is the KVStore key holding the best score.
const HighScoreKey = "highScore"

// Vibration patterns.
var (
	vibrateFlap      = []time.Duration{50 * time.Millisecond}
	vibrateCelebrate = []time.Duration{100 * time.Millisecond, 50 * time.Millisecond, 100 * time.Millisecond}
	vibrateHit       = []time.Duration{200 * time.Millisecond, 100 * time.Millisecond, 200 * time.Millisecond}
)

type nopEffects struct{}

func (nopEffects) PlayEffect(Effect)         {}
func (nopEffects) Vibrate(...time.Duration) {}

type nopStore struct{}

func (nopStore) Get(_ string, def int) int { return def }
func (nopStore) Set(string, int) bool      { return false }
