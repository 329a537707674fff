package audio

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/tui-flappy/internal/game"
)

// SampleRate is the output rate used for the speaker.
const SampleRate = beep.SampleRate(44100)

// ErrNotInitialized is returned by Play before a successful Init.
var ErrNotInitialized = errors.New("audio: player not initialized")

// Player plays effect sounds on the speaker. It implements game.EffectPlayer.
// A Player whose Init failed stays silent.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	initialized bool
	logger      *log.Logger
}

// NewPlayer creates a player with volume in [0, 1].
func NewPlayer(volume float64, logger *log.Logger) *Player {
	if logger == nil {
		logger = log.Default()
	}
	return &Player{
		mixer:  &beep.Mixer{},
		volume: volume,
		logger: logger,
	}
}

// Init opens the speaker. Failure is logged once and leaves the player silent.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}

	if err := speaker.Init(SampleRate, SampleRate.N(100*time.Millisecond)); err != nil {
		p.logger.Warn("audio disabled", "err", err)
		return fmt.Errorf("audio: cannot open speaker: %w", err)
	}

	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Play queues the sound for fx.
func (p *Player) Play(fx game.Effect) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return ErrNotInitialized
	}

	s := Sound(fx, p.volume, SampleRate)
	if s == nil {
		return fmt.Errorf("audio: no sound for effect %v", fx)
	}

	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
	return nil
}

// PlayEffect implements game.EffectPlayer. Errors are dropped.
func (p *Player) PlayEffect(fx game.Effect) {
	_ = p.Play(fx)
}

// Close stops playback and releases the speaker.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}

	speaker.Clear()
	speaker.Close()
	p.initialized = false
}

var _ game.EffectPlayer = (*Player)(nil)
