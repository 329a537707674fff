// Package audio synthesizes the game's sound effects with beep and plays them
// through the system speaker.
package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/vovakirdan/tui-flappy/internal/game"
)

// Wave is an oscillator wave shape.
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveSaw
)

// oscillator generates a fixed-length periodic wave.
type oscillator struct {
	freq     float64
	phase    float64
	position int
	length   int
	wave     Wave
	rate     beep.SampleRate
}

// NewOscillator returns a streamer producing duration worth of the wave.
func NewOscillator(freq float64, duration time.Duration, wave Wave, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:   freq,
		length: rate.N(duration),
		wave:   wave,
		rate:   rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.length {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1
			} else {
				val = -1
			}
		case WaveSaw:
			val = 2 * (o.phase - 0.5)
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// decay scales a stream by a gain that falls exponentially from start to end
// over the given number of samples.
type decay struct {
	streamer beep.Streamer
	start    float64
	ratio    float64 // end / start
	position int
	length   int
}

// NewDecay applies an exponential gain ramp from start to end over duration.
func NewDecay(s beep.Streamer, start, end float64, duration time.Duration, rate beep.SampleRate) beep.Streamer {
	return &decay{
		streamer: s,
		start:    start,
		ratio:    end / start,
		length:   max(rate.N(duration), 1),
	}
}

func (d *decay) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = d.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		progress := math.Min(float64(d.position)/float64(d.length), 1)
		gain := d.start * math.Pow(d.ratio, progress)
		samples[i][0] *= gain
		samples[i][1] *= gain
		d.position++
	}
	return n, ok
}

func (d *decay) Err() error { return d.streamer.Err() }

// Tone describes one synthesized effect.
type Tone struct {
	Wave     Wave
	Freq     float64
	Gain     float64
	Duration time.Duration
}

// Tones maps each effect to its sound.
var Tones = map[game.Effect]Tone{
	game.EffectFlap:  {Wave: WaveSine, Freq: 400, Gain: 0.1, Duration: 200 * time.Millisecond},
	game.EffectPoint: {Wave: WaveSquare, Freq: 800, Gain: 0.1, Duration: 100 * time.Millisecond},
	game.EffectHit:   {Wave: WaveSaw, Freq: 150, Gain: 0.2, Duration: 500 * time.Millisecond},
}

// releaseGain is the level every tone decays to.
const releaseGain = 0.01

// Sound builds the streamer for an effect, scaled by volume in [0, 1].
// Unknown effects return nil.
func Sound(fx game.Effect, volume float64, rate beep.SampleRate) beep.Streamer {
	tone, ok := Tones[fx]
	if !ok {
		return nil
	}
	osc := NewOscillator(tone.Freq, tone.Duration, tone.Wave, rate)
	shaped := NewDecay(osc, tone.Gain, releaseGain, tone.Duration, rate)
	return newVolume(shaped, volume)
}

// newVolume wraps a stream in a volume effect. math.Log2(0) is -Inf, so zero
// volume is handled as silence.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}
