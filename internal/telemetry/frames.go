package telemetry

import "time"

// FrameCollector tracks display-frame intervals over a rolling window.
type FrameCollector struct {
	windowSize int
	samples    []time.Duration
	writeIndex int
	count      int
	last       time.Time
}

// NewFrameCollector creates a collector averaging over windowSize frames
// (e.g., 60 for one second at 60fps).
func NewFrameCollector(windowSize int) *FrameCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &FrameCollector{
		windowSize: windowSize,
		samples:    make([]time.Duration, windowSize),
	}
}

// RecordFrame records a frame delivered at now.
func (c *FrameCollector) RecordFrame(now time.Time) {
	if !c.last.IsZero() {
		c.samples[c.writeIndex] = now.Sub(c.last)
		c.writeIndex = (c.writeIndex + 1) % c.windowSize
		if c.count < c.windowSize {
			c.count++
		}
	}
	c.last = now
}

// Reset forgets all samples, e.g. after a pause.
func (c *FrameCollector) Reset() {
	c.writeIndex = 0
	c.count = 0
	c.last = time.Time{}
}

// FrameStats holds aggregated frame timing.
type FrameStats struct {
	Avg time.Duration
	Min time.Duration
	Max time.Duration
	FPS float64
}

// Stats computes statistics over the current window.
func (c *FrameCollector) Stats() FrameStats {
	if c.count == 0 {
		return FrameStats{}
	}

	var total, minD, maxD time.Duration
	for i := 0; i < c.count; i++ {
		d := c.samples[i]
		total += d
		if i == 0 || d < minD {
			minD = d
		}
		if d > maxD {
			maxD = d
		}
	}

	avg := total / time.Duration(c.count)
	var fps float64
	if avg > 0 {
		fps = float64(time.Second) / float64(avg)
	}

	return FrameStats{Avg: avg, Min: minD, Max: maxD, FPS: fps}
}
