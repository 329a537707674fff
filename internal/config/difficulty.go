package config

// DifficultyManager calculates the score-driven speed and gap ramp.
// Every `Every` points the speed grows by SpeedStep and the gap shrinks by
// GapStep, never below MinGap.
type DifficultyManager struct {
	cfg DifficultyConfig
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{cfg: cfg}
}

// SetEnabled enables or disables difficulty progression.
func (d *DifficultyManager) SetEnabled(enabled bool) {
	d.cfg.Enabled = enabled
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Every > 0
}

// Level returns the number of completed difficulty steps for a score.
func (d *DifficultyManager) Level(score int) int {
	if !d.IsEnabled() || score <= 0 {
		return 0
	}
	return score / d.cfg.Every
}

// IsStep reports whether reaching this score triggers a difficulty step.
func (d *DifficultyManager) IsStep(score int) bool {
	return d.IsEnabled() && score > 0 && score%d.cfg.Every == 0
}

// Speed returns the scroll speed for a score given the starting speed.
func (d *DifficultyManager) Speed(baseSpeed float64, score int) float64 {
	return baseSpeed + float64(d.Level(score))*d.cfg.SpeedStep
}

// GapSize returns the pipe gap for a score given the starting gap.
func (d *DifficultyManager) GapSize(baseGap float64, score int) float64 {
	gap := baseGap - float64(d.Level(score))*d.cfg.GapStep
	if d.IsEnabled() && gap < d.cfg.MinGap {
		gap = d.cfg.MinGap
	}
	return gap
}
