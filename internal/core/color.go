package core

// Color represents a foreground color for a screen cell.
// The platform layer maps each value to a terminal style.
type Color uint8

// Palette for game elements.
const (
	ColorDefault Color = iota
	ColorSky
	ColorCloud
	ColorBird
	ColorBeak
	ColorPipe
	ColorPipeCap
	ColorGround
	ColorGrass
	ColorText
	ColorHighlight
	ColorDanger
	ColorGray
)
