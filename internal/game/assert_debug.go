//go:build debug

package game

import (
	"fmt"
	"math"
)

// assertFinite panics on NaN or Inf. Only compiled with -tags debug.
func assertFinite(name string, v float64) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		panic(fmt.Sprintf("game: %s is not finite: %v", name, v))
	}
}
