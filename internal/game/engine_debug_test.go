//go:build debug

package game

import (
	"math"
	"testing"
)

func TestEngineTickPanicsOnNaN(t *testing.T) {
	e := newTestEngine(t, nil, nil)
	e.Start()
	e.Tick(1000)

	defer func() {
		if recover() == nil {
			t.Error("Tick(NaN) should panic in debug builds")
		}
	}()
	e.Tick(math.NaN())
}
