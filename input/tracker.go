// Package input converts terminal mouse events into the pointer state
// the runner samples once per accepted frame.
package input

import (
	"github.com/lixenwraith/runic/terminal"
)

// Tracker accumulates the latest pointer position and pressed state.
// Positions are stored in pixel units (cell coordinates scaled by cell
// metrics) so the runner's divide-by-metrics conversion is uniform
// across character and pixel surfaces.
//
// Not goroutine-safe: the runner both feeds and samples the tracker on
// its loop goroutine, between frame callbacks.
type Tracker struct {
	cellW, cellH float64

	px, py  float64
	pressed bool
}

// NewTracker creates a tracker scaling cell coordinates by the given
// cell metrics
func NewTracker(cellW, cellH float64) *Tracker {
	if cellW <= 0 {
		cellW = 1
	}
	if cellH <= 0 {
		cellH = 1
	}
	return &Tracker{cellW: cellW, cellH: cellH}
}

// Handle consumes one terminal event. Non-mouse events and wheel
// motion are ignored.
func (t *Tracker) Handle(ev terminal.Event) {
	if ev.Type != terminal.EventMouse {
		return
	}

	switch ev.MouseBtn {
	case terminal.MouseBtnWheelUp, terminal.MouseBtnWheelDown:
		return
	}

	t.px = float64(ev.MouseX) * t.cellW
	t.py = float64(ev.MouseY) * t.cellH

	switch ev.MouseAction {
	case terminal.MouseActionPress:
		if ev.MouseBtn == terminal.MouseBtnLeft {
			t.pressed = true
		}
	case terminal.MouseActionRelease:
		t.pressed = false
	}
}

// Pixel returns the latest raw pointer offset in pixel units
func (t *Tracker) Pixel() (x, y float64) {
	return t.px, t.py
}

// Pressed reports whether the primary button is held
func (t *Tracker) Pressed() bool {
	return t.pressed
}
