package render

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/runic/buffer"
	"github.com/lixenwraith/runic/engine"
	"github.com/lixenwraith/runic/terminal"
)

func newSimTarget(t *testing.T, cols, rows int) *TcellTarget {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	if err := sim.Init(); err != nil {
		t.Fatalf("simulation screen init: %v", err)
	}
	sim.SetSize(cols, rows)
	t.Cleanup(sim.Fini)

	return &TcellTarget{
		screen:  sim,
		events:  make(chan terminal.Event, 16),
		metrics: engine.NewMetrics(12*monoAspect, 12*1.2, "monospace", 12),
	}
}

// TestTcellRendererPushesCells tests that grid cells reach the screen
func TestTcellRendererPushesCells(t *testing.T) {
	tt := newSimTarget(t, 4, 2)
	r := NewTcellRenderer(tt, engine.Settings{})

	g := buffer.NewGrid(4, 2)
	g.Merge(buffer.Glyph('A').WithFg(buffer.RGB(255, 0, 0)), 1, 1)

	if err := r.Render(engine.Context{Cols: 4, Rows: 2}, g); err != nil {
		t.Fatalf("render: %v", err)
	}

	sim := tt.screen.(tcell.SimulationScreen)
	cells, w, _ := sim.GetContents()
	got := cells[1*w+1]
	if len(got.Runes) == 0 || got.Runes[0] != 'A' {
		t.Errorf("cell (1,1) = %v, want 'A'", got.Runes)
	}
}

// TestTcellMouseConversion tests button transition synthesis
func TestTcellMouseConversion(t *testing.T) {
	tt := newSimTarget(t, 10, 10)

	press := tt.convertMouse(tcell.NewEventMouse(2, 3, tcell.Button1, 0))
	if press.MouseAction != terminal.MouseActionPress || press.MouseBtn != terminal.MouseBtnLeft {
		t.Errorf("press converted to %v/%v", press.MouseAction, press.MouseBtn)
	}

	drag := tt.convertMouse(tcell.NewEventMouse(3, 3, tcell.Button1, 0))
	if drag.MouseAction != terminal.MouseActionDrag {
		t.Errorf("held-button motion = %v, want drag", drag.MouseAction)
	}

	release := tt.convertMouse(tcell.NewEventMouse(3, 3, tcell.ButtonNone, 0))
	if release.MouseAction != terminal.MouseActionRelease {
		t.Errorf("button clear = %v, want release", release.MouseAction)
	}

	move := tt.convertMouse(tcell.NewEventMouse(4, 4, tcell.ButtonNone, 0))
	if move.MouseAction != terminal.MouseActionMove {
		t.Errorf("no-button motion = %v, want move", move.MouseAction)
	}
	if move.MouseX != 4 || move.MouseY != 4 {
		t.Errorf("position = (%d,%d), want (4,4)", move.MouseX, move.MouseY)
	}
}
