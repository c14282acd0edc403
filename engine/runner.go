// Package engine drives the per-frame lifecycle of a character-grid
// animation: frame gating at a target rate, hook dispatch, cursor
// tracking, and delegation to a registered renderer.
package engine

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/runic/buffer"
	"github.com/lixenwraith/runic/core"
	"github.com/lixenwraith/runic/input"
	"github.com/lixenwraith/runic/persist"
	"github.com/lixenwraith/runic/status"
	"github.com/lixenwraith/runic/terminal"
)

// ErrAlreadyStarted reports a second Start on a running runner
var ErrAlreadyStarted = errors.New("engine: runner already started")

// Option configures a Runner at construction
type Option func(*Runner)

// WithTarget supplies an explicit output surface. Without it the
// runner auto-creates the registered renderer's default target at
// Start and closes it when the loop exits.
func WithTarget(t Target) Option {
	return func(r *Runner) { r.target = t }
}

// WithClock injects a time source; tests pair this with MockClock
func WithClock(c Clock) Option {
	return func(r *Runner) { r.clock = c }
}

// WithStore injects the persistence store used when state restoration
// is enabled
func WithStore(st persist.Store) Option {
	return func(r *Runner) { r.store = st }
}

// Runner owns the frame state, the cell grid, and the cursor, and
// drives the lifecycle: gate, advance, persist, cursor, pre, per-cell
// main, post, render. All mutation happens on the loop goroutine
// between ticks.
type Runner struct {
	settings Settings
	vars     any
	hooks    hooks

	clock  Clock
	store  persist.Store
	target Target

	// ownTarget marks a target auto-created at Start, closed on exit
	ownTarget bool

	renderer   Renderer
	renderSkip bool

	tracker  *input.Tracker
	metrics  Metrics
	grid     *buffer.Grid
	cursor   Cursor
	curSnap  atomic.Pointer[Cursor]
	quitKeys map[terminal.Key]struct{}

	// Auto-fit dimensions, updated from resize events
	targetCols, targetRows int

	// Frame state
	epoch      time.Time // time zero for elapsed measurement
	timeOffset float64   // restored milliseconds carried into Time
	timeMS     float64
	frame      atomic.Int64
	cycle      int64

	// Tick gate
	interval  time.Duration
	lastTick  time.Time
	gateValid bool

	fps      fpsEstimator
	lastFPS  float64
	hasFrame bool

	// Control
	running   atomic.Bool
	stopCh    chan struct{}
	stopOnce  sync.Once
	doneCh    chan struct{}
	readyCh   chan error
	readyOnce sync.Once
	errCh     chan error

	// Cached status gauges
	statFPS     *status.Float
	statFrames  *atomic.Int64
	statSkips   *atomic.Int64
	statCycle   *atomic.Int64
	statWarning *status.Text
}

// New creates a runner for the program. Settings merge over defaults;
// the program's optional hooks resolve once, here, not per frame.
func New(p Program, s Settings, vars any, opts ...Option) (*Runner, error) {
	if p == nil {
		return nil, errors.New("engine: nil program")
	}

	s = s.withDefaults()

	r := &Runner{
		settings: s,
		vars:     vars,
		hooks:    resolveHooks(p),
		clock:    SystemClock{},
		interval: time.Duration(float64(time.Second) / s.FPS),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
		readyCh:  make(chan error, 1),
		errCh:    make(chan error, 16),

		statFPS:     status.FloatGauge(status.KeyFPS),
		statFrames:  status.Int(status.KeyFrames),
		statSkips:   status.Int(status.KeyTicksSkipped),
		statCycle:   status.Int(status.KeyCycle),
		statWarning: status.TextGauge(status.KeyLastWarning),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Start resolves the renderer pairing, restores persisted state,
// measures metrics, sizes the grid, and launches the loop goroutine.
// A renderer/target kind mismatch is reported and rendering skipped;
// only an unknown renderer name or target construction failure is
// fatal.
func (r *Runner) Start() error {
	if !r.running.CompareAndSwap(false, true) {
		return ErrAlreadyStarted
	}

	quit, err := resolveQuitKeys(r.settings.QuitKeys)
	if err != nil {
		r.running.Store(false)
		return err
	}
	r.quitKeys = quit

	entry, ok := lookupRenderer(r.settings.Renderer)
	if !ok {
		r.running.Store(false)
		return fmt.Errorf("%w: %q", ErrUnknownRenderer, r.settings.Renderer)
	}

	if r.target == nil {
		t, err := entry.newTarget(r.settings)
		if err != nil {
			r.running.Store(false)
			return fmt.Errorf("engine: create target: %w", err)
		}
		r.target = t
		r.ownTarget = true
	}

	if entry.kind != r.target.Kind() {
		r.renderSkip = true
		r.warn(fmt.Errorf("%w: renderer %q wants %s, target is %s",
			ErrRendererMismatch, r.settings.Renderer, entry.kind, r.target.Kind()))
	} else {
		renderer, err := entry.newRenderer(r.target, r.settings)
		if err != nil {
			r.closeOwnTarget()
			r.running.Store(false)
			return fmt.Errorf("engine: create renderer: %w", err)
		}
		r.renderer = renderer
	}

	if r.settings.RestoreState {
		if r.store == nil {
			r.store = persist.NewFileStore(persist.DefaultDir("runic"))
		}
		if st, ok := restoreFrameState(r.store, r.settings.StateKey); ok {
			r.timeOffset = st.timeMS
			r.frame.Store(st.frame)
			r.cycle = st.cycle
		}
		r.cycle++
	}
	r.statCycle.Store(r.cycle)
	status.TextGauge(status.KeyRenderer).Store(r.settings.Renderer)

	r.metrics = r.target.Metrics()
	r.targetCols, r.targetRows = r.target.Size()

	cols, rows := r.dims()
	r.grid = buffer.NewGrid(cols, rows)

	r.tracker = input.NewTracker(r.metrics.CellWidth, r.metrics.LineHeight)
	if !r.settings.AllowSelect {
		if mm, ok := r.target.(MouseModer); ok {
			// Best-effort; surfaces without mouse reporting stay silent
			_ = mm.SetMouseMode(terminal.MouseModeClick | terminal.MouseModeDrag | terminal.MouseModeMotion)
		}
	}

	core.Go(r.run)
	return nil
}

// Stop requests loop shutdown. Idempotent and safe from any goroutine.
func (r *Runner) Stop() {
	r.stopOnce.Do(func() {
		close(r.stopCh)
	})
}

// Done is closed when the loop has exited
func (r *Runner) Done() <-chan struct{} {
	return r.doneCh
}

// Ready resolves once: nil after the first successful frame, or the
// first frame's hook failure
func (r *Runner) Ready() <-chan error {
	return r.readyCh
}

// Errors delivers per-frame failures after startup: hook panics
// (which halt the loop) and renderer errors (which do not). Sends are
// non-blocking; an undrained channel drops reports rather than stall
// a frame.
func (r *Runner) Errors() <-chan error {
	return r.errCh
}

// Running reports whether the loop is active
func (r *Runner) Running() bool {
	return r.running.Load()
}

// Frame returns the accepted frame count
func (r *Runner) Frame() int64 {
	return r.frame.Load()
}

// Cursor returns the most recent frame's cursor snapshot. Safe to
// call from any goroutine while the loop runs.
func (r *Runner) Cursor() Cursor {
	if c := r.curSnap.Load(); c != nil {
		return *c
	}
	return Cursor{}
}

// run is the loop goroutine
func (r *Runner) run() {
	defer func() {
		r.closeOwnTarget()
		r.running.Store(false)
		close(r.doneCh)
	}()

	if err := r.safeBoot(); err != nil {
		r.signalReady(err)
		return
	}

	for {
		select {
		case <-r.stopCh:
			return
		default:
		}

		r.drainEvents()

		accepted, err := r.safeTick(r.clock.Now())
		if err != nil {
			if !r.signalReady(err) {
				r.report(err)
			}
			return
		}
		if accepted && r.settings.Once {
			return
		}

		wait := r.interval
		if r.gateValid {
			wait = r.lastTick.Add(r.interval).Sub(r.clock.Now())
			if wait <= 0 {
				// Behind schedule: yield briefly, the gate carries the
				// remainder so average rate self-corrects
				wait = time.Millisecond
			}
		}

		select {
		case <-r.clock.After(wait):
		case <-r.stopCh:
			return
		}
	}
}

// safeBoot runs the boot hook with panic capture
func (r *Runner) safeBoot() (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("engine: boot hook panic: %v", rec)
		}
	}()

	ctx := r.buildContext()
	r.hooks.boot(ctx, r.grid, r.vars)
	return nil
}

// safeTick runs one gate attempt with panic capture; a captured panic
// halts the loop
func (r *Runner) safeTick(now time.Time) (accepted bool, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("engine: hook panic on frame %d: %v", r.frame.Load(), rec)
		}
	}()

	return r.tick(now), nil
}

// tick is the time-gated frame body. Returns false when the gate
// rejects the attempt (no work done, no drift accumulated).
func (r *Runner) tick(now time.Time) bool {
	if r.gateValid {
		elapsed := now.Sub(r.lastTick)
		if elapsed < r.interval {
			r.statSkips.Add(1)
			return false
		}
		// Carry the remainder forward so skipped wakeups do not drift
		// the average rate
		r.lastTick = now.Add(-(elapsed % r.interval))
	} else {
		r.epoch = now
		r.lastTick = now
		r.gateValid = true
	}

	r.lastFPS = r.fps.tick(now)
	r.statFPS.Set(r.lastFPS)

	r.timeMS = r.timeOffset + float64(now.Sub(r.epoch))/float64(time.Millisecond)
	frame := r.frame.Add(1)
	r.statFrames.Store(frame)

	if r.settings.RestoreState {
		saveFrameState(r.store, r.settings.StateKey, frameState{
			timeMS: r.timeMS,
			frame:  frame,
			cycle:  r.cycle,
		})
	}

	r.updateCursor()
	r.fitGrid()

	ctx := r.buildContext()

	r.hooks.pre(ctx, r.cursor, r.grid, r.vars)

	for i := 0; i < r.grid.Len(); i++ {
		pos := r.grid.CoordOf(i)
		p := r.hooks.main(pos, ctx, r.cursor, r.grid, r.vars)
		if p.IsZero() {
			// No output resets the glyph only; style fields survive
			p = buffer.Glyph(buffer.EmptyChar)
		}
		r.grid.Merge(p, pos.X, pos.Y)
	}

	r.hooks.post(ctx, r.cursor, r.grid, r.vars)

	if r.renderer != nil {
		if err := r.renderer.Render(ctx, r.grid); err != nil {
			r.report(fmt.Errorf("engine: render frame %d: %w", frame, err))
		}
	}

	r.hasFrame = true
	r.signalReady(nil)
	return true
}

// updateCursor converts the tracker's pixel offset to clamped grid
// coordinates, snapshotting the prior cursor first
func (r *Runner) updateCursor() {
	prev := r.cursor.snapshot()

	px, py := r.tracker.Pixel()
	x, y := 0.0, 0.0
	if r.metrics.CellWidth > 0 {
		x = px / r.metrics.CellWidth
	}
	if r.metrics.LineHeight > 0 {
		y = py / r.metrics.LineHeight
	}

	cols, rows := r.grid.Size()
	x = clampCoord(x, cols)
	y = clampCoord(y, rows)

	r.cursor = Cursor{X: x, Y: y, Pressed: r.tracker.Pressed(), Prev: prev}

	snap := r.cursor
	r.curSnap.Store(&snap)
}

// resolveQuitKeys maps configured key names to key constants; an
// unknown name fails loudly like any other settings mistake
func resolveQuitKeys(names []string) (map[terminal.Key]struct{}, error) {
	keys := make(map[terminal.Key]struct{}, len(names))
	for _, name := range names {
		k, ok := terminal.KeyByName(strings.ToLower(strings.TrimSpace(name)))
		if !ok {
			return nil, fmt.Errorf("engine: unknown quit key %q", name)
		}
		keys[k] = struct{}{}
	}
	return keys, nil
}

// clampCoord clamps a fractional coordinate to [0, n-1] so edge
// positions never report an out-of-range cell
func clampCoord(v float64, n int) float64 {
	if v < 0 {
		return 0
	}
	if max := float64(n - 1); v > max {
		if max < 0 {
			return 0
		}
		return max
	}
	return v
}

// fitGrid recreates the grid when the measured dimensions changed.
// All cells reset to empty; nothing carries over.
func (r *Runner) fitGrid() {
	cols, rows := r.dims()
	if gc, gr := r.grid.Size(); cols != gc || rows != gr {
		r.grid.Resize(cols, rows)
	}
}

// dims resolves grid dimensions: explicit settings win, zero values
// auto-fit from the target surface
func (r *Runner) dims() (cols, rows int) {
	cols, rows = r.settings.Cols, r.settings.Rows
	if cols <= 0 {
		cols = r.targetCols
	}
	if rows <= 0 {
		rows = r.targetRows
	}
	if cols < 0 {
		cols = 0
	}
	if rows < 0 {
		rows = 0
	}
	return cols, rows
}

// buildContext composes the read-only per-frame context
func (r *Runner) buildContext() Context {
	cols, rows := 0, 0
	if r.grid != nil {
		cols, rows = r.grid.Size()
	}
	return Context{
		Time:     r.timeMS,
		Frame:    r.frame.Load(),
		Cycle:    r.cycle,
		Cols:     cols,
		Rows:     rows,
		Metrics:  r.metrics,
		FPS:      r.lastFPS,
		Settings: r.settings,
	}
}

// drainEvents consumes pending target events without blocking: mouse
// into the tracker, resizes into the auto-fit cache, quit keys into
// Stop
func (r *Runner) drainEvents() {
	events := r.target.Events()
	if events == nil {
		return
	}
	for {
		select {
		case ev := <-events:
			r.handleEvent(ev)
		default:
			return
		}
	}
}

func (r *Runner) handleEvent(ev terminal.Event) {
	switch ev.Type {
	case terminal.EventMouse:
		r.tracker.Handle(ev)
	case terminal.EventResize:
		r.targetCols, r.targetRows = ev.Cols, ev.Rows
	case terminal.EventKey:
		if _, ok := r.quitKeys[ev.Key]; ok {
			r.Stop()
		}
	case terminal.EventClosed:
		r.Stop()
	case terminal.EventError:
		r.report(fmt.Errorf("engine: input: %w", ev.Err))
	}
}

// signalReady resolves the one-shot readiness signal; reports whether
// this call resolved it
func (r *Runner) signalReady(err error) bool {
	resolved := false
	r.readyOnce.Do(func() {
		r.readyCh <- err
		resolved = true
	})
	return resolved
}

// report delivers a non-fatal error without blocking the frame
func (r *Runner) report(err error) {
	select {
	case r.errCh <- err:
	default:
	}
}

// warn records a reported non-fatal condition in status and on the
// error channel
func (r *Runner) warn(err error) {
	r.statWarning.Store(err.Error())
	r.report(err)
}

func (r *Runner) closeOwnTarget() {
	if r.ownTarget && r.target != nil {
		_ = r.target.Close()
		r.target = nil
		r.ownTarget = false
	}
}
