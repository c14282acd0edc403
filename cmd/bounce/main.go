// Command bounce runs a bouncing ball with wall-hit blips. Clicking
// kicks the ball toward the pointer. Escape or Ctrl+C quits.
package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"os/signal"
	"syscall"

	"github.com/lixenwraith/runic/buffer"
	"github.com/lixenwraith/runic/engine"
	_ "github.com/lixenwraith/runic/render"
	"github.com/lixenwraith/runic/sdf"
	"github.com/lixenwraith/runic/vmath"
)

const (
	ballRadius = 1.6  // in row units
	gravity    = 24.0 // rows per second squared
	kickPower  = 30.0
	damping    = 0.96 // energy kept per wall hit
)

// ballState carries the simulation between frames
type ballState struct {
	pos      vmath.Vec2
	vel      vmath.Vec2
	lastTime float64
}

// bounceProgram steps the physics in the pre hook and rasterizes the
// ball per cell in the main hook
type bounceProgram struct {
	synth *synth
}

func (p *bounceProgram) Boot(ctx engine.Context, g *buffer.Grid, vars any) {
	st := vars.(*ballState)
	st.pos = vmath.V2(float64(ctx.Cols)/2, float64(ctx.Rows)/3)
	st.vel = vmath.V2(14, 0)
	st.lastTime = ctx.Time
}

func (p *bounceProgram) Pre(ctx engine.Context, cur engine.Cursor, g *buffer.Grid, vars any) {
	st := vars.(*ballState)
	dt := (ctx.Time - st.lastTime) / 1000
	st.lastTime = ctx.Time
	if dt <= 0 || dt > 0.5 {
		return
	}

	if cur.Pressed && !cur.Prev.Pressed {
		kick := vmath.V2(cur.X, cur.Y).Sub(st.pos)
		if kick.Len() > 0.1 {
			st.vel = st.vel.Add(kick.Norm().Scale(kickPower))
		}
	}

	st.vel.Y += gravity * dt
	st.pos = st.pos.Add(st.vel.Scale(dt))

	maxX := float64(ctx.Cols-1) - ballRadius
	maxY := float64(ctx.Rows-1) - ballRadius
	bounced := false

	if st.pos.X < ballRadius {
		st.pos.X = ballRadius
		st.vel.X = -st.vel.X * damping
		bounced = true
	} else if st.pos.X > maxX {
		st.pos.X = maxX
		st.vel.X = -st.vel.X * damping
		bounced = true
	}
	if st.pos.Y < ballRadius {
		st.pos.Y = ballRadius
		st.vel.Y = -st.vel.Y * damping
		bounced = true
	} else if st.pos.Y > maxY {
		st.pos.Y = maxY
		st.vel.Y = -st.vel.Y * damping
		bounced = true
	}

	// Pitch tracks impact speed
	if bounced && st.vel.Len() > 2 {
		p.synth.blip(vmath.MapClamp(st.vel.Len(), 0, 60, 220, 880))
	}
}

var ballRamp = []rune("@%#*+=-:. ")

func (p *bounceProgram) Main(pos buffer.Coord, ctx engine.Context, cur engine.Cursor, g *buffer.Grid, vars any) buffer.Patch {
	st := vars.(*ballState)

	aspect := ctx.Metrics.Aspect
	if aspect <= 0 {
		aspect = 0.5
	}

	q := vmath.V2(
		(float64(pos.X)-st.pos.X)*aspect,
		float64(pos.Y)-st.pos.Y,
	)
	d := sdf.Circle(q, ballRadius)
	if d >= 0 {
		return buffer.Glyph(buffer.EmptyChar)
	}

	// Shade from the core outward
	i := vmath.MapClamp(-d, 0, ballRadius, float64(len(ballRamp)-1), 0)
	speed := vmath.MapClamp(st.vel.Len(), 0, 60, 0, 1)
	cool := buffer.RGB(80, 160, 255)
	hot := buffer.RGB(255, 90, 60)

	return buffer.Glyph(ballRamp[int(math.Round(i))]).WithFg(cool.Lerp(hot, speed))
}

func main() {
	var (
		renderer = flag.String("renderer", "", "renderer name: text, canvas, tcell")
		fps      = flag.Float64("fps", 0, "target frame rate")
		mute     = flag.Bool("mute", false, "disable audio")
	)
	flag.Parse()

	snd := newSynth()
	if !*mute {
		if err := snd.init(); err != nil {
			fmt.Fprintln(os.Stderr, "bounce: audio unavailable:", err)
		}
	}

	settings := engine.Settings{Renderer: *renderer, FPS: *fps}
	runner, err := engine.New(&bounceProgram{synth: snd}, settings, &ballState{})
	if err != nil {
		fail(err)
	}
	if err := runner.Start(); err != nil {
		fail(err)
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sig
		runner.Stop()
	}()

	if err := <-runner.Ready(); err != nil {
		fail(err)
	}
	<-runner.Done()
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, "bounce:", err)
	os.Exit(1)
}
