package engine

import (
	"github.com/lixenwraith/runic/buffer"
)

// Program is the user hook set. Main is the only required hook; the
// optional lifecycle hooks are discovered once at construction via the
// Booter/PreHook/PostHook interfaces, not re-checked every frame.
//
// Main runs once per cell in row-major order. Its return is a Patch:
// a char-only patch replaces just the glyph, a style patch leaves the
// glyph intact, and the zero Patch resets the glyph to the empty space
// while preserving style.
type Program interface {
	Main(pos buffer.Coord, ctx Context, cur Cursor, g *buffer.Grid, vars any) buffer.Patch
}

// Booter is implemented by programs that need one-time setup before
// the first frame
type Booter interface {
	Boot(ctx Context, g *buffer.Grid, vars any)
}

// PreHook runs before the per-cell pass of each accepted frame
type PreHook interface {
	Pre(ctx Context, cur Cursor, g *buffer.Grid, vars any)
}

// PostHook runs after the per-cell pass, before rendering
type PostHook interface {
	Post(ctx Context, cur Cursor, g *buffer.Grid, vars any)
}

// MainFunc adapts a bare function to Program
type MainFunc func(pos buffer.Coord, ctx Context, cur Cursor, g *buffer.Grid, vars any) buffer.Patch

// Main implements Program
func (f MainFunc) Main(pos buffer.Coord, ctx Context, cur Cursor, g *buffer.Grid, vars any) buffer.Patch {
	return f(pos, ctx, cur, g, vars)
}

// hooks holds the resolved hook set with no-op defaults in place of
// absent optional hooks
type hooks struct {
	boot func(Context, *buffer.Grid, any)
	pre  func(Context, Cursor, *buffer.Grid, any)
	main func(buffer.Coord, Context, Cursor, *buffer.Grid, any) buffer.Patch
	post func(Context, Cursor, *buffer.Grid, any)
}

// resolveHooks binds the program's hooks once
func resolveHooks(p Program) hooks {
	h := hooks{
		boot: func(Context, *buffer.Grid, any) {},
		pre:  func(Context, Cursor, *buffer.Grid, any) {},
		main: p.Main,
		post: func(Context, Cursor, *buffer.Grid, any) {},
	}
	if b, ok := p.(Booter); ok {
		h.boot = b.Boot
	}
	if pre, ok := p.(PreHook); ok {
		h.pre = pre.Pre
	}
	if post, ok := p.(PostHook); ok {
		h.post = post.Post
	}
	return h
}
