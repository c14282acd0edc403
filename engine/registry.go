package engine

import (
	"errors"
	"sort"
	"sync"
)

// Package-level configuration errors
var (
	// ErrUnknownRenderer reports a renderer name with no registration
	ErrUnknownRenderer = errors.New("engine: unknown renderer")

	// ErrRendererMismatch reports a renderer paired with a target of
	// the wrong kind. Non-fatal: the run proceeds with rendering
	// skipped.
	ErrRendererMismatch = errors.New("engine: renderer does not match target kind")
)

// RendererFactory creates a renderer bound to a target of the matching
// kind
type RendererFactory func(t Target, s Settings) (Renderer, error)

// TargetFactory creates the default target for a renderer when the
// caller provides none
type TargetFactory func(s Settings) (Target, error)

type registryEntry struct {
	kind        TargetKind
	newRenderer RendererFactory
	newTarget   TargetFactory
}

var (
	registryMu sync.RWMutex
	registry   = make(map[string]registryEntry)
)

// Register adds a renderer under name. Rendering backends register
// themselves at init; any backend exposing a factory pair may join.
// Re-registering a name replaces the previous entry.
func Register(name string, kind TargetKind, rf RendererFactory, tf TargetFactory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = registryEntry{kind: kind, newRenderer: rf, newTarget: tf}
}

// RendererNames returns registered renderer names in sorted order
func RendererNames() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func lookupRenderer(name string) (registryEntry, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	e, ok := registry[name]
	return e, ok
}
