// Package terminal provides direct ANSI terminal control for
// character-grid animation output.
//
// Features:
//   - True color (24-bit) and 256-color support with capability detection
//   - Raw stdin parsing: keys, escape sequences, SGR mouse reporting
//   - SIGWINCH resize detection delivered on the unified event channel
//   - Exported sequence composition helpers for frame-building renderers
//   - Clean terminal restoration on exit/panic
//
// This package bypasses terminfo/termcap entirely, emitting direct ANSI
// sequences. Target environments: Linux, macOS, BSDs with xterm-compatible
// terminals. Frame diffing belongs to renderers; the terminal transports
// composed frames and decodes input.
package terminal
