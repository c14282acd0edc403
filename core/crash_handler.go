package core

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/lixenwraith/runic/terminal"
)

// Finisher restores the terminal before a crash report prints.
// Satisfied by terminal.Terminal.
type Finisher interface {
	Fini()
}

// crashTerminal is registered by the runner so a panic can restore the
// screen before the stack trace prints
var crashTerminal Finisher

// RegisterCrashTerminal installs the terminal to restore on crash.
// Call before spawning goroutines with Go; pass nil to clear.
func RegisterCrashTerminal(t Finisher) {
	crashTerminal = t
}

// HandleCrash is the unified panic handler that resets the terminal and prints the stack trace
func HandleCrash(r any) {
	if r == nil {
		return
	}

	// Restore terminal to sane state immediately
	if crashTerminal != nil {
		crashTerminal.Fini()
	} else {
		terminal.EmergencyReset(os.Stdout)
	}

	// Force flush stdout/stderr before printing to stderr
	os.Stdout.Sync()
	os.Stderr.Sync()

	// Raw mode may still be half-active, so \r\n keeps the trace readable
	fmt.Fprintf(os.Stderr, "\r\n\x1b[31mCRASH DETECTED: %v\x1b[0m\r\n", r)
	fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())

	os.Stderr.Sync()

	os.Exit(1)
}

// Go runs a function in a new goroutine with panic recovery.
// Use this instead of the 'go' keyword to ensure terminal cleanup on crash.
func Go(fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				HandleCrash(r)
			}
		}()
		fn()
	}()
}
