package terminal

// Backend abstracts platform-specific terminal operations so the host
// logic stays testable against a fake.
type Backend interface {
	// Lifecycle
	Init() error
	Fini()

	// Capabilities
	Size() (cols, rows int)

	// I/O
	// Write writes raw bytes to the terminal output.
	Write(p []byte) (int, error)

	// Read blocks until input is available, the stop channel is closed,
	// or an error occurs. A nil slice with a nil error is a poll timeout;
	// callers use it to flush pending partial sequences. io.EOF reports
	// a closed input stream.
	Read(stopCh <-chan struct{}) ([]byte, error)

	// Callbacks
	// SetResizeHandler registers a callback for terminal resize events.
	// The handler runs on the backend's signal goroutine.
	SetResizeHandler(handler func(cols, rows int))
}
