// Command runic runs the built-in demo programs on any registered
// renderer. Escape or Ctrl+C quits.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/lixenwraith/runic/demo"
	"github.com/lixenwraith/runic/engine"
	"github.com/lixenwraith/runic/persist"
	_ "github.com/lixenwraith/runic/render"
)

func main() {
	var (
		program  = flag.String("program", "plasma", "built-in program to run (-list to enumerate)")
		renderer = flag.String("renderer", "", "renderer name: text, canvas, tcell")
		fps      = flag.Float64("fps", 0, "target frame rate")
		cols     = flag.Int("cols", 0, "grid columns, 0 auto-fits the terminal")
		rows     = flag.Int("rows", 0, "grid rows, 0 auto-fits the terminal")
		once     = flag.Bool("once", false, "render a single frame and exit")
		restore  = flag.Bool("restore", false, "persist and restore frame state across runs")
		fresh    = flag.Bool("fresh", false, "clear persisted frame state before starting")
		config   = flag.String("config", "", "TOML settings file")
		list     = flag.Bool("list", false, "list built-in programs and exit")
	)
	flag.Parse()

	if *list {
		fmt.Println(strings.Join(demo.Names(), "\n"))
		return
	}

	settings := engine.Settings{}
	if *config != "" {
		s, err := engine.LoadSettings(*config)
		if err != nil {
			fail(err)
		}
		settings = s
	}
	if *renderer != "" {
		settings.Renderer = *renderer
	}
	if *fps > 0 {
		settings.FPS = *fps
	}
	if *cols > 0 {
		settings.Cols = *cols
	}
	if *rows > 0 {
		settings.Rows = *rows
	}
	if *once {
		settings.Once = true
	}
	if *restore {
		settings.RestoreState = true
	}

	if *fresh {
		key := settings.StateKey
		if key == "" {
			key = engine.DefaultStateKey
		}
		persist.NewFileStore(persist.DefaultDir("runic")).Clear(key)
	}

	prog, ok := demo.Lookup(*program)
	if !ok {
		fail(fmt.Errorf("unknown program %q, have: %s", *program, strings.Join(demo.Names(), ", ")))
	}

	runner, err := engine.New(prog, settings, nil)
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

	// Surface warnings collected during the run after the terminal is
	// back in cooked mode
	for {
		select {
		case err := <-runner.Errors():
			fmt.Fprintln(os.Stderr, "runic:", err)
			continue
		default:
		}
		break
	}
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, "runic:", err)
	os.Exit(1)
}
