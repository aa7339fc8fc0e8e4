// Package render provides host-side presentation of a running Emulator:
// a tcell-based terminal renderer (always available) and an optional
// SDL2 window renderer (built with the sdl2 tag).
package render

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmgcore/jeebie/jeebie"
	"github.com/dmgcore/jeebie/jeebie/joypad"
	"github.com/dmgcore/jeebie/jeebie/timing"
	"github.com/dmgcore/jeebie/jeebie/video"
	"github.com/gdamore/tcell/v2"
)

const (
	// Terminal characters are taller than wide, so the width is scaled
	// more to keep the on-screen image roughly square.
	scaleX = 2
	scaleY = 1
)

// shadeChars maps a 2-bit color index (0 = lightest, 3 = darkest) to a
// terminal glyph approximating that shade.
var shadeChars = []rune{'░', '▒', '▓', '█'}

var keyBindings = map[tcell.Key]joypad.Key{
	tcell.KeyRight: joypad.Right,
	tcell.KeyLeft:  joypad.Left,
	tcell.KeyUp:    joypad.Up,
	tcell.KeyDown:  joypad.Down,
}

var runeBindings = map[rune]joypad.Key{
	'z': joypad.A,
	'x': joypad.B,
	'a': joypad.Select,
	's': joypad.Start,
}

// TerminalRenderer drives an Emulator and presents its framebuffer in a
// terminal window via tcell, forwarding keyboard input to the joypad.
type TerminalRenderer struct {
	screen   tcell.Screen
	emulator *jeebie.Emulator
	ticker   *time.Ticker
	running  bool
}

// NewTerminalRenderer initializes a tcell screen for emu.
func NewTerminalRenderer(emu *jeebie.Emulator) (*TerminalRenderer, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("render: initializing terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("render: initializing terminal: %w", err)
	}

	return &TerminalRenderer{
		screen:   screen,
		emulator: emu,
		ticker:   time.NewTicker(timing.FrameDuration()),
		running:  true,
	}, nil
}

// Run drives the emulator one frame per tick of the frame limiter,
// rendering after each frame, until Escape is pressed or the process
// receives SIGINT/SIGTERM.
func (t *TerminalRenderer) Run() error {
	defer func() {
		slog.Info("terminal renderer stopping")
		t.ticker.Stop()
		t.screen.Fini()
	}()

	t.screen.SetStyle(tcell.StyleDefault.
		Background(tcell.ColorBlack).
		Foreground(tcell.ColorWhite))
	t.screen.Clear()

	go t.handleInput()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	for t.running {
		select {
		case <-t.ticker.C:
			if err := t.emulator.RunUntilFrame(); err != nil {
				return err
			}
			t.render()
			t.screen.Show()
		case <-signals:
			t.running = false
			slog.Info("received signal to stop")
			return nil
		}
	}

	return nil
}

func (t *TerminalRenderer) handleInput() {
	for t.running {
		ev := t.screen.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyEscape {
				t.running = false
				return
			}
			if key, ok := keyBindings[ev.Key()]; ok {
				t.emulator.PressKey(key)
			}
			if key, ok := runeBindings[ev.Rune()]; ok {
				t.emulator.PressKey(key)
			}
		case *tcell.EventResize:
			t.screen.Sync()
		}
	}
}

func (t *TerminalRenderer) render() {
	fb := t.emulator.FrameBuffer()
	pixels := fb.Pixels()

	t.screen.Clear()

	for y := 0; y < video.Height; y++ {
		for x := 0; x < video.Width; x++ {
			shade := pixels[y*video.Width+x] & 0x03
			char := shadeChars[shade]
			style := tcell.StyleDefault.Foreground(tcell.ColorWhite)

			screenX := x * scaleX
			screenY := y * scaleY
			for sx := 0; sx < scaleX; sx++ {
				t.screen.SetContent(screenX+sx, screenY, char, nil, style)
			}
		}
	}
}
