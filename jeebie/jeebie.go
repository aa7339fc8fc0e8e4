// Package jeebie wires together the CPU, bus, and every memory-mapped
// subsystem into a single runnable Game Boy, and drives it one frame
// (70224 t-cycles) at a time.
package jeebie

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/dmgcore/jeebie/jeebie/bus"
	"github.com/dmgcore/jeebie/jeebie/cartridge"
	"github.com/dmgcore/jeebie/jeebie/cpu"
	"github.com/dmgcore/jeebie/jeebie/interrupt"
	"github.com/dmgcore/jeebie/jeebie/joypad"
	"github.com/dmgcore/jeebie/jeebie/serial"
	"github.com/dmgcore/jeebie/jeebie/timer"
	"github.com/dmgcore/jeebie/jeebie/video"
)

// cyclesPerFrame is the fixed t-cycle budget of one Game Boy video
// frame: 154 scanlines (144 visible + 10 VBlank) of 456 t-cycles each.
const cyclesPerFrame = 70224

// Emulator owns a full Game Boy: CPU core, memory bus, and every
// subsystem the bus multiplexes across (PPU, timer, serial, joypad,
// interrupt controller).
type Emulator struct {
	cpu        *cpu.CPU
	bus        *bus.Bus
	interrupts *interrupt.Controller

	serialSink serial.Sink
	debugTrace bool
}

// Option configures an Emulator at construction time.
type Option func(*options)

type options struct {
	serialSink serial.Sink
	debugTrace bool
}

// WithSerialSink routes completed serial transfers to sink instead of
// discarding them, useful for Blargg-style test ROMs that report results
// over the serial port.
func WithSerialSink(sink serial.Sink) Option {
	return func(o *options) { o.serialSink = sink }
}

// WithDebugTrace enables per-instruction disassembly tracing via slog.
func WithDebugTrace(enabled bool) Option {
	return func(o *options) { o.debugTrace = enabled }
}

func newEmulator(cart *cartridge.Cartridge, opts ...Option) *Emulator {
	cfg := options{}
	for _, apply := range opts {
		apply(&cfg)
	}

	ic := interrupt.New()
	ppu := video.New(ic)
	t := timer.New(ic)
	s := serial.New(cfg.serialSink)
	j := joypad.New(ic)
	b := bus.New(cart, ppu, t, s, j, ic)
	c := cpu.New(b, ic)
	c.SetDebugTrace(cfg.debugTrace)

	return &Emulator{
		cpu:        c,
		bus:        b,
		interrupts: ic,
		serialSink: cfg.serialSink,
		debugTrace: cfg.debugTrace,
	}
}

// New creates an Emulator with no cartridge loaded (an empty, two-bank
// ROM image), useful for tests that drive memory directly.
func New(opts ...Option) *Emulator {
	return newEmulator(cartridge.New(), opts...)
}

// NewWithFile creates an Emulator with the ROM at path loaded.
func NewWithFile(path string, opts ...Option) (*Emulator, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("jeebie: reading ROM: %w", err)
	}

	cart, err := cartridge.NewFromBytes(data)
	if err != nil {
		return nil, fmt.Errorf("jeebie: loading ROM: %w", err)
	}

	slog.Debug("loaded ROM", "title", cart.Title(), "size", len(data))
	return newEmulator(cart, opts...), nil
}

// Step executes exactly one CPU instruction (or one halted idle cycle,
// or one interrupt dispatch) and returns any decode error encountered.
func (e *Emulator) Step() error {
	return e.cpu.Step()
}

// RunUntilFrame executes instructions until at least one full frame's
// worth of t-cycles (70224) has elapsed, then returns. Frame boundaries
// are cycle-budget based, not instruction-count based, since individual
// instructions don't divide evenly into a frame.
func (e *Emulator) RunUntilFrame() error {
	target := e.bus.TotalCycles() + cyclesPerFrame
	for e.bus.TotalCycles() < target {
		if err := e.cpu.Step(); err != nil {
			return err
		}
	}
	return nil
}

// FrameBuffer returns the current contents of the PPU's framebuffer.
func (e *Emulator) FrameBuffer() *video.FrameBuffer {
	return e.bus.PPU().FrameBuffer()
}

// PressKey and ReleaseKey forward joypad input to the emulator.
func (e *Emulator) PressKey(key joypad.Key) {
	e.bus.Joypad().Press(key)
}

func (e *Emulator) ReleaseKey(key joypad.Key) {
	e.bus.Joypad().Release(key)
}

// CPU exposes the underlying CPU core, for debuggers and tests that
// need direct register/PC access.
func (e *Emulator) CPU() *cpu.CPU {
	return e.cpu
}

// Bus exposes the underlying memory bus, for debuggers and tests.
func (e *Emulator) Bus() *bus.Bus {
	return e.bus
}
