package main

import (
	"errors"
	"log/slog"
	"os"

	"github.com/dmgcore/jeebie/jeebie"
	"github.com/dmgcore/jeebie/jeebie/render"
	"github.com/urfave/cli"
)

func main() {
	app := cli.NewApp()
	app.Name = "jeebie"
	app.Description = "A Game Boy (DMG) emulator"
	app.Usage = "jeebie [options] <ROM file>"
	app.Version = "1.0.0"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "rom",
			Usage: "path to the ROM file",
		},
		cli.BoolFlag{
			Name:  "headless",
			Usage: "run without a display, for a fixed number of frames",
		},
		cli.IntFlag{
			Name:  "frames",
			Usage: "number of frames to run in headless mode (required with --headless)",
		},
		cli.BoolFlag{
			Name:  "debug-trace",
			Usage: "log a disassembled trace line for every instruction executed",
		},
		cli.BoolFlag{
			Name:  "serial-echo",
			Usage: "log bytes written to the serial port as they're transferred",
		},
		cli.BoolFlag{
			Name:  "sdl2",
			Usage: "use the SDL2 window renderer instead of the terminal renderer (requires building with -tags sdl2)",
		},
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		slog.Error("jeebie exited with an error", "error", err)
		os.Exit(1)
	}
}

type logSink struct{}

func (logSink) Write(b byte) {
	slog.Info("serial byte transferred", "value", b, "char", string(rune(b)))
}

func run(c *cli.Context) error {
	romPath := c.String("rom")
	if romPath == "" {
		if c.NArg() > 0 {
			romPath = c.Args().Get(0)
		} else {
			cli.ShowAppHelp(c)
			return errors.New("no ROM path provided")
		}
	}

	var opts []jeebie.Option
	if c.Bool("debug-trace") {
		opts = append(opts, jeebie.WithDebugTrace(true))
	}
	if c.Bool("serial-echo") {
		opts = append(opts, jeebie.WithSerialSink(logSink{}))
	}

	emu, err := jeebie.NewWithFile(romPath, opts...)
	if err != nil {
		return err
	}

	if c.Bool("headless") {
		frames := c.Int("frames")
		if frames <= 0 {
			return errors.New("headless mode requires --frames with a positive value")
		}
		for i := 0; i < frames; i++ {
			if err := emu.RunUntilFrame(); err != nil {
				return err
			}
		}
		slog.Info("headless run completed", "frames", frames)
		return nil
	}

	if c.Bool("sdl2") {
		renderer, err := render.NewSDL2Renderer(emu)
		if err != nil {
			return err
		}
		return renderer.Run()
	}

	renderer, err := render.NewTerminalRenderer(emu)
	if err != nil {
		return err
	}
	return renderer.Run()
}
