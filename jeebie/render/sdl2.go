//go:build sdl2

package render

import (
	"fmt"

	"github.com/dmgcore/jeebie/jeebie"
	"github.com/dmgcore/jeebie/jeebie/joypad"
	"github.com/dmgcore/jeebie/jeebie/timing"
	"github.com/dmgcore/jeebie/jeebie/video"
	"github.com/veandco/go-sdl2/sdl"
)

const windowScale = 4

// shadeRGBA maps a 2-bit color index to an RGBA8888 gray shade, lightest
// value first to match the Game Boy's palette convention of 0=lightest.
var shadeRGBA = [4]uint32{0xFFFFFFFF, 0x989898FF, 0x4C4C4CFF, 0x000000FF}

var sdlKeyBindings = map[sdl.Keycode]joypad.Key{
	sdl.K_RIGHT: joypad.Right,
	sdl.K_LEFT:  joypad.Left,
	sdl.K_UP:    joypad.Up,
	sdl.K_DOWN:  joypad.Down,
	sdl.K_z:     joypad.A,
	sdl.K_x:     joypad.B,
	sdl.K_a:     joypad.Select,
	sdl.K_s:     joypad.Start,
}

// SDL2Renderer presents an Emulator's framebuffer in a real window using
// SDL2's renderer/texture API, streaming a converted RGBA8888 buffer
// every frame.
type SDL2Renderer struct {
	window   *sdl.Window
	renderer *sdl.Renderer
	texture  *sdl.Texture
	emulator *jeebie.Emulator
	pixels   []byte
	running  bool
}

// NewSDL2Renderer creates an SDL2 window sized to the Game Boy screen
// scaled by windowScale.
func NewSDL2Renderer(emu *jeebie.Emulator) (*SDL2Renderer, error) {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return nil, fmt.Errorf("render: sdl2 init: %w", err)
	}

	window, err := sdl.CreateWindow(
		"jeebie",
		sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED,
		video.Width*windowScale, video.Height*windowScale,
		sdl.WINDOW_SHOWN,
	)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("render: creating window: %w", err)
	}

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		window.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("render: creating renderer: %w", err)
	}

	texture, err := renderer.CreateTexture(sdl.PIXELFORMAT_RGBA8888, sdl.TEXTUREACCESS_STREAMING, video.Width, video.Height)
	if err != nil {
		renderer.Destroy()
		window.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("render: creating texture: %w", err)
	}

	return &SDL2Renderer{
		window:   window,
		renderer: renderer,
		texture:  texture,
		emulator: emu,
		pixels:   make([]byte, video.Width*video.Height*4),
		running:  true,
	}, nil
}

// Run drives the emulator at the real Game Boy frame rate, presenting
// each completed frame and forwarding keyboard input to the joypad,
// until the window is closed.
func (s *SDL2Renderer) Run() error {
	defer s.close()

	ticker := timing.NewTickerLimiter()
	defer ticker.Stop()

	for s.running {
		s.pumpEvents()
		if !s.running {
			break
		}

		if err := s.emulator.RunUntilFrame(); err != nil {
			return err
		}
		s.present()
		ticker.WaitForNextFrame()
	}

	return nil
}

func (s *SDL2Renderer) pumpEvents() {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			s.running = false
		case *sdl.KeyboardEvent:
			key, ok := sdlKeyBindings[e.Keysym.Sym]
			if !ok {
				continue
			}
			if e.State == sdl.PRESSED {
				s.emulator.PressKey(key)
			} else {
				s.emulator.ReleaseKey(key)
			}
		}
	}
}

func (s *SDL2Renderer) present() {
	fb := s.emulator.FrameBuffer()
	pixels := fb.Pixels()

	for i, colorIndex := range pixels {
		rgba := shadeRGBA[colorIndex&0x03]
		s.pixels[i*4+0] = byte(rgba >> 24)
		s.pixels[i*4+1] = byte(rgba >> 16)
		s.pixels[i*4+2] = byte(rgba >> 8)
		s.pixels[i*4+3] = byte(rgba)
	}

	s.texture.Update(nil, s.pixels, video.Width*4)
	s.renderer.Clear()
	s.renderer.Copy(s.texture, nil, nil)
	s.renderer.Present()
}

func (s *SDL2Renderer) close() {
	s.texture.Destroy()
	s.renderer.Destroy()
	s.window.Destroy()
	sdl.Quit()
}
