//go:build !sdl2

package render

import (
	"fmt"

	"github.com/dmgcore/jeebie/jeebie"
)

// SDL2Renderer is unavailable in default builds. Build with -tags sdl2
// and SDL2 development libraries installed to get a real window
// renderer instead of this stub.
type SDL2Renderer struct{}

// NewSDL2Renderer always fails in non-sdl2 builds.
func NewSDL2Renderer(emu *jeebie.Emulator) (*SDL2Renderer, error) {
	return nil, fmt.Errorf("render: SDL2 support not compiled in; rebuild with -tags sdl2")
}

func (s *SDL2Renderer) Run() error {
	return fmt.Errorf("render: SDL2 support not compiled in")
}
