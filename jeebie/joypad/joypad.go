// Package joypad implements the P1 register (0xFF00): button/d-pad
// selector multiplexing and the JOYPAD interrupt raised when a selected
// line transitions high-to-low (a key press).
package joypad

import (
	"github.com/dmgcore/jeebie/jeebie/addr"
	"github.com/dmgcore/jeebie/jeebie/bit"
	"github.com/dmgcore/jeebie/jeebie/interrupt"
)

// Key identifies one of the eight joypad inputs.
type Key uint8

const (
	Right Key = iota
	Left
	Up
	Down
	A
	B
	Select
	Start
)

// Joypad owns the P1 register's selector bits and the button/d-pad
// state, both active-low on real hardware (0 = pressed, 1 = released).
type Joypad struct {
	interrupts *interrupt.Controller

	buttons uint8 // A/B/Select/Start, bits 0-3
	dpad    uint8 // Right/Left/Up/Down, bits 0-3
	select_ uint8 // P1 bits 4-5, selects which nibble Read exposes
}

// New creates a Joypad with no keys pressed.
func New(interrupts *interrupt.Controller) *Joypad {
	return &Joypad{
		interrupts: interrupts,
		buttons:    0x0F,
		dpad:       0x0F,
	}
}

// Read returns the P1 register: the selector bits as written, with the
// selected nibble (buttons, d-pad, or neither) in the low 4 bits. On
// real hardware unselected/unused high bits read as 1.
func (j *Joypad) Read(address uint16) uint8 {
	if address != addr.P1 {
		return 0xFF
	}

	line := uint8(0x0F)
	dpadSelected := j.select_&0x10 == 0
	buttonsSelected := j.select_&0x20 == 0

	if dpadSelected {
		line &= j.dpad
	}
	if buttonsSelected {
		line &= j.buttons
	}

	return 0xC0 | j.select_ | line
}

// Write updates P1's selector bits (4-5); bits 0-3 are read-only from
// the CPU's perspective.
func (j *Joypad) Write(address uint16, value uint8) {
	if address != addr.P1 {
		return
	}
	j.select_ = value & 0x30
}

// Press marks key as held. If the key's line is currently selected and
// this transitions that line from released (1) to pressed (0), the
// JOYPAD interrupt is requested, matching real hardware's edge-triggered
// wake-from-STOP behavior.
func (j *Joypad) Press(key Key) {
	wasHigh := j.lineBit(key) == 1
	j.setLine(key, 0)
	if wasHigh && j.lineSelected(key) {
		j.interrupts.Request(addr.JoypadInterrupt)
	}
}

// Release marks key as not held.
func (j *Joypad) Release(key Key) {
	j.setLine(key, 1)
}

func (j *Joypad) lineBit(key Key) uint8 {
	return bit.GetBitValue(bitIndex(key), j.register(key))
}

func (j *Joypad) setLine(key Key, value uint8) {
	reg := j.register(key)
	if value == 0 {
		reg = bit.Reset(bitIndex(key), reg)
	} else {
		reg = bit.Set(bitIndex(key), reg)
	}
	j.store(key, reg)
}

func (j *Joypad) lineSelected(key Key) bool {
	switch key {
	case Right, Left, Up, Down:
		return j.select_&0x10 == 0
	default:
		return j.select_&0x20 == 0
	}
}

func (j *Joypad) register(key Key) uint8 {
	switch key {
	case Right, Left, Up, Down:
		return j.dpad
	default:
		return j.buttons
	}
}

func (j *Joypad) store(key Key, value uint8) {
	switch key {
	case Right, Left, Up, Down:
		j.dpad = value
	default:
		j.buttons = value
	}
}

func bitIndex(key Key) uint8 {
	switch key {
	case Right, A:
		return 0
	case Left, B:
		return 1
	case Up, Select:
		return 2
	default: // Down, Start
		return 3
	}
}
