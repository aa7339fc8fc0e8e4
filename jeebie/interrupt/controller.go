// Package interrupt implements the Game Boy's interrupt controller: the
// IE/IF register pair and the fixed priority order used to pick which
// pending interrupt the CPU should service next.
package interrupt

import "github.com/dmgcore/jeebie/jeebie/addr"

// priorityOrder lists the five interrupt kinds from highest to lowest
// priority, matching the bit order of IE/IF (bit 0 is highest).
var priorityOrder = []addr.Interrupt{
	addr.VBlankInterrupt,
	addr.LCDSTATInterrupt,
	addr.TimerInterrupt,
	addr.SerialInterrupt,
	addr.JoypadInterrupt,
}

// Controller owns the Interrupt Enable (IE) and Interrupt Flag (IF)
// registers and exposes the operations other components need to request,
// acknowledge, and inspect pending interrupts. It is a leaf: nothing it
// does depends on the CPU, bus, or any other subsystem.
type Controller struct {
	ie uint8
	// iF holds only the low 5 bits; upper 3 bits always read back as 1.
	iF uint8
}

// New creates a Controller with IE and IF both cleared.
func New() *Controller {
	return &Controller{}
}

// Request sets the IF bit for the given interrupt, marking it pending.
// Called by any component that detects a condition that should interrupt
// the CPU (PPU mode transitions, timer overflow, serial completion,
// joypad edges).
func (c *Controller) Request(i addr.Interrupt) {
	c.iF |= uint8(i)
}

// Ack clears the IF bit for the given interrupt. Called by the CPU once
// it has begun servicing that interrupt (pushed PC, jumped to vector).
func (c *Controller) Ack(i addr.Interrupt) {
	c.iF &^= uint8(i)
}

// Pending returns the highest-priority interrupt that is both requested
// (IF) and enabled (IE), in the fixed VBlank > LCD STAT > Timer > Serial
// > Joypad order. It returns ok=false if no such interrupt exists,
// regardless of the master IME flag (which the CPU checks separately).
func (c *Controller) Pending() (i addr.Interrupt, ok bool) {
	active := c.iF & c.ie
	if active == 0 {
		return 0, false
	}

	for _, candidate := range priorityOrder {
		if active&uint8(candidate) != 0 {
			return candidate, true
		}
	}

	return 0, false
}

// HasAny reports whether any enabled interrupt is currently pending,
// regardless of priority. Used by the CPU to wake from HALT even when
// IME is disabled (the halt bug / halt-exit condition doesn't require
// interrupts to be globally enabled).
func (c *Controller) HasAny() bool {
	return c.iF&c.ie != 0
}

// ReadIE returns the raw IE register value (0xFFFF).
func (c *Controller) ReadIE() uint8 {
	return c.ie
}

// WriteIE sets the raw IE register value.
func (c *Controller) WriteIE(value uint8) {
	c.ie = value
}

// ReadIF returns the raw IF register value (0xFF0F). The upper 3 bits
// are unused on hardware and always read back as 1.
func (c *Controller) ReadIF() uint8 {
	return c.iF | 0xE0
}

// WriteIF sets the raw IF register value, masking to the 5 usable bits.
func (c *Controller) WriteIF(value uint8) {
	c.iF = value & 0x1F
}
