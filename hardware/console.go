// Package hardware ties together the TWI controller, the interrupt line and
// the bus into a board that can be driven by reads and writes to the data
// address space.
package hardware

import (
	"github.com/jetsetilly/twisim/hardware/i2c"
	"github.com/jetsetilly/twisim/hardware/irq"
	"github.com/jetsetilly/twisim/hardware/peripherals/eeprom"
	"github.com/jetsetilly/twisim/hardware/twi"
	"github.com/jetsetilly/twisim/logger"
)

// Context is the context required by the board.
type Context interface {
	logger.Permission

	// the name of the file in the resources directory to use for the
	// EEPROM. an empty string means no EEPROM is attached
	EEPROM() string
}

// Board is the emulated board.
type Board struct {
	ctx Context

	TWI    *twi.TWI
	Bus    *i2c.Bus
	IRQ    *irq.Line
	EEPROM *eeprom.EEPROM

	Mem *memory
}

// Create a new board. The TWI controller is initialised with the bus and
// interrupt line and then realized into the memory map.
func Create(ctx Context) (*Board, error) {
	b := &Board{
		ctx: ctx,
		Bus: i2c.NewBus(ctx),
		IRQ: irq.NewLine("TWI_vect", nil),
		Mem: &memory{},
	}

	b.TWI = twi.Create(ctx, b.Bus, b.IRQ)

	if fn := ctx.EEPROM(); fn != "" {
		b.EEPROM = eeprom.NewEEPROM(ctx, fn)
		err := b.Bus.Attach(eeprom.DefaultAddress, b.EEPROM)
		if err != nil {
			return nil, err
		}
	}

	b.Realize()

	return b, nil
}

// Realize maps the TWI registers into the data space.
func (b *Board) Realize() {
	b.Mem.realize(b.TWI)
	logger.Log(b.ctx, "board", "TWI realized")
}

// Reset the TWI controller and the interrupt line. Attached devices are not
// affected.
func (b *Board) Reset() {
	b.TWI.Reset()
	b.IRQ.Reset()
}

// Read the data space address.
func (b *Board) Read(address uint16) (uint8, error) {
	return b.Mem.Read(address)
}

// Write data to the data space address.
func (b *Board) Write(address uint16, data uint8) error {
	return b.Mem.Write(address, data)
}

// LastAreaStatus returns the status of the area that was most recently
// accessed. The information is consumed by the call.
func (b *Board) LastAreaStatus() string {
	if b.Mem.last == nil {
		return ""
	}
	s := b.Mem.last.Status()
	b.Mem.last = nil
	return s
}
