package twi

import (
	"fmt"

	"github.com/jetsetilly/twisim/logger"
)

// Context is the context required by the TWI controller.
type Context interface {
	logger.Permission
}

// Bus is the interface to the two-wire bus that the controller drives.
// BeginTransfer() should return an error if no device on the bus acknowledged
// the address.
type Bus interface {
	BeginTransfer(address uint8, receive bool) error
	SendByte(data uint8)
	EndTransfer()
}

// Interrupt is the interrupt line output by the controller.
type Interrupt interface {
	Set(level int)
}

// Offsets of the registers within the controller's address window.
const (
	OffsetTWBR  = 0x00
	OffsetTWSR  = 0x01
	OffsetTWAR  = 0x02
	OffsetTWDR  = 0x03
	OffsetTWCR  = 0x04
	OffsetTWAMR = 0x05
)

// WindowSize is the number of bytes occupied by the controller's registers.
const WindowSize = 0x06

// the value returned by a read of a register that is not readable
const sentinel = 0xff

// TWI is the two-wire serial interface controller.
//
// None of the functions are safe to call concurrently. The caller must
// make sure that register accesses are delivered one at a time.
type TWI struct {
	ctx Context
	bus Bus
	irq Interrupt

	reg Registers

	// the state of TWEN in the most recent write to TWCR. the TWEN bit in the
	// TWCR register is what indicates that a transaction is open
	enabled bool
}

// Create a new TWI controller attached to the bus and interrupt line. The
// registers are reset before the function returns.
func Create(ctx Context, bus Bus, irq Interrupt) *TWI {
	tw := &TWI{
		ctx: ctx,
		bus: bus,
		irq: irq,
	}
	tw.Reset()
	return tw
}

// Reset the controller's registers to their power-on values.
func (tw *TWI) Reset() {
	tw.reg.Reset()
	tw.enabled = false
	logger.Log(tw.ctx, "twi", "reset")
}

func (tw *TWI) Label() string {
	return "TWI"
}

func (tw *TWI) Status() string {
	return fmt.Sprintf("%s: %s", tw.Label(), tw.reg.TWSR.Code())
}

func (tw *TWI) String() string {
	return tw.reg.String()
}

// Registers returns a copy of the register bank.
func (tw *TWI) Registers() Registers {
	return tw.reg
}

// Enabled returns the state of TWEN in the most recent write to TWCR.
func (tw *TWI) Enabled() bool {
	return tw.enabled
}

// Read implements the hardware.Area interface. Unreadable and unknown
// registers return 0xff. The error result is always nil.
func (tw *TWI) Read(idx uint16) (uint8, error) {
	data, ok, err := tw.Access(false, idx, 0)
	if !ok {
		logger.Logf(tw.ctx, "twi", "read of invalid offset %#02x", idx)
		return sentinel, err
	}
	return data, err
}

// Write implements the hardware.Area interface. Writes to unknown registers
// are logged and otherwise ignored. The error result is always nil.
func (tw *TWI) Write(idx uint16, data uint8) error {
	_, ok, err := tw.Access(true, idx, data)
	if !ok {
		logger.Logf(tw.ctx, "twi", "write of %02x to invalid offset %#02x", data, idx)
	}
	return err
}

// Access the register at the offset. The boolean result is false if the
// offset is outside of the controller's address window.
func (tw *TWI) Access(write bool, idx uint16, data uint8) (uint8, bool, error) {
	if write {
		switch idx {
		case OffsetTWBR:
			// not yet committed to the register bank
			logger.Logf(tw.ctx, "twi", "bit rate write ignored: %s", TWBR(data))
		case OffsetTWSR:
			// not yet committed to the register bank. the status code bits are
			// read-only but the prescaler bits should be updated
			logger.Logf(tw.ctx, "twi", "status write ignored: %02x", data)
		case OffsetTWAR:
			// not yet committed to the register bank
			logger.Logf(tw.ctx, "twi", "slave address write ignored: %s", TWAR(data))
		case OffsetTWDR:
			tw.writeData(data)
		case OffsetTWCR:
			tw.writeControl(TWCR(data))
		case OffsetTWAMR:
		default:
			return 0, false, nil
		}
		return 0, true, nil
	}

	switch idx {
	case OffsetTWSR:
		return uint8(tw.reg.TWSR), true, nil
	case OffsetTWCR:
		return uint8(tw.reg.TWCR), true, nil
	case OffsetTWBR, OffsetTWAR, OffsetTWDR, OffsetTWAMR:
		return sentinel, true, nil
	}

	return sentinel, false, nil
}

func (tw *TWI) writeControl(r TWCR) {
	logger.Logf(tw.ctx, "twi", "control write: %s", r)

	tw.enabled = r.EN()

	// the TWINT bit is copied from the written value. the datasheet says
	// that writing a one clears the flag but the firmware we're interested in
	// writes one to request the next step
	tw.reg.TWCR.SetINT(r.INT())

	if r.STA() {
		tw.reg.TWCR.SetSTA(true)
	}

	if r.STO() {
		tw.Stop()
		return
	}

	if r.INT() && r.EN() {
		// if TWEN is not yet set in the register then this is a new
		// transaction
		if !tw.reg.TWCR.EN() {
			tw.setStatus(Start)
			tw.reg.TWCR.SetEN(true)
		}

		tw.irq.Set(1)

		// the requested step has been actioned immediately
		tw.reg.TWCR.SetINT(true)
	}
}

func (tw *TWI) writeData(data uint8) {
	// writing TWDR is not allowed while TWINT is low
	if !tw.reg.TWCR.INT() {
		tw.reg.TWCR.SetWC(true)
		logger.Logf(tw.ctx, "twi", "write collision: %02x discarded", data)
		return
	}

	tw.reg.TWDR = TWDR(data)

	if tw.reg.TWCR.STA() {
		// the first byte after a START is SLA+R/W
		tw.reg.TWCR.SetSTA(false)

		address := data >> 1
		receive := data&0x01 == 0x01

		err := tw.bus.BeginTransfer(address, receive)
		if err != nil {
			// acknowledged regardless. without a device attached to the bus
			// firmware would otherwise never get past the addressing stage
			logger.Logf(tw.ctx, "twi", "address %#02x: %v", address, err)
		}
		tw.setStatus(MasterTxAddrAck)
		return
	}

	tw.bus.SendByte(data)
	tw.setStatus(MasterTxDataAck)
}

// Stop ends the current transfer on the bus and clears the TWSTO and TWINT
// bits. It is safe to call Stop() when there is no transfer in progress.
//
// The controller returns to the idle state, which means the TWEN bit is also
// cleared. The next write to TWCR with TWINT and TWEN set will begin a new
// transaction with a new START.
func (tw *TWI) Stop() {
	tw.bus.EndTransfer()

	// TWSTO is cleared to report that the STOP has executed on the bus
	tw.reg.TWCR.SetSTO(false)
	tw.reg.TWCR.SetINT(false)
	tw.reg.TWCR.SetEN(false)
}

func (tw *TWI) setStatus(s Status) {
	// the whole of TWSR is replaced, including the prescaler bits. this is
	// fine while writes to TWSR are not committed
	tw.reg.TWSR = TWSR(s)
}
