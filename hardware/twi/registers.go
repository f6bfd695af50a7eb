package twi

import (
	"fmt"
	"strings"
)

// TWBR is the bit rate register. The value selects the division factor for
// the bit rate generator. The emulation stores the value but does not
// interpret it.
type TWBR uint8

func (r TWBR) String() string {
	return fmt.Sprintf("TWBR=%02x", uint8(r))
}

// TWSR is the status register. Bits 7 to 3 are the status code and bits 1 and
// 0 are the prescaler selector. Bit 2 is unused.
type TWSR uint8

const (
	maskStatusCode = 0b11111000
	maskPrescaler  = 0b00000011
)

// Code returns the status code with the low bits masked to zero.
func (r TWSR) Code() Status {
	return Status(uint8(r) & maskStatusCode)
}

// Prescaler returns the TWPS bits.
func (r TWSR) Prescaler() uint8 {
	return uint8(r) & maskPrescaler
}

func (r TWSR) String() string {
	return fmt.Sprintf("TWSR=%02x [%s] TWPS=%02b", uint8(r), r.Code(), r.Prescaler())
}

// TWAR is the slave address register. Bits 7 to 1 are the address the
// controller responds to when addressed as a slave and bit 0 enables
// recognition of the general call address.
type TWAR uint8

// SlaveAddress returns the 7-bit address in the TWA bits.
func (r TWAR) SlaveAddress() uint8 {
	return uint8(r) >> 1
}

// GeneralCall returns the value of TWGCE.
func (r TWAR) GeneralCall() bool {
	return uint8(r)&0x01 == 0x01
}

func (r TWAR) String() string {
	return fmt.Sprintf("TWAR=%02x TWA=%02x TWGCE=%v", uint8(r), r.SlaveAddress(), r.GeneralCall())
}

// TWDR is the data register. In transmit mode it holds the next byte to be
// transmitted. In receive mode it holds the last byte received.
type TWDR uint8

func (r TWDR) String() string {
	return fmt.Sprintf("TWDR=%02x", uint8(r))
}

// TWCR is the control register.
type TWCR uint8

// bits in the TWCR register
const (
	TWINT = 0b10000000 // interrupt flag
	TWEA  = 0b01000000 // enable acknowledge
	TWSTA = 0b00100000 // start condition
	TWSTO = 0b00010000 // stop condition
	TWWC  = 0b00001000 // write collision
	TWEN  = 0b00000100 // enable
	TWIE  = 0b00000001 // interrupt enable
)

func (r TWCR) bit(m uint8) bool {
	return uint8(r)&m == m
}

func (r *TWCR) set(m uint8, v bool) {
	if v {
		*r |= TWCR(m)
	} else {
		*r &^= TWCR(m)
	}
}

func (r TWCR) INT() bool { return r.bit(TWINT) }
func (r TWCR) EA() bool  { return r.bit(TWEA) }
func (r TWCR) STA() bool { return r.bit(TWSTA) }
func (r TWCR) STO() bool { return r.bit(TWSTO) }
func (r TWCR) WC() bool  { return r.bit(TWWC) }
func (r TWCR) EN() bool  { return r.bit(TWEN) }
func (r TWCR) IE() bool  { return r.bit(TWIE) }

func (r *TWCR) SetINT(v bool) { r.set(TWINT, v) }
func (r *TWCR) SetSTA(v bool) { r.set(TWSTA, v) }
func (r *TWCR) SetSTO(v bool) { r.set(TWSTO, v) }
func (r *TWCR) SetWC(v bool)  { r.set(TWWC, v) }
func (r *TWCR) SetEN(v bool)  { r.set(TWEN, v) }

func (r TWCR) String() string {
	var s strings.Builder
	s.WriteString(fmt.Sprintf("TWCR=%02x", uint8(r)))

	flags := []struct {
		on   bool
		name string
	}{
		{r.INT(), "INT"},
		{r.EA(), "EA"},
		{r.STA(), "STA"},
		{r.STO(), "STO"},
		{r.WC(), "WC"},
		{r.EN(), "EN"},
		{r.IE(), "IE"},
	}
	for _, f := range flags {
		if f.on {
			s.WriteString(" ")
			s.WriteString(f.name)
		} else {
			s.WriteString(" -")
		}
	}

	return s.String()
}

// Registers is the register bank of the TWI controller.
type Registers struct {
	TWBR TWBR
	TWSR TWSR
	TWAR TWAR
	TWDR TWDR
	TWCR TWCR
}

// Reset the registers to the power-on values given in the "Register
// Description" section of the ATmega640/1280/1281/2560/2561 datasheet.
func (reg *Registers) Reset() {
	reg.TWBR = 0x00
	reg.TWSR = TWSR(NoInfo)
	reg.TWAR = 0b11111110
	reg.TWDR = 0xff
	reg.TWCR = 0x00
}

func (reg Registers) String() string {
	return fmt.Sprintf("%s %s %s\n%s\n%s", reg.TWBR, reg.TWDR, reg.TWAR, reg.TWSR, reg.TWCR)
}
