package hardware_test

import (
	"testing"

	"github.com/jetsetilly/twisim/hardware"
	"github.com/jetsetilly/twisim/hardware/twi"
	"github.com/jetsetilly/twisim/test"
)

type context struct {
	eeprom string
}

func (context) AllowLogging() bool {
	return false
}

func (ctx context) EEPROM() string {
	return ctx.eeprom
}

func write(t *testing.T, b *hardware.Board, reg string, data uint8) {
	t.Helper()
	a, err := hardware.ParseAddress(reg)
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, b.Write(a, data))
}

func read(t *testing.T, b *hardware.Board, reg string) uint8 {
	t.Helper()
	a, err := hardware.ParseAddress(reg)
	test.ExpectSuccess(t, err)
	v, err := b.Read(a)
	test.ExpectSuccess(t, err)
	return v
}

func TestParseAddress(t *testing.T) {
	a, err := hardware.ParseAddress("twcr")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, a, 0xbc)

	a, err = hardware.ParseAddress("$b9")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, a, 0xb9)

	a, err = hardware.ParseAddress("0xbb")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, a, 0xbb)

	_, err = hardware.ParseAddress("TWXX")
	test.ExpectFailure(t, err)
}

func TestMemoryMap(t *testing.T) {
	b, err := hardware.Create(context{})
	test.ExpectSuccess(t, err)

	test.ExpectEquality(t, read(t, b, "TWSR"), 0xf8)
	test.ExpectEquality(t, read(t, b, "TWCR"), 0x00)
	test.ExpectEquality(t, read(t, b, "TWDR"), 0xff)
	test.ExpectEquality(t, b.LastAreaStatus(), "TWI: no info")
	test.ExpectEquality(t, b.LastAreaStatus(), "")

	_, err = b.Read(0x00b7)
	test.ExpectFailure(t, err)
	_, err = b.Read(0x00be)
	test.ExpectFailure(t, err)
	test.ExpectFailure(t, b.Write(0x0000, 0x00))
}

func TestWireTransmit(t *testing.T) {
	b, err := hardware.Create(context{})
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, b.EEPROM == nil)

	// the sequence used by the Arduino Wire library to transmit to a device.
	// there is no device on the bus but the address is still acknowledged
	write(t, b, "TWCR", twi.TWINT|twi.TWEN|twi.TWSTA|twi.TWEA|twi.TWIE)
	test.ExpectEquality(t, read(t, b, "TWSR"), uint8(twi.Start))
	test.ExpectEquality(t, b.IRQ.Asserted(), 1)

	write(t, b, "TWDR", 0x90)
	write(t, b, "TWCR", twi.TWINT|twi.TWEN|twi.TWEA|twi.TWIE)
	test.ExpectEquality(t, read(t, b, "TWSR"), uint8(twi.MasterTxAddrAck))

	write(t, b, "TWDR", 0x41)
	test.ExpectEquality(t, read(t, b, "TWSR"), uint8(twi.MasterTxDataAck))

	write(t, b, "TWCR", twi.TWINT|twi.TWEN|twi.TWEA|twi.TWSTO)
	test.ExpectEquality(t, read(t, b, "TWCR")&(twi.TWINT|twi.TWSTO), 0x00)

	b.Reset()
	test.ExpectEquality(t, read(t, b, "TWSR"), 0xf8)
	test.ExpectEquality(t, b.IRQ.Asserted(), 0)
}

func TestWireTransmitToEEPROM(t *testing.T) {
	b, err := hardware.Create(context{eeprom: "eeprom_test"})
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, b.EEPROM != nil)
	test.ExpectEquality(t, len(b.Bus.Addresses()), 1)

	write(t, b, "TWCR", twi.TWINT|twi.TWEN|twi.TWSTA)
	write(t, b, "TWDR", 0xa0)
	for _, v := range []uint8{0x00, 0x10, 'A', 'B'} {
		write(t, b, "TWCR", twi.TWINT|twi.TWEN)
		write(t, b, "TWDR", v)
	}
	write(t, b, "TWCR", twi.TWINT|twi.TWEN|twi.TWSTO)

	test.ExpectEquality(t, b.EEPROM.Data[0x10], 'A')
	test.ExpectEquality(t, b.EEPROM.Data[0x11], 'B')
	test.ExpectFailure(t, b.Bus.Busy())

	// a second transaction begins with a new START
	write(t, b, "TWCR", twi.TWINT|twi.TWEN|twi.TWSTA)
	test.ExpectEquality(t, read(t, b, "TWSR"), uint8(twi.Start))
}
