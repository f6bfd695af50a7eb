// This file is part of Gopher2600.
//
// Gopher2600 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gopher2600 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gopher2600.  If not, see <https://www.gnu.org/licenses/>.

// Package eeprom implements a 24LC256 style serial EEPROM that can be
// attached to an i2c.Bus.
//
// A write transfer begins with two address bytes, high byte first. Any
// further bytes are written to consecutive addresses within the same page.
// A read transfer returns bytes from consecutive addresses starting from the
// address set by the most recent write transfer.
package eeprom

import (
	"fmt"
	"os"
	"slices"
	"unicode"

	"github.com/jetsetilly/twisim/logger"
	"github.com/jetsetilly/twisim/resources"
)

// Context is the context required by the EEPROM.
type Context interface {
	logger.Permission
}

// DefaultAddress is the bus address of a 24LC256 with the address pins tied
// low.
const DefaultAddress = 0x50

const (
	Size     = 0x8000
	PageSize = 0x40
	NumPages = Size / PageSize
)

// State records how incoming bytes will be interpreted.
type State int

// List of valid State values.
const (
	Stopped State = iota
	AddressHi
	AddressLo
	Data
)

// EEPROM represents the non-volatile memory. It implements the i2c.Target
// interface.
type EEPROM struct {
	ctx Context

	// the file in the resources directory used for saving and restoring. an
	// empty string means that the data is never saved or restored
	filename string

	State   State
	Reading bool

	// the next address a read/write operation will access
	Address uint16

	// current data
	Data []uint8

	// the data as it is on disk. data is mutable and we need a way of
	// comparing what's on disk with what's in memory.
	Disk []uint8

	// data is dirty and has not been saved to disk
	dirty bool
}

// NewEEPROM is the preferred method of initialisation for the EEPROM type.
// This function will initialise the memory and Restore() any existing data
// from disk.
func NewEEPROM(ctx Context, filename string) *EEPROM {
	ee := &EEPROM{
		ctx:      ctx,
		filename: filename,
		Data:     make([]uint8, Size),
		Disk:     make([]uint8, Size),
	}

	// initialise data with 0xff
	for i := range ee.Data {
		ee.Data[i] = 0xff
		ee.Disk[i] = 0xff
	}

	// load from disk
	ee.Restore()

	return ee
}

// Start implements the i2c.Target interface.
func (ee *EEPROM) Start(receive bool) bool {
	ee.Reading = receive
	if receive {
		logger.Logf(ee.ctx, "eeprom", "reading from address %#04x", ee.Address)
		ee.State = Data
	} else {
		ee.State = AddressHi
	}
	return true
}

// Send implements the i2c.Target interface.
func (ee *EEPROM) Send(v uint8) bool {
	switch ee.State {
	case AddressHi:
		// the top bit of the address is ignored by a 32k part
		ee.Address = uint16(v&0x7f) << 8
		ee.State = AddressLo
	case AddressLo:
		ee.Address |= uint16(v)
		ee.State = Data
		logger.Logf(ee.ctx, "eeprom", "writing to address %#04x", ee.Address)
	case Data:
		if ee.Reading {
			return false
		}
		if unicode.IsPrint(rune(v)) {
			logger.Logf(ee.ctx, "eeprom", "written byte %#02x [%c]", v, v)
		} else {
			logger.Logf(ee.ctx, "eeprom", "written byte %#02x", v)
		}
		ee.put(v)
	default:
		return false
	}
	return true
}

// Recv implements the i2c.Target interface.
func (ee *EEPROM) Recv() uint8 {
	return ee.get()
}

// Stop implements the i2c.Target interface.
func (ee *EEPROM) Stop() {
	ee.State = Stopped
}

func (ee *EEPROM) put(v uint8) {
	ee.Data[ee.Address] = v
	ee.dirty = true

	// writes are kept on the same page, by looping back to the start of the
	// current page
	if ee.Address&(PageSize-1) == PageSize-1 {
		ee.Address &^= PageSize - 1
	} else {
		ee.Address++
	}
}

func (ee *EEPROM) get() uint8 {
	v := ee.Data[ee.Address]

	// sequential reads are not limited to the current page
	ee.Address = (ee.Address + 1) % Size

	return v
}

// Restore is exposed so that it can be used by the debugger
func (ee *EEPROM) Restore() {
	if ee.filename == "" {
		return
	}
	d, msg := restore(ee.filename)
	logger.Log(ee.ctx, "eeprom", msg)
	if len(d) == 0 {
		ee.dirty = true
		return
	}
	copy(ee.Data, d)
	copy(ee.Disk, d)
	ee.dirty = false
}

// Save is exposed so that it can be used by the debugger
func (ee *EEPROM) Save() {
	if ee.filename == "" {
		return
	}
	if ee.dirty {
		msg := save(ee.filename, ee.Data)
		logger.Log(ee.ctx, "eeprom", msg)

		// disk data is now the same as the current data
		ee.dirty = false
		copy(ee.Disk, ee.Data)
	}
}

// IsSaved returns true if disk data is the same as data
func (ee *EEPROM) IsSaved() bool {
	return slices.Equal(ee.Data, ee.Disk)
}

// save returns a string that should be used as a log message
func save(filename string, data []uint8) string {
	fn, err := resources.JoinPath(filename)
	if err != nil {
		return fmt.Sprintf("could not write eeprom file: %v", err)
	}

	f, err := os.Create(fn)
	if err != nil {
		return fmt.Sprintf("could not write eeprom file: %v", err)
	}

	n, err := f.Write(data)
	if err != nil {
		return fmt.Sprintf("could not write eeprom file: %v", err)
	}

	err = f.Close()
	if err != nil {
		return fmt.Sprintf("could not close eeprom file: %v", err)
	}

	if n != len(data) {
		return fmt.Sprintf("eeprom file has not been truncated during write. %d should be %d", n, len(data))
	}

	return fmt.Sprintf("eeprom file saved to %s", fn)
}

// restore returns a string that should be used as a log message
func restore(filename string) ([]uint8, string) {
	fn, err := resources.JoinPath(filename)
	if err != nil {
		return []uint8{}, fmt.Sprintf("could not load eeprom file: %v", err)
	}

	d, err := os.ReadFile(fn)
	if err != nil {
		return []uint8{}, fmt.Sprintf("could not load eeprom file: %v", err)
	}

	if len(d) != Size {
		return []uint8{}, fmt.Sprintf("eeprom file is of incorrect length. %d should be %d", len(d), Size)
	}

	return d, fmt.Sprintf("eeprom file loaded from %s", fn)
}
