package hardware

import (
	"fmt"

	"github.com/jetsetilly/twisim/hardware/twi"
)

// origin of the TWI registers in the ATmega2560 data space. TWBR is at the
// origin and TWAMR is the last register
const (
	originTWI = 0x00b8
	memtopTWI = originTWI + twi.WindowSize - 1
)

type lastArea interface {
	Label() string
	Status() string
}

type Area interface {
	// read and write both take an index value. this is an address in the area
	// but with the area origin removed. in other words, the area doesn't need
	// to know about it's location in memory, only the relative placement of
	// addresses within the area
	Read(idx uint16) (uint8, error)
	Write(idx uint16, data uint8) error
	Label() string
}

type memory struct {
	twi  Area
	last lastArea
}

// realize installs the area into the memory map. until realize has been
// called the TWI addresses are unmapped
func (mem *memory) realize(twi Area) {
	mem.twi = twi
}

// MapAddress returns the memory area and the index into the area
// corresponding to the address. The area will be nil if the address is not
// mapped.
func (mem *memory) MapAddress(address uint16) (uint16, Area) {
	if address >= originTWI && address <= memtopTWI {
		if mem.twi == nil {
			return 0, nil
		}
		return address - originTWI, mem.twi
	}
	return 0, nil
}

func (mem *memory) Read(address uint16) (uint8, error) {
	idx, area := mem.MapAddress(address)
	if area == nil {
		return 0, fmt.Errorf("memory.Read: unmapped address: %04x", address)
	}
	if l, ok := area.(lastArea); ok {
		mem.last = l
	}
	return area.Read(idx)
}

func (mem *memory) Write(address uint16, data uint8) error {
	idx, area := mem.MapAddress(address)
	if area == nil {
		return fmt.Errorf("memory.Write: unmapped address: %04x", address)
	}
	if l, ok := area.(lastArea); ok {
		mem.last = l
	}
	return area.Write(idx, data)
}
