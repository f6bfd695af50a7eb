package debugger

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jetsetilly/twisim/hardware"
)

type mappedAddress struct {
	address uint16
	area    hardware.Area
	idx     uint16
}

func (m *debugger) parseAddress(address string) (mappedAddress, error) {
	var ma mappedAddress

	var err error
	ma.address, err = hardware.ParseAddress(address)
	if err != nil {
		return ma, err
	}

	ma.idx, ma.area = m.board.Mem.MapAddress(ma.address)
	if ma.area == nil {
		return ma, fmt.Errorf("address is not mapped: %s", address)
	}

	return ma, nil
}

// parseData accepts decimal, hexadecimal ($ or 0x prefix) and binary (%
// prefix) values
func parseData(data string) (uint8, error) {
	if strings.HasPrefix(data, "$") {
		data = fmt.Sprintf("0x%s", data[1:])
	} else if strings.HasPrefix(data, "%") {
		data = fmt.Sprintf("0b%s", data[1:])
	}

	v, err := strconv.ParseUint(data, 0, 8)
	if err != nil {
		return 0, fmt.Errorf("data is not valid: %s", data)
	}
	return uint8(v), nil
}
