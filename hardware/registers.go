package hardware

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jetsetilly/twisim/hardware/twi"
)

// RegisterNames maps the datasheet names of the TWI registers to their data
// space addresses.
var RegisterNames = map[string]uint16{
	"TWBR":  originTWI + twi.OffsetTWBR,
	"TWSR":  originTWI + twi.OffsetTWSR,
	"TWAR":  originTWI + twi.OffsetTWAR,
	"TWDR":  originTWI + twi.OffsetTWDR,
	"TWCR":  originTWI + twi.OffsetTWCR,
	"TWAMR": originTWI + twi.OffsetTWAMR,
}

// ParseAddress converts a register name or a numeric address into a data
// space address. Numeric addresses can be prefixed with $ or 0x for
// hexadecimal.
func ParseAddress(s string) (uint16, error) {
	if a, ok := RegisterNames[strings.ToUpper(s)]; ok {
		return a, nil
	}

	if strings.HasPrefix(s, "$") {
		s = fmt.Sprintf("0x%s", s[1:])
	}

	a, err := strconv.ParseUint(s, 0, 16)
	if err != nil {
		return 0, fmt.Errorf("address is not valid: %s", s)
	}
	return uint16(a), nil
}
