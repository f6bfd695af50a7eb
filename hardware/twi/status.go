package twi

import "fmt"

// Status is a status code as it appears in the upper five bits of the TWSR
// register. The three low bits of a Status value are always zero.
type Status uint8

// List of status codes produced by the controller. Status codes for slave
// operation, master receive and negative acknowledgements are not produced.
const (
	BusError        Status = 0x00
	Start           Status = 0x08
	MasterTxAddrAck Status = 0x18
	MasterTxDataAck Status = 0x28
	NoInfo          Status = 0xf8
)

func (s Status) String() string {
	switch s {
	case BusError:
		return "bus error"
	case Start:
		return "start"
	case MasterTxAddrAck:
		return "SLA+W ack"
	case MasterTxDataAck:
		return "data ack"
	case NoInfo:
		return "no info"
	}
	return fmt.Sprintf("unknown status %02x", uint8(s))
}
