// Package i2c is the two-wire bus that the TWI controller drives. Devices
// attach to the bus at a 7-bit address by implementing the Target interface.
//
// The bus works at the byte level. There is no emulation of the SDA and SCL
// lines and no timing.
package i2c

import (
	"errors"
	"fmt"
	"sort"

	"github.com/jetsetilly/twisim/logger"
)

// Context is the context required by the bus.
type Context interface {
	logger.Permission
}

// Target is a device that can be attached to the bus.
type Target interface {
	// Start is called when the target is addressed. The receive argument is
	// true if the controller is going to read from the target. Returns true
	// if the target acknowledges.
	Start(receive bool) bool

	// Send delivers a byte to the target. Returns true if the target
	// acknowledges.
	Send(data uint8) bool

	// Recv returns the next byte from the target.
	Recv() uint8

	// Stop is called at the end of the transfer.
	Stop()
}

// Sentinel errors returned by the bus.
var (
	NoResponder    = errors.New("no responder")
	InvalidAddress = errors.New("invalid address")
	AddressInUse   = errors.New("address in use")
)

// MaxAddress is the largest 7-bit address.
const MaxAddress = 0x7f

// Bus is an I2C bus with any number of attached targets.
type Bus struct {
	ctx     Context
	targets map[uint8]Target

	// the target for the current transfer. nil if there is no transfer
	current Target
	address uint8
	receive bool

	// a recent history of bus events
	Activity *Activity
}

// NewBus is the preferred method of initialisation for the Bus type.
func NewBus(ctx Context) *Bus {
	return &Bus{
		ctx:      ctx,
		targets:  make(map[uint8]Target),
		Activity: NewActivity(activityLength),
	}
}

func (b *Bus) Label() string {
	return "I2C"
}

// Attach the target to the bus at the address.
func (b *Bus) Attach(address uint8, t Target) error {
	if address > MaxAddress {
		return fmt.Errorf("i2c: attach: %w: %#02x", InvalidAddress, address)
	}
	if _, ok := b.targets[address]; ok {
		return fmt.Errorf("i2c: attach: %w: %#02x", AddressInUse, address)
	}
	b.targets[address] = t
	logger.Logf(b.ctx, "i2c", "attached %T at %#02x", t, address)
	return nil
}

// Detach removes the target at the address. If the target is part of the
// current transfer then the transfer is ended first.
func (b *Bus) Detach(address uint8) {
	t, ok := b.targets[address]
	if !ok {
		return
	}
	if b.current == t {
		b.EndTransfer()
	}
	delete(b.targets, address)
	logger.Logf(b.ctx, "i2c", "detached %#02x", address)
}

// Addresses returns the addresses of all attached targets in ascending order.
func (b *Bus) Addresses() []uint8 {
	a := make([]uint8, 0, len(b.targets))
	for k := range b.targets {
		a = append(a, k)
	}
	sort.Slice(a, func(i, j int) bool { return a[i] < a[j] })
	return a
}

// Busy returns true if a transfer is in progress.
func (b *Bus) Busy() bool {
	return b.current != nil
}

// BeginTransfer addresses the target at the address. Returns NoResponder if
// there is no target at the address or if the target does not acknowledge.
//
// Beginning a transfer while another is in progress is a repeated start. The
// current target is stopped before the new target is addressed.
func (b *Bus) BeginTransfer(address uint8, receive bool) error {
	if address > MaxAddress {
		return fmt.Errorf("i2c: %w: %#02x", InvalidAddress, address)
	}

	if b.current != nil {
		b.current.Stop()
		b.current = nil
	}

	b.Activity.add(Event{Kind: EventStart, Address: address, Receive: receive})

	t, ok := b.targets[address]
	if !ok || !t.Start(receive) {
		b.Activity.add(Event{Kind: EventNack, Address: address})
		return fmt.Errorf("i2c: %w: %#02x", NoResponder, address)
	}

	b.current = t
	b.address = address
	b.receive = receive
	return nil
}

// SendByte sends the byte to the target of the current transfer. A byte sent
// when there is no transfer is logged and dropped.
func (b *Bus) SendByte(data uint8) {
	if b.current == nil {
		logger.Logf(b.ctx, "i2c", "send of %02x without a transfer", data)
		return
	}
	if b.receive {
		logger.Logf(b.ctx, "i2c", "send of %02x during a receive transfer", data)
		return
	}

	b.Activity.add(Event{Kind: EventData, Address: b.address, Data: data})
	if !b.current.Send(data) {
		b.Activity.add(Event{Kind: EventNack, Address: b.address, Data: data})
	}
}

// RecvByte receives a byte from the target of the current transfer. The
// second result is false if there is no receive transfer in progress.
func (b *Bus) RecvByte() (uint8, bool) {
	if b.current == nil || !b.receive {
		return 0xff, false
	}
	data := b.current.Recv()
	b.Activity.add(Event{Kind: EventData, Address: b.address, Data: data, Receive: true})
	return data, true
}

// EndTransfer ends the current transfer. It is safe to call EndTransfer()
// when there is no transfer in progress.
func (b *Bus) EndTransfer() {
	b.Activity.add(Event{Kind: EventStop, Address: b.address})
	if b.current == nil {
		return
	}
	b.current.Stop()
	b.current = nil
}
