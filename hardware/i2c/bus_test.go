package i2c_test

import (
	"errors"
	"testing"

	"github.com/jetsetilly/twisim/hardware/i2c"
	"github.com/jetsetilly/twisim/test"
)

type context struct{}

func (context) AllowLogging() bool {
	return false
}

// target records the bytes it receives and returns bytes from a queue
type target struct {
	ack      bool
	started  int
	stopped  int
	received []uint8
	queue    []uint8
}

func (t *target) Start(receive bool) bool {
	t.started++
	return t.ack
}

func (t *target) Send(data uint8) bool {
	t.received = append(t.received, data)
	return true
}

func (t *target) Recv() uint8 {
	if len(t.queue) == 0 {
		return 0xff
	}
	v := t.queue[0]
	t.queue = t.queue[1:]
	return v
}

func (t *target) Stop() {
	t.stopped++
}

func TestAttach(t *testing.T) {
	bus := i2c.NewBus(context{})

	test.ExpectSuccess(t, bus.Attach(0x50, &target{}))
	test.ExpectSuccess(t, bus.Attach(0x08, &target{}))

	err := bus.Attach(0x50, &target{})
	test.ExpectSuccess(t, errors.Is(err, i2c.AddressInUse))

	err = bus.Attach(0x80, &target{})
	test.ExpectSuccess(t, errors.Is(err, i2c.InvalidAddress))

	a := bus.Addresses()
	test.ExpectEquality(t, len(a), 2)
	test.ExpectEquality(t, a[0], 0x08)
	test.ExpectEquality(t, a[1], 0x50)

	bus.Detach(0x08)
	bus.Detach(0x09)
	test.ExpectEquality(t, len(bus.Addresses()), 1)
}

func TestTransfer(t *testing.T) {
	bus := i2c.NewBus(context{})
	tg := &target{ack: true}
	test.ExpectSuccess(t, bus.Attach(0x48, tg))

	test.ExpectSuccess(t, bus.BeginTransfer(0x48, false))
	test.ExpectSuccess(t, bus.Busy())
	bus.SendByte(0x41)
	bus.SendByte(0x42)
	bus.EndTransfer()

	test.ExpectFailure(t, bus.Busy())
	test.ExpectEquality(t, tg.started, 1)
	test.ExpectEquality(t, tg.stopped, 1)
	test.ExpectEquality(t, len(tg.received), 2)
	test.ExpectEquality(t, tg.received[1], 0x42)

	// ending when there is no transfer does not touch the target
	bus.EndTransfer()
	test.ExpectEquality(t, tg.stopped, 1)

	// sending without a transfer is dropped
	bus.SendByte(0x43)
	test.ExpectEquality(t, len(tg.received), 2)
}

func TestNoResponder(t *testing.T) {
	bus := i2c.NewBus(context{})

	err := bus.BeginTransfer(0x48, false)
	test.ExpectSuccess(t, errors.Is(err, i2c.NoResponder))
	test.ExpectFailure(t, bus.Busy())

	// a target that does not acknowledge
	test.ExpectSuccess(t, bus.Attach(0x48, &target{ack: false}))
	err = bus.BeginTransfer(0x48, false)
	test.ExpectSuccess(t, errors.Is(err, i2c.NoResponder))

	err = bus.BeginTransfer(0x90, false)
	test.ExpectSuccess(t, errors.Is(err, i2c.InvalidAddress))
}

func TestRepeatedStart(t *testing.T) {
	bus := i2c.NewBus(context{})
	a := &target{ack: true}
	b := &target{ack: true, queue: []uint8{0x12}}
	test.ExpectSuccess(t, bus.Attach(0x10, a))
	test.ExpectSuccess(t, bus.Attach(0x11, b))

	test.ExpectSuccess(t, bus.BeginTransfer(0x10, false))
	test.ExpectSuccess(t, bus.BeginTransfer(0x11, true))
	test.ExpectEquality(t, a.stopped, 1)

	v, ok := bus.RecvByte()
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, v, 0x12)

	// sends are dropped in a receive transfer
	bus.SendByte(0x01)
	test.ExpectEquality(t, len(b.received), 0)
}

func TestTransaction(t *testing.T) {
	bus := i2c.NewBus(context{})
	tg := &target{ack: true, queue: []uint8{0xaa}}
	test.ExpectSuccess(t, bus.Attach(0x50, tg))

	err := bus.Transaction(0x50, false, func(tr i2c.Transfer) error {
		tr.Send(0x01)
		tr.Send(0x02)
		return nil
	})
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, tg.stopped, 1)
	test.ExpectFailure(t, bus.Busy())

	// the transfer is ended on an early return
	abort := errors.New("abort")
	err = bus.Transaction(0x50, false, func(tr i2c.Transfer) error {
		return abort
	})
	test.ExpectSuccess(t, errors.Is(err, abort))
	test.ExpectEquality(t, tg.stopped, 2)
	test.ExpectFailure(t, bus.Busy())

	// receive is only allowed in a receive transaction
	err = bus.Transaction(0x50, false, func(tr i2c.Transfer) error {
		_, err := tr.Recv()
		return err
	})
	test.ExpectFailure(t, err)

	var v uint8
	err = bus.Transaction(0x50, true, func(tr i2c.Transfer) error {
		var err error
		v, err = tr.Recv()
		return err
	})
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, 0xaa)

	// fn is not called if the target does not respond
	var called bool
	err = bus.Transaction(0x51, false, func(tr i2c.Transfer) error {
		called = true
		return nil
	})
	test.ExpectSuccess(t, errors.Is(err, i2c.NoResponder))
	test.ExpectFailure(t, called)
}

func TestActivity(t *testing.T) {
	bus := i2c.NewBus(context{})
	test.ExpectSuccess(t, bus.Attach(0x48, &target{ack: true}))

	test.ExpectSuccess(t, bus.BeginTransfer(0x48, false))
	bus.SendByte(0x41)
	bus.EndTransfer()
	_ = bus.BeginTransfer(0x49, false)

	test.ExpectEquality(t, bus.Activity.String(), "START 0x48 W\nSEND  41\nSTOP\nSTART 0x49 W\nNACK  0x49")

	bus.Activity.Clear()
	test.ExpectEquality(t, bus.Activity.Len(), 0)
}

func TestActivityWrap(t *testing.T) {
	bus := i2c.NewBus(context{})
	test.ExpectSuccess(t, bus.Attach(0x48, &target{ack: true}))
	test.ExpectSuccess(t, bus.BeginTransfer(0x48, false))
	for i := 0; i < 100; i++ {
		bus.SendByte(uint8(i))
	}

	e := bus.Activity.Copy()
	test.ExpectEquality(t, len(e), 64)
	test.ExpectEquality(t, e[0].Data, 36)
	test.ExpectEquality(t, e[63].Data, 99)
}
