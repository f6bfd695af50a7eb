package i2c

import "fmt"

// Transfer is the handle passed to the function given to Transaction().
type Transfer struct {
	bus *Bus
}

// Send a byte to the addressed target.
func (tr Transfer) Send(data uint8) {
	tr.bus.SendByte(data)
}

// Recv a byte from the addressed target.
func (tr Transfer) Recv() (uint8, error) {
	data, ok := tr.bus.RecvByte()
	if !ok {
		return 0, fmt.Errorf("i2c: recv: not a receive transfer")
	}
	return data, nil
}

// Transaction begins a transfer to the target at the address and calls fn
// with a handle to the transfer. The transfer is always ended before
// Transaction() returns, whether fn returns an error or not.
func (b *Bus) Transaction(address uint8, receive bool, fn func(Transfer) error) error {
	err := b.BeginTransfer(address, receive)
	if err != nil {
		return err
	}
	defer b.EndTransfer()
	return fn(Transfer{bus: b})
}
