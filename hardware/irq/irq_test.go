package irq_test

import (
	"testing"

	"github.com/jetsetilly/twisim/hardware/irq"
	"github.com/jetsetilly/twisim/test"
)

func TestLine(t *testing.T) {
	var calls []int
	l := irq.NewLine("TWI", func(level int) {
		calls = append(calls, level)
	})

	test.ExpectEquality(t, l.Level(), 0)

	l.Set(1)
	l.Set(1)
	test.ExpectEquality(t, l.Level(), 1)
	test.ExpectEquality(t, l.Asserted(), 1)

	l.Set(0)
	l.Set(5)
	test.ExpectEquality(t, l.Level(), 1)
	test.ExpectEquality(t, l.Asserted(), 2)
	test.ExpectEquality(t, len(calls), 4)
	test.ExpectEquality(t, calls[3], 1)

	test.ExpectEquality(t, l.String(), "TWI: level=1 asserted=2")

	l.Reset()
	test.ExpectEquality(t, l.Level(), 0)
	test.ExpectEquality(t, l.Asserted(), 0)
	test.ExpectEquality(t, len(calls), 4)
}

func TestZeroLine(t *testing.T) {
	var l irq.Line
	l.Set(1)
	test.ExpectEquality(t, l.Asserted(), 1)
}
