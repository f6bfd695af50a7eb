package logger_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/jetsetilly/twisim/logger"
	"github.com/jetsetilly/twisim/test"
)

type deny struct{}

func (deny) AllowLogging() bool {
	return false
}

func TestLogAndTail(t *testing.T) {
	logger.Clear()

	logger.Log(logger.Allow, "twi", "first")
	logger.Logf(logger.Allow, "twi", "second %02x", 0x18)
	logger.Log(logger.Allow, "i2c", errors.New("third"))

	var s strings.Builder
	logger.Tail(&s, -1)
	test.ExpectEquality(t, s.String(), "twi: first\ntwi: second 18\ni2c: third\n")

	s.Reset()
	logger.Tail(&s, 1)
	test.ExpectEquality(t, s.String(), "i2c: third\n")

	s.Reset()
	logger.Tail(&s, 100)
	test.ExpectEquality(t, strings.Count(s.String(), "\n"), 3)
}

func TestRepeatedEntries(t *testing.T) {
	logger.Clear()

	logger.Log(logger.Allow, "twi", "bad offset")
	logger.Log(logger.Allow, "twi", "bad offset")
	logger.Log(logger.Allow, "twi", "bad offset")

	e := logger.Copy()
	test.ExpectEquality(t, len(e), 1)
	test.ExpectEquality(t, e[0].Repeated, 2)
	test.ExpectEquality(t, e[0].String(), "twi: bad offset (repeat x3)")
}

func TestPermission(t *testing.T) {
	logger.Clear()

	logger.Log(deny{}, "twi", "hidden")
	logger.Logf(deny{}, "twi", "hidden %d", 1)
	logger.Log(nil, "twi", "hidden")
	test.ExpectEquality(t, len(logger.Copy()), 0)
}

func TestEcho(t *testing.T) {
	logger.Clear()

	var s strings.Builder
	logger.SetEcho(&s, false)
	logger.Log(logger.Allow, "bus", "start")
	logger.SetEcho(nil, false)
	logger.Log(logger.Allow, "bus", "stop")

	test.ExpectEquality(t, s.String(), "bus: start\n")
}

func TestMultilineDetail(t *testing.T) {
	logger.Clear()
	logger.Log(logger.Allow, "twi", "a\nb\n")
	test.ExpectEquality(t, logger.Copy()[0].Detail, "a b")
}
