package debugger

import (
	"fmt"

	"github.com/jetsetilly/twisim/hardware/twi"
	"github.com/jetsetilly/twisim/logger"
	lua "github.com/yuin/gopher-lua"
)

// the control bits are exposed to scripts as fields in the twi table
var scriptConstants = map[string]uint8{
	"TWINT": twi.TWINT,
	"TWEA":  twi.TWEA,
	"TWSTA": twi.TWSTA,
	"TWSTO": twi.TWSTO,
	"TWWC":  twi.TWWC,
	"TWEN":  twi.TWEN,
	"TWIE":  twi.TWIE,
}

func (m *debugger) newScriptState() *lua.LState {
	L := lua.NewState()

	tbl := L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"read":   m.scriptRead,
		"write":  m.scriptWrite,
		"stop":   m.scriptStop,
		"reset":  m.scriptReset,
		"status": m.scriptStatus,
		"log":    m.scriptLog,
	})
	for k, v := range scriptConstants {
		L.SetField(tbl, k, lua.LNumber(v))
	}
	L.SetGlobal("twi", tbl)

	return L
}

// runScript runs the lua script in the named file
func (m *debugger) runScript(filename string) error {
	L := m.newScriptState()
	defer L.Close()

	m.println(m.styles.script.Render, fmt.Sprintf("running %s", filename))
	if err := L.DoFile(filename); err != nil {
		return fmt.Errorf("script: %w", err)
	}
	return nil
}

// runScriptString runs the lua source in the string
func (m *debugger) runScriptString(source string) error {
	L := m.newScriptState()
	defer L.Close()

	if err := L.DoString(source); err != nil {
		return fmt.Errorf("script: %w", err)
	}
	return nil
}

// scriptAddress accepts a register name or a number
func (m *debugger) scriptAddress(L *lua.LState, n int) mappedAddress {
	var s string
	switch v := L.CheckAny(n).(type) {
	case lua.LString:
		s = string(v)
	case lua.LNumber:
		s = fmt.Sprintf("%d", int(v))
	default:
		L.ArgError(n, "register name or address expected")
	}

	ma, err := m.parseAddress(s)
	if err != nil {
		L.ArgError(n, err.Error())
	}
	return ma
}

func (m *debugger) scriptRead(L *lua.LState) int {
	ma := m.scriptAddress(L, 1)
	data, err := m.board.Read(ma.address)
	if err != nil {
		L.RaiseError("%s", err.Error())
	}
	L.Push(lua.LNumber(data))
	return 1
}

func (m *debugger) scriptWrite(L *lua.LState) int {
	ma := m.scriptAddress(L, 1)
	v := L.CheckInt(2)
	if v < 0 || v > 0xff {
		L.ArgError(2, "value must be between 0 and 255")
	}
	err := m.board.Write(ma.address, uint8(v))
	if err != nil {
		L.RaiseError("%s", err.Error())
	}
	m.reportWatches()
	return 0
}

func (m *debugger) scriptStop(L *lua.LState) int {
	m.board.TWI.Stop()
	return 0
}

func (m *debugger) scriptReset(L *lua.LState) int {
	m.board.Reset()
	return 0
}

// status returns the status code, with the prescaler bits masked out
func (m *debugger) scriptStatus(L *lua.LState) int {
	L.Push(lua.LNumber(m.board.TWI.Registers().TWSR.Code()))
	return 1
}

func (m *debugger) scriptLog(L *lua.LState) int {
	s := L.CheckString(1)
	logger.Log(&m.ctx, "script", s)
	m.println(m.styles.script.Render, s)
	return 0
}
