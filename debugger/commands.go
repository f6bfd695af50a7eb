package debugger

import (
	"fmt"
	"strings"

	"github.com/jetsetilly/twisim/logger"
)

const help = `READ <reg|addr>          read register
WRITE <reg|addr> <data>  write data to register
TWI                      show TWI registers
STOP                     issue a STOP directly
RESET                    reset the TWI controller
BUS [CLEAR]              show (or clear) the recent bus activity
DEVICES                  list devices attached to the bus
IRQ                      show the state of the interrupt line
WATCH <reg|addr>         report changes to a register
WATCH DROP <reg|ALL>     remove watch
SAVE                     save EEPROM to disk
SCRIPT <file>            run lua script
LOG [ECHO|NOECHO]        show log or set echo
QUIT`

// returns true if debugger is to quit
func (m *debugger) commands(cmd []string) bool {
	if len(cmd) == 0 {
		return false
	}

	switch strings.ToUpper(cmd[0]) {
	case "R", "READ":
		if len(cmd) < 2 {
			m.println(m.styles.err.Render, "READ requires an address")
			break // switch
		}

		ma, err := m.parseAddress(cmd[1])
		if err != nil {
			m.println(m.styles.err.Render, fmt.Sprintf("read: %s", err.Error()))
			break // switch
		}

		data, err := m.board.Read(ma.address)
		if err != nil {
			m.println(m.styles.err.Render, err.Error())
			break // switch
		}

		m.println(m.styles.register.Render, fmt.Sprintf("$%04x = %02x (%s)", ma.address, data, ma.area.Label()))
		if s := m.board.LastAreaStatus(); len(s) > 0 {
			m.println(m.styles.status.Render, s)
		}

	case "W", "WRITE":
		if len(cmd) < 3 {
			m.println(m.styles.err.Render, "WRITE requires an address and a value")
			break // switch
		}

		ma, err := m.parseAddress(cmd[1])
		if err != nil {
			m.println(m.styles.err.Render, fmt.Sprintf("write: %s", err.Error()))
			break // switch
		}

		data, err := parseData(cmd[2])
		if err != nil {
			m.println(m.styles.err.Render, fmt.Sprintf("write: %s", err.Error()))
			break // switch
		}

		err = m.board.Write(ma.address, data)
		if err != nil {
			m.println(m.styles.err.Render, err.Error())
			break // switch
		}

		if s := m.board.LastAreaStatus(); len(s) > 0 {
			m.println(m.styles.status.Render, s)
		}
		m.reportWatches()

	case "TWI":
		m.println(m.styles.register.Render, m.board.TWI.String())

	case "STOP":
		m.board.TWI.Stop()
		m.println(m.styles.register.Render, m.board.TWI.Registers().TWCR.String())
		m.reportWatches()

	case "RESET":
		m.reset()
		m.reportWatches()

	case "BUS":
		if len(cmd) == 2 {
			if strings.ToUpper(cmd[1]) == "CLEAR" {
				m.board.Bus.Activity.Clear()
			} else {
				m.println(m.styles.err.Render, fmt.Sprintf("unrecognised argument for BUS command: %s", cmd[1]))
			}
			break // switch
		}
		if m.board.Bus.Activity.Len() == 0 {
			m.println(m.styles.debugger.Render, "no bus activity")
		} else {
			m.println(m.styles.bus.Render, m.board.Bus.Activity.String())
		}

	case "DEVICES":
		a := m.board.Bus.Addresses()
		if len(a) == 0 {
			m.println(m.styles.debugger.Render, "no devices on bus")
		}
		for _, d := range a {
			m.println(m.styles.bus.Render, fmt.Sprintf("%#02x", d))
		}

	case "IRQ":
		m.println(m.styles.irq.Render, m.board.IRQ.String())

	case "WATCH":
		if len(cmd) < 2 {
			m.println(m.styles.err.Render, "WATCH requires an address")
			break // switch
		}

		// we check the first argument for special keywords before assuming
		// it is an address. the keywords are case insensitive
		if strings.ToUpper(cmd[1]) == "DROP" {
			if len(cmd) < 3 {
				m.println(m.styles.err.Render, "WATCH DROP requires an address")
				break // switch
			}

			if strings.ToUpper(cmd[2]) == "ALL" {
				clear(m.watches)
				break // switch
			}

			ma, err := m.parseAddress(cmd[2])
			if err != nil {
				m.println(m.styles.err.Render, fmt.Sprintf("watch: %s", err.Error()))
				break // switch
			}
			if _, ok := m.watches[ma.address]; !ok {
				m.println(m.styles.debugger.Render, fmt.Sprintf("watch for $%04x not present", ma.address))
				break // switch
			}
			delete(m.watches, ma.address)
			m.println(m.styles.debugger.Render, fmt.Sprintf("watch $%04x has been removed", ma.address))
			break // switch
		}

		ma, err := m.parseAddress(cmd[1])
		if err != nil {
			m.println(m.styles.err.Render, fmt.Sprintf("watch: %s", err.Error()))
			break // switch
		}

		if _, ok := m.watches[ma.address]; ok {
			m.println(m.styles.err.Render, fmt.Sprintf("watch for %s already present", cmd[1]))
			break // switch
		}

		d, err := ma.area.Read(ma.idx)
		if err != nil {
			m.println(m.styles.err.Render, fmt.Sprintf("watch address is not readable: %s", cmd[1]))
			break // switch
		}

		m.watches[ma.address] = watch{
			ma:   ma,
			data: d,
		}
		m.println(m.styles.debugger.Render, fmt.Sprintf("added watch for $%04x", ma.address))

	case "SAVE":
		if m.board.EEPROM == nil {
			m.println(m.styles.err.Render, "no EEPROM attached to the bus")
			break // switch
		}
		m.board.EEPROM.Save()
		m.println(m.styles.debugger.Render, "EEPROM saved")

	case "SCRIPT":
		if len(cmd) < 2 {
			m.println(m.styles.err.Render, "SCRIPT requires a filename")
			break // switch
		}
		err := m.runScript(cmd[1])
		if err != nil {
			m.println(m.styles.err.Render, err.Error())
		}

	case "LOG":
		switch len(cmd) {
		case 1:
			logger.Tail(m.out, -1)
		case 2:
			c := strings.ToUpper(cmd[1])
			switch c {
			case "ECHO":
				logger.SetEcho(m.out, false)
			case "NOECHO":
				logger.SetEcho(nil, false)
			default:
				m.println(m.styles.err.Render, fmt.Sprintf("unrecognised argument for LOG command: %s", c))
			}
		default:
			m.println(m.styles.err.Render, "too many arguments to LOG command")
		}

	case "HELP":
		fmt.Fprintln(m.out, help)

	case "QUIT":
		return true

	default:
		m.println(m.styles.err.Render, fmt.Sprintf("unrecognised command: %s", strings.Join(cmd, " ")))
	}

	return false
}

func (m *debugger) reportWatches() {
	changed, err := m.checkWatches()
	if err != nil {
		m.println(m.styles.err.Render, err.Error())
		return
	}
	for _, w := range changed {
		m.println(m.styles.watch.Render, fmt.Sprintf("watch: $%04x = %02x -> %02x", w.ma.address, w.prev, w.data))
	}
}
