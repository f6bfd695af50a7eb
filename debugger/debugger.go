package debugger

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/jetsetilly/twisim/hardware"
	"github.com/jetsetilly/twisim/logger"
	"github.com/jetsetilly/twisim/resources"
	"github.com/jetsetilly/twisim/version"
	"golang.org/x/term"
)

type input struct {
	s   string
	err error
}

type debugger struct {
	ctx context

	sig   chan os.Signal
	input chan input

	board   *hardware.Board
	watches map[uint16]watch

	// all output from the debugger is written here
	out io.Writer

	// the prompt is only shown if stdin is a terminal
	interactive bool

	// printing styles
	styles styles
}

func newDebugger(ctx context, out io.Writer) (*debugger, error) {
	m := &debugger{
		ctx:     ctx,
		sig:     make(chan os.Signal, 1),
		input:   make(chan input, 1),
		watches: make(map[uint16]watch),
		out:     out,
		styles:  newStyles(),
	}

	var err error
	m.board, err = hardware.Create(&m.ctx)
	if err != nil {
		return nil, err
	}

	return m, nil
}

func (m *debugger) println(style func(...string) string, s string) {
	fmt.Fprintln(m.out, style(s))
}

func (m *debugger) reset() {
	m.board.Reset()
	m.println(m.styles.debugger.Render, "board reset")
	m.println(m.styles.register.Render, m.board.TWI.String())
}

// the name of the file in the resources directory that contains commands to
// run when the debugger starts
const startupFile = "startup"

// returns true if the startup commands include a QUIT
func (m *debugger) startup() bool {
	s, err := resources.Read(startupFile)
	if err != nil {
		m.println(m.styles.err.Render, err.Error())
		return false
	}
	for _, l := range strings.Split(s, "\n") {
		cmd := strings.Fields(l)
		if len(cmd) == 0 || strings.HasPrefix(cmd[0], "#") {
			continue
		}
		if m.commands(cmd) {
			return true
		}
	}
	return false
}

func (m *debugger) loop() {
	for {
		if m.interactive {
			fmt.Fprintf(m.out, "%s> ", m.board.TWI.Registers().TWSR.Code())
		}

		var cmd []string

		select {
		case input := <-m.input:
			if input.err != nil {
				if input.err != io.EOF {
					m.println(m.styles.err.Render, input.err.Error())
				}
				return
			}
			cmd = strings.Fields(input.s)
			if len(cmd) == 0 {
				cmd = []string{"TWI"}
			}
		case <-m.sig:
			fmt.Fprint(m.out, "\r")
			return
		}

		if m.commands(cmd) {
			return
		}
	}
}

const programName = "twisim"

// the filename used for the EEPROM when the -eeprom flag is set
const eepromFile = "eeprom"

// Launch the debugger. The args are the command line arguments without the
// program name.
func Launch(args []string) error {
	var attachEEPROM bool
	var script string
	var echo bool
	var quiet bool

	flgs := flag.NewFlagSet(programName, flag.ExitOnError)
	flgs.BoolVar(&attachEEPROM, "eeprom", false, fmt.Sprintf("attach a 24LC256 EEPROM to the bus at %#02x", 0x50))
	flgs.StringVar(&script, "script", "", "run lua script and exit")
	flgs.BoolVar(&echo, "echo", false, "echo log entries to stdout")
	flgs.BoolVar(&quiet, "quiet", false, "disable logging")
	err := flgs.Parse(args)
	if err != nil {
		return err
	}
	if len(flgs.Args()) > 0 {
		return fmt.Errorf("too many arguments to debugger")
	}

	if echo {
		logger.SetEcho(os.Stdout, false)
	}

	ctx := context{
		quiet: quiet,
	}
	if attachEEPROM {
		ctx.eeprom = eepromFile
	}

	m, err := newDebugger(ctx, os.Stdout)
	if err != nil {
		return err
	}

	if m.board.EEPROM != nil {
		defer m.board.EEPROM.Save()
	}

	if script != "" {
		return m.runScript(script)
	}

	m.interactive = term.IsTerminal(int(os.Stdin.Fd()))
	if m.interactive {
		m.println(m.styles.debugger.Render, version.Title())
	}

	signal.Notify(m.sig, syscall.SIGINT)

	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			m.input <- input{s: strings.TrimSpace(scanner.Text())}
		}
		err := scanner.Err()
		if err == nil {
			err = io.EOF
		}
		m.input <- input{err: err}
	}()

	if m.startup() {
		return nil
	}
	m.loop()

	return nil
}
