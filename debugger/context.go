package debugger

type context struct {
	// the filename of the EEPROM in the resources directory. empty if there
	// is no EEPROM attached to the bus
	eeprom string

	// logging is not allowed while quiet is true
	quiet bool
}

func (ctx *context) AllowLogging() bool {
	return !ctx.quiet
}

func (ctx *context) EEPROM() string {
	return ctx.eeprom
}
