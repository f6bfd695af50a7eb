// Package irq is a single level-triggered interrupt line.
package irq

import "fmt"

// Line is an interrupt line. The zero value is a low line with no handler.
type Line struct {
	label string
	level int

	// the number of transitions from low to high since the last reset
	asserted int

	// called on every call to Set(), whether the level has changed or not
	handler func(level int)
}

// NewLine is the preferred method of initialisation for the Line type. The
// handler can be nil.
func NewLine(label string, handler func(level int)) *Line {
	return &Line{
		label:   label,
		handler: handler,
	}
}

func (l *Line) Label() string {
	return l.label
}

// Set the level of the line. Any non-zero value is high.
func (l *Line) Set(level int) {
	if level != 0 {
		level = 1
	}
	if level == 1 && l.level == 0 {
		l.asserted++
	}
	l.level = level
	if l.handler != nil {
		l.handler(level)
	}
}

// SetHandler replaces the function called by Set().
func (l *Line) SetHandler(handler func(level int)) {
	l.handler = handler
}

// Level returns the current level of the line. Either 0 or 1.
func (l *Line) Level() int {
	return l.level
}

// Asserted returns the number of times the line has moved from low to high
// since the last reset.
func (l *Line) Asserted() int {
	return l.asserted
}

// Reset sets the line low and clears the assertion count. The handler is not
// called.
func (l *Line) Reset() {
	l.level = 0
	l.asserted = 0
}

func (l *Line) String() string {
	return fmt.Sprintf("%s: level=%d asserted=%d", l.label, l.level, l.asserted)
}
