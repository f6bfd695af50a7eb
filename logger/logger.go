// This file is part of Gopher2600.
//
// Gopher2600 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gopher2600 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gopher2600.  If not, see <https://www.gnu.org/licenses/>.

// Package logger is the central log for the emulation. Every package logs
// through the Log() and Logf() functions, tagging each entry with a short
// string naming the area of the emulation the entry concerns.
//
// Logging is gated by the Permission interface. Emulation components are
// usually created with a context that implements Permission and the context
// can decide whether logging is currently allowed. Code outside the
// emulation can use the Allow value.
//
// Entries that are identical to the most recent entry are not added a second
// time. Instead the repeat count of the most recent entry is increased.
package logger

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

// Permission implementations decide whether a log entry should be recorded.
type Permission interface {
	AllowLogging() bool
}

type allow struct{}

func (allow) AllowLogging() bool {
	return true
}

// Allow is a Permission that always allows logging.
var Allow Permission = allow{}

// the maximum number of entries held in the central log. older entries are
// dropped
const maxEntries = 256

// Entry is a single entry in the log.
type Entry struct {
	Tag    string
	Detail string

	// the number of times this entry has been repeated
	Repeated int
}

func (e Entry) String() string {
	if e.Repeated > 0 {
		return fmt.Sprintf("%s: %s (repeat x%d)", e.Tag, e.Detail, e.Repeated+1)
	}
	return fmt.Sprintf("%s: %s", e.Tag, e.Detail)
}

type logger struct {
	crit    sync.Mutex
	entries []Entry
	echo    io.Writer
}

var central = &logger{
	entries: make([]Entry, 0, maxEntries),
}

func (l *logger) log(tag string, detail string) {
	l.crit.Lock()
	defer l.crit.Unlock()

	// multiline details are folded onto a single line
	detail = strings.ReplaceAll(strings.TrimSpace(detail), "\n", " ")

	if n := len(l.entries); n > 0 {
		last := &l.entries[n-1]
		if last.Tag == tag && last.Detail == detail {
			last.Repeated++
			return
		}
	}

	e := Entry{Tag: tag, Detail: detail}
	if len(l.entries) >= maxEntries {
		l.entries = append(l.entries[1:], e)
	} else {
		l.entries = append(l.entries, e)
	}

	if l.echo != nil {
		fmt.Fprintln(l.echo, e.String())
	}
}

// Log adds an entry to the central log. The detail argument can be a string,
// an error, a fmt.Stringer or any other type that can be formatted with the
// %v verb.
func Log(perm Permission, tag string, detail any) {
	if perm == nil || !perm.AllowLogging() {
		return
	}

	var s string
	switch d := detail.(type) {
	case string:
		s = d
	case error:
		s = d.Error()
	case fmt.Stringer:
		s = d.String()
	default:
		s = fmt.Sprintf("%v", d)
	}

	central.log(tag, s)
}

// Logf is the same as Log but with a format string and arguments.
func Logf(perm Permission, tag string, format string, args ...any) {
	if perm == nil || !perm.AllowLogging() {
		return
	}
	central.log(tag, fmt.Sprintf(format, args...))
}

// Tail writes the most recent n entries to the io.Writer. A negative value
// for n writes every entry.
func Tail(w io.Writer, n int) {
	central.crit.Lock()
	defer central.crit.Unlock()

	if n < 0 || n > len(central.entries) {
		n = len(central.entries)
	}

	for _, e := range central.entries[len(central.entries)-n:] {
		fmt.Fprintln(w, e.String())
	}
}

// SetEcho will print every new entry to the io.Writer as it is added. A nil
// writer stops the echo. If writeRecent is true then the existing entries are
// written to the writer immediately.
func SetEcho(w io.Writer, writeRecent bool) {
	central.crit.Lock()
	central.echo = w
	central.crit.Unlock()

	if w != nil && writeRecent {
		Tail(w, -1)
	}
}

// Clear removes every entry from the central log.
func Clear() {
	central.crit.Lock()
	defer central.crit.Unlock()
	central.entries = central.entries[:0]
}

// Copy returns a copy of the central log entries, oldest first.
func Copy() []Entry {
	central.crit.Lock()
	defer central.crit.Unlock()

	c := make([]Entry, len(central.entries))
	copy(c, central.entries)
	return c
}
