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

package i2c

import (
	"fmt"
	"strings"
)

// length of activity trace
const activityLength = 64

// EventKind identifies the type of bus event.
type EventKind int

// List of valid EventKind values.
const (
	EventStart EventKind = iota
	EventData
	EventNack
	EventStop
)

// Event is a single entry in the activity trace.
type Event struct {
	Kind    EventKind
	Address uint8
	Data    uint8
	Receive bool
}

func (e Event) String() string {
	switch e.Kind {
	case EventStart:
		if e.Receive {
			return fmt.Sprintf("START %#02x R", e.Address)
		}
		return fmt.Sprintf("START %#02x W", e.Address)
	case EventData:
		if e.Receive {
			return fmt.Sprintf("RECV  %02x", e.Data)
		}
		return fmt.Sprintf("SEND  %02x", e.Data)
	case EventNack:
		return fmt.Sprintf("NACK  %#02x", e.Address)
	case EventStop:
		return "STOP"
	}
	return "unknown event"
}

// Activity records a recent history of bus events. The history wraps around
// once it is full, with the oldest events being overwritten.
type Activity struct {
	// a recent history of the bus events. wraps around at the length of the
	// slice
	events []Event

	// ptr is the next index to be written to
	ptr int

	// the activity slice has wrapped around at least once
	full bool
}

// NewActivity is the preferred method of initialisation for the Activity type.
func NewActivity(length int) *Activity {
	return &Activity{
		events: make([]Event, length),
	}
}

func (a *Activity) add(e Event) {
	a.events[a.ptr] = e
	a.ptr++
	if a.ptr >= len(a.events) {
		a.ptr = 0
		a.full = true
	}
}

// Len returns the number of events in the history.
func (a *Activity) Len() int {
	if a.full {
		return len(a.events)
	}
	return a.ptr
}

// Clear the history.
func (a *Activity) Clear() {
	a.ptr = 0
	a.full = false
}

// Copy makes a copy of the activity trace, oldest event first.
func (a *Activity) Copy() []Event {
	if !a.full {
		c := make([]Event, a.ptr)
		copy(c, a.events[:a.ptr])
		return c
	}

	c := make([]Event, len(a.events))
	copy(c, a.events[a.ptr:])
	copy(c[len(a.events)-a.ptr:], a.events[:a.ptr])

	return c
}

func (a *Activity) String() string {
	var s strings.Builder
	for _, e := range a.Copy() {
		s.WriteString(e.String())
		s.WriteString("\n")
	}
	return strings.TrimSuffix(s.String(), "\n")
}
