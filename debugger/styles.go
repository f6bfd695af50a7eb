package debugger

import "github.com/charmbracelet/lipgloss"

type styles struct {
	register lipgloss.Style
	status   lipgloss.Style
	bus      lipgloss.Style
	irq      lipgloss.Style
	err      lipgloss.Style
	watch    lipgloss.Style
	debugger lipgloss.Style
	script   lipgloss.Style
}

// ANSI Color reference
// 0	Black
// 1	Red
// 2	Green
// 3	Yellow
// 4	Blue
// 5	Magenta
// 6	Cyan
// 7	White
// 8	Bright Black (Gray)
// 9	Bright Red
// 10	Bright Green
// 11	Bright Yellow
// 12	Bright Blue
// 13	Bright Magenta
// 14	Bright Cyan
// 15	Bright White

func newStyles() styles {
	return styles{
		register: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.ANSIColor(3)),
		status:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.ANSIColor(4)),
		bus:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.ANSIColor(5)),
		irq:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.ANSIColor(6)),
		err:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.ANSIColor(7)).Background(lipgloss.ANSIColor(1)),
		watch:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.ANSIColor(7)).Background(lipgloss.ANSIColor(4)),
		debugger: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.ANSIColor(7)).Background(lipgloss.ANSIColor(2)),
		script:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.ANSIColor(0)).Background(lipgloss.ANSIColor(3)),
	}
}
