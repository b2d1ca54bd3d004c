// Package tui renders a simulated badge cluster in the terminal: one row of
// cells per badge side, lit positions highlighted, plus the last scheduler
// event per badge. Useful for watching the cluster drift apart and snap back
// together on a sync pulse.
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lumenlabel/badgesync/internal/cluster"
	"github.com/lumenlabel/badgesync/internal/led"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	litStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	syncStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

type badgeView struct {
	frame  led.Pair
	status string
	synced bool
}

type Model struct {
	events   <-chan cluster.Event
	badges   []badgeView
	quitting bool
}

type eventMsg cluster.Event

type closedMsg struct{}

func New(events <-chan cluster.Event, badges int) Model {
	views := make([]badgeView, badges)
	for i := range views {
		views[i].frame = led.Pair{Left: led.Off, Right: led.Off}
		views[i].status = "idle"
	}
	return Model{events: events, badges: views}
}

func listen(ch <-chan cluster.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return closedMsg{}
		}
		return eventMsg(ev)
	}
}

func (m Model) Init() tea.Cmd {
	return listen(m.events)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		}

	case eventMsg:
		if msg.Badge >= 0 && msg.Badge < len(m.badges) {
			b := &m.badges[msg.Badge]
			switch msg.Kind {
			case cluster.EventFrame:
				b.frame = msg.Frame
			case cluster.EventPattern:
				b.status = fmt.Sprintf("state %d %s", msg.State, msg.Name)
				b.synced = false
			case cluster.EventSync:
				b.status = fmt.Sprintf("sync @ %dms", msg.At)
				b.synced = true
			case cluster.EventPulse:
				b.status = fmt.Sprintf("pulse @ %dms", msg.At)
				b.synced = false
			}
		}
		return m, listen(m.events)

	case closedMsg:
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("badgesync cluster"))
	sb.WriteString("  ")
	sb.WriteString(labelStyle.Render("q to quit"))
	sb.WriteString("\n\n")
	for i, b := range m.badges {
		status := labelStyle.Render(b.status)
		if b.synced {
			status = syncStyle.Render(b.status)
		}
		sb.WriteString(fmt.Sprintf("badge %d  L %s\n", i, sideRow(b.frame.Left)))
		sb.WriteString(fmt.Sprintf("         R %s  %s\n", sideRow(b.frame.Right), status))
	}
	return sb.String()
}

func sideRow(p led.Position) string {
	cells := make([]string, 20)
	for i := range cells {
		if p.IsLit() && int(p) == i {
			cells[i] = litStyle.Render("●")
		} else {
			cells[i] = dimStyle.Render("·")
		}
	}
	return strings.Join(cells, "")
}
