// Live terminal view of the running rescue scenario
package sim

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
)

type reportMsg struct{ ReportRow }
type notifMsg struct{ NotificationRow }
type stateMsg struct{ StateRow }

const maxEventLines = 200

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63")).Padding(0, 1)
	kpiStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Padding(0, 1)
	alertStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("78"))
	borderStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("238"))
)

// TUIWriter renders simulation output with a bubbletea program.
type TUIWriter struct {
	program *tea.Program
	done    chan struct{}
}

// NewTUIWriter starts the TUI and returns a writer feeding it.
func NewTUIWriter() *TUIWriter {
	w := &TUIWriter{done: make(chan struct{})}
	w.program = tea.NewProgram(newTUIModel(), tea.WithAltScreen())
	go func() {
		_, _ = w.program.Run()
		close(w.done)
	}()
	return w
}

// WriteReport implements ReportWriter.
func (w *TUIWriter) WriteReport(row ReportRow) error {
	w.program.Send(reportMsg{row})
	return nil
}

// WriteNotification implements NotificationWriter.
func (w *TUIWriter) WriteNotification(row NotificationRow) error {
	w.program.Send(notifMsg{row})
	return nil
}

// WriteState implements StateWriter.
func (w *TUIWriter) WriteState(row StateRow) error {
	w.program.Send(stateMsg{row})
	return nil
}

// Close stops the TUI and waits for the terminal to be restored.
func (w *TUIWriter) Close() {
	w.program.Send(tea.Quit())
	<-w.done
}

type tuiModel struct {
	state   StateRow
	reports table.Model
	events  viewport.Model
	lines   []string
	width   int
	ready   bool
}

func newTUIModel() tuiModel {
	cols := []table.Column{
		{Title: "Tick", Width: 6},
		{Title: "Drone", Width: 6},
		{Title: "Victim", Width: 7},
		{Title: "People", Width: 7},
		{Title: "Hops", Width: 5},
		{Title: "Mbps", Width: 8},
	}
	t := table.New(table.WithColumns(cols), table.WithHeight(8))
	return tuiModel{reports: t}
}

func (m tuiModel) Init() tea.Cmd { return nil }

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.events = viewport.New(msg.Width-4, maxInt(msg.Height-16, 4))
		m.ready = true
		m.refreshEvents()
	case stateMsg:
		m.state = msg.StateRow
	case reportMsg:
		rows := append(m.reports.Rows(), table.Row{
			strconv.Itoa(msg.Tick),
			strconv.Itoa(msg.DroneID),
			strconv.Itoa(msg.UserID),
			strconv.Itoa(msg.GroupSize),
			strconv.Itoa(msg.Hops),
			fmt.Sprintf("%.1f", msg.CapacityMbps),
		})
		if len(rows) > 50 {
			rows = rows[len(rows)-50:]
		}
		m.reports.SetRows(rows)
	case notifMsg:
		m.appendEvent(formatNotification(msg.NotificationRow))
	}
	return m, nil
}

func (m *tuiModel) appendEvent(line string) {
	m.lines = append(m.lines, line)
	if len(m.lines) > maxEventLines {
		m.lines = m.lines[len(m.lines)-maxEventLines:]
	}
	m.refreshEvents()
}

func (m *tuiModel) refreshEvents() {
	if !m.ready {
		return
	}
	wrapped := wordwrap.String(strings.Join(m.lines, "\n"), m.events.Width)
	m.events.SetContent(wrapped)
	m.events.GotoBottom()
}

func formatNotification(n NotificationRow) string {
	switch n.Type {
	case "cluster_formed":
		return okStyle.Render(fmt.Sprintf("[CLUSTER t=%d] cluster %d formed, crew %v serving %d people",
			n.Tick, n.ClusterID, n.CrewIDs, n.TotalPeople))
	default:
		if len(n.Path) > 0 {
			return okStyle.Render(fmt.Sprintf("[ALERT t=%d] drone %d detected %d person(s) at (%.1f, %.1f), report via %s (%d hops, %.1f Mbps)",
				n.Tick, n.DroneID, n.GroupSize, n.X, n.Y, strings.Join(n.Path, " -> "), n.Hops, n.CapacityMbps))
		}
		return alertStyle.Render(fmt.Sprintf("[FAILED t=%d] drone %d detected %d person(s) at (%.1f, %.1f) but has no path to station",
			n.Tick, n.DroneID, n.GroupSize, n.X, n.Y))
	}
}

func (m tuiModel) View() string {
	if !m.ready {
		return "starting..."
	}
	header := titleStyle.Render("skymesh-sim :: rescue mesh")
	kpi := kpiStyle.Render(fmt.Sprintf(
		"tick %d | drones alive %d | detected %d/%d (%.0f%%) | served %d (%.0f%%) | %.1f Mbps | reports %d",
		m.state.Tick, m.state.AliveDrones,
		m.state.DetectedPeople, m.state.TotalPeople, m.state.DetectionRate,
		m.state.ServedPeople, m.state.ServiceRate,
		m.state.ThroughputMbps, m.state.Reports))
	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		kpi,
		borderStyle.Render(m.reports.View()),
		borderStyle.Render(m.events.View()),
	)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
