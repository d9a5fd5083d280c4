// Package tui is the live terminal view of a multi-backend run: the
// coordinator is stepped from inside the bubbletea loop so every engine's
// state can be watched side by side while the simulation advances.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/multisim/internal/multi"
)

var (
	cyan   = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white  = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	green  = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	yellow = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	red    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

type backendRow struct {
	name   string
	time   float64
	spikes int
	rate   float64
	meanV  float64
}

// LiveModel advances one coordinator step per tick and renders
// per-backend statistics.
type LiveModel struct {
	ms        *multi.Sim
	modelName string
	duration  float64
	steps     int

	step  int
	rows  []backendRow
	err   error
	done  bool
	width int
}

func NewLive(ms *multi.Sim, modelName string, duration float64, steps int) *LiveModel {
	rows := make([]backendRow, 0)
	for _, name := range ms.Backends() {
		rows = append(rows, backendRow{name: name})
	}
	return &LiveModel{
		ms:        ms,
		modelName: modelName,
		duration:  duration,
		steps:     steps,
		rows:      rows,
		width:     80,
	}
}

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(50*time.Millisecond, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m *LiveModel) Init() tea.Cmd { return tick() }

func (m *LiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case tickMsg:
		if m.done || m.err != nil {
			return m, nil
		}
		if err := m.ms.Run(m.duration/float64(m.steps), 1); err != nil {
			m.err = err
			return m, nil
		}
		m.step++
		m.refresh()
		if m.step >= m.steps {
			m.done = true
			return m, nil
		}
		return m, tick()
	}
	return m, nil
}

func (m *LiveModel) refresh() {
	times := m.ms.TryInvoke("time")
	counts := m.ms.TryInvoke("spike_count")
	rates := m.ms.TryInvoke("rate")
	volts := m.ms.TryInvoke("mean_voltage")

	for i := range m.rows {
		name := m.rows[i].name
		if v, ok := times[name].Value.(float64); ok {
			m.rows[i].time = v
		}
		if v, ok := counts[name].Value.(int); ok {
			m.rows[i].spikes = v
		}
		if v, ok := rates[name].Value.(float64); ok {
			m.rows[i].rate = v
		}
		if v, ok := volts[name].Value.(float64); ok {
			m.rows[i].meanV = v
		}
	}
}

func (m *LiveModel) View() string {
	var b strings.Builder

	b.WriteString(cyan.Render(fmt.Sprintf("multisim ▸ %s", m.modelName)))
	b.WriteString(dim.Render(fmt.Sprintf("   %d backends, %.0f ms in %d steps\n\n",
		len(m.rows), m.duration, m.steps)))

	b.WriteString(m.progressBar())
	b.WriteString("\n\n")

	b.WriteString(dim.Render(fmt.Sprintf("  %-10s %10s %8s %10s %10s\n",
		"backend", "t (ms)", "spikes", "rate (Hz)", "mean v")))
	for _, row := range m.rows {
		b.WriteString(fmt.Sprintf("  %-10s %10.1f %8d %10.2f %10.2f\n",
			white.Render(row.name), row.time, row.spikes, row.rate, row.meanV))
	}
	b.WriteString("\n")

	switch {
	case m.err != nil:
		b.WriteString(red.Render(fmt.Sprintf("  run failed: %v\n", m.err)))
		b.WriteString(dim.Render("  q to quit\n"))
	case m.done:
		b.WriteString(green.Render("  run complete\n"))
		b.WriteString(dim.Render("  q to quit\n"))
	default:
		b.WriteString(dim.Render("  running... q to abort\n"))
	}
	return b.String()
}

func (m *LiveModel) progressBar() string {
	barWidth := m.width - 12
	if barWidth < 10 {
		barWidth = 10
	}
	filled := 0
	if m.steps > 0 {
		filled = barWidth * m.step / m.steps
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
	return fmt.Sprintf("  %s %s", yellow.Render(bar),
		dim.Render(fmt.Sprintf("%d/%d", m.step, m.steps)))
}

// RunLive blocks until the run completes or the user quits, and tears the
// coordinator down afterwards.
func RunLive(ms *multi.Sim, modelName string, duration float64, steps int) error {
	p := tea.NewProgram(NewLive(ms, modelName, duration, steps))
	if _, err := p.Run(); err != nil {
		return err
	}
	return ms.End()
}
