// Package tui is a terminal monitor for a running layout: it drives
// the worker at a fixed cadence and plots movement until convergence.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/leanviz/layout3d/internal/engine"
)

const historyLen = 120

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	stableStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("82"))
	hintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
)

type tickMsg time.Time

type eventMsg struct{ event engine.Event }

type workerDoneMsg struct{}

// Model steps the worker once per frame and renders the convergence
// telemetry it sends back. The worker owns the simulation; the model
// only ever sees snapshots.
type Model struct {
	worker    *engine.Worker
	dt        float64
	frameRate int

	nodes        int
	steps        int
	movement     float64
	stableFrames int
	converged    bool
	history      []float64
	width        int
}

func New(worker *engine.Worker, dt float64, frameRate int) Model {
	if frameRate <= 0 {
		frameRate = 30
	}
	return Model{
		worker:    worker,
		dt:        dt,
		frameRate: frameRate,
		width:     80,
		history:   make([]float64, 0, historyLen),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.tick(), m.waitEvent())
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.frameRate), func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) waitEvent() tea.Cmd {
	return func() tea.Msg {
		e, ok := <-m.worker.Events()
		if !ok {
			return workerDoneMsg{}
		}
		return eventMsg{event: e}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.worker.Send(engine.Kill{})
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width

	case tickMsg:
		if !m.converged {
			m.worker.Send(engine.Step{Dt: m.dt})
		}
		return m, m.tick()

	case eventMsg:
		switch e := msg.event.(type) {
		case engine.Positions:
			m.steps++
			m.nodes = len(e.Positions)
			m.movement = e.Movement
			m.stableFrames = e.StableFrames
			m.history = append(m.history, e.Movement)
			if len(m.history) > historyLen {
				m.history = m.history[1:]
			}
		case engine.Stable:
			m.converged = true
		}
		return m, m.waitEvent()

	case workerDoneMsg:
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) View() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("layout3d") + "\n\n")

	status := "settling"
	if m.converged {
		status = stableStyle.Render("converged")
	}
	sb.WriteString(fmt.Sprintf("%s %s   %s %s   %s %s   %s %s\n\n",
		labelStyle.Render("nodes"), valueStyle.Render(fmt.Sprintf("%d", m.nodes)),
		labelStyle.Render("steps"), valueStyle.Render(fmt.Sprintf("%d", m.steps)),
		labelStyle.Render("movement"), valueStyle.Render(fmt.Sprintf("%.4f", m.movement)),
		labelStyle.Render("status"), status,
	))

	if len(m.history) > 1 {
		width := m.width - 10
		if width > historyLen {
			width = historyLen
		}
		if width > 10 {
			sb.WriteString(asciigraph.Plot(m.history,
				asciigraph.Height(10),
				asciigraph.Width(width),
				asciigraph.Caption("total movement per step"),
			))
			sb.WriteString("\n")
		}
	}

	sb.WriteString(fmt.Sprintf("\n%s %s\n",
		labelStyle.Render("stable frames"),
		valueStyle.Render(fmt.Sprintf("%d", m.stableFrames)),
	))
	sb.WriteString(hintStyle.Render("q to quit"))
	return sb.String()
}

// Run blocks until the monitor exits, killing the worker on the way
// out.
func Run(worker *engine.Worker, dt float64, frameRate int) error {
	p := tea.NewProgram(New(worker, dt, frameRate))
	_, err := p.Run()
	worker.Send(engine.Kill{})
	return err
}
