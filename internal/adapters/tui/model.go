package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/keydoro/keydoro/internal/domain"
	"github.com/keydoro/keydoro/internal/ports"
)

const refreshInterval = 100 * time.Millisecond

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F4F4F5"))
	workStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF6B6B"))
	breakStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#4ECDC4"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#95A5A6"))
)

type tickMsg time.Time

// Model is the bubbletea model for the key-pad simulator. It drives one
// instance through the same controller surface a hardware host would
// use and repaints from registry snapshots on a fixed cadence.
type Model struct {
	controller ports.Controller
	instance   string
	bar        progress.Model
	snap       ports.TimerSnapshot
	haveSnap   bool
	width      int
}

// NewModel creates a simulator model bound to one instance id.
func NewModel(controller ports.Controller, instance string) Model {
	bar := progress.New(progress.WithGradient("#FF6B6B", "#FFA94D"))
	bar.ShowPercentage = false
	return Model{
		controller: controller,
		instance:   instance,
		bar:        bar,
		width:      60,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.bar.Width = min(msg.Width-8, 48)
		return m, nil

	case tickMsg:
		m.snap, m.haveSnap = m.controller.Snapshot(m.instance)
		return m, tick()

	case tea.KeyMsg:
		switch msg.String() {
		case " ":
			m.controller.Tap(m.instance)
			m.snap, m.haveSnap = m.controller.Snapshot(m.instance)
		case "h":
			m.controller.Hold(m.instance)
			m.snap, m.haveSnap = m.controller.Snapshot(m.instance)
		case "q", "ctrl+c":
			return m, tea.Quit
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.haveSnap {
		return "\n  starting...\n"
	}

	snap := m.snap
	phaseStyle := workStyle
	if snap.Phase.IsBreak() {
		phaseStyle = breakStyle
	}

	total := snap.Settings.WorkSeconds()
	if snap.Phase.IsBreak() {
		total = snap.Settings.BreakSeconds()
	}
	frac := 0.0
	if total > 0 {
		frac = snap.ExactSecondsLeft / float64(total)
	}

	var b strings.Builder
	b.WriteString("\n  " + titleStyle.Render("Keydoro") + dimStyle.Render("  ·  "+m.instance) + "\n\n")
	b.WriteString("  " + phaseStyle.Render(domain.GetPhaseLabel(snap.Phase)))
	b.WriteString(dimStyle.Render(fmt.Sprintf("   %s remaining", formatClock(snap.RemainingSeconds))))
	b.WriteString("\n\n  " + m.bar.ViewAs(frac) + "\n\n")
	b.WriteString("  " + cycleDots(snap) + "\n\n")
	b.WriteString("  " + helpStyle.Render("space tap · h hold (skip/reset) · q quit") + "\n")
	return b.String()
}

// cycleDots mirrors the key face indicator row: completed cycles solid,
// the current one highlighted, the rest dim.
func cycleDots(snap ports.TimerSnapshot) string {
	dots := make([]string, 0, snap.Settings.CycleCount)
	for i := 0; i < snap.Settings.CycleCount; i++ {
		switch {
		case i < snap.CycleIndex:
			dots = append(dots, breakStyle.Render("●"))
		case i == snap.CycleIndex:
			if snap.Phase.IsBreak() {
				dots = append(dots, breakStyle.Render("◉"))
			} else {
				dots = append(dots, workStyle.Render("◉"))
			}
		default:
			dots = append(dots, dimStyle.Render("○"))
		}
	}
	return strings.Join(dots, " ")
}

func formatClock(secs int) string {
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}
