// Package tui implements an interactive key-pad simulator so the timer
// can be exercised without hardware: a bubbletea program maps key
// presses to the same events a host would deliver.
package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/keydoro/keydoro/internal/ports"
)

// Simulator runs the terminal front end against a controller.
type Simulator struct {
	controller ports.Controller
	instance   string
}

// NewSimulator creates a simulator bound to one instance id.
func NewSimulator(controller ports.Controller, instance string) *Simulator {
	return &Simulator{controller: controller, instance: instance}
}

// Run starts the program and blocks until the user quits or the
// context is cancelled.
func (s *Simulator) Run(ctx context.Context) error {
	program := tea.NewProgram(
		NewModel(s.controller, s.instance),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run simulator: %w", err)
	}
	return nil
}
