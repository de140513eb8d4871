// Package tui implements the terminal view of the bookkeeper with bubbletea.
package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/alwaysmad/bookkeeper/internal/cli"
)

// View is a controller.View backed by a full-screen bubbletea program.
// Pushed state is kept in the embedded session and drawn on the next frame.
type View struct {
	*cli.Session
	cfg Config
}

// New creates a terminal view.
func New(opts ...Option) *View {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &View{Session: cli.NewSession(cfg.Now), cfg: cfg}
}

// InitLayout is a no-op: the layout is built when the program starts.
func (v *View) InitLayout() {}

// Model returns a bubbletea model over the current state.
func (v *View) Model(ctx context.Context) Model {
	return newModel(ctx, v.Session, v.cfg)
}

// Present runs the program until the user quits or ctx is canceled.
func (v *View) Present(ctx context.Context) error {
	opts := []tea.ProgramOption{
		tea.WithContext(ctx),
		tea.WithInput(v.cfg.Input),
		tea.WithOutput(v.cfg.Output),
	}
	if v.cfg.AltScreen {
		opts = append(opts, tea.WithAltScreen())
	}

	p := tea.NewProgram(v.Model(ctx), opts...)
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("terminal view failed: %w", err)
	}
	return nil
}
