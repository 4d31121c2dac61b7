package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Veraticus/roomcraft/internal/model"
)

// Run starts the browser and blocks until the user quits. It returns the
// product chosen with Enter, if any.
func Run(ctx context.Context, opts ...Option) (model.Product, bool, error) {
	m, err := NewModel(opts...)
	if err != nil {
		return model.Product{}, false, err
	}

	programOpts := []tea.ProgramOption{tea.WithContext(ctx)}
	if m.altScreen {
		programOpts = append(programOpts, tea.WithAltScreen())
	}

	final, err := tea.NewProgram(m, programOpts...).Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return model.Product{}, false, ctx.Err()
		}
		return model.Product{}, false, fmt.Errorf("TUI error: %w", err)
	}

	result, ok := final.(Model)
	if !ok {
		return model.Product{}, false, fmt.Errorf("unexpected TUI model %T", final)
	}
	chosen, picked := result.Chosen()
	return chosen, picked, nil
}
