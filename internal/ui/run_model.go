package ui

import (
	"context"
	"os"

	tea "charm.land/bubbletea/v2"
	"golang.org/x/term"
)

// RunConfig configures an interactive session.
type RunConfig struct {
	// Width and Height force a window size. Zero values leave sizing to the
	// terminal; if only one is set the other is detected.
	Width     int
	Height    int
	StartKeys []string
}

// Run starts the Bubble Tea program and blocks until the user quits or ctx
// is cancelled. Extra ProgramOptions (e.g., custom IO) are passed through.
func Run(ctx context.Context, m *Model, cfg RunConfig, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithContext(ctx)}, opts...)

	if cfg.Width > 0 || cfg.Height > 0 {
		runW, runH := cfg.Width, cfg.Height
		if runW <= 0 || runH <= 0 {
			if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
				if runW <= 0 {
					runW = w
				}
				if runH <= 0 {
					runH = h
				}
			}
		}
		if runW <= 0 {
			runW = 80
		}
		if runH <= 0 {
			runH = 24
		}
		m.width, m.height = runW, runH
		opts = append(opts, tea.WithWindowSize(runW, runH))
	}

	ApplyKeys(m, cfg.StartKeys)
	if m.quitting {
		return nil
	}

	_, err := tea.NewProgram(m, opts...).Run()
	return err
}
