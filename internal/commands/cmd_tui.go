package commands

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"

	"github.com/malla-dev/malla/internal/malla"
	"github.com/malla-dev/malla/internal/tui"
)

// TuiCmd implements the interactive curriculum grid.
type TuiCmd struct {
	flags *Flags
	app   *malla.App
}

// NewTuiCmd creates a new tui command.
func NewTuiCmd(flags *Flags, app *malla.App) *TuiCmd {
	return &TuiCmd{flags: flags, app: app}
}

// Register adds the tui command to the application.
func (cmd *TuiCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "tui",
		Usage:     "Open the interactive curriculum grid",
		UsageText: "malla tui",
		Description: `Opens the curriculum in an interactive grid. Move with the arrow
keys, toggle completion with enter, quit with q.`,
		Action: cmd.Run,
	})

	return app
}

// Run executes the TUI. Exported for use as the default command.
func (cmd *TuiCmd) Run(_ context.Context, _ *cli.Command) error {
	m := tui.New(cmd.app.Engine)

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}

	return nil
}
