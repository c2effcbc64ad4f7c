package commands

import (
	"context"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"

	"github.com/malla-dev/malla/internal/core/curriculum"
	"github.com/malla-dev/malla/internal/malla"
)

// ToggleCmd implements the malla toggle command.
type ToggleCmd struct {
	flags *Flags
	app   *malla.App
}

// NewToggleCmd creates a new toggle command.
func NewToggleCmd(flags *Flags, app *malla.App) *ToggleCmd {
	return &ToggleCmd{flags: flags, app: app}
}

// Register adds the toggle command to the application.
func (cmd *ToggleCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "toggle",
		Usage:     "Mark a course complete, or completed courses incomplete",
		UsageText: "malla toggle [id]",
		Description: `Toggles a course's completion state.

Locked courses are rejected with the list of missing requirements.
Marking a completed course incomplete never removes downstream
completions; dependents simply show as locked again.

With no argument, an interactive picker lists the toggleable courses.

Examples:
  malla toggle mat-101
  malla toggle`,
		Action: cmd.run,
	})

	return app
}

func (cmd *ToggleCmd) run(ctx context.Context, c *cli.Command) error {
	id := c.Args().First()

	if id == "" {
		picked, err := cmd.pick(ctx)
		if err != nil {
			return err
		}
		id = picked
	}

	if !cmd.app.Catalog.Has(id) {
		return fmt.Errorf("unknown course %q", id)
	}

	result := cmd.app.Engine.RequestToggle(ctx, id)

	if result.Rejected {
		msg := fmt.Sprintf("cannot complete %s, missing requirements:", result.Course.Label())
		for _, req := range result.Missing {
			msg += fmt.Sprintf("\n  - %s", req.Label)
		}
		return fmt.Errorf("%s", msg)
	}

	out := c.Root().Writer
	switch result.Status {
	case curriculum.StatusCompleted:
		fmt.Fprintf(out, "Completed %s\n", result.Course.Label())
	default:
		fmt.Fprintf(out, "Marked %s as not completed\n", result.Course.Label())
	}

	return nil
}

// pick prompts for a course, offering only those the engine would not
// reject.
func (cmd *ToggleCmd) pick(ctx context.Context) (string, error) {
	snapshot := cmd.app.Engine.Snapshot(ctx)

	var options []huh.Option[string]
	for _, cs := range snapshot {
		if cs.Status == curriculum.StatusLocked {
			continue
		}

		label := cs.Course.Label()
		if cs.Status == curriculum.StatusCompleted {
			label += " (completed)"
		}
		options = append(options, huh.NewOption(label, cs.Course.ID))
	}

	if len(options) == 0 {
		return "", fmt.Errorf("no toggleable courses")
	}

	var id string
	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title("Toggle course").
			Options(options...).
			Value(&id),
	))

	if err := form.Run(); err != nil {
		return "", fmt.Errorf("course picker: %w", err)
	}

	return id, nil
}
