package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/malla-dev/malla/internal/malla"
)

// ReportCmd implements the malla report command.
type ReportCmd struct {
	flags *Flags
	app   *malla.App

	// flags
	raw bool
}

// NewReportCmd creates a new report command.
func NewReportCmd(flags *Flags, app *malla.App) *ReportCmd {
	return &ReportCmd{flags: flags, app: app}
}

// Register adds the report command to the application.
func (cmd *ReportCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "report",
		Usage:     "Render a progress report",
		UsageText: "malla report [--raw]",
		Description: `Builds a per-semester markdown progress report and renders it
in the terminal. Use --raw to print the markdown itself, e.g. to pipe
into another tool.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "raw",
				Usage:       "print raw markdown without terminal rendering",
				Destination: &cmd.raw,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *ReportCmd) run(ctx context.Context, c *cli.Command) error {
	report := malla.BuildReport(cmd.app.Engine.Snapshot(ctx))
	out := c.Root().Writer

	if cmd.raw || !term.IsTerminal(int(os.Stdout.Fd())) {
		_, err := fmt.Fprint(out, report)
		return err
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return fmt.Errorf("create renderer: %w", err)
	}

	rendered, err := renderer.Render(report)
	if err != nil {
		return fmt.Errorf("render report: %w", err)
	}

	_, err = fmt.Fprint(out, rendered)
	return err
}
