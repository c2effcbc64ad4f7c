package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/malla-dev/malla/internal/core/curriculum"
	"github.com/malla-dev/malla/internal/core/styles"
	"github.com/malla-dev/malla/internal/malla"
	"github.com/malla-dev/malla/pkg/iojson"
)

// StatusCmd implements the malla status command.
type StatusCmd struct {
	flags *Flags
	app   *malla.App

	// flags
	jsonOutput bool
	filter     string
}

// NewStatusCmd creates a new status command.
func NewStatusCmd(flags *Flags, app *malla.App) *StatusCmd {
	return &StatusCmd{flags: flags, app: app}
}

// Register adds the status command to the application.
func (cmd *StatusCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "status",
		Aliases:   []string{"ls"},
		Usage:     "Show the status of every course",
		UsageText: "malla status [--json] [--filter <glob>]",
		Description: `Displays a table of all courses with their derived status:
completed, available, or locked.

Statuses are recomputed from the catalog and the persisted completed
set on every run; nothing is cached.

Examples:
  malla status
  malla status --filter 'mat-*'
  malla status --json`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON lines",
				Destination: &cmd.jsonOutput,
			},
			&cli.StringFlag{
				Name:        "filter",
				Aliases:     []string{"f"},
				Usage:       "only show courses whose ID matches the glob pattern",
				Destination: &cmd.filter,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *StatusCmd) run(ctx context.Context, c *cli.Command) error {
	snapshot := cmd.app.Engine.Snapshot(ctx)

	if cmd.filter != "" {
		if !doublestar.ValidatePattern(cmd.filter) {
			return fmt.Errorf("invalid filter pattern %q", cmd.filter)
		}
		filtered := make(curriculum.Snapshot, 0, len(snapshot))
		for _, cs := range snapshot {
			if ok, _ := doublestar.Match(cmd.filter, cs.Course.ID); ok {
				filtered = append(filtered, cs)
			}
		}
		snapshot = filtered
	}

	if len(snapshot) == 0 {
		fmt.Fprintln(os.Stderr, "No courses found")
		return nil
	}

	out := c.Root().Writer

	if cmd.jsonOutput {
		for _, cs := range snapshot {
			if err := iojson.WriteLine(out, cs); err != nil {
				return fmt.Errorf("encode course status: %w", err)
			}
		}
		return nil
	}

	colorize := term.IsTerminal(int(os.Stdout.Fd()))

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tNAME\tSEM\tSTATUS")

	for _, cs := range snapshot {
		status := string(cs.Status)
		if colorize {
			status = styles.ForStatus(cs.Status).Render(status)
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", cs.Course.ID, cs.Course.Label(), cs.Course.Semester, status)
	}

	return w.Flush()
}
