package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/malla-dev/malla/internal/core/config"
	"github.com/malla-dev/malla/internal/core/curriculum"
	"github.com/malla-dev/malla/internal/malla"
)

// ConfigCmd implements the malla config command group.
type ConfigCmd struct {
	flags *Flags
	app   *malla.App
}

// NewConfigCmd creates a new config command.
func NewConfigCmd(flags *Flags, app *malla.App) *ConfigCmd {
	return &ConfigCmd{flags: flags, app: app}
}

// Register adds the config command to the application.
func (cmd *ConfigCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "config",
		Usage: "Inspect and validate configuration",
		Commands: []*cli.Command{
			{
				Name:      "validate",
				Usage:     "Validate the config file and catalog",
				UsageText: "malla config validate",
				Description: `Re-loads the config file and catalog and reports every problem found:
structural errors, inaccessible files, and catalog diagnostics such as
requirements on unknown courses or requirement cycles.

Diagnostics are warnings: the engine tolerates them by keeping the
affected courses locked.`,
				Action: cmd.runValidate,
			},
		},
	})

	return app
}

func (cmd *ConfigCmd) runValidate(_ context.Context, c *cli.Command) error {
	out := c.Root().Writer

	cfg, err := config.Load(cmd.flags.ConfigPath, cmd.flags.DataDir)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	if err := cfg.ValidateDeep(cmd.flags.ConfigPath); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	catalog, err := loadCatalogIfPresent(cfg)
	if err != nil {
		return err
	}

	warnings := catalog.Warnings()
	for _, w := range warnings {
		fmt.Fprintf(os.Stderr, "warning: %s: %s: %s\n", w.Category, w.Item, w.Message)
	}

	fmt.Fprintf(out, "Config OK (%d courses, %d warnings)\n", catalog.Len(), len(warnings))
	return nil
}

// loadCatalogIfPresent loads the configured catalog, treating a
// missing file as an empty catalog so validate works before first use.
func loadCatalogIfPresent(cfg *config.Config) (*curriculum.Catalog, error) {
	if _, err := os.Stat(cfg.Catalog); os.IsNotExist(err) {
		return curriculum.NewCatalog(nil), nil
	}

	catalog, err := curriculum.LoadCatalog(cfg.Catalog)
	if err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	return catalog, nil
}
