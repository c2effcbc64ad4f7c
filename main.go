package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/malla-dev/malla/internal/commands"
	"github.com/malla-dev/malla/internal/core/config"
	"github.com/malla-dev/malla/internal/core/curriculum"
	"github.com/malla-dev/malla/internal/core/logging"
	"github.com/malla-dev/malla/internal/data/db"
	"github.com/malla-dev/malla/internal/data/stores"
	"github.com/malla-dev/malla/internal/malla"
	"github.com/malla-dev/malla/pkg/logutils"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	// When installed via `go install module@version`, init() populates
	// these from runtime/debug.BuildInfo instead.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

func build() string {
	v, c, d := version, commit, date

	// When installed via `go install module@version`, ldflags aren't set
	// so version remains "dev". Fall back to runtime/debug.BuildInfo which
	// Go populates automatically with the module version and VCS metadata.
	if v == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok {
			if mv := info.Main.Version; mv != "" && mv != "(devel)" {
				v = mv
			}
			for _, s := range info.Settings {
				switch s.Key {
				case "vcs.revision":
					c = s.Value
				case "vcs.time":
					d = s.Value
				}
			}
		}
	}

	short := c
	if len(c) > 7 {
		short = c[:7]
	}

	return fmt.Sprintf("%s (%s) %s", v, short, d)
}

func main() {
	ctx := context.Background()

	var (
		logCloser func()
		mallaApp  = &malla.App{}
		database  *db.DB
	)

	flags := &commands.Flags{}

	app := &cli.Command{
		Name:      "malla",
		Usage:     "Track completion of an interdependent course curriculum",
		UsageText: "malla [global options] command [command options]",
		Description: `Malla tracks which courses of a curriculum you have completed and
derives, from the prerequisite graph, which courses are available next.

Courses are defined in a YAML catalog; completion state persists
across runs. Run 'malla' with no arguments to open the interactive
grid, or use 'malla status' and 'malla toggle' for scripting.`,
		Version: build(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("MALLA_LOG_LEVEL"),
				Value:       "info",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file (defaults to <data-dir>/malla.log)",
				Sources:     cli.EnvVars("MALLA_LOG_FILE"),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("MALLA_CONFIG"),
				Value:       commands.DefaultConfigPath(),
				Destination: &flags.ConfigPath,
			},
			&cli.StringFlag{
				Name:        "data-dir",
				Usage:       "path to data directory",
				Sources:     cli.EnvVars("MALLA_DATA_DIR"),
				Value:       commands.DefaultDataDir(),
				Destination: &flags.DataDir,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			// Always log to a file; use explicit path or default to
			// <data-dir>/malla.log so command output stays clean.
			logFile := flags.LogFile
			if logFile == "" {
				logFile = filepath.Join(flags.DataDir, "malla.log")
			}

			logger, closer, err := logutils.New(flags.LogLevel, logFile)
			if err != nil {
				return ctx, fmt.Errorf("setup logger: %w", err)
			}
			log.Logger = logger
			logCloser = closer

			cfg, err := config.Load(flags.ConfigPath, flags.DataDir)
			if err != nil {
				return ctx, fmt.Errorf("load config: %w", err)
			}

			if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
				return ctx, fmt.Errorf("create data dir: %w", err)
			}

			catalog, err := loadCatalog(cfg)
			if err != nil {
				return ctx, err
			}

			// Catalog diagnostics never block startup; the engine keeps
			// affected courses locked.
			catalogLog := logging.Component("catalog")
			for _, w := range catalog.Warnings() {
				catalogLog.Warn().
					Str("category", w.Category).
					Str("course", w.Item).
					Msg(w.Message)
			}

			database, err = db.Open(cfg.DataDir, db.OpenOptions{
				MaxOpenConns: cfg.Database.MaxOpenConns,
				MaxIdleConns: cfg.Database.MaxIdleConns,
				BusyTimeout:  cfg.Database.BusyTimeout,
			})
			if err != nil {
				return ctx, fmt.Errorf("open database: %w", err)
			}

			progress := stores.NewProgressStore(stores.NewKVStore(database), logging.Component("progress"))
			engine := curriculum.NewEngine(catalog, progress, catalog.Label, logging.Component("engine"))

			// Populate the pre-allocated App struct (commands already hold a pointer to it)
			*mallaApp = *malla.NewApp(engine, catalog, cfg, database)

			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			if database != nil {
				if err := database.Close(); err != nil {
					log.Error().Err(err).Msg("failed to close database")
					return err
				}
			}

			if logCloser != nil {
				logCloser()
			}
			return nil
		},
	}

	tuiCmd := commands.NewTuiCmd(flags, mallaApp)

	app = commands.NewStatusCmd(flags, mallaApp).Register(app)
	app = commands.NewToggleCmd(flags, mallaApp).Register(app)
	app = commands.NewReportCmd(flags, mallaApp).Register(app)
	app = commands.NewConfigCmd(flags, mallaApp).Register(app)
	app = tuiCmd.Register(app)

	// Set TUI as default action when no subcommand is provided
	app.Action = func(ctx context.Context, c *cli.Command) error {
		if c.Args().Len() > 0 {
			return fmt.Errorf("unknown command %q. Run 'malla --help' for usage", c.Args().First())
		}
		return tuiCmd.Run(ctx, c)
	}

	exitCode := 0
	runErr := app.Run(ctx, os.Args)
	if runErr != nil {
		fmt.Println()
		fmt.Println(runErr.Error())
		exitCode = 1
	}

	os.Exit(exitCode)
}

// loadCatalog reads the configured catalog, treating a missing file as
// an empty catalog so first-run commands still work.
func loadCatalog(cfg *config.Config) (*curriculum.Catalog, error) {
	if _, err := os.Stat(cfg.Catalog); os.IsNotExist(err) {
		log.Warn().Str("path", cfg.Catalog).Msg("catalog file not found, starting empty")
		return curriculum.NewCatalog(nil), nil
	}

	catalog, err := curriculum.LoadCatalog(cfg.Catalog)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	return catalog, nil
}
