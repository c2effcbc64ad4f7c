// Package malla wires the application's services together.
package malla

import (
	"github.com/malla-dev/malla/internal/core/config"
	"github.com/malla-dev/malla/internal/core/curriculum"
	"github.com/malla-dev/malla/internal/data/db"
)

// App bundles the constructed services for the command layer.
// It is allocated once in main and populated in the CLI's Before hook.
type App struct {
	Engine  *curriculum.Engine
	Catalog *curriculum.Catalog
	Config  *config.Config
	DB      *db.DB
}

// NewApp constructs an App from explicit dependencies.
func NewApp(engine *curriculum.Engine, catalog *curriculum.Catalog, cfg *config.Config, database *db.DB) *App {
	return &App{
		Engine:  engine,
		Catalog: catalog,
		Config:  cfg,
		DB:      database,
	}
}
