package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/malla-dev/malla/internal/core/curriculum"
	"github.com/malla-dev/malla/internal/core/kv"
	"github.com/malla-dev/malla/internal/data/stores"
	"github.com/malla-dev/malla/internal/malla"
)

func newTestApp(t *testing.T, completed ...string) *malla.App {
	t.Helper()

	catalog := curriculum.NewCatalog([]curriculum.Course{
		{ID: "mat-101", Name: "Cálculo I", Semester: 1},
		{ID: "fis-100", Name: "Física I", Semester: 1},
		{ID: "mat-201", Name: "Cálculo II", Semester: 2, Requires: []string{"mat-101"}},
	})
	require.NoError(t, catalog.Validate())

	mem := kv.NewMemory()
	progress := stores.NewProgressStore(mem, zerolog.Nop())
	progress.Save(context.Background(), curriculum.NewCompletedSet(completed...))

	engine := curriculum.NewEngine(catalog, progress, catalog.Label, zerolog.Nop())
	return &malla.App{Engine: engine, Catalog: catalog}
}

func runCommand(t *testing.T, app *malla.App, args ...string) (string, error) {
	t.Helper()

	var buf bytes.Buffer
	root := &cli.Command{
		Name:   "malla",
		Writer: &buf,
	}

	flags := &Flags{}
	NewStatusCmd(flags, app).Register(root)
	NewToggleCmd(flags, app).Register(root)
	NewReportCmd(flags, app).Register(root)

	err := root.Run(context.Background(), append([]string{"malla"}, args...))
	return buf.String(), err
}

func TestStatusCmd_Table(t *testing.T) {
	app := newTestApp(t, "mat-101")

	out, err := runCommand(t, app, "status")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4, "header plus three courses")
	assert.Contains(t, lines[0], "ID")
	assert.Contains(t, out, "mat-101")
	assert.Contains(t, out, "completed")
	assert.Contains(t, out, "available")
}

func TestStatusCmd_JSON(t *testing.T) {
	app := newTestApp(t)

	out, err := runCommand(t, app, "status", "--json")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)

	var cs curriculum.CourseStatus
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &cs))
	assert.Equal(t, "mat-101", cs.Course.ID)
	assert.Equal(t, curriculum.StatusAvailable, cs.Status)
}

func TestStatusCmd_Filter(t *testing.T) {
	app := newTestApp(t)

	out, err := runCommand(t, app, "status", "--json", "--filter", "mat-*")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, 2)
	assert.NotContains(t, out, "fis-100")
}

func TestStatusCmd_InvalidFilter(t *testing.T) {
	app := newTestApp(t)

	_, err := runCommand(t, app, "status", "--filter", "[")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid filter pattern")
}

func TestToggleCmd_Promote(t *testing.T) {
	app := newTestApp(t)

	out, err := runCommand(t, app, "toggle", "mat-101")
	require.NoError(t, err)
	assert.Contains(t, out, "Completed Cálculo I")

	cs, ok := app.Engine.Snapshot(context.Background()).Get("mat-101")
	require.True(t, ok)
	assert.Equal(t, curriculum.StatusCompleted, cs.Status)
}

func TestToggleCmd_Demote(t *testing.T) {
	app := newTestApp(t, "mat-101")

	out, err := runCommand(t, app, "toggle", "mat-101")
	require.NoError(t, err)
	assert.Contains(t, out, "Marked Cálculo I as not completed")
}

func TestToggleCmd_RejectedLocked(t *testing.T) {
	app := newTestApp(t)

	_, err := runCommand(t, app, "toggle", "mat-201")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing requirements")
	assert.Contains(t, err.Error(), "Cálculo I")

	// Rejection left the completed set untouched.
	cs, ok := app.Engine.Snapshot(context.Background()).Get("mat-201")
	require.True(t, ok)
	assert.Equal(t, curriculum.StatusLocked, cs.Status)
}

func TestToggleCmd_UnknownCourse(t *testing.T) {
	app := newTestApp(t)

	_, err := runCommand(t, app, "toggle", "nope-999")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown course")
}

func TestReportCmd_Raw(t *testing.T) {
	app := newTestApp(t, "mat-101")

	out, err := runCommand(t, app, "report", "--raw")
	require.NoError(t, err)
	assert.Contains(t, out, "# Curriculum Progress")
	assert.Contains(t, out, "- [x] Cálculo I (`mat-101`)")
}
