package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/malla-dev/malla/internal/core/curriculum"
	"github.com/malla-dev/malla/internal/core/kv"
	"github.com/malla-dev/malla/internal/data/stores"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	catalog := curriculum.NewCatalog([]curriculum.Course{
		{ID: "a", Name: "Course A", Semester: 1},
		{ID: "b", Name: "Course B", Semester: 1, Requires: []string{"a"}},
		{ID: "c", Name: "Course C", Semester: 2, Requires: []string{"a", "b"}},
	})
	require.NoError(t, catalog.Validate())

	store := stores.NewProgressStore(kv.NewMemory(), zerolog.Nop())
	engine := curriculum.NewEngine(catalog, store, catalog.Label, zerolog.Nop())
	return New(engine)
}

func keyPress(m Model, key string) (Model, tea.Cmd) {
	var msg tea.Msg
	switch key {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

// runToggle executes the toggle command and feeds the result back.
func runToggle(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	require.NotNil(t, cmd)
	msg := cmd()
	result, ok := msg.(toggleResultMsg)
	require.True(t, ok)
	next, _ := m.Update(result)
	return next.(Model)
}

func TestModel_CursorMovement(t *testing.T) {
	m := newTestModel(t)
	assert.Equal(t, 0, m.cursor)

	m, _ = keyPress(m, "j")
	assert.Equal(t, 1, m.cursor)

	m, _ = keyPress(m, "k")
	assert.Equal(t, 0, m.cursor)

	// Cursor clamps at the edges.
	m, _ = keyPress(m, "k")
	assert.Equal(t, 0, m.cursor)

	m, _ = keyPress(m, "j")
	m, _ = keyPress(m, "j")
	m, _ = keyPress(m, "j")
	assert.Equal(t, 2, m.cursor)
}

func TestModel_ToggleAvailableCourse(t *testing.T) {
	m := newTestModel(t)

	m, cmd := keyPress(m, "enter")
	m = runToggle(t, m, cmd)

	cs, ok := m.snapshot.Get("a")
	require.True(t, ok)
	assert.Equal(t, curriculum.StatusCompleted, cs.Status)

	// Completing A unlocks B in the restyled snapshot.
	cs, ok = m.snapshot.Get("b")
	require.True(t, ok)
	assert.Equal(t, curriculum.StatusAvailable, cs.Status)
	assert.Empty(t, m.notice)
}

func TestModel_ToggleLockedCourseShowsNotice(t *testing.T) {
	m := newTestModel(t)

	// Move to C, which requires both A and B.
	m, _ = keyPress(m, "j")
	m, _ = keyPress(m, "j")

	m, cmd := keyPress(m, "enter")
	m = runToggle(t, m, cmd)

	assert.Contains(t, m.notice, "Course A")
	assert.Contains(t, m.notice, "Course B")

	// Nothing was persisted.
	cs, ok := m.snapshot.Get("c")
	require.True(t, ok)
	assert.Equal(t, curriculum.StatusLocked, cs.Status)
}

func TestModel_NoticeClearsOnMovement(t *testing.T) {
	m := newTestModel(t)
	m.notice = "stale notice"

	m, _ = keyPress(m, "j")
	assert.Empty(t, m.notice)
}

func TestModel_View(t *testing.T) {
	m := newTestModel(t)
	m, cmd := keyPress(m, "enter")
	m = runToggle(t, m, cmd)

	view := m.View()
	assert.Contains(t, view, "Course A")
	assert.Contains(t, view, "Semester 1")
	assert.Contains(t, view, "Semester 2")
	assert.Contains(t, view, "1 completed")
}

func TestModel_QuitKey(t *testing.T) {
	m := newTestModel(t)
	_, cmd := keyPress(m, "q")
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestModel_EmptyCatalog(t *testing.T) {
	catalog := curriculum.NewCatalog(nil)
	store := stores.NewProgressStore(kv.NewMemory(), zerolog.Nop())
	engine := curriculum.NewEngine(catalog, store, catalog.Label, zerolog.Nop())
	m := New(engine)

	// Toggling with nothing selected is a no-op.
	next, cmd := keyPress(m, "enter")
	assert.Nil(t, cmd)
	assert.Contains(t, next.View(), "No courses")
}
