package malla

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/malla-dev/malla/internal/core/curriculum"
)

func reportSnapshot() curriculum.Snapshot {
	catalog := curriculum.NewCatalog([]curriculum.Course{
		{ID: "mat-101", Name: "Cálculo I", Semester: 1, Credits: 6},
		{ID: "fis-100", Name: "Física I", Semester: 1, Credits: 4},
		{ID: "mat-201", Name: "Cálculo II", Semester: 2, Credits: 6, Requires: []string{"mat-101"}},
	})
	return curriculum.ComputeStatuses(catalog, curriculum.NewCompletedSet("mat-101"))
}

func TestBuildReport(t *testing.T) {
	report := BuildReport(reportSnapshot())

	assert.Contains(t, report, "# Curriculum Progress")
	assert.Contains(t, report, "**1/3 courses completed (33%)**")
	assert.Contains(t, report, "Credits: 6 of 16 earned")

	assert.Contains(t, report, "## Semester 1")
	assert.Contains(t, report, "## Semester 2")

	assert.Contains(t, report, "- [x] Cálculo I (`mat-101`)")
	assert.Contains(t, report, "- [ ] Física I (`fis-100`)")
	assert.Contains(t, report, "- [ ] Cálculo II (`mat-201`)")

	// Available course after the completion is not marked locked.
	assert.NotContains(t, report, "Cálculo II (`mat-201`) — locked")
}

func TestBuildReport_LockedCourseListsRequirements(t *testing.T) {
	catalog := curriculum.NewCatalog([]curriculum.Course{
		{ID: "a", Name: "A"},
		{ID: "b", Name: "B", Requires: []string{"a"}},
	})
	report := BuildReport(curriculum.ComputeStatuses(catalog, curriculum.NewCompletedSet()))

	assert.Contains(t, report, "— locked, requires a")
	// Unset semesters group under a general heading.
	assert.Contains(t, report, "## General")
}

func TestBuildReport_EmptyCatalog(t *testing.T) {
	report := BuildReport(curriculum.Snapshot{})
	assert.Contains(t, report, "The catalog is empty.")
}
