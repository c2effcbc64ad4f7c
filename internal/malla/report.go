package malla

import (
	"fmt"
	"sort"
	"strings"

	"github.com/malla-dev/malla/internal/core/curriculum"
)

// BuildReport renders a status snapshot as a markdown progress
// document, grouped by semester in catalog order. The caller decides
// how to present the markdown (glamour in the report command).
func BuildReport(snapshot curriculum.Snapshot) string {
	var b strings.Builder

	completed, available, locked := snapshot.Counts()
	total := len(snapshot)

	b.WriteString("# Curriculum Progress\n\n")
	if total == 0 {
		b.WriteString("The catalog is empty.\n")
		return b.String()
	}

	percent := completed * 100 / total
	fmt.Fprintf(&b, "**%d/%d courses completed (%d%%)** — %d available, %d locked\n",
		completed, total, percent, available, locked)

	if earned, totalCredits := creditTotals(snapshot); totalCredits > 0 {
		fmt.Fprintf(&b, "\nCredits: %d of %d earned\n", earned, totalCredits)
	}

	for _, semester := range semesters(snapshot) {
		if semester == 0 {
			b.WriteString("\n## General\n\n")
		} else {
			fmt.Fprintf(&b, "\n## Semester %d\n\n", semester)
		}

		for _, cs := range snapshot {
			if cs.Course.Semester != semester {
				continue
			}
			b.WriteString(reportLine(cs))
		}
	}

	return b.String()
}

func reportLine(cs curriculum.CourseStatus) string {
	mark := " "
	if cs.Status == curriculum.StatusCompleted {
		mark = "x"
	}

	line := fmt.Sprintf("- [%s] %s (`%s`)", mark, cs.Course.Label(), cs.Course.ID)
	if cs.Status == curriculum.StatusLocked {
		line += fmt.Sprintf(" — locked, requires %s", strings.Join(cs.Course.Requires, ", "))
	}

	return line + "\n"
}

// semesters returns the distinct semester numbers present, ascending.
func semesters(snapshot curriculum.Snapshot) []int {
	seen := make(map[int]bool)
	var out []int
	for _, cs := range snapshot {
		if !seen[cs.Course.Semester] {
			seen[cs.Course.Semester] = true
			out = append(out, cs.Course.Semester)
		}
	}
	sort.Ints(out)
	return out
}

func creditTotals(snapshot curriculum.Snapshot) (earned, total int) {
	for _, cs := range snapshot {
		total += cs.Course.Credits
		if cs.Status == curriculum.StatusCompleted {
			earned += cs.Course.Credits
		}
	}
	return earned, total
}
