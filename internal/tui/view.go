package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/malla-dev/malla/internal/core/curriculum"
	"github.com/malla-dev/malla/internal/core/styles"
)

var (
	titleStyle  = styles.Title.MarginBottom(1)
	cursorStyle = lipgloss.NewStyle().Foreground(styles.ColorPrimary).Bold(true)
	semStyle    = lipgloss.NewStyle().Foreground(styles.ColorPrimary)
	noticeStyle = styles.Error.MarginTop(1)
	footStyle   = lipgloss.NewStyle().MarginTop(1)
)

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("malla — curriculum progress"))
	b.WriteString("\n")

	if len(m.snapshot) == 0 {
		b.WriteString("No courses in the catalog.\n")
		b.WriteString(footStyle.Render(m.help.View(m.keys)))
		return b.String()
	}

	completed, available, locked := m.snapshot.Counts()
	fmt.Fprintf(&b, "%d completed · %d available · %d locked\n\n", completed, available, locked)

	lastSemester := -1
	for i, cs := range m.snapshot {
		if cs.Course.Semester != lastSemester {
			lastSemester = cs.Course.Semester
			if i > 0 {
				b.WriteString("\n")
			}
			b.WriteString(semStyle.Render(semesterHeading(cs.Course.Semester)))
			b.WriteString("\n")
		}

		b.WriteString(m.renderRow(i, cs))
		b.WriteString("\n")
	}

	if m.notice != "" {
		b.WriteString(noticeStyle.Render(m.notice))
		b.WriteString("\n")
	}

	b.WriteString(footStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func (m Model) renderRow(i int, cs curriculum.CourseStatus) string {
	cursor := "  "
	if i == m.cursor {
		cursor = cursorStyle.Render("> ")
	}

	line := fmt.Sprintf("%s %s  %s", styles.StatusGlyph(cs.Status), cs.Course.Label(), cs.Course.ID)
	return cursor + styles.ForStatus(cs.Status).Render(line)
}

func semesterHeading(semester int) string {
	if semester == 0 {
		return "General"
	}
	return fmt.Sprintf("Semester %d", semester)
}
