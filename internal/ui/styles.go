package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/jaekwang-park/todo-app/internal/model"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	flagStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	accentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	mutedStyle   = lipgloss.NewStyle().Faint(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)

	selectedStyle = lipgloss.NewStyle().Bold(true).Reverse(true)
	doneStyle     = lipgloss.NewStyle().Faint(true).Strikethrough(true)
	helpStyle     = lipgloss.NewStyle().Faint(true)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1)
)

const (
	boxChecked   = "☑"
	boxUnchecked = "☐"
	flagMark     = "⚑"
)

// TodoLine renders a todo as a single line: checkbox, flag and title.
func TodoLine(t model.Todo) string {
	box := mutedStyle.Render(boxUnchecked)
	title := t.Title
	if t.Completed {
		box = successStyle.Render(boxChecked)
		title = doneStyle.Render(t.Title)
	}
	flag := " "
	if t.Flagged {
		flag = flagStyle.Render(flagMark)
	}
	return fmt.Sprintf("%s %s %s", box, flag, title)
}

// TodoRow is TodoLine prefixed with the todo id, for non-interactive output.
func TodoRow(t model.Todo) string {
	return fmt.Sprintf("%s  %s", mutedStyle.Render(t.ID), TodoLine(t))
}

// CategoryRow renders a category with its todo count.
func CategoryRow(c model.Category, count int, current bool) string {
	name := c.Name
	if current {
		name = accentStyle.Render(name)
	}
	return fmt.Sprintf("%s  %s %s", mutedStyle.Render(c.ID), name, mutedStyle.Render(fmt.Sprintf("(%d)", count)))
}

func Success(msg string) string {
	return successStyle.Render("✔ " + msg)
}

func Failure(msg string) string {
	return errorStyle.Render("✖ " + msg)
}
