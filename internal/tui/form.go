package tui

import (
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"taskgenie/internal/service"
)

// Form fields in focus order.
const (
	fieldTitle = iota
	fieldDescription
	fieldStatus
	fieldDue
	fieldCount
)

// editForm is the modal that edits the selected task.
type editForm struct {
	title  textinput.Model
	desc   textarea.Model
	due    textinput.Model
	status service.Status
	focus  int
	err    string
}

func newEditForm(t service.Task) *editForm {
	title := textinput.New()
	title.Placeholder = "Task title"
	title.CharLimit = 200
	title.SetValue(t.Title)

	desc := textarea.New()
	desc.Placeholder = "Description"
	desc.CharLimit = 1000
	desc.SetWidth(50)
	desc.SetHeight(3)
	desc.ShowLineNumbers = false
	desc.SetValue(t.Description)

	due := textinput.New()
	due.Placeholder = "YYYY-MM-DD"
	due.CharLimit = 10
	if strings.TrimSpace(t.DueDate) != "" {
		due.SetValue(t.DueDay())
	}

	f := &editForm{title: title, desc: desc, due: due, status: t.Status}
	f.title.Focus()
	return f
}

// apply copies the form values onto t.
func (f *editForm) apply(t service.Task) service.Task {
	t.Title = strings.TrimSpace(f.title.Value())
	t.Description = f.desc.Value()
	t.Status = f.status
	t.DueDate = strings.TrimSpace(f.due.Value())
	return t
}

// cycleStatus moves to the next (dir=1) or previous (dir=-1) status. An
// unknown status starts the cycle at to-do.
func (f *editForm) cycleStatus(dir int) {
	n := len(service.Statuses)
	i := slices.Index(service.Statuses, f.status)
	if i < 0 {
		f.status = service.Statuses[0]
		return
	}
	f.status = service.Statuses[(i+dir+n)%n]
}

func (f *editForm) setFocus(i int) tea.Cmd {
	f.focus = (i + fieldCount) % fieldCount
	f.title.Blur()
	f.desc.Blur()
	f.due.Blur()
	switch f.focus {
	case fieldTitle:
		return f.title.Focus()
	case fieldDescription:
		return f.desc.Focus()
	case fieldDue:
		return f.due.Focus()
	}
	return nil
}

// update routes a key to the focused field. Save and cancel are handled
// by the model.
func (f *editForm) update(msg tea.KeyMsg, keys KeyMap) tea.Cmd {
	switch {
	case key.Matches(msg, keys.Tab):
		return f.setFocus(f.focus + 1)
	case key.Matches(msg, keys.ShiftTab):
		return f.setFocus(f.focus - 1)
	}

	var cmd tea.Cmd
	switch f.focus {
	case fieldTitle:
		if msg.Type == tea.KeyEnter {
			return f.setFocus(fieldDescription)
		}
		f.title, cmd = f.title.Update(msg)
	case fieldDescription:
		f.desc, cmd = f.desc.Update(msg)
	case fieldStatus:
		switch msg.String() {
		case "left", "h":
			f.cycleStatus(-1)
		case "right", "l", " ", "enter":
			f.cycleStatus(1)
		}
	case fieldDue:
		f.due, cmd = f.due.Update(msg)
	}
	return cmd
}

func (f *editForm) view(s Styles, keys KeyMap) string {
	label := func(i int, text string) string {
		if f.focus == i {
			return s.Focused.Render(text)
		}
		return s.Label.Render(text)
	}

	rows := []string{
		s.Title.Render("Edit task"),
		lipgloss.JoinHorizontal(lipgloss.Top, label(fieldTitle, "Title"), f.title.View()),
		lipgloss.JoinHorizontal(lipgloss.Top, label(fieldDescription, "Description"), f.desc.View()),
		lipgloss.JoinHorizontal(lipgloss.Top, label(fieldStatus, "Status"), "‹ "+s.Status(f.status)+" ›"),
		lipgloss.JoinHorizontal(lipgloss.Top, label(fieldDue, "Due"), f.due.View()),
	}
	if f.err != "" {
		rows = append(rows, "", s.Error.Render(f.err))
	}
	rows = append(rows, s.Help.Render(helpLine(keys.formHelp())))
	return s.Modal.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
