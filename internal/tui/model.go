// Package tui is the interactive front end of the task list presenter,
// built on bubbletea.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"taskgenie/internal/service"
	"taskgenie/internal/tasklist"
)

// ToastTTL is how long a notification stays on screen.
const ToastTTL = 3 * time.Second

type refreshedMsg struct{ err error }

type mutationMsg struct{ err error }

type notificationMsg tasklist.Notification

type toastExpiredMsg struct{ id int }

type toast struct {
	id   int
	note tasklist.Notification
}

// Model renders the presenter's view and turns keys into presenter calls.
// Backend work runs in tea.Cmds; the presenter guards its own state.
type Model struct {
	ctx    context.Context
	p      *tasklist.Presenter
	notes  <-chan tasklist.Notification
	keys   KeyMap
	styles Styles

	width  int
	height int

	cursor  int
	loading bool
	lastErr error

	confirmingDelete bool
	deleteTarget     service.Task

	form *editForm

	toast   *toast
	toastID int
}

// New returns a model for p. notes may be nil when nothing listens for
// notifications.
func New(ctx context.Context, p *tasklist.Presenter, notes <-chan tasklist.Notification) *Model {
	return &Model{
		ctx:     ctx,
		p:       p,
		notes:   notes,
		keys:    DefaultKeyMap(),
		styles:  NewStyles(),
		loading: true,
	}
}

// Init loads the collection and starts listening for notifications.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.refresh(), m.listen())
}

func (m *Model) refresh() tea.Cmd {
	return func() tea.Msg {
		return refreshedMsg{err: m.p.Refresh(m.ctx)}
	}
}

func (m *Model) listen() tea.Cmd {
	if m.notes == nil {
		return nil
	}
	return func() tea.Msg {
		note, ok := <-m.notes
		if !ok {
			return nil
		}
		return notificationMsg(note)
	}
}

func (m *Model) deleteTask(id string) tea.Cmd {
	return func() tea.Msg {
		return mutationMsg{err: m.p.Delete(m.ctx, id)}
	}
}

func (m *Model) submitEdit(updated service.Task) tea.Cmd {
	return func() tea.Msg {
		return mutationMsg{err: m.p.SubmitEdit(m.ctx, updated)}
	}
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case refreshedMsg:
		m.loading = false
		m.lastErr = msg.err
		m.clampCursor()
		return m, nil

	case mutationMsg:
		// The presenter refreshed on success; its notification reports the outcome
		m.clampCursor()
		return m, nil

	case notificationMsg:
		m.toastID++
		m.toast = &toast{id: m.toastID, note: tasklist.Notification(msg)}
		id := m.toastID
		expire := tea.Tick(ToastTTL, func(time.Time) tea.Msg { return toastExpiredMsg{id: id} })
		return m, tea.Batch(m.listen(), expire)

	case toastExpiredMsg:
		if m.toast != nil && m.toast.id == msg.id {
			m.toast = nil
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, m.quit()
		}
		if m.confirmingDelete {
			return m.updateConfirmDelete(msg)
		}
		if m.form != nil {
			return m.updateEditing(msg)
		}
		return m.updateNormal(msg)
	}
	return m, nil
}

// quit stops the store so responses still in flight are dropped.
func (m *Model) quit() tea.Cmd {
	m.p.Store().Close()
	return tea.Quit
}

func (m *Model) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	v := m.p.View()

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, m.quit()

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(v.Tasks)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.NextPage):
		if m.p.SetPage(v.Page+1) == nil {
			m.cursor = 0
		}

	case key.Matches(msg, m.keys.PrevPage):
		if m.p.SetPage(v.Page-1) == nil {
			m.cursor = 0
		}

	case key.Matches(msg, m.keys.Filter):
		m.p.SetFilter(v.Filter.Next())
		m.cursor = 0

	case key.Matches(msg, m.keys.Refresh):
		m.loading = true
		return m, m.refresh()

	case key.Matches(msg, m.keys.Edit):
		if task, ok := m.current(v); ok {
			m.p.RequestEdit(task)
			m.form = newEditForm(task)
			return m, m.form.setFocus(fieldTitle)
		}

	case key.Matches(msg, m.keys.Delete):
		if task, ok := m.current(v); ok {
			m.confirmingDelete = true
			m.deleteTarget = task
		}
	}
	return m, nil
}

func (m *Model) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		m.confirmingDelete = false
		return m, m.deleteTask(m.deleteTarget.ID)
	case key.Matches(msg, m.keys.Back):
		m.confirmingDelete = false
	}
	return m, nil
}

func (m *Model) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.p.CancelEdit()
		m.form = nil
		return m, nil

	case key.Matches(msg, m.keys.Save):
		selected, ok := m.p.Selected()
		if !ok {
			m.form = nil
			return m, nil
		}
		updated := m.form.apply(selected)
		if err := tasklist.ValidateEdit(updated); err != nil {
			m.form.err = err.Error()
			return m, nil
		}
		m.form = nil
		return m, m.submitEdit(updated)
	}
	return m, m.form.update(msg, m.keys)
}

// current returns the task under the cursor on the visible page.
func (m *Model) current(v tasklist.View) (service.Task, bool) {
	if m.cursor < 0 || m.cursor >= len(v.Tasks) {
		return service.Task{}, false
	}
	return v.Tasks[m.cursor], true
}

func (m *Model) clampCursor() {
	n := len(m.p.View().Tasks)
	m.cursor = max(0, min(m.cursor, n-1))
}

// View renders the UI.
func (m *Model) View() string {
	v := m.p.View()
	s := m.styles

	var b strings.Builder
	b.WriteString(s.Title.Render("TaskGenie"))
	b.WriteString("\n")
	b.WriteString(m.renderFilters(v))
	b.WriteString("\n\n")

	switch {
	case m.loading && v.Total == 0:
		b.WriteString(s.Muted.Render("Loading tasks..."))
		b.WriteString("\n")
	case v.Empty:
		b.WriteString(s.Muted.Render("No tasks yet. Add one with: taskgenie add <content>"))
		b.WriteString("\n")
	case v.FilteredEmpty():
		b.WriteString(s.Muted.Render("No tasks match this filter."))
		b.WriteString("\n")
	default:
		b.WriteString(m.renderTasks(v))
		b.WriteString("\n")
		b.WriteString(m.renderPager(v))
		b.WriteString("\n")
	}

	if m.lastErr != nil {
		b.WriteString(s.Error.Render("Could not load tasks; showing the last list. Press r to retry."))
		b.WriteString("\n")
	}
	if m.toast != nil {
		style := s.Success
		if m.toast.note.Level == tasklist.LevelError {
			style = s.Error
		}
		b.WriteString("\n")
		b.WriteString(style.Render(m.toast.note.Message))
		b.WriteString("\n")
	}

	switch {
	case m.confirmingDelete:
		b.WriteString("\n")
		b.WriteString(s.Modal.Render(fmt.Sprintf("Delete %q?  y: yes  esc: no", m.deleteTarget.Title)))
		b.WriteString("\n")
	case m.form != nil:
		b.WriteString("\n")
		b.WriteString(m.form.view(s, m.keys))
		b.WriteString("\n")
	default:
		b.WriteString(s.Help.Render(helpLine(m.keys.listHelp())))
	}
	return b.String()
}

func (m *Model) renderFilters(v tasklist.View) string {
	tabs := make([]string, len(tasklist.Filters))
	for i, f := range tasklist.Filters {
		if f == v.Filter {
			tabs[i] = m.styles.ActiveTab.Render(f.Label())
		} else {
			tabs[i] = m.styles.Tab.Render(f.Label())
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m *Model) renderTasks(v tasklist.View) string {
	rows := make([]string, len(v.Tasks))
	for i, t := range v.Tasks {
		due := "no due date"
		if strings.TrimSpace(t.DueDate) != "" {
			due = t.DueDay()
		}
		line := fmt.Sprintf("%s  %s  %s", t.Title, m.styles.Status(t.Status), m.styles.Muted.Render(due))
		if i == m.cursor {
			rows[i] = m.styles.Selected.Render("> " + line)
		} else {
			rows[i] = m.styles.Row.Render(line)
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m *Model) renderPager(v tasklist.View) string {
	parts := make([]string, len(v.Pages))
	for i, n := range v.Pages {
		if n == v.Page {
			parts[i] = m.styles.PageOn.Render(fmt.Sprint(n))
		} else {
			parts[i] = m.styles.Page.Render(fmt.Sprint(n))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func helpLine(bindings []key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, " • ")
}
