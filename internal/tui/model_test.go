package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskgenie/internal/service"
	"taskgenie/internal/tasklist"
	"taskgenie/internal/testutil"
)

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestModel(t *testing.T) (*Model, *testutil.FakeService, *ChanNotifier) {
	t.Helper()
	svc := testutil.NewFakeService()
	svc.AddTask("1", "Buy milk", service.StatusToDo, "2024-01-01")
	svc.AddTask("2", "File taxes", service.StatusDone, "2024-03-01")
	svc.AddTask("3", "Call mom", service.StatusDone, "2024-02-01")
	svc.AddTask("4", "Fix bike", service.StatusInProgress, "2024-04-01")

	n := NewChanNotifier()
	p := tasklist.New(svc, tasklist.NewStore(nil), tasklist.WithNotifier(n))
	m := New(context.Background(), p, n.C())

	// Run the initial load synchronously
	m.Update(m.refresh()())
	return m, svc, n
}

func send(m *Model, msgs ...tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	for _, msg := range msgs {
		_, cmd = m.Update(msg)
	}
	return cmd
}

func TestModel_InitialView(t *testing.T) {
	m, _, _ := newTestModel(t)

	out := m.View()
	assert.Contains(t, out, "Newest First")
	assert.Contains(t, out, "Fix bike")
	assert.Contains(t, out, "File taxes")
	assert.Contains(t, out, "Call mom")
	assert.NotContains(t, out, "Buy milk")
	assert.False(t, m.loading)
}

func TestModel_EmptyCollection(t *testing.T) {
	p := tasklist.New(testutil.NewFakeService(), tasklist.NewStore(nil))
	m := New(context.Background(), p, nil)
	m.Update(m.refresh()())

	assert.Contains(t, m.View(), "No tasks yet")
}

func TestModel_FilterCyclesAndResetsPage(t *testing.T) {
	m, _, _ := newTestModel(t)
	send(m, keyMsg("right"))
	require.Equal(t, 2, m.p.Page())

	send(m, keyMsg("f"))

	assert.Equal(t, tasklist.FilterOldest, m.p.Filter())
	assert.Equal(t, 1, m.p.Page())
	assert.Equal(t, 0, m.cursor)
}

func TestModel_FilteredEmptyMessage(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("1", "Only", service.StatusToDo, "")
	p := tasklist.New(svc, tasklist.NewStore(nil), tasklist.WithFilter(tasklist.FilterDone))
	m := New(context.Background(), p, nil)
	m.Update(m.refresh()())

	out := m.View()
	assert.Contains(t, out, "No tasks match this filter.")
	assert.NotContains(t, out, "No tasks yet")
}

func TestModel_PagingStopsAtLastPage(t *testing.T) {
	m, _, _ := newTestModel(t)

	send(m, keyMsg("l"), keyMsg("l"), keyMsg("l"))
	assert.Equal(t, 2, m.p.Page())
	assert.Contains(t, m.View(), "Buy milk")

	send(m, keyMsg("h"), keyMsg("h"))
	assert.Equal(t, 1, m.p.Page())
}

func TestModel_DeleteConfirmed(t *testing.T) {
	m, svc, _ := newTestModel(t)
	send(m, keyMsg("j"))

	cmd := send(m, keyMsg("d"))
	assert.Nil(t, cmd)
	assert.True(t, m.confirmingDelete)
	assert.Contains(t, m.View(), `Delete "File taxes"?`)

	cmd = send(m, keyMsg("y"))
	require.NotNil(t, cmd)
	send(m, cmd())

	assert.False(t, m.confirmingDelete)
	assert.Equal(t, 1, svc.DeleteTaskCalls)
	assert.Equal(t, 3, m.p.Store().Len())

	cmd = send(m, m.listen()())
	require.NotNil(t, cmd)
	require.NotNil(t, m.toast)
	assert.Equal(t, tasklist.MsgDeleted, m.toast.note.Message)
	assert.Contains(t, m.View(), tasklist.MsgDeleted)
}

func TestModel_DeleteCancelled(t *testing.T) {
	m, svc, _ := newTestModel(t)

	send(m, keyMsg("d"), keyMsg("esc"))

	assert.False(t, m.confirmingDelete)
	assert.Equal(t, 0, svc.DeleteTaskCalls)
}

func TestModel_DeleteFailureShowsErrorToast(t *testing.T) {
	m, svc, _ := newTestModel(t)
	svc.DeleteTaskErr = errors.New("boom")

	cmd := send(m, keyMsg("d"), keyMsg("y"))
	send(m, cmd())
	send(m, m.listen()())

	require.NotNil(t, m.toast)
	assert.Equal(t, tasklist.LevelError, m.toast.note.Level)
	assert.Equal(t, tasklist.MsgDeleteFailed, m.toast.note.Message)
	assert.Equal(t, 4, m.p.Store().Len())
}

func TestModel_ToastExpires(t *testing.T) {
	m, _, n := newTestModel(t)
	n.Notify(tasklist.Notification{Level: tasklist.LevelSuccess, Message: "first"})
	send(m, m.listen()())
	first := m.toast.id

	n.Notify(tasklist.Notification{Level: tasklist.LevelSuccess, Message: "second"})
	send(m, m.listen()())

	// An old timer must not clear a newer toast
	send(m, toastExpiredMsg{id: first})
	require.NotNil(t, m.toast)
	assert.Equal(t, "second", m.toast.note.Message)

	send(m, toastExpiredMsg{id: m.toast.id})
	assert.Nil(t, m.toast)
}

func TestModel_EditSubmitsFullRecord(t *testing.T) {
	m, svc, _ := newTestModel(t)

	send(m, keyMsg("e"))
	require.NotNil(t, m.form)
	assert.True(t, m.p.View().Editing)

	// title → description → status, then cycle in-progress → done
	send(m, keyMsg("tab"), keyMsg("tab"), keyMsg("right"))
	cmd := send(m, keyMsg("ctrl+s"))
	require.NotNil(t, cmd)
	assert.Nil(t, m.form)

	send(m, cmd())

	require.Len(t, svc.Saved, 1)
	assert.Equal(t, service.Task{ID: "4", Title: "Fix bike", Status: service.StatusDone, DueDate: "2024-04-01"}, svc.Saved[0])
	assert.False(t, m.p.View().Editing)
}

func TestModel_EditValidationKeepsFormOpen(t *testing.T) {
	m, svc, _ := newTestModel(t)
	send(m, keyMsg("e"))

	// jump to the due field and cut the date short
	send(m, keyMsg("tab"), keyMsg("tab"), keyMsg("tab"), tea.KeyMsg{Type: tea.KeyBackspace})
	cmd := send(m, keyMsg("ctrl+s"))

	assert.Nil(t, cmd)
	require.NotNil(t, m.form)
	assert.Contains(t, m.form.err, "invalid due date")
	assert.Empty(t, svc.Saved)
}

func TestModel_EditCancel(t *testing.T) {
	m, svc, _ := newTestModel(t)
	send(m, keyMsg("e"), keyMsg("esc"))

	assert.Nil(t, m.form)
	assert.False(t, m.p.View().Editing)
	assert.Equal(t, 0, svc.SaveTaskCalls)
}

func TestModel_QuitClosesStore(t *testing.T) {
	m, svc, _ := newTestModel(t)
	svc.AddTask("5", "late", service.StatusToDo, "")

	cmd := send(m, keyMsg("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())

	// a refresh landing after quit is dropped
	send(m, m.refresh()())
	assert.Equal(t, 4, m.p.Store().Len())
}

func TestModel_RefreshFailureKeepsList(t *testing.T) {
	m, svc, _ := newTestModel(t)
	svc.GetAllTasksErr = errors.New("offline")

	cmd := send(m, keyMsg("r"))
	send(m, cmd())

	out := m.View()
	assert.Contains(t, out, "Fix bike")
	assert.Contains(t, out, "Press r to retry")
}

func TestChanNotifier_DropsWhenFull(t *testing.T) {
	n := NewChanNotifier()
	for i := 0; i < notifyBuffer+5; i++ {
		n.Notify(tasklist.Notification{Message: "x"})
	}
	assert.Len(t, n.C(), notifyBuffer)
}
