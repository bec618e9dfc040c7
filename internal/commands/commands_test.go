package commands_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"taskgenie/internal/commands"
	"taskgenie/internal/config"
	"taskgenie/internal/exitcode"
	"taskgenie/internal/service"
	"taskgenie/internal/testutil"
)

// runCommand is a helper to run a command with FakeService.
func runCommand(t *testing.T, cmd commands.Command, svc *testutil.FakeService, args []string, quiet bool) (stdout, stderr string, code int) {
	t.Helper()
	t.Setenv("DEBUG", "")

	var outBuf, errBuf bytes.Buffer

	cfg := &config.Config{
		Dir:   t.TempDir(),
		Quiet: quiet,
	}

	var s service.Service
	if svc != nil {
		s = svc
	}

	ctx := context.Background()
	code = cmd.Run(ctx, cfg, s, args, &outBuf, &errBuf)
	return outBuf.String(), errBuf.String(), code
}

// sampleService returns four tasks whose newest-first order is 4, 2, 3, 1.
func sampleService() *testutil.FakeService {
	svc := testutil.NewFakeService()
	svc.AddTask("1", "Buy milk", service.StatusToDo, "2024-01-01")
	svc.AddTask("2", "File taxes", service.StatusDone, "2024-03-01")
	svc.AddTask("3", "Call mom", service.StatusDone, "2024-02-01")
	svc.AddTask("4", "Fix bike", service.StatusInProgress, "2024-04-01")
	return svc
}

// Tests for version command
func TestVersionCommand(t *testing.T) {
	cmd := &commands.VersionCmd{}

	stdout, stderr, code := runCommand(t, cmd, nil, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "taskgenie 0.1.0\n" {
		t.Errorf("expected version output, got %q", stdout)
	}
}

// Tests for help command
func TestHelpCommand(t *testing.T) {
	cmd := &commands.HelpCmd{}

	stdout, stderr, code := runCommand(t, cmd, nil, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	for _, want := range []string{"Usage:", "taskgenie list", "taskgenie rm", "taskgenie tui", "--server <url>"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("help output should contain %q", want)
		}
	}
}

// Tests for list command
func TestListCommand_FirstPageNewest(t *testing.T) {
	cmd := &commands.ListCmd{}
	stdout, stderr, code := runCommand(t, cmd, sampleService(), nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}

	expected := "------------\n" +
		"Newest First (4 tasks)\n" +
		"------------\n" +
		"   1  2024-04-01  in-progress  Fix bike\n" +
		"   2  2024-03-01  done         File taxes\n" +
		"   3  2024-02-01  done         Call mom\n" +
		"page 1 of 2: [1] 2\n"
	if stdout != expected {
		t.Errorf("expected %q, got %q", expected, stdout)
	}
}

func TestListCommand_SecondPageKeepsNumbering(t *testing.T) {
	cmd := &commands.ListCmd{}
	cmd.SetPage(2)
	stdout, _, code := runCommand(t, cmd, sampleService(), nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}

	expected := "------------\n" +
		"Newest First (4 tasks)\n" +
		"------------\n" +
		"   4  2024-01-01  to-do        Buy milk\n" +
		"page 2 of 2: 1 [2]\n"
	if stdout != expected {
		t.Errorf("expected %q, got %q", expected, stdout)
	}
}

func TestListCommand_StatusFilterKeepsBackendOrder(t *testing.T) {
	cmd := &commands.ListCmd{}
	cmd.SetFilter("done")
	stdout, _, code := runCommand(t, cmd, sampleService(), nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}

	expected := "------------\n" +
		"Done (2 tasks)\n" +
		"------------\n" +
		"   1  2024-03-01  done         File taxes\n" +
		"   2  2024-02-01  done         Call mom\n" +
		"page 1 of 1: [1]\n"
	if stdout != expected {
		t.Errorf("expected %q, got %q", expected, stdout)
	}
}

func TestListCommand_FilterExcludesEverything(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("1", "Done already", service.StatusDone, "")

	cmd := &commands.ListCmd{}
	cmd.SetFilter("to-do")
	stdout, _, code := runCommand(t, cmd, svc, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	expected := "------------\nTo Do (0 tasks)\n------------\nno tasks match filter\n"
	if stdout != expected {
		t.Errorf("expected %q, got %q", expected, stdout)
	}
}

func TestListCommand_Empty(t *testing.T) {
	cmd := &commands.ListCmd{}
	stdout, stderr, code := runCommand(t, cmd, testutil.NewFakeService(), nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "no tasks found\n" {
		t.Errorf("expected %q, got %q", "no tasks found\n", stdout)
	}
}

func TestListCommand_EmptyQuiet(t *testing.T) {
	cmd := &commands.ListCmd{}
	stdout, _, code := runCommand(t, cmd, testutil.NewFakeService(), nil, true)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "" {
		t.Errorf("expected no output in quiet mode, got %q", stdout)
	}
}

func TestListCommand_PageWithoutControl(t *testing.T) {
	cmd := &commands.ListCmd{}
	cmd.SetPage(3)
	stdout, stderr, code := runCommand(t, cmd, sampleService(), nil, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stdout != "" {
		t.Errorf("expected no stdout, got %q", stdout)
	}
	expected := "error: page out of range: 3 (have 2)\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestListCommand_InvalidPage(t *testing.T) {
	cmd := &commands.ListCmd{}
	cmd.SetPage(-1)
	_, stderr, code := runCommand(t, cmd, sampleService(), nil, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: invalid page number: -1\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestListCommand_UnknownFilter(t *testing.T) {
	cmd := &commands.ListCmd{}
	cmd.SetFilter("someday")
	_, stderr, code := runCommand(t, cmd, sampleService(), nil, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown filter: someday (want newest, oldest, to-do, in-progress or done)\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestListCommand_JSON(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("1", "Buy milk", service.StatusToDo, "2024-01-01")

	cmd := &commands.ListCmd{}
	cmd.SetJSON(true)
	stdout, _, code := runCommand(t, cmd, svc, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	expected := `{"filter":"newest","page":1,"totalPages":1,"total":1,"filtered":1,"tasks":[{"id":"1","title":"Buy milk","description":"","status":"to-do","dueDate":"2024-01-01"}]}` + "\n"
	if stdout != expected {
		t.Errorf("expected %q, got %q", expected, stdout)
	}
}

func TestListCommand_JSONEmpty(t *testing.T) {
	cmd := &commands.ListCmd{}
	cmd.SetJSON(true)
	stdout, _, _ := runCommand(t, cmd, testutil.NewFakeService(), nil, false)

	expected := `{"filter":"newest","page":1,"totalPages":0,"total":0,"filtered":0,"tasks":[]}` + "\n"
	if stdout != expected {
		t.Errorf("expected %q, got %q", expected, stdout)
	}
}

func TestListCommand_BackendError(t *testing.T) {
	svc := sampleService()
	svc.GetAllTasksErr = errors.New("connection refused")

	cmd := &commands.ListCmd{}
	stdout, stderr, code := runCommand(t, cmd, svc, nil, false)

	if code != exitcode.BackendError {
		t.Errorf("expected exit code %d, got %d", exitcode.BackendError, code)
	}
	if stdout != "" {
		t.Errorf("expected no stdout, got %q", stdout)
	}
	if stderr != "error: backend error: refresh: connection refused\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestListCommand_Unauthorized(t *testing.T) {
	svc := sampleService()
	svc.GetAllTasksErr = service.ErrUnauthorized

	cmd := &commands.ListCmd{}
	_, stderr, code := runCommand(t, cmd, svc, nil, false)

	if code != exitcode.AuthError {
		t.Errorf("expected exit code %d, got %d", exitcode.AuthError, code)
	}
	if !strings.Contains(stderr, "(run: taskgenie login)") {
		t.Errorf("expected login hint, got %q", stderr)
	}
}

// Tests for show command
func TestShowCommand_ByPosition(t *testing.T) {
	cmd := &commands.ShowCmd{}
	stdout, stderr, code := runCommand(t, cmd, sampleService(), []string{"1"}, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	expected := "id:          4\n" +
		"title:       Fix bike\n" +
		"status:      in-progress\n" +
		"due:         2024-04-01\n"
	if stdout != expected {
		t.Errorf("expected %q, got %q", expected, stdout)
	}
}

func TestShowCommand_NotFound(t *testing.T) {
	cmd := &commands.ShowCmd{}
	_, stderr, code := runCommand(t, cmd, sampleService(), []string{"nope"}, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: task not found: nope\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestShowCommand_OutOfRange(t *testing.T) {
	cmd := &commands.ShowCmd{}
	_, stderr, code := runCommand(t, cmd, sampleService(), []string{"9"}, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: task number out of range: 9\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

// Tests for add command
func TestAddCommand(t *testing.T) {
	svc := testutil.NewFakeService()

	cmd := &commands.AddCmd{}
	cmd.SetDate("2024-07-01")
	stdout, stderr, code := runCommand(t, cmd, svc, []string{"Water", "plants"}, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "created task-1\n" {
		t.Errorf("expected %q, got %q", "created task-1\n", stdout)
	}

	tasks := svc.Tasks()
	if len(tasks) != 1 || tasks[0].Title != "Water plants" || tasks[0].DueDate != "2024-07-01" {
		t.Errorf("unexpected tasks %+v", tasks)
	}
}

func TestAddCommand_ContentRequired(t *testing.T) {
	cmd := &commands.AddCmd{}
	_, stderr, code := runCommand(t, cmd, testutil.NewFakeService(), []string{"  "}, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: content required\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestAddCommand_InvalidDate(t *testing.T) {
	svc := testutil.NewFakeService()
	cmd := &commands.AddCmd{}
	cmd.SetDate("next week")
	_, stderr, code := runCommand(t, cmd, svc, []string{"x"}, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: invalid date: next week (want YYYY-MM-DD)\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
	if len(svc.Tasks()) != 0 {
		t.Error("no task should be created")
	}
}

// Tests for edit and done commands
func TestEditCommand_SendsFullRecord(t *testing.T) {
	svc := sampleService()

	cmd := &commands.EditCmd{}
	cmd.SetFields("", "", "done", "")
	stdout, stderr, code := runCommand(t, cmd, svc, []string{"1"}, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "Task Updated Successfully\n" {
		t.Errorf("unexpected stdout %q", stdout)
	}

	want := service.Task{ID: "4", Title: "Fix bike", Status: service.StatusDone, DueDate: "2024-04-01"}
	if len(svc.Saved) != 1 || svc.Saved[0] != want {
		t.Errorf("expected saved %+v, got %+v", want, svc.Saved)
	}
}

func TestEditCommand_InvalidStatus(t *testing.T) {
	svc := sampleService()

	cmd := &commands.EditCmd{}
	cmd.SetFields("", "", "blocked", "")
	_, stderr, code := runCommand(t, cmd, svc, []string{"1"}, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: invalid status: \"blocked\" (want to-do, in-progress or done)\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
	if svc.SaveTaskCalls != 0 {
		t.Errorf("expected no save, got %d", svc.SaveTaskCalls)
	}
}

func TestEditCommand_NothingToChange(t *testing.T) {
	cmd := &commands.EditCmd{}
	cmd.SetFields("", "", "", "")
	_, stderr, code := runCommand(t, cmd, sampleService(), []string{"1"}, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if !strings.HasPrefix(stderr, "error: nothing to change") {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestEditCommand_BackendFailure(t *testing.T) {
	svc := sampleService()
	svc.SaveTaskErr = errors.New("500")

	cmd := &commands.EditCmd{}
	cmd.SetFields("New title", "", "", "")
	stdout, stderr, code := runCommand(t, cmd, svc, []string{"2"}, false)

	if code != exitcode.BackendError {
		t.Errorf("expected exit code %d, got %d", exitcode.BackendError, code)
	}
	if stdout != "" {
		t.Errorf("expected no stdout, got %q", stdout)
	}
	if stderr != "error: Error Updating Task\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestDoneCommand_ByPositionQuiet(t *testing.T) {
	svc := sampleService()

	cmd := &commands.DoneCmd{}
	stdout, _, code := runCommand(t, cmd, svc, []string{"1"}, true)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "" {
		t.Errorf("expected no output in quiet mode, got %q", stdout)
	}
	// "1" is a position: newest first puts task 4 there
	if len(svc.Saved) != 1 || svc.Saved[0].ID != "4" || svc.Saved[0].Status != service.StatusDone {
		t.Errorf("unexpected saved %+v", svc.Saved)
	}
}

func TestDoneCommand_ByTaskID(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("abc", "Buy milk", service.StatusToDo, "2024-01-01")

	cmd := &commands.DoneCmd{}
	stdout, _, code := runCommand(t, cmd, svc, []string{"abc"}, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "Task Updated Successfully\n" {
		t.Errorf("unexpected stdout %q", stdout)
	}
	if svc.GetAllTasksCalls != 1 {
		t.Errorf("expected one refresh after the update, got %d", svc.GetAllTasksCalls)
	}
}

func TestDoneCommand_DateTimeDue(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("1", "Buy milk", service.StatusToDo, "2024-01-15T00:00:00.000Z")

	cmd := &commands.DoneCmd{}
	_, stderr, code := runCommand(t, cmd, svc, []string{"1"}, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if len(svc.Saved) != 1 {
		t.Fatalf("expected one saved record, got %d", len(svc.Saved))
	}
	if svc.Saved[0].Status != service.StatusDone || svc.Saved[0].DueDate != "2024-01-15" {
		t.Errorf("unexpected saved %+v", svc.Saved[0])
	}
}

func TestRmCommand_DebugLogsFailureDetail(t *testing.T) {
	svc := sampleService()
	svc.DeleteTaskErr = errors.New("network down")

	var outBuf, errBuf bytes.Buffer
	cfg := &config.Config{Dir: t.TempDir(), Debug: true}
	code := (&commands.RmCmd{}).Run(context.Background(), cfg, svc, []string{"2"}, &outBuf, &errBuf)

	if code != exitcode.BackendError {
		t.Errorf("expected exit code %d, got %d", exitcode.BackendError, code)
	}
	if !strings.Contains(errBuf.String(), "network down") {
		t.Errorf("expected developer log on stderr with --debug, got %q", errBuf.String())
	}
}

// Tests for rm command
func TestRmCommand_ByPosition(t *testing.T) {
	svc := sampleService()

	cmd := &commands.RmCmd{}
	stdout, stderr, code := runCommand(t, cmd, svc, []string{"1"}, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "Task Deleted Successfully\n" {
		t.Errorf("unexpected stdout %q", stdout)
	}
	for _, task := range svc.Tasks() {
		if task.ID == "4" {
			t.Error("task 4 should be deleted")
		}
	}
	// one refresh to resolve the position, one after the delete
	if svc.GetAllTasksCalls != 2 {
		t.Errorf("expected 2 refreshes, got %d", svc.GetAllTasksCalls)
	}
}

func TestRmCommand_Failure(t *testing.T) {
	svc := sampleService()
	svc.DeleteTaskErr = errors.New("network down")

	cmd := &commands.RmCmd{}
	stdout, stderr, code := runCommand(t, cmd, svc, []string{"2"}, false)

	if code != exitcode.BackendError {
		t.Errorf("expected exit code %d, got %d", exitcode.BackendError, code)
	}
	if stdout != "" {
		t.Errorf("expected no stdout, got %q", stdout)
	}
	if stderr != "error: Error Deleting Task\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
	if len(svc.Tasks()) != 4 {
		t.Error("collection should be unchanged")
	}
}

func TestRmCommand_Unauthorized(t *testing.T) {
	svc := sampleService()
	svc.DeleteTaskErr = service.ErrUnauthorized

	cmd := &commands.RmCmd{}
	_, stderr, code := runCommand(t, cmd, svc, []string{"2"}, false)

	if code != exitcode.AuthError {
		t.Errorf("expected exit code %d, got %d", exitcode.AuthError, code)
	}
	if !strings.Contains(stderr, "(run: taskgenie login)") {
		t.Errorf("expected login hint, got %q", stderr)
	}
}

func TestRmCommand_RefRequired(t *testing.T) {
	cmd := &commands.RmCmd{}
	_, stderr, code := runCommand(t, cmd, sampleService(), nil, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: task reference required\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

// Tests for mine command
func TestMineCommand_ExplicitUser(t *testing.T) {
	svc := sampleService()
	svc.AddUserTask("u1", service.Task{ID: "m1", Title: "Mine", Status: service.StatusToDo})

	cmd := &commands.MineCmd{}
	cmd.SetUser("u1")
	stdout, _, code := runCommand(t, cmd, svc, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	expected := "------------\nNewest First (1 task)\n------------\n   1  -           to-do        Mine\n"
	if stdout != expected {
		t.Errorf("expected %q, got %q", expected, stdout)
	}
}

func TestMineCommand_NotLoggedIn(t *testing.T) {
	cmd := &commands.MineCmd{}
	_, stderr, code := runCommand(t, cmd, sampleService(), nil, false)

	if code != exitcode.AuthError {
		t.Errorf("expected exit code %d, got %d", exitcode.AuthError, code)
	}
	if stderr != "error: not logged in (run: taskgenie login)\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}
