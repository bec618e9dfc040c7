// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"taskgenie/internal/service"
)

const (
	// ListSeparator is the separator line around section headers.
	ListSeparator = "------------"

	// noDue stands in for a missing due date.
	noDue = "-"
)

// FormatTask formats one task line.
// Format: "{N:>4}  {DUE:<10}  {STATUS:<11}  {TITLE}\n"
func FormatTask(w io.Writer, num int, task service.Task) {
	fmt.Fprintf(w, "%4d  %-10s  %-11s  %s\n", num, dueText(task), statusText(task.Status), normalizeTitle(task.Title))
}

// FormatHeader formats the filter section header, e.g. "Newest First (4 tasks)".
func FormatHeader(w io.Writer, label string, count int) {
	noun := "tasks"
	if count == 1 {
		noun = "task"
	}
	fmt.Fprintln(w, ListSeparator)
	fmt.Fprintf(w, "%s (%d %s)\n", label, count, noun)
	fmt.Fprintln(w, ListSeparator)
}

// FormatPager formats the page control line. The current page is bracketed:
// "page 1 of 3: [1] 2 3".
func FormatPager(w io.Writer, current int, pages []int) {
	parts := make([]string, len(pages))
	for i, n := range pages {
		if n == current {
			parts[i] = fmt.Sprintf("[%d]", n)
		} else {
			parts[i] = fmt.Sprintf("%d", n)
		}
	}
	fmt.Fprintf(w, "page %d of %d: %s\n", current, len(pages), strings.Join(parts, " "))
}

// FormatTaskDetail prints every field of a task.
func FormatTaskDetail(w io.Writer, task service.Task) {
	fmt.Fprintf(w, "id:          %s\n", task.ID)
	fmt.Fprintf(w, "title:       %s\n", normalizeTitle(task.Title))
	fmt.Fprintf(w, "status:      %s\n", statusText(task.Status))
	fmt.Fprintf(w, "due:         %s\n", dueText(task))
	if desc := strings.TrimSpace(task.Description); desc != "" {
		fmt.Fprintln(w, "description:")
		for _, line := range strings.Split(desc, "\n") {
			fmt.Fprintf(w, "  %s\n", strings.TrimRight(line, "\r"))
		}
	}
}

// FormatAccount prints the result of register/login.
func FormatAccount(w io.Writer, acct service.Account) {
	name := acct.Name
	if name == "" {
		name = acct.Email
	}
	if acct.ID != "" {
		fmt.Fprintf(w, "logged in as %s (%s)\n", name, acct.ID)
		return
	}
	fmt.Fprintf(w, "logged in as %s\n", name)
}

// dueText renders the due date as YYYY-MM-DD when it parses, else verbatim.
func dueText(task service.Task) string {
	if strings.TrimSpace(task.DueDate) == "" {
		return noDue
	}
	return task.DueDay()
}

func statusText(s service.Status) string {
	if s == "" {
		return "(none)"
	}
	return string(s)
}

// normalizeTitle normalizes a task title for display.
// - Empty or whitespace-only titles become "(untitled)"
// - Newlines are replaced with spaces
func normalizeTitle(title string) string {
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")

	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}
