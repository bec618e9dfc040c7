package tasklist

import "taskgenie/internal/service"

// PageSize is the number of tasks shown per page.
const PageSize = 3

// TotalPages returns ceil(n / PageSize).
func TotalPages(n int) int {
	if n <= 0 {
		return 0
	}
	return (n + PageSize - 1) / PageSize
}

// PageSlice returns the tasks in [(page-1)*PageSize, page*PageSize), clipped
// to the slice. Out-of-range pages yield an empty slice.
func PageSlice(tasks []service.Task, page int) []service.Task {
	if page < 1 {
		return nil
	}
	start := (page - 1) * PageSize
	if start >= len(tasks) {
		return nil
	}
	end := min(start+PageSize, len(tasks))
	return tasks[start:end]
}

// PageNumbers returns 1..total, one entry per rendered page control.
func PageNumbers(total int) []int {
	pages := make([]int, total)
	for i := range pages {
		pages[i] = i + 1
	}
	return pages
}
