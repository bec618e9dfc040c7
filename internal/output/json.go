package output

import (
	"encoding/json"

	"taskgenie/internal/service"
)

// Formatter turns a value into printable text.
type Formatter interface {
	Format(data any) (string, error)
}

// JSONFormatter formats values as compact JSON.
type JSONFormatter struct{}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// Format formats data as JSON.
func (f *JSONFormatter) Format(data any) (string, error) {
	bytes, err := json.Marshal(data)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// Page is the JSON shape of one page of the task list.
type Page struct {
	Filter     string         `json:"filter"`
	Page       int            `json:"page"`
	TotalPages int            `json:"totalPages"`
	Total      int            `json:"total"`
	Filtered   int            `json:"filtered"`
	Tasks      []service.Task `json:"tasks"`
}
