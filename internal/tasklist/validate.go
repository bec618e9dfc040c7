package tasklist

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"taskgenie/internal/service"
)

var validate = validator.New()

// editRecord carries the checks the edit form applies before submitting.
type editRecord struct {
	ID      string `validate:"required"`
	Title   string `validate:"max=200"`
	Status  string `validate:"oneof=to-do in-progress done"`
	DueDate string `validate:"omitempty,datetime=2006-01-02"`
}

// ValidateEdit checks an edited task before it is submitted. The due date,
// when present, must be YYYY-MM-DD as produced by the edit form.
func ValidateEdit(t service.Task) error {
	err := validate.Struct(editRecord{
		ID:      t.ID,
		Title:   t.Title,
		Status:  string(t.Status),
		DueDate: strings.TrimSpace(t.DueDate),
	})
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return errors.New(strings.Join(msgs, "; "))
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Field() {
	case "ID":
		return "task id required"
	case "Title":
		return "title too long"
	case "Status":
		return fmt.Sprintf("invalid status: %q (want to-do, in-progress or done)", fe.Value())
	case "DueDate":
		return fmt.Sprintf("invalid due date: %q (want YYYY-MM-DD)", fe.Value())
	}
	return fe.Error()
}
