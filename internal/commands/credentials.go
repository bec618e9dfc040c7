package commands

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
)

// EnvPassword supplies the password when --password is omitted.
const EnvPassword = "TASKGENIE_PASSWORD"

var validate = validator.New()

type credentials struct {
	Name     string `validate:"omitempty,max=100"`
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

// check validates the credentials; register additionally requires a name.
func (c *credentials) check(needName bool) error {
	c.Name = strings.TrimSpace(c.Name)
	c.Email = strings.TrimSpace(c.Email)
	if c.Password == "" {
		c.Password = os.Getenv(EnvPassword)
	}
	if needName && c.Name == "" {
		return errors.New("name required")
	}

	err := validate.Struct(c)
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	switch fe := verrs[0]; fe.Field() {
	case "Email":
		if fe.Tag() == "required" {
			return errors.New("email required")
		}
		return fmt.Errorf("invalid email: %s", c.Email)
	case "Password":
		return fmt.Errorf("password required (use --password or %s)", EnvPassword)
	case "Name":
		return errors.New("name too long")
	}
	return err
}
