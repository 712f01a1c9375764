// Package registration validates the user registration form and collects
// it interactively.
package registration

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FailureTitle heads the error list of a failed registration.
const FailureTitle = "Registration Failed"

// formValidate is shared by all forms; validator caches struct metadata.
var formValidate = validator.New(validator.WithRequiredStructEnabled())

// messages maps struct fields to their error message. Validator reports
// failures in field declaration order, which is the order shown to users.
var messages = map[string]string{
	"FullName": "Full Name is required.",
	"Email":    "Email is required.",
	"Password": "Password is required.",
	"Gender":   "Gender must be selected.",
	"Country":  "Country is required.",
	"Terms":    "You must agree to the Terms and Conditions.",
}

// Form holds the registration inputs.
type Form struct {
	FullName string `validate:"required"`
	Email    string `validate:"required"`
	Password string `validate:"required"`
	Age      string
	Gender   string `validate:"required"`
	Country  string `validate:"required"`
	Terms    bool   `validate:"required"`
}

// Trimmed returns a copy of f with surrounding whitespace removed from
// every text field.
func (f Form) Trimmed() Form {
	f.FullName = strings.TrimSpace(f.FullName)
	f.Email = strings.TrimSpace(f.Email)
	f.Password = strings.TrimSpace(f.Password)
	f.Age = strings.TrimSpace(f.Age)
	f.Gender = strings.TrimSpace(f.Gender)
	f.Country = strings.TrimSpace(f.Country)
	return f
}

// Result is the outcome of a registration attempt.
type Result struct {
	OK bool

	// Errors lists the failed checks in form order. Empty when OK.
	Errors []string

	// Message greets the user on success. It never contains the password.
	Message string
}

// String renders the result the way it is shown to the user.
func (r Result) String() string {
	if r.OK {
		return r.Message
	}

	var b strings.Builder
	b.WriteString(FailureTitle)
	for _, msg := range r.Errors {
		b.WriteString("\n  - ")
		b.WriteString(msg)
	}
	return b.String()
}

// Validate checks the trimmed form.
func Validate(f Form) Result {
	f = f.Trimmed()

	err := formValidate.Struct(f)
	if err == nil {
		return Result{
			OK:      true,
			Message: fmt.Sprintf("Hello %s! You registered with email %s. Your form has been successfully submitted.", f.FullName, f.Email),
		}
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return Result{Errors: []string{err.Error()}}
	}

	res := Result{Errors: make([]string, 0, len(fieldErrs))}
	for _, fe := range fieldErrs {
		msg, ok := messages[fe.StructField()]
		if !ok {
			msg = fe.Error()
		}
		res.Errors = append(res.Errors, msg)
	}
	return res
}
