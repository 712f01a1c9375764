package registration

import (
	"io"

	"github.com/charmbracelet/huh"
)

// Genders offered by the interactive form. The empty value stands for
// "not selected".
var Genders = []huh.Option[string]{
	huh.NewOption("Select...", ""),
	huh.NewOption("Female", "female"),
	huh.NewOption("Male", "male"),
	huh.NewOption("Other", "other"),
}

// Countries offered by the interactive form.
var Countries = []huh.Option[string]{
	huh.NewOption("Select...", ""),
	huh.NewOption("Indonesia", "Indonesia"),
	huh.NewOption("Germany", "Germany"),
	huh.NewOption("Japan", "Japan"),
	huh.NewOption("United States", "United States"),
	huh.NewOption("Other", "Other"),
}

// NewForm builds an interactive form writing its answers into f.
//
// Fields are not validated while typing; Validate runs on the whole form
// once it is submitted, so every failing check is reported together.
// The password input never echoes what is typed.
func NewForm(f *Form) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Full Name").Value(&f.FullName),
			huh.NewInput().Title("Email").Value(&f.Email),
			huh.NewInput().Title("Password").EchoMode(huh.EchoModePassword).Value(&f.Password),
			huh.NewInput().Title("Age").Value(&f.Age),
		),
		huh.NewGroup(
			huh.NewSelect[string]().Title("Gender").Options(Genders...).Value(&f.Gender),
			huh.NewSelect[string]().Title("Country").Options(Countries...).Value(&f.Country),
			huh.NewConfirm().Title("I agree to the Terms and Conditions").Value(&f.Terms),
		),
	)
}

// Run collects the form interactively and validates it.
//
// in and out may be nil to use the terminal.
func Run(in io.Reader, out io.Writer) (Result, error) {
	var f Form
	form := NewForm(&f)
	if in != nil {
		form = form.WithInput(in)
	}
	if out != nil {
		form = form.WithOutput(out)
	}

	if err := form.Run(); err != nil {
		return Result{}, err
	}
	return Validate(f), nil
}
