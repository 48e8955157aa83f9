package wiki

import (
	"fmt"

	"github.com/charmbracelet/log"
)

// Document variable keys every result carries.
const (
	VarTitle   = "title"
	VarAuthor  = "author"
	VarContent = "content"
)

// Result is the outcome of compiling one document: its variables, with the
// assembled output under "content", and any recoverable problems.
type Result struct {
	Vars     map[string]string
	Warnings []string // any warnings generated while compiling

	logger *log.Logger
}

func newResult(logger *log.Logger) *Result {
	return &Result{
		Vars: map[string]string{
			VarTitle:  "",
			VarAuthor: "",
		},
		logger: logger,
	}
}

// AddWarning logs a warning and stores it in the result.
func (r *Result) AddWarning(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	r.Warnings = append(r.Warnings, msg)
	if r.logger != nil {
		r.logger.Warn(msg)
	}
}

// Title returns the @title variable.
func (r *Result) Title() string { return r.Vars[VarTitle] }

// Author returns the @author variable.
func (r *Result) Author() string { return r.Vars[VarAuthor] }

// Content returns the compiled document body.
func (r *Result) Content() string { return r.Vars[VarContent] }
