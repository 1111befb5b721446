// Package audit checks extracted documentation for completeness. Every class,
// method and parameter must carry a comment with a non-empty description.
package audit

import (
	"fmt"

	"github.com/mvp-joe/testable-docs/internal/docs"
)

// Problem identifies what a finding is missing.
type Problem string

const (
	MissingClassComment         Problem = "missing_class_comment"
	MissingClassDescription     Problem = "missing_class_description"
	MissingMethodComment        Problem = "missing_method_comment"
	MissingMethodDescription    Problem = "missing_method_description"
	MissingParameterComment     Problem = "missing_parameter_comment"
	MissingParameterDescription Problem = "missing_parameter_description"
)

// ClassCheck is the check name of the class-level comment check.
const ClassCheck = "Class comment"

// Finding is one failed check.
type Finding struct {
	Section string  `json:"section" yaml:"section"` // e.g. "Public Class Shape (lib/shape.js)"
	Check   string  `json:"check" yaml:"check"`     // "Class comment" or e.g. "Private Method area"
	Problem Problem `json:"problem" yaml:"problem"`
	Message string  `json:"message" yaml:"message"`
}

func (f Finding) String() string {
	return fmt.Sprintf("%s > %s: %s", f.Section, f.Check, f.Message)
}

// Report is the outcome of an audit.
type Report struct {
	Classes    int       `json:"classes" yaml:"classes"`
	Methods    int       `json:"methods" yaml:"methods"`
	Parameters int       `json:"parameters" yaml:"parameters"`
	Checks     int       `json:"checks" yaml:"checks"`
	Findings   []Finding `json:"findings" yaml:"findings"`
}

// Passed reports whether every check passed.
func (r *Report) Passed() bool {
	return len(r.Findings) == 0
}

// FailedChecks returns the number of distinct checks with at least one finding.
func (r *Report) FailedChecks() int {
	seen := map[string]bool{}
	for _, f := range r.Findings {
		seen[f.Section+"\x00"+f.Check] = true
	}
	return len(seen)
}

// Options tunes an audit.
type Options struct {
	SkipPrivate bool // ignore private classes and private methods
}

// Audit runs one check per class and one per method. A method check covers
// its parameters. Unlike an assertion, a check keeps going after the first
// problem so every gap is reported.
func Audit(classes []*docs.ClassDefinition, opts Options) *Report {
	report := &Report{Findings: []Finding{}}

	for _, c := range classes {
		if opts.SkipPrivate && c.Private {
			continue
		}
		report.Classes++

		section := fmt.Sprintf("%s Class %s (%s)", visibility(c.Private), c.Name, c.Path())

		report.Checks++
		if !c.HasComment {
			report.add(section, ClassCheck, MissingClassComment, "Missing comments for class!")
		}
		if c.Description == "" {
			report.add(section, ClassCheck, MissingClassDescription, "Missing description for class!")
		}

		for _, m := range c.Methods {
			if opts.SkipPrivate && m.Private {
				continue
			}
			report.Methods++
			report.Checks++
			auditMethod(report, section, m)
		}
	}

	return report
}

func auditMethod(report *Report, section string, m *docs.Method) {
	check := fmt.Sprintf("%s Method %s", visibility(m.Private), m.Name)

	if !m.HasComment {
		report.add(section, check, MissingMethodComment, "Missing comments for method!")
	}
	if m.Description == "" {
		report.add(section, check, MissingMethodDescription, "Missing description for method!")
	}

	for _, p := range m.Parameters {
		report.Parameters++
		if !p.HasComment {
			report.add(section, check, MissingParameterComment, fmt.Sprintf("Missing comment for the parameter %s!", p.Name))
		}
		if p.Description == "" {
			report.add(section, check, MissingParameterDescription, fmt.Sprintf("Missing description for the parameter %s!", p.Name))
		}
	}
}

func (r *Report) add(section, check string, problem Problem, message string) {
	r.Findings = append(r.Findings, Finding{
		Section: section,
		Check:   check,
		Problem: problem,
		Message: message,
	})
}

func visibility(private bool) string {
	if private {
		return "Private"
	}
	return "Public"
}
