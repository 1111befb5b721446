package audit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvp-joe/testable-docs/internal/docs"
)

// Test Plan for Audit:
// - Fully documented classes produce no findings
// - Missing class comment and description are both reported
// - Method and parameter gaps are reported under the method check
// - Labels carry visibility, name and relative path
// - SkipPrivate drops private classes and methods
// - FailedChecks counts distinct failing checks

func documentedClass() *docs.ClassDefinition {
	return &docs.ClassDefinition{
		Name:        "Shape",
		FilePath:    "/repo/lib/shape.js",
		RootPath:    "/repo",
		HasComment:  true,
		Description: "A shape.",
		Methods: []*docs.Method{
			{
				Name:        "scale",
				HasComment:  true,
				Description: "Scales the shape.",
				Parameters: []*docs.Parameter{
					{Name: "factor", Kind: docs.ParameterSimple, HasComment: true, Description: "the factor"},
				},
			},
		},
	}
}

func TestAudit_DocumentedClassPasses(t *testing.T) {
	t.Parallel()

	report := Audit([]*docs.ClassDefinition{documentedClass()}, Options{})

	assert.True(t, report.Passed())
	assert.Equal(t, 1, report.Classes)
	assert.Equal(t, 1, report.Methods)
	assert.Equal(t, 1, report.Parameters)
	assert.Equal(t, 2, report.Checks)
	assert.Empty(t, report.Findings)
}

func TestAudit_ReportsMissingClassDocumentation(t *testing.T) {
	t.Parallel()

	c := documentedClass()
	c.HasComment = false
	c.Description = ""

	report := Audit([]*docs.ClassDefinition{c}, Options{})

	require.Len(t, report.Findings, 2)
	assert.Equal(t, "Public Class Shape (lib/shape.js)", report.Findings[0].Section)
	assert.Equal(t, ClassCheck, report.Findings[0].Check)
	assert.Equal(t, MissingClassComment, report.Findings[0].Problem)
	assert.Equal(t, "Missing comments for class!", report.Findings[0].Message)
	assert.Equal(t, MissingClassDescription, report.Findings[1].Problem)
	assert.Equal(t, 1, report.FailedChecks())
}

func TestAudit_ReportsMethodAndParameterGaps(t *testing.T) {
	t.Parallel()

	c := documentedClass()
	c.Private = true
	m := c.Methods[0]
	m.Private = true
	m.Description = ""
	m.Parameters = append(m.Parameters, &docs.Parameter{Name: "origin", Kind: docs.ParameterSimple})

	report := Audit([]*docs.ClassDefinition{c}, Options{})

	require.Len(t, report.Findings, 3)
	for _, f := range report.Findings {
		assert.Equal(t, "Private Class Shape (lib/shape.js)", f.Section)
		assert.Equal(t, "Private Method scale", f.Check)
	}
	assert.Equal(t, MissingMethodDescription, report.Findings[0].Problem)
	assert.Equal(t, MissingParameterComment, report.Findings[1].Problem)
	assert.Equal(t, "Missing comment for the parameter origin!", report.Findings[1].Message)
	assert.Equal(t, MissingParameterDescription, report.Findings[2].Problem)
	assert.Equal(t, 1, report.FailedChecks())
	assert.Equal(t, "Private Class Shape (lib/shape.js) > Private Method scale: Missing description for method!", report.Findings[0].String())
}

func TestAudit_SkipPrivate(t *testing.T) {
	t.Parallel()

	private := documentedClass()
	private.Name = "Hidden"
	private.Private = true
	private.HasComment = false

	public := documentedClass()
	public.Methods = append(public.Methods, &docs.Method{Name: "_reset", Private: true})

	report := Audit([]*docs.ClassDefinition{private, public}, Options{SkipPrivate: true})

	assert.True(t, report.Passed())
	assert.Equal(t, 1, report.Classes)
	assert.Equal(t, 1, report.Methods)

	report = Audit([]*docs.ClassDefinition{private, public}, Options{})
	assert.False(t, report.Passed())
	assert.Equal(t, 2, report.FailedChecks())
}
