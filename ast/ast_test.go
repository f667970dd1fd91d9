package ast

import (
	"strings"
	"testing"

	"github.com/teleivo/assertive/assert"
	"github.com/teleivo/assertive/require"

	"github.com/arjunmenon/jsfmt/options"
)

func TestFormatSourceFitsFlat(t *testing.T) {
	opts := options.NewFormatOptions()
	got, err := FormatSource(`const a = 1;`, opts)
	require.NoErrorf(t, err, "FormatSource()")
	assert.Equalf(t, got, "const a = 1;", "FormatSource")
}

func TestFormatSourceMultipleDeclaratorsFitFlat(t *testing.T) {
	opts := options.NewFormatOptions()
	got, err := FormatSource(`const a = 1, b = 2;`, opts)
	require.NoErrorf(t, err, "FormatSource()")
	assert.Equalf(t, got, "const a = 1, b = 2;", "FormatSource")
}

func TestFormatSourceMultipleDeclaratorsBreakWhenTooLong(t *testing.T) {
	opts := options.NewFormatOptions()
	opts.LineWidth = 10
	got, err := FormatSource(`const longName = 1, anotherLongName = 2;`, opts)
	require.NoErrorf(t, err, "FormatSource()")
	assert.Truef(t, strings.Contains(got, "\n"), "expected the declarator list to break onto multiple lines, got %q", got)
	assert.Truef(t, strings.HasPrefix(got, "const longName = 1,"), "expected the first declarator to stay on the keyword's line, got %q", got)
	assert.Truef(t, strings.HasSuffix(got, "anotherLongName = 2;"), "expected the second declarator on its own line, got %q", got)
}

func TestFormatSourceExprStmt(t *testing.T) {
	opts := options.NewFormatOptions()
	got, err := FormatSource(`foo;`, opts)
	require.NoErrorf(t, err, "FormatSource()")
	assert.Equalf(t, got, "foo;", "FormatSource")
}

func TestFormatSourceAssignment(t *testing.T) {
	opts := options.NewFormatOptions()
	got, err := FormatSource(`x = 1;`, opts)
	require.NoErrorf(t, err, "FormatSource()")
	assert.Equalf(t, got, "x = 1;", "FormatSource")
}

func TestFormatSourceEmptyArray(t *testing.T) {
	opts := options.NewFormatOptions()
	got, err := FormatSource(`const a = [];`, opts)
	require.NoErrorf(t, err, "FormatSource()")
	assert.Equalf(t, got, "const a = [];", "FormatSource")
}

func TestFormatSourceArrayBreaksWhenTooLong(t *testing.T) {
	opts := options.NewFormatOptions()
	opts.LineWidth = 10
	got, err := FormatSource(`const a = [1, 2, 3];`, opts)
	require.NoErrorf(t, err, "FormatSource()")
	assert.Truef(t, strings.Contains(got, "\n"), "expected the array literal to break, got %q", got)
	assert.Truef(t, strings.HasPrefix(got, "const a = ["), "FormatSource")
	assert.Truef(t, strings.HasSuffix(got, "];"), "FormatSource")
	assert.Truef(t, strings.HasSuffix(got, ",\n];"), "expected a trailing comma before the closing bracket once the array expands (TrailingCommasAll), got %q", got)
	for _, want := range []string{"1", "2", "3"} {
		assert.Truef(t, strings.Contains(got, want), "expected element %q in output %q", want, got)
	}
}

func TestFormatSourceArrayNoTrailingCommaWhenTrailingCommasNone(t *testing.T) {
	opts := options.NewFormatOptions()
	opts.LineWidth = 10
	opts.TrailingCommas = options.TrailingCommasNone
	got, err := FormatSource(`const a = [1, 2, 3];`, opts)
	require.NoErrorf(t, err, "FormatSource()")
	assert.Truef(t, strings.Contains(got, "\n"), "expected the array literal to break, got %q", got)
	assert.Truef(t, !strings.Contains(got, ",\n];"), "expected no trailing comma when TrailingCommas is None, got %q", got)
}

func TestFormatSourceMultipleStatements(t *testing.T) {
	opts := options.NewFormatOptions()
	got, err := FormatSource("const a = 1;\nfoo;", opts)
	require.NoErrorf(t, err, "FormatSource()")
	assert.Equalf(t, got, "const a = 1;\nfoo;", "FormatSource")
}

func TestFormatSourceRejectsMissingSemicolon(t *testing.T) {
	_, err := FormatSource(`const a = 1`, options.NewFormatOptions())
	assert.Truef(t, err != nil, "expected an error for a missing semicolon")
}

func TestParseStringLiteral(t *testing.T) {
	prog, err := Parse(`const s = "hi";`)
	require.NoErrorf(t, err, "Parse()")
	require.Equalf(t, len(prog.Stmts), 1, "len(Stmts)")
	decl, ok := prog.Stmts[0].(*VarDecl)
	require.Truef(t, ok, "expected a *VarDecl")
	lit, ok := decl.Declarators[0].Init.(*StringLit)
	require.Truef(t, ok, "expected a *StringLit initializer")
	assert.Equalf(t, lit.Raw, `"hi"`, "StringLit.Raw")
}
