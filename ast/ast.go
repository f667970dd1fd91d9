// Package ast holds a minimal JS-like node set that exercises the builder/printer stack end to
// end, plus [FormatSource], the top-level entry point that turns source text into formatted
// text.
//
// Parsing proper is out of scope for the core pretty-printer; this package's scanner and parser
// are deliberately small, covering only the constructs the running examples need: const/let
// declarations with one or more declarators, expression statements, identifiers, numeric and
// string literals, array literals, and assignment. Grounded on teleivo-dot/ast/ast.go's Node
// wrapper types (String/Start/End, a closed Stmt interface with an unexported marker method) and
// teleivo-dot/dot.go's top-level Parse-then-Print pipeline, generalized so that a Node formats
// itself via [format.Format] instead of a type-switch dispatcher.
package ast

import (
	"github.com/arjunmenon/jsfmt/buffer"
	"github.com/arjunmenon/jsfmt/builder"
	"github.com/arjunmenon/jsfmt/document"
	"github.com/arjunmenon/jsfmt/format"
	"github.com/arjunmenon/jsfmt/internal/element"
	"github.com/arjunmenon/jsfmt/options"
	"github.com/arjunmenon/jsfmt/printer"
	"github.com/arjunmenon/jsfmt/state"
)

// Node is any formattable construct in the tree: a [Program], a [Stmt], or an [Expr].
type Node interface {
	format.Format
}

// Stmt nodes implement Stmt.
type Stmt interface {
	Node
	stmtNode()
}

// Expr nodes implement Expr.
type Expr interface {
	Node
	exprNode()
}

// Program is the root of a parsed source file: a flat list of top-level statements separated by
// hard line breaks.
type Program struct {
	Stmts []Stmt
}

func (p *Program) Fmt(f *format.Formatter) error {
	for i, stmt := range p.Stmts {
		if i > 0 {
			if err := builder.HardLineBreak().Fmt(f); err != nil {
				return err
			}
		}
		if err := stmt.Fmt(f); err != nil {
			return err
		}
	}
	return nil
}

// DeclKind distinguishes const from let.
type DeclKind int

const (
	DeclConst DeclKind = iota
	DeclLet
)

func (k DeclKind) String() string {
	if k == DeclLet {
		return "let"
	}
	return "const"
}

// Declarator is one `name` or `name = init` binding within a [VarDecl].
type Declarator struct {
	Name string
	Init Expr // nil if the declarator has no initializer
}

// VarDecl is a `const`/`let` declaration with one or more comma-separated declarators, e.g.
// `const a = 1, b = 2;`. Multiple declarators are grouped so the whole declaration stays flat
// when it fits; otherwise they fill, breaking before a declarator only where it would overflow
// the line, with every declarator after the first indented one level under the keyword.
type VarDecl struct {
	Kind        DeclKind
	Declarators []Declarator
}

func (*VarDecl) stmtNode() {}

func (d *VarDecl) Fmt(f *format.Formatter) error {
	parts := make([]format.Format, 0, len(d.Declarators))
	for i, decl := range d.Declarators {
		part := declaratorFormat(decl)
		if i > 0 {
			part = builder.Indent(part)
		}
		parts = append(parts, part)
	}
	body := builder.Fill(commaSeparator(), parts...)
	return builder.Group(builder.Concat(
		builder.Text(d.Kind.String()),
		builder.Space(),
		body,
		builder.Text(";"),
	)).Fmt(f)
}

func declaratorFormat(decl Declarator) format.Format {
	if decl.Init == nil {
		return builder.Text(decl.Name)
	}
	return builder.Concat(
		builder.Text(decl.Name),
		builder.Space(),
		builder.Text("="),
		builder.Space(),
		decl.Init,
	)
}

func commaSeparator() format.Format {
	return builder.Concat(builder.Text(","), builder.SoftLineBreakOrSpace())
}

// ExprStmt is a bare expression followed by a semicolon, e.g. `foo();`.
type ExprStmt struct {
	Expr Expr
}

func (*ExprStmt) stmtNode() {}

func (s *ExprStmt) Fmt(f *format.Formatter) error {
	return format.Arguments{format.Arg(s.Expr), format.Arg(builder.Text(";"))}.Fmt(f)
}

// Ident is a bare identifier reference.
type Ident struct {
	Name string
}

func (*Ident) exprNode() {}

func (i *Ident) Fmt(f *format.Formatter) error {
	return builder.Text(i.Name).Fmt(f)
}

// NumberLit is a numeric literal, printed verbatim from the source text.
type NumberLit struct {
	Literal string
}

func (*NumberLit) exprNode() {}

func (n *NumberLit) Fmt(f *format.Formatter) error {
	return builder.DynamicText(n.Literal).Fmt(f)
}

// StringLit is a string literal. Quote normalization is a language-specific formatting rule out
// of this package's scope, so Raw is reproduced exactly as scanned, quotes included.
type StringLit struct {
	Raw string
}

func (*StringLit) exprNode() {}

func (s *StringLit) Fmt(f *format.Formatter) error {
	return builder.DynamicText(s.Raw).Fmt(f)
}

// ArrayLit is an `[elem, elem, ...]` literal. Empty arrays always print as `[]`; any other array
// stays on one line when it fits and otherwise breaks inside the brackets, its elements filling,
// breaking only where an element would overflow the line.
type ArrayLit struct {
	Elements []Expr
}

func (*ArrayLit) exprNode() {}

func (a *ArrayLit) Fmt(f *format.Formatter) error {
	if len(a.Elements) == 0 {
		return builder.Text("[]").Fmt(f)
	}
	parts := make([]format.Format, 0, len(a.Elements))
	for _, el := range a.Elements {
		parts = append(parts, el)
	}
	var trailingComma format.Format
	if f.State().Options().TrailingCommas != options.TrailingCommasNone {
		trailingComma = builder.IfGroupBreaks(builder.Text(","), element.GroupID{})
	}
	inner := builder.Concat(
		builder.SoftLineBreak(),
		builder.Fill(commaSeparator(), parts...),
		trailingComma,
	)
	return builder.Group(builder.Concat(
		builder.Text("["),
		builder.Indent(inner),
		builder.SoftLineBreak(),
		builder.Text("]"),
	)).Fmt(f)
}

// AssignExpr is `target = value`.
type AssignExpr struct {
	Target *Ident
	Value  Expr
}

func (*AssignExpr) exprNode() {}

func (e *AssignExpr) Fmt(f *format.Formatter) error {
	return builder.Group(builder.Concat(
		e.Target,
		builder.Space(),
		builder.Text("="),
		builder.Space(),
		e.Value,
	)).Fmt(f)
}

// FormatSource parses sourceText as the minimal JS subset this package supports and renders it
// back out formatted according to opts. It is the Go equivalent of
// original_source/src/formatter.rs's top-level format entry point, wired through this repo's own
// scan -> parse -> Fmt -> Document -> Printer pipeline instead of oxc's AST.
func FormatSource(sourceText string, opts options.FormatOptions) (string, error) {
	if err := opts.Validate(); err != nil {
		return "", err
	}
	prog, err := Parse(sourceText)
	if err != nil {
		return "", format.NewSyntaxError(err)
	}
	return Format(prog, opts)
}

// Format renders prog according to opts, driving the builder -> Document -> Printer pipeline
// directly over an already-built tree. Exported alongside [FormatSource] so callers that build
// or mutate a [Program] programmatically (e.g. cmd/jsfmtfuzz's random small ASTs) don't have to
// round-trip through source text just to reach the formatter.
func Format(prog *Program, opts options.FormatOptions) (string, error) {
	if err := opts.Validate(); err != nil {
		return "", err
	}

	st := state.New(opts)
	vb := buffer.NewVecBuffer(st)
	fr := format.New(vb)
	if err := prog.Fmt(fr); err != nil {
		return "", format.NewInvalidDocumentError("building document", err)
	}

	doc := document.New(vb.Finish())
	doc.PropagateExpand()

	out, err := printer.Print(doc, opts.AsPrinterOptions())
	if err != nil {
		return "", format.NewPrintWriteFailure(err)
	}
	return out, nil
}
