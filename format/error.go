package format

import "fmt"

// ErrorKind classifies a [FormatError]. Grounded on the spec's error taxonomy (§7). The document
// and printer packages never construct a FormatError themselves; ast.FormatSource and ast.Format
// assign the kind by the pipeline stage that failed (parsing, building the document, printing).
type ErrorKind int

const (
	// InvalidDocument means building the Document failed: ast.Format reports it when an AST
	// node's Fmt returns an error. Always fatal for the session. Unbalanced Start/End tags are
	// not reported through it (document.New panics on them), nor is a reference to an unknown
	// GroupID (the printer falls back to the ambient group mode) or a ConditionalContent that
	// can never resolve (not checked).
	InvalidDocument ErrorKind = iota
	// SyntaxError means the source text could not be parsed into an AST.
	SyntaxError
	// PrintWriteFailure means the printer's measure/layout/render pass itself failed, as opposed
	// to producing a document that was merely invalid.
	PrintWriteFailure
)

func (k ErrorKind) String() string {
	switch k {
	case SyntaxError:
		return "syntax error"
	case PrintWriteFailure:
		return "print failure"
	default:
		return "invalid document"
	}
}

// FormatError is the error type returned by a top-level formatting entry point such as
// [github.com/arjunmenon/jsfmt/ast.FormatSource]. It reports which stage of the pipeline failed
// (Kind) and wraps the underlying cause so callers can still errors.As/errors.Is against it,
// following teleivo-dot/parser.go's own Error type (position + message, Error() string), extended
// with Unwrap since FormatError wraps a cause rather than being one itself.
type FormatError struct {
	Kind   ErrorKind
	Reason string
	Err    error
}

// NewInvalidDocumentError reports a failure while building a Document. reason names the failing
// step (ast.Format passes "building document").
func NewInvalidDocumentError(reason string, cause error) *FormatError {
	return &FormatError{Kind: InvalidDocument, Reason: reason, Err: cause}
}

// NewSyntaxError wraps a parse failure from an AST adapter's own parser.
func NewSyntaxError(cause error) *FormatError {
	return &FormatError{Kind: SyntaxError, Err: cause}
}

// NewPrintWriteFailure wraps a failure from the printer's own measure/layout/render pass.
func NewPrintWriteFailure(cause error) *FormatError {
	return &FormatError{Kind: PrintWriteFailure, Err: cause}
}

func (e *FormatError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

// Unwrap exposes the underlying cause for errors.As/errors.Is.
func (e *FormatError) Unwrap() error {
	return e.Err
}
