// Package format defines the capability every AST node implements to emit IR — [Format] — and
// [Formatter], the buffer-plus-state handle adapters write through.
//
// Grounded on teleivo-dot/printer/printer.go's Printer struct (reader/writer/state bundle) and
// dot.go's ast.Node type-switch dispatch (printNode), generalized from a closed switch over DOT
// node kinds to an open capability interface any AST package can implement. The
// Argument/Arguments type erasure follows original_source/src/arguments.rs's trick of storing a
// value pointer alongside a monomorphized function pointer to avoid a vtable per call site; Go
// gets the same effect for free from a bound method value/closure, so Argument here is simply a
// closure over the typed value — no unsafe pointer casts needed, which is a simplification of
// the Rust trick rather than a dropped feature (see DESIGN.md).
package format

import (
	"github.com/arjunmenon/jsfmt/buffer"
	"github.com/arjunmenon/jsfmt/internal/element"
	"github.com/arjunmenon/jsfmt/state"
)

// Format is the single-method capability an AST node, or a builder combinator, implements to
// emit its IR into a Formatter.
type Format interface {
	Fmt(f *Formatter) error
}

// Func adapts a plain closure to Format, the equivalent of the spec's format_with/format_once
// builders: lift a client callback to an IR producer without declaring a named type.
type Func func(f *Formatter) error

func (fn Func) Fmt(f *Formatter) error { return fn(f) }

// Formatter wraps the active [buffer.Buffer] for a formatting session. AST adapters receive a
// *Formatter and call WriteElement directly or, more commonly, invoke a builder combinator
// (package builder) which writes on their behalf.
type Formatter struct {
	buf buffer.Buffer
}

// New wraps buf.
func New(buf buffer.Buffer) *Formatter {
	return &Formatter{buf: buf}
}

// Buffer returns the active buffer, e.g. so a combinator can temporarily swap in a
// RemoveSoftLinesBuffer or take a snapshot.
func (f *Formatter) Buffer() buffer.Buffer {
	return f.buf
}

// WithBuffer returns a Formatter that writes to buf instead, sharing the same session State
// (since buf itself was constructed against that State). Used by combinators that need to
// temporarily redirect writes, e.g. into a [buffer.Recording] or a [buffer.RemoveSoftLinesBuffer].
func (f *Formatter) WithBuffer(buf buffer.Buffer) *Formatter {
	return &Formatter{buf: buf}
}

// State returns the FormatState shared across this session: resolved options and the group-id
// allocator.
func (f *Formatter) State() *state.State {
	return f.buf.State()
}

// WriteElement appends a single element directly, bypassing the builder layer. Most callers
// should prefer a builder combinator; this exists for adapters emitting a handful of tokens
// where a combinator call would just add noise.
func (f *Formatter) WriteElement(e element.Element) {
	f.buf.WriteElement(e)
}

// Write formats each item in order, short-circuiting on the first error — the Go equivalent of
// the spec's `write!(f, [a, b, c])` macro. Named Write (not WriteFmt) to read naturally as
// `f.Write(text("a"), space(), text("b"))`.
func (f *Formatter) Write(items ...Format) error {
	for _, item := range items {
		if item == nil {
			continue
		}
		if err := item.Fmt(f); err != nil {
			return err
		}
	}
	return nil
}

// Argument is a type-erased formattable value, as produced by [Arg]. See the package doc for why
// Go doesn't need the Rust original's raw-pointer erasure.
type Argument struct {
	format func(f *Formatter) error
}

// Arg packages a Format value as an Argument for use in a variadic Arguments list built outside
// a single Write call, e.g. when a helper wants to accumulate formattables before deciding how
// many to emit.
func Arg(v Format) Argument {
	return Argument{format: v.Fmt}
}

func (a Argument) Fmt(f *Formatter) error { return a.format(f) }

// Arguments is a borrowed-in-spirit sequence of Argument, formatted in order by Formatter.Write.
type Arguments []Argument

func (args Arguments) Fmt(f *Formatter) error {
	for _, a := range args {
		if err := a.Fmt(f); err != nil {
			return err
		}
	}
	return nil
}
