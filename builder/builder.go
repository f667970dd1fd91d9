// Package builder provides the combinators AST adapters call to emit IR without hand-building
// [element.Element] values: text, spaces, the line-break family, group/indent/align, best-
// fitting alternatives, line suffixes, conditional content, and fill lists.
//
// Grounded on teleivo-dot/internal/layout/layout.go's chaining builder methods (Doc.Text,
// Doc.Space, Doc.Break, Doc.Group, Doc.Indent), generalized to the spec's much larger combinator
// surface; the macro-level `best_fitting!`/`format_with` entries follow
// original_source/src/macros.rs and src/format/mod.rs (format_with/format_once wrap a closure as
// a Format, exactly what [format.Func] already does — this package just re-exports that naming
// for parity with the spec's builder list).
package builder

import (
	"github.com/arjunmenon/jsfmt/buffer"
	"github.com/arjunmenon/jsfmt/format"
	"github.com/arjunmenon/jsfmt/internal/element"
)

type fn func(f *format.Formatter) error

func (f fn) Fmt(fr *format.Formatter) error { return f(fr) }

// Text adds a compile-time string literal. Must not contain '\n'.
func Text(s string) format.Format {
	return fn(func(f *format.Formatter) error {
		f.WriteElement(element.StaticText{Text: s})
		return nil
	})
}

// DynamicText adds owned text produced at format time.
func DynamicText(s string) format.Format {
	return fn(func(f *format.Formatter) error {
		f.WriteElement(element.DynamicText{Text: s})
		return nil
	})
}

// LocatedText adds text annotated with its original source offset, for downstream source maps.
func LocatedText(s string, sourcePosition int) format.Format {
	return fn(func(f *format.Formatter) error {
		f.WriteElement(element.LocatedTokenText{Slice: s, SourcePosition: sourcePosition})
		return nil
	})
}

// Space adds exactly one unconditional space.
func Space() format.Format {
	return fn(func(f *format.Formatter) error {
		f.WriteElement(element.Space{})
		return nil
	})
}

// HardSpace behaves exactly like Space; it exists as a distinct name, matching the spec's
// builder list, for adapters that want to mark such a space at the call site. It emits the same
// element as Space, so the printer drops it just like a Space when a line break follows it
// before any other content.
func HardSpace() format.Format {
	return Space()
}

// HardLineBreak always prints a newline, regardless of the enclosing group's mode.
func HardLineBreak() format.Format {
	return line(element.LineHard)
}

// EmptyLine always prints a newline and forces the enclosing group to expand.
func EmptyLine() format.Format {
	return line(element.LineEmpty)
}

// LiteralLineBreak prints a newline that does not reset indentation/alignment, for template
// literal bodies.
func LiteralLineBreak() format.Format {
	return line(element.LineLiteral)
}

// SoftLineBreak becomes nothing when the enclosing group is flat, a newline when expanded.
func SoftLineBreak() format.Format {
	return line(element.LineSoft)
}

// SoftLineBreakOrSpace becomes a space when the enclosing group is flat, a newline when
// expanded.
func SoftLineBreakOrSpace() format.Format {
	return line(element.LineSoftOrSpace)
}

func line(mode element.LineMode) format.Format {
	return fn(func(f *format.Formatter) error {
		f.WriteElement(element.Line{Mode: mode})
		return nil
	})
}

// ExpandParentMark forces the innermost enclosing group to expanded mode. Named with the
// "Mark" suffix to avoid colliding with the element.ExpandParent type.
func ExpandParentMark() format.Format {
	return fn(func(f *format.Formatter) error {
		f.WriteElement(element.ExpandParent{})
		return nil
	})
}

// FormatWith lifts a plain closure to a Format, for one-off IR emission that doesn't warrant a
// named adapter type.
func FormatWith(write func(f *format.Formatter) error) format.Format {
	return format.Func(write)
}

// FormatOnce is an alias of FormatWith for parity with the spec's naming; both simply wrap a
// closure, there being no meaningful distinction in Go between a reusable and single-use
// closure.
func FormatOnce(write func(f *format.Formatter) error) format.Format {
	return format.Func(write)
}

// wrapped writes a StartTag, runs content, then writes the matching EndTag.
func wrapped(start element.StartTag, content format.Format) format.Format {
	return fn(func(f *format.Formatter) error {
		f.WriteElement(start)
		if content != nil {
			if err := content.Fmt(f); err != nil {
				return err
			}
		}
		f.WriteElement(element.EndTag{Kind: start.Kind})
		return nil
	})
}

// GroupBuilder builds a Group tag; obtain one via [Group] and optionally chain WithID/
// ShouldExpand before using it as a format.Format (e.g. passed to Formatter.Write).
type GroupBuilder struct {
	content      format.Format
	id           element.GroupID
	shouldExpand bool
}

// Group marks content as a single measurement unit: printed flat if it fits within the
// remaining print width, expanded across lines otherwise (or immediately, if propagate_expand
// found a hard break inside it).
func Group(content format.Format) *GroupBuilder {
	return &GroupBuilder{content: content}
}

// WithID tags this group with id so IfGroupBreaks/IfGroupFitsOnLine/IndentIfGroupBreaks
// elsewhere in the document can reference its resolved mode.
func (g *GroupBuilder) WithID(id element.GroupID) *GroupBuilder {
	g.id = id
	return g
}

// ShouldExpand forces this group to GroupExpand regardless of measurement when expand is true.
func (g *GroupBuilder) ShouldExpand(expand bool) *GroupBuilder {
	g.shouldExpand = expand
	return g
}

func (g *GroupBuilder) Fmt(f *format.Formatter) error {
	mode := element.GroupFlat
	if g.shouldExpand {
		mode = element.GroupExpand
	}
	start := element.StartTag{Kind: element.TagGroup, GroupMode: mode, ID: g.id}
	return wrapped(start, g.content).Fmt(f)
}

// Indent increases indentation for content by one level.
func Indent(content format.Format) format.Format {
	return wrapped(element.StartTag{Kind: element.TagIndent}, content)
}

// Dedent decreases indentation for content by one level.
func Dedent(content format.Format) format.Format {
	return wrapped(element.StartTag{Kind: element.TagDedent}, content)
}

// Align adds n columns of sticky alignment (not a tab-stop level) for content.
func Align(n int, content format.Format) format.Format {
	return wrapped(element.StartTag{Kind: element.TagAlign, AlignColumns: n}, content)
}

// IndentIfGroupBreaks indents content by one level only if the group identified by id resolves
// to expanded.
func IndentIfGroupBreaks(content format.Format, id element.GroupID) format.Format {
	return wrapped(element.StartTag{Kind: element.TagIndentIfGroupBreaks, IndentIfGroupBreaksID: id}, content)
}

// IfGroupBreaks emits content only when the referenced group (or, if id is the zero value, the
// innermost enclosing group) is expanded.
func IfGroupBreaks(content format.Format, id element.GroupID) format.Format {
	return wrapped(element.StartTag{
		Kind:                      element.TagConditionalContent,
		ConditionalContentMode:    element.GroupExpand,
		ConditionalContentGroupID: id,
	}, content)
}

// IfGroupFitsOnLine emits content only when the referenced group (or the innermost enclosing
// group, if id is the zero value) is flat.
func IfGroupFitsOnLine(content format.Format, id element.GroupID) format.Format {
	return wrapped(element.StartTag{
		Kind:                      element.TagConditionalContent,
		ConditionalContentMode:    element.GroupFlat,
		ConditionalContentGroupID: id,
	}, content)
}

// LineSuffix defers content until the end of the current output line (typically a trailing
// comment).
func LineSuffix(content format.Format) format.Format {
	return wrapped(element.StartTag{Kind: element.TagLineSuffix}, content)
}

// LineSuffixBoundary flushes any queued line suffixes immediately, printing them inline rather
// than waiting for the next newline. A no-op if nothing is queued.
func LineSuffixBoundary() format.Format {
	return fn(func(f *format.Formatter) error {
		f.WriteElement(element.StartTag{Kind: element.TagLineSuffixBoundary})
		f.WriteElement(element.EndTag{Kind: element.TagLineSuffixBoundary})
		return nil
	})
}

// Label attaches a semantic label to content for client queries over the finished document; it
// is a no-op at print time.
func Label(id int, content format.Format) format.Format {
	return wrapped(element.StartTag{Kind: element.TagLabel, LabelID: id}, content)
}

// VerbatimRange copies content's output unchanged, bypassing column-accounting transforms
// (tabs/alignment); used for suppressed regions that must be reproduced byte-for-byte.
func VerbatimRange(content format.Format) format.Format {
	return wrapped(element.StartTag{Kind: element.TagVerbatimRange}, content)
}

// captureElements renders content against a throwaway buffer sharing f's State and returns the
// elements it wrote, used by BestFitting/ConditionalGroup to build their variant lists without
// polluting the enclosing document before the choice between variants is made.
func captureElements(f *format.Formatter, content format.Format) ([]element.Element, error) {
	vb := buffer.NewVecBuffer(f.State())
	variantFormatter := f.WithBuffer(vb)
	if content != nil {
		if err := content.Fmt(variantFormatter); err != nil {
			return nil, err
		}
	}
	return vb.Finish(), nil
}

// BestFitting picks the first of variants whose flat projection fits the remaining print width;
// the last variant is always accepted verbatim (unmeasured) even if it overflows. variants must
// be ordered from most-flat to least-flat and must contain at least two entries.
func BestFitting(variants ...format.Format) format.Format {
	return fn(func(f *format.Formatter) error {
		if len(variants) < 2 {
			panic("builder.BestFitting: requires at least 2 variants")
		}
		elementVariants := make([][]element.Element, len(variants))
		for i, v := range variants {
			els, err := captureElements(f, v)
			if err != nil {
				return err
			}
			elementVariants[i] = els
		}
		f.WriteElement(element.BestFitting{Variants: elementVariants})
		return nil
	})
}

// ConditionalGroup picks the first of variants whose flat projection fits, like BestFitting, but
// its fallback variant is measured and printed like an ordinary Group rather than accepted
// verbatim.
func ConditionalGroup(variants ...format.Format) format.Format {
	return fn(func(f *format.Formatter) error {
		if len(variants) < 2 {
			panic("builder.ConditionalGroup: requires at least 2 variants")
		}
		elementVariants := make([][]element.Element, len(variants))
		for i, v := range variants {
			els, err := captureElements(f, v)
			if err != nil {
				return err
			}
			elementVariants[i] = els
		}
		f.WriteElement(element.ConditionalGroup{Variants: elementVariants})
		return nil
	})
}

// Fill lays out entries separated by separator, breaking only between the entries that don't
// fit on the current line (alternating-break list semantics), e.g. array elements that should
// pack multiple-per-line rather than one-per-line.
func Fill(separator format.Format, entries ...format.Format) format.Format {
	return fn(func(f *format.Formatter) error {
		f.WriteElement(element.StartTag{Kind: element.TagFill})
		for i, entry := range entries {
			if i > 0 && separator != nil {
				f.WriteElement(element.StartTag{Kind: element.TagFillEntry})
				if err := separator.Fmt(f); err != nil {
					return err
				}
				f.WriteElement(element.EndTag{Kind: element.TagFillEntry})
			}
			f.WriteElement(element.StartTag{Kind: element.TagFillEntry})
			if entry != nil {
				if err := entry.Fmt(f); err != nil {
					return err
				}
			}
			f.WriteElement(element.EndTag{Kind: element.TagFillEntry})
		}
		f.WriteElement(element.EndTag{Kind: element.TagFill})
		return nil
	})
}

// Concat formats each item in order; it is the Go equivalent of bundling multiple formattables
// inside one write!(...) call.
func Concat(items ...format.Format) format.Format {
	return fn(func(f *format.Formatter) error {
		for _, item := range items {
			if item == nil {
				continue
			}
			if err := item.Fmt(f); err != nil {
				return err
			}
		}
		return nil
	})
}

// Interned references the shared sub-document held by in: every call with the same *interner
// re-emits an [element.InternedRef] to the same underlying [element.Interned], so repeated
// references share one allocation. Build in once via [NewInterned] and call Interned at every
// call site that needs it.
func Interned(in *interner) format.Format {
	return fn(func(f *format.Formatter) error {
		handle, err := in.get(f)
		if err != nil {
			return err
		}
		f.WriteElement(element.InternedRef{Ref: handle})
		return nil
	})
}

// interner lazily renders its content the first time it's asked for and caches the resulting
// *element.Interned for subsequent Fmt calls, so a sub-document built once and referenced from
// many call sites is interned rather than re-emitted.
type interner struct {
	content format.Format
	handle  *element.Interned
}

// NewInterned returns a reusable handle wrapping content: the first call to [Interned] with the
// returned handle renders content once; every later call (even from a different Formatter within
// the same document) reuses the cached *element.Interned by pointer.
func NewInterned(content format.Format) *interner {
	return &interner{content: content}
}

func (n *interner) get(f *format.Formatter) (*element.Interned, error) {
	if n.handle != nil {
		return n.handle, nil
	}
	els, err := captureElements(f, n.content)
	if err != nil {
		return nil, err
	}
	n.handle = &element.Interned{Elements: els}
	return n.handle, nil
}
