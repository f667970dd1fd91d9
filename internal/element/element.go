// Package element defines the tagged-variant IR node that [document.Document] is built from.
//
// An [Element] is one of a closed set of concrete types, mirroring the teacher's own
// tag/text/space/newlines/group/indentation sum type in
// internal/layout/layout.go, generalized to the richer variant set a full Prettier-style
// printer needs: typed text, the five line-break flavors, group/indent/align/conditional tags,
// best-fitting alternatives, and interned sub-documents.
//
// Every Element implements the unexported elem() marker so that only types declared in this
// package can satisfy the interface, the same closed-sum trick the teacher uses for its `tag`
// interface.
package element

import "github.com/arjunmenon/jsfmt/internal/assert"

// Element is one node of the document IR. See the package doc for the closed set of concrete
// types.
type Element interface {
	elem()
}

// StaticText is a text literal known at compile time by the AST adapter. It must not contain
// '\n' — use Line for line breaks.
type StaticText struct {
	Text string
}

func (StaticText) elem() {}

// DynamicText is owned text produced at format time from the source (e.g. a reformatted
// numeric literal or a string with escapes rewritten).
type DynamicText struct {
	Text string
}

func (DynamicText) elem() {}

// LocatedTokenText is text carrying the offset of the token it was copied from in the original
// source, for downstream source-map construction. The core printer treats it exactly like
// DynamicText; only the adapters and source-map consumers care about SourcePosition.
type LocatedTokenText struct {
	Slice          string
	SourcePosition int
}

func (LocatedTokenText) elem() {}

// Space is exactly one unconditional space.
type Space struct{}

func (Space) elem() {}

// LineMode selects how a Line element behaves depending on its enclosing group's resolved mode.
type LineMode int

const (
	// LineHard always prints a newline, regardless of group mode.
	LineHard LineMode = iota
	// LineEmpty always prints a newline and forces the enclosing group to expand; printed as a
	// blank line when the enclosing group is expanded.
	LineEmpty
	// LineLiteral prints a newline that does not reset the current indentation/alignment, used
	// inside template literals whose contents must be preserved verbatim.
	LineLiteral
	// LineSoft becomes nothing when the enclosing group is flat, a newline when expanded.
	LineSoft
	// LineSoftOrSpace becomes a space when the enclosing group is flat, a newline when expanded.
	LineSoftOrSpace
)

func (m LineMode) String() string {
	switch m {
	case LineHard:
		return "Hard"
	case LineEmpty:
		return "Empty"
	case LineLiteral:
		return "Literal"
	case LineSoft:
		return "Soft"
	case LineSoftOrSpace:
		return "SoftOrSpace"
	default:
		return "invalid LineMode"
	}
}

// Line is a conditional or unconditional line break; see LineMode.
type Line struct {
	Mode LineMode
}

func (Line) elem() {}

// ExpandParent forces the innermost enclosing group to expanded mode. It prints nothing itself;
// it is consumed entirely by the propagate-expand pre-pass.
type ExpandParent struct{}

func (ExpandParent) elem() {}

// GroupMode is the resolved (or forced) rendering mode of a Group tag.
type GroupMode int

const (
	// GroupFlat prints the group's content on one line. This is the mode the printer measures
	// towards; it is overridden to Expand if the measurement overflows print_width.
	GroupFlat GroupMode = iota
	// GroupExpand always prints the group broken across lines, regardless of fit.
	GroupExpand
	// GroupPropagated means propagate_expand found a hard break or an already-expanded child
	// inside this group and forced it to expand without needing to measure it.
	GroupPropagated
)

func (m GroupMode) String() string {
	switch m {
	case GroupFlat:
		return "Flat"
	case GroupExpand:
		return "Expand"
	case GroupPropagated:
		return "Propagated"
	default:
		return "invalid GroupMode"
	}
}

// IsFlat reports whether a group is to be measured/printed as flat, i.e. has not been forced
// to expand by propagate_expand or an explicit should_expand(true).
func (m GroupMode) IsFlat() bool {
	return m == GroupFlat
}

// TagKind identifies which balanced start/end pair a Tag element belongs to.
type TagKind int

const (
	TagGroup TagKind = iota
	TagIndent
	TagDedent
	TagAlign
	TagIndentIfGroupBreaks
	TagLineSuffix
	TagLineSuffixBoundary
	TagConditionalContent
	TagFill
	TagFillEntry
	TagLabel
	TagVerbatimRange
)

func (k TagKind) String() string {
	switch k {
	case TagGroup:
		return "Group"
	case TagIndent:
		return "Indent"
	case TagDedent:
		return "Dedent"
	case TagAlign:
		return "Align"
	case TagIndentIfGroupBreaks:
		return "IndentIfGroupBreaks"
	case TagLineSuffix:
		return "LineSuffix"
	case TagLineSuffixBoundary:
		return "LineSuffixBoundary"
	case TagConditionalContent:
		return "ConditionalContent"
	case TagFill:
		return "Fill"
	case TagFillEntry:
		return "FillEntry"
	case TagLabel:
		return "Label"
	case TagVerbatimRange:
		return "VerbatimRange"
	default:
		return "invalid TagKind"
	}
}

// GroupID is an opaque handle allocated by a per-document ID allocator (see
// internal/groupid). The zero value is the "no id" / "innermost enclosing group" sentinel.
type GroupID struct {
	value      uint32
	debugName  string
}

// NewGroupID is called only by internal/groupid's Builder; exported for that package's use
// since Go has no "friend" visibility, guarded instead by convention (constructed only there).
func NewGroupID(value uint32, debugName string) GroupID {
	assert.That(value != 0, "group id value must be non-zero, 0 is reserved for the no-id sentinel")
	return GroupID{value: value, debugName: debugName}
}

// IsValid reports whether this id was allocated (as opposed to being the zero value).
func (id GroupID) IsValid() bool {
	return id.value != 0
}

// Equal reports whether two ids have the same value; the debug name is ignored. Ids from
// different documents can be numerically equal and then compare equal, so they must never be
// compared across documents.
func (id GroupID) Equal(other GroupID) bool {
	return id.value == other.value
}

func (id GroupID) String() string {
	if id.debugName != "" {
		return id.debugName
	}
	return "group"
}

// StartTag begins a balanced tag region. Every StartTag in a finalized Document must be matched
// by an EndTag of the same Kind at the same nesting depth; [document.Document] asserts this
// after construction.
type StartTag struct {
	Kind TagKind

	// GroupMode is meaningful only when Kind == TagGroup.
	GroupMode GroupMode
	// ID is meaningful only when Kind == TagGroup; the zero value means
	// anonymous group.
	ID GroupID
	// AlignColumns is meaningful only when Kind == TagAlign.
	AlignColumns int
	// IndentIfGroupBreaksID is meaningful only when Kind == TagIndentIfGroupBreaks.
	IndentIfGroupBreaksID GroupID

	// ConditionalContentMode/ConditionalContentGroupID are meaningful only when Kind ==
	// TagConditionalContent.
	ConditionalContentMode    GroupMode // GroupFlat or GroupExpand only
	ConditionalContentGroupID GroupID

	// LabelID is meaningful only when Kind == TagLabel.
	LabelID int
}

func (StartTag) elem() {}

// EndTag closes the most recently opened, still-open StartTag of the same Kind.
type EndTag struct {
	Kind TagKind
}

func (EndTag) elem() {}

// Interned is a shared sub-document referenced by pointer identity, not by content. Every
// [InternedRef] pointing at the same *Interned shares it; Go's garbage collector is the "longest
// holder" the spec asks for, so there is no explicit release API.
type Interned struct {
	Elements []Element
}

// InternedRef is the Element variant that appears inline in a document/buffer stream and points
// at a shared Interned. Two InternedRefs are "the same interned content" iff their Ref pointers
// are equal; this is the identity the propagate-expand cache keys off of. The printer keeps no
// per-interned cache: it walks the shared content again at every reference.
type InternedRef struct {
	Ref *Interned
}

func (InternedRef) elem() {}

// BestFitting holds an ordered, non-empty list of alternative sub-documents. The printer picks
// the first variant whose flat projection fits; the last variant is always accepted verbatim
// (unmeasured) even if it does not fit. Variants are ordered from most-flat to least-flat by
// convention.
type BestFitting struct {
	Variants [][]Element
}

func (BestFitting) elem() {}

// ConditionalGroup holds an ordered, non-empty list of alternative sub-documents, like
// BestFitting, but its fallback variant is measured and printed like an ordinary Group (i.e. it
// may itself resolve some of its own nested groups to flat) rather than accepted verbatim. Used
// when every variant is a legitimate, independently-printable rendering of the same content and
// only the layout heuristic differs, e.g. picking how aggressively to break a call chain.
type ConditionalGroup struct {
	Variants [][]Element
}

func (ConditionalGroup) elem() {}

// WillBreak reports whether e, on its own, forces a containing group to break:
// a hard/empty line, an ExpandParent, text containing '\n', or any best-fitting/interned content
// that itself breaks. It does not recurse into LineSuffix content, matching the spec's
// will_break definition.
func WillBreak(e Element) bool {
	switch v := e.(type) {
	case Line:
		return v.Mode == LineHard || v.Mode == LineEmpty
	case ExpandParent:
		return true
	case StaticText:
		return containsNewline(v.Text)
	case DynamicText:
		return containsNewline(v.Text)
	case LocatedTokenText:
		return containsNewline(v.Slice)
	case InternedRef:
		return SliceWillBreak(v.Ref.Elements)
	case BestFitting:
		for _, variant := range v.Variants {
			if SliceWillBreak(variant) {
				return true
			}
		}
		return false
	case ConditionalGroup:
		for _, variant := range v.Variants {
			if SliceWillBreak(variant) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

func containsNewline(s string) bool {
	for _, r := range s {
		if r == '\n' {
			return true
		}
	}
	return false
}

// SliceWillBreak implements FormatElements.will_break over a flat element slice: true if any
// contained element forces a break, ignoring content nested inside LineSuffix tags.
func SliceWillBreak(elements []Element) bool {
	ignoreDepth := 0
	for _, e := range elements {
		switch v := e.(type) {
		case StartTag:
			if v.Kind == TagLineSuffix {
				ignoreDepth++
				continue
			}
		case EndTag:
			if v.Kind == TagLineSuffix {
				ignoreDepth--
				continue
			}
		}
		if ignoreDepth == 0 && WillBreak(e) {
			return true
		}
	}
	assert.That(ignoreDepth == 0, "unclosed LineSuffix region while scanning for breaks")
	return false
}

// MayDirectlyBreak is FormatElements.may_directly_break's weaker cousin to [WillBreak]: a cheap,
// conservative surface check for layout heuristics that don't want to pay for will_break's full
// recursion through every
// BestFitting/ConditionalGroup alternative. It agrees with WillBreak on hard breaks, ExpandParent,
// and embedded newlines, but for BestFitting/ConditionalGroup only inspects the first (most-flat)
// variant instead of every one, so it can return false where WillBreak would return true.
func MayDirectlyBreak(e Element) bool {
	switch v := e.(type) {
	case Line:
		return v.Mode == LineHard || v.Mode == LineEmpty
	case ExpandParent:
		return true
	case StaticText:
		return containsNewline(v.Text)
	case DynamicText:
		return containsNewline(v.Text)
	case LocatedTokenText:
		return containsNewline(v.Slice)
	case InternedRef:
		return SliceMayDirectlyBreak(v.Ref.Elements)
	case BestFitting:
		return len(v.Variants) > 0 && SliceMayDirectlyBreak(v.Variants[0])
	case ConditionalGroup:
		return len(v.Variants) > 0 && SliceMayDirectlyBreak(v.Variants[0])
	default:
		return false
	}
}

// SliceMayDirectlyBreak is the slice-level counterpart to [MayDirectlyBreak], following the same
// LineSuffix-ignoring walk as [SliceWillBreak].
func SliceMayDirectlyBreak(elements []Element) bool {
	ignoreDepth := 0
	for _, e := range elements {
		switch v := e.(type) {
		case StartTag:
			if v.Kind == TagLineSuffix {
				ignoreDepth++
				continue
			}
		case EndTag:
			if v.Kind == TagLineSuffix {
				ignoreDepth--
				continue
			}
		}
		if ignoreDepth == 0 && MayDirectlyBreak(e) {
			return true
		}
	}
	assert.That(ignoreDepth == 0, "unclosed LineSuffix region while scanning for breaks")
	return false
}

// StartTagOf returns the StartTag that balances the trailing EndTag of the given kind at the end
// of elements, or false if elements does not end with such a tag (mirrors the spec's
// FormatElements.start_tag / end_tag pair, used by adapters that want to inspect an
// already-built slice, e.g. to decide whether the last emitted group should be reused).
func StartTagOf(elements []Element, kind TagKind) (StartTag, bool) {
	if _, ok := EndTagOf(elements, kind); !ok {
		return StartTag{}, false
	}
	depth := 0
	for i := len(elements) - 1; i >= 0; i-- {
		switch v := elements[i].(type) {
		case StartTag:
			if v.Kind != kind {
				continue
			}
			if depth == 0 {
				return StartTag{}, false
			}
			if depth == 1 {
				return v, true
			}
			depth--
		case EndTag:
			if v.Kind == kind {
				depth++
			}
		}
	}
	return StartTag{}, false
}

// EndTagOf returns the trailing EndTag of the given kind, if elements ends with one.
func EndTagOf(elements []Element, kind TagKind) (EndTag, bool) {
	if len(elements) == 0 {
		return EndTag{}, false
	}
	if v, ok := elements[len(elements)-1].(EndTag); ok && v.Kind == kind {
		return v, true
	}
	return EndTag{}, false
}
