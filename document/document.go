// Package document owns the finalized [element.Element] stream produced by a formatting
// session and runs the propagate_expand pre-pass over it.
//
// Grounded on the teacher's internal/layout.Doc: a flat slice of tagged nodes plus a two-pass
// walk (there: measure() then layout(); here: a single propagate_expand walk) that derives
// facts about groups before the real printing pass runs. The balanced explicit-Start/End-tag
// shape (rather than the teacher's run-length-encoded tree) follows the spec and
// original_source/src/base_formatter/format_element/document.rs directly, because Interned
// sub-documents need to be addressable and re-walked independently of their enclosing slice.
package document

import (
	"fmt"

	"github.com/arjunmenon/jsfmt/internal/assert"
	"github.com/arjunmenon/jsfmt/internal/element"
)

// Document owns a finalized, balanced sequence of [element.Element]. It is built once from a
// []element.Element (typically drained from a [buffer.Buffer]) and never mutated element-by-
// element afterwards; the only transformation it undergoes is [Document.PropagateExpand].
type Document struct {
	elements  []element.Element
	propagated bool
}

// New wraps elements as a Document. It panics (via internal/assert) if the start/end tags are
// not balanced at every depth, per invariant 1 in spec §8.
func New(elements []element.Element) *Document {
	assertBalanced(elements)
	return &Document{elements: elements}
}

// Elements returns the finalized element slice. Callers must not mutate it.
func (d *Document) Elements() []element.Element {
	return d.elements
}

// Len is the number of top-level-and-nested elements, i.e. len(Elements()).
func (d *Document) Len() int {
	return len(d.elements)
}

// PropagateExpand walks the document once, marking every StartTag{Kind: TagGroup} whose content
// contains a hard break, an Empty line, an ExpandParent, or an already-expanded nested group as
// GroupPropagated. It is idempotent (invariant 2): calling it twice leaves the document
// unchanged, because the second pass observes only already-Propagated/Expand groups and
// newline-free resolved text, none of which changes the outcome.
//
// BestFitting acts as an expansion boundary: expansion inside one of its variants does not
// propagate to groups enclosing the BestFitting. Crucially the "expands" accumulator returned
// while walking a BestFitting's variants is NOT reset to false afterwards — only the BestFitting
// element itself is reported as non-expanding to its immediate parent — so that an expanding
// sibling before or after the BestFitting still reaches the enclosing group, and so that an
// Interned sub-document containing `[ExpandParent, BestFitting]` still caches "expands=true".
// See original_source/src/base_formatter/format_element/document.rs for the worked example this
// guards against.
func (d *Document) PropagateExpand() {
	interned := make(map[*element.Interned]bool)
	propagateExpands(d.elements, interned)
	d.propagated = true
}

// Propagated reports whether PropagateExpand has run.
func (d *Document) Propagated() bool {
	return d.propagated
}

// frame tracks an enclosing Group (by index, so its resolved mode can be written back into
// `elements`) or a BestFitting boundary (isBestFitting, idx unused).
type frame struct {
	idx           int
	isBestFitting bool
}

func propagateExpands(elements []element.Element, interned map[*element.Interned]bool) bool {
	expands := false
	var frames []frame

	expandInnermost := func() {
		for i := len(frames) - 1; i >= 0; i-- {
			if frames[i].isBestFitting {
				return
			}
			st := elements[frames[i].idx].(element.StartTag)
			st.GroupMode = element.GroupPropagated
			elements[frames[i].idx] = st
			return
		}
	}

	for i := 0; i < len(elements); i++ {
		el := elements[i]
		elementExpands := false

		switch v := el.(type) {
		case element.StartTag:
			if v.Kind == element.TagGroup {
				frames = append(frames, frame{idx: i})
				continue
			}
		case element.EndTag:
			if v.Kind == element.TagGroup {
				if n := len(frames); n > 0 && !frames[n-1].isBestFitting {
					closed := elements[frames[n-1].idx].(element.StartTag)
					frames = frames[:n-1]
					elementExpands = closed.GroupMode != element.GroupFlat
				}
				if elementExpands {
					expands = true
					expandInnermost()
				}
				continue
			}
		case element.InternedRef:
			if cached, ok := interned[v.Ref]; ok {
				elementExpands = cached
			} else {
				internedExpands := propagateExpands(v.Ref.Elements, interned)
				interned[v.Ref] = internedExpands
				elementExpands = internedExpands
			}
		case element.BestFitting:
			frames = append(frames, frame{isBestFitting: true})
			for _, variant := range v.Variants {
				propagateExpands(variant, interned)
			}
			frames = frames[:len(frames)-1]
			// BestFitting never reports itself as expanding to its parent (see doc comment),
			// but siblings already set `expands` above/below still count.
			elementExpands = false
		case element.ConditionalGroup:
			// Same boundary treatment as BestFitting: only one variant ultimately prints, so a
			// hard break in a losing variant must not force the enclosing group to expand.
			frames = append(frames, frame{isBestFitting: true})
			for _, variant := range v.Variants {
				propagateExpands(variant, interned)
			}
			frames = frames[:len(frames)-1]
			elementExpands = false
		case element.ExpandParent:
			elementExpands = true
		case element.Line:
			elementExpands = v.Mode == element.LineHard || v.Mode == element.LineEmpty
		case element.StaticText:
			elementExpands = containsNewline(v.Text)
		case element.DynamicText:
			elementExpands = containsNewline(v.Text)
		case element.LocatedTokenText:
			elementExpands = containsNewline(v.Slice)
		}

		if elementExpands {
			expands = true
			expandInnermost()
		}
	}

	return expands
}

func containsNewline(s string) bool {
	for _, r := range s {
		if r == '\n' {
			return true
		}
	}
	return false
}

// assertBalanced panics if elements does not form a balanced Start/End tag stream at every
// depth, including inside Interned sub-documents and BestFitting variants.
func assertBalanced(elements []element.Element) {
	var stack []element.TagKind
	for _, el := range elements {
		switch v := el.(type) {
		case element.StartTag:
			stack = append(stack, v.Kind)
		case element.EndTag:
			assert.That(len(stack) > 0, "unbalanced document: EndTag(%s) with no matching StartTag", v.Kind)
			top := stack[len(stack)-1]
			assert.That(top == v.Kind, "unbalanced document: EndTag(%s) does not match innermost StartTag(%s)", v.Kind, top)
			stack = stack[:len(stack)-1]
		case element.InternedRef:
			assertBalanced(v.Ref.Elements)
		case element.BestFitting:
			assert.That(len(v.Variants) >= 1, "BestFitting must have at least one variant")
			for _, variant := range v.Variants {
				assertBalanced(variant)
			}
		case element.ConditionalGroup:
			assert.That(len(v.Variants) >= 1, "ConditionalGroup must have at least one variant")
			for _, variant := range v.Variants {
				assertBalanced(variant)
			}
		}
	}
	assert.That(len(stack) == 0, "unbalanced document: %d StartTag(s) never closed", len(stack))
}

// WillBreak reports whether any element in the document forces a break, ignoring content nested
// inside LineSuffix tags. Exposed for adapters that want to ask "did this sub-formatting
// decision force a multi-line result" before deciding how to wrap it (e.g. to choose between an
// inline and hanging form).
func WillBreak(d *Document) bool {
	return element.SliceWillBreak(d.elements)
}

// MayDirectlyBreak is WillBreak's cheaper, weaker cousin: it agrees on hard breaks but does not
// chase every BestFitting/ConditionalGroup alternative, only the first (most-flat) one. Intended
// for adapters making a quick heuristic call where WillBreak's exhaustive recursion would be
// needlessly expensive.
func MayDirectlyBreak(d *Document) bool {
	return element.SliceMayDirectlyBreak(d.elements)
}

// String renders a debug view of the element stream, one element per line, primarily useful in
// test failure output; it does not attempt to reproduce final formatted text (use printer for
// that).
func (d *Document) String() string {
	var depth int
	out := ""
	for _, el := range d.elements {
		switch v := el.(type) {
		case element.EndTag:
			depth--
			out += indent(depth) + fmt.Sprintf("End%s\n", v.Kind)
		case element.StartTag:
			out += indent(depth) + fmt.Sprintf("Start%s\n", v.Kind)
			depth++
		default:
			out += indent(depth) + fmt.Sprintf("%#v\n", el)
		}
	}
	return out
}

func indent(n int) string {
	s := ""
	for range n {
		s += "  "
	}
	return s
}
