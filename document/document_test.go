package document

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/teleivo/assertive/assert"

	"github.com/arjunmenon/jsfmt/internal/element"
	"github.com/arjunmenon/jsfmt/internal/groupid"
)

func group(content ...element.Element) []element.Element {
	out := []element.Element{element.StartTag{Kind: element.TagGroup}}
	out = append(out, content...)
	out = append(out, element.EndTag{Kind: element.TagGroup})
	return out
}

func TestNewPanicsOnUnbalancedTags(t *testing.T) {
	defer func() {
		assert.Truef(t, recover() != nil, "expected New to panic on an unclosed StartTag")
	}()
	New([]element.Element{element.StartTag{Kind: element.TagGroup}})
}

func TestPropagateExpandMarksGroupContainingHardBreak(t *testing.T) {
	elements := group(element.Line{Mode: element.LineHard})
	doc := New(elements)
	doc.PropagateExpand()

	start := doc.Elements()[0].(element.StartTag)
	assert.Equalf(t, start.GroupMode, element.GroupPropagated, "enclosing group's resolved mode")
	assert.Truef(t, doc.Propagated(), "Propagated()")
}

func TestPropagateExpandLeavesFlatGroupUntouched(t *testing.T) {
	elements := group(element.StaticText{Text: "a"})
	doc := New(elements)
	doc.PropagateExpand()

	start := doc.Elements()[0].(element.StartTag)
	assert.Equalf(t, start.GroupMode, element.GroupFlat, "enclosing group's resolved mode")
}

func TestPropagateExpandIsIdempotent(t *testing.T) {
	elements := group(element.Line{Mode: element.LineHard})
	doc := New(elements)
	doc.PropagateExpand()
	first := append([]element.Element(nil), doc.Elements()...)

	doc.PropagateExpand()
	second := doc.Elements()

	if diff := cmp.Diff(first, second, cmp.AllowUnexported(element.GroupID{})); diff != "" {
		t.Errorf("second PropagateExpand() changed the document (-first +second):\n%s", diff)
	}
}

func TestPropagateExpandDoesNotCrossBestFittingBoundary(t *testing.T) {
	variantWithBreak := []element.Element{element.Line{Mode: element.LineHard}}
	variantFlat := []element.Element{element.StaticText{Text: "a"}}
	elements := group(element.BestFitting{Variants: [][]element.Element{variantFlat, variantWithBreak}})
	doc := New(elements)
	doc.PropagateExpand()

	start := doc.Elements()[0].(element.StartTag)
	assert.Equalf(t, start.GroupMode, element.GroupFlat, "a hard break inside a losing BestFitting variant must not force the enclosing group to expand")
}

func TestPropagateExpandSiblingOfBestFittingStillPropagates(t *testing.T) {
	elements := group(
		element.ExpandParent{},
		element.BestFitting{Variants: [][]element.Element{{element.StaticText{Text: "a"}}}},
	)
	doc := New(elements)
	doc.PropagateExpand()

	start := doc.Elements()[0].(element.StartTag)
	assert.Equalf(t, start.GroupMode, element.GroupPropagated, "an ExpandParent sibling of a BestFitting must still force its enclosing group to expand")
}

func TestPropagateExpandFollowsInternedRefToSharedContent(t *testing.T) {
	shared := &element.Interned{Elements: []element.Element{element.Line{Mode: element.LineHard}}}
	elements := group(element.InternedRef{Ref: shared})
	doc := New(elements)
	doc.PropagateExpand()

	start := doc.Elements()[0].(element.StartTag)
	assert.Equalf(t, start.GroupMode, element.GroupPropagated, "a hard break inside interned content must still propagate to the referencing group")
}

func TestWillBreakIgnoresLineSuffixContent(t *testing.T) {
	elements := []element.Element{
		element.StartTag{Kind: element.TagLineSuffix},
		element.Line{Mode: element.LineHard},
		element.EndTag{Kind: element.TagLineSuffix},
		element.StaticText{Text: "a"},
	}
	doc := New(elements)
	assert.Truef(t, !WillBreak(doc), "a hard break nested only inside a LineSuffix must not count as will_break")
}

func TestMayDirectlyBreakIgnoresLineSuffixContent(t *testing.T) {
	elements := []element.Element{
		element.StartTag{Kind: element.TagLineSuffix},
		element.Line{Mode: element.LineHard},
		element.EndTag{Kind: element.TagLineSuffix},
		element.StaticText{Text: "a"},
	}
	doc := New(elements)
	assert.Truef(t, !MayDirectlyBreak(doc), "a hard break nested only inside a LineSuffix must not count as may_directly_break")
}

func TestMayDirectlyBreakOnlyConsidersFirstBestFittingVariant(t *testing.T) {
	variantFlat := []element.Element{element.StaticText{Text: "a"}}
	variantWithBreak := []element.Element{element.Line{Mode: element.LineHard}}
	// WillBreak is true here because it scans every variant; MayDirectlyBreak only looks at the
	// first (most-flat) one, so the two predicates must disagree on this document.
	elements := []element.Element{element.BestFitting{Variants: [][]element.Element{variantFlat, variantWithBreak}}}
	doc := New(elements)

	assert.Truef(t, WillBreak(doc), "WillBreak() should see the break in the losing variant")
	assert.Truef(t, !MayDirectlyBreak(doc), "MayDirectlyBreak() should not chase past the first variant")
}

func TestAssertBalancedRejectsMismatchedKinds(t *testing.T) {
	defer func() {
		assert.Truef(t, recover() != nil, "expected New to panic on a kind mismatch between Start/EndTag")
	}()
	New([]element.Element{
		element.StartTag{Kind: element.TagGroup},
		element.EndTag{Kind: element.TagIndent},
	})
}

func TestGroupIDsFromDifferentBuildersCompareEqualByValue(t *testing.T) {
	a := groupid.NewBuilder()
	b := groupid.NewBuilder()
	idA := a.New("x")
	idB := b.New("x")
	assert.Truef(t, idA.IsValid() && idB.IsValid(), "both ids must be allocated")
	assert.Truef(t, idA.Equal(idB), "ids with the same dense value from independent builders compare equal by value, which is exactly why callers must never mix ids minted by different documents")
}
