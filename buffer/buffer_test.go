package buffer

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/teleivo/assertive/assert"

	"github.com/arjunmenon/jsfmt/internal/element"
	"github.com/arjunmenon/jsfmt/options"
	"github.com/arjunmenon/jsfmt/state"
)

func newState() *state.State {
	return state.New(options.NewFormatOptions())
}

func TestVecBufferWriteElementAppends(t *testing.T) {
	b := NewVecBuffer(newState())
	b.WriteElement(element.StaticText{Text: "a"})
	b.WriteElement(element.StaticText{Text: "b"})

	want := []element.Element{element.StaticText{Text: "a"}, element.StaticText{Text: "b"}}
	if diff := cmp.Diff(want, b.Elements()); diff != "" {
		t.Errorf("Elements() (-want +got):\n%s", diff)
	}
}

func TestVecBufferFinishDrainsAndResets(t *testing.T) {
	b := NewVecBuffer(newState())
	b.WriteElement(element.StaticText{Text: "a"})

	out := b.Finish()
	want := []element.Element{element.StaticText{Text: "a"}}
	if diff := cmp.Diff(want, out); diff != "" {
		t.Errorf("Finish() (-want +got):\n%s", diff)
	}
	assert.Equalf(t, len(b.Elements()), 0, "len(Elements()) after Finish")
}

func TestVecBufferSnapshotRestoreTruncates(t *testing.T) {
	b := NewVecBuffer(newState())
	b.WriteElement(element.StaticText{Text: "a"})
	snap := b.Snapshot()
	b.WriteElement(element.StaticText{Text: "b"})
	b.WriteElement(element.StaticText{Text: "c"})
	assert.Equalf(t, len(b.Elements()), 3, "len(Elements()) before restore")

	b.RestoreSnapshot(snap)
	want := []element.Element{element.StaticText{Text: "a"}}
	if diff := cmp.Diff(want, b.Elements()); diff != "" {
		t.Errorf("Elements() after RestoreSnapshot (-want +got):\n%s", diff)
	}
}

func TestVecBufferRestoreSnapshotAheadOfBufferPanics(t *testing.T) {
	b := NewVecBuffer(newState())
	b.WriteElement(element.StaticText{Text: "a"})
	earlier := b.Snapshot()
	b.WriteElement(element.StaticText{Text: "b"})
	snap := b.Snapshot()
	b.RestoreSnapshot(earlier)

	defer func() {
		assert.Truef(t, recover() != nil, "expected RestoreSnapshot to panic when the snapshot is newer than the buffer")
	}()
	b.RestoreSnapshot(snap)
}

func TestVecBufferStateReturnsSharedState(t *testing.T) {
	st := newState()
	b := NewVecBuffer(st)
	assert.Truef(t, b.State() == st, "State() must return the exact state passed to NewVecBuffer")
}

func TestInspectBufferCallsInspectPerElement(t *testing.T) {
	inner := NewVecBuffer(newState())
	var seen []element.Element
	b := NewInspectBuffer(inner, func(e element.Element) { seen = append(seen, e) })

	b.WriteElement(element.StaticText{Text: "a"})
	b.WriteElement(element.Space{})

	want := []element.Element{element.StaticText{Text: "a"}, element.Space{}}
	if diff := cmp.Diff(want, seen); diff != "" {
		t.Errorf("inspected elements (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want, b.Elements()); diff != "" {
		t.Errorf("forwarded elements (-want +got):\n%s", diff)
	}
}

func TestRecordingCapturesOnlyElementsWrittenAfterStart(t *testing.T) {
	inner := NewVecBuffer(newState())
	inner.WriteElement(element.StaticText{Text: "before"})

	rec := NewRecording(inner)
	rec.WriteElement(element.StaticText{Text: "after1"})
	rec.WriteElement(element.StaticText{Text: "after2"})

	want := []element.Element{element.StaticText{Text: "after1"}, element.StaticText{Text: "after2"}}
	if diff := cmp.Diff(want, rec.Recorded()); diff != "" {
		t.Errorf("Recorded() (-want +got):\n%s", diff)
	}
}

func TestRemoveSoftLinesBufferDropsSoftLines(t *testing.T) {
	inner := NewVecBuffer(newState())
	b := NewRemoveSoftLinesBuffer(inner)

	b.WriteElement(element.StaticText{Text: "a"})
	b.WriteElement(element.Line{Mode: element.LineSoft})
	b.WriteElement(element.StaticText{Text: "b"})

	want := []element.Element{element.StaticText{Text: "a"}, element.StaticText{Text: "b"}}
	if diff := cmp.Diff(want, b.Elements()); diff != "" {
		t.Errorf("Elements() (-want +got):\n%s", diff)
	}
}

func TestRemoveSoftLinesBufferTurnsSoftOrSpaceIntoSpace(t *testing.T) {
	inner := NewVecBuffer(newState())
	b := NewRemoveSoftLinesBuffer(inner)

	b.WriteElement(element.Line{Mode: element.LineSoftOrSpace})

	want := []element.Element{element.Space{}}
	if diff := cmp.Diff(want, b.Elements()); diff != "" {
		t.Errorf("Elements() (-want +got):\n%s", diff)
	}
}

func TestRemoveSoftLinesBufferKeepsHardLine(t *testing.T) {
	inner := NewVecBuffer(newState())
	b := NewRemoveSoftLinesBuffer(inner)

	b.WriteElement(element.Line{Mode: element.LineHard})

	want := []element.Element{element.Line{Mode: element.LineHard}}
	if diff := cmp.Diff(want, b.Elements()); diff != "" {
		t.Errorf("Elements() (-want +got):\n%s", diff)
	}
}

func TestRemoveSoftLinesBufferCollapsesBestFittingToMostFlatVariant(t *testing.T) {
	inner := NewVecBuffer(newState())
	b := NewRemoveSoftLinesBuffer(inner)

	b.WriteElement(element.BestFitting{Variants: [][]element.Element{
		{element.StaticText{Text: "flat"}},
		{element.Line{Mode: element.LineHard}},
	}})

	want := []element.Element{element.StaticText{Text: "flat"}}
	if diff := cmp.Diff(want, b.Elements()); diff != "" {
		t.Errorf("Elements() (-want +got):\n%s", diff)
	}
}

func TestRemoveSoftLinesBufferDropsExpandedConditionalContent(t *testing.T) {
	inner := NewVecBuffer(newState())
	b := NewRemoveSoftLinesBuffer(inner)

	b.WriteElement(element.StartTag{Kind: element.TagConditionalContent, ConditionalContentMode: element.GroupExpand})
	b.WriteElement(element.StaticText{Text: "only-when-expanded"})
	b.WriteElement(element.EndTag{Kind: element.TagConditionalContent})
	b.WriteElement(element.StaticText{Text: "kept"})

	want := []element.Element{element.StaticText{Text: "kept"}}
	if diff := cmp.Diff(want, b.Elements()); diff != "" {
		t.Errorf("Elements() (-want +got):\n%s", diff)
	}
}

func TestRemoveSoftLinesBufferKeepsFlatConditionalContent(t *testing.T) {
	inner := NewVecBuffer(newState())
	b := NewRemoveSoftLinesBuffer(inner)

	b.WriteElement(element.StartTag{Kind: element.TagConditionalContent, ConditionalContentMode: element.GroupFlat})
	b.WriteElement(element.StaticText{Text: "only-when-flat"})
	b.WriteElement(element.EndTag{Kind: element.TagConditionalContent})

	want := []element.Element{element.StaticText{Text: "only-when-flat"}}
	if diff := cmp.Diff(want, b.Elements()); diff != "" {
		t.Errorf("Elements() (-want +got):\n%s", diff)
	}
}

func TestRemoveSoftLinesBufferCleansInternedContentOncePerIdentity(t *testing.T) {
	inner := NewVecBuffer(newState())
	b := NewRemoveSoftLinesBuffer(inner)

	shared := &element.Interned{Elements: []element.Element{
		element.StaticText{Text: "x"},
		element.Line{Mode: element.LineSoft},
	}}

	b.WriteElement(element.InternedRef{Ref: shared})
	b.WriteElement(element.InternedRef{Ref: shared})

	got := b.Elements()
	assert.Equalf(t, len(got), 2, "len(Elements())")
	first, ok := got[0].(element.InternedRef)
	assert.Truef(t, ok, "expected an InternedRef")
	second, ok := got[1].(element.InternedRef)
	assert.Truef(t, ok, "expected an InternedRef")
	assert.Truef(t, first.Ref == second.Ref, "repeated references to the same Interned must clean to the identical cached pointer")

	want := []element.Element{element.StaticText{Text: "x"}}
	if diff := cmp.Diff(want, first.Ref.Elements); diff != "" {
		t.Errorf("cleaned Interned.Elements (-want +got):\n%s", diff)
	}
}
