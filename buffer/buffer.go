// Package buffer provides the append-only element sinks AST adapters and builders write into
// while constructing a [document.Document].
//
// Grounded on the teacher's internal/layout.Doc, whose `tags []*node` field is exactly this
// append-only sink; VecBuffer generalizes it with the snapshot/restore discipline spec §4.2/§5
// requires (the teacher never needed speculative emission, since DOT statements are printed
// strictly in source order). InspectBuffer, RemoveSoftLinesBuffer, and Recording follow
// original_source/src/buffer.rs, which is the part of the corpus that actually implements them.
package buffer

import (
	"github.com/arjunmenon/jsfmt/internal/assert"
	"github.com/arjunmenon/jsfmt/internal/element"
	"github.com/arjunmenon/jsfmt/state"
)

// Snapshot is an opaque marker returned by [Buffer.Snapshot] and consumed by
// [Buffer.RestoreSnapshot]. For [VecBuffer] it is simply the element count at the time the
// snapshot was taken; wrapping buffers forward to their inner buffer's snapshot so that a
// snapshot taken through a wrapper is interchangeable with one taken directly on the underlying
// VecBuffer.
type Snapshot struct {
	position int
}

// Buffer is the append-only sink every builder writes [element.Element]s into. Implementations:
// [VecBuffer] (the primary one), [InspectBuffer] (tracing), [RemoveSoftLinesBuffer] (projects
// onto the infinite-width/flat rendering), and [Recording] (captures a sub-range).
type Buffer interface {
	// WriteElement appends one element.
	WriteElement(e element.Element)
	// Elements returns the elements written so far. Callers must not mutate the result.
	Elements() []element.Element
	// State returns the FormatState shared by every buffer/formatter in this session.
	State() *state.State
	// Snapshot captures the buffer's current length for later restoration.
	Snapshot() Snapshot
	// RestoreSnapshot truncates the buffer back to a previously taken Snapshot. It panics via
	// internal/assert only when the snapshot's position lies beyond the buffer's current length
	// (a restore out of LIFO order that already truncated past it). A Snapshot carries no buffer
	// identity, so restoring the same snapshot twice or restoring one from a different buffer is
	// not detected.
	RestoreSnapshot(s Snapshot)
}

// VecBuffer is the primary Buffer implementation: elements are appended directly to a slice.
type VecBuffer struct {
	st       *state.State
	elements []element.Element
}

// NewVecBuffer creates an empty buffer sharing st.
func NewVecBuffer(st *state.State) *VecBuffer {
	return &VecBuffer{st: st}
}

func (b *VecBuffer) WriteElement(e element.Element) {
	b.elements = append(b.elements, e)
}

func (b *VecBuffer) Elements() []element.Element {
	return b.elements
}

func (b *VecBuffer) State() *state.State {
	return b.st
}

func (b *VecBuffer) Snapshot() Snapshot {
	return Snapshot{position: len(b.elements)}
}

func (b *VecBuffer) RestoreSnapshot(s Snapshot) {
	assert.That(s.position <= len(b.elements),
		"outdated snapshot: buffer has %d elements, fewer than the %d it had when the snapshot was taken",
		len(b.elements), s.position)
	b.elements = b.elements[:s.position]
}

// Finish drains and returns the buffer's elements, leaving it empty. Used once at the end of a
// top-level format pass to hand the elements to [document.New].
func (b *VecBuffer) Finish() []element.Element {
	out := b.elements
	b.elements = nil
	return out
}

// InspectBuffer forwards every call to an inner buffer while invoking a callback for each
// element written, for tracing/debugging adapters under development.
type InspectBuffer struct {
	inner    Buffer
	inspect  func(element.Element)
}

// NewInspectBuffer wraps inner, calling inspect once per element written through this buffer
// (not for elements written directly to inner).
func NewInspectBuffer(inner Buffer, inspect func(element.Element)) *InspectBuffer {
	return &InspectBuffer{inner: inner, inspect: inspect}
}

func (b *InspectBuffer) WriteElement(e element.Element) {
	b.inspect(e)
	b.inner.WriteElement(e)
}

func (b *InspectBuffer) Elements() []element.Element   { return b.inner.Elements() }
func (b *InspectBuffer) State() *state.State            { return b.inner.State() }
func (b *InspectBuffer) Snapshot() Snapshot             { return b.inner.Snapshot() }
func (b *InspectBuffer) RestoreSnapshot(s Snapshot)     { b.inner.RestoreSnapshot(s) }

// Recording wraps a buffer and exposes the slice of elements written since the Recording was
// created; useful for builders that need to inspect what they just emitted (e.g. to decide whether
// a produced group should be discarded and replaced with a simpler one).
type Recording struct {
	inner Buffer
	start int
}

// NewRecording begins recording against inner immediately; there is no separate start or stop
// call.
func NewRecording(inner Buffer) *Recording {
	return &Recording{inner: inner, start: len(inner.Elements())}
}

func (r *Recording) WriteElement(e element.Element) { r.inner.WriteElement(e) }
func (r *Recording) Elements() []element.Element     { return r.inner.Elements() }
func (r *Recording) State() *state.State             { return r.inner.State() }
func (r *Recording) Snapshot() Snapshot              { return r.inner.Snapshot() }
func (r *Recording) RestoreSnapshot(s Snapshot)      { r.inner.RestoreSnapshot(s) }

// Recorded returns the elements written to the inner buffer since this Recording was created.
func (r *Recording) Recorded() []element.Element {
	return r.inner.Elements()[r.start:]
}

// RemoveSoftLinesBuffer projects writes onto the document's "infinite width" rendering: Soft
// line breaks vanish, SoftOrSpace becomes a Space, BestFitting collapses to its most-flat
// variant (recursively re-fed through the same filter), and any content inside an expanded
// ConditionalContent region is dropped entirely. Used by adapters that want to pre-render a
// sub-document as if it always fit on one line; the printer's measurement pass does not use this
// buffer and applies its own flat-projection walk instead.
type RemoveSoftLinesBuffer struct {
	inner                    Buffer
	internedCache            map[*element.Interned]*element.Interned
	conditionalContentStack  []element.GroupMode
}

// NewRemoveSoftLinesBuffer wraps inner, filtering every element written through it.
func NewRemoveSoftLinesBuffer(inner Buffer) *RemoveSoftLinesBuffer {
	return &RemoveSoftLinesBuffer{inner: inner, internedCache: make(map[*element.Interned]*element.Interned)}
}

func (b *RemoveSoftLinesBuffer) isInExpandedConditionalContent() bool {
	n := len(b.conditionalContentStack)
	return n > 0 && b.conditionalContentStack[n-1] == element.GroupExpand
}

func (b *RemoveSoftLinesBuffer) WriteElement(e element.Element) {
	stack := []element.Element{e}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		switch v := cur.(type) {
		case element.StartTag:
			if v.Kind == element.TagConditionalContent {
				b.conditionalContentStack = append(b.conditionalContentStack, v.ConditionalContentMode)
				continue
			}
			if b.isInExpandedConditionalContent() {
				continue
			}
			b.inner.WriteElement(cur)
		case element.EndTag:
			if v.Kind == element.TagConditionalContent {
				b.conditionalContentStack = b.conditionalContentStack[:len(b.conditionalContentStack)-1]
				continue
			}
			if b.isInExpandedConditionalContent() {
				continue
			}
			b.inner.WriteElement(cur)
		case element.Line:
			if b.isInExpandedConditionalContent() {
				continue
			}
			switch v.Mode {
			case element.LineSoft:
				continue
			case element.LineSoftOrSpace:
				b.inner.WriteElement(element.Space{})
			default:
				b.inner.WriteElement(cur)
			}
		case element.InternedRef:
			if b.isInExpandedConditionalContent() {
				continue
			}
			cleaned := b.cleanInterned(v.Ref)
			b.inner.WriteElement(element.InternedRef{Ref: cleaned})
		case element.BestFitting:
			if b.isInExpandedConditionalContent() {
				continue
			}
			mostFlat := v.Variants[0]
			for i := len(mostFlat) - 1; i >= 0; i-- {
				stack = append(stack, mostFlat[i])
			}
		case element.ConditionalGroup:
			if b.isInExpandedConditionalContent() {
				continue
			}
			mostFlat := v.Variants[0]
			for i := len(mostFlat) - 1; i >= 0; i-- {
				stack = append(stack, mostFlat[i])
			}
		default:
			if b.isInExpandedConditionalContent() {
				continue
			}
			b.inner.WriteElement(cur)
		}
	}
}

// cleanInterned returns an Interned whose elements have had soft lines/conditional-expanded
// content/best-fitting removed, caching by original pointer identity so repeated references to
// the same interned sub-document are cleaned only once.
func (b *RemoveSoftLinesBuffer) cleanInterned(original *element.Interned) *element.Interned {
	if cached, ok := b.internedCache[original]; ok {
		return cached
	}
	// Use a throwaway sliceBuffer fed through a fresh RemoveSoftLinesBuffer sharing this cache so
	// nested Interned references are cleaned consistently.
	sink := &sliceBuffer{}
	nested := &RemoveSoftLinesBuffer{inner: sink, internedCache: b.internedCache}
	for _, el := range original.Elements {
		nested.WriteElement(el)
	}
	cleaned := &element.Interned{Elements: sink.elements}
	b.internedCache[original] = cleaned
	return cleaned
}

func (b *RemoveSoftLinesBuffer) Elements() []element.Element { return b.inner.Elements() }
func (b *RemoveSoftLinesBuffer) State() *state.State          { return b.inner.State() }
func (b *RemoveSoftLinesBuffer) Snapshot() Snapshot           { return b.inner.Snapshot() }
func (b *RemoveSoftLinesBuffer) RestoreSnapshot(s Snapshot)   { b.inner.RestoreSnapshot(s) }

// sliceBuffer is a minimal Buffer used internally to collect a cleaned Interned's elements
// without requiring a *state.State (cleaning never allocates group ids).
type sliceBuffer struct {
	elements []element.Element
}

func (s *sliceBuffer) WriteElement(e element.Element)   { s.elements = append(s.elements, e) }
func (s *sliceBuffer) Elements() []element.Element       { return s.elements }
func (s *sliceBuffer) State() *state.State               { return nil }
func (s *sliceBuffer) Snapshot() Snapshot                { return Snapshot{position: len(s.elements)} }
func (s *sliceBuffer) RestoreSnapshot(snap Snapshot)      { s.elements = s.elements[:snap.position] }
