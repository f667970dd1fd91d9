// Package groupid allocates the [element.GroupID] handles a formatting session hands out to its
// groups.
//
// Grounded on the spec's UniqueGroupIdBuilder (§3.4): ids are dense, start at 1, and never leak
// between documents because each session's state.State owns its own Builder.
package groupid

import "github.com/arjunmenon/jsfmt/internal/element"

// Builder allocates monotonically increasing [element.GroupID] values for a single document.
// It is not safe for concurrent use; a formatting session is single-threaded per §5.
type Builder struct {
	next uint32
}

// NewBuilder returns a Builder whose first allocation is id 1.
func NewBuilder() *Builder {
	return &Builder{}
}

// New allocates the next id. debugName is recorded for String() output; callers typically pass
// "" in release builds and a human-readable name while debugging a specific group.
func (b *Builder) New(debugName string) element.GroupID {
	b.next++
	return element.NewGroupID(b.next, debugName)
}
