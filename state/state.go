// Package state holds the per-document bookkeeping every [buffer.Buffer] shares: the resolved
// [options.FormatOptions] and the group-id allocator that hands out the ids groups are
// optionally tagged with.
//
// Grounded on original_source/src/state.rs's FormatState (context + UniqueGroupIdBuilder),
// split into its own package, like the Rust original, so that buffer/builder/format can all
// depend on it without importing each other.
package state

import (
	"github.com/arjunmenon/jsfmt/internal/element"
	"github.com/arjunmenon/jsfmt/internal/groupid"
	"github.com/arjunmenon/jsfmt/options"
)

// State is shared (by pointer) across every Buffer and Formatter participating in a single
// formatting session; it is not safe for concurrent use, matching the single-threaded session
// contract in spec §5.
type State struct {
	options  options.FormatOptions
	groupIDs *groupid.Builder
}

// New creates formatting state seeded with opts and a fresh group-id allocator.
func New(opts options.FormatOptions) *State {
	return &State{options: opts, groupIDs: groupid.NewBuilder()}
}

// Options returns the format options this session was configured with.
func (s *State) Options() options.FormatOptions {
	return s.options
}

// GroupID allocates a new id unique to this session. debugName is informational only and never
// affects equality.
func (s *State) GroupID(debugName string) element.GroupID {
	return s.groupIDs.New(debugName)
}
