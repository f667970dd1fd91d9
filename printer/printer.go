// Package printer implements the measurement-and-layout algorithm that walks a finalized
// [document.Document] and renders it to a string: group fitting via flat-projection
// measurement, best-fit search over BestFitting/ConditionalGroup variants, lazy indentation,
// pending-space deferral, and end-of-line suffix flushing.
//
// Grounded on teleivo-dot/internal/layout/layout.go's measure()/layout()/render() trio — the
// same two-phase shape (decide group modes, then render under them), generalized from DOT's
// text/space/newlines/group/indentation tag set to the much larger element vocabulary in
// spec §3, and from the teacher's run-length-encoded tree representation to a balanced flat
// slice (this package's matchingEnd is the flat-slice equivalent of the teacher's tagIterator).
// Indent/align column accounting and the Hard-line-inside-flat-group tie-break follow spec
// §4.5/§9 directly; original_source/src/options.rs resolves indent_width doubling as tab_width.
package printer

import (
	"strings"

	"github.com/arjunmenon/jsfmt/document"
	"github.com/arjunmenon/jsfmt/internal/assert"
	"github.com/arjunmenon/jsfmt/internal/element"
	"github.com/arjunmenon/jsfmt/options"
)

// suffix is a line-suffix entry deferred until the next newline/boundary/end-of-document.
type suffix struct {
	indent   int
	align    int
	mode     element.GroupMode
	elements []element.Element
}

// Printer accumulates output while walking a Document. Use [Print] rather than constructing one
// directly.
type Printer struct {
	opts options.PrinterOptions

	out    strings.Builder
	column int

	indentLevel int
	alignCols   int

	pendingSpace  bool
	pendingIndent bool // an indent is owed before the next non-newline content

	groupModes map[element.GroupID]element.GroupMode

	suffixes []suffix
}

// Print runs the printer over doc, returning the formatted text. doc must have had
// [document.Document.PropagateExpand] run already.
func Print(doc *document.Document, opts options.PrinterOptions) (string, error) {
	assert.That(doc.Propagated(), "printer.Print: PropagateExpand must run before printing")
	p := &Printer{opts: opts, groupModes: make(map[element.GroupID]element.GroupMode)}
	if err := p.print(doc.Elements(), element.GroupExpand); err != nil {
		return "", err
	}
	if err := p.flushSuffixes(); err != nil {
		return "", err
	}
	return p.out.String(), nil
}

// matchingEnd returns the index, within elements, of the EndTag balancing the StartTag at start.
// A single depth counter is sufficient because [document.Document] guarantees well-nested,
// balanced tags (see assertBalanced in the document package).
func matchingEnd(elements []element.Element, start int) int {
	depth := 0
	for i := start; i < len(elements); i++ {
		switch elements[i].(type) {
		case element.StartTag:
			depth++
		case element.EndTag:
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	assert.That(false, "matchingEnd: no balancing EndTag found starting at %d", start)
	return len(elements) - 1
}

// print walks elements under the ambient group mode (the resolved mode of the innermost enclosing
// Group, or GroupExpand at the document root), writing output and recursing into nested tags.
func (p *Printer) print(elements []element.Element, mode element.GroupMode) error {
	for i := 0; i < len(elements); i++ {
		switch v := elements[i].(type) {
		case element.StaticText:
			p.writeText(v.Text)
		case element.DynamicText:
			p.writeText(v.Text)
		case element.LocatedTokenText:
			p.writeText(v.Slice)
		case element.Space:
			p.pendingSpace = true
		case element.Line:
			if err := p.printLine(v.Mode, mode); err != nil {
				return err
			}
		case element.ExpandParent:
			// Consumed entirely by propagate_expand; no-op at print time.
		case element.InternedRef:
			if err := p.print(v.Ref.Elements, mode); err != nil {
				return err
			}
		case element.BestFitting:
			idx := p.chooseFitting(v.Variants)
			if err := p.print(v.Variants[idx], mode); err != nil {
				return err
			}
		case element.ConditionalGroup:
			idx := p.chooseFitting(v.Variants)
			variantMode := element.GroupFlat
			if idx == len(v.Variants)-1 {
				// The fallback variant is measured/printed like an ordinary group, not accepted
				// verbatim: re-measure it on its own terms instead of assuming flat.
				variantMode = p.resolveMode(v.Variants[idx])
			}
			if err := p.print(v.Variants[idx], variantMode); err != nil {
				return err
			}
		case element.StartTag:
			end := matchingEnd(elements, i)
			content := elements[i+1 : end]
			if err := p.printTag(v, content, mode); err != nil {
				return err
			}
			i = end
		case element.EndTag:
			assert.That(false, "printer: encountered unmatched EndTag(%s)", v.Kind)
		}
	}
	return nil
}

func (p *Printer) printTag(v element.StartTag, content []element.Element, mode element.GroupMode) error {
	switch v.Kind {
	case element.TagGroup:
		resolved := v.GroupMode
		if resolved == element.GroupFlat {
			resolved = p.resolveMode(content)
		}
		if v.ID.IsValid() {
			p.groupModes[v.ID] = resolved
		}
		return p.print(content, resolved)
	case element.TagIndent:
		p.indentLevel++
		err := p.print(content, mode)
		p.indentLevel--
		return err
	case element.TagDedent:
		p.indentLevel--
		err := p.print(content, mode)
		p.indentLevel++
		return err
	case element.TagAlign:
		p.alignCols += v.AlignColumns
		err := p.print(content, mode)
		p.alignCols -= v.AlignColumns
		return err
	case element.TagIndentIfGroupBreaks:
		breaks := p.groupBreaks(v.IndentIfGroupBreaksID, mode)
		if breaks {
			p.indentLevel++
		}
		err := p.print(content, mode)
		if breaks {
			p.indentLevel--
		}
		return err
	case element.TagLineSuffix:
		p.suffixes = append(p.suffixes, suffix{indent: p.indentLevel, align: p.alignCols, mode: mode, elements: content})
		return nil
	case element.TagLineSuffixBoundary:
		return p.flushSuffixes()
	case element.TagConditionalContent:
		breaks := p.groupBreaks(v.ConditionalContentGroupID, mode)
		wantsBroken := v.ConditionalContentMode == element.GroupExpand
		if breaks == wantsBroken {
			return p.print(content, mode)
		}
		return nil
	case element.TagFill:
		return p.printFill(content, mode)
	case element.TagFillEntry:
		return p.print(content, mode)
	case element.TagLabel:
		return p.print(content, mode)
	case element.TagVerbatimRange:
		return p.printVerbatim(content)
	default:
		return p.print(content, mode)
	}
}

// resolvedMode returns the resolved mode of the group identified by id, or mode (the ambient,
// innermost-enclosing-group mode) if id is the zero "innermost group" sentinel or refers to a
// group not yet resolved (forward printing order means a ConditionalContent/IndentIfGroupBreaks
// should always reference an already-printed sibling; an unresolved reference falls back to the
// ambient mode rather than erroring, since the pre-print invariant check (spec §7
// InvalidDocument) is out of this package's scope).
func (p *Printer) resolvedMode(id element.GroupID, mode element.GroupMode) element.GroupMode {
	if !id.IsValid() {
		return mode
	}
	if resolved, ok := p.groupModes[id]; ok {
		return resolved
	}
	return mode
}

// groupBreaks reports whether the group identified by id (or the ambient innermost group, via
// mode, if id is invalid/unresolved) is resolved to anything other than GroupFlat. GroupExpand
// and GroupPropagated both count as "broken" for IfGroupBreaks/IndentIfGroupBreaks purposes, even
// though propagate_expand and explicit measurement produce different GroupMode values for the
// same "this group does not fit on one line" outcome.
func (p *Printer) groupBreaks(id element.GroupID, mode element.GroupMode) bool {
	return p.resolvedMode(id, mode) != element.GroupFlat
}

// resolveMode measures content's flat projection against the remaining print width and returns
// GroupFlat if it fits, GroupExpand otherwise.
func (p *Printer) resolveMode(content []element.Element) element.GroupMode {
	budget := int(p.opts.PrintWidth) - p.column
	if p.fitsFlat(content, budget) {
		return element.GroupFlat
	}
	return element.GroupExpand
}

// fitsFlat reports whether content's flat projection fits within budget columns, short-circuiting
// as soon as the budget is exhausted or a line that always breaks (Hard/Empty/Literal, or a
// literal '\n' in text) is encountered — propagate_expand should have already forced such groups
// to GroupPropagated, so reaching one here during measurement means "does not fit" is the correct,
// conservative answer.
func (p *Printer) fitsFlat(content []element.Element, budget int) bool {
	ok, _ := fitsFlatWalk(content, budget, p.groupModes)
	return ok
}

func fitsFlatWalk(elements []element.Element, budget int, groupModes map[element.GroupID]element.GroupMode) (fits bool, remaining int) {
	for i := 0; i < len(elements); i++ {
		if budget < 0 {
			return false, budget
		}
		switch v := elements[i].(type) {
		case element.StaticText:
			budget -= len(v.Text)
			if containsNewline(v.Text) {
				return false, budget
			}
		case element.DynamicText:
			budget -= len(v.Text)
			if containsNewline(v.Text) {
				return false, budget
			}
		case element.LocatedTokenText:
			budget -= len(v.Slice)
			if containsNewline(v.Slice) {
				return false, budget
			}
		case element.Space:
			budget--
		case element.Line:
			switch v.Mode {
			case element.LineSoft:
				// contributes nothing
			case element.LineSoftOrSpace:
				budget--
			default:
				return false, budget
			}
		case element.ExpandParent:
			return false, budget
		case element.InternedRef:
			var ok bool
			ok, budget = fitsFlatWalk(v.Ref.Elements, budget, groupModes)
			if !ok {
				return false, budget
			}
		case element.BestFitting:
			var ok bool
			ok, budget = fitsFlatWalk(v.Variants[0], budget, groupModes)
			if !ok {
				return false, budget
			}
		case element.ConditionalGroup:
			var ok bool
			ok, budget = fitsFlatWalk(v.Variants[0], budget, groupModes)
			if !ok {
				return false, budget
			}
		case element.StartTag:
			end := matchingEnd(elements, i)
			inner := elements[i+1 : end]
			switch v.Kind {
			case element.TagConditionalContent:
				active := v.ConditionalContentGroupID
				resolved, known := groupModes[active]
				breaks := false
				if active.IsValid() && known {
					breaks = resolved != element.GroupFlat
				}
				show := breaks == (v.ConditionalContentMode == element.GroupExpand)
				if show {
					var ok bool
					ok, budget = fitsFlatWalk(inner, budget, groupModes)
					if !ok {
						return false, budget
					}
				}
			case element.TagLineSuffix:
				// deferred content contributes no column cost to the measured line.
			default:
				var ok bool
				ok, budget = fitsFlatWalk(inner, budget, groupModes)
				if !ok {
					return false, budget
				}
			}
			i = end
		}
	}
	return budget >= 0, budget
}

func containsNewline(s string) bool {
	for _, r := range s {
		if r == '\n' {
			return true
		}
	}
	return false
}

// chooseFitting returns the index of the first variant whose flat projection fits the remaining
// width, or the last index if none do.
func (p *Printer) chooseFitting(variants [][]element.Element) int {
	budget := int(p.opts.PrintWidth) - p.column
	for i := 0; i < len(variants)-1; i++ {
		if p.fitsFlat(variants[i], budget) {
			return i
		}
	}
	return len(variants) - 1
}

// printFill lays out alternating entry/separator pairs (as produced by builder.Fill), printing a
// separator flat (usually collapsing to a space) when the next entry still fits on the current
// line, or expanded (usually a newline) otherwise.
func (p *Printer) printFill(content []element.Element, mode element.GroupMode) error {
	var parts [][]element.Element
	for i := 0; i < len(content); i++ {
		end := matchingEnd(content, i)
		parts = append(parts, content[i+1:end])
		i = end
	}
	if len(parts) == 0 {
		return nil
	}
	if err := p.print(parts[0], mode); err != nil {
		return err
	}
	for i := 1; i+1 < len(parts); i += 2 {
		sep, entry := parts[i], parts[i+1]
		budget := int(p.opts.PrintWidth) - p.column
		sepMode := element.GroupExpand
		if fits, remaining := fitsFlatWalk(sep, budget, p.groupModes); fits {
			if ok, _ := fitsFlatWalk(entry, remaining, p.groupModes); ok {
				sepMode = element.GroupFlat
			}
		}
		if err := p.print(sep, sepMode); err != nil {
			return err
		}
		entryMode := p.resolveMode(entry)
		if err := p.print(entry, entryMode); err != nil {
			return err
		}
	}
	return nil
}

// printVerbatim appends content's text without the usual group-measurement or line-break
// transforms (a Line inside it always prints a literal line ending, regardless of ambient group
// mode). It still flushes any pending space/indent before the first byte, and keeps p.column in
// sync with what it writes, so measurement of whatever follows stays accurate. Used for
// suppressed regions that must be reproduced byte-for-byte.
func (p *Printer) printVerbatim(content []element.Element) error {
	p.flushPending()
	for _, el := range content {
		switch v := el.(type) {
		case element.StaticText:
			p.writeVerbatim(v.Text)
		case element.DynamicText:
			p.writeVerbatim(v.Text)
		case element.LocatedTokenText:
			p.writeVerbatim(v.Slice)
		case element.Space:
			p.out.WriteByte(' ')
			p.column++
		case element.Line:
			p.out.WriteString(p.opts.LineEnding.AsString())
			p.column = 0
		}
	}
	return nil
}

// writeVerbatim appends s unchanged and updates p.column to reflect however many columns s
// occupies after its last embedded newline, if any.
func (p *Printer) writeVerbatim(s string) {
	p.out.WriteString(s)
	if nl := strings.LastIndexByte(s, '\n'); nl >= 0 {
		p.column = len(s) - nl - 1
	} else {
		p.column += len(s)
	}
}

// printLine renders a Line element under the given ambient group mode.
func (p *Printer) printLine(lineMode element.LineMode, groupMode element.GroupMode) error {
	switch lineMode {
	case element.LineSoft:
		if groupMode == element.GroupFlat {
			return nil
		}
		return p.newline()
	case element.LineSoftOrSpace:
		if groupMode == element.GroupFlat {
			p.pendingSpace = true
			return nil
		}
		return p.newline()
	case element.LineEmpty:
		// Always a blank line: print two newlines.
		if err := p.newline(); err != nil {
			return err
		}
		return p.newline()
	case element.LineLiteral:
		return p.newlineNoIndentReset()
	default: // LineHard
		return p.newline()
	}
}

// newline flushes queued line suffixes, appends the configured line ending, and arms a pending
// indent flush for the next non-newline content.
func (p *Printer) newline() error {
	if err := p.flushSuffixes(); err != nil {
		return err
	}
	p.pendingSpace = false
	p.out.WriteString(p.opts.LineEnding.AsString())
	p.column = 0
	p.pendingIndent = true
	return nil
}

// newlineNoIndentReset implements LineLiteral: a newline that does not reset the current
// indentation/alignment, for template literal bodies whose contents must be preserved verbatim
// around embedded breaks.
func (p *Printer) newlineNoIndentReset() error {
	if err := p.flushSuffixes(); err != nil {
		return err
	}
	p.pendingSpace = false
	p.out.WriteString(p.opts.LineEnding.AsString())
	p.column = 0
	return nil
}

// writeText flushes any pending space/indent, then appends s, updating column tracking. A '\n'
// embedded directly in text (e.g. inside a located token copied from a multi-line source
// construct) flushes line suffixes and resets the column like a newline, matching the spec's
// "flush any pending line suffixes first" rule.
func (p *Printer) writeText(s string) {
	for {
		nl := strings.IndexByte(s, '\n')
		if nl < 0 {
			p.flushPending()
			p.out.WriteString(s)
			p.column += len(s)
			return
		}
		p.flushPending()
		p.out.WriteString(s[:nl])
		p.column += nl
		_ = p.flushSuffixes()
		p.out.WriteByte('\n')
		p.column = 0
		s = s[nl+1:]
	}
}

// flushPending writes the indentation owed since the last newline (if any) and then a deferred
// space (if one is pending and not trailing), in that order — matching teleivo-dot's renderer, which
// never emits a space or indentation that turns out to be trailing/for a blank line.
func (p *Printer) flushPending() {
	if p.pendingIndent {
		p.pendingIndent = false
		p.writeIndent()
	}
	if p.pendingSpace {
		p.pendingSpace = false
		p.out.WriteByte(' ')
		p.column++
	}
}

func (p *Printer) writeIndent() {
	switch p.opts.IndentStyle {
	case options.IndentTab:
		for range p.indentLevel {
			p.out.WriteByte('\t')
		}
	default:
		for range p.indentLevel {
			for range int(p.opts.IndentWidth) {
				p.out.WriteByte(' ')
			}
		}
	}
	// Column accounting for an indent level always uses IndentWidth (tab_width), regardless of
	// IndentStyle; alignment columns are always literal spaces (spec §9 open question decision).
	p.column += p.indentLevel * int(p.opts.IndentWidth)
	for range p.alignCols {
		p.out.WriteByte(' ')
	}
	p.column += p.alignCols
}

// flushSuffixes prints every queued line suffix inline, at the current writing position, and
// clears the queue. A no-op if nothing is queued (spec §9 open question decision).
func (p *Printer) flushSuffixes() error {
	if len(p.suffixes) == 0 {
		return nil
	}
	pending := p.suffixes
	p.suffixes = nil
	for _, s := range pending {
		savedIndent, savedAlign := p.indentLevel, p.alignCols
		p.indentLevel, p.alignCols = s.indent, s.align
		if err := p.print(s.elements, s.mode); err != nil {
			p.indentLevel, p.alignCols = savedIndent, savedAlign
			return err
		}
		p.indentLevel, p.alignCols = savedIndent, savedAlign
	}
	// Suffixes may themselves have queued further suffixes (e.g. a nested LineSuffix); flush
	// those too.
	if len(p.suffixes) > 0 {
		return p.flushSuffixes()
	}
	return nil
}
