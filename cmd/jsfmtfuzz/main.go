// Command jsfmtfuzz is a smoke-test / exploratory driver: it builds random small ASTs, formats
// them at random line widths, and checks the testable properties spec.md §8 lists as invariants,
// as far as they're observable through this repo's public API.
//
// Grounded on teleivo-dot/cmd/tokens/main.go's shape (a small, standalone exploratory `cmd/` that
// drives one package directly and reports anomalies to stdout). Every generated program is
// checked; the command exits nonzero at the end if any check failed.
// Random generation uses the standard library's math/rand/v2; no property-testing or fuzz-input
// library (e.g. pgregory.net/rapid, leanovate/gopter) appears anywhere in the reference pack as a
// real dependency of a complete repo, so there is nothing grounded to wire in its place.
package main

import (
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"reflect"

	"github.com/arjunmenon/jsfmt/ast"
	"github.com/arjunmenon/jsfmt/buffer"
	"github.com/arjunmenon/jsfmt/document"
	"github.com/arjunmenon/jsfmt/format"
	"github.com/arjunmenon/jsfmt/options"
	"github.com/arjunmenon/jsfmt/state"
)

func main() {
	n := flag.Int("n", 200, "number of random programs to check")
	seed := flag.Uint64("seed", 1, "PRNG seed, for reproducing a failure")
	maxStmts := flag.Int("max-stmts", 4, "maximum top-level statements per generated program")
	flag.Parse()

	rng := rand.New(rand.NewPCG(*seed, *seed^0x9e3779b97f4a7c15))
	failures := 0
	for i := 0; i < *n; i++ {
		prog := randomProgram(rng, *maxStmts)
		if err := checkInvariants(rng, prog); err != nil {
			failures++
			fmt.Printf("program %d (seed %d): %v\n", i, *seed, err)
		}
	}

	fmt.Printf("checked %d programs, %d failures\n", *n, failures)
	if failures > 0 {
		os.Exit(1)
	}
}

// checkInvariants runs the subset of spec.md §8's invariants that are observable without
// reaching into printer-internal state:
//
//  1. balanced tags — implicit: document.New panics (via internal/assert) on an unbalanced
//     stream, and that panic is converted to a reported failure by the recover() in this
//     function, rather than crashing the whole run.
//  2. propagate_expand is idempotent — checked directly against the built Document.
//  4. printer output does not depend on incidental details of how the tree was built — checked
//     as "formatting is deterministic" (same program, same options, same output) and as
//     "formatting is idempotent" (reformatting already-formatted output is a no-op).
//
// 3, 5, and 6 concern internal printer/buffer state (resolved group modes, RemoveSoftLinesBuffer
// output) that isn't part of this repo's public API and so isn't exercised here; see
// printer_test.go and buffer_test.go for those.
func checkInvariants(rng *rand.Rand, prog *ast.Program) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()

	opts := options.NewFormatOptions()
	opts.LineWidth = options.LineWidth(1 + rng.IntN(int(options.MaxLineWidth)))

	if propErr := checkPropagateExpandIdempotent(prog, opts); propErr != nil {
		return propErr
	}

	out1, formatErr := ast.Format(prog, opts)
	if formatErr != nil {
		return fmt.Errorf("Format: %w", formatErr)
	}

	out2, formatErr := ast.Format(prog, opts)
	if formatErr != nil {
		return fmt.Errorf("Format (second pass): %w", formatErr)
	}
	if out1 != out2 {
		return fmt.Errorf("Format is not deterministic: %q then %q", out1, out2)
	}

	reparsed, parseErr := ast.Parse(out1)
	if parseErr != nil {
		return fmt.Errorf("formatted output does not parse: %w\noutput: %q", parseErr, out1)
	}
	out3, formatErr := ast.Format(reparsed, opts)
	if formatErr != nil {
		return fmt.Errorf("Format of reparsed output: %w", formatErr)
	}
	if out1 != out3 {
		return fmt.Errorf("formatting is not idempotent: %q then %q", out1, out3)
	}
	return nil
}

// checkPropagateExpandIdempotent rebuilds prog's element stream directly (mirroring
// ast.Format's own pipeline) so it can call Document.PropagateExpand twice and compare the
// result, the same check document_test.go makes for hand-built element slices.
func checkPropagateExpandIdempotent(prog *ast.Program, opts options.FormatOptions) error {
	st := state.New(opts)
	vb := buffer.NewVecBuffer(st)
	fr := format.New(vb)
	if err := prog.Fmt(fr); err != nil {
		return fmt.Errorf("building document: %w", err)
	}

	doc := document.New(vb.Finish())
	doc.PropagateExpand()
	first := toAnySlice(doc.Elements())

	doc.PropagateExpand()
	second := toAnySlice(doc.Elements())

	if !reflect.DeepEqual(first, second) {
		return fmt.Errorf("propagate_expand is not idempotent")
	}
	return nil
}

func toAnySlice[T any](s []T) []any {
	out := make([]any, len(s))
	for i, v := range s {
		out[i] = v
	}
	return out
}
