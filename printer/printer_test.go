package printer

import (
	"testing"

	"github.com/teleivo/assertive/assert"
	"github.com/teleivo/assertive/require"

	"github.com/arjunmenon/jsfmt/builder"
	"github.com/arjunmenon/jsfmt/buffer"
	"github.com/arjunmenon/jsfmt/document"
	"github.com/arjunmenon/jsfmt/format"
	"github.com/arjunmenon/jsfmt/internal/groupid"
	"github.com/arjunmenon/jsfmt/options"
	"github.com/arjunmenon/jsfmt/state"
)

func render(t *testing.T, width options.LineWidth, content format.Format) string {
	t.Helper()
	opts := options.NewFormatOptions()
	opts.LineWidth = width
	st := state.New(opts)
	vb := buffer.NewVecBuffer(st)
	f := format.New(vb)
	err := content.Fmt(f)
	require.NoErrorf(t, err, "Fmt()")

	doc := document.New(vb.Finish())
	doc.PropagateExpand()

	got, err := Print(doc, opts.AsPrinterOptions())
	require.NoErrorf(t, err, "Print()")
	return got
}

func TestPrintSimpleConcat(t *testing.T) {
	got := render(t, 80, builder.Concat(builder.Text("a"), builder.Space(), builder.Text("b")))
	assert.Equalf(t, got, "a b", "Print")
}

func TestPrintGroupFitsFlat(t *testing.T) {
	content := builder.Group(builder.Concat(
		builder.Text("a"),
		builder.SoftLineBreakOrSpace(),
		builder.Text("b"),
	))

	got := render(t, 80, content)
	assert.Equalf(t, got, "a b", "Print at width 80")

	got = render(t, 2, content)
	assert.Equalf(t, got, "a\nb", "Print at width 2")
}

func TestPrintHardLineAlwaysExpands(t *testing.T) {
	content := builder.Group(builder.HardLineBreak())
	got := render(t, 80, content)
	assert.Equalf(t, got, "\n", "Print")
}

func TestPrintIndentAddsOneTabPerNewline(t *testing.T) {
	content := builder.Group(builder.Concat(
		builder.Text("a"),
		builder.Indent(builder.Concat(builder.HardLineBreak(), builder.Text("b"))),
		builder.HardLineBreak(),
		builder.Text("c"),
	))
	got := render(t, 80, content)
	assert.Equalf(t, got, "a\n\tb\nc", "Print")
}

func TestPrintBestFittingPicksFirstFittingVariant(t *testing.T) {
	content := builder.BestFitting(
		builder.Text("long flat form"),
		builder.Indent(builder.Concat(builder.HardLineBreak(), builder.Text("wrapped"))),
	)
	got := render(t, 5, content)
	assert.Equalf(t, got, "\n\twrapped", "Print picks the second variant when the first overflows")

	got = render(t, 80, content)
	assert.Equalf(t, got, "long flat form", "Print picks the first variant when it fits")
}

func TestPrintLineSuffixDeferredUntilNewline(t *testing.T) {
	content := builder.Concat(
		builder.LineSuffix(builder.Text(" // note")),
		builder.Text("x"),
		builder.HardLineBreak(),
		builder.Text("y"),
	)
	got := render(t, 80, content)
	assert.Equalf(t, got, "x // note\ny", "Print")
}

func TestPrintConditionalContentMatchesGroupMode(t *testing.T) {
	ids := groupid.NewBuilder()
	id := ids.New("target")

	content := builder.Group(builder.Concat(
		builder.Text("a"),
		builder.HardLineBreak(),
	)).WithID(id)

	wrapped := builder.Concat(
		content,
		builder.IfGroupBreaks(builder.Text(" (expanded)"), id),
		builder.IfGroupFitsOnLine(builder.Text(" (flat)"), id),
	)

	got := render(t, 80, wrapped)
	assert.Equalf(t, got, "a\n (expanded)", "Print: the group is forced to expand by the hard line")
}

func TestPrintFillBreaksOnlyWhereNeeded(t *testing.T) {
	content := builder.Fill(
		builder.SoftLineBreakOrSpace(),
		builder.Text("aa"),
		builder.Text("bb"),
		builder.Text("cc"),
	)
	got := render(t, 5, content)
	assert.Equalf(t, got, "aa bb\ncc", "Print: cc does not fit after aa bb so it breaks onto its own line")
}

func TestPrintVerbatimFlushesPendingSpace(t *testing.T) {
	content := builder.Concat(builder.Text("a"), builder.Space(), builder.VerbatimRange(builder.Text("b")))
	got := render(t, 80, content)
	assert.Equalf(t, got, "a b", "Print: the pending space before a VerbatimRange must still be written")
}

func TestPrintVerbatimKeepsColumnInSync(t *testing.T) {
	content := builder.Concat(
		builder.VerbatimRange(builder.Text("1234567890")),
		builder.Group(builder.Concat(builder.SoftLineBreakOrSpace(), builder.Text("next"))),
	)
	got := render(t, 12, content)
	assert.Equalf(t, got, "1234567890\nnext", "Print: the group after a 10-column VerbatimRange has only 2 columns of budget left and must break")
}

func TestPrintIsIndependentOfInternedSharing(t *testing.T) {
	shared := builder.NewInterned(builder.Concat(builder.Text("shared"), builder.Space()))

	direct := builder.Concat(builder.Text("shared"), builder.Space(), builder.Text("x"), builder.Space(), builder.Text("shared"), builder.Space(), builder.Text("y"))
	interned := builder.Concat(builder.Interned(shared), builder.Text("x"), builder.Space(), builder.Interned(shared), builder.Text("y"))

	gotDirect := render(t, 80, direct)
	gotInterned := render(t, 80, interned)
	assert.Equalf(t, gotInterned, gotDirect, "interned and direct documents with equal content print equal output")
}
