// Package options defines the public configuration surface of the formatter: [FormatOptions]
// (the knobs an AST adapter or CLI cares about) and [PrinterOptions] (the narrower projection
// the [printer] package actually consumes).
//
// Grounded on the teacher's layout.Format/NewFormat string-to-enum pattern
// (internal/layout/layout.go) and cmd/dotfmt/main.go's flag wiring, generalized to the full key
// set in spec §6; defaults and bounds follow original_source/src/options.rs.
package options

import "fmt"

// IndentStyle selects whether indentation is printed as tabs or spaces.
type IndentStyle int

const (
	// IndentTab prints one tab character per indent level. This is the default, matching
	// Prettier/oxc_formatter's own default and the teacher's tab-only renderer.
	IndentTab IndentStyle = iota
	IndentSpace
)

func (s IndentStyle) String() string {
	switch s {
	case IndentTab:
		return "Tab"
	case IndentSpace:
		return "Space"
	default:
		return "invalid IndentStyle"
	}
}

// IndentWidth is the number of spaces one indent level represents when IndentStyle is
// IndentSpace (and the column width attributed to a tab when accounting for alignment). Valid
// range is [0, 24].
type IndentWidth uint8

const (
	MinIndentWidth IndentWidth = 0
	MaxIndentWidth IndentWidth = 24
	// DefaultIndentWidth is applied by [NewFormatOptions] when unset.
	DefaultIndentWidth IndentWidth = 2
)

// LineWidth is the target column budget a line should fit within. Valid range is [1, 320].
type LineWidth uint16

const (
	MinLineWidth LineWidth = 1
	MaxLineWidth LineWidth = 320
	// DefaultLineWidth is applied by [NewFormatOptions] when unset.
	DefaultLineWidth LineWidth = 80
)

// LineEnding selects the newline sequence the printer emits.
type LineEnding int

const (
	LineFeed LineEnding = iota
	CarriageReturnLineFeed
	CarriageReturn
)

// AsString returns the literal newline sequence for this ending.
func (e LineEnding) AsString() string {
	switch e {
	case LineFeed:
		return "\n"
	case CarriageReturnLineFeed:
		return "\r\n"
	case CarriageReturn:
		return "\r"
	default:
		return "\n"
	}
}

// QuoteStyle selects the preferred quote character for string and JSX literals.
type QuoteStyle int

const (
	QuoteDouble QuoteStyle = iota
	QuoteSingle
)

// QuoteProperties controls when object property keys are quoted.
type QuoteProperties int

const (
	QuotePropertiesAsNeeded QuoteProperties = iota
	QuotePropertiesPreserve
)

// TrailingCommas controls where trailing commas are inserted in multi-line structures.
type TrailingCommas int

const (
	TrailingCommasAll TrailingCommas = iota
	TrailingCommasES5
	TrailingCommasNone
)

// Semicolons controls whether statement-terminating semicolons are always printed or only when
// ASI would otherwise change meaning.
type Semicolons int

const (
	SemicolonsAlways Semicolons = iota
	SemicolonsAsNeeded
)

// ArrowParentheses controls whether a single arrow-function parameter is always parenthesized.
type ArrowParentheses int

const (
	ArrowParenthesesAlways ArrowParentheses = iota
	ArrowParenthesesAsNeeded
)

// AttributePosition controls how JSX/HTML-like attribute lists wrap.
type AttributePosition int

const (
	AttributePositionAuto AttributePosition = iota
	AttributePositionMultiline
)

// Expand controls whether object/array literals are always expanded, collapsed when they fit,
// or expanded only when the source already had a line break after the opening bracket (Auto,
// matching Prettier's object-literal heuristic).
type Expand int

const (
	ExpandAuto Expand = iota
	ExpandAlways
	ExpandNever
)

// FormatOptions is the full set of formatting knobs an AST adapter or CLI may set. Use
// [NewFormatOptions] to get defaulted, validated options; the zero value is not a valid
// FormatOptions (its LineWidth of 0 is outside [1, 320] and fails Validate, and its IndentWidth
// of 0 is in range but not the default).
type FormatOptions struct {
	IndentStyle        IndentStyle
	IndentWidth        IndentWidth
	LineEnding         LineEnding
	LineWidth          LineWidth
	QuoteStyle         QuoteStyle
	JSXQuoteStyle      QuoteStyle
	QuoteProperties    QuoteProperties
	TrailingCommas     TrailingCommas
	Semicolons         Semicolons
	ArrowParentheses   ArrowParentheses
	BracketSpacing     bool
	BracketSameLine    bool
	AttributePosition  AttributePosition
	Expand             Expand
}

// NewFormatOptions returns a FormatOptions with spec-mandated defaults: IndentStyle=Tab,
// IndentWidth=2, LineWidth=80, LineEnding=Lf, QuoteStyle=Double, BracketSpacing=true,
// BracketSameLine=false, all other enums at their first declared variant (TrailingCommasAll,
// SemicolonsAlways, ArrowParenthesesAlways, QuotePropertiesAsNeeded, AttributePositionAuto,
// ExpandAuto).
func NewFormatOptions() FormatOptions {
	return FormatOptions{
		IndentStyle:     IndentTab,
		IndentWidth:     DefaultIndentWidth,
		LineEnding:      LineFeed,
		LineWidth:       DefaultLineWidth,
		QuoteStyle:      QuoteDouble,
		JSXQuoteStyle:   QuoteDouble,
		QuoteProperties: QuotePropertiesAsNeeded,
		TrailingCommas:  TrailingCommasAll,
		Semicolons:      SemicolonsAlways,
		ArrowParentheses: ArrowParenthesesAlways,
		BracketSpacing:  true,
		BracketSameLine: false,
		AttributePosition: AttributePositionAuto,
		Expand:          ExpandAuto,
	}
}

// Validate returns a ConfigurationOutOfRangeError if IndentWidth or LineWidth fall outside
// their documented bounds (spec §7, ConfigurationOutOfRange).
func (o FormatOptions) Validate() error {
	if o.IndentWidth < MinIndentWidth || o.IndentWidth > MaxIndentWidth {
		return &ConfigurationOutOfRangeError{Field: "IndentWidth", Value: int(o.IndentWidth), Min: int(MinIndentWidth), Max: int(MaxIndentWidth)}
	}
	if o.LineWidth < MinLineWidth || o.LineWidth > MaxLineWidth {
		return &ConfigurationOutOfRangeError{Field: "LineWidth", Value: int(o.LineWidth), Min: int(MinLineWidth), Max: int(MaxLineWidth)}
	}
	return nil
}

// ConfigurationOutOfRangeError reports an option value outside its valid bounds.
type ConfigurationOutOfRangeError struct {
	Field          string
	Value, Min, Max int
}

func (e *ConfigurationOutOfRangeError) Error() string {
	return fmt.Sprintf("%s=%d is out of range [%d, %d]", e.Field, e.Value, e.Min, e.Max)
}

// TabWidth returns the column width attributed to a tab when accounting for alignment; it
// mirrors IndentWidth per original_source/src/options.rs's FormatOptions::tab_width.
func (o FormatOptions) TabWidth() IndentWidth {
	return o.IndentWidth
}

// PrinterOptions is the narrower projection of FormatOptions the printer package consumes: just
// enough to lay out text, independent of language-specific knobs like quote style.
type PrinterOptions struct {
	IndentStyle IndentStyle
	IndentWidth IndentWidth
	LineEnding  LineEnding
	PrintWidth  LineWidth
}

// AsPrinterOptions projects FormatOptions down to the fields the printer needs, the same split
// original_source/src/options.rs draws between FormatOptions::as_print_options and the rest of
// FormatOptions's language-specific accessors.
func (o FormatOptions) AsPrinterOptions() PrinterOptions {
	return PrinterOptions{
		IndentStyle: o.IndentStyle,
		IndentWidth: o.IndentWidth,
		LineEnding:  o.LineEnding,
		PrintWidth:  o.LineWidth,
	}
}
