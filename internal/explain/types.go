package explain

import "strings"

// BlockKind distinguishes headed sections from free paragraphs.
type BlockKind string

const (
	BlockSection   BlockKind = "section"
	BlockParagraph BlockKind = "paragraph"
)

// Block is a top-level structural unit of an explanation.
type Block struct {
	Kind   BlockKind `json:"kind"`
	Header string    `json:"header,omitempty"`
	Body   string    `json:"body"`
}

// SpanKind identifies how a span's payload should be displayed.
type SpanKind string

const (
	SpanText       SpanKind = "text"
	SpanInlineMath SpanKind = "inline-math"
	SpanBlockMath  SpanKind = "block-math"
	SpanMathSet    SpanKind = "math-set"
)

// Span is a piece of a block body. Text spans carry Text; inline and block
// math carry Expr; math sets carry Exprs and Label. Start and End are byte
// offsets into the body and Source is the exact slice they cover.
type Span struct {
	Kind   SpanKind `json:"kind"`
	Text   string   `json:"text,omitempty"`
	Expr   string   `json:"expr,omitempty"`
	Exprs  []string `json:"exprs,omitempty"`
	Label  string   `json:"label,omitempty"`
	Source string   `json:"source"`
	Start  int      `json:"start"`
	End    int      `json:"end"`
}

// Fallback returns the span's raw payload as a display string, used when
// math rendering fails.
func (s Span) Fallback() string {
	switch s.Kind {
	case SpanText:
		return s.Text
	case SpanInlineMath, SpanBlockMath:
		return s.Expr
	case SpanMathSet:
		return strings.Join(s.Exprs, ", ")
	default:
		return s.Source
	}
}

// IsMath reports whether the span holds one or more expressions.
func (s Span) IsMath() bool {
	return s.Kind == SpanInlineMath || s.Kind == SpanBlockMath || s.Kind == SpanMathSet
}

// IsBlockLevel reports whether spans must be laid out as block content:
// true when any span is display math or an equation set. Otherwise the spans
// form a single inline run.
func IsBlockLevel(spans []Span) bool {
	for _, s := range spans {
		if s.Kind == SpanBlockMath || s.Kind == SpanMathSet {
			return true
		}
	}
	return false
}
