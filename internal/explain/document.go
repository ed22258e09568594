package explain

import (
	"strings"
	"unicode/utf8"
)

// ResolvedBlock is a block with its body split into spans.
type ResolvedBlock struct {
	Block
	Spans      []Span `json:"spans"`
	BlockLevel bool   `json:"blockLevel"`
}

// Document is the fully segmented form of one explanation.
type Document struct {
	Blocks []ResolvedBlock `json:"blocks"`
}

// Resolve segments text with the default dictionary.
func Resolve(text string) Document {
	return defaultDictionary.Resolve(text)
}

// Resolve segments text into blocks and each block body into spans.
func (d *Dictionary) Resolve(text string) Document {
	blocks := SegmentIntoBlocks(text)
	doc := Document{Blocks: make([]ResolvedBlock, 0, len(blocks))}
	for _, block := range blocks {
		spans := d.Spans(block.Body)
		if spans == nil {
			spans = []Span{}
		}
		doc.Blocks = append(doc.Blocks, ResolvedBlock{
			Block:      block,
			Spans:      spans,
			BlockLevel: IsBlockLevel(spans),
		})
	}
	return doc
}

// Empty reports whether the document has no blocks.
func (doc Document) Empty() bool {
	return len(doc.Blocks) == 0
}

// Math returns every math span in document order.
func (doc Document) Math() []Span {
	var out []Span
	for _, block := range doc.Blocks {
		for _, span := range block.Spans {
			if span.IsMath() {
				out = append(out, span)
			}
		}
	}
	return out
}

// Markdown re-emits the document with canonical delimiters: sections as
// "## Header", dictionary names expanded into $...$ and equation sets as a
// bold label followed by one $$...$$ line per expression.
func (doc Document) Markdown() string {
	var b strings.Builder
	for i, block := range doc.Blocks {
		if i > 0 {
			b.WriteString("\n\n")
		}
		if block.Kind == BlockSection {
			b.WriteString("## ")
			b.WriteString(block.Header)
			if block.Body != "" {
				b.WriteString("\n\n")
			}
		}
		for _, span := range block.Spans {
			switch span.Kind {
			case SpanText:
				b.WriteString(span.Text)
			case SpanInlineMath:
				b.WriteString("$" + span.Expr + "$")
			case SpanBlockMath:
				b.WriteString("$$" + span.Expr + "$$")
			case SpanMathSet:
				b.WriteString("**" + span.Label + "**")
				for _, expr := range span.Exprs {
					b.WriteString("\n\n$$" + expr + "$$")
				}
				b.WriteString("\n\n")
			}
		}
	}
	return strings.TrimSpace(b.String())
}

// Plain lays the document out as terminal text. Block-level bodies put each
// span on its own paragraph with display math indented; other bodies are a
// single inline run.
func (doc Document) Plain(renderer MathRenderer) string {
	parts := make([]string, 0, len(doc.Blocks))
	for _, block := range doc.Blocks {
		var b strings.Builder
		if block.Kind == BlockSection {
			b.WriteString(block.Header)
			b.WriteString("\n")
			b.WriteString(strings.Repeat("-", utf8.RuneCountInString(block.Header)))
			if block.Body != "" {
				b.WriteString("\n")
			}
		}
		b.WriteString(PlainBody(Render(block.Spans, renderer), block.BlockLevel))
		parts = append(parts, strings.TrimRight(b.String(), "\n "))
	}
	return strings.Join(parts, "\n\n")
}

// PlainBody lays out rendered spans of one block.
func PlainBody(rendered []Rendered, blockLevel bool) string {
	if !blockLevel {
		var b strings.Builder
		for _, r := range rendered {
			b.WriteString(r.Text())
		}
		return strings.TrimSpace(b.String())
	}
	paragraphs := make([]string, 0, len(rendered))
	for _, r := range rendered {
		switch r.Span.Kind {
		case SpanText:
			if text := strings.TrimSpace(r.Text()); text != "" {
				paragraphs = append(paragraphs, text)
			}
		case SpanInlineMath:
			paragraphs = append(paragraphs, r.Text())
		case SpanBlockMath:
			paragraphs = append(paragraphs, "    "+r.Text())
		case SpanMathSet:
			lines := []string{r.Span.Label + ":"}
			for _, line := range r.Lines {
				lines = append(lines, "    "+line)
			}
			paragraphs = append(paragraphs, strings.Join(lines, "\n"))
		}
	}
	return strings.Join(paragraphs, "\n\n")
}
