package explain

import "strings"

// SegmentBlockIntoSpans splits a block body using the default dictionary.
func SegmentBlockIntoSpans(body string) []Span {
	return defaultDictionary.Spans(body)
}

// Spans splits body into text, inline-math ($...$), block-math ($$...$$) and
// dictionary-derived spans.
//
// Delimiters are matched left to right. A $$ pair may span lines; a single $
// pair must close on the same line, and a $$ inside it closes it only when
// another inline pair follows ("$x$$y$" is two expressions). Pairs that
// enclose only whitespace, delimiters preceded by a backslash, and unclosed
// delimiters stay in the surrounding text. Literal runs between math are scanned for
// dictionary names; a name that cannot be resolved is kept as text. Adjacent
// text is always merged, so plain input yields exactly one text span.
func (d *Dictionary) Spans(body string) []Span {
	if body == "" {
		return nil
	}
	var (
		spans    []Span
		litStart int
	)
	for i := 0; i < len(body); {
		if body[i] != '$' || escaped(body, i) {
			i++
			continue
		}
		if strings.HasPrefix(body[i:], "$$") {
			if end := strings.Index(body[i+2:], "$$"); end >= 0 {
				stop := i + 2 + end + 2
				if expr := strings.TrimSpace(body[i+2 : i+2+end]); expr != "" {
					spans = d.appendLiteral(spans, body, litStart, i)
					spans = append(spans, Span{
						Kind:   SpanBlockMath,
						Expr:   expr,
						Source: body[i:stop],
						Start:  i,
						End:    stop,
					})
					i, litStart = stop, stop
					continue
				}
			}
			i += 2
			continue
		}
		if end, ok := closingDollar(body, i+1); ok {
			if expr := strings.TrimSpace(body[i+1 : end]); expr != "" {
				spans = d.appendLiteral(spans, body, litStart, i)
				spans = append(spans, Span{
					Kind:   SpanInlineMath,
					Expr:   expr,
					Source: body[i : end+1],
					Start:  i,
					End:    end + 1,
				})
				i, litStart = end+1, end+1
				continue
			}
		}
		i++
	}
	return d.appendLiteral(spans, body, litStart, len(body))
}

// closingDollar finds the $ that closes an inline expression opened just
// before from. A doubled dollar closes only when its second half opens another
// inline pair on the same line ("$x$$y$"); otherwise it is skipped. A newline
// ends the search.
func closingDollar(body string, from int) (int, bool) {
	for j := from; j < len(body); j++ {
		switch body[j] {
		case '\n':
			return 0, false
		case '$':
			if escaped(body, j) {
				continue
			}
			if j+1 < len(body) && body[j+1] == '$' {
				if _, ok := closingDollar(body, j+2); ok {
					return j, true
				}
				j++
				continue
			}
			return j, true
		}
	}
	return 0, false
}

func escaped(body string, i int) bool {
	return i > 0 && body[i-1] == '\\'
}

// appendLiteral adds body[start:end] as text, substituting dictionary names.
func (d *Dictionary) appendLiteral(spans []Span, body string, start, end int) []Span {
	if start >= end {
		return spans
	}
	segment := body[start:end]
	cursor := 0
	for _, loc := range d.findNames(segment) {
		matched := segment[loc[0]:loc[1]]
		entry, ok := d.Lookup(matched)
		if !ok {
			continue
		}
		spans = appendText(spans, body, start+cursor, start+loc[0])
		span := Span{
			Kind:   SpanInlineMath,
			Source: matched,
			Start:  start + loc[0],
			End:    start + loc[1],
		}
		if entry.Set {
			span.Kind = SpanMathSet
			span.Exprs = entry.Exprs
			span.Label = matched
		} else {
			span.Expr = entry.Exprs[0]
		}
		spans = append(spans, span)
		cursor = loc[1]
	}
	return appendText(spans, body, start+cursor, end)
}

// appendText extends a directly preceding text span or starts a new one.
func appendText(spans []Span, body string, start, end int) []Span {
	if start >= end {
		return spans
	}
	if n := len(spans); n > 0 && spans[n-1].Kind == SpanText && spans[n-1].End == start {
		last := &spans[n-1]
		last.End = end
		last.Text = body[last.Start:end]
		last.Source = last.Text
		return spans
	}
	text := body[start:end]
	return append(spans, Span{Kind: SpanText, Text: text, Source: text, Start: start, End: end})
}
