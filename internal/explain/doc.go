// Package explain segments free-form model explanations into renderable
// structure.
//
// An explanation is first split into Blocks: headed sections when the text
// carries markdown headers, otherwise blank-line paragraphs (with
// "Keyword: ..." paragraphs promoted to sections). Each block body is then
// split into Spans: literal text, inline math ($...$), display math
// ($$...$$), and named equations resolved through the equation Dictionary.
//
// # Failure Model
//
// Nothing in this package returns an error. Unbalanced delimiters stay in
// text spans, unknown equation names pass through unchanged, and text with no
// recognisable structure degrades to plain paragraphs. Math rendering is the
// only fallible step; Render substitutes each failing span's raw payload.
//
// # Entry Points
//
// SegmentIntoBlocks: text -> []Block.
// SegmentBlockIntoSpans: block body -> []Span using the default dictionary.
// Resolve: text -> Document (blocks with spans and layout).
// Render: spans -> display strings with per-span fallback.
//
// All functions are pure. The default dictionary and its compiled pattern
// are built once at package init and never mutated.
package explain
