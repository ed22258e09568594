// Package textutil provides small text helpers shared by the segmenter, the
// LLM clients, and the CLI.
//
// The primary use cases are:
//   - Case folding and apostrophe normalisation for dictionary lookups
//   - Title casing header labels for display
//   - Normalising line endings and splitting blank-line paragraphs
//   - Summarising payloads for error messages
//   - Sanitizing filenames derived from user topics
package textutil
