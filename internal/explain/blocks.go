package explain

import (
	"regexp"
	"strings"

	"github.com/NAG1RA/tumo-ai-teens-hackathon/internal/textutil"
)

// sectionKeywords may directly follow the hash run of a header ("#Theory")
// and introduce keyword-colon sections in headerless text.
var sectionKeywords = []string{
	"introduction",
	"overview",
	"definition",
	"principles",
	"theory",
	"equations",
	"applications",
	"examples",
	"history",
	"conclusion",
	"summary",
}

var (
	headerLinePattern   = regexp.MustCompile(`^ {0,3}(#{1,6})([ \t]*)(.*)$`)
	keywordPrefix       = regexp.MustCompile(`(?i)^(?:` + strings.Join(sectionKeywords, "|") + `)\b`)
	keywordColonPattern = regexp.MustCompile(`(?i)^(` + strings.Join(sectionKeywords, "|") + `):`)
)

type headerLine struct {
	start int // offset of the first byte of the line
	end   int // offset just past the line terminator
	title string
}

// SegmentIntoBlocks splits an explanation into sections and paragraphs.
//
// When at least one markdown header line is present the text is cut at each
// header: any non-blank content before the first header becomes a paragraph,
// and every header owns the content up to the next header. Lines inside
// fenced code are never headers. Without headers the text is split on blank
// lines and each paragraph that starts with "Keyword:" becomes a section
// named after the keyword. Empty or whitespace-only input yields no blocks.
func SegmentIntoBlocks(text string) []Block {
	text = textutil.NormalizeNewlines(text)
	if strings.TrimSpace(text) == "" {
		return nil
	}
	headers := findHeaderLines(text)
	if len(headers) == 0 {
		return segmentHeaderless(text)
	}

	var blocks []Block
	if lead := strings.TrimSpace(text[:headers[0].start]); lead != "" {
		blocks = append(blocks, Block{Kind: BlockParagraph, Body: lead})
	}
	for i, h := range headers {
		bodyEnd := len(text)
		if i+1 < len(headers) {
			bodyEnd = headers[i+1].start
		}
		blocks = append(blocks, Block{
			Kind:   BlockSection,
			Header: h.title,
			Body:   strings.TrimSpace(text[h.end:bodyEnd]),
		})
	}
	return blocks
}

func segmentHeaderless(text string) []Block {
	paragraphs := textutil.SplitParagraphs(text)
	blocks := make([]Block, 0, len(paragraphs))
	for _, p := range paragraphs {
		if m := keywordColonPattern.FindStringSubmatchIndex(p); m != nil {
			blocks = append(blocks, Block{
				Kind:   BlockSection,
				Header: p[m[2]:m[3]],
				Body:   strings.TrimSpace(p[m[1]:]),
			})
			continue
		}
		blocks = append(blocks, Block{Kind: BlockParagraph, Body: p})
	}
	return blocks
}

func findHeaderLines(text string) []headerLine {
	var (
		headers []headerLine
		inFence bool
		fence   string
	)
	for start := 0; start < len(text); {
		end := strings.IndexByte(text[start:], '\n')
		next := len(text)
		line := text[start:]
		if end >= 0 {
			next = start + end + 1
			line = text[start : start+end]
		}
		trimmed := strings.TrimLeft(line, " \t")
		switch {
		case inFence:
			if strings.HasPrefix(trimmed, fence) {
				inFence = false
			}
		case strings.HasPrefix(trimmed, "```"), strings.HasPrefix(trimmed, "~~~"):
			inFence = true
			fence = trimmed[:3]
		default:
			if title, ok := parseHeaderLine(line); ok {
				headers = append(headers, headerLine{start: start, end: next, title: title})
			}
		}
		start = next
	}
	return headers
}

// parseHeaderLine accepts "## Title" (hashes, whitespace, title) and the
// compact "##Theory" form when the title starts with a section keyword.
func parseHeaderLine(line string) (string, bool) {
	m := headerLinePattern.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	gap, rest := m[2], m[3]
	if strings.HasPrefix(rest, "#") {
		return "", false
	}
	title := stripClosingHashes(strings.TrimSpace(rest))
	if title == "" {
		return "", false
	}
	if gap == "" && !keywordPrefix.MatchString(title) {
		return "", false
	}
	return title, true
}

// stripClosingHashes drops an optional closing "###" sequence. The run only
// counts as closing when it stands alone or follows whitespace, so "C#"
// keeps its hash.
func stripClosingHashes(title string) string {
	trimmed := strings.TrimRight(title, "#")
	if trimmed == title {
		return title
	}
	if trimmed == "" {
		return ""
	}
	last := trimmed[len(trimmed)-1]
	if last != ' ' && last != '\t' {
		return title
	}
	return strings.TrimSpace(trimmed)
}
