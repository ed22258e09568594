package explain

import (
	"strings"
	"testing"
)

func TestSegmentIntoBlocksEmpty(t *testing.T) {
	for _, input := range []string{"", "   ", "\n\n\t\n"} {
		if blocks := SegmentIntoBlocks(input); len(blocks) != 0 {
			t.Fatalf("SegmentIntoBlocks(%q) = %#v, want none", input, blocks)
		}
	}
}

func TestSegmentIntoBlocksHeaderless(t *testing.T) {
	input := "Forces change motion.\n\nDefinition: a push or a pull.\n\n  \nSUMMARY: it moves.\n\nTheory - not a section."
	blocks := SegmentIntoBlocks(input)
	want := []Block{
		{Kind: BlockParagraph, Body: "Forces change motion."},
		{Kind: BlockSection, Header: "Definition", Body: "a push or a pull."},
		{Kind: BlockSection, Header: "SUMMARY", Body: "it moves."},
		{Kind: BlockParagraph, Body: "Theory - not a section."},
	}
	assertBlocks(t, blocks, want)
}

func TestSegmentIntoBlocksHeaderlessNeverSections(t *testing.T) {
	inputs := []string{
		"plain words only",
		"#hashtag trending now",
		"####### seven hashes",
		"Overview : spaced colon",
		"    # indented code line",
		"```\n# not a header\n```",
		"$unclosed and $$also unclosed",
	}
	for _, input := range inputs {
		for _, block := range SegmentIntoBlocks(input) {
			if block.Kind != BlockParagraph {
				t.Fatalf("SegmentIntoBlocks(%q) produced %#v", input, block)
			}
		}
	}
}

func TestSegmentIntoBlocksHeadered(t *testing.T) {
	input := "Lead in.\n\n# Introduction\nBody one.\n\n## Key Equations ##\n\nBody two\nmore\n\n#Theory\n### C#\ncode talk"
	blocks := SegmentIntoBlocks(input)
	want := []Block{
		{Kind: BlockParagraph, Body: "Lead in."},
		{Kind: BlockSection, Header: "Introduction", Body: "Body one."},
		{Kind: BlockSection, Header: "Key Equations", Body: "Body two\nmore"},
		{Kind: BlockSection, Header: "Theory", Body: ""},
		{Kind: BlockSection, Header: "C#", Body: "code talk"},
	}
	assertBlocks(t, blocks, want)
}

func TestSegmentIntoBlocksBodiesReconstructText(t *testing.T) {
	input := "Opening remark.\n\n## Overview\n\nFirst part.\nStill first.\n\n## Applications\nSecond part.\n\n\n"
	blocks := SegmentIntoBlocks(input)

	var bodies []string
	for _, block := range blocks {
		bodies = append(bodies, block.Body)
	}
	var kept []string
	for _, line := range strings.Split(input, "\n") {
		if _, ok := parseHeaderLine(line); ok {
			continue
		}
		kept = append(kept, line)
	}
	got := strings.Join(strings.Fields(strings.Join(bodies, "\n")), " ")
	want := strings.Join(strings.Fields(strings.Join(kept, "\n")), " ")
	if got != want {
		t.Fatalf("bodies = %q, want %q", got, want)
	}
}

func TestSegmentIntoBlocksSkipsFencedCode(t *testing.T) {
	input := "# Examples\n```python\n# a comment\nx = 1\n```\n# Summary\ndone"
	blocks := SegmentIntoBlocks(input)
	if len(blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %#v", blocks)
	}
	if !strings.Contains(blocks[0].Body, "# a comment") {
		t.Fatalf("fenced comment should stay in the body, got %q", blocks[0].Body)
	}
	if blocks[1].Header != "Summary" {
		t.Fatalf("second header = %q", blocks[1].Header)
	}
}

func TestSegmentIntoBlocksCRLF(t *testing.T) {
	blocks := SegmentIntoBlocks("# History\r\nbody line\r\n")
	assertBlocks(t, blocks, []Block{{Kind: BlockSection, Header: "History", Body: "body line"}})
}

func assertBlocks(t *testing.T, got, want []Block) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d blocks %#v, want %d", len(got), got, len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("block %d = %#v, want %#v", i, got[i], want[i])
		}
	}
}
