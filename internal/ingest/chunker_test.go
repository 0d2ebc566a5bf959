// ABOUTME: Tests for the text chunker
// ABOUTME: Covers paragraph splitting, long-paragraph capping, and overlap

package ingest

import (
	"strings"
	"testing"
)

func TestChunkText_Paragraphs(t *testing.T) {
	text := "first paragraph\n\nsecond paragraph\n\n\nthird paragraph"
	chunks := ChunkText(text, 1000, 200)

	if len(chunks) != 3 {
		t.Fatalf("got %d chunks, want 3", len(chunks))
	}
	if chunks[0] != "first paragraph" || chunks[2] != "third paragraph" {
		t.Errorf("chunks = %q", chunks)
	}
}

func TestChunkText_SkipsEmptyParagraphs(t *testing.T) {
	chunks := ChunkText("one\n\n   \n\ntwo", 1000, 200)
	if len(chunks) != 2 {
		t.Errorf("got %d chunks, want 2 (blank paragraph skipped)", len(chunks))
	}
}

func TestChunkText_SplitsLongParagraphs(t *testing.T) {
	long := strings.Repeat("a", 2500)
	chunks := ChunkText(long, 1000, 200)

	if len(chunks) < 3 {
		t.Fatalf("got %d chunks for a 2500-char paragraph, want at least 3", len(chunks))
	}
	for i, c := range chunks {
		if len(c) > 1000 {
			t.Errorf("chunk %d has %d chars, want <= 1000", i, len(c))
		}
	}
}

func TestChunkText_OverlapRepeatsContent(t *testing.T) {
	// Distinct characters make the overlap observable
	var sb strings.Builder
	for i := 0; i < 150; i++ {
		sb.WriteString("abcdefghij")
	}
	chunks := ChunkText(sb.String(), 1000, 200)

	if len(chunks) < 2 {
		t.Fatalf("got %d chunks, want at least 2", len(chunks))
	}
	tail := chunks[0][len(chunks[0])-200:]
	if !strings.HasPrefix(chunks[1], tail) {
		t.Error("second chunk does not begin with the 200-char overlap of the first")
	}
}

func TestChunkText_Empty(t *testing.T) {
	if chunks := ChunkText("", 1000, 200); len(chunks) != 0 {
		t.Errorf("got %d chunks for empty input, want 0", len(chunks))
	}
	if chunks := ChunkText("   \n\n  ", 1000, 200); len(chunks) != 0 {
		t.Errorf("got %d chunks for whitespace input, want 0", len(chunks))
	}
}
