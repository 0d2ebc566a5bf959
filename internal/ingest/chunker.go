// ABOUTME: Text chunker for document ingestion
// ABOUTME: Paragraph-aware splitting with a size cap and overlap
package ingest

import (
	"regexp"
	"strings"
)

var paragraphSplit = regexp.MustCompile(`\n{2,}`)

// ChunkText splits text into paragraph chunks, further splitting long
// paragraphs into size-capped pieces with the given overlap
func ChunkText(text string, size, overlap int) []string {
	var out []string
	for _, p := range paragraphSplit.Split(text, -1) {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, splitLong(p, size, overlap)...)
	}
	return out
}

func splitLong(s string, max, overlap int) []string {
	if len(s) <= max {
		return []string{s}
	}
	var res []string
	for i := 0; i < len(s); i += max - overlap {
		end := i + max
		if end > len(s) {
			end = len(s)
		}
		res = append(res, strings.TrimSpace(s[i:end]))
		if end == len(s) {
			break
		}
	}
	return res
}
