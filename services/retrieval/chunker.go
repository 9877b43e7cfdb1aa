package retrieval

import "strings"

// Separator hierarchy: paragraph breaks, then line breaks, then sentence
// punctuation, then raw characters.
var separators = []string{"\n\n", "\n", ". ", "! ", "? ", ""}

// DocumentChunker splits document text into bounded-size passages, each
// chunk after the first carrying the trailing `overlap` characters of its
// predecessor as leading context. The concatenation of chunks minus overlaps
// reproduces the input with no gaps.
type DocumentChunker struct {
	chunkSize int
	overlap   int
}

func NewDocumentChunker(chunkSize, overlap int) *DocumentChunker {
	if chunkSize <= 0 {
		chunkSize = 1000
	}
	if overlap < 0 || overlap >= chunkSize {
		overlap = 0
	}
	return &DocumentChunker{chunkSize: chunkSize, overlap: overlap}
}

// Split chunks the full text. Returns nil for empty input.
func (c *DocumentChunker) Split(text string) []string {
	if text == "" {
		return nil
	}

	// Base segments cover the text without overlap and leave room for the
	// overlap prefix added below.
	segments := split(text, c.chunkSize-c.overlap, separators)
	if len(segments) == 0 {
		return nil
	}

	chunks := make([]string, 0, len(segments))
	chunks = append(chunks, segments[0])
	for _, seg := range segments[1:] {
		prev := chunks[len(chunks)-1]
		tail := prev
		if len(tail) > c.overlap {
			tail = tail[len(tail)-c.overlap:]
		}
		chunks = append(chunks, tail+seg)
	}
	return chunks
}

// split recursively divides text into ordered covering segments of at most
// `limit` characters, preferring the earliest separator in the hierarchy
// that occurs in the text and falling back to hard character cuts.
func split(text string, limit int, seps []string) []string {
	if text == "" {
		return nil
	}
	if len(text) <= limit {
		return []string{text}
	}

	sep := ""
	var rest []string
	for i, s := range seps {
		if s == "" {
			break
		}
		if strings.Contains(text, s) {
			sep = s
			rest = seps[i+1:]
			break
		}
	}

	if sep == "" {
		// No separator left: hard cut.
		var out []string
		for start := 0; start < len(text); start += limit {
			end := start + limit
			if end > len(text) {
				end = len(text)
			}
			out = append(out, text[start:end])
		}
		return out
	}

	// Separators stay attached to the preceding piece so that the
	// concatenation of segments reproduces the input exactly.
	parts := strings.SplitAfter(text, sep)

	var out []string
	var cur strings.Builder
	flush := func() {
		if cur.Len() > 0 {
			out = append(out, cur.String())
			cur.Reset()
		}
	}
	for _, part := range parts {
		if part == "" {
			continue
		}
		if len(part) > limit {
			flush()
			out = append(out, split(part, limit, rest)...)
			continue
		}
		if cur.Len()+len(part) > limit {
			flush()
		}
		cur.WriteString(part)
	}
	flush()
	return out
}
