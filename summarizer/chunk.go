package summarizer

import "strings"

// Chunk is one window of the source text. Index is the position in the split order.
type Chunk struct {
	Index int
	Text  string
}

// cut points in order of preference
var separators = []string{"\n\n", "\n", " "}

// SplitText slides a window of size runes over text, stepping back overlap runes
// between consecutive windows. A window is cut early at a paragraph break, line
// break or space when one exists in its back half. Empty chunks are dropped.
func SplitText(text string, size, overlap int) []Chunk {
	runes := []rune(strings.TrimSpace(text))
	n := len(runes)
	if n == 0 {
		return nil
	}
	if size <= 0 {
		size = 1000
	}
	if overlap < 0 || overlap >= size {
		overlap = 0
	}

	var chunks []Chunk
	start := 0
	for start < n {
		end := min(start+size, n)
		if end < n {
			end = cutPoint(runes, start, end)
		}
		if piece := strings.TrimSpace(string(runes[start:end])); piece != "" {
			chunks = append(chunks, Chunk{Index: len(chunks), Text: piece})
		}
		if end >= n {
			break
		}
		next := end - overlap
		if next <= start {
			next = end
		}
		start = next
	}
	return chunks
}

// cutPoint returns the rune offset right after the last preferred separator
// found in runes[start+window/2 : end], or end when there is none.
func cutPoint(runes []rune, start, end int) int {
	lo := start + (end-start)/2
	window := string(runes[lo:end])
	for _, sep := range separators {
		if i := strings.LastIndex(window, sep); i >= 0 {
			// byte offset -> rune offset
			return lo + len([]rune(window[:i])) + len([]rune(sep))
		}
	}
	return end
}

// CountWords counts whitespace-delimited tokens.
func CountWords(text string) int {
	return len(strings.Fields(text))
}
