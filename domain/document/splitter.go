package document

import (
	"strings"
	"unicode"

	"med-lab/errors"
)

const (
	DefaultChunkSize = 1000
	DefaultOverlap   = 200
)

// Splitter cuts document text into overlapping chunks on word boundaries.
type Splitter struct {
	chunkSize int
	overlap   int
}

func NewSplitter(chunkSize, overlap int) (*Splitter, error) {
	if chunkSize <= 0 || overlap < 0 || overlap >= chunkSize {
		return nil, errors.ErrInvalidChunking
	}
	return &Splitter{chunkSize: chunkSize, overlap: overlap}, nil
}

// Split returns the chunked text in document order. Each chunk holds at most
// chunkSize runes; consecutive chunks share roughly overlap runes so that
// sentences cut at a boundary stay retrievable. Words longer than chunkSize
// are hard-cut without overlap.
func (s *Splitter) Split(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	runes := []rune(text)
	if len(runes) <= s.chunkSize {
		return []string{text}
	}

	var chunks []string
	start := 0
	for start < len(runes) {
		end := start + s.chunkSize
		if end >= len(runes) {
			if chunk := strings.TrimSpace(string(runes[start:])); chunk != "" {
				chunks = append(chunks, chunk)
			}
			break
		}

		// Back off to the last word boundary inside the window.
		cut := end
		for cut > start && !unicode.IsSpace(runes[cut]) {
			cut--
		}
		if cut == start {
			cut = end
		}
		if chunk := strings.TrimSpace(string(runes[start:cut])); chunk != "" {
			chunks = append(chunks, chunk)
		}

		// Next chunk starts overlap runes back, snapped to a word start.
		next := cut - s.overlap
		for next > start && !unicode.IsSpace(runes[next-1]) {
			next--
		}
		if next <= start {
			next = cut
		}
		start = next
	}
	return chunks
}
