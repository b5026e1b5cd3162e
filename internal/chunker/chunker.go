// Package chunker splits cleaned document text into bounded, overlapping
// segments used as the unit of heuristic analysis.
package chunker

import (
	"strings"
)

// Config controls chunking behavior.
type Config struct {
	ChunkSize     int // Target chunk size in words.
	ChunkOverlap  int // Overlap between consecutive chunks in words.
	MinChunkChars int // Minimum chunk length in characters to emit.
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		ChunkSize:     1000,
		ChunkOverlap:  200,
		MinChunkChars: 100,
	}
}

// Split breaks text into chunks of approximately ChunkSize words. It prefers
// sentence boundaries, seeding each new chunk with the last two sentences of
// the previous one; when no sentence structure is found it falls back to a
// sliding word window. Chunks shorter than MinChunkChars are discarded.
// Empty input yields no chunks.
func Split(text string, cfg Config) []string {
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = 1000
	}
	if cfg.ChunkOverlap < 0 || cfg.ChunkOverlap >= cfg.ChunkSize {
		cfg.ChunkOverlap = cfg.ChunkSize / 5
	}

	if strings.TrimSpace(text) == "" {
		return nil
	}

	sentences := splitSentences(text)
	var chunks []string
	if len(sentences) > 1 {
		chunks = splitBySentences(sentences, cfg.ChunkSize)
	} else {
		chunks = splitByWords(text, cfg.ChunkSize, cfg.ChunkOverlap)
	}

	out := chunks[:0]
	for _, c := range chunks {
		if len(c) >= cfg.MinChunkChars {
			out = append(out, c)
		}
	}
	return out
}

// splitBySentences accumulates sentences until adding the next one would
// exceed targetWords, then closes the chunk and seeds the next with the last
// two sentences of the closed chunk.
func splitBySentences(sentences []string, targetWords int) []string {
	var chunks []string
	var current []string
	currentWords := 0
	seedLen := 0 // leading overlap sentences carried from the previous chunk

	for _, sent := range sentences {
		w := wordCount(sent)
		// Only close when the chunk holds at least one non-overlap sentence,
		// otherwise an oversized overlap would stall progress.
		if currentWords > 0 && currentWords+w > targetWords && len(current) > seedLen {
			chunks = append(chunks, strings.Join(current, " "))

			seed := current
			if len(seed) > 2 {
				seed = seed[len(seed)-2:]
			}
			current = append([]string(nil), seed...)
			seedLen = len(current)
			currentWords = 0
			for _, s := range current {
				currentWords += wordCount(s)
			}
		}
		current = append(current, sent)
		currentWords += w
	}

	// The tail is emitted only if it carries new material beyond the seed.
	if len(current) > seedLen {
		chunks = append(chunks, strings.Join(current, " "))
	}
	return chunks
}

// splitByWords slices text with a sliding window of targetWords, stepping by
// targetWords−overlapWords.
func splitByWords(text string, targetWords, overlapWords int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	step := targetWords - overlapWords
	if step <= 0 {
		step = targetWords
	}

	var chunks []string
	for i := 0; i < len(words); i += step {
		end := i + targetWords
		if end > len(words) {
			end = len(words)
		}
		chunks = append(chunks, strings.Join(words[i:end], " "))
		if end == len(words) {
			break
		}
	}
	return chunks
}

// splitSentences does basic sentence splitting on terminal punctuation.
func splitSentences(text string) []string {
	var sentences []string
	var current strings.Builder

	for i, r := range text {
		current.WriteRune(r)
		if (r == '.' || r == '!' || r == '?') && i+1 < len(text) && isSentenceGap(text[i+1]) {
			if s := strings.TrimSpace(current.String()); s != "" {
				sentences = append(sentences, s)
			}
			current.Reset()
		}
	}
	if s := strings.TrimSpace(current.String()); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}

func isSentenceGap(b byte) bool {
	return b == ' ' || b == '\n' || b == '\t'
}

func wordCount(s string) int {
	return len(strings.Fields(s))
}
