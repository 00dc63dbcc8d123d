package token

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	// simpleCharsPerToken is the chars/4 heuristic used by the simple strategy.
	simpleCharsPerToken = 4

	// enhancedWordMultiplier weights the word-count signal.
	enhancedWordMultiplier = 1.3

	// enhancedSpecialDivisor converts the special-character count into a
	// token penalty. Source code carries more tokens per character than
	// prose because of punctuation and operators.
	enhancedSpecialDivisor = 10
)

// Estimator estimates the number of tokens a model would consume for a text.
// Implementations are pure and safe for concurrent use. Estimate returns 0
// only for empty input, otherwise at least 1.
type Estimator interface {
	Estimate(text string) int
}

// Kind selects an estimator strategy.
type Kind string

const (
	// KindSimple is the character-based strategy (~4 chars per token).
	KindSimple Kind = "simple"
	// KindEnhanced blends word, character, and special-character signals.
	KindEnhanced Kind = "enhanced"
)

// New creates an estimator of the given kind.
func New(kind Kind) (Estimator, error) {
	switch Kind(strings.ToLower(string(kind))) {
	case KindSimple, "":
		return Simple{}, nil
	case KindEnhanced:
		return Enhanced{}, nil
	default:
		return nil, fmt.Errorf("unknown tokenizer kind %q", kind)
	}
}

// EstimateBatch estimates each text independently. Estimate is pure, so a
// caller may parallelize this without changing results; the default form is
// a plain loop.
func EstimateBatch(e Estimator, texts []string) []int {
	counts := make([]int, len(texts))
	for i, t := range texts {
		counts[i] = e.Estimate(t)
	}
	return counts
}

// Simple estimates tokens from the character count alone: ceil(chars/4),
// minimum 1 for non-empty input. Cheap and language-agnostic.
type Simple struct{}

// Estimate implements Estimator.
func (Simple) Estimate(text string) int {
	if text == "" {
		return 0
	}
	chars := utf8.RuneCountInString(text)
	n := (chars + simpleCharsPerToken - 1) / simpleCharsPerToken
	if n < 1 {
		n = 1
	}
	return n
}

// Enhanced blends a word-count signal (words * 1.3) with a character-count
// signal (chars / 4), averages the two, then adds a penalty for special
// characters (non-alphanumeric, non-whitespace). A better proxy for source
// code than Simple, without a real tokenizer.
type Enhanced struct{}

// Estimate implements Estimator.
func (Enhanced) Estimate(text string) int {
	if text == "" {
		return 0
	}

	words := len(strings.Fields(text))
	chars := utf8.RuneCountInString(text)
	special := countSpecial(text)

	wordEstimate := int(float64(words) * enhancedWordMultiplier)
	charEstimate := chars / simpleCharsPerToken

	n := (wordEstimate+charEstimate)/2 + special/enhancedSpecialDivisor
	if n < 1 {
		n = 1
	}
	return n
}

func countSpecial(text string) int {
	n := 0
	for _, r := range text {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && !unicode.IsSpace(r) {
			n++
		}
	}
	return n
}
