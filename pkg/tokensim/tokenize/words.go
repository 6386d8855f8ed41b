package tokenize

import (
	"strings"
	"unicode"
)

// Words splits text into lowercase word tokens made of letters, digits and
// hyphens, dropping stopwords. It is immutable after construction.
type Words struct {
	stopwords   map[string]struct{}
	minLength   int
	dropNumeric bool
	scaler      Scaler
}

// WordsOption configures a Words tokenizer
type WordsOption func(*Words)

// WithMinLength drops tokens shorter than n runes
func WithMinLength(n int) WordsOption {
	return func(w *Words) { w.minLength = n }
}

// WithoutNumeric drops tokens made only of digits and hyphens.
// Mixed tokens like "gpt-4" or "utf-8" are kept.
func WithoutNumeric() WordsOption {
	return func(w *Words) { w.dropNumeric = true }
}

// WithScaler rescales the token counts
func WithScaler(s Scaler) WordsOption {
	return func(w *Words) { w.scaler = s }
}

// NewWords creates a word tokenizer with the given stopword list
func NewWords(stopwords []string, opts ...WordsOption) *Words {
	stops := make(map[string]struct{}, len(stopwords))
	for _, sw := range stopwords {
		stops[strings.ToLower(sw)] = struct{}{}
	}
	w := &Words{stopwords: stops, minLength: 1}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Tokenize implements Tokenizer.
func (w *Words) Tokenize(text string) Tokens {
	var tokens []string
	var current strings.Builder

	flush := func() {
		if current.Len() == 0 {
			return
		}
		if word := w.processToken(current.String()); word != "" {
			tokens = append(tokens, word)
		}
		current.Reset()
	}

	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsNumber(r) || r == '-' {
			current.WriteRune(unicode.ToLower(r))
		} else {
			flush()
		}
	}
	flush()

	return newTokens(tokens, w.scaler)
}

// IsStopword reports whether the word is filtered
func (w *Words) IsStopword(word string) bool {
	_, ok := w.stopwords[strings.ToLower(word)]
	return ok
}

// processToken applies cleaning, length and numeric filters, then stopwords.
func (w *Words) processToken(token string) string {
	word := cleanToken(token)
	if word == "" || len([]rune(word)) < w.minLength {
		return ""
	}
	if w.dropNumeric && isNumericOnly(word) {
		return ""
	}
	if w.IsStopword(word) {
		return ""
	}
	return word
}

// cleanToken strips leading/trailing hyphens and collapses consecutive hyphens
func cleanToken(token string) string {
	token = strings.Trim(token, "-")
	for strings.Contains(token, "--") {
		token = strings.ReplaceAll(token, "--", "-")
	}
	return token
}

// isNumericOnly returns true if the token contains only digits and hyphens.
func isNumericOnly(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) && r != '-' {
			return false
		}
	}
	return true
}
