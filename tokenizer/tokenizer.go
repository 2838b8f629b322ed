// Package tokenizer splits Turkish text into word, number, punctuation,
// space and symbol tokens with byte offsets.
//
// The byte offset invariant s[t.Start:t.End] == t.Text holds for every
// token, and concatenating all token texts reconstructs the input.
//
// Turkish attaches inflections to proper nouns, abbreviations and numbers
// after an apostrophe (Ankara'ya, TBMM'nin, 1990'larda). Such sequences
// are kept in one token so they can be analyzed as a unit.
//
// All functions are safe for concurrent use by multiple goroutines.
package tokenizer

import "fmt"

// TokenType classifies a token.
type TokenType int

const (
	Word        TokenType = iota // letters, with inner hyphens and apostrophe suffixes
	Number                       // digits with dot grouping or decimal comma, optional apostrophe suffix
	Punctuation                  // . , ! ? : ; ( ) etc.
	Space                        // contiguous whitespace
	Symbol                       // anything else: emoji, math symbols
	URL                          // http:// or https:// prefixed sequences
)

var tokenTypeNames = [...]string{
	Word:        "Word",
	Number:      "Number",
	Punctuation: "Punctuation",
	Space:       "Space",
	Symbol:      "Symbol",
	URL:         "URL",
}

// String returns the name of the token type.
func (t TokenType) String() string {
	if t >= 0 && int(t) < len(tokenTypeNames) {
		return tokenTypeNames[t]
	}
	return fmt.Sprintf("TokenType(%d)", int(t))
}

// Token is a unit of text with its position and classification.
type Token struct {
	Text  string    `json:"text"`
	Start int       `json:"start"` // byte offset, inclusive
	End   int       `json:"end"`   // byte offset, exclusive
	Type  TokenType `json:"type"`
}

// String returns a debug representation, e.g. Word("kitap")[0:5].
func (t Token) String() string {
	return fmt.Sprintf("%s(%q)[%d:%d]", t.Type, t.Text, t.Start, t.End)
}

// IsAnalyzable reports whether the token should go to a morphological
// analyzer: words and numbers.
func (t Token) IsAnalyzable() bool {
	return t.Type == Word || t.Type == Number
}

// Tokenize splits s into tokens. It returns nil for the empty string.
func Tokenize(s string) []Token {
	if s == "" {
		return nil
	}
	sc := scanner{s: s, tokens: make([]Token, 0, len(s)/4+1)}
	sc.run()
	return sc.tokens
}

// Words returns the texts of the analyzable tokens of s.
func Words(s string) []string {
	var out []string
	for _, t := range Tokenize(s) {
		if t.IsAnalyzable() {
			out = append(out, t.Text)
		}
	}
	return out
}
