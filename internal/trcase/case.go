// Package trcase provides Turkish case conversion.
//
// Turkish distinguishes dotted and dotless I in both cases:
//   - I (U+0049) lowercases to ı (U+0131, dotless small i)
//   - İ (U+0130, dotted capital I) lowercases to i (U+0069)
//   - i (U+0069) uppercases to İ (U+0130)
//   - ı (U+0131) uppercases to I (U+0049)
//
// All other runes use standard Unicode case mapping.
//
// All functions are safe for concurrent use.
package trcase

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Lower returns the Turkish lowercase form of r.
func Lower(r rune) rune {
	switch r {
	case 'I':
		return 'ı'
	case 'İ':
		return 'i'
	default:
		return unicode.ToLower(r)
	}
}

// Upper returns the Turkish uppercase form of r.
func Upper(r rune) rune {
	switch r {
	case 'i':
		return 'İ'
	case 'ı':
		return 'I'
	default:
		return unicode.ToUpper(r)
	}
}

// ToLower returns s with Turkish lowercasing applied to every rune.
func ToLower(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		b.WriteRune(Lower(r))
	}
	return b.String()
}

// ToUpper returns s with Turkish uppercasing applied to every rune.
func ToUpper(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		b.WriteRune(Upper(r))
	}
	return b.String()
}

// IsCapitalized reports whether the first rune of s is an uppercase letter.
func IsCapitalized(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.IsUpper(r)
}

// IsAllUpper reports whether s has at least one letter and every letter
// in s is uppercase.
func IsAllUpper(s string) bool {
	letters := 0
	for _, r := range s {
		if !unicode.IsLetter(r) {
			continue
		}
		if !unicode.IsUpper(r) {
			return false
		}
		letters++
	}
	return letters > 0
}
