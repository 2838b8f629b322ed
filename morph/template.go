package morph

import (
	"fmt"
	"strings"
	"unicode"
)

// tokenKind classifies one letter of a suffix surface template.
type tokenKind uint8

const (
	literal  tokenKind = iota // lowercase letter, rendered as is
	harmonyA                  // A: a/e by two-way harmony
	harmonyI                  // I: ı/i/u/ü by four-way harmony
	devoiceD                  // D: t after a voiceless consonant, d otherwise
	devoiceC                  // C: ç after a voiceless consonant, c otherwise
)

type templateToken struct {
	kind     tokenKind
	lit      rune
	optional bool // "+x": buffer letter
}

// isVowelToken reports whether the token always renders as a vowel.
func (t templateToken) isVowelToken() bool {
	switch t.kind {
	case harmonyA, harmonyI:
		return true
	case literal:
		return isVowel(t.lit)
	default:
		return false
	}
}

// template is a parsed suffix surface pattern such as "+yAcAk".
type template struct {
	text   string
	tokens []templateToken
}

// parseTemplate parses a surface template. Uppercase A, I, D and C are
// harmony letters, lowercase letters are literals, and "+" marks the next
// letter as a buffer: a buffer vowel is dropped after a vowel and a buffer
// consonant is dropped after a consonant.
func parseTemplate(s string) (template, error) {
	t := template{text: s}
	optional := false
	for _, r := range s {
		if r == '+' {
			if optional {
				return template{}, fmt.Errorf("template %q: repeated '+'", s)
			}
			optional = true
			continue
		}
		tok := templateToken{optional: optional}
		switch {
		case r == 'A':
			tok.kind = harmonyA
		case r == 'I':
			tok.kind = harmonyI
		case r == 'D':
			tok.kind = devoiceD
		case r == 'C':
			tok.kind = devoiceC
		case unicode.IsLower(r):
			tok.kind, tok.lit = literal, r
		default:
			return template{}, fmt.Errorf("template %q: unexpected letter %q", s, r)
		}
		if optional && (tok.kind == devoiceD || tok.kind == devoiceC) {
			return template{}, fmt.Errorf("template %q: %q cannot be a buffer letter", s, r)
		}
		optional = false
		t.tokens = append(t.tokens, tok)
	}
	if optional {
		return template{}, fmt.Errorf("template %q: trailing '+'", s)
	}
	return t, nil
}

// canBeEmpty reports whether some phonetic context renders t as "".
func (t template) canBeEmpty() bool {
	for _, tok := range t.tokens {
		if !tok.optional {
			return false
		}
	}
	// Buffer letters only look at whether the last letter is a vowel.
	afterVowel := phonetics{lastVowel: 'a', lastLetter: 'a'}
	afterConsonant := phonetics{lastVowel: 'a', lastLetter: 't'}
	return t.render(afterVowel) == "" || t.render(afterConsonant) == ""
}

// render produces the surface of t attached to a stem ending in p.
func (t template) render(p phonetics) string {
	if len(t.tokens) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, tok := range t.tokens {
		if tok.optional && tok.isVowelToken() == p.endsWithVowel() {
			continue
		}
		var r rune
		switch tok.kind {
		case harmonyA:
			r = twoWayTarget(p.lastVowel)
		case harmonyI:
			r = fourWayTarget(p.lastVowel)
		case devoiceD:
			r = 'd'
			if isVoiceless(p.lastLetter) {
				r = 't'
			}
		case devoiceC:
			r = 'c'
			if isVoiceless(p.lastLetter) {
				r = 'ç'
			}
		default:
			r = tok.lit
		}
		sb.WriteRune(r)
		p = p.push(r)
	}
	return sb.String()
}
