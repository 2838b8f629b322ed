package tokenizer

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// scanner is a rune-by-rune state machine over one input string.
//
// Rule priority (highest first):
//   - URL (http:// or https://)
//   - number, with dot grouping, decimal comma and apostrophe suffix
//   - word, with single inner hyphens and apostrophe suffixes
//   - whitespace runs, punctuation, symbols
type scanner struct {
	s      string
	pos    int
	tokens []Token
}

func (sc *scanner) emit(start int, typ TokenType) {
	sc.tokens = append(sc.tokens, Token{Text: sc.s[start:sc.pos], Start: start, End: sc.pos, Type: typ})
}

func (sc *scanner) peek(at int) (rune, int) {
	if at >= len(sc.s) {
		return utf8.RuneError, 0
	}
	return utf8.DecodeRuneInString(sc.s[at:])
}

func (sc *scanner) run() {
	for sc.pos < len(sc.s) {
		start := sc.pos
		r, size := sc.peek(sc.pos)

		switch {
		case (r == 'h' || r == 'H') && sc.scanURL():
			sc.emit(start, URL)
		case isDigit(r):
			sc.scanNumber()
			sc.emit(start, Number)
		case unicode.IsLetter(r):
			sc.scanWord()
			sc.emit(start, Word)
		case unicode.IsSpace(r):
			sc.pos += size
			sc.skipWhile(unicode.IsSpace)
			sc.emit(start, Space)
		case unicode.IsPunct(r):
			sc.pos += size
			if r == '-' || r == '.' {
				// "--" and "..." stay together.
				sc.skipWhile(func(nr rune) bool { return nr == r })
			}
			sc.emit(start, Punctuation)
		default:
			sc.pos += size
			sc.emit(start, Symbol)
		}
	}
}

func (sc *scanner) skipWhile(f func(rune) bool) {
	for sc.pos < len(sc.s) {
		r, size := sc.peek(sc.pos)
		if !f(r) {
			return
		}
		sc.pos += size
	}
}

// scanURL consumes an http:// or https:// URL up to whitespace, leaving a
// single trailing . , ! or ? out.
func (sc *scanner) scanURL() bool {
	rest := sc.s[sc.pos:]
	var prefix int
	switch {
	case len(rest) > 8 && strings.EqualFold(rest[:8], "https://"):
		prefix = 8
	case len(rest) > 7 && strings.EqualFold(rest[:7], "http://"):
		prefix = 7
	default:
		return false
	}
	end := strings.IndexFunc(rest, unicode.IsSpace)
	if end < 0 {
		end = len(rest)
	}
	if last := rest[end-1]; last == '.' || last == ',' || last == '!' || last == '?' {
		end--
	}
	if end <= prefix {
		return false
	}
	sc.pos += end
	return true
}

// scanNumber consumes digits, dot thousand groups of exactly three digits,
// a decimal comma and an apostrophe suffix (1990'larda).
func (sc *scanner) scanNumber() {
	s := sc.s
	sc.skipDigits()
	for sc.pos+3 < len(s) && s[sc.pos] == '.' &&
		isDigit(rune(s[sc.pos+1])) && isDigit(rune(s[sc.pos+2])) && isDigit(rune(s[sc.pos+3])) &&
		(sc.pos+4 == len(s) || !isDigit(rune(s[sc.pos+4]))) {
		sc.pos += 4
	}
	if sc.pos+1 < len(s) && s[sc.pos] == ',' && isDigit(rune(s[sc.pos+1])) {
		sc.pos++
		sc.skipDigits()
	}
	sc.scanApostropheSuffix()
}

func (sc *scanner) skipDigits() {
	for sc.pos < len(sc.s) && isDigit(rune(sc.s[sc.pos])) {
		sc.pos++
	}
}

// scanWord consumes a letter-started alphanumeric run, single hyphens
// joining further runs (Kadıköy-Moda) and an apostrophe suffix.
func (sc *scanner) scanWord() {
	sc.skipWhile(isAlnum)
	for {
		r, size := sc.peek(sc.pos)
		if r != '-' {
			break
		}
		next, _ := sc.peek(sc.pos + size)
		if !isAlnum(next) {
			break
		}
		sc.pos += size
		sc.skipWhile(isAlnum)
	}
	sc.scanApostropheSuffix()
}

// scanApostropheSuffix consumes an apostrophe followed by letters.
func (sc *scanner) scanApostropheSuffix() {
	r, size := sc.peek(sc.pos)
	if !isApostrophe(r) {
		return
	}
	next, _ := sc.peek(sc.pos + size)
	if !unicode.IsLetter(next) {
		return
	}
	sc.pos += size
	sc.skipWhile(unicode.IsLetter)
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func isAlnum(r rune) bool { return unicode.IsLetter(r) || unicode.IsDigit(r) }

// isApostrophe accepts U+0027 and the typographic variants found in
// Turkish text.
func isApostrophe(r rune) bool {
	return r == '\'' || r == '\u2019' || r == '\u02BC'
}
