package morph

import "unicode/utf8"

// backVowels contains Turkish back vowels (lowercase; input is lowercased
// before phonology checks). Circumflexed vowels follow their base vowel.
var backVowels = map[rune]bool{
	'a': true, 'â': true,
	'ı': true,
	'o': true,
	'u': true, 'û': true,
}

// frontVowels contains Turkish front vowels.
var frontVowels = map[rune]bool{
	'e': true,
	'i': true, 'î': true,
	'ö': true,
	'ü': true,
}

// roundVowels contains the Turkish rounded vowels.
var roundVowels = map[rune]bool{
	'o': true, 'ö': true, 'u': true, 'ü': true, 'û': true,
}

// voicelessCons contains the Turkish voiceless consonants.
var voicelessCons = map[rune]bool{
	'f': true, 's': true, 't': true, 'k': true,
	'ç': true, 'ş': true, 'h': true, 'p': true,
}

// isVowel reports whether r is a lowercase Turkish vowel.
func isVowel(r rune) bool {
	return backVowels[r] || frontVowels[r]
}

func isBackVowel(r rune) bool { return backVowels[r] }

func isRoundVowel(r rune) bool { return roundVowels[r] }

// isVoiceless reports whether r is a voiceless consonant.
func isVoiceless(r rune) bool { return voicelessCons[r] }

// lastVowel returns the last vowel rune in s, or 0 if none found.
func lastVowel(s string) rune {
	for i := len(s); i > 0; {
		r, size := utf8.DecodeLastRuneInString(s[:i])
		if isVowel(r) {
			return r
		}
		i -= size
	}
	return 0
}

// lastRune returns the last rune of s, or 0 for the empty string.
func lastRune(s string) rune {
	r, _ := utf8.DecodeLastRuneInString(s)
	if r == utf8.RuneError {
		return 0
	}
	return r
}

// syllableCount approximates the syllable count by counting vowels.
func syllableCount(s string) int {
	n := 0
	for _, r := range s {
		if isVowel(r) {
			n++
		}
	}
	return n
}

// twoWayTarget returns the a/e alternant selected by the last vowel v.
func twoWayTarget(v rune) rune {
	if v == 0 || isBackVowel(v) {
		return 'a'
	}
	return 'e'
}

// fourWayTarget returns the ı/i/u/ü alternant selected by the last vowel v.
// Back unrounded (a, ı) -> ı; back rounded (o, u) -> u;
// front unrounded (e, i) -> i; front rounded (ö, ü) -> ü.
func fourWayTarget(v rune) rune {
	switch {
	case v == 0:
		return 'i'
	case isBackVowel(v) && isRoundVowel(v):
		return 'u'
	case isBackVowel(v):
		return 'ı'
	case isRoundVowel(v):
		return 'ü'
	default:
		return 'i'
	}
}

// frontCounterpart maps a back vowel to the front vowel with the same
// rounding. Used for roots with inverse harmony (saat -> saate).
func frontCounterpart(v rune) rune {
	switch v {
	case 'a', 'â':
		return 'e'
	case 'ı':
		return 'i'
	case 'o':
		return 'ö'
	case 'u', 'û':
		return 'ü'
	default:
		return v
	}
}

// phonetics is the sound state a suffix attaches to: the last vowel and
// the last letter of everything rendered so far.
type phonetics struct {
	lastVowel  rune
	lastLetter rune
}

// phoneticsOf computes the state at the end of s.
func phoneticsOf(s string) phonetics {
	return phonetics{lastVowel: lastVowel(s), lastLetter: lastRune(s)}
}

// endsWithVowel reports whether the last rendered letter is a vowel.
func (p phonetics) endsWithVowel() bool { return isVowel(p.lastLetter) }

// push returns the state after appending r.
func (p phonetics) push(r rune) phonetics {
	if isVowel(r) {
		p.lastVowel = r
	}
	p.lastLetter = r
	return p
}

// advance returns the state after appending surface.
func (p phonetics) advance(surface string) phonetics {
	for _, r := range surface {
		p = p.push(r)
	}
	return p
}
