package morph

import (
	"strings"
	"unicode"

	"github.com/az-ai-labs/tr-morph/internal/trcase"
)

// Spoken forms used to pronounce digit tokens. Only the last spoken word
// matters for suffix harmony: 5'e -> beş-e, 10'a -> on-a, 1000'e -> bin-e.
var (
	digitWords = [10]string{"sıfır", "bir", "iki", "üç", "dört", "beş", "altı", "yedi", "sekiz", "dokuz"}
	tensWords  = [10]string{"", "on", "yirmi", "otuz", "kırk", "elli", "altmış", "yetmiş", "seksen", "doksan"}
	// scaleWords[i] names 10^(3*(i+1)).
	scaleWords = []string{"bin", "milyon", "milyar", "trilyon", "katrilyon"}
)

// letterNames spells abbreviations letter by letter: TBMM -> tebememe.
var letterNames = map[rune]string{
	'a': "a", 'b': "be", 'c': "ce", 'ç': "çe", 'd': "de", 'e': "e", 'f': "fe",
	'g': "ge", 'ğ': "ge", 'h': "he", 'ı': "ı", 'i': "i", 'j': "je", 'k': "ke",
	'l': "le", 'm': "me", 'n': "ne", 'o': "o", 'ö': "ö", 'p': "pe", 'q': "kü",
	'r': "re", 's': "se", 'ş': "şe", 't': "te", 'u': "u", 'ü': "ü", 'v': "ve",
	'w': "ve", 'x': "iks", 'y': "ye", 'z': "ze",
}

// newRuntimeItem synthesizes an item for a token the lexicon does not
// cover: digits become a numeral, all-caps words an abbreviation and
// capitalized words a proper noun. Lowercase words get no item. The item
// carries the Runtime attribute and is never stored.
func newRuntimeItem(word string) (*DictionaryItem, bool) {
	if word == "" {
		return nil, false
	}
	root := trcase.ToLower(word)

	switch {
	case isNumberToken(word):
		item, err := NewDictionaryItem(word, root, spokenNumber(word), Numeral, Cardinal, Runtime)
		return item, err == nil
	case trcase.IsAllUpper(word) && len([]rune(word)) > 1 && isLetters(word):
		// Only vowelless abbreviations are read letter by letter: TBMM, but ASELSAN.
		pron := root
		if syllableCount(root) == 0 {
			pron = spell(root)
		}
		item, err := NewDictionaryItem(word, root, pron, Noun, Abbreviation, Runtime)
		return item, err == nil
	case trcase.IsCapitalized(word):
		item, err := NewDictionaryItem(word, root, "", Noun, ProperNoun, Runtime)
		return item, err == nil
	default:
		return nil, false
	}
}

// isNumberToken reports whether s is digits with optional inner '.' or ','
// group separators.
func isNumberToken(s string) bool {
	if s == "" || !isDigit(rune(s[0])) || !isDigit(rune(s[len(s)-1])) {
		return false
	}
	for _, r := range s {
		if !isDigit(r) && r != '.' && r != ',' {
			return false
		}
	}
	return true
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func isLetters(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// spokenNumber returns the last spoken word of the number s. The part
// after a decimal comma is read on its own.
func spokenNumber(s string) string {
	if i := strings.LastIndexByte(s, ','); i >= 0 {
		s = s[i+1:]
	}
	s = strings.ReplaceAll(s, ".", "")

	zeros := 0
	for i := len(s) - 1; i >= 0 && s[i] == '0'; i-- {
		zeros++
	}
	if zeros == len(s) {
		return digitWords[0]
	}
	d := s[len(s)-1-zeros] - '0'
	switch {
	case zeros == 0:
		return digitWords[d]
	case zeros == 1:
		return tensWords[d]
	case zeros == 2:
		return "yüz"
	}
	return scaleWords[min(zeros/3-1, len(scaleWords)-1)]
}

// spell returns the letter-by-letter pronunciation of a lowercase word.
func spell(s string) string {
	var sb strings.Builder
	for _, r := range s {
		if name, ok := letterNames[r]; ok {
			sb.WriteString(name)
		} else {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
