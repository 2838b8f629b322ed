// Vowel drop for roots like burun -> burn-u, ağız -> ağz-ı, oğul -> oğl-u.
//
// The dropped form is the stem variant that precedes vowel-initial
// suffixes. Only the last vowel of a final consonant-vowel-consonant
// sequence can drop.
package morph

// minDropLen is the minimum number of runes in a root for vowel drop to be
// attempted: a vowel before the dropping syllable plus consonant, vowel,
// consonant.
const minDropLen = 4

// dropLastVowel removes the vowel of the final CVC syllable of s and
// reports whether it did. The remainder must still contain a vowel.
//
// Examples: burun → burn, ağız → ağz, oğul → oğl, şehir → şehr
func dropLastVowel(s string) (string, bool) {
	runes := []rune(s)
	n := len(runes)
	if n < minDropLen {
		return "", false
	}
	if isVowel(runes[n-1]) || !isVowel(runes[n-2]) || isVowel(runes[n-3]) {
		return "", false
	}
	out := string(runes[:n-2]) + string(runes[n-1])
	if lastVowel(string(runes[:n-2])) == 0 {
		return "", false
	}
	return out, true
}

// dropFinalVowel removes the final vowel of a vowel-final verb root
// (ara → ar, oku → ok). The progressive -Iyor attaches to the result.
func dropFinalVowel(s string) (string, bool) {
	runes := []rune(s)
	if len(runes) < 2 || !isVowel(runes[len(runes)-1]) {
		return "", false
	}
	return string(runes[:len(runes)-1]), true
}
