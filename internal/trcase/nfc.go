package trcase

import "strings"

// nfcReplacer composes known Turkish NFD pairs in a single pass.
var nfcReplacer = strings.NewReplacer(
	// Lowercase
	"o\u0308", "\u00F6", // o + diaeresis  -> ö
	"u\u0308", "\u00FC", // u + diaeresis  -> ü
	"c\u0327", "\u00E7", // c + cedilla    -> ç
	"s\u0327", "\u015F", // s + cedilla    -> ş
	"g\u0306", "\u011F", // g + breve      -> ğ
	"a\u0302", "\u00E2", // a + circumflex -> â
	"i\u0302", "\u00EE", // i + circumflex -> î
	"u\u0302", "\u00FB", // u + circumflex -> û
	// Uppercase
	"O\u0308", "\u00D6", // O + diaeresis  -> Ö
	"U\u0308", "\u00DC", // U + diaeresis  -> Ü
	"C\u0327", "\u00C7", // C + cedilla    -> Ç
	"S\u0327", "\u015E", // S + cedilla    -> Ş
	"G\u0306", "\u011E", // G + breve      -> Ğ
	"I\u0307", "\u0130", // I + dot above  -> İ
	"A\u0302", "\u00C2", // A + circumflex -> Â
)

// ComposeNFC replaces known NFD decomposed sequences for the Turkish
// letters with diacritics: ö, ü, ç, ş, ğ, İ and the circumflexed vowels.
// This is NOT full Unicode NFC.
func ComposeNFC(s string) string {
	// Fast path: scan for combining marks U+0302, U+0306, U+0307, U+0308, U+0327.
	hasCombiner := false
	for _, r := range s {
		if r == 0x0302 || r == 0x0306 || r == 0x0307 || r == 0x0308 || r == 0x0327 {
			hasCombiner = true
			break
		}
	}
	if !hasCombiner {
		return s
	}

	return nfcReplacer.Replace(s)
}

// apostropheReplacer maps typographic apostrophes to U+0027.
var apostropheReplacer = strings.NewReplacer(
	"\u2019", "'", // right single quotation mark
	"\u2018", "'", // left single quotation mark
	"\u02BC", "'", // modifier letter apostrophe
	"\u00B4", "'", // acute accent
	"`", "'",
)

// NormalizeApostrophes replaces typographic apostrophe variants with '.
func NormalizeApostrophes(s string) string {
	return apostropheReplacer.Replace(s)
}
