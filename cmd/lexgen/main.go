// Command lexgen generates a trmorph lexicon from a kaikki.org Turkish
// dictionary dump (JSONL format).
//
// Download the dump from https://kaikki.org/dictionary/Turkish/
// then run:
//
//	go run ./cmd/lexgen -input kaikki.org-dictionary-Turkish.jsonl -output lexicon.txt
//
// Point the lexicon config key at the output to use it instead of the
// embedded lexicon.
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"unicode"

	"github.com/az-ai-labs/tr-morph/internal/trcase"
	"github.com/az-ai-labs/tr-morph/morph"
)

const (
	defaultInput   = "data/dictionary/kaikki.org-dictionary-Turkish.jsonl"
	defaultOutput  = "lexicon.txt"
	scannerBufSize = 1 << 20 // 1 MB
	minLemmaRunes  = 2
)

// kaikkiEntry holds only the fields needed from each JSONL line.
type kaikkiEntry struct {
	Word string `json:"word"`
	POS  string `json:"pos"`
}

// kind is the part of speech an entry maps to.
type kind struct {
	primary   morph.PrimaryPos
	secondary morph.SecondaryPos
}

type counts struct {
	read      int
	malformed int
	rejected  int
	inflected int
	byPos     map[morph.PrimaryPos]int
}

func main() {
	inputPath := flag.String("input", defaultInput, "path to kaikki.org JSONL dump")
	outputPath := flag.String("output", defaultOutput, "output path for the lexicon")
	rulesPath := flag.String("rules", "", "orthographic rule table (default: built in)")
	flag.Parse()

	if *inputPath == "" {
		fmt.Fprintf(os.Stderr, "Usage: lexgen -input <file> [-output <file>] [-rules <file>]\n")
		os.Exit(1)
	}

	rules := morph.DefaultRules()
	if *rulesPath != "" {
		var err error
		if rules, err = morph.LoadRules(*rulesPath); err != nil {
			fmt.Fprintf(os.Stderr, "lexgen: %v\n", err)
			os.Exit(1)
		}
	}

	f, err := os.Open(*inputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "lexgen: open input: %v\n", err)
		os.Exit(1)
	}
	items, c, err := readDump(f, rules)
	// Close input file explicitly after scanning (no defer, avoids exitAfterDefer).
	if closeErr := f.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "lexgen: read input: %v\n", err)
		os.Exit(1)
	}

	out, err := os.Create(*outputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "lexgen: create output: %v\n", err)
		os.Exit(1)
	}
	if err := morph.WriteLexicon(out, items); err != nil {
		fmt.Fprintf(os.Stderr, "lexgen: write error: %v\n", err)
		os.Exit(1)
	}
	info, err := out.Stat()
	if err != nil {
		fmt.Fprintf(os.Stderr, "lexgen: stat output: %v\n", err)
		os.Exit(1)
	}
	if err := out.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "lexgen: close output: %v\n", err)
		os.Exit(1)
	}

	fmt.Fprintf(os.Stderr, "Lines read: %d (malformed %d, rejected %d, inflected %d)\n",
		c.read, c.malformed, c.rejected, c.inflected)
	fmt.Fprintf(os.Stderr, "Total entries: %d\n", len(items))
	for p := morph.Noun; p <= morph.UnknownPos; p++ {
		if n := c.byPos[p]; n > 0 {
			fmt.Fprintf(os.Stderr, "  %-14s %d\n", p.LongName()+":", n)
		}
	}
	fmt.Fprintf(os.Stderr, "Output file: %s (%d bytes)\n", *outputPath, info.Size())
}

// readDump converts a kaikki JSONL stream into sorted, deduplicated items
// with attributes inferred by rules. A nil rules means the defaults.
func readDump(r io.Reader, rules *morph.RuleSet) ([]*morph.DictionaryItem, counts, error) {
	if rules == nil {
		rules = morph.DefaultRules()
	}
	c := counts{byPos: make(map[morph.PrimaryPos]int)}

	scanner := bufio.NewScanner(r)
	buf := make([]byte, scannerBufSize)
	scanner.Buffer(buf, scannerBufSize)

	seen := make(map[string]*morph.DictionaryItem)
	for scanner.Scan() {
		c.read++
		var entry kaikkiEntry
		if err := json.Unmarshal(scanner.Bytes(), &entry); err != nil {
			// Malformed lines are rare in kaikki dumps.
			c.malformed++
			continue
		}
		k, ok := mapPOS(entry.POS)
		if !ok {
			continue
		}
		lemma := strings.TrimSpace(trcase.ComposeNFC(entry.Word))
		if k.secondary != morph.ProperNoun {
			lemma = trcase.ToLower(lemma)
		}
		if !isAcceptable(lemma) || (k.primary == morph.Verb && !hasInfinitive(lemma)) {
			c.rejected++
			continue
		}
		item, err := morph.NewDictionaryItem(lemma, "", "", k.primary, k.secondary)
		if err != nil {
			c.rejected++
			continue
		}
		if _, dup := seen[item.ID()]; !dup {
			seen[item.ID()] = rules.InferAttributes(item)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, c, err
	}

	c.inflected = filterInflected(seen)

	items := make([]*morph.DictionaryItem, 0, len(seen))
	for _, item := range seen {
		items = append(items, item)
		c.byPos[item.PrimaryPos()]++
	}
	// Sort by lemma, ties broken by ID for deterministic output.
	sort.Slice(items, func(i, j int) bool {
		li, lj := items[i].Lemma(), items[j].Lemma()
		if li != lj {
			return li < lj
		}
		return items[i].ID() < items[j].ID()
	})
	return items, c, nil
}

// mapPOS maps a kaikki POS tag to a part of speech.
// Returns false if the POS should be skipped entirely.
func mapPOS(pos string) (kind, bool) {
	switch pos {
	case "noun":
		return kind{morph.Noun, morph.NoSecondary}, true
	case "name":
		return kind{morph.Noun, morph.ProperNoun}, true
	case "verb":
		return kind{morph.Verb, morph.NoSecondary}, true
	case "adj":
		return kind{morph.Adjective, morph.NoSecondary}, true
	case "adv":
		return kind{morph.Adverb, morph.NoSecondary}, true
	case "pron":
		return kind{morph.Pronoun, morph.NoSecondary}, true
	case "num":
		return kind{morph.Numeral, morph.Cardinal}, true
	case "det":
		return kind{morph.Determiner, morph.NoSecondary}, true
	case "conj":
		return kind{morph.Conjunction, morph.NoSecondary}, true
	case "postp":
		return kind{morph.PostPositive, morph.NoSecondary}, true
	case "intj":
		return kind{morph.Interjection, morph.NoSecondary}, true
	}
	return kind{}, false
}

// isAcceptable reports whether a word is suitable for the lexicon.
// Rejects words with spaces, hyphens, digits, non-letter runes, Cyrillic or
// Arabic script, or fewer than minLemmaRunes runes.
func isAcceptable(word string) bool {
	runes := []rune(word)
	if len(runes) < minLemmaRunes {
		return false
	}
	for _, r := range runes {
		if !unicode.IsLetter(r) {
			return false
		}
		if unicode.In(r, unicode.Cyrillic, unicode.Arabic) {
			return false
		}
	}
	return true
}

// hasInfinitive reports whether a verb lemma ends in -mek or -mak with a
// stem containing a vowel.
func hasInfinitive(word string) bool {
	for _, suffix := range []string{"mek", "mak"} {
		if stem, ok := strings.CutSuffix(word, suffix); ok {
			return strings.ContainsFunc(stem, isTrVowel) && len([]rune(stem)) >= minLemmaRunes
		}
	}
	return false
}

// isTrVowel reports whether r is a lowercase Turkish vowel.
func isTrVowel(r rune) bool {
	switch r {
	case 'a', 'e', 'ı', 'i', 'o', 'ö', 'u', 'ü', 'â', 'î', 'û':
		return true
	}
	return false
}

// filterInflected removes common noun entries that are inflected forms of
// other common nouns and returns how many were removed. An entry is removed
// if stripping a common suffix yields another noun in the set, also trying
// ğ→k, b→p, c→ç and d→t restoration before vowel suffixes. This keeps
// kitaplar, evde and çocuğu out of a lexicon that has kitap, ev and çocuk.
func filterInflected(seen map[string]*morph.DictionaryItem) int {
	// Suffixes removable by plain stripping.
	plainSuffixes := []string{
		"lar", "ler",
		"ları", "leri",
		"da", "de", "ta", "te",
		"dan", "den", "tan", "ten",
	}
	// Suffixes that may follow a voiced stem-final consonant.
	restoreSuffixes := []string{
		"ı", "i", "u", "ü",
		"a", "e",
		"ın", "in", "un", "ün",
	}
	restore := map[rune]rune{'ğ': 'k', 'b': 'p', 'c': 'ç', 'd': 't'}

	isNoun := func(lemma string) bool {
		_, ok := seen[lemma+"_"+morph.Noun.String()]
		return ok
	}

	var toDelete []string
	for id, item := range seen {
		if item.PrimaryPos() != morph.Noun || item.SecondaryPos() != morph.NoSecondary {
			continue
		}
		lemma := item.Lemma()
		filtered := false

		for _, suf := range plainSuffixes {
			stem, ok := strings.CutSuffix(lemma, suf)
			if !ok || len([]rune(stem)) < minLemmaRunes {
				continue
			}
			if isNoun(stem) {
				toDelete = append(toDelete, id)
				filtered = true
				break
			}
		}
		if filtered {
			continue
		}

		for _, suf := range restoreSuffixes {
			stem, ok := strings.CutSuffix(lemma, suf)
			if !ok {
				continue
			}
			runes := []rune(stem)
			if len(runes) < minLemmaRunes {
				continue
			}
			hard, ok := restore[runes[len(runes)-1]]
			if !ok {
				continue
			}
			runes[len(runes)-1] = hard
			if isNoun(string(runes)) {
				toDelete = append(toDelete, id)
				break
			}
		}
	}
	for _, id := range toDelete {
		delete(seen, id)
	}
	return len(toDelete)
}
