package morph

import (
	"cmp"
	"slices"
	"unicode/utf8"

	"github.com/tchap/go-patricia/v2/patricia"
)

// nextConstraint restricts the first non-empty suffix that may follow a
// stem variant.
type nextConstraint uint8

const (
	anyNext         nextConstraint = iota
	vowelNext                      // modified stem: kitab-ı
	consonantNext                  // unmodified stem of a changing root: kitap-ta, kitap
	progressiveNext                // vowel-dropped verb stem: ar-ıyor
)

func (c nextConstraint) String() string {
	switch c {
	case vowelNext:
		return "vowel"
	case consonantNext:
		return "consonant"
	case progressiveNext:
		return "progressive"
	default:
		return "any"
	}
}

// StemTransition is one surface form of a dictionary item's root, entering
// the morphotactics graph at the item's start state.
type StemTransition struct {
	Surface string
	State   *State
	Item    *DictionaryItem

	phon phonetics
	next nextConstraint
}

func (st *StemTransition) String() string {
	return st.Surface + ":" + st.State.Pos.String()
}

// acceptsEnd reports whether the word may end right after this stem
// variant plus empty suffixes.
func (st *StemTransition) acceptsEnd() bool {
	return st.next == anyNext || st.next == consonantNext
}

// acceptsFirst reports whether surface, rendered by t, may be the first
// non-empty suffix after this stem variant.
func (st *StemTransition) acceptsFirst(t *SuffixTransition, surface string) bool {
	switch st.next {
	case vowelNext:
		r, _ := utf8.DecodeRuneInString(surface)
		return isVowel(r)
	case consonantNext:
		r, _ := utf8.DecodeRuneInString(surface)
		return !isVowel(r)
	case progressiveNext:
		return t.Tag == Prog1
	default:
		return true
	}
}

// StemIndex maps root surface forms to stem transitions. Lookups walk a
// radix trie along the token, so every stem that is a prefix of the token
// is found in one pass. It is not synchronized; the Engine guards it.
type StemIndex struct {
	trie  *patricia.Trie
	graph *Graph
	rules *RuleSet
	count int
}

// NewStemIndex returns an empty index generating variants with rules and
// attaching stems to the start states of g.
func NewStemIndex(g *Graph, rules *RuleSet) *StemIndex {
	if rules == nil {
		rules = DefaultRules()
	}
	return &StemIndex{trie: patricia.NewTrie(), graph: g, rules: rules}
}

// Len returns the number of indexed stem transitions.
func (x *StemIndex) Len() int { return x.count }

// AddDictionaryItem indexes every surface variant of item and returns the
// new transitions. Items whose part of speech has no start state in the
// graph produce none.
func (x *StemIndex) AddDictionaryItem(item *DictionaryItem) []*StemTransition {
	sts := x.Generate(item)
	for _, st := range sts {
		key := patricia.Prefix(st.Surface)
		if v := x.trie.Get(key); v != nil {
			x.trie.Set(key, append(v.([]*StemTransition), st))
		} else {
			x.trie.Insert(key, []*StemTransition{st})
		}
		x.count++
	}
	return sts
}

// Rebuild replaces the index content with the variants of items.
func (x *StemIndex) Rebuild(items []*DictionaryItem) {
	x.trie = patricia.NewTrie()
	x.count = 0
	for _, item := range items {
		x.AddDictionaryItem(item)
	}
}

// TransitionsForPrefix returns every stem transition whose surface is a
// prefix of token, longest surface first.
func (x *StemIndex) TransitionsForPrefix(token string) []*StemTransition {
	var out []*StemTransition
	_ = x.trie.VisitPrefixes(patricia.Prefix(token), func(_ patricia.Prefix, item patricia.Item) error {
		out = append(out, item.([]*StemTransition)...)
		return nil
	})
	slices.SortStableFunc(out, func(a, b *StemTransition) int {
		return cmp.Compare(len(b.Surface), len(a.Surface))
	})
	return out
}

// Generate derives the stem transitions of item without indexing them.
func (x *StemIndex) Generate(item *DictionaryItem) []*StemTransition {
	start, ok := x.graph.Start(item.primary)
	if !ok {
		return nil
	}
	attrs := item.attrs
	surface, pron := item.root, item.pronunciation

	base := &StemTransition{Surface: surface, State: start, Item: item, phon: x.phon(pron, attrs)}
	if attrs.Has(NoSuffix) {
		return []*StemTransition{base}
	}

	modSurface, modPron, changed := x.modify(surface, pron, attrs)
	if changed {
		base.next = consonantNext
		mod := &StemTransition{
			Surface: modSurface,
			State:   start,
			Item:    item,
			phon:    x.phon(modPron, attrs),
			next:    vowelNext,
		}
		return []*StemTransition{base, mod}
	}

	if item.primary == Verb && attrs.Has(ProgressiveVowelDrop) {
		dropSurface, ok1 := dropFinalVowel(surface)
		dropPron, ok2 := dropFinalVowel(pron)
		if ok1 && ok2 {
			p := x.phon(dropPron, attrs)
			if p.lastVowel == 0 {
				p.lastVowel = x.phon(pron, attrs).lastVowel
			}
			prog := &StemTransition{Surface: dropSurface, State: start, Item: item, phon: p, next: progressiveNext}
			return []*StemTransition{base, prog}
		}
	}
	return []*StemTransition{base}
}

// modify applies voicing, doubling and last vowel drop to both the
// written root and its pronunciation.
func (x *StemIndex) modify(surface, pron string, attrs AttrSet) (string, string, bool) {
	changed := false
	if attrs.Has(Voicing) && !attrs.Has(NoVoicing) {
		if s, ok := x.soften(surface); ok {
			surface, changed = s, true
			if p, ok := x.soften(pron); ok {
				pron = p
			}
		}
	}
	if attrs.Has(Doubling) {
		if r := lastRune(surface); r != 0 && !isVowel(r) {
			surface += string(r)
			pron += string(lastRune(pron))
			changed = true
		}
	}
	if attrs.Has(LastVowelDrop) {
		if s, ok := dropLastVowel(surface); ok {
			surface, changed = s, true
			if p, ok := dropLastVowel(pron); ok {
				pron = p
			}
		}
	}
	return surface, pron, changed
}

// soften replaces the final consonant of s with its voiced counterpart.
func (x *StemIndex) soften(s string) (string, bool) {
	runes := []rune(s)
	if len(runes) < 2 {
		return "", false
	}
	v, ok := x.rules.soften(runes[len(runes)-2], runes[len(runes)-1])
	if !ok {
		return "", false
	}
	runes[len(runes)-1] = v
	return string(runes), true
}

// phon returns the phonetic state at the end of pron, with inverse
// harmony applied.
func (x *StemIndex) phon(pron string, attrs AttrSet) phonetics {
	p := phoneticsOf(pron)
	if attrs.Has(InverseHarmony) {
		p.lastVowel = frontCounterpart(p.lastVowel)
	}
	return p
}
