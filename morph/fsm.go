package morph

import "strings"

// maxDepth bounds the number of suffix transitions on one path. The graph
// has no cycle of empty transitions, so paths are also bounded by the
// input length; the guard keeps custom graphs cheap.
const maxDepth = 40

// walker holds the state for one forward traversal of the morphotactics
// graph over a normalized token.
type walker struct {
	input   string
	results []SingleAnalysis
	seen    map[string]struct{}
}

func newWalker(input string) *walker {
	return &walker{input: input, seen: make(map[string]struct{})}
}

// walkStem collects every accepting path that starts with st and consumes
// the whole input.
func (w *walker) walkStem(st *StemTransition) {
	if !strings.HasPrefix(w.input, st.Surface) {
		return
	}
	w.walk(st, st.State, len(st.Surface), st.phon, st.Item.attrs, nil, true, 0)
}

// walk extends the path ending in state s at byte offset pos. pending is
// true while no suffix letter has been consumed, so the stem variant's
// constraint on the next suffix still applies.
func (w *walker) walk(st *StemTransition, s *State, pos int, p phonetics, attrs AttrSet, morphemes []Morpheme, pending bool, depth int) {
	if pos == len(w.input) && s.Terminal && (!pending || st.acceptsEnd()) {
		w.add(st, morphemes)
	}
	if depth >= maxDepth {
		return
	}

	rest := w.input[pos:]
	for _, t := range s.out {
		if !t.Cond.accepts(attrs) {
			continue
		}
		surface := t.tmpl.render(p)
		stillPending := pending
		if surface != "" {
			if st.Item.attrs.Has(NoSuffix) || !strings.HasPrefix(rest, surface) {
				continue
			}
			if pending && !st.acceptsFirst(t, surface) {
				continue
			}
			stillPending = false
		}

		next := attrs
		if t.Derivation {
			next = t.SetAttrs
		}
		// Full slice expression: siblings must not share a backing array.
		chain := append(morphemes[:len(morphemes):len(morphemes)], Morpheme{Surface: surface, Tag: t.Tag, Transition: t})
		w.walk(st, t.To, pos+len(surface), p.advance(surface), next, chain, stillPending, depth+1)
	}
}

// add records an analysis unless an identical one was already found.
func (w *walker) add(st *StemTransition, morphemes []Morpheme) {
	key := analysisKey(st, morphemes)
	if _, ok := w.seen[key]; ok {
		return
	}
	w.seen[key] = struct{}{}
	w.results = append(w.results, SingleAnalysis{
		Stem:      st,
		Morphemes: cloneMorphemes(morphemes),
	})
}

// analysisKey identifies an analysis by item, stem surface and the
// surface:tag sequence.
const avgMorphemeKeyLen = 8

func analysisKey(st *StemTransition, ms []Morpheme) string {
	var sb strings.Builder
	sb.Grow(len(st.Item.ID()) + len(st.Surface) + len(ms)*avgMorphemeKeyLen)
	sb.WriteString(st.Item.ID())
	sb.WriteByte('|')
	sb.WriteString(st.Surface)
	for _, m := range ms {
		sb.WriteByte('|')
		sb.WriteString(m.Surface)
		sb.WriteByte(':')
		sb.WriteString(m.Tag.String())
	}
	return sb.String()
}

// cloneMorphemes returns a copy of the morpheme slice.
func cloneMorphemes(ms []Morpheme) []Morpheme {
	out := make([]Morpheme, len(ms))
	copy(out, ms)
	return out
}
