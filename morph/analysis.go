package morph

import (
	"encoding/json"
	"strings"
)

// Morpheme is one traversed suffix transition with its concrete surface.
// Surface is "" for unmarked categories such as A3sg or Nom.
type Morpheme struct {
	Surface    string            `json:"surface"`
	Tag        MorphTag          `json:"tag"`
	Transition *SuffixTransition `json:"-"`
}

// derivedPos returns the part of speech a derivational morpheme leads to,
// and false for inflections.
func (m Morpheme) derivedPos() (PrimaryPos, bool) {
	if m.Transition == nil || !m.Transition.Derivation {
		return 0, false
	}
	return m.Transition.To.Pos, true
}

// SingleAnalysis is one parse of a token: a stem followed by suffixes.
type SingleAnalysis struct {
	Stem      *StemTransition
	Morphemes []Morpheme
}

// Item returns the dictionary item of the stem.
func (a SingleAnalysis) Item() *DictionaryItem { return a.Stem.Item }

// IsRuntime reports whether the stem was synthesized for an unknown token.
func (a SingleAnalysis) IsRuntime() bool { return a.Stem.Item.IsRuntime() }

// Tags returns the morpheme tags in order.
func (a SingleAnalysis) Tags() []MorphTag {
	out := make([]MorphTag, len(a.Morphemes))
	for i, m := range a.Morphemes {
		out[i] = m.Tag
	}
	return out
}

// Pos returns the part of speech of the whole word, which differs from the
// item's after a derivation.
func (a SingleAnalysis) Pos() PrimaryPos {
	pos := a.Stem.State.Pos
	for _, m := range a.Morphemes {
		if p, ok := m.derivedPos(); ok {
			pos = p
		}
	}
	return pos
}

// Surface returns the analyzed word: stem plus suffix surfaces.
func (a SingleAnalysis) Surface() string {
	var sb strings.Builder
	sb.WriteString(a.Stem.Surface)
	for _, m := range a.Morphemes {
		sb.WriteString(m.Surface)
	}
	return sb.String()
}

// FormatLong renders the analysis as
//
//	[kitap:Noun] kitab:Noun+A3sg+Pnon+a:Dat
//
// Derivations start a new group: [kazmak:Verb] kaz:Verb|ma:Inf2→Noun+A3sg+Pnon+Nom
func (a SingleAnalysis) FormatLong() string {
	item := a.Stem.Item
	var sb strings.Builder
	sb.WriteByte('[')
	sb.WriteString(item.Lemma())
	sb.WriteByte(':')
	sb.WriteString(item.PrimaryPos().String())
	if sec := item.SecondaryPos(); sec != NoSecondary {
		sb.WriteByte(',')
		sb.WriteString(sec.String())
	}
	sb.WriteString("] ")
	sb.WriteString(a.Stem.Surface)
	sb.WriteByte(':')
	sb.WriteString(a.Stem.State.Pos.String())
	for _, m := range a.Morphemes {
		pos, deriv := m.derivedPos()
		if deriv {
			sb.WriteByte('|')
		} else {
			sb.WriteByte('+')
		}
		if m.Surface != "" {
			sb.WriteString(m.Surface)
			sb.WriteByte(':')
		}
		sb.WriteString(m.Tag.String())
		if deriv {
			sb.WriteString("\u2192")
			sb.WriteString(pos.String())
		}
	}
	return sb.String()
}

func (a SingleAnalysis) String() string { return a.FormatLong() }

type singleAnalysisJSON struct {
	Item      *DictionaryItem `json:"item"`
	Stem      string          `json:"stem"`
	Pos       PrimaryPos      `json:"pos"`
	Morphemes []Morpheme      `json:"morphemes"`
	Formatted string          `json:"formatted"`
	Runtime   bool            `json:"runtime,omitempty"`
}

func (a SingleAnalysis) MarshalJSON() ([]byte, error) {
	ms := a.Morphemes
	if ms == nil {
		ms = []Morpheme{}
	}
	return json.Marshal(singleAnalysisJSON{
		Item:      a.Stem.Item,
		Stem:      a.Stem.Surface,
		Pos:       a.Pos(),
		Morphemes: ms,
		Formatted: a.FormatLong(),
		Runtime:   a.IsRuntime(),
	})
}

// WordAnalysis is the result of analyzing one token. An empty Analyses
// slice means the token has no analysis. The value is shared with the
// cache and must not be modified.
type WordAnalysis struct {
	Input      string           `json:"input"`
	Normalized string           `json:"normalized"`
	Analyses   []SingleAnalysis `json:"analyses"`
}

// Len returns the number of analyses.
func (w WordAnalysis) Len() int { return len(w.Analyses) }

// IsEmpty reports whether the token has no analysis.
func (w WordAnalysis) IsEmpty() bool { return len(w.Analyses) == 0 }
