package morph

import (
	"fmt"
	"os"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/az-ai-labs/tr-morph/data"
)

// rulesVersion is the only rule table version this package reads.
const rulesVersion = 1

// RuleSet is the orthographic rule table: consonant softening letters and
// the aorist exception list used when inferring root attributes.
type RuleSet struct {
	Version       int               `yaml:"version"`
	Voicing       map[string]string `yaml:"voicing"`
	VoicingAfterN map[string]string `yaml:"voicing_after_n"`
	AoristIRoots  []string          `yaml:"aorist_i_roots"`

	voicing       map[rune]rune
	voicingAfterN map[rune]rune
	aoristI       map[string]bool
}

var defaultRules = mustParseRules(data.Orthography)

func mustParseRules(b []byte) *RuleSet {
	rs, err := ParseRules(b)
	if err != nil {
		panic(err)
	}
	return rs
}

// DefaultRules returns the embedded default rule table. The returned value
// is shared and must not be modified.
func DefaultRules() *RuleSet { return defaultRules }

// LoadRules reads a rule table from a YAML file.
func LoadRules(path string) (*RuleSet, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrResourceLoad, err)
	}
	rs, err := ParseRules(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rs, nil
}

// ParseRules decodes and validates a YAML rule table.
func ParseRules(b []byte) (*RuleSet, error) {
	var rs RuleSet
	if err := yaml.Unmarshal(b, &rs); err != nil {
		return nil, fmt.Errorf("%w: rules: %w", ErrResourceLoad, err)
	}
	if rs.Version != rulesVersion {
		return nil, fmt.Errorf("%w: rules: unsupported version %d", ErrResourceLoad, rs.Version)
	}

	var err error
	if rs.voicing, err = letterMap(rs.Voicing); err != nil {
		return nil, fmt.Errorf("%w: rules: voicing: %w", ErrResourceLoad, err)
	}
	if rs.voicingAfterN, err = letterMap(rs.VoicingAfterN); err != nil {
		return nil, fmt.Errorf("%w: rules: voicing_after_n: %w", ErrResourceLoad, err)
	}
	rs.aoristI = make(map[string]bool, len(rs.AoristIRoots))
	for _, r := range rs.AoristIRoots {
		rs.aoristI[r] = true
	}
	return &rs, nil
}

// letterMap converts a single-letter string map to a rune map.
func letterMap(m map[string]string) (map[rune]rune, error) {
	out := make(map[rune]rune, len(m))
	for k, v := range m {
		if utf8.RuneCountInString(k) != 1 || utf8.RuneCountInString(v) != 1 {
			return nil, fmt.Errorf("entry %q: %q is not a single letter pair", k, v)
		}
		kr, _ := utf8.DecodeRuneInString(k)
		vr, _ := utf8.DecodeRuneInString(v)
		out[kr] = vr
	}
	return out, nil
}

// soften returns the voiced replacement for the final letter last, given
// the letter before it.
func (rs *RuleSet) soften(prev, last rune) (rune, bool) {
	if prev == 'n' {
		if v, ok := rs.voicingAfterN[last]; ok {
			return v, true
		}
	}
	v, ok := rs.voicing[last]
	return v, ok
}

// InferAttributes returns item with the attributes its shape implies
// added: Voicing for polysyllabic nouns and adjectives ending in a
// voiceless stop, an aorist class for verbs, ProgressiveVowelDrop for
// vowel-final verbs. Explicit attributes are never overridden. item is
// returned unchanged when nothing is added.
func (rs *RuleSet) InferAttributes(item *DictionaryItem) *DictionaryItem {
	attrs := item.attrs
	if attrs.Has(NoSuffix) || attrs.Has(Runtime) {
		return item
	}
	root := item.pronunciation
	last := lastRune(root)

	switch item.primary {
	case Noun, Adjective:
		if item.secondary == ProperNoun || item.secondary == Abbreviation {
			break
		}
		if attrs.Has(Voicing) || attrs.Has(NoVoicing) {
			break
		}
		if _, ok := rs.voicing[last]; ok && isVoiceless(last) && syllableCount(root) > 1 {
			attrs = attrs.With(Voicing)
		}
	case Verb:
		if !attrs.Has(AoristA) && !attrs.Has(AoristI) {
			switch {
			case syllableCount(item.root) > 1:
				attrs = attrs.With(AoristI)
			case rs.aoristI[item.root]:
				attrs = attrs.With(AoristI)
			default:
				attrs = attrs.With(AoristA)
			}
		}
		if isVowel(last) {
			attrs = attrs.With(ProgressiveVowelDrop)
		}
	}

	if attrs == item.attrs {
		return item
	}
	return item.withAttrs(attrs)
}
