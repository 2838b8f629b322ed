package morph

import (
	"encoding/json"
	"fmt"
	"math/bits"
	"strings"
)

// PrimaryPos is the main part of speech of a dictionary item.
type PrimaryPos int

const (
	Noun PrimaryPos = iota
	Adjective
	Adverb
	Conjunction
	Interjection
	Verb
	Pronoun
	Numeral
	Determiner
	PostPositive
	Question
	Duplicator
	Punctuation
	UnknownPos
)

// posName holds the long and short name of a part of speech.
type posName struct {
	long, short string
}

var primaryPosNames = [...]posName{
	Noun:         {"Noun", "Noun"},
	Adjective:    {"Adjective", "Adj"},
	Adverb:       {"Adverb", "Adv"},
	Conjunction:  {"Conjunction", "Conj"},
	Interjection: {"Interjection", "Interj"},
	Verb:         {"Verb", "Verb"},
	Pronoun:      {"Pronoun", "Pron"},
	Numeral:      {"Numeral", "Num"},
	Determiner:   {"Determiner", "Det"},
	PostPositive: {"PostPositive", "Postp"},
	Question:     {"Question", "Ques"},
	Duplicator:   {"Duplicator", "Dup"},
	Punctuation:  {"Punctuation", "Punc"},
	UnknownPos:   {"Unknown", "Unk"},
}

// String returns the short name, e.g. "Adj".
func (p PrimaryPos) String() string {
	if p >= 0 && int(p) < len(primaryPosNames) {
		return primaryPosNames[p].short
	}
	return fmt.Sprintf("PrimaryPos(%d)", int(p))
}

// LongName returns the long name, e.g. "Adjective".
func (p PrimaryPos) LongName() string {
	if p >= 0 && int(p) < len(primaryPosNames) {
		return primaryPosNames[p].long
	}
	return p.String()
}

// ParsePrimaryPos accepts either the short or the long name.
func ParsePrimaryPos(s string) (PrimaryPos, error) {
	for i, n := range primaryPosNames {
		if s == n.short || s == n.long {
			return PrimaryPos(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown primary POS %q", ErrInvalidInput, s)
}

// MarshalJSON encodes the POS as its short name.
func (p PrimaryPos) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

// UnmarshalJSON decodes a short or long POS name.
func (p *PrimaryPos) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	v, err := ParsePrimaryPos(s)
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// SecondaryPos refines a PrimaryPos. NoSecondary means none.
type SecondaryPos int

const (
	NoSecondary SecondaryPos = iota
	ProperNoun
	Abbreviation
	Demonstrative
	Personal
	Reflexive
	QuestionPron
	Cardinal
	Ordinal
	Time
)

var secondaryPosNames = [...]posName{
	NoSecondary:   {"None", "None"},
	ProperNoun:    {"ProperNoun", "Prop"},
	Abbreviation:  {"Abbreviation", "Abbrv"},
	Demonstrative: {"Demonstrative", "Demons"},
	Personal:      {"Personal", "Pers"},
	Reflexive:     {"Reflexive", "Reflex"},
	QuestionPron:  {"Question", "Ques"},
	Cardinal:      {"Cardinal", "Card"},
	Ordinal:       {"Ordinal", "Ord"},
	Time:          {"Time", "Time"},
}

func (p SecondaryPos) String() string {
	if p >= 0 && int(p) < len(secondaryPosNames) {
		return secondaryPosNames[p].short
	}
	return fmt.Sprintf("SecondaryPos(%d)", int(p))
}

// ParseSecondaryPos accepts either the short or the long name.
func ParseSecondaryPos(s string) (SecondaryPos, error) {
	for i, n := range secondaryPosNames {
		if s == n.short || s == n.long {
			return SecondaryPos(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown secondary POS %q", ErrInvalidInput, s)
}

func (p SecondaryPos) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

func (p *SecondaryPos) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	v, err := ParseSecondaryPos(s)
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// RootAttribute is a morphophonemic property of a root that changes how
// suffixes attach to it.
type RootAttribute uint8

const (
	Voicing              RootAttribute = iota // kitap -> kitabı
	NoVoicing                                 // saat -> saati
	InverseHarmony                            // saat -> saate
	LastVowelDrop                             // burun -> burnu
	Doubling                                  // hak -> hakkı
	ProgressiveVowelDrop                      // ara -> arıyor
	AoristA                                   // yap -> yapar
	AoristI                                   // gel -> gelir
	NoSuffix                                  // takes no suffixes at all
	Runtime                                   // synthesized for an unknown token
	numRootAttributes
)

var rootAttributeNames = [numRootAttributes]string{
	Voicing:              "Voicing",
	NoVoicing:            "NoVoicing",
	InverseHarmony:       "InverseHarmony",
	LastVowelDrop:        "LastVowelDrop",
	Doubling:             "Doubling",
	ProgressiveVowelDrop: "ProgressiveVowelDrop",
	AoristA:              "Aorist_A",
	AoristI:              "Aorist_I",
	NoSuffix:             "NoSuffix",
	Runtime:              "Runtime",
}

func (a RootAttribute) String() string {
	if a < numRootAttributes {
		return rootAttributeNames[a]
	}
	return fmt.Sprintf("RootAttribute(%d)", int(a))
}

// ParseRootAttribute parses an attribute name such as "Aorist_A".
func ParseRootAttribute(s string) (RootAttribute, error) {
	for i, n := range rootAttributeNames {
		if s == n {
			return RootAttribute(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown root attribute %q", ErrInvalidInput, s)
}

// AttrSet is a set of root attributes.
type AttrSet uint16

// Attrs builds a set from the given attributes.
func Attrs(attrs ...RootAttribute) AttrSet {
	var s AttrSet
	for _, a := range attrs {
		s = s.With(a)
	}
	return s
}

func (s AttrSet) Has(a RootAttribute) bool { return s&(1<<a) != 0 }

// With returns s plus a.
func (s AttrSet) With(a RootAttribute) AttrSet { return s | 1<<a }

// Without returns s minus a.
func (s AttrSet) Without(a RootAttribute) AttrSet { return s &^ (1 << a) }

// Contains reports whether every attribute of o is in s.
func (s AttrSet) Contains(o AttrSet) bool { return s&o == o }

// Intersects reports whether s and o share an attribute.
func (s AttrSet) Intersects(o AttrSet) bool { return s&o != 0 }

// Len returns the number of attributes in s.
func (s AttrSet) Len() int { return bits.OnesCount16(uint16(s)) }

// Slice returns the attributes in declaration order.
func (s AttrSet) Slice() []RootAttribute {
	out := make([]RootAttribute, 0, s.Len())
	for a := RootAttribute(0); a < numRootAttributes; a++ {
		if s.Has(a) {
			out = append(out, a)
		}
	}
	return out
}

// String returns "Voicing, Aorist_A" style text.
func (s AttrSet) String() string {
	names := make([]string, 0, s.Len())
	for _, a := range s.Slice() {
		names = append(names, a.String())
	}
	return strings.Join(names, ", ")
}

// MarshalJSON encodes the set as a list of attribute names.
func (s AttrSet) MarshalJSON() ([]byte, error) {
	names := make([]string, 0, s.Len())
	for _, a := range s.Slice() {
		names = append(names, a.String())
	}
	return json.Marshal(names)
}

func (s *AttrSet) UnmarshalJSON(data []byte) error {
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return err
	}
	var out AttrSet
	for _, n := range names {
		a, err := ParseRootAttribute(n)
		if err != nil {
			return err
		}
		out = out.With(a)
	}
	*s = out
	return nil
}
