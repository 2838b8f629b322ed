package morph

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/az-ai-labs/tr-morph/internal/trcase"
)

// DictionaryItem is one root lexicon entry. Items are immutable after
// construction and identified by ID.
type DictionaryItem struct {
	lemma         string
	root          string
	pronunciation string
	primary       PrimaryPos
	secondary     SecondaryPos
	attrs         AttrSet
}

// NewDictionaryItem builds an item. An empty root is derived from the
// lemma (verbs drop their -mek/-mak ending) and an empty pronunciation
// defaults to the root. Root and pronunciation are stored in Turkish
// lowercase.
func NewDictionaryItem(lemma, root, pronunciation string, primary PrimaryPos, secondary SecondaryPos, attrs ...RootAttribute) (*DictionaryItem, error) {
	lemma = strings.TrimSpace(trcase.ComposeNFC(lemma))
	if lemma == "" || !utf8.ValidString(lemma) {
		return nil, fmt.Errorf("%w: empty or malformed lemma", ErrInvalidInput)
	}
	if primary < 0 || primary > UnknownPos {
		return nil, fmt.Errorf("%w: primary POS %d out of range", ErrInvalidInput, int(primary))
	}
	if secondary < 0 || secondary > Time {
		return nil, fmt.Errorf("%w: secondary POS %d out of range", ErrInvalidInput, int(secondary))
	}

	if root == "" {
		root = defaultRoot(lemma, primary)
	}
	root = trcase.ToLower(trcase.ComposeNFC(strings.TrimSpace(root)))
	if pronunciation == "" {
		pronunciation = root
	}
	pronunciation = trcase.ToLower(trcase.ComposeNFC(strings.TrimSpace(pronunciation)))

	for _, s := range []string{root, pronunciation} {
		if s == "" || !utf8.ValidString(s) {
			return nil, fmt.Errorf("%w: empty root or pronunciation for %q", ErrInvalidInput, lemma)
		}
		if strings.ContainsFunc(s, func(r rune) bool { return unicode.IsSpace(r) || r == '\'' }) {
			return nil, fmt.Errorf("%w: root %q contains space or apostrophe", ErrInvalidInput, s)
		}
	}

	return &DictionaryItem{
		lemma:         lemma,
		root:          root,
		pronunciation: pronunciation,
		primary:       primary,
		secondary:     secondary,
		attrs:         Attrs(attrs...),
	}, nil
}

// MustDictionaryItem is like NewDictionaryItem but panics on error.
// Intended for tests and static tables.
func MustDictionaryItem(lemma, root, pronunciation string, primary PrimaryPos, secondary SecondaryPos, attrs ...RootAttribute) *DictionaryItem {
	item, err := NewDictionaryItem(lemma, root, pronunciation, primary, secondary, attrs...)
	if err != nil {
		panic(err)
	}
	return item
}

// defaultRoot lowercases the lemma and strips the infinitive ending of verbs.
func defaultRoot(lemma string, primary PrimaryPos) string {
	root := trcase.ToLower(lemma)
	if primary == Verb {
		if s, ok := strings.CutSuffix(root, "mek"); ok && s != "" {
			return s
		}
		if s, ok := strings.CutSuffix(root, "mak"); ok && s != "" {
			return s
		}
	}
	return root
}

func (d *DictionaryItem) Lemma() string { return d.lemma }
func (d *DictionaryItem) Root() string { return d.root }
func (d *DictionaryItem) Pronunciation() string { return d.pronunciation }
func (d *DictionaryItem) PrimaryPos() PrimaryPos { return d.primary }
func (d *DictionaryItem) SecondaryPos() SecondaryPos { return d.secondary }
func (d *DictionaryItem) Attributes() AttrSet { return d.attrs }
func (d *DictionaryItem) HasAttribute(a RootAttribute) bool { return d.attrs.Has(a) }

// ID returns the identity key: lemma, primary POS and secondary POS
// joined by underscores, e.g. "Meydan_Noun_Prop".
func (d *DictionaryItem) ID() string {
	if d.secondary == NoSecondary {
		return d.lemma + "_" + d.primary.String()
	}
	return d.lemma + "_" + d.primary.String() + "_" + d.secondary.String()
}

// IsRuntime reports whether the item was synthesized for an unknown token.
func (d *DictionaryItem) IsRuntime() bool { return d.attrs.Has(Runtime) }

// String returns "Meydan [P:Noun, Prop]".
func (d *DictionaryItem) String() string {
	if d.secondary == NoSecondary {
		return d.lemma + " [P:" + d.primary.String() + "]"
	}
	return d.lemma + " [P:" + d.primary.String() + ", " + d.secondary.String() + "]"
}

// withAttrs returns a copy of d carrying attrs.
func (d *DictionaryItem) withAttrs(attrs AttrSet) *DictionaryItem {
	c := *d
	c.attrs = attrs
	return &c
}

// itemJSON is the wire form of a DictionaryItem.
type itemJSON struct {
	ID            string       `json:"id,omitempty"`
	Lemma         string       `json:"lemma"`
	Root          string       `json:"root,omitempty"`
	Pronunciation string       `json:"pronunciation,omitempty"`
	Primary       PrimaryPos   `json:"primary"`
	Secondary     SecondaryPos `json:"secondary"`
	Attributes    AttrSet      `json:"attributes"`
}

func (d *DictionaryItem) MarshalJSON() ([]byte, error) {
	return json.Marshal(itemJSON{
		ID:            d.ID(),
		Lemma:         d.lemma,
		Root:          d.root,
		Pronunciation: d.pronunciation,
		Primary:       d.primary,
		Secondary:     d.secondary,
		Attributes:    d.attrs,
	})
}

// UnmarshalJSON decodes and validates an item. The "id" field is ignored.
// Items are immutable, so decoding into a constructed item fails with
// ErrInvalidInput.
func (d *DictionaryItem) UnmarshalJSON(data []byte) error {
	if d.lemma != "" {
		return fmt.Errorf("%w: cannot decode into constructed item %s", ErrInvalidInput, d.ID())
	}
	var j itemJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return err
	}
	item, err := NewDictionaryItem(j.Lemma, j.Root, j.Pronunciation, j.Primary, j.Secondary, j.Attributes.Slice()...)
	if err != nil {
		return err
	}
	*d = *item
	return nil
}
