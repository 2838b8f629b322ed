package morph

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestNewDictionaryItem(t *testing.T) {
	tests := []struct {
		name                   string
		lemma, root, pron      string
		primary                PrimaryPos
		secondary              SecondaryPos
		wantRoot, wantPron, id string
	}{
		{"noun defaults", "kitap", "", "", Noun, NoSecondary, "kitap", "kitap", "kitap_Noun"},
		{"verb strips mek", "gelmek", "", "", Verb, NoSecondary, "gel", "gel", "gelmek_Verb"},
		{"verb strips mak", "yapmak", "", "", Verb, NoSecondary, "yap", "yap", "yapmak_Verb"},
		{"explicit root and pronunciation", "tweetlemek", "tweetle", "tivitle", Verb, NoSecondary, "tweetle", "tivitle", "tweetlemek_Verb"},
		{"proper noun lowercased root", "İstanbul", "", "", Noun, ProperNoun, "istanbul", "istanbul", "İstanbul_Noun_Prop"},
		{"abbreviation", "TBMM", "", "tebememe", Noun, Abbreviation, "tbmm", "tebememe", "TBMM_Noun_Abbrv"},
		{"trimmed", "  ev ", "", "", Noun, NoSecondary, "ev", "ev", "ev_Noun"},
		{"noun ending in mek keeps it", "ekmek", "", "", Noun, NoSecondary, "ekmek", "ekmek", "ekmek_Noun"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item, err := NewDictionaryItem(tt.lemma, tt.root, tt.pron, tt.primary, tt.secondary)
			if err != nil {
				t.Fatalf("NewDictionaryItem: %v", err)
			}
			if item.Root() != tt.wantRoot {
				t.Errorf("Root() = %q, want %q", item.Root(), tt.wantRoot)
			}
			if item.Pronunciation() != tt.wantPron {
				t.Errorf("Pronunciation() = %q, want %q", item.Pronunciation(), tt.wantPron)
			}
			if item.ID() != tt.id {
				t.Errorf("ID() = %q, want %q", item.ID(), tt.id)
			}
		})
	}
}

func TestNewDictionaryItemInvalid(t *testing.T) {
	tests := []struct {
		name        string
		lemma, root string
		primary     PrimaryPos
	}{
		{"empty lemma", "", "", Noun},
		{"blank lemma", "   ", "", Noun},
		{"root with space", "kitap", "ki tap", Noun},
		{"root with apostrophe", "kitap", "ki'tap", Noun},
		{"bad primary", "kitap", "", PrimaryPos(-1)},
		{"invalid utf8", "kit\xffap", "", Noun},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDictionaryItem(tt.lemma, tt.root, "", tt.primary, NoSecondary)
			if !errors.Is(err, ErrInvalidInput) {
				t.Errorf("err = %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestMustDictionaryItemPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustDictionaryItem with empty lemma did not panic")
		}
	}()
	MustDictionaryItem("", "", "", Noun, NoSecondary)
}

func TestDictionaryItemString(t *testing.T) {
	tests := []struct {
		item *DictionaryItem
		want string
	}{
		{MustDictionaryItem("Meydan", "meydan", "meydan", Noun, ProperNoun), "Meydan [P:Noun, Prop]"},
		{MustDictionaryItem("tweetlemek", "tweetle", "tivitle", Verb, NoSecondary), "tweetlemek [P:Verb]"},
		{MustDictionaryItem("güzel", "", "", Adjective, NoSecondary), "güzel [P:Adj]"},
	}
	for _, tt := range tests {
		if got := tt.item.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestDictionaryItemAttributes(t *testing.T) {
	item := MustDictionaryItem("kalp", "", "", Noun, NoSecondary, Voicing, InverseHarmony)
	if !item.HasAttribute(Voicing) || !item.HasAttribute(InverseHarmony) {
		t.Errorf("Attributes() = %v", item.Attributes())
	}
	if item.IsRuntime() {
		t.Error("IsRuntime() = true")
	}
	if !MustDictionaryItem("X", "", "", Noun, ProperNoun, Runtime).IsRuntime() {
		t.Error("Runtime item: IsRuntime() = false")
	}
}

func TestDictionaryItemJSON(t *testing.T) {
	item := MustDictionaryItem("tweetlemek", "tweetle", "tivitle", Verb, NoSecondary, AoristI)
	b, err := json.Marshal(item)
	if err != nil {
		t.Fatal(err)
	}
	want := `{"id":"tweetlemek_Verb","lemma":"tweetlemek","root":"tweetle","pronunciation":"tivitle","primary":"Verb","secondary":"None","attributes":["Aorist_I"]}`
	if string(b) != want {
		t.Errorf("json =\n%s\nwant\n%s", b, want)
	}

	var back DictionaryItem
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatal(err)
	}
	if back.ID() != item.ID() || back.Root() != item.Root() || back.Attributes() != item.Attributes() {
		t.Errorf("round trip = %+v", back)
	}

	// Missing root and pronunciation fall back to the lemma.
	var prop DictionaryItem
	if err := json.Unmarshal([]byte(`{"lemma":"Meydan","primary":"Noun","secondary":"Prop"}`), &prop); err != nil {
		t.Fatal(err)
	}
	if prop.Root() != "meydan" || prop.SecondaryPos() != ProperNoun {
		t.Errorf("decoded = %v root %q", prop.String(), prop.Root())
	}

	var empty DictionaryItem
	if err := json.Unmarshal([]byte(`{"lemma":"","primary":"Noun"}`), &empty); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("empty lemma: err = %v, want ErrInvalidInput", err)
	}
}

func TestDictionaryItemJSONImmutable(t *testing.T) {
	item := MustDictionaryItem("kitap", "", "", Noun, NoSecondary)
	err := json.Unmarshal([]byte(`{"lemma":"defter","primary":"Noun"}`), item)
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("decode into constructed item: err = %v, want ErrInvalidInput", err)
	}
	if item.ID() != "kitap_Noun" || item.Root() != "kitap" {
		t.Errorf("item changed to %v root %q", item, item.Root())
	}
}

func TestLexicon(t *testing.T) {
	l := NewLexicon()
	kitap := MustDictionaryItem("kitap", "", "", Noun, NoSecondary)
	ev := MustDictionaryItem("ev", "", "", Noun, NoSecondary)

	for _, item := range []*DictionaryItem{kitap, ev} {
		if err := l.Insert(item); err != nil {
			t.Fatalf("Insert(%s): %v", item, err)
		}
	}
	if err := l.Insert(MustDictionaryItem("kitap", "", "", Noun, NoSecondary)); !errors.Is(err, ErrDuplicateItem) {
		t.Errorf("duplicate Insert err = %v, want ErrDuplicateItem", err)
	}
	if err := l.Insert(nil); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Insert(nil) err = %v, want ErrInvalidInput", err)
	}
	// Same lemma, other part of speech: a different item.
	if err := l.Insert(MustDictionaryItem("kitap", "", "", Adjective, NoSecondary)); err != nil {
		t.Errorf("Insert(kitap Adj): %v", err)
	}

	if l.Len() != 3 {
		t.Errorf("Len() = %d, want 3", l.Len())
	}
	if got, ok := l.Lookup("ev_Noun"); !ok || got != ev {
		t.Errorf("Lookup(ev_Noun) = %v, %v", got, ok)
	}
	if !l.Contains(MustDictionaryItem("ev", "", "", Noun, NoSecondary)) {
		t.Error("Contains(ev) = false")
	}

	items := l.Items()
	if items[0] != kitap || items[1] != ev {
		t.Errorf("Items() order = %v", items)
	}
	items[0] = nil
	if l.Items()[0] != kitap {
		t.Error("Items() exposes internal storage")
	}
}
