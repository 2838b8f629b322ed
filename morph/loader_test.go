package morph

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLexiconLine(t *testing.T) {
	tests := []struct {
		line      string
		id        string
		root      string
		pron      string
		attrs     AttrSet
		secondary SecondaryPos
	}{
		{"kitap", "kitap_Noun", "kitap", "kitap", Attrs(Voicing), NoSecondary},
		{"ev", "ev_Noun", "ev", "ev", 0, NoSecondary},
		{"gelmek", "gelmek_Verb", "gel", "gel", Attrs(AoristI), NoSecondary},
		{"yapmak", "yapmak_Verb", "yap", "yap", Attrs(AoristA), NoSecondary},
		{"aramak", "aramak_Verb", "ara", "ara", Attrs(AoristI, ProgressiveVowelDrop), NoSecondary},
		{"Ankara", "Ankara_Noun_Prop", "ankara", "ankara", 0, ProperNoun},
		{"ekmek [P:Noun]", "ekmek_Noun", "ekmek", "ekmek", Attrs(Voicing), NoSecondary},
		{"saat [A:NoVoicing, InverseHarmony]", "saat_Noun", "saat", "saat", Attrs(NoVoicing, InverseHarmony), NoSecondary},
		{"TBMM [P:Noun, Abbrv; Pr:tebememe]", "TBMM_Noun_Abbrv", "tbmm", "tebememe", 0, Abbreviation},
		{"tweetlemek [Pr:tivitle; R:tweetle]", "tweetlemek_Verb", "tweetle", "tivitle", Attrs(AoristI, ProgressiveVowelDrop), NoSecondary},
		{"güzel [P:Adjective]", "güzel_Adj", "güzel", "güzel", 0, NoSecondary},
		{"  hak   [ A:Doubling ]  ", "hak_Noun", "hak", "hak", Attrs(Doubling), NoSecondary},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			item, err := ParseLexiconLine(tt.line, nil)
			if err != nil {
				t.Fatalf("ParseLexiconLine: %v", err)
			}
			if item.ID() != tt.id {
				t.Errorf("ID() = %q, want %q", item.ID(), tt.id)
			}
			if item.Root() != tt.root || item.Pronunciation() != tt.pron {
				t.Errorf("root, pron = %q, %q; want %q, %q", item.Root(), item.Pronunciation(), tt.root, tt.pron)
			}
			if item.Attributes() != tt.attrs {
				t.Errorf("Attributes() = %v, want %v", item.Attributes(), tt.attrs)
			}
			if item.SecondaryPos() != tt.secondary {
				t.Errorf("SecondaryPos() = %v, want %v", item.SecondaryPos(), tt.secondary)
			}
		})
	}
}

func TestParseLexiconLineErrors(t *testing.T) {
	for _, line := range []string{
		"",
		"kitap [P:Noun",
		"kitap [P:Bogus]",
		"kitap [P:Noun, Prop, Extra]",
		"kitap [A:Bogus]",
		"kitap [X:1]",
		"kitap [Noun]",
		"iki kelime",
		"Foo [P:Noun, Prop; A:Runtime]",
	} {
		t.Run(line, func(t *testing.T) {
			if _, err := ParseLexiconLine(line, nil); !errors.Is(err, ErrInvalidInput) {
				t.Errorf("ParseLexiconLine(%q) err = %v, want ErrInvalidInput", line, err)
			}
		})
	}
}

func TestFormatLexiconLineRoundTrip(t *testing.T) {
	items := []*DictionaryItem{
		MustDictionaryItem("kitap", "", "", Noun, NoSecondary),
		MustDictionaryItem("Meydan", "meydan", "meydan", Noun, ProperNoun),
		MustDictionaryItem("tweetlemek", "tweetle", "tivitle", Verb, NoSecondary),
		MustDictionaryItem("TBMM", "", "tebememe", Noun, Abbreviation),
		MustDictionaryItem("güzel", "", "", Adjective, NoSecondary),
		MustDictionaryItem("yemek", "", "", Noun, NoSecondary, Voicing),
		MustDictionaryItem("saat", "", "", Noun, NoSecondary, NoVoicing, InverseHarmony),
		MustDictionaryItem("Ayşe", "", "", Noun, NoSecondary),
	}
	for _, item := range items {
		t.Run(item.ID(), func(t *testing.T) {
			line := FormatLexiconLine(item)
			back, err := ParseLexiconLine(line, nil)
			if err != nil {
				t.Fatalf("ParseLexiconLine(%q): %v", line, err)
			}
			want := DefaultRules().InferAttributes(item)
			if back.ID() != want.ID() || back.Root() != want.Root() ||
				back.Pronunciation() != want.Pronunciation() || back.Attributes() != want.Attributes() {
				t.Errorf("%q parsed to %v (root %q pron %q attrs %v), want %v (root %q pron %q attrs %v)",
					line, back, back.Root(), back.Pronunciation(), back.Attributes(),
					want, want.Root(), want.Pronunciation(), want.Attributes())
			}
		})
	}
}

func TestFormatLexiconLine(t *testing.T) {
	tests := []struct {
		item *DictionaryItem
		want string
	}{
		{MustDictionaryItem("kitap", "", "", Noun, NoSecondary), "kitap"},
		{MustDictionaryItem("Meydan", "", "", Noun, ProperNoun), "Meydan"},
		{MustDictionaryItem("ekmek", "", "", Noun, NoSecondary), "ekmek [P:Noun]"},
		{MustDictionaryItem("Ayşe", "", "", Noun, NoSecondary), "Ayşe [P:Noun]"},
		{MustDictionaryItem("TBMM", "", "tebememe", Noun, Abbreviation), "TBMM [P:Noun, Abbrv; Pr:tebememe]"},
		{MustDictionaryItem("hak", "", "", Noun, NoSecondary, Doubling), "hak [A:Doubling]"},
		{MustDictionaryItem("tweetlemek", "tweetle", "tivitle", Verb, NoSecondary), "tweetlemek [Pr:tivitle]"},
		{MustDictionaryItem("demek", "di", "", Verb, NoSecondary), "demek [R:di]"},
	}
	for _, tt := range tests {
		if got := FormatLexiconLine(tt.item); got != tt.want {
			t.Errorf("FormatLexiconLine(%v) = %q, want %q", tt.item, got, tt.want)
		}
	}
}

func TestParseLexicon(t *testing.T) {
	src := LexiconHeader + "\n" +
		"# comment\n" +
		"\n" +
		"kitap\n" +
		"gelmek\n" +
		"Ankara\n"
	items, err := ParseLexicon([]byte(src), "test", nil)
	if err != nil {
		t.Fatal(err)
	}
	var ids []string
	for _, item := range items {
		ids = append(ids, item.ID())
	}
	if got, want := strings.Join(ids, " "), "kitap_Noun gelmek_Verb Ankara_Noun_Prop"; got != want {
		t.Errorf("ids = %s, want %s", got, want)
	}
}

func TestParseLexiconErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		line int
	}{
		{"missing header", "kitap\n", 1},
		{"unsupported version", "#! trmorph-lexicon v2\nkitap\n", 1},
		{"empty", "", 0},
		{"bad line", LexiconHeader + "\nkitap\nev [P:Bogus]\n", 3},
		{"header after blank lines", "\n\nkitap\n", 3},
		{"line too long", LexiconHeader + "\n" + strings.Repeat("a", maxLexiconLine+1) + "\n", 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseLexicon([]byte(tt.src), "lex.txt", nil)
			if !errors.Is(err, ErrResourceLoad) {
				t.Fatalf("err = %v, want ErrResourceLoad", err)
			}
			var le *LoadError
			if !errors.As(err, &le) {
				t.Fatalf("err = %T, want *LoadError", err)
			}
			if le.Line != tt.line {
				t.Errorf("Line = %d, want %d (%v)", le.Line, tt.line, err)
			}
			if le.Path != "lex.txt" {
				t.Errorf("Path = %q", le.Path)
			}
		})
	}
}

func TestLoadLexicon(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lexicon.txt")

	var buf bytes.Buffer
	items := []*DictionaryItem{
		MustDictionaryItem("kitap", "", "", Noun, NoSecondary),
		MustDictionaryItem("Meydan", "", "", Noun, ProperNoun),
		MustDictionaryItem("tweetlemek", "tweetle", "tivitle", Verb, NoSecondary),
	}
	if err := WriteLexicon(&buf, items); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}

	loaded, err := LoadLexicon(path, nil)
	if err != nil {
		t.Fatalf("LoadLexicon: %v", err)
	}
	if len(loaded) != len(items) {
		t.Fatalf("loaded %d items, want %d", len(loaded), len(items))
	}
	for i, item := range loaded {
		if item.ID() != items[i].ID() {
			t.Errorf("item %d = %s, want %s", i, item.ID(), items[i].ID())
		}
	}

	e, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if wa := analyze(t, e, "tweetleyeyazdım"); wa.Len() != 1 {
		t.Errorf("tweetleyeyazdım = %v, want one analysis", formats(wa))
	}
}

func TestLoadLexiconErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadLexicon(filepath.Join(dir, "missing.txt"), nil); !errors.Is(err, ErrResourceLoad) {
		t.Errorf("missing file: err = %v, want ErrResourceLoad", err)
	}

	empty := filepath.Join(dir, "empty.txt")
	if err := os.WriteFile(empty, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadLexicon(empty, nil); !errors.Is(err, ErrResourceLoad) {
		t.Errorf("empty file: err = %v, want ErrResourceLoad", err)
	}

	if _, err := Load(filepath.Join(dir, "missing.txt")); !errors.Is(err, ErrResourceLoad) {
		t.Errorf("Load missing: err = %v, want ErrResourceLoad", err)
	}
}

func TestDefaultItems(t *testing.T) {
	items, err := DefaultItems(nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) < 100 {
		t.Errorf("default lexicon has %d items, want at least 100", len(items))
	}
	seen := make(map[string]bool)
	for _, item := range items {
		if seen[item.ID()] {
			t.Errorf("duplicate default item %s", item.ID())
		}
		seen[item.ID()] = true
	}
	for _, id := range []string{"kitap_Noun", "meydan_Noun", "gelmek_Verb", "Ankara_Noun_Prop", "TBMM_Noun_Abbrv"} {
		if !seen[id] {
			t.Errorf("default lexicon lacks %s", id)
		}
	}

	// The returned slice is a copy.
	items[0] = nil
	again, _ := DefaultItems(nil)
	if again[0] == nil {
		t.Error("DefaultItems returns shared storage")
	}
}
