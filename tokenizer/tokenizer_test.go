package tokenizer

import (
	"strings"
	"testing"
)

// verifyInvariants checks that input[t.Start:t.End] == t.Text for every
// token and that the token texts reconstruct the input.
func verifyInvariants(t *testing.T, input string, tokens []Token) {
	t.Helper()
	var buf strings.Builder
	for i, tok := range tokens {
		if got := input[tok.Start:tok.End]; got != tok.Text {
			t.Errorf("token %d offset invariant broken: input[%d:%d]=%q, Text=%q",
				i, tok.Start, tok.End, got, tok.Text)
		}
		buf.WriteString(tok.Text)
	}
	if buf.String() != input {
		t.Errorf("reconstruction invariant broken:\ngot:  %q\nwant: %q", buf.String(), input)
	}
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Token
	}{
		{"single word", "kitap", []Token{
			{Text: "kitap", Start: 0, End: 5, Type: Word},
		}},
		{"two words", "güzel ev", []Token{
			{Text: "güzel", Start: 0, End: 6, Type: Word},
			{Text: " ", Start: 6, End: 7, Type: Space},
			{Text: "ev", Start: 7, End: 9, Type: Word},
		}},
		{"proper noun with suffix", "Meydan'a", []Token{
			{Text: "Meydan'a", Start: 0, End: 8, Type: Word},
		}},
		{"typographic apostrophe", "Ankara’ya", []Token{
			{Text: "Ankara’ya", Start: 0, End: 11, Type: Word},
		}},
		{"number with suffix", "1990'larda", []Token{
			{Text: "1990'larda", Start: 0, End: 10, Type: Number},
		}},
		{"thousand separator", "1.000.000", []Token{
			{Text: "1.000.000", Start: 0, End: 9, Type: Number},
		}},
		{"decimal comma", "3,14", []Token{
			{Text: "3,14", Start: 0, End: 4, Type: Number},
		}},
		{"dot is not decimal", "3.14", []Token{
			{Text: "3", Start: 0, End: 1, Type: Number},
			{Text: ".", Start: 1, End: 2, Type: Punctuation},
			{Text: "14", Start: 2, End: 4, Type: Number},
		}},
		{"hyphenated word", "Kadıköy-Moda", []Token{
			{Text: "Kadıköy-Moda", Start: 0, End: 14, Type: Word},
		}},
		{"double hyphen splits", "iyi--kötü", []Token{
			{Text: "iyi", Start: 0, End: 3, Type: Word},
			{Text: "--", Start: 3, End: 5, Type: Punctuation},
			{Text: "kötü", Start: 5, End: 11, Type: Word},
		}},
		{"trailing apostrophe", "Ali'", []Token{
			{Text: "Ali", Start: 0, End: 3, Type: Word},
			{Text: "'", Start: 3, End: 4, Type: Punctuation},
		}},
		{"sentence end", "Geldim.", []Token{
			{Text: "Geldim", Start: 0, End: 6, Type: Word},
			{Text: ".", Start: 6, End: 7, Type: Punctuation},
		}},
		{"ellipsis", "ama...", []Token{
			{Text: "ama", Start: 0, End: 3, Type: Word},
			{Text: "...", Start: 3, End: 6, Type: Punctuation},
		}},
		{"url", "bak https://example.com.", []Token{
			{Text: "bak", Start: 0, End: 3, Type: Word},
			{Text: " ", Start: 3, End: 4, Type: Space},
			{Text: "https://example.com", Start: 4, End: 23, Type: URL},
			{Text: ".", Start: 23, End: 24, Type: Punctuation},
		}},
		{"symbol", "a+b", []Token{
			{Text: "a", Start: 0, End: 1, Type: Word},
			{Text: "+", Start: 1, End: 2, Type: Symbol},
			{Text: "b", Start: 2, End: 3, Type: Word},
		}},
		{"whitespace run", "a \t\nb", []Token{
			{Text: "a", Start: 0, End: 1, Type: Word},
			{Text: " \t\n", Start: 1, End: 4, Type: Space},
			{Text: "b", Start: 4, End: 5, Type: Word},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Tokenize(tt.input)
			verifyInvariants(t, tt.input, got)
			if len(got) != len(tt.want) {
				t.Fatalf("Tokenize(%q) = %v, want %v", tt.input, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("token %d = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestTokenizeEmpty(t *testing.T) {
	if got := Tokenize(""); got != nil {
		t.Errorf("Tokenize(\"\") = %v, want nil", got)
	}
}

func TestWords(t *testing.T) {
	got := Words("Meydan'a 3 kez gittim, değil mi?")
	want := []string{"Meydan'a", "3", "kez", "gittim", "değil", "mi"}
	if len(got) != len(want) {
		t.Fatalf("Words() = %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Words()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestTokenTypeString(t *testing.T) {
	if got := Number.String(); got != "Number" {
		t.Errorf("Number.String() = %q", got)
	}
	if got := TokenType(99).String(); got != "TokenType(99)" {
		t.Errorf("TokenType(99).String() = %q", got)
	}
}

func FuzzTokenize(f *testing.F) {
	for _, s := range []string{"", "kitap", "Meydan'a", "1.000,5'te", "http://x.y z", "a--b", "\xff\xfe"} {
		f.Add(s)
	}
	f.Fuzz(func(t *testing.T, s string) {
		verifyInvariants(t, s, Tokenize(s))
	})
}

func BenchmarkTokenize(b *testing.B) {
	s := strings.Repeat("Ankara'ya 1990'larda gittik, güzel bir şehirdi. ", 20)
	for b.Loop() {
		Tokenize(s)
	}
}
