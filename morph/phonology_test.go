package morph

import "testing"

func TestHarmonyTargets(t *testing.T) {
	tests := []struct {
		word     string
		wantA    rune
		wantI    rune
		wantLast rune
	}{
		{"kitap", 'a', 'ı', 'a'},
		{"ev", 'e', 'i', 'e'},
		{"okul", 'a', 'u', 'u'},
		{"göz", 'e', 'ü', 'ö'},
		{"kız", 'a', 'ı', 'ı'},
		{"gün", 'e', 'ü', 'ü'},
		{"yol", 'a', 'u', 'o'},
		{"dil", 'e', 'i', 'i'},
		{"rüzgâr", 'a', 'ı', 'â'},
		{"tbmm", 'a', 'i', 0},
	}
	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			v := lastVowel(tt.word)
			if v != tt.wantLast {
				t.Errorf("lastVowel(%q) = %q, want %q", tt.word, v, tt.wantLast)
			}
			if got := twoWayTarget(v); got != tt.wantA {
				t.Errorf("twoWayTarget(%q) = %q, want %q", v, got, tt.wantA)
			}
			if got := fourWayTarget(v); got != tt.wantI {
				t.Errorf("fourWayTarget(%q) = %q, want %q", v, got, tt.wantI)
			}
		})
	}
}

func TestFrontCounterpart(t *testing.T) {
	for in, want := range map[rune]rune{'a': 'e', 'ı': 'i', 'o': 'ö', 'u': 'ü', 'e': 'e', 'ü': 'ü', 0: 0} {
		if got := frontCounterpart(in); got != want {
			t.Errorf("frontCounterpart(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSyllableCount(t *testing.T) {
	for word, want := range map[string]int{"ev": 1, "kitap": 2, "araba": 3, "tbmm": 0, "": 0, "öğrenci": 3} {
		if got := syllableCount(word); got != want {
			t.Errorf("syllableCount(%q) = %d, want %d", word, got, want)
		}
	}
}

func TestPhonetics(t *testing.T) {
	p := phoneticsOf("kitab")
	if p.lastVowel != 'a' || p.lastLetter != 'b' || p.endsWithVowel() {
		t.Errorf("phoneticsOf(kitab) = %+v", p)
	}
	p = p.advance("ı")
	if p.lastVowel != 'ı' || !p.endsWithVowel() {
		t.Errorf("after ı = %+v", p)
	}
	p = p.advance("n")
	if p.lastVowel != 'ı' || p.lastLetter != 'n' {
		t.Errorf("after n = %+v", p)
	}
	if got := phoneticsOf(""); got != (phonetics{}) {
		t.Errorf("phoneticsOf(\"\") = %+v", got)
	}
}
