package morph

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/edsrzf/mmap-go"

	"github.com/az-ai-labs/tr-morph/internal/trcase"
)

// LexiconHeader is the first non-blank line of a version 1 lexicon.
const LexiconHeader = "#! trmorph-lexicon v1"

// maxLexiconLine bounds one lexicon line.
const maxLexiconLine = 64 * 1024

// LoadLexicon memory-maps the lexicon file at path and parses it.
func LoadLexicon(path string, rules *RuleSet) ([]*DictionaryItem, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrResourceLoad, err)
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrResourceLoad, err)
	}
	if fi.Size() == 0 {
		return nil, &LoadError{Path: path, Msg: "empty file"}
	}

	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: mmap %s: %w", ErrResourceLoad, path, err)
	}
	defer func() { _ = m.Unmap() }()

	return ParseLexicon(m, path, rules)
}

// ParseLexicon parses lexicon text. name is used in error messages.
// Blank lines and lines starting with '#' are skipped; the first
// non-blank line must be LexiconHeader.
func ParseLexicon(b []byte, name string, rules *RuleSet) ([]*DictionaryItem, error) {
	if rules == nil {
		rules = DefaultRules()
	}
	sc := bufio.NewScanner(bytes.NewReader(b))
	sc.Buffer(make([]byte, 0, 4096), maxLexiconLine)

	var items []*DictionaryItem
	lineNo := 0
	headerSeen := false
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if !headerSeen {
			if line != LexiconHeader {
				if strings.HasPrefix(line, "#! trmorph-lexicon ") {
					return nil, &LoadError{Path: name, Line: lineNo, Msg: fmt.Sprintf("unsupported version %q", line)}
				}
				return nil, &LoadError{Path: name, Line: lineNo, Msg: "missing " + LexiconHeader + " header"}
			}
			headerSeen = true
			continue
		}
		if strings.HasPrefix(line, "#") {
			continue
		}
		item, err := ParseLexiconLine(line, rules)
		if err != nil {
			return nil, &LoadError{Path: name, Line: lineNo, Msg: err.Error()}
		}
		items = append(items, item)
	}
	if err := sc.Err(); err != nil {
		return nil, &LoadError{Path: name, Line: lineNo + 1, Msg: err.Error()}
	}
	if !headerSeen {
		return nil, &LoadError{Path: name, Msg: "missing " + LexiconHeader + " header"}
	}
	return items, nil
}

// ParseLexiconLine parses one entry:
//
//	lemma [P:Primary, Secondary; A:Attr, Attr; Pr:pronunciation; R:root]
//
// The bracket is optional. Without P, lemmas ending in -mek/-mak are
// verbs, capitalized lemmas proper nouns and everything else a noun.
// Attributes implied by the root shape are added with rules.
func ParseLexiconLine(line string, rules *RuleSet) (*DictionaryItem, error) {
	if rules == nil {
		rules = DefaultRules()
	}
	line = strings.TrimSpace(line)
	lemma, meta := line, ""
	if i := strings.IndexByte(line, '['); i >= 0 {
		if !strings.HasSuffix(line, "]") {
			return nil, fmt.Errorf("%w: unterminated metadata in %q", ErrInvalidInput, line)
		}
		lemma, meta = strings.TrimSpace(line[:i]), line[i+1:len(line)-1]
	}
	if lemma == "" || strings.ContainsFunc(lemma, isSpaceRune) {
		return nil, fmt.Errorf("%w: bad lemma in %q", ErrInvalidInput, line)
	}

	var (
		root, pron string
		posSet     bool
		primary    PrimaryPos
		secondary  SecondaryPos
		attrs      []RootAttribute
	)
	for _, field := range strings.Split(meta, ";") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		key, value, ok := strings.Cut(field, ":")
		if !ok {
			return nil, fmt.Errorf("%w: metadata field %q has no key", ErrInvalidInput, field)
		}
		value = strings.TrimSpace(value)
		switch strings.TrimSpace(key) {
		case "P":
			names := splitList(value)
			if len(names) == 0 || len(names) > 2 {
				return nil, fmt.Errorf("%w: P wants one or two names, got %q", ErrInvalidInput, value)
			}
			var err error
			if primary, err = ParsePrimaryPos(names[0]); err != nil {
				return nil, err
			}
			if len(names) == 2 {
				if secondary, err = ParseSecondaryPos(names[1]); err != nil {
					return nil, err
				}
			}
			posSet = true
		case "A":
			for _, n := range splitList(value) {
				a, err := ParseRootAttribute(n)
				if err != nil {
					return nil, err
				}
				attrs = append(attrs, a)
			}
		case "Pr":
			pron = value
		case "R":
			root = value
		default:
			return nil, fmt.Errorf("%w: unknown metadata key %q", ErrInvalidInput, key)
		}
	}
	if !posSet {
		primary, secondary = guessPos(lemma)
	}

	item, err := NewDictionaryItem(lemma, root, pron, primary, secondary, attrs...)
	if err != nil {
		return nil, err
	}
	if item.attrs.Has(Runtime) {
		return nil, fmt.Errorf("%w: Runtime attribute in lexicon entry %q", ErrInvalidInput, lemma)
	}
	return rules.InferAttributes(item), nil
}

// guessPos picks the part of speech of an entry without a P field.
func guessPos(lemma string) (PrimaryPos, SecondaryPos) {
	if trcase.IsCapitalized(lemma) {
		return Noun, ProperNoun
	}
	if len(lemma) > len("mek") && (strings.HasSuffix(lemma, "mek") || strings.HasSuffix(lemma, "mak")) {
		return Verb, NoSecondary
	}
	return Noun, NoSecondary
}

// FormatLexiconLine renders item in the format ParseLexiconLine reads.
// Fields equal to their defaults are omitted.
func FormatLexiconLine(item *DictionaryItem) string {
	var meta []string
	if p, s := guessPos(item.lemma); p != item.primary || s != item.secondary {
		if item.secondary == NoSecondary {
			meta = append(meta, "P:"+item.primary.String())
		} else {
			meta = append(meta, "P:"+item.primary.String()+", "+item.secondary.String())
		}
	}
	if attrs := item.attrs.Without(Runtime); attrs != 0 {
		meta = append(meta, "A:"+attrs.String())
	}
	if item.pronunciation != item.root {
		meta = append(meta, "Pr:"+item.pronunciation)
	}
	if item.root != defaultRoot(item.lemma, item.primary) {
		meta = append(meta, "R:"+item.root)
	}
	if len(meta) == 0 {
		return item.lemma
	}
	return item.lemma + " [" + strings.Join(meta, "; ") + "]"
}

// WriteLexicon writes a complete lexicon resource holding items.
func WriteLexicon(out io.Writer, items []*DictionaryItem) error {
	w := bufio.NewWriter(out)
	if _, err := w.WriteString(LexiconHeader + "\n"); err != nil {
		return err
	}
	for _, item := range items {
		if _, err := w.WriteString(FormatLexiconLine(item) + "\n"); err != nil {
			return err
		}
	}
	return w.Flush()
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func isSpaceRune(r rune) bool { return r == ' ' || r == '\t' }
