package morph

import (
	"sync"

	"github.com/az-ai-labs/tr-morph/data"
)

// defaultLexiconName names the embedded lexicon in load errors.
const defaultLexiconName = "data/lexicon.txt"

// defaultItems parses the embedded lexicon with the default rules once.
// Items are immutable, so engines built with default rules share them.
var defaultItems = sync.OnceValues(func() ([]*DictionaryItem, error) {
	return ParseLexicon(data.Lexicon, defaultLexiconName, DefaultRules())
})

// DefaultItems returns the items of the embedded lexicon parsed with rules.
// A nil rules means DefaultRules.
func DefaultItems(rules *RuleSet) ([]*DictionaryItem, error) {
	if rules == nil || rules == DefaultRules() {
		items, err := defaultItems()
		if err != nil {
			return nil, err
		}
		out := make([]*DictionaryItem, len(items))
		copy(out, items)
		return out, nil
	}
	return ParseLexicon(data.Lexicon, defaultLexiconName, rules)
}
