// Package morph performs morphological analysis of Turkish words against a
// root lexicon that can grow at runtime.
//
// An Engine holds a lexicon of dictionary items, an index of the surface
// forms of their roots and a finite-state graph of Turkish suffix
// morphotactics. Analyze finds every stem that is a prefix of the token
// and walks the graph from it; every path that consumes the whole token
// in a terminal state is an analysis:
//
//	e, _ := morph.NewDefault()
//	wa, _ := e.Analyze("kitabına")
//	for _, a := range wa.Analyses {
//		fmt.Println(a.FormatLong())
//	}
//	// [kitap:Noun] kitab:Noun+A3sg+ın:P2sg+a:Dat
//	// [kitap:Noun] kitab:Noun+A3sg+ı:P3sg+na:Dat
//
// Tokens the lexicon does not cover get a fallback analysis when they look
// like a proper noun, an abbreviation or a number. The fallback item has
// the Runtime attribute and is never stored.
//
// AddDictionaryItem extends the lexicon. It clears the analysis cache in
// the same exclusive section, so no analysis computed before the addition
// is returned afterwards.
//
// All Engine methods are safe for concurrent use by multiple goroutines.
//
// Known limitations:
//
//   - Analyses are not ranked; they come in stem-length then graph order.
//   - The suffix graph covers core inflection and a few derivations, not
//     passive, causative or compound tenses.
//   - Input is limited to 256 bytes per token.
package morph

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"unicode/utf8"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/az-ai-labs/tr-morph/internal/trcase"
	"github.com/az-ai-labs/tr-morph/tokenizer"
)

const maxWordBytes = 256

// tracerName identifies spans created by this package.
const tracerName = "github.com/az-ai-labs/tr-morph/morph"

// Journal durably records runtime dictionary additions as lexicon lines.
// Entries are replayed in append order when an Engine is built.
type Journal interface {
	Append(entry string) error
	Replay(fn func(entry string) error) error
}

type options struct {
	rules         *RuleSet
	morphotactics *GraphBuilder
	cache         Cache
	logger        *slog.Logger
	journal       Journal
	tracer        trace.Tracer
}

// Option configures an Engine.
type Option func(*options)

// WithRules sets the orthographic rule table. Default: DefaultRules.
func WithRules(rs *RuleSet) Option {
	return func(o *options) { o.rules = rs }
}

// WithMorphotactics builds the suffix graph from b instead of the default
// Turkish graph.
func WithMorphotactics(b *GraphBuilder) Option {
	return func(o *options) { o.morphotactics = b }
}

// WithCache sets the analysis cache. Default: an unbounded MapCache.
func WithCache(c Cache) Option {
	return func(o *options) { o.cache = c }
}

// WithLogger sets the logger. Default: discard.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithJournal records every AddDictionaryItem in j and replays j when the
// engine is built.
func WithJournal(j Journal) Option {
	return func(o *options) { o.journal = j }
}

// WithTracer sets the tracer used by AnalyzeContext. Default: the global
// OpenTelemetry tracer provider.
func WithTracer(t trace.Tracer) Option {
	return func(o *options) { o.tracer = t }
}

func buildOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.rules == nil {
		o.rules = DefaultRules()
	}
	if o.cache == nil {
		o.cache = NewMapCache()
	}
	if o.logger == nil {
		o.logger = slog.New(slog.DiscardHandler)
	}
	if o.tracer == nil {
		o.tracer = otel.Tracer(tracerName)
	}
	return o
}

// Engine is a Turkish morphological analyzer.
type Engine struct {
	mu      sync.RWMutex
	lexicon *Lexicon
	index   *StemIndex
	graph   *Graph
	rules   *RuleSet
	cache   Cache
	journal Journal
	logger  *slog.Logger
	tracer  trace.Tracer
}

// New builds an engine over items. Duplicate items are skipped with a
// warning. Attributes implied by root shape are inferred. It fails with
// ErrGraphConstruction when the morphotactics graph is invalid.
func New(items []*DictionaryItem, opts ...Option) (*Engine, error) {
	return newEngine(items, buildOptions(opts))
}

// NewDefault builds an engine over the embedded default lexicon.
func NewDefault(opts ...Option) (*Engine, error) {
	o := buildOptions(opts)
	items, err := DefaultItems(o.rules)
	if err != nil {
		return nil, err
	}
	return newEngine(items, o)
}

// Load builds an engine over the lexicon file at path.
func Load(path string, opts ...Option) (*Engine, error) {
	o := buildOptions(opts)
	items, err := LoadLexicon(path, o.rules)
	if err != nil {
		return nil, err
	}
	o.logger.Info("lexicon loaded", slog.String("path", path), slog.Int("items", len(items)))
	return newEngine(items, o)
}

func newEngine(items []*DictionaryItem, o options) (*Engine, error) {
	g := DefaultGraph()
	if o.morphotactics != nil {
		var err error
		if g, err = o.morphotactics.Build(); err != nil {
			return nil, err
		}
	}

	e := &Engine{
		lexicon: NewLexicon(),
		graph:   g,
		rules:   o.rules,
		cache:   o.cache,
		journal: o.journal,
		logger:  o.logger,
		tracer:  o.tracer,
	}

	for _, item := range items {
		if item == nil {
			continue
		}
		if err := e.lexicon.Insert(e.rules.InferAttributes(item)); err != nil {
			e.logger.Warn("skipping dictionary item", slog.String("id", item.ID()), slog.String("error", err.Error()))
		}
	}

	if e.journal != nil {
		replayed := 0
		err := e.journal.Replay(func(entry string) error {
			item, err := ParseLexiconLine(entry, e.rules)
			if err != nil {
				return fmt.Errorf("journal entry %q: %w", entry, err)
			}
			if err := e.lexicon.Insert(item); err != nil {
				e.logger.Warn("skipping journaled item", slog.String("id", item.ID()), slog.String("error", err.Error()))
				return nil
			}
			replayed++
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("%w: replay journal: %w", ErrResourceLoad, err)
		}
		e.logger.Info("journal replayed", slog.Int("items", replayed))
	}

	e.index = NewStemIndex(g, e.rules)
	e.index.Rebuild(e.lexicon.Items())
	e.logger.Debug("engine ready", slog.Int("items", e.lexicon.Len()), slog.Int("stems", e.index.Len()))
	return e, nil
}

// Analyze returns every analysis of token. An empty result is not an
// error. It fails with ErrInvalidInput for empty, whitespace-only,
// non-UTF-8 or over-long tokens.
func (e *Engine) Analyze(token string) (WordAnalysis, error) {
	if err := validateToken(token); err != nil {
		return WordAnalysis{}, err
	}

	e.mu.RLock()
	defer e.mu.RUnlock()

	if wa, ok := e.cache.Get(token); ok {
		return wa, nil
	}
	wa := e.analyze(token)
	e.cache.Put(token, wa)
	return wa, nil
}

// AnalyzeContext is Analyze recorded as a span of the engine's tracer.
func (e *Engine) AnalyzeContext(ctx context.Context, token string) (WordAnalysis, error) {
	_, span := e.tracer.Start(ctx, "morph.Analyze",
		trace.WithAttributes(attribute.Int("token.bytes", len(token))))
	defer span.End()

	wa, err := e.Analyze(token)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return wa, err
	}
	span.SetAttributes(
		attribute.Int("analysis.count", wa.Len()),
		attribute.Bool("analysis.runtime", wa.Len() > 0 && wa.Analyses[0].IsRuntime()),
	)
	return wa, nil
}

// TokenAnalysis pairs a token of running text with its analyses.
type TokenAnalysis struct {
	Token    tokenizer.Token `json:"token"`
	Analysis WordAnalysis    `json:"analysis"`
}

// AnalyzeText tokenizes text and analyzes every word and number token.
// Tokens longer than the per-token limit get an empty analysis.
func (e *Engine) AnalyzeText(ctx context.Context, text string) ([]TokenAnalysis, error) {
	if !utf8.ValidString(text) {
		return nil, fmt.Errorf("%w: text is not valid UTF-8", ErrInvalidInput)
	}
	ctx, span := e.tracer.Start(ctx, "morph.AnalyzeText",
		trace.WithAttributes(attribute.Int("text.bytes", len(text))))
	defer span.End()

	var out []TokenAnalysis
	for _, tok := range tokenizer.Tokenize(text) {
		if !tok.IsAnalyzable() {
			continue
		}
		if len(tok.Text) > maxWordBytes {
			out = append(out, TokenAnalysis{Token: tok, Analysis: WordAnalysis{Input: tok.Text}})
			continue
		}
		wa, err := e.AnalyzeContext(ctx, tok.Text)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return nil, err
		}
		out = append(out, TokenAnalysis{Token: tok, Analysis: wa})
	}
	span.SetAttributes(attribute.Int("token.count", len(out)))
	return out, nil
}

// Lemmas returns the distinct lemmas of token's analyses in analysis
// order. Returns nil if token has no analysis.
func (e *Engine) Lemmas(token string) ([]string, error) {
	wa, err := e.Analyze(token)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, a := range wa.Analyses {
		if lemma := a.Item().Lemma(); !slices.Contains(out, lemma) {
			out = append(out, lemma)
		}
	}
	return out, nil
}

// Lemmatize maps each word to the lemma of its first analysis. Words that
// cannot be analyzed are returned unchanged.
// Designed to be used with tokenizer.Words().
// Returns nil if the input is nil.
func (e *Engine) Lemmatize(words []string) []string {
	if words == nil {
		return nil
	}
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = w
		if lemmas, err := e.Lemmas(w); err == nil && len(lemmas) > 0 {
			out[i] = lemmas[0]
		}
	}
	return out
}

// AddDictionaryItem adds item to the lexicon and indexes its stems. The
// cache is cleared before the item becomes visible. Missing attributes are
// inferred as for lexicon lines. It fails with ErrDuplicateItem if an
// item with the same ID exists and with ErrInvalidInput for runtime items.
func (e *Engine) AddDictionaryItem(item *DictionaryItem) error {
	if item == nil {
		return fmt.Errorf("%w: nil dictionary item", ErrInvalidInput)
	}
	if item.IsRuntime() {
		return fmt.Errorf("%w: runtime item %s cannot be stored", ErrInvalidInput, item.ID())
	}
	item = e.rules.InferAttributes(item)

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.lexicon.Contains(item) {
		return fmt.Errorf("%w: %s", ErrDuplicateItem, item.ID())
	}
	if e.journal != nil {
		if err := e.journal.Append(FormatLexiconLine(item)); err != nil {
			return fmt.Errorf("morph: journal append %s: %w", item.ID(), err)
		}
	}
	if err := e.lexicon.Insert(item); err != nil {
		return err
	}
	stems := e.index.AddDictionaryItem(item)
	e.cache.InvalidateAll()

	e.logger.Info("dictionary item added", slog.String("id", item.ID()), slog.Int("stems", len(stems)))
	return nil
}

// InvalidateCache drops every cached analysis.
func (e *Engine) InvalidateCache() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cache.InvalidateAll()
}

// Items returns the lexicon items in insertion order.
func (e *Engine) Items() []*DictionaryItem {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.lexicon.Items()
}

// Lookup returns the lexicon item with the given ID.
func (e *Engine) Lookup(id string) (*DictionaryItem, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.lexicon.Lookup(id)
}

// Graph returns the morphotactics graph.
func (e *Engine) Graph() *Graph { return e.graph }

// Stats summarizes engine contents.
type Stats struct {
	Items  int `json:"items"`
	Stems  int `json:"stems"`
	Cached int `json:"cached"`
}

func (e *Engine) Stats() Stats {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return Stats{Items: e.lexicon.Len(), Stems: e.index.Len(), Cached: e.cache.Len()}
}

func validateToken(token string) error {
	switch {
	case strings.TrimSpace(token) == "":
		return fmt.Errorf("%w: empty token", ErrInvalidInput)
	case len(token) > maxWordBytes:
		return fmt.Errorf("%w: token exceeds %d bytes", ErrInvalidInput, maxWordBytes)
	case !utf8.ValidString(token):
		return fmt.Errorf("%w: token is not valid UTF-8", ErrInvalidInput)
	}
	return nil
}

// analyze runs the lexicon walk and the fallback for one token. The
// caller holds the read lock.
func (e *Engine) analyze(token string) WordAnalysis {
	norm := trcase.NormalizeApostrophes(trcase.ComposeNFC(strings.TrimSpace(token)))
	lower := trcase.ToLower(norm)
	wa := WordAnalysis{Input: token, Normalized: lower}

	cut := strings.IndexByte(lower, '\'')
	if cut <= 0 {
		wa.Analyses = e.walk(lower, e.index.TransitionsForPrefix(lower))
		if len(wa.Analyses) == 0 {
			wa.Analyses = e.fallback(norm, lower, -1)
		}
		return wa
	}

	// Ankara'ya: the stem must end exactly at the apostrophe.
	base := lower[:cut] + strings.ReplaceAll(lower[cut+1:], "'", "")
	wa.Analyses = keepApostropheStems(e.walk(base, e.index.TransitionsForPrefix(base)), cut)
	if len(wa.Analyses) == 0 {
		word := norm[:strings.IndexByte(norm, '\'')]
		wa.Analyses = e.fallback(word, base, cut)
	}
	return wa
}

func (e *Engine) walk(input string, stems []*StemTransition) []SingleAnalysis {
	w := newWalker(input)
	for _, st := range stems {
		w.walkStem(st)
	}
	return w.results
}

// fallback analyzes input against a runtime item synthesized from word.
// cut >= 0 requires the stem to end at that byte offset.
func (e *Engine) fallback(word, input string, cut int) []SingleAnalysis {
	item, ok := newRuntimeItem(word)
	if !ok {
		return nil
	}
	results := e.walk(input, e.index.Generate(item))
	if cut >= 0 {
		results = keepApostropheStems(results, cut)
	}
	if len(results) > 0 {
		e.logger.Debug("unidentified token", slog.String("token", word), slog.String("item", item.String()))
	}
	return results
}

// keepApostropheStems keeps analyses whose stem ends at byte offset cut
// and whose item may carry an apostrophe: proper nouns, abbreviations and
// numerals.
func keepApostropheStems(as []SingleAnalysis, cut int) []SingleAnalysis {
	out := as[:0]
	for _, a := range as {
		if len(a.Stem.Surface) != cut {
			continue
		}
		item := a.Stem.Item
		if item.secondary == ProperNoun || item.secondary == Abbreviation || item.primary == Numeral {
			out = append(out, a)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
