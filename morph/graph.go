package morph

import (
	"errors"
	"fmt"
	"strings"
)

// State is a node of the morphotactics graph. A word may end only in a
// terminal state.
type State struct {
	Name     string
	Pos      PrimaryPos
	Terminal bool

	out []*SuffixTransition
}

func (s *State) String() string { return s.Name }

// Condition gates a suffix transition on the attributes in effect for the
// stem being extended.
type Condition struct {
	RequireAttrs AttrSet // all must be present
	RejectAttrs  AttrSet // none may be present
}

func (c Condition) accepts(attrs AttrSet) bool {
	return attrs.Contains(c.RequireAttrs) && !attrs.Intersects(c.RejectAttrs)
}

// SuffixTransition is an edge of the morphotactics graph: one suffix with
// its surface template and tag.
type SuffixTransition struct {
	From       *State
	To         *State
	Template   string
	Tag        MorphTag
	Derivation bool // the target starts a new derived stem
	Cond       Condition
	SetAttrs   AttrSet // attributes of the derived stem

	tmpl template
}

func (t *SuffixTransition) String() string {
	return fmt.Sprintf("%s -> %s [%s:%s]", t.From.Name, t.To.Name, t.Template, t.Tag)
}

// Graph is an immutable, validated morphotactics graph.
type Graph struct {
	states map[string]*State
	starts map[PrimaryPos]*State
	order  []*State
}

// TransitionsFrom returns the outgoing transitions of s in declaration
// order. The slice must not be modified.
func (g *Graph) TransitionsFrom(s *State) []*SuffixTransition { return s.out }

// IsTerminal reports whether a word may end in s.
func (g *Graph) IsTerminal(s *State) bool { return s.Terminal }

// Start returns the root state for items of the given part of speech.
func (g *Graph) Start(pos PrimaryPos) (*State, bool) {
	s, ok := g.starts[pos]
	return s, ok
}

// State returns the state with the given name.
func (g *Graph) State(name string) (*State, bool) {
	s, ok := g.states[name]
	return s, ok
}

// States returns all states in declaration order.
func (g *Graph) States() []*State {
	out := make([]*State, len(g.order))
	copy(out, g.order)
	return out
}

// GraphBuilder assembles a Graph. Errors are collected and reported by
// Build, so calls can be chained without checks.
type GraphBuilder struct {
	states map[string]*State
	order  []*State
	starts map[PrimaryPos]string
	edges  []*TransitionBuilder
	errs   []error
}

// TransitionBuilder configures one transition added with
// GraphBuilder.Add.
type TransitionBuilder struct {
	from, to string
	t        SuffixTransition
}

// NewGraphBuilder returns an empty builder.
func NewGraphBuilder() *GraphBuilder {
	return &GraphBuilder{
		states: make(map[string]*State),
		starts: make(map[PrimaryPos]string),
	}
}

// State declares a state.
func (b *GraphBuilder) State(name string, pos PrimaryPos, terminal bool) *GraphBuilder {
	if name == "" {
		b.errs = append(b.errs, errors.New("empty state name"))
		return b
	}
	if _, ok := b.states[name]; ok {
		b.errs = append(b.errs, fmt.Errorf("duplicate state %q", name))
		return b
	}
	s := &State{Name: name, Pos: pos, Terminal: terminal}
	b.states[name] = s
	b.order = append(b.order, s)
	return b
}

// Start marks the named state as the root state for pos.
func (b *GraphBuilder) Start(pos PrimaryPos, name string) *GraphBuilder {
	if prev, ok := b.starts[pos]; ok {
		b.errs = append(b.errs, fmt.Errorf("duplicate start state for %s: %q and %q", pos, prev, name))
		return b
	}
	b.starts[pos] = name
	return b
}

// Add declares a transition between two named states.
func (b *GraphBuilder) Add(from, to, tmpl string, tag MorphTag) *TransitionBuilder {
	tb := &TransitionBuilder{from: from, to: to, t: SuffixTransition{Template: tmpl, Tag: tag}}
	b.edges = append(b.edges, tb)
	return tb
}

// Derivation marks the transition as starting a new derived stem.
func (tb *TransitionBuilder) Derivation() *TransitionBuilder {
	tb.t.Derivation = true
	return tb
}

// Require adds attributes that must be present.
func (tb *TransitionBuilder) Require(attrs ...RootAttribute) *TransitionBuilder {
	tb.t.Cond.RequireAttrs |= Attrs(attrs...)
	return tb
}

// Reject adds attributes that must be absent.
func (tb *TransitionBuilder) Reject(attrs ...RootAttribute) *TransitionBuilder {
	tb.t.Cond.RejectAttrs |= Attrs(attrs...)
	return tb
}

// Sets gives the attributes of the derived stem. It implies Derivation.
func (tb *TransitionBuilder) Sets(attrs ...RootAttribute) *TransitionBuilder {
	tb.t.Derivation = true
	tb.t.SetAttrs |= Attrs(attrs...)
	return tb
}

// Build validates the graph and returns it. Every failure matches
// ErrGraphConstruction.
func (b *GraphBuilder) Build() (*Graph, error) {
	errs := append([]error(nil), b.errs...)

	g := &Graph{
		states: make(map[string]*State, len(b.states)),
		starts: make(map[PrimaryPos]*State, len(b.starts)),
		order:  make([]*State, 0, len(b.order)),
	}
	for _, s := range b.order {
		c := &State{Name: s.Name, Pos: s.Pos, Terminal: s.Terminal}
		g.states[c.Name] = c
		g.order = append(g.order, c)
	}

	for pos, name := range b.starts {
		s, ok := g.states[name]
		if !ok {
			errs = append(errs, fmt.Errorf("start state %q for %s is not declared", name, pos))
			continue
		}
		g.starts[pos] = s
	}
	if len(g.starts) == 0 {
		errs = append(errs, errors.New("no start state"))
	}

	terminal := false
	for _, s := range g.order {
		terminal = terminal || s.Terminal
	}
	if !terminal {
		errs = append(errs, errors.New("no terminal state"))
	}

	for _, tb := range b.edges {
		from, ok := g.states[tb.from]
		if !ok {
			errs = append(errs, fmt.Errorf("transition %q -> %q: unknown source state", tb.from, tb.to))
			continue
		}
		to, ok := g.states[tb.to]
		if !ok {
			errs = append(errs, fmt.Errorf("transition %q -> %q: unknown target state", tb.from, tb.to))
			continue
		}
		tmpl, err := parseTemplate(tb.t.Template)
		if err != nil {
			errs = append(errs, fmt.Errorf("transition %q -> %q: %w", tb.from, tb.to, err))
			continue
		}
		t := tb.t
		t.From, t.To, t.tmpl = from, to, tmpl
		from.out = append(from.out, &t)
	}

	if len(errs) == 0 {
		if cycle := g.emptyCycle(); cycle != nil {
			errs = append(errs, fmt.Errorf("cycle of transitions that can consume no input: %s", strings.Join(cycle, " -> ")))
		}
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("%w: %w", ErrGraphConstruction, errors.Join(errs...))
	}
	return g, nil
}

// emptyCycle returns the state names of a cycle made only of transitions
// whose template can render empty, or nil if there is none.
func (g *Graph) emptyCycle() []string {
	const (
		unvisited = iota
		onStack
		done
	)
	color := make(map[*State]int, len(g.order))
	var stack []string

	var visit func(s *State) []string
	visit = func(s *State) []string {
		color[s] = onStack
		stack = append(stack, s.Name)
		for _, t := range s.out {
			if !t.tmpl.canBeEmpty() {
				continue
			}
			switch color[t.To] {
			case onStack:
				for i, name := range stack {
					if name == t.To.Name {
						return append(append([]string(nil), stack[i:]...), t.To.Name)
					}
				}
			case unvisited:
				if c := visit(t.To); c != nil {
					return c
				}
			}
		}
		stack = stack[:len(stack)-1]
		color[s] = done
		return nil
	}

	for _, s := range g.order {
		if color[s] == unvisited {
			if c := visit(s); c != nil {
				return c
			}
		}
	}
	return nil
}
