// Package chart implements a chart parser for context-free grammars.
//
// Parse consumes one token at a time. For every token it predicts the
// productions expected at the current boundary, matches the token directly
// against privileged lexical categories, and then propagates completed rows
// until nothing new can be derived. Every row records the ids of the rows it
// was built from, so each full-span row can be expanded into a derivation
// tree afterwards, and ambiguous sentences yield one row per derivation.
package chart

import (
	"fmt"

	"github.com/emirpasic/gods/sets/hashset"
	"github.com/tliron/commonlog"

	"github.com/dhamidi/chartparse/grammar"
)

var log = commonlog.GetLogger("chartparse.chart")

// Result is the outcome of a parse.
type Result struct {
	// Derivations holds the ids of the completed rows spanning the whole
	// sentence. It is empty when the sentence is not recognized.
	Derivations []int
	Table       Table
}

// Succeeded reports whether at least one derivation was found.
func (r Result) Succeeded() bool {
	return len(r.Derivations) > 0
}

// Ambiguous reports whether more than one derivation was found.
func (r Result) Ambiguous() bool {
	return len(r.Derivations) > 1
}

// Option configures a parse.
type Option func(*session)

// WithLogger replaces the package logger for a single parse.
func WithLogger(l commonlog.Logger) Option {
	return func(s *session) { s.log = l }
}

// session holds all mutable state of one parse. Nothing is shared between
// calls to Parse.
type session struct {
	grammar    *grammar.Grammar
	privileged *hashset.Set
	table      Table
	arena      []Row // indexed by row id
	log        commonlog.Logger
}

// Parse builds the chart for sentence and returns the ids of all rows that
// cover it completely.
//
// Tokens are matched only through the privileged nonterminals, which must
// have single-terminal bodies; a lexical category left out of privileged is
// never matched directly.
//
// Parse panics if the start symbol has no productions.
func Parse(sentence []string, g *grammar.Grammar, privileged []grammar.Symbol, opts ...Option) Result {
	s := &session{
		grammar:    g,
		privileged: hashset.New(),
		log:        log,
	}
	for _, p := range privileged {
		s.privileged.Add(p)
	}
	for _, opt := range opts {
		opt(s)
	}

	s.seed()
	for pos, word := range sentence {
		s.step(pos, word)
	}

	derivations := s.derivations(len(sentence))
	s.log.Debugf("parsed %d tokens: %d rows, %d derivations", len(sentence), len(s.arena), len(derivations))

	return Result{Derivations: derivations, Table: s.table}
}

func (s *session) seed() {
	start := s.grammar.Start()
	bodies := s.grammar.Productions(start)
	if len(bodies) == 0 {
		panic(fmt.Sprintf("chart: start symbol %q has no productions", start))
	}
	row := s.newRow(DottedProduction{LHS: start, After: bodies[0]}, Span{0, 0}, nil)
	s.table = Table{{Completed: []Row{row}}}
}

// step extends the table by one section for the token at pos.
func (s *session) step(pos int, word string) {
	prev := s.table[len(s.table)-1]
	s.table = append(s.table, Section{})
	cur := &s.table[len(s.table)-1]

	cur.Predicted = s.predict(prev.Completed)
	cur.Scanned = s.scan(cur.Predicted, pos, word)
	s.complete(cur)

	s.log.Debugf("token %d %q: %d predicted, %d scanned, %d completed",
		pos, word, len(cur.Predicted), len(cur.Scanned), len(cur.Completed))
}

// newRow allocates the next id and records the row in the arena.
func (s *session) newRow(prod DottedProduction, span Span, history []int) Row {
	row := Row{
		ID:         len(s.arena),
		Production: prod,
		Span:       span,
		History:    history,
	}
	s.arena = append(s.arena, row)
	return row
}
