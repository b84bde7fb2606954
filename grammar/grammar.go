// Package grammar describes context-free grammars as consumed by the chart parser.
package grammar

import (
	"fmt"
	"strings"
)

// Symbol is a grammar symbol, either a nonterminal or a terminal.
type Symbol string

// Kind tells nonterminals and terminals apart.
type Kind int

const (
	Unknown Kind = iota
	Nonterminal
	Terminal
)

func (k Kind) String() string {
	switch k {
	case Nonterminal:
		return "nonterminal"
	case Terminal:
		return "terminal"
	default:
		return "unknown"
	}
}

// Body is one alternative right-hand side of a production.
type Body []Symbol

func (b Body) String() string {
	parts := make([]string, len(b))
	for i, s := range b {
		parts[i] = string(s)
	}
	return strings.Join(parts, " ")
}

// Equal reports whether b and other hold the same symbols in the same order.
func (b Body) Equal(other Body) bool {
	if len(b) != len(other) {
		return false
	}
	for i := range b {
		if b[i] != other[i] {
			return false
		}
	}
	return true
}

// Grammar is an immutable context-free grammar.
// Nothing is validated: a symbol without productions is simply never recognized.
type Grammar struct {
	nonterminals []Symbol
	terminals    []Symbol
	start        Symbol
	productions  map[Symbol][]Body
	kinds        map[Symbol]Kind
}

// New creates a grammar. The inputs are copied, so later changes by the
// caller do not affect the grammar.
func New(nonterminals, terminals []Symbol, start Symbol, productions map[Symbol][]Body) *Grammar {
	g := &Grammar{
		nonterminals: append([]Symbol(nil), nonterminals...),
		terminals:    append([]Symbol(nil), terminals...),
		start:        start,
		productions:  make(map[Symbol][]Body, len(productions)),
		kinds:        make(map[Symbol]Kind, len(nonterminals)+len(terminals)),
	}
	for lhs, bodies := range productions {
		copied := make([]Body, len(bodies))
		for i, body := range bodies {
			copied[i] = append(Body{}, body...)
		}
		g.productions[lhs] = copied
	}
	for _, t := range g.terminals {
		g.kinds[t] = Terminal
	}
	for _, n := range g.nonterminals {
		g.kinds[n] = Nonterminal
	}
	return g
}

func (g *Grammar) Nonterminals() []Symbol { return append([]Symbol(nil), g.nonterminals...) }
func (g *Grammar) Terminals() []Symbol    { return append([]Symbol(nil), g.terminals...) }
func (g *Grammar) Start() Symbol          { return g.start }

// Productions returns the alternative bodies of x in declaration order,
// or nil if x has no productions.
// The returned slice is shared with the grammar and must not be modified.
func (g *Grammar) Productions(x Symbol) []Body {
	return g.productions[x]
}

// KindOf classifies s. Symbols listed in neither set but having productions
// are reported as nonterminals.
func (g *Grammar) KindOf(s Symbol) Kind {
	if k, ok := g.kinds[s]; ok {
		return k
	}
	if _, ok := g.productions[s]; ok {
		return Nonterminal
	}
	return Unknown
}

// IsNonterminal reports whether s can be expanded by a production.
func (g *Grammar) IsNonterminal(s Symbol) bool {
	return g.KindOf(s) == Nonterminal
}

// HasBody reports whether x has an alternative equal to body.
func (g *Grammar) HasBody(x Symbol, body Body) bool {
	for _, b := range g.productions[x] {
		if b.Equal(body) {
			return true
		}
	}
	return false
}

// LexicalCategories returns the nonterminals having at least one body made
// of exactly one terminal, in declaration order.
func (g *Grammar) LexicalCategories() []Symbol {
	var out []Symbol
	for _, n := range g.nonterminals {
		for _, body := range g.productions[n] {
			if len(body) == 1 && g.KindOf(body[0]) == Terminal {
				out = append(out, n)
				break
			}
		}
	}
	return out
}

// String renders the grammar in the EBNF notation accepted by Load.
func (g *Grammar) String() string {
	var sb strings.Builder
	for _, n := range g.nonterminals {
		bodies := g.productions[n]
		alts := make([]string, len(bodies))
		for i, body := range bodies {
			parts := make([]string, len(body))
			for j, s := range body {
				if g.KindOf(s) == Terminal {
					parts[j] = fmt.Sprintf("%q", string(s))
				} else {
					parts[j] = string(s)
				}
			}
			alts[i] = strings.Join(parts, " ")
		}
		fmt.Fprintf(&sb, "%s = %s .\n", n, strings.Join(alts, " | "))
	}
	return sb.String()
}
