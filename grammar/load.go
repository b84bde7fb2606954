package grammar

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/tliron/commonlog"
	"golang.org/x/exp/ebnf"
)

var log = commonlog.GetLogger("chartparse.grammar")

type loadConfig struct {
	start  string
	verify bool
}

// LoadOption configures Load.
type LoadOption func(*loadConfig)

// WithStart selects the start symbol. By default the first production in
// the source is the start symbol.
func WithStart(name string) LoadOption {
	return func(c *loadConfig) { c.start = name }
}

// WithVerify runs ebnf.Verify on the source before conversion, rejecting
// undefined and unreachable productions.
func WithVerify() LoadOption {
	return func(c *loadConfig) { c.verify = true }
}

// LoadFile loads a grammar from a file in EBNF notation.
func LoadFile(filename string, opts ...LoadOption) (*Grammar, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("open grammar: %w", err)
	}
	defer f.Close()

	return Load(filename, f, opts...)
}

// Load reads a grammar in EBNF notation:
//
//	S  = NP VP .
//	NP = N | N PP .
//	N  = "they" | "fish" .
//
// Names are nonterminals and quoted tokens are terminals. Alternatives become
// separate bodies; groups and options are multiplied out into flat bodies.
// Repetitions and ranges have no finite flat form and are rejected.
func Load(filename string, r io.Reader, opts ...LoadOption) (*Grammar, error) {
	var cfg loadConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	src, err := ebnf.Parse(filename, r)
	if err != nil {
		return nil, fmt.Errorf("parse grammar: %w", err)
	}
	if len(src) == 0 {
		return nil, fmt.Errorf("parse grammar: %s: no productions", filename)
	}

	prods := make([]*ebnf.Production, 0, len(src))
	for _, prod := range src {
		prods = append(prods, prod)
	}
	sort.Slice(prods, func(i, j int) bool {
		return prods[i].Name.Pos().Offset < prods[j].Name.Pos().Offset
	})

	start := cfg.start
	if start == "" {
		start = prods[0].Name.String
	}
	if _, ok := src[start]; !ok {
		return nil, fmt.Errorf("parse grammar: %s: start production %q not found", filename, start)
	}

	if cfg.verify {
		if err := ebnf.Verify(src, start); err != nil {
			return nil, fmt.Errorf("verify grammar: %w", err)
		}
	}

	c := newConverter()
	for _, prod := range prods {
		c.declare(Symbol(prod.Name.String))
	}
	productions := make(map[Symbol][]Body, len(prods))
	for _, prod := range prods {
		bodies, err := c.expand(prod.Expr)
		if err != nil {
			return nil, fmt.Errorf("convert production %s: %w", prod.Name.String, err)
		}
		productions[Symbol(prod.Name.String)] = bodies
	}

	log.Debugf("loaded %s: %d nonterminals, %d terminals, start %s",
		filename, len(c.nonterminals), len(c.terminals), start)

	return New(c.nonterminals, c.terminals, Symbol(start), productions), nil
}

// converter flattens EBNF expressions into bodies while recording symbols
// in order of first appearance.
type converter struct {
	nonterminals []Symbol
	terminals    []Symbol
	seen         map[Symbol]bool
}

func newConverter() *converter {
	return &converter{seen: make(map[Symbol]bool)}
}

func (c *converter) declare(s Symbol) {
	if c.seen[s] {
		return
	}
	c.seen[s] = true
	c.nonterminals = append(c.nonterminals, s)
}

func (c *converter) terminal(s Symbol) {
	if c.seen[s] {
		return
	}
	c.seen[s] = true
	c.terminals = append(c.terminals, s)
}

func (c *converter) expand(expr ebnf.Expression) ([]Body, error) {
	switch e := expr.(type) {
	case nil:
		return []Body{{}}, nil

	case *ebnf.Name:
		c.declare(Symbol(e.String))
		return []Body{{Symbol(e.String)}}, nil

	case *ebnf.Token:
		c.terminal(Symbol(e.String))
		return []Body{{Symbol(e.String)}}, nil

	case ebnf.Alternative:
		var out []Body
		for _, alt := range e {
			bodies, err := c.expand(alt)
			if err != nil {
				return nil, err
			}
			out = append(out, bodies...)
		}
		return out, nil

	case ebnf.Sequence:
		out := []Body{{}}
		for _, item := range e {
			bodies, err := c.expand(item)
			if err != nil {
				return nil, err
			}
			out = cross(out, bodies)
		}
		return out, nil

	case *ebnf.Group:
		return c.expand(e.Body)

	case *ebnf.Option:
		bodies, err := c.expand(e.Body)
		if err != nil {
			return nil, err
		}
		return append(bodies, Body{}), nil

	case *ebnf.Repetition:
		return nil, fmt.Errorf("%s: repetition has no flat expansion", e.Pos())

	case *ebnf.Range:
		return nil, fmt.Errorf("%s: range has no flat expansion", e.Pos())

	default:
		return nil, fmt.Errorf("%s: unsupported expression %T", expr.Pos(), expr)
	}
}

// cross returns every concatenation of a prefix from heads with a suffix from tails.
func cross(heads, tails []Body) []Body {
	out := make([]Body, 0, len(heads)*len(tails))
	for _, h := range heads {
		for _, t := range tails {
			body := make(Body, 0, len(h)+len(t))
			body = append(body, h...)
			body = append(body, t...)
			out = append(out, body)
		}
	}
	return out
}
