package chart

import (
	"fmt"
	"strings"

	"github.com/dhamidi/chartparse/grammar"
)

// DottedProduction is a production body split by the dot into a matched
// prefix and a pending suffix.
type DottedProduction struct {
	LHS    grammar.Symbol
	Before grammar.Body
	After  grammar.Body
}

// Complete reports whether the dot is at the end of the body.
func (d DottedProduction) Complete() bool {
	return len(d.After) == 0
}

// Next returns the symbol right after the dot.
func (d DottedProduction) Next() (grammar.Symbol, bool) {
	if len(d.After) == 0 {
		return "", false
	}
	return d.After[0], true
}

// Advance moves the dot one symbol to the right. It must not be called on a
// complete production.
func (d DottedProduction) Advance() DottedProduction {
	before := make(grammar.Body, 0, len(d.Before)+1)
	before = append(before, d.Before...)
	before = append(before, d.After[0])
	return DottedProduction{
		LHS:    d.LHS,
		Before: before,
		After:  d.After[1:],
	}
}

func (d DottedProduction) Equal(other DottedProduction) bool {
	return d.LHS == other.LHS && d.Before.Equal(other.Before) && d.After.Equal(other.After)
}

func (d DottedProduction) String() string {
	parts := []string{string(d.LHS), "->"}
	for _, s := range d.Before {
		parts = append(parts, string(s))
	}
	parts = append(parts, ".")
	for _, s := range d.After {
		parts = append(parts, string(s))
	}
	return strings.Join(parts, " ")
}

// Span is the half-open range of token offsets covered by a row.
type Span struct {
	Start int
	End   int
}

func (s Span) String() string {
	return fmt.Sprintf("[%d, %d]", s.Start, s.End)
}

// Row is one entry of the chart. Rows are never modified once created.
// History holds the ids of the completed rows that advanced the dot, in
// order; it is empty for seeded, predicted and scanned rows.
type Row struct {
	ID         int
	Production DottedProduction
	Span       Span
	History    []int
}

// Same reports whether r and other describe the same recognition: equal
// production, span and history. Ids are ignored.
func (r Row) Same(other Row) bool {
	if r.Span != other.Span || !r.Production.Equal(other.Production) {
		return false
	}
	if len(r.History) != len(other.History) {
		return false
	}
	for i := range r.History {
		if r.History[i] != other.History[i] {
			return false
		}
	}
	return true
}

// Scanned reports whether r is a direct lexical match of one token.
func (r Row) Scanned() bool {
	return len(r.History) == 0 && len(r.Production.Before) == 1 && r.Production.Complete()
}

func (r Row) String() string {
	hist := make([]string, len(r.History))
	for i, id := range r.History {
		hist[i] = fmt.Sprint(id)
	}
	return fmt.Sprintf("%d | %s | %s | [%s]", r.ID, r.Production, r.Span, strings.Join(hist, ", "))
}
