package chart

import (
	"github.com/emirpasic/gods/sets/hashset"

	"github.com/dhamidi/chartparse/grammar"
)

// scan matches word against the privileged categories that predicted rows
// start with. Each category is tried at most once per position: the first
// predicted row naming it decides, later ones are skipped.
func (s *session) scan(predicted []Row, pos int, word string) []Row {
	var out []Row
	expanded := hashset.New()
	lexeme := grammar.Body{grammar.Symbol(word)}

	for _, row := range predicted {
		category, ok := row.Production.Next()
		if !ok || !s.privileged.Contains(category) || expanded.Contains(category) {
			continue
		}
		if !s.grammar.HasBody(category, lexeme) {
			continue
		}
		expanded.Add(category)
		out = append(out, s.newRow(
			DottedProduction{LHS: category, Before: lexeme},
			Span{pos, pos + 1},
			nil,
		))
	}
	return out
}
