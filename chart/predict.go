package chart

// predict hypothesizes every body of the nonterminal expected right after
// the dot of each row. Predicted rows are never deduplicated.
func (s *session) predict(rows []Row) []Row {
	var out []Row
	for _, row := range rows {
		next, ok := row.Production.Next()
		if !ok || !s.grammar.IsNonterminal(next) {
			continue
		}
		end := row.Span.End
		for _, body := range s.grammar.Productions(next) {
			out = append(out, s.newRow(
				DottedProduction{LHS: next, After: body},
				Span{end, end},
				nil,
			))
		}
	}
	return out
}
