package chart

// derivations returns the ids of the rows of the last section's Completed
// collection that span all n tokens. Any left-hand side qualifies, not only
// the start symbol, and so does a row whose dot has not reached the end.
//
// For the empty sentence the seed row spans (0, 0) without having
// recognized anything, so there only complete rows count.
func (s *session) derivations(n int) []int {
	var ids []int
	last := s.table[len(s.table)-1]
	for _, row := range last.Completed {
		if row.Span != (Span{0, n}) {
			continue
		}
		if n == 0 && !row.Production.Complete() {
			continue
		}
		ids = append(ids, row.ID)
	}
	return ids
}
