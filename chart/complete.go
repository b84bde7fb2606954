package chart

import (
	"github.com/emirpasic/gods/lists/singlylinkedlist"

	"github.com/dhamidi/chartparse/grammar"
)

// complete propagates the scanned rows of cur until no new row can be built.
// Each completed row advances the dot of every row that ends where it starts
// and expects its left-hand side next. The worklist is first in, first out.
func (s *session) complete(cur *Section) {
	work := singlylinkedlist.New()
	for _, row := range cur.Scanned {
		work.Add(row)
	}

	for !work.Empty() {
		v, _ := work.Get(0)
		work.Remove(0)
		done := v.(Row)

		for _, waiting := range s.waitingFor(done) {
			candidate := Row{
				Production: waiting.Production.Advance(),
				Span:       Span{waiting.Span.Start, done.Span.End},
				History:    appendID(waiting.History, done.ID),
			}
			if s.known(cur, candidate) {
				continue
			}
			if candidate.Production.Complete() && s.cyclic(candidate.Production.LHS, candidate.Span, done) {
				s.log.Debugf("dropping cyclic row %s", candidate.Production)
				continue
			}

			row := s.newRow(candidate.Production, candidate.Span, candidate.History)
			cur.Completed = append(cur.Completed, row)
			if row.Production.Complete() {
				work.Add(row)
			}
		}
	}
}

// waitingFor returns the rows created so far whose dot can move past done.
// The result is a snapshot: rows completed while it is processed are only
// considered for later worklist entries.
func (s *session) waitingFor(done Row) []Row {
	var out []Row
	for _, row := range s.arena {
		if row.Span.End != done.Span.Start {
			continue
		}
		if next, ok := row.Production.Next(); ok && next == done.Production.LHS {
			out = append(out, row)
		}
	}
	return out
}

// known reports whether cur already holds a row equal to candidate,
// history included: rows that differ only in how they were derived are
// kept apart so that ambiguity survives.
func (s *session) known(cur *Section, candidate Row) bool {
	for _, row := range cur.Completed {
		if row.Same(candidate) {
			return true
		}
	}
	return false
}

// cyclic reports whether a complete row for lhs over span would rest on a
// chain of unit derivations leading back to lhs over the same span.
// Such chains can be extended forever.
func (s *session) cyclic(lhs grammar.Symbol, span Span, child Row) bool {
	for child.Span == span {
		if child.Production.LHS == lhs && child.Production.Complete() {
			return true
		}
		if len(child.History) != 1 {
			return false
		}
		child = s.arena[child.History[0]]
	}
	return false
}

func appendID(history []int, id int) []int {
	out := make([]int, 0, len(history)+1)
	out = append(out, history...)
	return append(out, id)
}
