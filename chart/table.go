package chart

// Section holds the rows created while consuming one token. The three
// collections are disjoint and only ever appended to.
type Section struct {
	Predicted []Row
	Scanned   []Row
	Completed []Row
}

// Len returns the number of rows in the section.
func (s Section) Len() int {
	return len(s.Predicted) + len(s.Scanned) + len(s.Completed)
}

// Collections returns the three collections in creation order.
func (s Section) Collections() [3][]Row {
	return [3][]Row{s.Predicted, s.Scanned, s.Completed}
}

// Table is the chart: a seed section followed by one section per token.
type Table []Section

// Rows returns every row in creation order.
func (t Table) Rows() []Row {
	var n int
	for _, sec := range t {
		n += sec.Len()
	}
	out := make([]Row, 0, n)
	for _, sec := range t {
		for _, rows := range sec.Collections() {
			out = append(out, rows...)
		}
	}
	return out
}

// Row looks up a row by id.
func (t Table) Row(id int) (Row, bool) {
	if id < 0 {
		return Row{}, false
	}
	// Ids are dense and allocated in creation order, so the id is also the
	// row's offset in the flattened table.
	offset := id
	for _, sec := range t {
		for _, rows := range sec.Collections() {
			if offset < len(rows) {
				if rows[offset].ID == id {
					return rows[offset], true
				}
				return t.find(id)
			}
			offset -= len(rows)
		}
	}
	return t.find(id)
}

func (t Table) find(id int) (Row, bool) {
	for _, row := range t.Rows() {
		if row.ID == id {
			return row, true
		}
	}
	return Row{}, false
}
