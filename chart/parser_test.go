package chart

import (
	"reflect"
	"strings"
	"testing"

	"github.com/tliron/commonlog"

	"github.com/dhamidi/chartparse/grammar"
)

func parseToy(t *testing.T, sentence string) Result {
	t.Helper()
	return Parse(strings.Fields(sentence), grammar.Toy(), grammar.ToyPrivileged())
}

func treeStrings(t *testing.T, r Result) []string {
	t.Helper()
	trees, err := r.Trees()
	if err != nil {
		t.Fatalf("trees: %v", err)
	}
	out := make([]string, len(trees))
	for i, tree := range trees {
		out[i] = tree.String()
	}
	return out
}

func TestParseToy(t *testing.T) {
	tests := []struct {
		sentence    string
		derivations []int
		rows        int
		trees       []string
	}{
		{
			sentence:    "they fish in rivers",
			derivations: []int{34},
			rows:        36,
			trees: []string{
				"(S (NP (N they)) (VP (VP (V fish)) (PP (P in) (NP (N rivers)))))",
			},
		},
		{
			sentence:    "can fish",
			derivations: []int{16},
			rows:        18,
			trees:       []string{"(S (NP (N can)) (VP (V fish)))"},
		},
		{
			sentence: "rivers rivers",
			rows:     12,
		},
		{
			sentence:    "they can fish",
			derivations: []int{35, 37},
			rows:        39,
			trees: []string{
				"(S (NP (N they)) (VP (V can) (NP (N fish))))",
				"(S (NP (N they)) (VP (V can) (VP (V fish))))",
			},
		},
		{
			sentence:    "they fish in rivers in december",
			derivations: []int{49, 52},
			rows:        54,
			trees: []string{
				"(S (NP (N they)) (VP (VP (VP (V fish)) (PP (P in) (NP (N rivers)))) (PP (P in) (NP (N december)))))",
				"(S (NP (N they)) (VP (VP (V fish)) (PP (P in) (NP (N rivers) (PP (P in) (NP (N december)))))))",
			},
		},
		{
			sentence:    "they can fish in rivers",
			derivations: []int{64, 66, 68, 70},
			rows:        72,
		},
		{
			sentence:    "they",
			derivations: []int{4, 5, 6},
			rows:        7,
			trees:       []string{"(NP (N they))", "(NP (N they))", "(S (NP (N they)))"},
		},
		{
			sentence:    "fish in rivers",
			derivations: []int{20, 21},
			rows:        22,
			trees: []string{
				"(NP (N fish) (PP (P in) (NP (N rivers))))",
				"(S (NP (N fish) (PP (P in) (NP (N rivers)))))",
			},
		},
		{
			sentence: "boat",
			rows:     3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.sentence, func(t *testing.T) {
			r := parseToy(t, tt.sentence)
			n := len(strings.Fields(tt.sentence))

			if len(r.Table) != n+1 {
				t.Errorf("table has %d sections, want %d", len(r.Table), n+1)
			}
			if !reflect.DeepEqual(r.Derivations, tt.derivations) {
				t.Errorf("derivations = %v, want %v", r.Derivations, tt.derivations)
			}
			if r.Succeeded() != (len(tt.derivations) > 0) {
				t.Errorf("Succeeded() = %v", r.Succeeded())
			}
			if got := len(r.Table.Rows()); got != tt.rows {
				t.Errorf("table has %d rows, want %d", got, tt.rows)
			}
			if tt.trees != nil {
				if got := treeStrings(t, r); !reflect.DeepEqual(got, tt.trees) {
					t.Errorf("trees:\ngot  %q\nwant %q", got, tt.trees)
				}
			}
		})
	}
}

func TestParseSectionSizes(t *testing.T) {
	r := parseToy(t, "they fish in rivers")

	want := [][3]int{
		{0, 0, 1},
		{2, 1, 3},
		{5, 1, 5},
		{7, 1, 1},
		{2, 1, 6},
	}
	for i, sec := range r.Table {
		got := [3]int{len(sec.Predicted), len(sec.Scanned), len(sec.Completed)}
		if got != want[i] {
			t.Errorf("section %d: got %v, want %v", i, got, want[i])
		}
	}
}

func TestParsePartialDerivations(t *testing.T) {
	r := parseToy(t, "fish in rivers")

	want := []string{
		"20 | NP -> N PP . | [0, 3] | [3, 19]",
		"21 | S -> NP . VP | [0, 3] | [20]",
	}
	if len(r.Derivations) != len(want) {
		t.Fatalf("derivations = %v, want %d", r.Derivations, len(want))
	}
	for i, id := range r.Derivations {
		row, ok := r.Table.Row(id)
		if !ok {
			t.Fatalf("row %d not found", id)
		}
		if got := row.String(); got != want[i] {
			t.Errorf("derivation %d: got %q, want %q", i, got, want[i])
		}
	}
	if !r.Ambiguous() {
		t.Errorf("expected two derivations to count as ambiguous")
	}
}

func TestParseSeed(t *testing.T) {
	r := parseToy(t, "they fish")
	seed := r.Table[0]

	if len(seed.Predicted) != 0 || len(seed.Scanned) != 0 || len(seed.Completed) != 1 {
		t.Fatalf("unexpected seed section %+v", seed)
	}
	row := seed.Completed[0]
	if row.ID != 0 || row.Span != (Span{0, 0}) || len(row.History) != 0 {
		t.Errorf("unexpected seed row %v", row)
	}
	if got := row.Production.String(); got != "S -> . NP VP" {
		t.Errorf("seed production = %q", got)
	}
}

func TestParseEmptySentence(t *testing.T) {
	r := Parse(nil, grammar.Toy(), grammar.ToyPrivileged())
	if len(r.Table) != 1 {
		t.Errorf("table has %d sections, want 1", len(r.Table))
	}
	if r.Succeeded() {
		t.Errorf("expected failure, got %v", r.Derivations)
	}

	eps := grammar.New([]grammar.Symbol{"S"}, nil, "S", map[grammar.Symbol][]grammar.Body{
		"S": {{}},
	})
	r = Parse([]string{}, eps, nil)
	if !reflect.DeepEqual(r.Derivations, []int{0}) {
		t.Errorf("derivations = %v, want [0]", r.Derivations)
	}
}

func TestParseRowIDs(t *testing.T) {
	r := parseToy(t, "they can fish in rivers")
	for i, row := range r.Table.Rows() {
		if row.ID != i {
			t.Fatalf("row %d has id %d", i, row.ID)
		}
	}
}

func TestParseDeterministic(t *testing.T) {
	a := parseToy(t, "they can fish in rivers in december")
	b := parseToy(t, "they can fish in rivers in december")
	if !reflect.DeepEqual(a, b) {
		t.Errorf("repeated parses differ")
	}
}

func TestParseSoundness(t *testing.T) {
	sentence := strings.Fields("they can fish in rivers in december")
	r := Parse(sentence, grammar.Toy(), grammar.ToyPrivileged())

	for i, sec := range r.Table {
		for _, row := range sec.Completed {
			tree, err := Tree(r.Table, row.ID)
			if err != nil {
				t.Fatalf("tree %d: %v", row.ID, err)
			}
			got := strings.Join(tree.Leaves(), " ")
			want := strings.Join(sentence[row.Span.Start:row.Span.End], " ")
			if got != want {
				t.Errorf("section %d row %v: leaves %q, want %q", i, row, got, want)
			}
		}
	}
}

func TestParseAmbiguousHistories(t *testing.T) {
	r := parseToy(t, "they fish in rivers in december")
	if !r.Ambiguous() {
		t.Fatalf("expected ambiguity, got %v", r.Derivations)
	}
	first, _ := r.Table.Row(r.Derivations[0])
	second, _ := r.Table.Row(r.Derivations[1])
	if first.Production.Equal(second.Production) && reflect.DeepEqual(first.History, second.History) {
		t.Errorf("derivations share history %v", first.History)
	}
	if !first.Production.Equal(second.Production) || first.Span != second.Span {
		t.Errorf("derivations should differ only in history: %v / %v", first, second)
	}
}

func TestParsePrivilegedOnly(t *testing.T) {
	r := Parse([]string{"they", "fish"}, grammar.Toy(), []grammar.Symbol{"N", "P"})
	if r.Succeeded() {
		t.Errorf("verbs are not privileged, expected failure, got %v", r.Derivations)
	}

	r = Parse([]string{"they", "fish"}, grammar.Toy(), nil)
	if r.Succeeded() {
		t.Errorf("expected failure without privileged categories")
	}
	if len(r.Table) != 3 {
		t.Errorf("table has %d sections, want 3", len(r.Table))
	}
}

func TestParseScanOncePerCategory(t *testing.T) {
	r := parseToy(t, "they fish")
	// NP -> . N and NP -> . N PP both start with N at position 0.
	if got := len(r.Table[1].Scanned); got != 1 {
		t.Errorf("got %d scanned rows, want 1", got)
	}
}

func TestParseUnitCycle(t *testing.T) {
	g := grammar.New(
		[]grammar.Symbol{"S", "A", "X"},
		[]grammar.Symbol{"x"},
		"S",
		map[grammar.Symbol][]grammar.Body{
			"S": {{"A"}},
			"A": {{"A"}, {"X"}},
			"X": {{"x"}},
		},
	)

	r := Parse([]string{"x"}, g, []grammar.Symbol{"X"}, WithLogger(commonlog.GetLogger("chartparse.test")))
	// A -> A . over [0, 1] is dropped; A -> X . and S -> A . both span the input.
	if !reflect.DeepEqual(r.Derivations, []int{4, 5}) {
		t.Errorf("derivations = %v, want [4 5]", r.Derivations)
	}
	if got := len(r.Table.Rows()); got != 6 {
		t.Errorf("table has %d rows, want 6", got)
	}
}

func TestParseMissingStart(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("expected panic for start symbol without productions")
		}
	}()
	g := grammar.New([]grammar.Symbol{"S"}, nil, "S", nil)
	Parse([]string{"x"}, g, nil)
}

func TestParseUndefinedNonterminal(t *testing.T) {
	g := grammar.New(
		[]grammar.Symbol{"S", "A"},
		[]grammar.Symbol{"a"},
		"S",
		map[grammar.Symbol][]grammar.Body{"S": {{"A"}}},
	)
	r := Parse([]string{"a"}, g, []grammar.Symbol{"A"})
	if r.Succeeded() {
		t.Errorf("expected failure")
	}
}
