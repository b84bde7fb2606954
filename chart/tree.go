package chart

import (
	"fmt"
	"strings"
)

// Node is a node of a derivation tree. Leaves carry the matched token and
// no row.
type Node struct {
	Label    string
	Span     Span
	RowID    int
	Token    string
	Children []*Node
}

// IsLeaf reports whether n stands for a token.
func (n *Node) IsLeaf() bool {
	return len(n.Children) == 0 && n.Token != ""
}

// Leaves returns the tokens below n from left to right.
func (n *Node) Leaves() []string {
	if n.IsLeaf() {
		return []string{n.Token}
	}
	var out []string
	for _, child := range n.Children {
		out = append(out, child.Leaves()...)
	}
	return out
}

// String renders n in bracketed form, e.g. (S (NP (N they)) (VP (V fish))).
func (n *Node) String() string {
	var sb strings.Builder
	n.write(&sb)
	return sb.String()
}

func (n *Node) write(sb *strings.Builder) {
	if n.IsLeaf() {
		sb.WriteString(n.Token)
		return
	}
	sb.WriteString("(")
	sb.WriteString(n.Label)
	for _, child := range n.Children {
		sb.WriteString(" ")
		child.write(sb)
	}
	sb.WriteString(")")
}

// Tree rebuilds the derivation tree of the row with the given id by
// following its history. Scanned rows become a node with a single leaf.
func Tree(t Table, id int) (*Node, error) {
	row, ok := t.Row(id)
	if !ok {
		return nil, fmt.Errorf("row %d not found", id)
	}

	node := &Node{
		Label: string(row.Production.LHS),
		Span:  row.Span,
		RowID: row.ID,
	}

	if row.Scanned() {
		node.Children = []*Node{{
			Token: string(row.Production.Before[0]),
			Span:  row.Span,
			RowID: -1,
		}}
		return node, nil
	}

	for _, childID := range row.History {
		if childID >= id {
			return nil, fmt.Errorf("row %d: history entry %d does not precede it", id, childID)
		}
		child, err := Tree(t, childID)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", id, err)
		}
		node.Children = append(node.Children, child)
	}
	return node, nil
}

// Trees returns the derivation tree of every derivation in r.
func (r Result) Trees() ([]*Node, error) {
	trees := make([]*Node, 0, len(r.Derivations))
	for _, id := range r.Derivations {
		tree, err := Tree(r.Table, id)
		if err != nil {
			return nil, err
		}
		trees = append(trees, tree)
	}
	return trees, nil
}
