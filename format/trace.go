package format

import (
	"io"
	"strings"

	"github.com/dhamidi/chartparse/chart"
)

// TraceEncoder writes every row of the chart, section by section, followed
// by the summary line.
//
//	34 | S -> NP VP . | [0, 4] | [4, 33]
type TraceEncoder struct {
	w      io.Writer
	trees  bool
	result chart.Result
}

type TraceOption func(*TraceEncoder)

// WithTrees appends the bracketed derivation tree of every derivation.
func WithTrees() TraceOption {
	return func(e *TraceEncoder) { e.trees = true }
}

func NewTraceEncoder(w io.Writer, opts ...TraceOption) *TraceEncoder {
	e := &TraceEncoder{w: w}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *TraceEncoder) Encode(sentence []string, result chart.Result) error {
	e.result = result
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *TraceEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder

	for _, sec := range e.result.Table {
		for _, rows := range sec.Collections() {
			for _, row := range rows {
				sb.WriteString(row.String())
				sb.WriteString("\n")
			}
			sb.WriteString("\n")
		}
		sb.WriteString("--------\n\n")
	}
	sb.WriteString(Summary(e.result))
	sb.WriteString("\n")

	if e.trees && e.result.Succeeded() {
		trees, err := e.result.Trees()
		if err != nil {
			return nil, err
		}
		sb.WriteString("\n")
		for i, tree := range trees {
			sb.WriteString(ids(e.result.Derivations[i : i+1]))
			sb.WriteString(" ")
			sb.WriteString(tree.String())
			sb.WriteString("\n")
		}
	}

	return []byte(sb.String()), nil
}
