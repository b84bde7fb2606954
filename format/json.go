package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/chartparse/chart"
	"github.com/dhamidi/chartparse/grammar"
)

type JSONEncoder struct {
	w        io.Writer
	sentence []string
	result   chart.Result
}

func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w}
}

func (e *JSONEncoder) Encode(sentence []string, result chart.Result) error {
	e.sentence = sentence
	e.result = result
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	if _, err := e.w.Write(text); err != nil {
		return err
	}
	_, err = io.WriteString(e.w, "\n")
	return err
}

func (e *JSONEncoder) MarshalText() ([]byte, error) {
	data, err := BuildJSON(e.sentence, e.result)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(data, "", "  ")
}

type JSONResult struct {
	Sentence    []string      `json:"sentence"`
	Success     bool          `json:"success"`
	Derivations []int         `json:"derivations"`
	Trees       []string      `json:"trees,omitempty"`
	Sections    []JSONSection `json:"sections"`
}

type JSONSection struct {
	Position  int       `json:"position"`
	Token     string    `json:"token,omitempty"`
	Predicted []JSONRow `json:"predicted"`
	Scanned   []JSONRow `json:"scanned"`
	Completed []JSONRow `json:"completed"`
}

type JSONRow struct {
	ID      int      `json:"id"`
	LHS     string   `json:"lhs"`
	Before  []string `json:"before"`
	After   []string `json:"after"`
	Start   int      `json:"start"`
	End     int      `json:"end"`
	History []int    `json:"history"`
}

// BuildJSON converts a parse result into its JSON document.
// Section i > 0 is labelled with the token that produced it.
func BuildJSON(sentence []string, result chart.Result) (JSONResult, error) {
	data := JSONResult{
		Sentence:    nonNil(sentence),
		Success:     result.Succeeded(),
		Derivations: result.Derivations,
		Sections:    make([]JSONSection, len(result.Table)),
	}
	if data.Derivations == nil {
		data.Derivations = []int{}
	}

	if result.Succeeded() {
		trees, err := result.Trees()
		if err != nil {
			return JSONResult{}, err
		}
		for _, tree := range trees {
			data.Trees = append(data.Trees, tree.String())
		}
	}

	for i, sec := range result.Table {
		js := JSONSection{
			Position:  i,
			Predicted: buildRows(sec.Predicted),
			Scanned:   buildRows(sec.Scanned),
			Completed: buildRows(sec.Completed),
		}
		if i > 0 && i <= len(sentence) {
			js.Token = sentence[i-1]
		}
		data.Sections[i] = js
	}
	return data, nil
}

func buildRows(rows []chart.Row) []JSONRow {
	out := make([]JSONRow, len(rows))
	for i, row := range rows {
		history := row.History
		if history == nil {
			history = []int{}
		}
		out[i] = JSONRow{
			ID:      row.ID,
			LHS:     string(row.Production.LHS),
			Before:  symbols(row.Production.Before),
			After:   symbols(row.Production.After),
			Start:   row.Span.Start,
			End:     row.Span.End,
			History: history,
		}
	}
	return out
}

func symbols(list grammar.Body) []string {
	out := make([]string, len(list))
	for i, s := range list {
		out[i] = string(s)
	}
	return out
}

func nonNil(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}
