package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/chartparse/chart"
)

// LineEncoder writes a one-line summary of a parse.
type LineEncoder struct {
	w      io.Writer
	result chart.Result
}

func NewLineEncoder(w io.Writer) *LineEncoder {
	return &LineEncoder{w: w}
}

func (e *LineEncoder) Encode(sentence []string, result chart.Result) error {
	e.result = result
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *LineEncoder) MarshalText() ([]byte, error) {
	return []byte(Summary(e.result) + "\n"), nil
}

// Summary returns "SUCCESS (n derivations): [ids]" or "FAILURE".
func Summary(result chart.Result) string {
	if !result.Succeeded() {
		return "FAILURE"
	}
	return fmt.Sprintf("SUCCESS (%d derivations): %s", len(result.Derivations), ids(result.Derivations))
}

func ids(list []int) string {
	parts := make([]string, len(list))
	for i, id := range list {
		parts[i] = fmt.Sprint(id)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
