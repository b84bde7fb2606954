// Package format renders parse results: the full chart trace, a one-line
// summary, derivation trees and JSON.
package format

import (
	"encoding"

	"github.com/dhamidi/chartparse/chart"
)

type Encoder interface {
	encoding.TextMarshaler
	Encode(sentence []string, result chart.Result) error
}
