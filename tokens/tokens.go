// Package tokens turns raw text into the token sequences consumed by the chart parser.
package tokens

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Split breaks text on Unicode white space and returns the NFC-normalized
// fields. Terminals are compared byte-wise, so "café" typed with a combining
// accent matches a grammar that spells it precomposed.
func Split(text string) []string {
	fields := strings.Fields(text)
	for i, f := range fields {
		fields[i] = norm.NFC.String(f)
	}
	return fields
}

// Normalize NFC-normalizes each token in place and returns the slice.
func Normalize(toks []string) []string {
	for i, tok := range toks {
		toks[i] = norm.NFC.String(tok)
	}
	return toks
}

// Lines splits text into lines and tokenizes each one. Line numbers are
// zero-based; blank lines are omitted.
func Lines(text string) []Line {
	var out []Line
	for i, raw := range strings.Split(text, "\n") {
		raw = strings.TrimRight(raw, "\r")
		toks := Split(raw)
		if len(toks) == 0 {
			continue
		}
		out = append(out, Line{Number: i, Text: raw, Tokens: toks})
	}
	return out
}

// Line is one non-blank line of a document.
type Line struct {
	Number int
	Text   string
	Tokens []string
}
