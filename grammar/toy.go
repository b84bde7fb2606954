package grammar

// Toy returns a small English grammar with lexical ambiguity
// ("can" and "fish" are both nouns and verbs).
func Toy() *Grammar {
	return New(
		[]Symbol{"S", "NP", "VP", "PP", "N", "V", "P"},
		[]Symbol{"can", "fish", "in", "rivers", "they", "december"},
		"S",
		map[Symbol][]Body{
			"S":  {{"NP", "VP"}},
			"NP": {{"N"}, {"N", "PP"}},
			"PP": {{"P", "NP"}},
			"VP": {{"V"}, {"V", "NP"}, {"V", "VP"}, {"VP", "PP"}},
			"N":  {{"can"}, {"fish"}, {"rivers"}, {"they"}, {"december"}},
			"P":  {{"in"}},
			"V":  {{"fish"}, {"can"}},
		},
	)
}

// ToyPrivileged returns the lexical categories of Toy that are matched
// directly against tokens.
func ToyPrivileged() []Symbol {
	return []Symbol{"N", "V", "P"}
}
