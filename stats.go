package mido

// Stats summarizes a parse without exposing the literal bytes or match
// records themselves; it backs the CLI's "analyze" command.
type Stats struct {
	Literals int
	Matches  int
}

// ParseStats runs the greedy LZ77 parser over data and reports how many
// literals and matches it produced.
func ParseStats(data []byte) Stats {
	p := parseLZ77(data)
	return Stats{Literals: len(p.Literals), Matches: len(p.Matches)}
}
