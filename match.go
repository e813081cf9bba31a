package mido

const (
	// WindowSize is the maximum distance a match may reference.
	WindowSize = 32768
	// MaxMatchLength is the largest length a single match record can
	// encode (it must fit in one byte).
	MaxMatchLength = 255
	// MinMatchLength is the shortest run worth spending a match record
	// on; anything shorter is cheaper as a literal.
	MinMatchLength = 3
)

// Match is a single LZ77 back-reference: copy Length bytes from Distance
// bytes before the current position.
type Match struct {
	Distance int
	Length   int
}

// Parse is the result of running the greedy LZ77 matcher over an input:
// the literal bytes with no back-reference, the match records, and a
// flag sequence (false = next literal, true = next match) whose length
// equals len(Literals)+len(Matches).
type Parse struct {
	Literals []byte
	Matches  []Match
	IsMatch  []bool
}

// parseLZ77 runs the greedy, non-overlapping longest-match search
// described by the container format: at each position p, it searches
// every candidate start i in [max(0, p-WindowSize), p), keeping the
// match of largest length (ties broken toward the smallest distance,
// i.e. the largest i, since the search runs i ascending and replaces the
// best match whenever a candidate is at least as long). A match is only taken
// if its length is at least MinMatchLength; otherwise the byte at p is
// emitted as a literal.
func parseLZ77(data []byte) Parse {
	var p Parse
	n := len(data)
	p.Literals = make([]byte, 0, n)
	p.Matches = make([]Match, 0, n/MinMatchLength+1)
	p.IsMatch = make([]bool, 0, n)

	pos := 0
	for pos < n {
		dist, length := findLongestMatch(data, pos)
		if length >= MinMatchLength {
			p.Matches = append(p.Matches, Match{Distance: dist, Length: length})
			p.IsMatch = append(p.IsMatch, true)
			pos += length
		} else {
			p.Literals = append(p.Literals, data[pos])
			p.IsMatch = append(p.IsMatch, false)
			pos++
		}
	}
	return p
}

// findLongestMatch searches the window behind pos for the longest prior
// occurrence of data[pos:], returning (distance, length). The length is
// the best found, which can be below MinMatchLength (including 0); the
// caller decides whether it is long enough to use.
//
// The non-overlap constraint i+len <= pos forbids a candidate's match
// from reading bytes at or after pos: this rules out run-length-style
// references (distance=1, length=N) and keeps every byte the decoder
// copies already present in its output at the time of the copy.
func findLongestMatch(data []byte, pos int) (distance, length int) {
	limit := len(data)
	if pos+MaxMatchLength < limit {
		limit = pos + MaxMatchLength
	}
	start := pos - WindowSize
	if start < 0 {
		start = 0
	}

	bestLen := 0
	bestDist := 0
	for i := start; i < pos; i++ {
		l := 0
		for pos+l < limit && i+l < pos && data[i+l] == data[pos+l] {
			l++
		}
		if l >= bestLen {
			bestLen = l
			bestDist = pos - i
		}
	}
	return bestDist, bestLen
}
