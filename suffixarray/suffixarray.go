// Package suffixarray builds a suffix array and its companion LCP array
// for a byte slice. It is adapted from the reference implementation's
// unused SA/LCP module: the active LZ77 parser never consults it (it
// uses a naive windowed search instead, see findLongestMatch in package
// mido), but
// the structure it builds is useful on its own as a diagnostic: given
// the LCP array, the best possible match length at any position can be
// read off directly, which is what the "analyze" CLI command reports
// next to what the naive greedy parser actually found.
package suffixarray

import "sort"

// Build constructs the suffix array and LCP array of data.
//
// sa[i] is the starting index of the i-th lexicographically smallest
// suffix of data. lcp[i] is the length of the longest common prefix
// between the suffixes at sa[i-1] and sa[i] (lcp[0] is always 0).
func Build(data []byte) (sa []int, lcp []int) {
	n := len(data)
	sa = make([]int, n)
	rank := make([]int, n)
	for i := range sa {
		sa[i] = i
		rank[i] = int(data[i])
	}

	tmp := make([]int, n)
	for k := 1; k < n; k <<= 1 {
		key := func(i int) (int, int) {
			r2 := -1
			if i+k < n {
				r2 = rank[i+k]
			}
			return rank[i], r2
		}
		sort.Slice(sa, func(i, j int) bool {
			ai, aj := key(sa[i])
			bi, bj := key(sa[j])
			if ai != bi {
				return ai < bi
			}
			return aj < bj
		})

		tmp[sa[0]] = 0
		for i := 1; i < n; i++ {
			pi, pj := key(sa[i-1])
			ci, cj := key(sa[i])
			if pi == ci && pj == cj {
				tmp[sa[i]] = tmp[sa[i-1]]
			} else {
				tmp[sa[i]] = tmp[sa[i-1]] + 1
			}
		}
		copy(rank, tmp)
		if n > 0 && rank[sa[n-1]] == n-1 {
			break
		}
	}

	// kasai needs rank as the exact inverse of sa; when n < 2 the loop
	// above never runs and rank still holds raw byte values.
	for i, s := range sa {
		rank[s] = i
	}
	lcp = kasai(data, sa, rank)
	return sa, lcp
}

// kasai computes the LCP array in O(n) given the suffix array and its
// inverse (rank).
func kasai(data []byte, sa, rank []int) []int {
	n := len(data)
	lcp := make([]int, n)
	h := 0
	for i := 0; i < n; i++ {
		if rank[i] == 0 {
			h = 0
			continue
		}
		j := sa[rank[i]-1]
		for i+h < n && j+h < n && data[i+h] == data[j+h] {
			h++
		}
		lcp[rank[i]] = h
		if h > 0 {
			h--
		}
	}
	return lcp
}

// BestMatchLengths returns, for every position p in data with p>0, the
// length of the longest prior occurrence of data[p:] that starts before
// p and stays within window bytes of it — the best a matcher with an
// unbounded search could find, computed via the suffix array's LCP
// structure by walking outward from p's rank until a candidate with a
// valid start and distance is found.
func BestMatchLengths(data []byte, window int) []int {
	n := len(data)
	best := make([]int, n)
	if n == 0 {
		return best
	}

	sa, lcp := Build(data)
	rankOf := make([]int, n)
	for i, s := range sa {
		rankOf[s] = i
	}

	for p := 0; p < n; p++ {
		r := rankOf[p]
		bestLen := 0

		// Walk left and right from p's rank, tracking the running
		// minimum LCP (the LCP between two suffixes at ranks i<j is
		// min(lcp[i+1..j])), stopping the moment the running LCP hits
		// zero. Candidates that can't legally start a match against p
		// (not before p, or farther back than window) are skipped.
		runMin := 1 << 30
		for i := r - 1; i >= 0; i-- {
			if lcp[i+1] < runMin {
				runMin = lcp[i+1]
			}
			if runMin == 0 {
				break
			}
			cand := sa[i]
			if cand < p && p-cand <= window {
				if runMin > bestLen {
					bestLen = runMin
				}
			}
		}
		runMin = 1 << 30
		for i := r + 1; i < n; i++ {
			if lcp[i] < runMin {
				runMin = lcp[i]
			}
			if runMin == 0 {
				break
			}
			cand := sa[i]
			if cand < p && p-cand <= window {
				if runMin > bestLen {
					bestLen = runMin
				}
			}
		}
		best[p] = bestLen
	}
	return best
}
