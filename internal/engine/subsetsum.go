package engine

import (
	"sort"

	"avstamning.dev/reconcile/internal/money"
)

// Candidate is one item offered to a subset-sum kernel: an ID to report back
// (a BankRowID or BokfRowID) and its exact value in integer cents (§4.1, C1).
type Candidate struct {
	ID    int
	Cents money.Cents
}

// maxCombinationTries bounds the small-combination search (§5): each call
// enumerates at most 2000 combinations; once exhausted, that call fails and
// the caller moves on to its next step or rule.
const maxCombinationTries = 2000

// FindCombination searches combinations of size 1, 2, then 3, in the order
// the candidates are given, for a subset summing exactly to target. It
// returns the chosen candidate IDs and true on the first hit. Enumeration is
// capped at maxCombinationTries total attempts across all sizes; exceeding
// the cap without a hit returns ok=false, not an error (§5).
func FindCombination(cands []Candidate, target money.Cents) (ids []int, ok bool) {
	n := len(cands)
	tries := 0
	for r := 1; r <= 3 && r <= n; r++ {
		idx := make([]int, r)
		for i := range idx {
			idx[i] = i
		}
		for {
			if tries >= maxCombinationTries {
				return nil, false
			}
			tries++

			var sum money.Cents
			for _, ix := range idx {
				sum += cands[ix].Cents
			}
			if sum == target {
				chosen := make([]int, r)
				for i, ix := range idx {
					chosen[i] = cands[ix].ID
				}
				return chosen, true
			}
			if !nextCombination(idx, n) {
				break
			}
		}
	}
	return nil, false
}

// nextCombination advances idx (a strictly increasing r-tuple of indices
// into an n-element universe) to the next combination in lexicographic
// order. Returns false when idx was already the last combination.
func nextCombination(idx []int, n int) bool {
	r := len(idx)
	i := r - 1
	for i >= 0 && idx[i] == n-r+i {
		i--
	}
	if i < 0 {
		return false
	}
	idx[i]++
	for j := i + 1; j < r; j++ {
		idx[j] = idx[j-1] + 1
	}
	return true
}

// sumEntry is one row of a meet-in-the-middle half-table: a subset sum and
// the candidate IDs that produced it.
type sumEntry struct {
	sum money.Cents
	ids []int
}

// subsetSums enumerates every subset of items (2^len(items) of them, via bit
// masks taken in increasing numeric order) and keeps only the first
// occurrence of each distinct sum, per §5's "first occurrence of each sum"
// construction rule. Mask 0 (the empty subset) is included.
func subsetSums(items []Candidate) []sumEntry {
	n := len(items)
	seen := make(map[money.Cents]bool)
	entries := make([]sumEntry, 0, 1<<uint(n))
	for mask := 0; mask < (1 << uint(n)); mask++ {
		var sum money.Cents
		var ids []int
		for i := 0; i < n; i++ {
			if mask&(1<<uint(i)) != 0 {
				sum += items[i].Cents
				ids = append(ids, items[i].ID)
			}
		}
		if seen[sum] {
			continue
		}
		seen[sum] = true
		entries = append(entries, sumEntry{sum: sum, ids: ids})
	}
	return entries
}

func absCents(c money.Cents) money.Cents {
	if c < 0 {
		return -c
	}
	return c
}

// FindMeetInMiddle is the §5 meet-in-the-middle kernel used when a day's
// candidate pool is too large for small-combination search. If the full
// candidate set already sums to target, the empty exclusion set is
// returned. Otherwise candidates are sorted by descending absolute value and
// capped at 50, and the pool is split into two halves — ⌊n/2⌋/⌈n/2⌉ for
// n<=26, or for n in 27..50 the top min(n, 34) split in half (17/17 once
// n>=34) — and a subset of one half plus a subset of the other is sought
// whose combined sum equals target.
func FindMeetInMiddle(cands []Candidate, target money.Cents) (ids []int, ok bool) {
	n := len(cands)
	if n == 0 {
		return nil, target == 0
	}

	var total money.Cents
	for _, c := range cands {
		total += c.Cents
	}
	if total == target {
		return nil, true
	}

	sorted := make([]Candidate, n)
	copy(sorted, cands)
	sort.SliceStable(sorted, func(i, j int) bool {
		return absCents(sorted[i].Cents) > absCents(sorted[j].Cents)
	})
	if len(sorted) > 50 {
		sorted = sorted[:50]
	}

	var left, right []Candidate
	if len(sorted) <= 26 {
		h := len(sorted) / 2
		left = sorted[:h]
		right = sorted[h:]
	} else {
		topSize := 34
		if topSize > len(sorted) {
			topSize = len(sorted)
		}
		top := sorted[:topSize]
		h := topSize / 2
		left = top[:h]
		right = top[h:]
	}

	leftEntries := subsetSums(left)
	rightEntries := subsetSums(right)
	rightIndex := make(map[money.Cents][]int, len(rightEntries))
	for _, e := range rightEntries {
		if _, exists := rightIndex[e.sum]; !exists {
			rightIndex[e.sum] = e.ids
		}
	}

	for _, le := range leftEntries {
		if rids, hit := rightIndex[target-le.sum]; hit {
			return union(le.ids, rids), true
		}
	}
	return nil, false
}

func union(a, b []int) []int {
	out := make([]int, 0, len(a)+len(b))
	out = append(out, a...)
	out = append(out, b...)
	return out
}
