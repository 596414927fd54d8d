// Package engine implements the matching cascade: C3 (group-key allocator),
// C4 (subset-sum kernels), C5-C10 (category rules K1-K6 and K5X), and the
// pipeline driver that threads unclaimed rows through them in order (§2).
package engine

import (
	"avstamning.dev/reconcile/internal/tabular"
)

// Category names, used both as the GroupKey prefix (§3) and as the stamped
// MatchCategory value.
const (
	CategoryK1  = "K1"
	CategoryK2  = "K2"
	CategoryK3  = "K3"
	CategoryK4  = "K4"
	CategoryK5  = "K5"
	CategoryK5X = "K5X"
	CategoryK6  = "K6"
)

// MatchGroup is the emergent entity described in §3: a non-empty subset of
// bank rows and/or ledger rows bound by a single GroupKey.
type MatchGroup struct {
	Category string
	GroupKey string
	BankIDs  []int
	BokfIDs  []int
}

// UsedSet tracks which row IDs on one side have already been claimed by an
// earlier category. Consumption is tracked this way, never by mutating or
// deleting the source row (§3 Lifecycle).
type UsedSet map[int]bool

func (u UsedSet) has(id int) bool { return u[id] }

func (u UsedSet) claim(ids ...int) {
	for _, id := range ids {
		u[id] = true
	}
}

// Result is the full output of a pipeline run: every group formed, plus the
// final used-sets so the combined writer (C11) can classify every row.
type Result struct {
	Bank  *tabular.BankTable
	Bokf  *tabular.BokfTable
	Groups []MatchGroup

	BankUsed UsedSet
	BokfUsed UsedSet
}
