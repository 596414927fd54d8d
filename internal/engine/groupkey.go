package engine

import "fmt"

// Allocator mints GroupKeys in the <CAT>-B<minBankRowID>-<seq> form (§3),
// keeping one monotonic sequence counter per category.
type Allocator struct {
	seq map[string]int
}

// NewAllocator returns an allocator with every counter at zero.
func NewAllocator() *Allocator {
	return &Allocator{seq: make(map[string]int)}
}

// Next mints the next GroupKey for category, given the minimum BankRowID
// among the bank rows in the group (0 when the group has no bank rows, e.g.
// a pure-ledger K6 netting group).
func (a *Allocator) Next(category string, minBankRowID int) string {
	a.seq[category]++
	return fmt.Sprintf("%s-B%d-%06d", category, minBankRowID, a.seq[category])
}

func minBankID(ids []int) int {
	if len(ids) == 0 {
		return 0
	}
	m := ids[0]
	for _, id := range ids[1:] {
		if id < m {
			m = id
		}
	}
	return m
}
