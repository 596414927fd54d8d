package engine

import (
	"time"

	"avstamning.dev/reconcile/internal/money"
	"avstamning.dev/reconcile/internal/tabular"
)

// filterBank returns unclaimed bank rows (in table order, i.e. ascending
// BankRowID per §5) satisfying pred.
func filterBank(t *tabular.BankTable, used UsedSet, pred func(*tabular.BankRow) bool) []*tabular.BankRow {
	var out []*tabular.BankRow
	for i := range t.Rows {
		r := &t.Rows[i]
		if used.has(r.BankRowID) {
			continue
		}
		if pred(r) {
			out = append(out, r)
		}
	}
	return out
}

// filterBokf returns unclaimed ledger rows (in table order, i.e. ascending
// BokfRowID) satisfying pred.
func filterBokf(t *tabular.BokfTable, used UsedSet, pred func(*tabular.BokfRow) bool) []*tabular.BokfRow {
	var out []*tabular.BokfRow
	for i := range t.Rows {
		r := &t.Rows[i]
		if used.has(r.BokfRowID) {
			continue
		}
		if pred(r) {
			out = append(out, r)
		}
	}
	return out
}

func bankDates(rows []*tabular.BankRow) []time.Time {
	seen := make(map[string]bool)
	var dates []time.Time
	for _, r := range rows {
		if !r.DateOK {
			continue
		}
		key := r.BookingDate.Format("2006-01-02")
		if seen[key] {
			continue
		}
		seen[key] = true
		dates = append(dates, r.BookingDate)
	}
	sortTimes(dates)
	return dates
}

func sortTimes(t []time.Time) {
	for i := 1; i < len(t); i++ {
		for j := i; j > 0 && t[j].Before(t[j-1]); j-- {
			t[j], t[j-1] = t[j-1], t[j]
		}
	}
}

func bankRowsOnDate(rows []*tabular.BankRow, day time.Time) []*tabular.BankRow {
	var out []*tabular.BankRow
	for _, r := range rows {
		if r.DateOK && sameCalendarDay(r.BookingDate, day) {
			out = append(out, r)
		}
	}
	return out
}

func bokfRowsOnDate(rows []*tabular.BokfRow, day time.Time) []*tabular.BokfRow {
	var out []*tabular.BokfRow
	for _, r := range rows {
		if r.DateOK && sameCalendarDay(r.Date, day) {
			out = append(out, r)
		}
	}
	return out
}

func sameCalendarDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func bankSumRounded(rows []*tabular.BankRow) float64 {
	amounts := make([]float64, len(rows))
	for i, r := range rows {
		amounts[i] = r.Amount
	}
	return money.SumRounded(amounts)
}

func bokfSumRounded(rows []*tabular.BokfRow) float64 {
	amounts := make([]float64, len(rows))
	for i, r := range rows {
		amounts[i] = r.PeriodAmount
	}
	return money.SumRounded(amounts)
}

func bankIDsOf(rows []*tabular.BankRow) []int {
	ids := make([]int, len(rows))
	for i, r := range rows {
		ids[i] = r.BankRowID
	}
	return ids
}

func bokfIDsOf(rows []*tabular.BokfRow) []int {
	ids := make([]int, len(rows))
	for i, r := range rows {
		ids[i] = r.BokfRowID
	}
	return ids
}

// singleEqualsBokf finds the lowest-BokfRowID row in pool whose rounded amount
// exactly equals target, per the §5 "lowest RowID on tie" rule.
func singleEqualsBokf(pool []*tabular.BokfRow, target float64) (*tabular.BokfRow, bool) {
	for _, r := range pool {
		if money.Equal(r.PeriodAmount, target) {
			return r, true
		}
	}
	return nil, false
}

func singleEqualsBank(pool []*tabular.BankRow, target float64) (*tabular.BankRow, bool) {
	for _, r := range pool {
		if money.Equal(r.Amount, target) {
			return r, true
		}
	}
	return nil, false
}

// dropOneBokf finds the lowest-RowID row in pool whose rounded amount equals
// diff, and returns the pool with that row removed.
func dropOneBokf(pool []*tabular.BokfRow, diff float64) (dropped *tabular.BokfRow, remainder []*tabular.BokfRow, ok bool) {
	for i, r := range pool {
		if money.Equal(r.PeriodAmount, diff) {
			rem := make([]*tabular.BokfRow, 0, len(pool)-1)
			rem = append(rem, pool[:i]...)
			rem = append(rem, pool[i+1:]...)
			return r, rem, true
		}
	}
	return nil, nil, false
}

func dropOneBank(pool []*tabular.BankRow, diff float64) (dropped *tabular.BankRow, remainder []*tabular.BankRow, ok bool) {
	for i, r := range pool {
		if money.Equal(r.Amount, diff) {
			rem := make([]*tabular.BankRow, 0, len(pool)-1)
			rem = append(rem, pool[:i]...)
			rem = append(rem, pool[i+1:]...)
			return r, rem, true
		}
	}
	return nil, nil, false
}

// dropComboBokf searches for a subset of pool summing (in cents) to diff;
// on success returns the pool with that subset removed.
func dropComboBokf(pool []*tabular.BokfRow, diff float64) (remainder []*tabular.BokfRow, ok bool) {
	cands := make([]Candidate, len(pool))
	for i, r := range pool {
		cands[i] = Candidate{ID: r.BokfRowID, Cents: money.ToCents(r.PeriodAmount)}
	}
	dropIDs, found := FindCombination(cands, money.ToCents(diff))
	if !found {
		return nil, false
	}
	drop := make(map[int]bool, len(dropIDs))
	for _, id := range dropIDs {
		drop[id] = true
	}
	rem := make([]*tabular.BokfRow, 0, len(pool))
	for _, r := range pool {
		if !drop[r.BokfRowID] {
			rem = append(rem, r)
		}
	}
	return rem, true
}
