package engine

import (
	"fmt"

	"avstamning.dev/reconcile/internal/money"
	"avstamning.dev/reconcile/internal/tabular"
)

// Run executes the fixed cascade K1->K2->K3->K4->K5->K5X->K6 (§2), passing
// the remaining unclaimed rows forward at every step. It owns the per-side
// used-sets and the group-key allocator for the whole run.
func Run(bank *tabular.BankTable, bokf *tabular.BokfTable) *Result {
	bankUsed := make(UsedSet)
	bokfUsed := make(UsedSet)
	alloc := NewAllocator()

	var groups []MatchGroup
	groups = append(groups, RunK1(bank, bokf, bankUsed, bokfUsed, alloc)...)
	groups = append(groups, RunK2(bank, bokf, bankUsed, bokfUsed, alloc)...)
	groups = append(groups, RunK3(bank, bokf, bankUsed, bokfUsed, alloc)...)
	groups = append(groups, RunK4(bank, bokf, bankUsed, bokfUsed, alloc)...)
	groups = append(groups, RunK5(bank, bokf, bankUsed, bokfUsed, alloc)...)
	groups = append(groups, RunK5X(bank, bokf, bankUsed, bokfUsed, alloc)...)
	groups = append(groups, RunK6(bank, bokf, bankUsed, bokfUsed, alloc)...)

	return &Result{
		Bank:     bank,
		Bokf:     bokf,
		Groups:   groups,
		BankUsed: bankUsed,
		BokfUsed: bokfUsed,
	}
}

// Summary is the supplemented reconciliation report (SPEC_FULL §12),
// grounded on the teacher's FormatReconciliationSummary: per-category match
// counts, unmatched counts, and the unmatched amount total of each side.
type Summary struct {
	CategoryCounts     map[string]int
	UnmatchedBank      int
	UnmatchedBokf      int
	TotalBankRows      int
	TotalBokfRows      int
	UnmatchedBankTotal money.Cents
	UnmatchedBokfTotal money.Cents
}

// Summary tallies the result for a human-readable run report.
func (r *Result) Summary() Summary {
	s := Summary{CategoryCounts: make(map[string]int)}
	for _, g := range r.Groups {
		s.CategoryCounts[g.Category]++
	}
	s.TotalBankRows = len(r.Bank.Rows)
	s.TotalBokfRows = len(r.Bokf.Rows)

	var unmatchedBank, unmatchedBokf []money.Cents
	for _, row := range r.Bank.Rows {
		if !r.BankUsed.has(row.BankRowID) {
			s.UnmatchedBank++
			unmatchedBank = append(unmatchedBank, money.ToCents(row.Amount))
		}
	}
	for _, row := range r.Bokf.Rows {
		if !r.BokfUsed.has(row.BokfRowID) {
			s.UnmatchedBokf++
			unmatchedBokf = append(unmatchedBokf, money.ToCents(row.PeriodAmount))
		}
	}
	s.UnmatchedBankTotal = money.SumCents(unmatchedBank)
	s.UnmatchedBokfTotal = money.SumCents(unmatchedBokf)
	return s
}

// String renders the summary the way the teacher's FormatReconciliationSummary
// formats its run report, using money.Format for the residual totals.
func (s Summary) String() string {
	return fmt.Sprintf(
		"%d bank rows, %d ledger rows; unmatched bank: %d (%s), unmatched ledger: %d (%s)",
		s.TotalBankRows, s.TotalBokfRows,
		s.UnmatchedBank, money.Format(s.UnmatchedBankTotal.Float(), ""),
		s.UnmatchedBokf, money.Format(s.UnmatchedBokfTotal.Float(), ""),
	)
}
