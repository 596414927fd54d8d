package engine

import (
	"strings"

	"avstamning.dev/reconcile/internal/money"
	"avstamning.dev/reconcile/internal/tabular"
)

// RunK5 applies category rule K5 (§4.7): LB-marked outbound bank rows,
// day-summed first against all unused ledger rows that day, then against
// the negative-only subset.
func RunK5(bank *tabular.BankTable, bokf *tabular.BokfTable, bankUsed, bokfUsed UsedSet, alloc *Allocator) []MatchGroup {
	eligible := filterBank(bank, bankUsed, func(r *tabular.BankRow) bool {
		return strings.HasPrefix(strings.ToUpper(strings.TrimSpace(r.Text)), "LB")
	})

	var groups []MatchGroup
	for _, day := range bankDates(eligible) {
		dayBank := bankRowsOnDate(eligible, day)
		bankSum := bankSumRounded(dayBank)

		lAll := filterBokf(bokf, bokfUsed, func(r *tabular.BokfRow) bool {
			return r.DateOK && sameCalendarDay(r.Date, day)
		})
		if len(lAll) == 0 {
			continue
		}
		var lNeg []*tabular.BokfRow
		for _, r := range lAll {
			if r.PeriodAmount < 0 {
				lNeg = append(lNeg, r)
			}
		}

		chosen, ok := attemptK5(lAll, bankSum)
		if !ok {
			chosen, ok = attemptK5(lNeg, bankSum)
		}
		if !ok {
			continue
		}

		bankIDs := bankIDsOf(dayBank)
		bokfIDs := bokfIDsOf(chosen)
		key := alloc.Next(CategoryK5, minBankID(bankIDs))
		stampBank(bank, bankIDs, key, CategoryK5)
		stampBokf(bokf, bokfIDs, key, CategoryK5)
		bankUsed.claim(bankIDs...)
		bokfUsed.claim(bokfIDs...)
		groups = append(groups, MatchGroup{Category: CategoryK5, GroupKey: key, BankIDs: bankIDs, BokfIDs: bokfIDs})
	}
	return groups
}

// attemptK5 is the 3-step sweep of §4.7: full sum, single-row equal, then
// drop-one of diff. No combination step.
func attemptK5(pool []*tabular.BokfRow, bankSum float64) ([]*tabular.BokfRow, bool) {
	if len(pool) == 0 {
		return nil, false
	}
	if money.Equal(bokfSumRounded(pool), bankSum) {
		return pool, true
	}
	if row, ok := singleEqualsBokf(pool, bankSum); ok {
		return []*tabular.BokfRow{row}, true
	}
	diff := bokfSumRounded(pool) - bankSum
	if _, remainder, ok := dropOneBokf(pool, diff); ok && money.Equal(bokfSumRounded(remainder), bankSum) {
		return remainder, true
	}
	return nil, false
}
