package engine

import (
	"strings"
	"time"

	"avstamning.dev/reconcile/internal/money"
	"avstamning.dev/reconcile/internal/tabular"
)

// RunK1 applies category rule K1 (§4.4): BG53782751-marked inbound bank
// rows, day-summed against the "Inbetalningar" ledger pool through a
// 6-step cascade.
func RunK1(bank *tabular.BankTable, bokf *tabular.BokfTable, bankUsed, bokfUsed UsedSet, alloc *Allocator) []MatchGroup {
	eligible := filterBank(bank, bankUsed, func(r *tabular.BankRow) bool {
		return strings.Contains(strings.ToUpper(r.Text), "BG53782751") && r.Amount > 0
	})

	var groups []MatchGroup
	for _, day := range bankDates(eligible) {
		dayBank := bankRowsOnDate(eligible, day)
		bankSum := bankSumRounded(dayBank)

		p1 := filterBokf(bokf, bokfUsed, func(r *tabular.BokfRow) bool {
			return r.DateOK && sameCalendarDay(r.Date, day) &&
				strings.EqualFold(strings.TrimSpace(r.Category), "inbetalningar") &&
				r.PeriodAmount > 0
		})
		if len(p1) == 0 {
			continue
		}

		chosen, ok := attemptK1(p1, bankSum, day)
		if !ok {
			continue
		}

		bankIDs := bankIDsOf(dayBank)
		bokfIDs := bokfIDsOf(chosen)
		key := alloc.Next(CategoryK1, minBankID(bankIDs))
		stampBank(bank, bankIDs, key, CategoryK1)
		stampBokf(bokf, bokfIDs, key, CategoryK1)
		bankUsed.claim(bankIDs...)
		bokfUsed.claim(bokfIDs...)
		groups = append(groups, MatchGroup{Category: CategoryK1, GroupKey: key, BankIDs: bankIDs, BokfIDs: bokfIDs})
	}
	return groups
}

// attemptK1 runs the six-step cascade of §4.4 against one day's pool and
// bank_sum. Returns the chosen ledger rows and true on the first step that
// accepts.
func attemptK1(p1 []*tabular.BokfRow, bankSum float64, day time.Time) ([]*tabular.BokfRow, bool) {
	// Step 1: P1 sums to bank_sum.
	if money.Equal(bokfSumRounded(p1), bankSum) {
		return p1, true
	}

	// Step 2: drop one row equal to diff.
	diff := bokfSumRounded(p1) - bankSum
	if _, remainder, ok := dropOneBokf(p1, diff); ok && money.Equal(bokfSumRounded(remainder), bankSum) {
		return remainder, true
	}

	isSEB := func(r *tabular.BokfRow) bool {
		return strings.HasPrefix(strings.ToUpper(strings.TrimSpace(r.VoucherNo)), "SEB")
	}
	var sebOnly, nonSEB []*tabular.BokfRow
	for _, r := range p1 {
		if isSEB(r) {
			sebOnly = append(sebOnly, r)
		} else {
			nonSEB = append(nonSEB, r)
		}
	}

	// Step 3: SEB-only subset, retry step 1.
	if len(sebOnly) > 0 && money.Equal(bokfSumRounded(sebOnly), bankSum) {
		return sebOnly, true
	}

	// Step 4: SEB-only subset, retry step 2.
	if len(sebOnly) > 0 {
		sebDiff := bokfSumRounded(sebOnly) - bankSum
		if _, remainder, ok := dropOneBokf(sebOnly, sebDiff); ok && money.Equal(bokfSumRounded(remainder), bankSum) {
			return remainder, true
		}
	}

	// Step 5: full P1 minus combinations of non-SEB rows.
	if len(nonSEB) > 0 {
		if remainder, ok := dropComboAgainst(p1, nonSEB, bankSum); ok {
			return remainder, true
		}
	}

	// Step 6: P1' = sebOnly ∪ (non-SEB rows whose VoucherNo contains yymmdd
	// and "Skabank"). Retry steps 1, 2, 5 on P1' (5 again over non-SEB of P1').
	ymd := yymmdd(day)
	var skabankNonSEB []*tabular.BokfRow
	for _, r := range nonSEB {
		vno := strings.ToLower(r.VoucherNo)
		if strings.Contains(vno, strings.ToLower(ymd)) && strings.Contains(vno, "skabank") {
			skabankNonSEB = append(skabankNonSEB, r)
		}
	}
	if len(skabankNonSEB) == 0 && len(sebOnly) == 0 {
		return nil, false
	}
	p1prime := append(append([]*tabular.BokfRow{}, sebOnly...), skabankNonSEB...)
	if len(p1prime) == 0 {
		return nil, false
	}

	if money.Equal(bokfSumRounded(p1prime), bankSum) {
		return p1prime, true
	}
	primeDiff := bokfSumRounded(p1prime) - bankSum
	if _, remainder, ok := dropOneBokf(p1prime, primeDiff); ok && money.Equal(bokfSumRounded(remainder), bankSum) {
		return remainder, true
	}
	if len(skabankNonSEB) > 0 {
		if remainder, ok := dropComboAgainst(p1prime, skabankNonSEB, bankSum); ok {
			return remainder, true
		}
	}

	return nil, false
}

// dropComboAgainst searches for a subset of droppable (which must be a
// subset of full) whose removal from full leaves a remainder summing to
// bankSum.
func dropComboAgainst(full, droppable []*tabular.BokfRow, bankSum float64) ([]*tabular.BokfRow, bool) {
	diff := bokfSumRounded(full) - bankSum
	cands := make([]Candidate, len(droppable))
	for i, r := range droppable {
		cands[i] = Candidate{ID: r.BokfRowID, Cents: money.ToCents(r.PeriodAmount)}
	}
	dropIDs, ok := FindCombination(cands, money.ToCents(diff))
	if !ok {
		return nil, false
	}
	drop := make(map[int]bool, len(dropIDs))
	for _, id := range dropIDs {
		drop[id] = true
	}
	var remainder []*tabular.BokfRow
	for _, r := range full {
		if !drop[r.BokfRowID] {
			remainder = append(remainder, r)
		}
	}
	if !money.Equal(bokfSumRounded(remainder), bankSum) {
		return nil, false
	}
	return remainder, true
}

func yymmdd(t time.Time) string {
	return t.Format("060102")
}
