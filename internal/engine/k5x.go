package engine

import (
	"time"

	"avstamning.dev/reconcile/internal/money"
	"avstamning.dev/reconcile/internal/tabular"
)

// RunK5X applies the interstitial global-balance rule (§4.8). After K1-K5
// have run, every date with remaining rows on either side is given one more
// chance: trim whichever side carries the imbalance until the two sides
// agree, via ledger-single, ledger-MITM, bank-single, bank-MITM in order.
func RunK5X(bank *tabular.BankTable, bokf *tabular.BokfTable, bankUsed, bokfUsed UsedSet, alloc *Allocator) []MatchGroup {
	remainingBank := filterBank(bank, bankUsed, func(*tabular.BankRow) bool { return true })
	remainingBokf := filterBokf(bokf, bokfUsed, func(*tabular.BokfRow) bool { return true })

	dates := unionDates(bankDates(remainingBank), bokfDates(remainingBokf))

	var groups []MatchGroup
	for _, day := range dates {
		b := bankRowsOnDate(remainingBank, day)
		f := bokfRowsOnDate(remainingBokf, day)
		if len(b) == 0 && len(f) == 0 {
			continue
		}

		bankSum := bankSumRounded(b)
		ledgerSum := bokfSumRounded(f)
		diff := ledgerSum - bankSum

		finalF, finalB, ok := attemptK5X(f, b, diff, bankSum, ledgerSum)
		if !ok {
			continue
		}

		bankIDs := bankIDsOf(finalB)
		bokfIDs := bokfIDsOf(finalF)
		if len(bankIDs) == 0 && len(bokfIDs) == 0 {
			continue
		}
		key := alloc.Next(CategoryK5X, minBankID(bankIDs))
		stampBank(bank, bankIDs, key, CategoryK5X)
		stampBokf(bokf, bokfIDs, key, CategoryK5X)
		bankUsed.claim(bankIDs...)
		bokfUsed.claim(bokfIDs...)
		groups = append(groups, MatchGroup{Category: CategoryK5X, GroupKey: key, BankIDs: bankIDs, BokfIDs: bokfIDs})
	}
	return groups
}

// attemptK5X runs the 4-step cascade of §4.8 and returns the final
// (possibly trimmed) ledger and bank row sets to stamp.
func attemptK5X(f []*tabular.BokfRow, b []*tabular.BankRow, diff, bankSum, ledgerSum float64) ([]*tabular.BokfRow, []*tabular.BankRow, bool) {
	// Step 1: ledger-single.
	if _, remainder, ok := dropOneBokf(f, diff); ok && money.Equal(bokfSumRounded(remainder), bankSum) {
		return remainder, b, true
	}

	// Step 2: ledger-MITM.
	if len(f) > 0 {
		cands := make([]Candidate, len(f))
		for i, r := range f {
			cands[i] = Candidate{ID: r.BokfRowID, Cents: money.ToCents(r.PeriodAmount)}
		}
		if dropIDs, ok := FindMeetInMiddle(cands, money.ToCents(diff)); ok {
			drop := idSet(dropIDs)
			var remainder []*tabular.BokfRow
			for _, r := range f {
				if !drop[r.BokfRowID] {
					remainder = append(remainder, r)
				}
			}
			if money.Equal(bokfSumRounded(remainder), bankSum) {
				return remainder, b, true
			}
		}
	}

	// Step 3: bank-single, target -diff.
	if _, remainder, ok := dropOneBank(b, -diff); ok && money.Equal(bankSumRounded(remainder), ledgerSum) {
		return f, remainder, true
	}

	// Step 4: bank-MITM, target -diff.
	if len(b) > 0 {
		cands := make([]Candidate, len(b))
		for i, r := range b {
			cands[i] = Candidate{ID: r.BankRowID, Cents: money.ToCents(r.Amount)}
		}
		if dropIDs, ok := FindMeetInMiddle(cands, money.ToCents(-diff)); ok {
			drop := idSet(dropIDs)
			var remainder []*tabular.BankRow
			for _, r := range b {
				if !drop[r.BankRowID] {
					remainder = append(remainder, r)
				}
			}
			if money.Equal(bankSumRounded(remainder), ledgerSum) {
				return f, remainder, true
			}
		}
	}

	return nil, nil, false
}

func idSet(ids []int) map[int]bool {
	m := make(map[int]bool, len(ids))
	for _, id := range ids {
		m[id] = true
	}
	return m
}

func bokfDates(rows []*tabular.BokfRow) []time.Time {
	seen := make(map[string]bool)
	var dates []time.Time
	for _, r := range rows {
		if !r.DateOK {
			continue
		}
		key := r.Date.Format("2006-01-02")
		if seen[key] {
			continue
		}
		seen[key] = true
		dates = append(dates, r.Date)
	}
	sortTimes(dates)
	return dates
}

func unionDates(a, b []time.Time) []time.Time {
	seen := make(map[string]bool, len(a)+len(b))
	var out []time.Time
	for _, list := range [][]time.Time{a, b} {
		for _, t := range list {
			key := t.Format("2006-01-02")
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, t)
		}
	}
	sortTimes(out)
	return out
}
