package engine

import (
	"sort"
	"time"

	"avstamning.dev/reconcile/internal/money"
	"avstamning.dev/reconcile/internal/tabular"
)

const k6MaxComboSize = 10

// dayResidual is one date's remaining bank+ledger rows after K1-K5X, and
// its net total (ledger minus bank, sign already flipped per §4.9).
type dayResidual struct {
	date  time.Time
	bank  []*tabular.BankRow
	bokf  []*tabular.BokfRow
	total money.Cents
}

// RunK6 applies category rule K6 (§4.9): days that already balance to zero
// become single-day groups; the rest are netted cross-day by searching for
// plus/minus day combinations whose totals cancel.
func RunK6(bank *tabular.BankTable, bokf *tabular.BokfTable, bankUsed, bokfUsed UsedSet, alloc *Allocator) []MatchGroup {
	remainingBank := filterBank(bank, bankUsed, func(*tabular.BankRow) bool { return true })
	remainingBokf := filterBokf(bokf, bokfUsed, func(*tabular.BokfRow) bool { return true })
	dates := unionDates(bankDates(remainingBank), bokfDates(remainingBokf))

	var days []dayResidual
	for _, d := range dates {
		b := bankRowsOnDate(remainingBank, d)
		f := bokfRowsOnDate(remainingBokf, d)
		if len(b) == 0 && len(f) == 0 {
			continue
		}
		total := money.ToCents(bokfSumRounded(f)) - money.ToCents(bankSumRounded(b))
		days = append(days, dayResidual{date: d, bank: b, bokf: f, total: total})
	}

	var groups []MatchGroup

	// Zero-residual days (including empty-both, already filtered above)
	// commit immediately as single-day groups.
	var nonZero []dayResidual
	for _, d := range days {
		if d.total == 0 {
			groups = append(groups, commitK6(bank, bokf, bankUsed, bokfUsed, alloc, []dayResidual{d}))
			continue
		}
		nonZero = append(nonZero, d)
	}

	var plusDays, minusDays []dayResidual
	for _, d := range nonZero {
		if d.total > 0 {
			plusDays = append(plusDays, d)
		} else {
			minusDays = append(minusDays, d)
		}
	}

	usedPlus := make(map[int]bool)
	usedMinus := make(map[int]bool)

	for pi, plus := range plusDays {
		if usedPlus[pi] {
			continue
		}
		avail := availableDays(minusDays, usedMinus)
		if combo, ok := comboMatchingAbs(avail, plus.total); ok {
			usedPlus[pi] = true
			members := []dayResidual{plus}
			for _, m := range combo {
				usedMinus[m.index] = true
				members = append(members, m.day)
			}
			groups = append(groups, commitK6(bank, bokf, bankUsed, bokfUsed, alloc, members))
		}
	}

	for mi, minus := range minusDays {
		if usedMinus[mi] {
			continue
		}
		avail := availableDays(plusDays, usedPlus)
		if combo, ok := comboMatchingAbs(avail, minus.total); ok {
			usedMinus[mi] = true
			members := []dayResidual{minus}
			for _, m := range combo {
				usedPlus[m.index] = true
				members = append(members, m.day)
			}
			groups = append(groups, commitK6(bank, bokf, bankUsed, bokfUsed, alloc, members))
		}
	}

	return groups
}

type indexedDay struct {
	index int
	day   dayResidual
}

func availableDays(days []dayResidual, used map[int]bool) []indexedDay {
	var out []indexedDay
	for i, d := range days {
		if !used[i] {
			out = append(out, indexedDay{index: i, day: d})
		}
	}
	return out
}

// comboMatchingAbs searches combinations of size 1..k6MaxComboSize, ordered
// by descending magnitude, for a subset whose |total| sums to target (§4.9,
// §4.3 small-combination search).
func comboMatchingAbs(days []indexedDay, target money.Cents) ([]indexedDay, bool) {
	sorted := make([]indexedDay, len(days))
	copy(sorted, days)
	sort.SliceStable(sorted, func(i, j int) bool {
		return absCents(sorted[i].day.total) > absCents(sorted[j].day.total)
	})

	n := len(sorted)
	tries := 0
	maxSize := k6MaxComboSize
	if n < maxSize {
		maxSize = n
	}
	absTarget := absCents(target)
	for r := 1; r <= maxSize; r++ {
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
				sum += absCents(sorted[ix].day.total)
			}
			if sum == absTarget {
				chosen := make([]indexedDay, r)
				for i, ix := range idx {
					chosen[i] = sorted[ix]
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

func commitK6(bank *tabular.BankTable, bokf *tabular.BokfTable, bankUsed, bokfUsed UsedSet, alloc *Allocator, days []dayResidual) MatchGroup {
	var bankIDs, bokfIDs []int
	for _, d := range days {
		bankIDs = append(bankIDs, bankIDsOf(d.bank)...)
		bokfIDs = append(bokfIDs, bokfIDsOf(d.bokf)...)
	}
	key := alloc.Next(CategoryK6, minBankID(bankIDs))
	stampBank(bank, bankIDs, key, CategoryK6)
	stampBokf(bokf, bokfIDs, key, CategoryK6)
	bankUsed.claim(bankIDs...)
	bokfUsed.claim(bokfIDs...)
	return MatchGroup{Category: CategoryK6, GroupKey: key, BankIDs: bankIDs, BokfIDs: bokfIDs}
}
