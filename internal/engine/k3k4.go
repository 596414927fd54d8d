package engine

import (
	"regexp"

	"avstamning.dev/reconcile/internal/money"
	"avstamning.dev/reconcile/internal/tabular"
)

// k3Pattern allows the bankgiro reference's optional display space between
// the "35" prefix and the 10-digit body (e.g. "35 1234567890").
var k3Pattern = regexp.MustCompile(`35\s*\d{10}`)

// matchesK1K2K3 is used by K4 to exclude bank rows that any earlier
// text-pattern rule would have claimed, per §4.6: "bank rows NOT matching
// any of K1/K2/K3 text patterns."
func matchesK1K2K3(text string) bool {
	return containsBG53782751(text) || k2BankPattern.MatchString(text) || k3Pattern.MatchString(text)
}

func containsBG53782751(text string) bool {
	return k1Pattern.MatchString(text)
}

var k1Pattern = regexp.MustCompile(`(?i)BG53782751`)

// RunK3 applies category rule K3 (§4.6): per-row exact amount+date match
// against the "Betalningar" ledger pool, gated by the 35-digit reference
// regex on the bank side.
func RunK3(bank *tabular.BankTable, bokf *tabular.BokfTable, bankUsed, bokfUsed UsedSet, alloc *Allocator) []MatchGroup {
	eligible := filterBank(bank, bankUsed, func(r *tabular.BankRow) bool {
		return k3Pattern.MatchString(r.Text)
	})
	return runPerRow(bank, bokf, bankUsed, bokfUsed, alloc, eligible, CategoryK3, func(r *tabular.BokfRow) bool {
		return equalFoldTrim(r.Category, "betalningar")
	})
}

// RunK4 applies category rule K4 (§4.6): per-row exact amount+date match
// against any unused ledger row, for bank rows that none of K1/K2/K3's text
// patterns claimed.
func RunK4(bank *tabular.BankTable, bokf *tabular.BokfTable, bankUsed, bokfUsed UsedSet, alloc *Allocator) []MatchGroup {
	eligible := filterBank(bank, bankUsed, func(r *tabular.BankRow) bool {
		return !matchesK1K2K3(r.Text)
	})
	return runPerRow(bank, bokf, bankUsed, bokfUsed, alloc, eligible, CategoryK4, func(r *tabular.BokfRow) bool {
		return true
	})
}

// runPerRow processes bank rows in (BookingDate, BankRowID) ascending order
// (§4.6), each producing at most one MatchGroup.
func runPerRow(bank *tabular.BankTable, bokf *tabular.BokfTable, bankUsed, bokfUsed UsedSet, alloc *Allocator, eligible []*tabular.BankRow, category string, ledgerPred func(*tabular.BokfRow) bool) []MatchGroup {
	ordered := orderByDateThenID(eligible)

	var groups []MatchGroup
	for _, br := range ordered {
		if bankUsed.has(br.BankRowID) {
			continue
		}
		if !br.DateOK {
			continue
		}
		pool := filterBokf(bokf, bokfUsed, func(r *tabular.BokfRow) bool {
			return r.DateOK && sameCalendarDay(r.Date, br.BookingDate) &&
				ledgerPred(r) &&
				money.Equal(r.PeriodAmount, br.Amount)
		})
		if len(pool) == 0 {
			continue
		}
		chosen := pool[0] // lowest BokfRowID, table order preserved

		bankIDs := []int{br.BankRowID}
		bokfIDs := []int{chosen.BokfRowID}
		key := alloc.Next(category, br.BankRowID)
		stampBank(bank, bankIDs, key, category)
		stampBokf(bokf, bokfIDs, key, category)
		bankUsed.claim(bankIDs...)
		bokfUsed.claim(bokfIDs...)
		groups = append(groups, MatchGroup{Category: category, GroupKey: key, BankIDs: bankIDs, BokfIDs: bokfIDs})
	}
	return groups
}

func orderByDateThenID(rows []*tabular.BankRow) []*tabular.BankRow {
	out := make([]*tabular.BankRow, len(rows))
	copy(out, rows)
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && lessDateThenID(out[j], out[j-1]); j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

func lessDateThenID(a, b *tabular.BankRow) bool {
	if !a.DateOK || !b.DateOK {
		return a.BankRowID < b.BankRowID
	}
	if a.BookingDate.Equal(b.BookingDate) {
		return a.BankRowID < b.BankRowID
	}
	return a.BookingDate.Before(b.BookingDate)
}

func equalFoldTrim(s, target string) bool {
	return trimLower(s) == target
}
