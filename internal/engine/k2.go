package engine

import (
	"regexp"
	"strings"

	"avstamning.dev/reconcile/internal/money"
	"avstamning.dev/reconcile/internal/tabular"
)

var k2BankPattern = regexp.MustCompile(`(?i)BG\s*5341-7689`)
var sixDigits = regexp.MustCompile(`^\d{6}$`)

// RunK2 applies category rule K2 (§4.5): BG 5341-7689 inbound bank rows,
// day-summed against a tiered ledger pool (A -> A' -> A'∪B -> A'∪B∪C).
func RunK2(bank *tabular.BankTable, bokf *tabular.BokfTable, bankUsed, bokfUsed UsedSet, alloc *Allocator) []MatchGroup {
	eligible := filterBank(bank, bankUsed, func(r *tabular.BankRow) bool {
		return k2BankPattern.MatchString(r.Text) && r.Amount > 0
	})

	var groups []MatchGroup
	for _, day := range bankDates(eligible) {
		dayBank := bankRowsOnDate(eligible, day)
		bankSum := bankSumRounded(dayBank)
		ymd := strings.ToLower(yymmdd(day))

		poolA := filterBokf(bokf, bokfUsed, func(r *tabular.BokfRow) bool {
			return r.DateOK && sameCalendarDay(r.Date, day) &&
				strings.EqualFold(strings.TrimSpace(r.Category), "065 bfo") &&
				r.PeriodAmount > 0
		})

		var poolAPrime []*tabular.BokfRow
		for _, r := range poolA {
			t1 := strings.ToLower(r.Text1)
			if strings.Contains(t1, "skabank") && strings.Contains(t1, ymd) {
				poolAPrime = append(poolAPrime, r)
			}
		}

		poolB := filterBokf(bokf, bokfUsed, func(r *tabular.BokfRow) bool {
			if !(r.DateOK && sameCalendarDay(r.Date, day)) {
				return false
			}
			if !strings.EqualFold(strings.TrimSpace(r.Category), "inbetalningar") || r.PeriodAmount <= 0 {
				return false
			}
			if strings.HasPrefix(strings.ToUpper(strings.TrimSpace(r.VoucherNo)), "SEB") {
				return false
			}
			vno := strings.ToLower(r.VoucherNo)
			return strings.Contains(vno, "skabank") && strings.Contains(vno, ymd)
		})

		poolC := filterBokf(bokf, bokfUsed, func(r *tabular.BokfRow) bool {
			if !strings.EqualFold(strings.TrimSpace(r.Category), "betalningar") || r.PeriodAmount <= 0 {
				return false
			}
			if !r.DateOK {
				return false
			}
			if r.Date.Before(day.AddDate(0, 0, -2)) || r.Date.After(day.AddDate(0, 0, 2)) {
				return false
			}
			vno := strings.TrimSpace(r.VoucherNo)
			return sixDigits.MatchString(vno) && strings.Contains(vno, yymmdd(day))
		})

		// A' standalone sweep (open question in §9: run before tier unions too).
		if chosen, ok := attemptCascade(poolAPrime, bankSum); ok {
			groups = append(groups, commitK2(bank, bokf, bankUsed, bokfUsed, alloc, dayBank, chosen)...)
			continue
		}

		tiers := [][]*tabular.BokfRow{
			poolA,
			poolAPrime,
			union2(poolAPrime, poolB),
			union2(union2(poolAPrime, poolB), poolC),
		}
		matched := false
		for _, tier := range tiers {
			if len(tier) == 0 {
				continue
			}
			if chosen, ok := attemptCascade(tier, bankSum); ok {
				groups = append(groups, commitK2(bank, bokf, bankUsed, bokfUsed, alloc, dayBank, chosen)...)
				matched = true
				break
			}
		}
		_ = matched
	}
	return groups
}

func commitK2(bank *tabular.BankTable, bokf *tabular.BokfTable, bankUsed, bokfUsed UsedSet, alloc *Allocator, dayBank []*tabular.BankRow, chosen []*tabular.BokfRow) []MatchGroup {
	bankIDs := bankIDsOf(dayBank)
	bokfIDs := bokfIDsOf(chosen)
	key := alloc.Next(CategoryK2, minBankID(bankIDs))
	stampBank(bank, bankIDs, key, CategoryK2)
	stampBokf(bokf, bokfIDs, key, CategoryK2)
	bankUsed.claim(bankIDs...)
	bokfUsed.claim(bokfIDs...)
	return []MatchGroup{{Category: CategoryK2, GroupKey: key, BankIDs: bankIDs, BokfIDs: bokfIDs}}
}

// attemptCascade is the shared 4-step sweep used by every K2 tier (§4.5):
// (i) pool sums to target; (ii) a single pool row equals target exactly;
// (iii) drop-one of diff; (iv) drop-combination of diff.
func attemptCascade(pool []*tabular.BokfRow, target float64) ([]*tabular.BokfRow, bool) {
	if money.Equal(bokfSumRounded(pool), target) {
		return pool, true
	}
	if row, ok := singleEqualsBokf(pool, target); ok {
		return []*tabular.BokfRow{row}, true
	}
	diff := bokfSumRounded(pool) - target
	if _, remainder, ok := dropOneBokf(pool, diff); ok {
		return remainder, true
	}
	if remainder, ok := dropComboBokf(pool, diff); ok {
		return remainder, true
	}
	return nil, false
}

// union2 concatenates two pools, skipping ledger rows already present by
// BokfRowID (A' rows reappear inside the A'∪B and A'∪B∪C tiers).
func union2(a, b []*tabular.BokfRow) []*tabular.BokfRow {
	seen := make(map[int]bool, len(a))
	out := make([]*tabular.BokfRow, 0, len(a)+len(b))
	for _, r := range a {
		if !seen[r.BokfRowID] {
			seen[r.BokfRowID] = true
			out = append(out, r)
		}
	}
	for _, r := range b {
		if !seen[r.BokfRowID] {
			seen[r.BokfRowID] = true
			out = append(out, r)
		}
	}
	return out
}
