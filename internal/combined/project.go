package combined

import (
	"sort"
	"strings"

	"avstamning.dev/reconcile/internal/engine"
	"avstamning.dev/reconcile/internal/tabular"
)

// Project builds the combined row set from a finished reconciliation run
// (§4.10): one output row per source row, bank amounts sign-flipped into
// the shared Amount column, every row tagged with its provenance.
func Project(result *engine.Result) []Row {
	grouped := make(map[string]bool)
	for _, g := range result.Groups {
		grouped[g.GroupKey] = true
	}

	rows := make([]Row, 0, len(result.Bank.Rows)+len(result.Bokf.Rows))
	for _, br := range result.Bank.Rows {
		rows = append(rows, Row{
			System:     SystemBank,
			Date:       br.BookingDate,
			DateOK:     br.DateOK,
			BankAmount: br.Amount,
			HasBank:    true,
			Amount:     -br.Amount,
			Text:       br.Text,

			MatchCategory: br.MatchCategory,
			GroupKey:      br.GroupKey,
			NySource:      classifyBankSource(br),
		})
	}
	for _, lr := range result.Bokf.Rows {
		rows = append(rows, Row{
			System:       SystemBokf,
			Date:         lr.Date,
			DateOK:       lr.DateOK,
			LedgerAmount: lr.PeriodAmount,
			HasLedger:    true,
			Amount:       lr.PeriodAmount,
			Text:         lr.Text1,
			VoucherNo:    lr.VoucherNo,
			Category:     lr.Category,
			Source:       lr.Source,

			MatchCategory: lr.MatchCategory,
			GroupKey:      lr.GroupKey,
			NySource:      classifyLedgerSource(lr),
		})
	}

	sortRows(rows)
	return rows
}

func classifyBankSource(r tabular.BankRow) string {
	if r.GroupKey != "" {
		return NySourceMatch
	}
	text := strings.ToUpper(r.Text)
	switch {
	case strings.HasPrefix(strings.TrimSpace(text), "BG53782751"):
		return NySourceKundreskontra
	case strings.HasPrefix(strings.TrimSpace(text), "LB"):
		return NySourceLeverantorsreskontra
	default:
		return NySourceManuell
	}
}

func classifyLedgerSource(r tabular.BokfRow) string {
	if r.GroupKey != "" {
		return NySourceMatch
	}
	return r.Source
}

// sortRows orders by (MatchGroupID, Date, System), nulls last per §4.10.
func sortRows(rows []Row) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]

		aEmpty, bEmpty := a.GroupKey == "", b.GroupKey == ""
		if aEmpty != bEmpty {
			return bEmpty // non-empty GroupKey sorts before empty (nulls last)
		}
		if a.GroupKey != b.GroupKey {
			return a.GroupKey < b.GroupKey
		}

		if a.DateOK != b.DateOK {
			return b.DateOK // valid dates sort before null dates
		}
		if a.DateOK && !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}

		return a.System < b.System // "Bank" < "Bokföring"
	})
}
