package engine

import "avstamning.dev/reconcile/internal/tabular"

// stampBank writes GroupKey/MatchCategory onto the given bank rows (C3 §4.2).
func stampBank(t *tabular.BankTable, ids []int, key, category string) {
	for _, id := range ids {
		if r := t.ByID(id); r != nil {
			r.GroupKey = key
			r.MatchCategory = category
		}
	}
}

// stampBokf writes GroupKey/MatchCategory onto the given ledger rows.
func stampBokf(t *tabular.BokfTable, ids []int, key, category string) {
	for _, id := range ids {
		if r := t.ByID(id); r != nil {
			r.GroupKey = key
			r.MatchCategory = category
		}
	}
}
