// Package tabular implements C2: in-memory tabular representations of the
// bank statement and the general-ledger posting list, with stable per-side
// row IDs assigned once at load and never reused (§3 Lifecycle).
package tabular

import "time"

// BankRow is one row of the bank statement (§3).
type BankRow struct {
	BankRowID   int
	BookingDate time.Time
	DateOK      bool
	Text        string
	Amount      float64

	// stamped by the matching pipeline once a rule claims this row.
	GroupKey      string
	MatchCategory string

	Passthrough map[string]string
}

// BokfRow is one row of the general-ledger posting list (§3).
type BokfRow struct {
	BokfRowID    int
	Date         time.Time
	DateOK       bool
	PeriodAmount float64
	Category     string
	VoucherNo    string
	Text1        string
	Source       string

	GroupKey      string
	MatchCategory string

	Passthrough map[string]string
}

// BankTable holds every loaded bank row, keyed by BankRowID for O(1) lookup.
type BankTable struct {
	Rows []BankRow
}

// BokfTable holds every loaded ledger row, keyed by BokfRowID.
type BokfTable struct {
	Rows []BokfRow
}

// ByID returns the row with the given ID, or nil if out of range. BankRowID
// assignment is dense (0..len-1) so this is a direct index.
func (t *BankTable) ByID(id int) *BankRow {
	if id < 0 || id >= len(t.Rows) {
		return nil
	}
	return &t.Rows[id]
}

// ByID returns the row with the given ID, or nil if out of range.
func (t *BokfTable) ByID(id int) *BokfRow {
	if id < 0 || id >= len(t.Rows) {
		return nil
	}
	return &t.Rows[id]
}
