// Package combined implements C11: projecting matched and unmatched bank
// and ledger rows into the single annotated "Kombinerad" workbook sheet.
package combined

import "time"

// Row is one line of the combined sheet: either a bank row or a ledger row,
// carrying its provenance tags (§4.10).
type Row struct {
	System string // "Bank" or "Bokföring", Bank < Bokföring when sorting.

	Date   time.Time
	DateOK bool

	// BankAmount and LedgerAmount are mutually exclusive: a bank row
	// populates BankAmount only, a ledger row populates LedgerAmount only.
	BankAmount   float64
	HasBank      bool
	LedgerAmount float64
	HasLedger    bool

	// Amount is the unified, sign-normalized column (bank amounts flipped,
	// §3): the figure column N is subtotaled over.
	Amount float64

	Text      string
	VoucherNo string
	Category  string
	Source    string

	MatchCategory string
	GroupKey      string
	NySource      string
}

const (
	SystemBank = "Bank"
	SystemBokf = "Bokföring"
)

const (
	NySourceMatch                 = "Match"
	NySourceKundreskontra         = "Kundreskontra"
	NySourceLeverantorsreskontra  = "Leverantörsreskontra"
	NySourceManuell               = "Manuell"
)
