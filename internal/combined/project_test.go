package combined

import (
	"testing"
	"time"

	"avstamning.dev/reconcile/internal/engine"
	"avstamning.dev/reconcile/internal/tabular"
)

func TestProjectFlipsBankSign(t *testing.T) {
	bank := &tabular.BankTable{Rows: []tabular.BankRow{
		{BankRowID: 0, BookingDate: time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC), DateOK: true, Text: "Swish inbet", Amount: 150},
	}}
	bokf := &tabular.BokfTable{}
	result := engine.Run(bank, bokf)

	rows := Project(result)
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	if rows[0].Amount != -150 {
		t.Errorf("Amount = %v, want -150 (sign-flipped)", rows[0].Amount)
	}
	if rows[0].NySource != NySourceManuell {
		t.Errorf("NySource = %q, want Manuell", rows[0].NySource)
	}
}

func TestProjectCompletenessEveryRowAppearsOnce(t *testing.T) {
	bank := &tabular.BankTable{Rows: []tabular.BankRow{
		{BankRowID: 0, BookingDate: time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC), DateOK: true, Text: "35 1234567890", Amount: -500},
		{BankRowID: 1, BookingDate: time.Date(2025, 7, 16, 0, 0, 0, 0, time.UTC), DateOK: true, Text: "Swish inbet", Amount: 75},
	}}
	bokf := &tabular.BokfTable{Rows: []tabular.BokfRow{
		{BokfRowID: 0, Date: time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC), DateOK: true, PeriodAmount: -500, Category: "Betalningar", VoucherNo: "V001"},
	}}
	result := engine.Run(bank, bokf)

	rows := Project(result)
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3 (2 bank + 1 ledger)", len(rows))
	}

	matched := 0
	for _, r := range rows {
		if r.NySource == NySourceMatch {
			matched++
		}
	}
	if matched != 2 {
		t.Errorf("got %d Match rows, want 2 (the K3 pair)", matched)
	}
}

func TestClassifyBankSourceTags(t *testing.T) {
	cases := []struct {
		text string
		want string
	}{
		{"BG53782751 inbetalning", NySourceKundreskontra},
		{"LB utbetalning", NySourceLeverantorsreskontra},
		{"Swish inbet", NySourceManuell},
	}
	for _, c := range cases {
		row := tabular.BankRow{Text: c.text}
		if got := classifyBankSource(row); got != c.want {
			t.Errorf("classifyBankSource(%q) = %q, want %q", c.text, got, c.want)
		}
	}
}
