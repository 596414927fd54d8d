package diag

import (
	"strings"
	"testing"
	"time"

	"avstamning.dev/reconcile/internal/engine"
	"avstamning.dev/reconcile/internal/tabular"
)

func TestRunShowCategory(t *testing.T) {
	bank := &tabular.BankTable{Rows: []tabular.BankRow{
		{BankRowID: 0, BookingDate: time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC), DateOK: true, Text: "35 1234567890", Amount: -500},
	}}
	bokf := &tabular.BokfTable{Rows: []tabular.BokfRow{
		{BokfRowID: 0, Date: time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC), DateOK: true, PeriodAmount: -500, Category: "Betalningar", VoucherNo: "V001"},
	}}
	result := engine.Run(bank, bokf)

	out := Run(result, "show K3")
	if !strings.Contains(out, "K3-B0-000001") {
		t.Errorf("output = %q, want it to contain the K3 group key", out)
	}
}

func TestRunUnknownCommand(t *testing.T) {
	result := engine.Run(&tabular.BankTable{}, &tabular.BokfTable{})
	out := Run(result, "bogus")
	if !strings.Contains(out, "unknown command") {
		t.Errorf("output = %q", out)
	}
}

func TestRunUsedSummary(t *testing.T) {
	result := engine.Run(&tabular.BankTable{}, &tabular.BokfTable{})
	out := Run(result, "used")
	if !strings.Contains(out, "bank: 0 total") {
		t.Errorf("output = %q", out)
	}
}
