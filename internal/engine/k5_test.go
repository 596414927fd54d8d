package engine

import (
	"testing"

	"avstamning.dev/reconcile/internal/tabular"
)

func TestK5MatchesAllLedgerPool(t *testing.T) {
	day := date(2025, 7, 8)
	bank := &tabular.BankTable{Rows: []tabular.BankRow{
		{BankRowID: 0, BookingDate: day, DateOK: true, Text: "LB utbetalning", Amount: -150},
	}}
	bokf := &tabular.BokfTable{Rows: []tabular.BokfRow{
		{BokfRowID: 0, Date: day, DateOK: true, PeriodAmount: -100, Category: "Leverantörsreskontra"},
		{BokfRowID: 1, Date: day, DateOK: true, PeriodAmount: -50, Category: "Leverantörsreskontra"},
	}}

	bankUsed, bokfUsed := make(UsedSet), make(UsedSet)
	groups := RunK5(bank, bokf, bankUsed, bokfUsed, NewAllocator())

	if len(groups) != 1 || len(groups[0].BokfIDs) != 2 {
		t.Fatalf("got %+v", groups)
	}
	_ = bankUsed
	_ = bokfUsed
}

func TestK5FallsBackToNegativeOnlyPool(t *testing.T) {
	day := date(2025, 7, 9)
	bank := &tabular.BankTable{Rows: []tabular.BankRow{
		{BankRowID: 0, BookingDate: day, DateOK: true, Text: "LB utbetalning", Amount: -150},
	}}
	// The all-ledger pool sums to 170 and no single row or drop-one of the
	// diff (320) balances it, so only the negative-only pool (-100, -50) can.
	bokf := &tabular.BokfTable{Rows: []tabular.BokfRow{
		{BokfRowID: 0, Date: day, DateOK: true, PeriodAmount: -100, Category: "Leverantörsreskontra"},
		{BokfRowID: 1, Date: day, DateOK: true, PeriodAmount: -50, Category: "Leverantörsreskontra"},
		{BokfRowID: 2, Date: day, DateOK: true, PeriodAmount: 300, Category: "Inbetalningar"},
		{BokfRowID: 3, Date: day, DateOK: true, PeriodAmount: 20, Category: "Inbetalningar"},
	}}

	bankUsed, bokfUsed := make(UsedSet), make(UsedSet)
	groups := RunK5(bank, bokf, bankUsed, bokfUsed, NewAllocator())

	if len(groups) != 1 || len(groups[0].BokfIDs) != 2 || groups[0].BokfIDs[0] != 0 || groups[0].BokfIDs[1] != 1 {
		t.Fatalf("expected only the negative ledger rows matched, got %+v", groups)
	}
}
