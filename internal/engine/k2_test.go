package engine

import (
	"testing"

	"avstamning.dev/reconcile/internal/tabular"
)

func TestK2MatchesOnTierA(t *testing.T) {
	bank := &tabular.BankTable{Rows: []tabular.BankRow{
		{BankRowID: 0, BookingDate: date(2025, 7, 5), DateOK: true, Text: "BG 5341-7689 inbetalning", Amount: 1200},
	}}
	bokf := &tabular.BokfTable{Rows: []tabular.BokfRow{
		{BokfRowID: 0, Date: date(2025, 7, 5), DateOK: true, PeriodAmount: 1200, Category: "065 BFO", VoucherNo: "V900"},
	}}

	bankUsed, bokfUsed := make(UsedSet), make(UsedSet)
	groups := RunK2(bank, bokf, bankUsed, bokfUsed, NewAllocator())

	if len(groups) != 1 || groups[0].Category != CategoryK2 {
		t.Fatalf("got %+v", groups)
	}
	if !bankUsed.has(0) || !bokfUsed.has(0) {
		t.Errorf("rows not claimed")
	}
}

func TestK2FallsThroughToTierC(t *testing.T) {
	day := date(2025, 7, 6)
	bank := &tabular.BankTable{Rows: []tabular.BankRow{
		{BankRowID: 0, BookingDate: day, DateOK: true, Text: "BG5341-7689", Amount: 500},
	}}
	bokf := &tabular.BokfTable{Rows: []tabular.BokfRow{
		{BokfRowID: 0, Date: day, DateOK: true, PeriodAmount: 500, Category: "Betalningar", VoucherNo: "250706"},
	}}

	bankUsed, bokfUsed := make(UsedSet), make(UsedSet)
	groups := RunK2(bank, bokf, bankUsed, bokfUsed, NewAllocator())

	if len(groups) != 1 {
		t.Fatalf("expected tier-C fallback to match, got %+v", groups)
	}
}

func TestK2NoEligiblePoolsLeavesDayUnclaimed(t *testing.T) {
	bank := &tabular.BankTable{Rows: []tabular.BankRow{
		{BankRowID: 0, BookingDate: date(2025, 7, 7), DateOK: true, Text: "BG 5341-7689", Amount: 400},
	}}
	bokf := &tabular.BokfTable{}

	bankUsed, bokfUsed := make(UsedSet), make(UsedSet)
	groups := RunK2(bank, bokf, bankUsed, bokfUsed, NewAllocator())

	if len(groups) != 0 {
		t.Fatalf("expected no groups, got %+v", groups)
	}
	if bankUsed.has(0) {
		t.Errorf("bank row should remain unclaimed")
	}
}
