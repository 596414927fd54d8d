package engine

import (
	"testing"

	"avstamning.dev/reconcile/internal/tabular"
)

func TestK6ZeroResidualDayCommitsImmediately(t *testing.T) {
	day := date(2025, 6, 1)
	bank := &tabular.BankTable{Rows: []tabular.BankRow{
		{BankRowID: 0, BookingDate: day, DateOK: true, Text: "misc", Amount: 200},
	}}
	bokf := &tabular.BokfTable{Rows: []tabular.BokfRow{
		{BokfRowID: 0, Date: day, DateOK: true, PeriodAmount: 200, Category: "Ovrigt"},
	}}

	bankUsed, bokfUsed := make(UsedSet), make(UsedSet)
	groups := RunK6(bank, bokf, bankUsed, bokfUsed, NewAllocator())

	if len(groups) != 1 {
		t.Fatalf("got %d groups, want 1: %+v", len(groups), groups)
	}
	if groups[0].Category != CategoryK6 {
		t.Errorf("category = %q, want K6", groups[0].Category)
	}
}

func TestK6NoCombinationLeavesDaysUnclaimed(t *testing.T) {
	bank := &tabular.BankTable{Rows: []tabular.BankRow{
		{BankRowID: 0, BookingDate: date(2025, 6, 1), DateOK: true, Text: "misc", Amount: 200},
		{BankRowID: 1, BookingDate: date(2025, 6, 2), DateOK: true, Text: "misc", Amount: -999},
	}}
	bokf := &tabular.BokfTable{}

	bankUsed, bokfUsed := make(UsedSet), make(UsedSet)
	groups := RunK6(bank, bokf, bankUsed, bokfUsed, NewAllocator())

	if len(groups) != 0 {
		t.Fatalf("expected no combination to balance, got %+v", groups)
	}
}
