package engine

import "testing"

func TestAllocatorSequenceIsDenseAndPerCategory(t *testing.T) {
	a := NewAllocator()
	k1a := a.Next(CategoryK1, 5)
	k1b := a.Next(CategoryK1, 2)
	k2a := a.Next(CategoryK2, 0)

	if k1a != "K1-B5-000001" {
		t.Errorf("got %q", k1a)
	}
	if k1b != "K1-B2-000002" {
		t.Errorf("got %q", k1b)
	}
	if k2a != "K2-B0-000001" {
		t.Errorf("got %q, K2's own counter should start at 1", k2a)
	}
}

func TestMinBankIDEmptyIsZero(t *testing.T) {
	if got := minBankID(nil); got != 0 {
		t.Errorf("minBankID(nil) = %d, want 0", got)
	}
	if got := minBankID([]int{7, 2, 9}); got != 2 {
		t.Errorf("minBankID = %d, want 2", got)
	}
}
