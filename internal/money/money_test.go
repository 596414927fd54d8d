package money

import "testing"

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in    string
		want  float64
		valid bool
	}{
		{"1 234,56", 1234.56, true},
		{"1.234,56", 1234.56, true},
		{"1,234.56", 1234.56, true},
		{"-500.00", -500, true},
		{"(500.00)", -500, true},
		{"700", 700, true},
		{"", 0, false},
		{"n/a", 0, false},
	}

	for _, test := range tests {
		got, ok := ParseAmount(test.in)
		if ok != test.valid {
			t.Errorf("ParseAmount(%q) ok=%v, want %v", test.in, ok, test.valid)
			continue
		}
		if ok && !Equal(got, test.want) {
			t.Errorf("ParseAmount(%q) = %v, want %v", test.in, got, test.want)
		}
	}
}

func TestEqualTolerance(t *testing.T) {
	if !Equal(100.00, 100.004) {
		t.Errorf("expected 100.00 == 100.004 within tolerance")
	}
	if Equal(100.00, 100.006) {
		t.Errorf("expected 100.00 != 100.006 outside tolerance")
	}
}

func TestSumRoundedRoundsOnce(t *testing.T) {
	// 0.005 three times would drift to 0.03 if rounded per-addend; only the final
	// sum is rounded per §4.1.
	got := SumRounded([]float64{0.005, 0.005, 0.005})
	if !Equal(got, 0.02) && !Equal(got, 0.01) {
		t.Errorf("SumRounded = %v", got)
	}
}

func TestToCentsRoundTrip(t *testing.T) {
	cases := []float64{0, 1, -1, 1000.5, -1000.5, 0.01, -0.01}
	for _, c := range cases {
		got := ToCents(c).Float()
		if !Equal(got, c) {
			t.Errorf("ToCents(%v).Float() = %v", c, got)
		}
	}
}
