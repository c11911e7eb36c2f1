package service

import "testing"

func TestNewTariffRejectsNonPositiveRate(t *testing.T) {
	for _, rate := range []float64{0, -1} {
		if _, err := NewTariff(rate); err == nil {
			t.Fatalf("expected error for rate %v", rate)
		}
	}
}

func TestTariffCost(t *testing.T) {
	tariff, err := NewTariff(8.5)
	if err != nil {
		t.Fatal(err)
	}

	cases := []struct {
		energy float64
		want   float64
	}{
		{energy: 0, want: 0},
		{energy: 1, want: 8.5},
		{energy: 12.4, want: 105.4},
	}
	for _, tc := range cases {
		got := tariff.Cost(tc.energy)
		if diff := got - tc.want; diff > 1e-9 || diff < -1e-9 {
			t.Fatalf("Cost(%v) = %v, want %v", tc.energy, got, tc.want)
		}
	}
}
