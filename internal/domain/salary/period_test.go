package salary

import (
	"math"
	"testing"
)

func TestConvertPeriod(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		from   Period
		want   float64
	}{
		{name: "monthly to annual", amount: 15000, from: PeriodMonthly, want: 180000},
		{name: "annual to monthly exact", amount: 180000, from: PeriodAnnual, want: 15000},
		{name: "annual to monthly rounds down", amount: 100000, from: PeriodAnnual, want: 8333},
		{name: "annual to monthly rounds up", amount: 100010, from: PeriodAnnual, want: 8334},
		{name: "annual half rupee rounds up", amount: 18, from: PeriodAnnual, want: 2},
		{name: "zero", amount: 0, from: PeriodAnnual, want: 0},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			if got := ConvertPeriod(tc.amount, tc.from); got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestConvertPeriodRoundTrip(t *testing.T) {
	for monthly := 0.0; monthly <= 5000; monthly += 37 {
		annual := ConvertPeriod(monthly, PeriodMonthly)
		if back := ConvertPeriod(annual, PeriodAnnual); back != monthly {
			t.Fatalf("monthly %v: expected exact round trip, got %v", monthly, back)
		}
	}

	for annual := 0.0; annual <= 50000; annual += 101 {
		monthly := ConvertPeriod(annual, PeriodAnnual)
		back := ConvertPeriod(monthly, PeriodMonthly)
		if math.Abs(back-annual) > 6 {
			t.Fatalf("annual %v: drifted to %v", annual, back)
		}
	}
}

func TestMonthly(t *testing.T) {
	annual := Input{Month: "April", Basic: 180000, HRA: 72000, EmployeePF: 21600, EmployerPF: 21600, ProfessionalTax: 2500, IncomeTax: 6000}

	got := Monthly(annual, PeriodAnnual)
	want := Input{Month: "April", Basic: 15000, HRA: 6000, EmployeePF: 1800, EmployerPF: 1800, ProfessionalTax: 208, IncomeTax: 500}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}

	if unchanged := Monthly(annual, PeriodMonthly); unchanged != annual {
		t.Fatalf("monthly input should pass through, got %+v", unchanged)
	}
}

func TestParsePeriod(t *testing.T) {
	if p, ok := ParsePeriod(""); !ok || p != PeriodMonthly {
		t.Fatalf("expected empty period to default to monthly, got %q %v", p, ok)
	}
	if p, ok := ParsePeriod("annual"); !ok || p != PeriodAnnual {
		t.Fatalf("expected annual, got %q %v", p, ok)
	}
	if _, ok := ParsePeriod("weekly"); ok {
		t.Fatal("expected weekly to be rejected")
	}
}

func TestNormalizeMonth(t *testing.T) {
	tests := map[string]string{
		"January":    "January",
		"march":      "March",
		" DECEMBER ": "December",
	}
	for raw, want := range tests {
		got, ok := NormalizeMonth(raw)
		if !ok || got != want {
			t.Fatalf("NormalizeMonth(%q): expected %q, got %q (%v)", raw, want, got, ok)
		}
	}
	for _, raw := range []string{"", "  ", "Smarch", "13"} {
		if _, ok := NormalizeMonth(raw); ok {
			t.Fatalf("expected %q to be rejected", raw)
		}
	}
}
