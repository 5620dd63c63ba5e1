package core

import "testing"

func TestDebitNormal(t *testing.T) {
	cases := []struct {
		nature AccountNature
		want   bool
	}{
		{NatureDebit, true},
		{NatureCredit, false},
		// Missing or unrecognized natures default to credit-normal.
		{"", false},
		{"DEUDORA", false},
	}
	for _, tc := range cases {
		if got := tc.nature.DebitNormal(); got != tc.want {
			t.Fatalf("DebitNormal(%q) = %v, expected %v", tc.nature, got, tc.want)
		}
	}
}

func TestNormalizedName(t *testing.T) {
	total := AccountTotal{Name: "IVA Generado Por Ventas"}
	if got := total.NormalizedName(); got != "iva generado por ventas" {
		t.Fatalf("NormalizedName() = %q", got)
	}
}
