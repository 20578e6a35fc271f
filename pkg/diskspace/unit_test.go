package diskspace

import "testing"

func TestParseUnit(t *testing.T) {
	tests := []struct {
		in   string
		want Unit
	}{
		{"GB", Gigabytes},
		{"gb", Gigabytes},
		{" GiB ", Gibibytes},
		{"b", Bytes},
		{"", DefaultUnit},
	}
	for _, tt := range tests {
		got, err := ParseUnit(tt.in)
		if err != nil {
			t.Errorf("ParseUnit(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseUnit(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}

	if _, err := ParseUnit("furlongs"); err == nil {
		t.Error("expected an error for an unknown unit")
	}
}

func TestUnitConvert(t *testing.T) {
	if got := Gigabytes.Convert(1_500_000_000); got != 1.5 {
		t.Errorf("GB convert = %v, want 1.5", got)
	}
	if got := Gibibytes.Convert(2 << 30); got != 2 {
		t.Errorf("GiB convert = %v, want 2", got)
	}
	if got := Megabytes.Format(2_500_000); got != "2.50 MB" {
		t.Errorf("MB format = %q", got)
	}
}
