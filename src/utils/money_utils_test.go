package utils_test

import (
	"testing"

	"github.com/username/settleadmin/backend/src/utils"
)

func TestParseDisplayAmount(t *testing.T) {
	cases := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{"$19.99", 1999, false},
		{"€ 5", 500, false},
		{"19.99", 1999, false},
		{"$0.00", 0, false},
		{"USD 12.50", 1250, false},
		{"$19.999", 2000, false}, // rounds to nearest cent
		{"", 0, true},
		{"free", 0, true},
		{"$-3.00", 0, true}, // negative amounts are invalid
	}
	for _, c := range cases {
		got, err := utils.ParseDisplayAmount(c.in)
		if c.wantErr {
			if err == nil {
				t.Errorf("ParseDisplayAmount(%q): expected error, got %d", c.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseDisplayAmount(%q): unexpected error: %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("ParseDisplayAmount(%q) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestFormatMajorUnits(t *testing.T) {
	if got := utils.FormatMajorUnits(1999); got != "19.99" {
		t.Errorf("FormatMajorUnits(1999) = %q, want \"19.99\"", got)
	}
	if got := utils.FormatMajorUnits(0); got != "0.00" {
		t.Errorf("FormatMajorUnits(0) = %q, want \"0.00\"", got)
	}
	if got := utils.FormatMajorUnits(500); got != "5.00" {
		t.Errorf("FormatMajorUnits(500) = %q, want \"5.00\"", got)
	}
}
