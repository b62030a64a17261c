package services

import "testing"

func TestParsePrice(t *testing.T) {
	tests := []struct {
		raw    string
		want   int
		wantOk bool
	}{
		{"₹54,999", 54999, true},
		{"₹1,23,456", 123456, true},
		{"54999", 54999, true},
		{"  ₹999 ", 999, true},
		{"", 0, false},
		{"N/A", 0, false},
		{"n/a", 0, false},
		{"coming soon", 0, false},
	}

	for _, tt := range tests {
		got, ok := ParsePrice(tt.raw)
		if got != tt.want || ok != tt.wantOk {
			t.Errorf("ParsePrice(%q) = (%d, %v); want (%d, %v)", tt.raw, got, ok, tt.want, tt.wantOk)
		}
	}
}

func TestBatteryCapacity(t *testing.T) {
	tests := []struct {
		raw    string
		want   int
		wantOk bool
	}{
		{"5000mAh", 5000, true},
		{"5,000mAh Li-Po", 5000, true},
		{"4500 mAh Battery", 4500, true},
		{"Li-Ion", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		got, ok := BatteryCapacity(tt.raw)
		if got != tt.want || ok != tt.wantOk {
			t.Errorf("BatteryCapacity(%q) = (%d, %v); want (%d, %v)", tt.raw, got, ok, tt.want, tt.wantOk)
		}
	}
}

func TestSplitMemory(t *testing.T) {
	tests := []struct {
		raw         string
		wantStorage string
		wantRAM     string
	}{
		{"256GB 8GB RAM", "256GB", "8GB"},
		{"128 GB 6 GB RAM", "128 GB", "6 GB"},
		{"1TB 12GB RAM", "1TB", "12GB"},
		{"256GB", "256GB", ""},
		{"", "", ""},
		{"expandable upto 1TB", "", ""},
	}

	for _, tt := range tests {
		gotStorage, gotRAM := SplitMemory(tt.raw)
		if gotStorage != tt.wantStorage || gotRAM != tt.wantRAM {
			t.Errorf("SplitMemory(%q) = (%q, %q); want (%q, %q)",
				tt.raw, gotStorage, gotRAM, tt.wantStorage, tt.wantRAM)
		}
	}
}

func TestNormalizeKey(t *testing.T) {
	if got := NormalizeKey("  Snapdragon 8 Gen 3  "); got != "snapdragon 8 gen 3" {
		t.Errorf("NormalizeKey = %q; want %q", got, "snapdragon 8 gen 3")
	}
}
