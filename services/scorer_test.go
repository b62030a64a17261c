package services

import (
	"testing"

	"smartpick/models"
)

func TestCameraScore(t *testing.T) {
	tests := []struct {
		camera string
		brand  string
		want   int
	}{
		{"200MP + 12MP + 10MP", "Samsung", 95},
		{"108MP Triple Camera", "Xiaomi", 92},
		{"100MP OIS", "Motorola", 92},
		{"64MP Dual Camera", "Realme", 85},
		{"50MP Main", "OnePlus", 85},
		{"48MP", "Apple", 82},
		{"12MP Dual Camera", "Apple", 90},
		{"12MP Dual Camera", "Samsung", 70},
		{"", "Samsung", 70},
		{"quad camera setup", "Vivo", 70},
	}

	for _, tt := range tests {
		got := CameraScore(tt.camera, tt.brand)
		if got != tt.want {
			t.Errorf("CameraScore(%q, %q) = %d; want %d", tt.camera, tt.brand, got, tt.want)
		}
	}
}

func TestBatteryScore(t *testing.T) {
	tests := []struct {
		battery string
		want    int
	}{
		{"7000mAh", 98},
		{"7,500mAh", 98},
		{"6999mAh", 95},
		{"6500mAh", 95},
		{"6000mAh", 90},
		{"5000mAh", 82},
		{"4500mAh", 78},
		{"3500mAh", 71},
		{"3000mAh", 70},
		{"Li-Ion", 70},
		{"", 70},
	}

	for _, tt := range tests {
		got := BatteryScore(tt.battery)
		if got != tt.want {
			t.Errorf("BatteryScore(%q) = %d; want %d", tt.battery, got, tt.want)
		}
	}
}

func TestBatteryScoreMonotonic(t *testing.T) {
	capacities := []string{
		"3500mAh", "3750mAh", "4000mAh", "4250mAh", "4500mAh", "4750mAh",
		"5000mAh", "5250mAh", "5500mAh", "5750mAh", "6000mAh", "6250mAh",
		"6500mAh", "7000mAh",
	}

	prev := 0
	for _, c := range capacities {
		score := BatteryScore(c)
		if score < prev {
			t.Errorf("BatteryScore(%q) = %d; dropped below previous bucket score %d", c, score, prev)
		}
		prev = score
	}
}

func TestPerformanceScore(t *testing.T) {
	tests := []struct {
		processor string
		want      int
	}{
		{"A18 Bionic", 98},
		{"A17 Pro", 98},
		{"A17", 95},
		{"A16 Bionic", 95},
		{"A15 Bionic", 92},
		{"Snapdragon 8 Gen 3", 95},
		{"Snapdragon 8 Gen 2", 92},
		{"Snapdragon 8+ Gen 1", 88},
		{"Dimensity 9300", 93},
		{"Dimensity 7200", 80},
		{"Helio G99", 75},
		{"", 75},
	}

	for _, tt := range tests {
		got := PerformanceScore(tt.processor)
		if got != tt.want {
			t.Errorf("PerformanceScore(%q) = %d; want %d", tt.processor, got, tt.want)
		}
	}
}

func TestPrivacyScore(t *testing.T) {
	tests := []struct {
		brand string
		want  int
	}{
		{"Apple", 95},
		{"Google", 88},
		{"Samsung", 82},
		{"OnePlus", 75},
		{"Xiaomi", 70},
		{"", 70},
	}

	for _, tt := range tests {
		got := PrivacyScore(tt.brand)
		if got != tt.want {
			t.Errorf("PrivacyScore(%q) = %d; want %d", tt.brand, got, tt.want)
		}
	}
}

func TestDesignScore(t *testing.T) {
	tests := []struct {
		brand string
		price int
		want  int
	}{
		{"Apple", 20000, 92},
		{"Apple", 70000, 90},  // 92 + 3 capped at 90
		{"Apple", 100000, 95}, // 92 + 5 capped at 95
		{"Nothing", 30000, 90},
		{"Nothing", 60000, 90}, // 90 + 3 capped at 90
		{"Samsung", 40000, 85},
		{"Samsung", 60000, 88},
		{"Samsung", 90000, 90},
		{"Xiaomi", 20000, 75},
		{"Xiaomi", 90000, 80},
	}

	for _, tt := range tests {
		got := DesignScore(tt.brand, tt.price)
		if got != tt.want {
			t.Errorf("DesignScore(%q, %d) = %d; want %d", tt.brand, tt.price, got, tt.want)
		}
	}
}

func TestScoreEndToEnd(t *testing.T) {
	raw := &models.RawPhone{
		Brand:     "Apple",
		Model:     "iPhone X",
		Camera:    "48MP",
		Battery:   "4500mAh",
		Processor: "A17 Pro",
	}

	scores := Score(raw, 70000)

	want := models.FeatureScores{
		Camera:      82,
		Battery:     78,
		Performance: 98,
		Privacy:     95,
		Design:      90,
	}
	if scores != want {
		t.Errorf("Score() = %+v; want %+v", scores, want)
	}
}

func TestScoreBoundsHold(t *testing.T) {
	// Arbitrary garbage input must never escape the documented ranges.
	raws := []*models.RawPhone{
		{Brand: "???", Camera: "!!!", Battery: "99999mAh", Processor: "unknown"},
		{Brand: "", Camera: "", Battery: "", Processor: ""},
		{Brand: "Apple", Camera: "200MP", Battery: "10000mAh", Processor: "A18"},
	}

	for _, raw := range raws {
		s := Score(raw, 150000)
		if s.Camera < 70 || s.Camera > 98 {
			t.Errorf("camera score %d out of [70,98]", s.Camera)
		}
		if s.Battery < 70 || s.Battery > 98 {
			t.Errorf("battery score %d out of [70,98]", s.Battery)
		}
		if s.Performance < 70 || s.Performance > 98 {
			t.Errorf("performance score %d out of [70,98]", s.Performance)
		}
		if s.Privacy < 70 || s.Privacy > 95 {
			t.Errorf("privacy score %d out of [70,95]", s.Privacy)
		}
		if s.Design < 70 || s.Design > 95 {
			t.Errorf("design score %d out of [70,95]", s.Design)
		}
	}
}
