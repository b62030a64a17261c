package services

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	// digitsRegexp strips everything except digits from price text
	digitsRegexp = regexp.MustCompile(`[^0-9]`)
	// capacityRegexp captures the first digit run with optional comma grouping
	capacityRegexp = regexp.MustCompile(`[\d,]+`)
	// ramRegexp captures RAM from "256GB 8GB RAM" style memory text
	ramRegexp = regexp.MustCompile(`(\d+\s*GB)\s+RAM`)
	// storageRegexp captures the leading storage figure from memory text
	storageRegexp = regexp.MustCompile(`^(\d+\s*GB|\d+\s*TB)`)
)

// ParsePrice extracts an unsigned integer price from free-text price
// strings ("₹1,234", "N/A", plain digits). Returns (0, false) when no
// usable number is present. Never fails on arbitrary input.
func ParsePrice(raw string) (int, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.EqualFold(raw, "n/a") {
		return 0, false
	}

	cleaned := digitsRegexp.ReplaceAllString(raw, "")
	if cleaned == "" {
		return 0, false
	}

	price, err := strconv.Atoi(cleaned)
	if err != nil {
		return 0, false
	}
	return price, true
}

// BatteryCapacity extracts the mAh figure from free-text battery specs
// ("5,000mAh Li-Po"). Returns (0, false) when the text contains no digit
// run; callers treat that as unknown capacity.
func BatteryCapacity(raw string) (int, bool) {
	match := capacityRegexp.FindString(raw)
	if match == "" {
		return 0, false
	}

	mah, err := strconv.Atoi(strings.ReplaceAll(match, ",", ""))
	if err != nil {
		return 0, false
	}
	return mah, true
}

// NormalizeKey prepares brand/processor/camera text for case-insensitive
// substring matching against the scoring tables.
func NormalizeKey(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// SplitMemory separates combined memory text ("256GB 8GB RAM") into
// storage and RAM components. Either result may be empty when the text
// does not follow the combined format.
func SplitMemory(raw string) (storage, ram string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ""
	}

	if m := ramRegexp.FindStringSubmatch(raw); len(m) >= 2 {
		ram = strings.TrimSpace(m[1])
	}
	if m := storageRegexp.FindStringSubmatch(raw); len(m) >= 2 {
		storage = strings.TrimSpace(m[1])
	}
	return storage, ram
}
