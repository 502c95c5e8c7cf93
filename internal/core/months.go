package core

import (
	"fmt"
	"strings"
	"time"
)

// Months is the canonical month order used by every report.
var Months = [12]time.Month{
	time.January, time.February, time.March, time.April, time.May, time.June,
	time.July, time.August, time.September, time.October, time.November, time.December,
}

// ParseMonth resolves a full English month name, case-insensitively.
func ParseMonth(name string) (time.Month, error) {
	name = strings.TrimSpace(name)
	for _, m := range Months {
		if strings.EqualFold(m.String(), name) {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown month %q", name)
}
