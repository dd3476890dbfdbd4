package activity

import (
	"regexp"
	"strings"
)

// personPattern extracts the device-owner initial from activity names like
// "Running 123 (Polar A)" or "Treppe 7 [Apple B]". The device list covers
// every tracker that has recorded activities on the account.
var personPattern = regexp.MustCompile(`(?i)(?:Running|Rest|Treppe)\s+\d+\s+[\(\[](?:Polar|Suunto|Apple|GarminT|GarminU|FitbitU|FitbitT|Xiaomi|Huawei|Wahoo)\s+([A-Za-z]{1,2})[\)\]]`)

// PersonInitial extracts the owner initial embedded in an activity name.
// The initial is reported uppercase.
func PersonInitial(name string) (string, bool) {
	match := personPattern.FindStringSubmatch(name)
	if match == nil {
		return "", false
	}
	return strings.ToUpper(match[1]), true
}

// MatchesPerson reports whether the activity name carries the given owner
// initial. An empty initial matches every activity; a non-empty initial
// rejects names without a device suffix.
func MatchesPerson(name, initial string) bool {
	initial = strings.ToUpper(strings.TrimSpace(initial))
	if initial == "" {
		return true
	}
	got, ok := PersonInitial(name)
	return ok && got == initial
}
