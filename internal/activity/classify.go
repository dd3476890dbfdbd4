package activity

import (
	"fmt"
	"strconv"
	"strings"

	"stride/internal/services"
)

// Name tokens recognized by Classify. Matching is case-sensitive on purpose:
// the naming convention is applied manually, and a near-miss name should
// surface as unclassified instead of silently landing in the wrong bucket.
const (
	runningToken   = "Running"
	stairToken     = "Treppe"
	restToken      = "Rest"
	stairSportType = "StairStepper"
)

// Classify derives the activity class from its name, with the sport type
// from the listing payload as a secondary hint for stair sessions.
//
// Names beginning with "Running" carry a session number whose parity encodes
// the intensity: odd numbers are the slower sessions, even numbers the
// faster ones. A running name without a number counts as low intensity.
// Returns an error carrying services.ErrUnclassified when no known pattern
// matches.
func Classify(name, sportType string) (Class, error) {
	trimmed := strings.TrimSpace(name)
	switch {
	case strings.HasPrefix(trimmed, runningToken):
		if number, ok := TrailingNumber(trimmed); ok && number%2 == 0 {
			return ClassRunningHigh, nil
		}
		return ClassRunningLow, nil
	case strings.Contains(trimmed, stairToken) || sportType == stairSportType:
		return ClassTreppe, nil
	case strings.Contains(trimmed, restToken):
		return ClassRest, nil
	}
	return "", services.Wrap(services.ErrUnclassified, "classify", "",
		fmt.Sprintf("activity name %q matches no known pattern", name), nil)
}

// TrailingNumber extracts the last run of decimal digits from name, so
// "Running 123 (Polar A)" yields 123. Returns false when the name carries no
// digits or the digit run does not fit in an int.
func TrailingNumber(name string) (int, bool) {
	end := -1
	for i := len(name) - 1; i >= 0; i-- {
		if isDigit(name[i]) {
			end = i + 1
			break
		}
	}
	if end < 0 {
		return 0, false
	}
	start := end - 1
	for start > 0 && isDigit(name[start-1]) {
		start--
	}
	value, err := strconv.Atoi(name[start:end])
	if err != nil {
		return 0, false
	}
	return value, true
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
