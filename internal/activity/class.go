package activity

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Class is the recognized category of an activity. The category decides
// which stream channels the export record carries.
type Class string

const (
	ClassRunningLow  Class = "running_low"
	ClassRunningHigh Class = "running_high"
	ClassTreppe      Class = "treppe"
	ClassRest        Class = "rest"
)

var allClasses = []Class{
	ClassRunningLow,
	ClassRunningHigh,
	ClassTreppe,
	ClassRest,
}

var classSet = func() map[Class]struct{} {
	set := make(map[Class]struct{}, len(allClasses))
	for _, class := range allClasses {
		set[class] = struct{}{}
	}
	return set
}()

// Classes returns every recognized class in display order.
func Classes() []Class {
	out := make([]Class, len(allClasses))
	copy(out, allClasses)
	return out
}

// ParseClass converts a user-supplied string into a Class.
func ParseClass(value string) (Class, error) {
	class := Class(strings.ToLower(strings.TrimSpace(value)))
	if _, ok := classSet[class]; !ok {
		return "", fmt.Errorf("unknown activity class %q", value)
	}
	return class, nil
}

// IsRunning reports whether the class is one of the running intensities.
func (c Class) IsRunning() bool {
	return c == ClassRunningLow || c == ClassRunningHigh
}

var titleCaser = cases.Title(language.Und)

// DisplayName returns a human-readable label for tables and logs.
func (c Class) DisplayName() string {
	return titleCaser.String(strings.ReplaceAll(string(c), "_", " "))
}
