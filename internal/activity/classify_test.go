package activity

import (
	"errors"
	"testing"

	"stride/internal/services"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name         string
		activityName string
		sportType    string
		expected     Class
	}{
		{
			name:         "odd session number is low intensity",
			activityName: "Running 3",
			expected:     ClassRunningLow,
		},
		{
			name:         "even session number is high intensity",
			activityName: "Running 4",
			expected:     ClassRunningHigh,
		},
		{
			name:         "device suffix does not disturb the session number",
			activityName: "Running 123 (Polar A)",
			expected:     ClassRunningLow,
		},
		{
			name:         "even session number with bracket suffix",
			activityName: "Running 12 [GarminT B]",
			expected:     ClassRunningHigh,
		},
		{
			name:         "running without a number defaults to low",
			activityName: "Running easy",
			expected:     ClassRunningLow,
		},
		{
			name:         "treppe token anywhere in the name",
			activityName: "Treppe Session",
			expected:     ClassTreppe,
		},
		{
			name:         "stair stepper sport type without name token",
			activityName: "Lunch workout",
			sportType:    "StairStepper",
			expected:     ClassTreppe,
		},
		{
			name:         "rest token as a substring",
			activityName: "Idle Rest",
			expected:     ClassRest,
		},
		{
			name:         "rest session with number",
			activityName: "Rest 42 (Apple B)",
			expected:     ClassRest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			class, err := Classify(tt.activityName, tt.sportType)
			if err != nil {
				t.Fatalf("Classify(%q) returned error: %v", tt.activityName, err)
			}
			if class != tt.expected {
				t.Errorf("Classify(%q) = %v, want %v", tt.activityName, class, tt.expected)
			}
		})
	}
}

func TestClassifyRejectsUnknownNames(t *testing.T) {
	for _, name := range []string{"Yoga", "running 3", "", "Morgenlauf 5"} {
		_, err := Classify(name, "Run")
		if err == nil {
			t.Fatalf("Classify(%q) succeeded, want unclassified error", name)
		}
		if !errors.Is(err, services.ErrUnclassified) {
			t.Errorf("Classify(%q) error = %v, want ErrUnclassified", name, err)
		}
		if services.FailureDisposition(err) != services.DispositionSkip {
			t.Errorf("Classify(%q) error should map to skip disposition", name)
		}
	}
}

func TestTrailingNumber(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int
		ok       bool
	}{
		{name: "plain number", input: "Running 3", expected: 3, ok: true},
		{name: "multi digit", input: "Running 123 (Polar A)", expected: 123, ok: true},
		{name: "last number wins", input: "Running 2 week 7", expected: 7, ok: true},
		{name: "no digits", input: "Running easy", ok: false},
		{name: "empty string", input: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value, ok := TrailingNumber(tt.input)
			if ok != tt.ok {
				t.Fatalf("TrailingNumber(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			}
			if ok && value != tt.expected {
				t.Errorf("TrailingNumber(%q) = %d, want %d", tt.input, value, tt.expected)
			}
		})
	}
}

func TestParseClass(t *testing.T) {
	class, err := ParseClass(" Running_Low ")
	if err != nil {
		t.Fatalf("ParseClass returned error: %v", err)
	}
	if class != ClassRunningLow {
		t.Fatalf("ParseClass = %v, want %v", class, ClassRunningLow)
	}
	if _, err := ParseClass("cycling"); err == nil {
		t.Fatal("expected error for unknown class")
	}
}

func TestDisplayName(t *testing.T) {
	if got := ClassRunningHigh.DisplayName(); got != "Running High" {
		t.Errorf("DisplayName = %q, want %q", got, "Running High")
	}
	if got := ClassTreppe.DisplayName(); got != "Treppe" {
		t.Errorf("DisplayName = %q, want %q", got, "Treppe")
	}
}
