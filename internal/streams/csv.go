package streams

import (
	"math"
	"strconv"
	"strings"

	"stride/internal/activity"
)

// EncodeRow renders a resampled channel as its comma-joined token row.
// Null samples become empty tokens. Velocity keeps two decimal places;
// every other channel is rounded to whole units.
func EncodeRow(channel activity.Channel, values []float64) string {
	format := formatCount
	if channel == activity.ChannelVelocity {
		format = formatVelocity
	}
	tokens := make([]string, len(values))
	for i, v := range values {
		tokens[i] = format(v)
	}
	return strings.Join(tokens, ",")
}

func formatCount(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.Itoa(int(math.Round(v)))
}

func formatVelocity(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}
