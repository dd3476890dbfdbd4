package export

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"strconv"
	"strings"

	"stride/internal/jsonl"
	"stride/internal/services"
	"stride/internal/streams"
)

// Default abnormal heart-rate range in beats per minute.
const (
	DefaultAbnormalMinHR = 210
	DefaultAbnormalMaxHR = 240
)

const (
	heartRateRow     = "hr_bpm_csv"
	heartRateSummary = "hr_bpm"
)

// SynthesizeAbnormalHR copies an export file to outPath while replacing
// every recorded heart-rate sample with a uniform draw from [minHR, maxHR].
// Heart-rate quantiles are recomputed from the drawn values, and the
// metadata averages and maxima are refreshed where the source record carried
// them. Records without a heart-rate row pass through unchanged. The input
// must be a file this exporter wrote; unknown keys are not preserved.
// Returns the number of records written.
func SynthesizeAbnormalHR(inPath, outPath string, minHR, maxHR int) (int, error) {
	if minHR >= maxHR {
		return 0, services.Wrap(services.ErrValidation, "synth", "abnormal heart rate",
			fmt.Sprintf("min %d must be less than max %d", minHR, maxHR), nil)
	}

	lines, err := jsonl.ReadAll(inPath)
	if err != nil {
		return 0, err
	}

	records := make([]streams.Record, 0, len(lines))
	for i, line := range lines {
		var rec streams.Record
		if err := json.Unmarshal(line, &rec); err != nil {
			return 0, services.Wrap(services.ErrValidation, "synth", "decode record",
				fmt.Sprintf("line %d of %s", i+1, inPath), err)
		}
		rewriteHeartRate(&rec, minHR, maxHR)
		records = append(records, rec)
	}

	writer, err := jsonl.Create(outPath)
	if err != nil {
		return 0, err
	}
	for _, rec := range records {
		if err := writer.Write(rec); err != nil {
			_ = writer.Close()
			return writer.Count(), err
		}
	}
	if err := writer.Close(); err != nil {
		return writer.Count(), err
	}
	return writer.Count(), nil
}

// rewriteHeartRate replaces the heart-rate row of one record in place.
// Absent or empty rows stay untouched. Null ticks are dropped rather than
// replaced, so the rewritten row carries recorded samples only; a row of
// nothing but null ticks collapses to an empty row.
func rewriteHeartRate(rec *streams.Record, minHR, maxHR int) {
	row, ok := rec.StreamsCompact[heartRateRow]
	if !ok || row == "" {
		return
	}

	span := maxHR - minHR + 1
	var (
		tokens []string
		drawn  []float64
	)
	for _, token := range strings.Split(row, ",") {
		if strings.TrimSpace(token) == "" {
			continue
		}
		v := minHR + rand.Intn(span)
		tokens = append(tokens, strconv.Itoa(v))
		drawn = append(drawn, float64(v))
	}
	rec.StreamsCompact[heartRateRow] = strings.Join(tokens, ",")
	if len(drawn) == 0 {
		return
	}

	if set, ok := streams.Summarize(drawn); ok {
		if rec.Quantiles == nil {
			rec.Quantiles = streams.Quantiles{}
		}
		rec.Quantiles[heartRateSummary] = set
	}

	var sum, highest float64
	for i, v := range drawn {
		sum += v
		if i == 0 || v > highest {
			highest = v
		}
	}
	if rec.Metadata.AverageHeartRateBPM != nil {
		avg := float64(int(sum / float64(len(drawn))))
		rec.Metadata.AverageHeartRateBPM = &avg
	}
	if rec.Metadata.MaxHeartRateBPM != nil {
		rec.Metadata.MaxHeartRateBPM = &highest
	}
}
