package export

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"stride/internal/activity"
	"stride/internal/config"
	"stride/internal/jsonl"
	"stride/internal/logging"
	"stride/internal/services"
	"stride/internal/services/strava"
	"stride/internal/streamcache"
	"stride/internal/streams"
)

// ActivitySource lists activities and serves their raw stream payloads.
type ActivitySource interface {
	ActivitiesByPerson(ctx context.Context, initial string, opts strava.ListOptions) ([]strava.Activity, error)
	ActivityStreams(ctx context.Context, id int64, keys []string) (strava.StreamSet, error)
}

// PayloadCache stores raw stream payloads between runs so repeat exports
// skip the API round-trip.
type PayloadCache interface {
	Lookup(activityID int64, fingerprint string) (json.RawMessage, bool)
	Store(activityID int64, fingerprint string, payload json.RawMessage) error
}

// Options configures one export run.
type Options struct {
	// Person restricts the export to activities carrying one owner initial;
	// empty exports everyone.
	Person string
	// Interval is the sampling grid resolution in seconds.
	Interval float64
	// After and Before bound the listing window.
	After  time.Time
	Before time.Time
	// OutputPath overrides the default output file location.
	OutputPath string
	// UseCache enables payload cache reads and writes for this run.
	UseCache bool
}

// Summary reports what one export run accomplished. Output is the resolved
// path of the file the run wrote.
type Summary struct {
	Written int
	Skipped int
	Failed  int
	Output  string
}

// Pipeline drives a full export: list activities, classify each one, fetch
// its streams, compact them, and write the JSONL line. Activities are
// processed sequentially in fetch order.
type Pipeline struct {
	cfg    *config.Config
	source ActivitySource
	cache  PayloadCache
	logger *slog.Logger
	lock   *flock.Flock
}

// NewPipeline constructs an export pipeline. cache may be nil when payload
// caching is disabled.
func NewPipeline(cfg *config.Config, source ActivitySource, cache PayloadCache, logger *slog.Logger) (*Pipeline, error) {
	if cfg == nil {
		return nil, errors.New("export: config required")
	}
	if source == nil {
		return nil, errors.New("export: activity source required")
	}
	lockPath := filepath.Join(cfg.Paths.LogDir, "stride-export.lock")
	return &Pipeline{
		cfg:    cfg,
		source: source,
		cache:  cache,
		logger: logging.NewComponentLogger(logger, "export"),
		lock:   flock.New(lockPath),
	}, nil
}

// DefaultOutputPath names the export file for a person filter and interval:
// activities_<person|all>_<interval>s.jsonl under the configured output
// directory.
func DefaultOutputPath(cfg *config.Config, person string, interval float64) string {
	tag := strings.ToLower(strings.TrimSpace(person))
	if tag == "" {
		tag = "all"
	}
	name := fmt.Sprintf("activities_%s_%ds.jsonl", tag, int(interval))
	return filepath.Join(cfg.Paths.OutputDir, name)
}

// Run executes one export. The returned summary is valid even when err is
// non-nil; on abort it covers everything processed before the failure.
func (p *Pipeline) Run(ctx context.Context, opts Options) (Summary, error) {
	var summary Summary

	if opts.Interval <= 0 {
		opts.Interval = float64(p.cfg.Export.IntervalSeconds)
	}
	if opts.Interval <= 0 {
		opts.Interval = streams.DefaultInterval
	}
	if opts.OutputPath == "" {
		opts.OutputPath = DefaultOutputPath(p.cfg, opts.Person, opts.Interval)
	}
	summary.Output = opts.OutputPath

	locked, err := p.lock.TryLock()
	if err != nil {
		return summary, fmt.Errorf("acquire export lock: %w", err)
	}
	if !locked {
		return summary, errors.New("another export run is already in progress")
	}
	defer func() {
		if err := p.lock.Unlock(); err != nil {
			p.logger.Warn("failed to release export lock", logging.Error(err))
		}
	}()

	ctx = services.WithRequestID(ctx, uuid.NewString())
	ctx = services.WithStage(ctx, "export")
	runLogger := logging.WithContext(ctx, p.logger)

	start := time.Now()
	runLogger.Info("export started",
		logging.String(logging.FieldEventType, "export_start"),
		logging.String("person", personLabel(opts.Person)),
		logging.Float64("interval_s", opts.Interval),
		logging.String("output", opts.OutputPath))

	listOpts := strava.ListOptions{
		PerPage: p.cfg.Strava.PerPage,
		After:   opts.After,
		Before:  opts.Before,
	}
	activities, err := p.source.ActivitiesByPerson(ctx, opts.Person, listOpts)
	if err != nil {
		return summary, fmt.Errorf("list activities: %w", err)
	}
	runLogger.Info("activities listed", logging.Int("count", len(activities)))

	if dir := filepath.Dir(opts.OutputPath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return summary, services.Wrap(services.ErrWrite, "export", "create output directory", dir, err)
		}
	}
	writer, err := jsonl.Create(opts.OutputPath)
	if err != nil {
		return summary, err
	}

	for _, act := range activities {
		actCtx := services.WithActivityID(ctx, act.ID)
		actLogger := logging.WithContext(actCtx, p.logger).With(
			logging.String(logging.FieldActivityName, act.Name))

		record, class, err := p.buildRecord(actCtx, actLogger, act, opts)
		if err != nil {
			switch services.FailureDisposition(err) {
			case services.DispositionSkip:
				summary.Skipped++
				actLogger.Warn("activity skipped",
					logging.String(logging.FieldEventType, "activity_skipped"),
					logging.Error(err))
				continue
			case services.DispositionFail:
				summary.Failed++
				actLogger.Error("activity failed",
					logging.String(logging.FieldEventType, "activity_failed"),
					logging.Error(err))
				continue
			default:
				_ = writer.Close()
				return summary, err
			}
		}

		if err := writer.Write(record); err != nil {
			summary.Failed++
			_ = writer.Close()
			return summary, err
		}
		summary.Written++
		actLogger.Debug("activity exported",
			logging.String("class", string(class)),
			logging.Int("compact_rows", len(record.StreamsCompact)),
			logging.Int("quantile_rows", len(record.Quantiles)))
	}

	if err := writer.Close(); err != nil {
		return summary, err
	}

	runLogger.Info("export completed",
		logging.String(logging.FieldEventType, "export_complete"),
		logging.Int("written", summary.Written),
		logging.Int("skipped", summary.Skipped),
		logging.Int("failed", summary.Failed),
		logging.Duration("elapsed", time.Since(start).Round(time.Millisecond)))
	return summary, nil
}

func (p *Pipeline) buildRecord(ctx context.Context, logger *slog.Logger, act strava.Activity, opts Options) (streams.Record, activity.Class, error) {
	class, err := activity.Classify(act.Name, act.SportType)
	if err != nil {
		return streams.Record{}, "", err
	}

	set, err := p.fetchStreams(ctx, logger, act.ID, class, opts.UseCache)
	if err != nil {
		return streams.Record{}, class, services.Wrap(services.ErrTransient, "fetch", "activity streams",
			fmt.Sprintf("activity %d", act.ID), err)
	}

	return streams.BuildRecord(act.Metadata(), class, set.Raw(), opts.Interval), class, nil
}

// fetchStreams serves the raw payload from the cache when possible and
// falls back to the API. Fetched payloads are stored for the next run; a
// payload that no longer decodes is refetched rather than trusted.
func (p *Pipeline) fetchStreams(ctx context.Context, logger *slog.Logger, id int64, class activity.Class, useCache bool) (strava.StreamSet, error) {
	keys := activity.FetchKeys(class)
	fingerprint := streamcache.Fingerprint(keys)

	if useCache && p.cache != nil {
		if payload, ok := p.cache.Lookup(id, fingerprint); ok {
			var set strava.StreamSet
			err := json.Unmarshal(payload, &set)
			if err == nil {
				logger.Debug("stream cache hit", logging.String("fingerprint", fingerprint))
				return set, nil
			}
			logger.Warn("cached payload no longer decodes, refetching",
				logging.String("fingerprint", fingerprint),
				logging.Error(err))
		}
	}

	set, err := p.source.ActivityStreams(ctx, id, keys)
	if err != nil {
		return nil, err
	}

	if useCache && p.cache != nil {
		payload, err := json.Marshal(set)
		if err == nil {
			if err := p.cache.Store(id, fingerprint, payload); err != nil {
				logger.Warn("failed to cache stream payload", logging.Error(err))
			}
		}
	}
	return set, nil
}

func personLabel(person string) string {
	person = strings.TrimSpace(person)
	if person == "" {
		return "all"
	}
	return strings.ToUpper(person)
}
