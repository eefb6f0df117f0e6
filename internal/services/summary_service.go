package services

import (
	"context"
	"time"

	"github.com/cqroot/openstack-swift-exporter/internal/aggregation"
	"github.com/cqroot/openstack-swift-exporter/internal/config"
	"github.com/cqroot/openstack-swift-exporter/internal/logging"
	"github.com/cqroot/openstack-swift-exporter/internal/metrics"
	"github.com/cqroot/openstack-swift-exporter/internal/models"
	"github.com/cqroot/openstack-swift-exporter/internal/ringbuilder"
	"github.com/google/uuid"
)

// SummaryService builds the swift exporter's summary file from the ring builders
type SummaryService struct {
	logger *logging.Logger
	cfg    config.Config
	now    func() time.Time
}

// RunResult describes a finished run
type RunResult struct {
	RunID    string
	Info     *models.SwiftInfo
	Stats    map[models.Ring]aggregation.Stats
	Duration time.Duration
}

// NewSummaryService creates a new SummaryService
func NewSummaryService(logger *logging.Logger, cfg config.Config) *SummaryService {
	if logger == nil {
		logger = logging.Global()
	}
	return &SummaryService{
		logger: logger,
		cfg:    cfg,
		now:    time.Now,
	}
}

// Run summarizes all rings and writes the summary file. Any error aborts
// the run; nothing is written unless every ring was summarized.
func (s *SummaryService) Run(ctx context.Context) (*RunResult, error) {
	start := s.now()
	runID := uuid.New().String()
	ctx = logging.WithRunID(logging.WithLogger(ctx, s.logger), runID)

	logging.InfoCtx(ctx, "Summarizing swift rings",
		"swift_dir", s.cfg.Swift.Dir, "output", s.cfg.Output.Path)

	info, stats, err := s.Summarize(ctx)
	if err != nil {
		return nil, err
	}

	if err := WriteSwiftInfo(s.cfg.Output.Path, info, s.cfg.Output.Atomic); err != nil {
		se := NewServiceErrorWithDetails(CodeSinkUnwritable, "summary file is not writable",
			map[string]interface{}{"path": s.cfg.Output.Path})
		se.Err = err
		return nil, se
	}

	finished := s.now()
	result := &RunResult{
		RunID:    runID,
		Info:     info,
		Stats:    stats,
		Duration: finished.Sub(start),
	}

	fields := []interface{}{"path", s.cfg.Output.Path, "duration", result.Duration}
	for _, ring := range models.Rings {
		fields = append(fields, string(ring)+"_hosts", len(info.Get(ring)))
	}
	logging.InfoCtx(ctx, "Summary written", fields...)

	if s.cfg.MetricsEnabled() {
		s.writeMetrics(ctx, result, finished)
	}

	return result, nil
}

// Summarize loads and aggregates every ring without writing anything
func (s *SummaryService) Summarize(ctx context.Context) (*models.SwiftInfo, map[models.Ring]aggregation.Stats, error) {
	format, err := ringbuilder.ParseFormat(s.cfg.Swift.Format)
	if err != nil {
		return nil, nil, NewServiceError(CodeSourceMalformed, err.Error())
	}

	info := models.NewSwiftInfo()
	stats := make(map[models.Ring]aggregation.Stats, len(models.Rings))

	for _, ring := range models.Rings {
		if err := ctx.Err(); err != nil {
			return nil, nil, &ServiceError{Code: CodeCanceled, Message: "summary run canceled", Err: err}
		}

		records, ringStats, err := s.summarizeRing(ctx, ring, format)
		if err != nil {
			return nil, nil, err
		}
		if err := info.Set(ring, records); err != nil {
			return nil, nil, err
		}
		stats[ring] = ringStats
	}

	return info, stats, nil
}

func (s *SummaryService) summarizeRing(ctx context.Context, ring models.Ring, format ringbuilder.Format) ([]models.HostRecord, aggregation.Stats, error) {
	ctx = logging.WithRing(ctx, string(ring))
	path := s.cfg.RingPath(string(ring))

	builder, err := ringbuilder.Load(path, ringbuilder.LoadOptions{
		Format:        format,
		RequireDevice: ring.CollectsDevices(),
	})
	if err != nil {
		return nil, aggregation.Stats{}, wrapSourceError(string(ring), path, err)
	}

	records, stats, err := aggregation.AggregateDevices(builder.Devs, aggregation.Options{
		WithDevices: ring.CollectsDevices(),
		StrictPorts: s.cfg.Validation.StrictPorts,
		Logger:      logging.FromContext(ctx).WithContext(ctx),
	})
	if err != nil {
		return nil, stats, wrapSourceError(string(ring), path, err)
	}

	logging.DebugCtx(ctx, "Ring summarized",
		"path", path,
		"hosts", stats.Hosts,
		"active", stats.Active,
		"inactive", stats.Inactive,
		"holes", stats.Holes)

	return records, stats, nil
}

func (s *SummaryService) writeMetrics(ctx context.Context, result *RunResult, finished time.Time) {
	m := metrics.NewRunMetrics()
	for ring, st := range result.Stats {
		m.ObserveRing(string(ring), metrics.RingCounts{
			Hosts:         st.Hosts,
			Active:        st.Active,
			Inactive:      st.Inactive,
			Holes:         st.Holes,
			PortConflicts: st.PortConflicts,
		})
	}
	m.ObserveSuccess(finished, result.Duration)

	// Metrics never fail a run whose summary is already written
	if err := m.WriteTextfile(s.cfg.Metrics.TextfilePath); err != nil {
		logging.WarnCtx(ctx, "Failed to write run metrics", "error", err)
	}
}
