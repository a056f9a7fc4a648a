// Package service runs the player dataset cleaning job: it loads the raw
// table, runs the imputation stages in order, persists the result and
// reports the nulls left in the persisted file.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/okian/fifaclean/internal/adapters/repository"
	"github.com/okian/fifaclean/internal/domain/dedupe"
	"github.com/okian/fifaclean/internal/domain/impute"
	"github.com/okian/fifaclean/internal/domain/model"
	"github.com/okian/fifaclean/internal/domain/types"
	"github.com/okian/fifaclean/pkg/logger"
	"github.com/okian/fifaclean/pkg/metrics"
)

// Service owns one cleaning job.
type Service struct {
	mu    sync.RWMutex
	state State

	// Core components
	input   repository.Store
	output  repository.Store
	imputer *impute.Imputer
	metrics *metrics.Manager

	// Configuration
	outputName   string
	metricsPath  string
	reportWriter io.Writer

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithImputer sets the imputation policy.
func WithImputer(im *impute.Imputer) Option {
	return func(s *Service) {
		if im != nil {
			s.imputer = im
		}
	}
}

// WithMetrics sets the metrics manager. Defaults to the global manager.
func WithMetrics(m *metrics.Manager) Option {
	return func(s *Service) {
		if m != nil {
			s.metrics = m
		}
	}
}

// WithMetricsPath makes Run dump the metrics registry to path when it ends.
func WithMetricsPath(path string) Option {
	return func(s *Service) {
		s.metricsPath = path
	}
}

// WithReportWriter sets where the null report table is rendered.
func WithReportWriter(w io.Writer) Option {
	return func(s *Service) {
		if w != nil {
			s.reportWriter = w
		}
	}
}

// WithOutputName sets the output location shown in logs and summaries.
func WithOutputName(name string) Option {
	return func(s *Service) {
		s.outputName = name
	}
}

// New constructs a Service reading raw rows from input and persisting the
// cleaned table to output.
func New(input, output repository.Store, opts ...Option) *Service {
	s := &Service{
		input:        input,
		output:       output,
		imputer:      impute.New(),
		metrics:      metrics.Default(),
		reportWriter: os.Stdout,
		state:        StateIdle,
	}
	if named, ok := output.(interface{ Path() string }); ok {
		s.outputName = named.Path()
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}
	s.logger = s.logger.Named("pipeline")

	return s
}

// State returns the last state the cleaning run reached.
func (s *Service) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *Service) setState(st State) {
	s.mu.Lock()
	s.state = st
	s.mu.Unlock()
}

// Run cleans the dataset and then reports residual nulls from the
// persisted file. Both steps always run in that order; the first error
// aborts the run.
func (s *Service) Run(ctx context.Context) error {
	defer s.dumpMetrics(ctx)

	if _, err := s.Clean(ctx); err != nil {
		return err
	}
	if _, err := s.Report(ctx); err != nil {
		return err
	}
	return nil
}

// Clean loads the raw table, runs every imputation stage and persists the
// result. Any failure aborts the run; nothing is retried and a partially
// written output is not cleaned up.
func (s *Service) Clean(ctx context.Context) (*types.RunSummary, error) {
	runID := uuid.NewString()
	log := s.logger.With(logger.String("run_id", runID))
	summary := &types.RunSummary{RunID: runID, Output: s.outputName}

	log.Info(ctx, "cleaning run started")

	s.setState(StateLoad)
	began := time.Now()
	tbl, err := s.input.Load(ctx)
	if err != nil {
		return nil, s.fail(ctx, log, StateLoad, err)
	}
	s.metrics.RecordStageDuration(StateLoad.String(), time.Since(began))
	s.metrics.RecordRowsLoaded(tbl.Len())
	summary.Rows = tbl.Len()
	log.Info(ctx, "table loaded", logger.Int("rows", tbl.Len()), logger.Int("columns", len(tbl.Names())))

	dups, err := dedupe.FindDuplicates(ctx, tbl)
	if err != nil {
		return nil, s.fail(ctx, log, StateLoad, err)
	}
	if len(dups) > 0 {
		s.metrics.RecordDuplicateObservations(len(dups))
		summary.Duplicates = len(dups)
		log.Warn(ctx, "repeated player-year observations kept",
			logger.Int("count", len(dups)),
			logger.String("first_key", dups[0].Key),
			logger.Int("first_row", dups[0].Row),
		)
	}

	for _, st := range stages(s.imputer) {
		if err := ctx.Err(); err != nil {
			return nil, s.fail(ctx, log, st.state, err)
		}
		s.setState(st.state)

		began := time.Now()
		next, res, err := st.run(ctx, tbl)
		if err != nil {
			return nil, s.fail(ctx, log, st.state, err)
		}
		took := time.Since(began)
		tbl = next

		s.metrics.RecordStageDuration(st.state.String(), took)
		for column, n := range res.Changed {
			s.metrics.RecordCellsImputed(st.state.String(), column, n)
		}
		failed := 0
		for column, n := range res.Failed {
			s.metrics.RecordParseFailures(column, n)
			failed += n
		}
		summary.Stages = append(summary.Stages, types.StageSummary{
			Stage:    st.state.String(),
			Changed:  res.Changed,
			Failed:   res.Failed,
			Duration: took,
		})
		log.Info(ctx, "stage finished",
			logger.String("stage", st.state.String()),
			logger.Int("changed", res.Total()),
			logger.Int("unparseable", failed),
			logger.Duration("took", took),
		)
	}

	s.setState(StatePersist)
	began = time.Now()
	if err := s.output.Save(ctx, tbl); err != nil {
		return nil, s.fail(ctx, log, StatePersist, err)
	}
	s.metrics.RecordStageDuration(StatePersist.String(), time.Since(began))
	s.setState(StatePersisted)
	s.metrics.RecordRun(metrics.OutcomeSuccess, time.Now())

	log.Info(ctx, "cleaned dataset saved", logger.String("output", s.outputName), logger.Int("rows", tbl.Len()))
	logSummary(ctx, log, summary)
	return summary, nil
}

// logSummary writes one line with the run totals and the per-stage detail
// encoded as JSON.
func logSummary(ctx context.Context, log logger.Logger, summary *types.RunSummary) {
	fields := []logger.Field{
		logger.Int("rows", summary.Rows),
		logger.Int("duplicates", summary.Duplicates),
		logger.Int("changed", summary.Changed()),
		logger.Int("unparseable", summary.Unparseable()),
		logger.Int("stages", len(summary.Stages)),
	}
	if raw, err := json.Marshal(summary); err == nil {
		fields = append(fields, logger.String("summary", string(raw)))
	}
	log.Info(ctx, "run summary", fields...)
}

func (s *Service) fail(ctx context.Context, log logger.Logger, st State, err error) error {
	s.metrics.RecordStageFailure(st.String())
	s.metrics.RecordRun(metrics.OutcomeFailure, time.Now())
	log.Error(ctx, "cleaning run aborted", logger.String("stage", st.String()), logger.Error(err))
	return fmt.Errorf("%w: %s: %w", ErrStageFailed, st, err)
}

func (s *Service) dumpMetrics(ctx context.Context) {
	if s.metricsPath == "" {
		return
	}
	if err := s.metrics.WriteTextfile(s.metricsPath); err != nil {
		s.logger.Warn(ctx, "metrics dump failed", logger.Error(err))
		return
	}
	s.logger.Debug(ctx, "metrics written", logger.String("path", s.metricsPath))
}

// nullEntries lists the columns of t that still hold absent cells, in
// schema order.
func nullEntries(t *model.Table) []types.NullEntry {
	var out []types.NullEntry
	for _, col := range t.Columns() {
		if n := col.Nulls(); n > 0 {
			out = append(out, types.NullEntry{Column: col.Name, NullCount: n, DataType: col.Kind.String()})
		}
	}
	return out
}
