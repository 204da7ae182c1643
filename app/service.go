// Package app wires the configured backends together and drives simulation
// runs through their full lifecycle: resolve, convert, launch, record,
// extract.
package app

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/dongqi-wu/reisego/config"
	"github.com/dongqi-wu/reisego/core/convert"
	"github.com/dongqi-wu/reisego/core/extract"
	corelauncher "github.com/dongqi-wu/reisego/core/launcher"
	coremetrics "github.com/dongqi-wu/reisego/core/metrics"
	"github.com/dongqi-wu/reisego/core/model"
	"github.com/dongqi-wu/reisego/core/monitoring"
	"github.com/dongqi-wu/reisego/core/notify"
	"github.com/dongqi-wu/reisego/core/registry"
	"github.com/dongqi-wu/reisego/core/tracking"
	_ "github.com/dongqi-wu/reisego/infra/convert"
	_ "github.com/dongqi-wu/reisego/infra/extract"
	_ "github.com/dongqi-wu/reisego/infra/launcher"
	"github.com/dongqi-wu/reisego/infra/logger"
	inframetrics "github.com/dongqi-wu/reisego/infra/metrics"
	infranotify "github.com/dongqi-wu/reisego/infra/notify"
	_ "github.com/dongqi-wu/reisego/infra/registry"
	_ "github.com/dongqi-wu/reisego/infra/tracking"
	"github.com/dongqi-wu/reisego/internal/eventbus"
	"github.com/google/uuid"
)

// Service orchestrates simulation runs against the configured backends.
type Service struct {
	cfg       *config.Config
	store     registry.ScenarioStore
	tracker   tracking.Tracker
	converter convert.Converter
	extractor extract.Extractor
	sink      coremetrics.MetricsSink
	notifier  notify.Notifier
	progress  *eventbus.Bus[corelauncher.Progress]
	log       logger.Logger
	promOnce  sync.Once
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	store, err := registry.NewStore(cfg.Registry)
	if err != nil {
		return nil, fmt.Errorf("scenario store: %w", err)
	}
	tracker, err := tracking.NewTracker(cfg.Tracking)
	if err != nil {
		return nil, fmt.Errorf("tracker: %w", err)
	}
	converter, err := convert.NewConverter(cfg.Convert)
	if err != nil {
		return nil, fmt.Errorf("converter: %w", err)
	}
	extractor, err := extract.NewExtractor(cfg.Extract)
	if err != nil {
		return nil, fmt.Errorf("extractor: %w", err)
	}
	sink, err := coremetrics.NewMetricsSink(cfg.Metrics.Sinks)
	if err != nil {
		return nil, fmt.Errorf("metrics sink: %w", err)
	}
	notifier, err := infranotify.New(cfg.Notifier)
	if err != nil {
		return nil, fmt.Errorf("notifier: %w", err)
	}
	return &Service{
		cfg:       cfg,
		store:     store,
		tracker:   tracker,
		converter: converter,
		extractor: extractor,
		sink:      sink,
		notifier:  notifier,
		progress:  eventbus.New[corelauncher.Progress](),
		log:       logger.New("service"),
	}, nil
}

// Run executes one simulation run to completion and returns its report.
// Scenario-driven runs mirror their lifecycle into the tracking stores; when
// anything fails after resolution started, the execute store is marked
// failed before the error is returned.
func (s *Service) Run(ctx context.Context, params model.RunParams) (*model.RunReport, error) {
	if port := s.cfg.Metrics.PrometheusPort; port != "" {
		s.promOnce.Do(func() {
			go func() {
				if err := inframetrics.StartPromServer(ctx, ":"+port); err != nil {
					s.log.Errorf("prom server: %v", err)
				}
			}()
		})
	}

	runID := uuid.NewString()
	report, err := s.run(ctx, runID, params)
	if err != nil {
		s.log.Errorf("run %s: %v", runID, err)
		if params.ScenarioID != "" {
			s.markFailed(ctx, params.ScenarioID)
		}
		monitoring.CaptureException(err, monitoring.RunTags(params.ScenarioID, solverName(params)))
		s.recordRun(coremetrics.RunEvent{
			RunID:      runID,
			ScenarioID: params.ScenarioID,
			Solver:     solverName(params),
			Status:     model.StatusFailed,
			Time:       time.Now(),
		})
		return nil, err
	}
	return report, nil
}

func (s *Service) run(ctx context.Context, runID string, params model.RunParams) (*model.RunReport, error) {
	params, err := s.resolve(ctx, params)
	if err != nil {
		return nil, err
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	start, end, err := params.Span()
	if err != nil {
		return nil, err
	}
	intervalH, err := model.ParseInterval(params.Interval)
	if err != nil {
		return nil, err
	}

	convStart := time.Now()
	if err := s.converter.Convert(ctx, params.InputDir); err != nil {
		return nil, fmt.Errorf("convert: %w", err)
	}
	s.recordStage(params.ScenarioID, coremetrics.StageConvert, time.Since(convStart).Seconds())

	scenarioDriven := params.ScenarioID != ""
	if scenarioDriven {
		if err := s.tracker.UpdateStatus(ctx, params.ScenarioID, model.StatusRunning); err != nil {
			return nil, fmt.Errorf("mark running: %w", err)
		}
		s.notifyStatus(ctx, params.ScenarioID, model.StatusRunning)
	}

	juliaEnv := params.JuliaEnv
	if juliaEnv == "" {
		juliaEnv = s.cfg.Engine.DefaultEnv
	}
	l, err := corelauncher.New(params.Solver, corelauncher.Params{
		ScenarioID: params.ScenarioID,
		Start:      start,
		End:        end,
		IntervalH:  intervalH,
		InputDir:   params.InputDir,
		Threads:    params.Threads,
		JuliaEnv:   juliaEnv,
	}, corelauncher.Deps{
		JuliaBin: s.cfg.Engine.JuliaBin,
		Progress: s.progress,
		Log:      s.log,
	})
	if err != nil {
		return nil, err
	}

	stop := s.forwardProgress(ctx, solverName(params))
	startedAt := time.Now()
	res, err := l.Launch(ctx)
	stop()
	if err != nil {
		return nil, fmt.Errorf("launch: %w", err)
	}
	s.recordStage(params.ScenarioID, coremetrics.StageLaunch, time.Since(startedAt).Seconds())
	s.log.Infof("simulation finished in %s", tracking.FormatRuntime(res.Runtime))

	if scenarioDriven {
		if err := s.tracker.UpdateStatus(ctx, params.ScenarioID, model.StatusFinished); err != nil {
			return nil, fmt.Errorf("mark finished: %w", err)
		}
		if err := s.tracker.UpdateRuntime(ctx, params.ScenarioID, tracking.FormatRuntime(res.Runtime)); err != nil {
			return nil, fmt.Errorf("record runtime: %w", err)
		}
		s.notifyStatus(ctx, params.ScenarioID, model.StatusFinished)
	}

	if params.ExtractData {
		exStart := time.Now()
		err := s.extractor.Extract(ctx, extract.Request{
			InputDir:        params.InputDir,
			Start:           start,
			End:             end,
			ScenarioID:      params.ScenarioID,
			OutputDir:       params.OutputDir,
			KeepEngineFiles: params.KeepMatlab,
		})
		if err != nil {
			return nil, fmt.Errorf("extract: %w", err)
		}
		s.recordStage(params.ScenarioID, coremetrics.StageExtract, time.Since(exStart).Seconds())
	}

	finishedAt := time.Now()
	report := &model.RunReport{
		RunID:      runID,
		ScenarioID: params.ScenarioID,
		Solver:     solverName(params),
		StartedAt:  startedAt,
		FinishedAt: finishedAt,
		Runtime:    res.Runtime,
		Intervals:  res.Intervals,
		Warnings:   res.Warnings,
	}
	if err := s.writeReport(params.OutputDir, report); err != nil {
		return nil, err
	}
	s.recordRun(coremetrics.RunEvent{
		RunID:      runID,
		ScenarioID: params.ScenarioID,
		Solver:     report.Solver,
		Status:     model.StatusFinished,
		Runtime:    res.Runtime,
		Time:       finishedAt,
	})
	return report, nil
}

// resolve fetches the scenario tuple when a scenario id is given and lets it
// overwrite the caller's parameters; the output directory is then forced to
// the configured output root. Without a scenario id the flags stand, with
// only the output-root default applied.
func (s *Service) resolve(ctx context.Context, params model.RunParams) (model.RunParams, error) {
	if params.ScenarioID != "" {
		sc, err := s.store.Get(ctx, params.ScenarioID)
		if err != nil {
			return params, fmt.Errorf("scenario %s: %w", params.ScenarioID, err)
		}
		params.StartDate = sc.StartDate
		params.EndDate = sc.EndDate
		params.Interval = sc.Interval
		params.InputDir = sc.InputDir
		params.OutputDir = s.cfg.Paths.OutputDir
	}
	if params.OutputDir == "" {
		params.OutputDir = s.cfg.Paths.OutputDir
	}
	return params, nil
}

// forwardProgress relays engine progress to the notifier and the interval
// metrics while a launch is in flight. The returned stop function drains the
// subscription before returning.
func (s *Service) forwardProgress(ctx context.Context, solver string) func() {
	sub := s.progress.Subscribe()
	done := make(chan struct{})
	go func() {
		defer close(done)
		for ev := range sub {
			if err := s.notifier.NotifyProgress(ctx, ev.ScenarioID, ev.Interval, ev.Total); err != nil {
				s.log.Warnf("notify progress: %v", err)
			}
			rec, ok := s.sink.(coremetrics.IntervalRecorder)
			if !ok {
				continue
			}
			iev := coremetrics.IntervalEvent{
				ScenarioID: ev.ScenarioID,
				Solver:     solver,
				Interval:   ev.Interval,
				Seconds:    ev.Elapsed.Seconds(),
				Time:       time.Now(),
			}
			if err := rec.RecordInterval(iev); err != nil {
				s.log.Errorf("record interval: %v", err)
			}
		}
	}()
	return func() {
		s.progress.Unsubscribe(sub)
		<-done
	}
}

// markFailed is best-effort: its own error is logged, never propagated over
// the run error. It runs on a detached context so a cancelled run still gets
// its status recorded.
func (s *Service) markFailed(ctx context.Context, scenarioID string) {
	ctx = context.WithoutCancel(ctx)
	if err := s.tracker.UpdateStatus(ctx, scenarioID, model.StatusFailed); err != nil {
		s.log.Errorf("mark %s failed: %v", scenarioID, err)
	}
	s.notifyStatus(ctx, scenarioID, model.StatusFailed)
}

// writeReport drops the run summary next to the staged results. Runs without
// an output directory skip it.
func (s *Service) writeReport(dir string, report *model.RunReport) error {
	if dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("report dir: %w", err)
	}
	doc := struct {
		model.RunReport
		Timing model.TimingSummary `json:"timing"`
	}{*report, report.TimingSummary()}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	path := filepath.Join(dir, "run_"+report.RunID+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	s.log.Infof("run report written to %s", path)
	return nil
}

func (s *Service) notifyStatus(ctx context.Context, scenarioID, status string) {
	if err := s.notifier.NotifyStatus(ctx, scenarioID, status); err != nil {
		s.log.Warnf("notify %s: %v", status, err)
	}
}

func (s *Service) recordRun(ev coremetrics.RunEvent) {
	if err := s.sink.RecordRun(ev); err != nil {
		s.log.Errorf("record run: %v", err)
	}
}

func (s *Service) recordStage(scenarioID, stage string, seconds float64) {
	rec, ok := s.sink.(coremetrics.StageRecorder)
	if !ok {
		return
	}
	ev := coremetrics.StageEvent{ScenarioID: scenarioID, Stage: stage, Seconds: seconds, Time: time.Now()}
	if err := rec.RecordStage(ev); err != nil {
		s.log.Errorf("record stage %s: %v", stage, err)
	}
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	s.progress.Close()
	if err := s.notifier.Close(); err != nil {
		s.log.Errorf("close notifier: %v", err)
	}
	if c, ok := s.sink.(interface{ Close() }); ok {
		c.Close()
	}
	return s.tracker.Close()
}

func solverName(p model.RunParams) string {
	name := strings.ToLower(strings.TrimSpace(p.Solver))
	if name == "" {
		return corelauncher.DefaultSolver
	}
	return name
}
