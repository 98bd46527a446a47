package schedule

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"polyglotpress/lexicon/pkg/config"
	"polyglotpress/lexicon/pkg/pipeline"
	"polyglotpress/lexicon/pkg/telemetry/metrics"
)

// Daemon runs pipeline stages on a schedule. Generation and polish runs are
// driven by cron expressions; an optional drafts watcher triggers an extra
// polish run when new drafts appear.
type Daemon struct {
	cfg     *config.Config
	pipe    *pipeline.Pipeline
	metrics *metrics.Collector
	cron    *cron.Cron
	logger  *slog.Logger

	mu      sync.Mutex
	running bool
}

// New creates a daemon around an existing pipeline.
func New(cfg *config.Config, pipe *pipeline.Pipeline, collector *metrics.Collector) *Daemon {
	if collector == nil {
		collector = metrics.NewCollector(metrics.Config{Enabled: false})
	}
	return &Daemon{
		cfg:     cfg,
		pipe:    pipe,
		metrics: collector,
		cron:    cron.New(),
		logger:  slog.Default().With("component", "schedule.daemon"),
	}
}

// Run starts the cron entries, the drafts watcher, and the metrics listener,
// then blocks until the context is cancelled. Cron expressions are validated
// up front so a typo fails at startup rather than silently never firing.
func (d *Daemon) Run(ctx context.Context) error {
	d.mu.Lock()
	if d.running {
		d.mu.Unlock()
		return errors.New("daemon already running")
	}
	d.running = true
	d.mu.Unlock()
	defer func() {
		d.mu.Lock()
		d.running = false
		d.mu.Unlock()
	}()

	if err := d.addJobs(ctx); err != nil {
		return err
	}

	var wg sync.WaitGroup
	watchCtx, cancelWatch := context.WithCancel(ctx)
	defer cancelWatch()

	if d.cfg.Schedule.WatchDrafts {
		watcher, err := NewDraftsWatcher(d.cfg.Output.Dir, d.cfg.Schedule.DebounceInterval)
		if err != nil {
			return err
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer watcher.Close()
			watcher.Watch(watchCtx, func() {
				d.runPolish(ctx, "drafts watcher")
			})
		}()
	}

	var server *http.Server
	if addr := d.cfg.Schedule.MetricsListen; addr != "" {
		mux := http.NewServeMux()
		mux.Handle(d.cfg.Telemetry.Metrics.Path, d.metrics.Handler())
		server = &http.Server{Addr: addr, Handler: mux}

		wg.Add(1)
		go func() {
			defer wg.Done()
			d.logger.Info("metrics listener started",
				"addr", addr,
				"path", d.cfg.Telemetry.Metrics.Path,
			)
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				d.logger.Error("metrics listener failed", "error", err)
			}
		}()
	}

	d.cron.Start()
	d.logger.Info("daemon started",
		"generate_cron", d.cfg.Schedule.GenerateCron,
		"polish_cron", d.cfg.Schedule.PolishCron,
		"watch_drafts", d.cfg.Schedule.WatchDrafts,
	)

	<-ctx.Done()

	stopCtx := d.cron.Stop()
	<-stopCtx.Done() // wait for in-flight jobs

	if server != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			d.logger.Error("metrics listener shutdown failed", "error", err)
		}
	}

	cancelWatch()
	wg.Wait()

	d.logger.Info("daemon stopped")
	return nil
}

// addJobs validates and registers the cron entries. An empty expression
// disables that stage's schedule.
func (d *Daemon) addJobs(ctx context.Context) error {
	if expr := d.cfg.Schedule.GenerateCron; expr != "" {
		if _, err := cron.ParseStandard(expr); err != nil {
			return fmt.Errorf("invalid generate cron %q: %w", expr, err)
		}
		if _, err := d.cron.AddFunc(expr, func() { d.runGenerate(ctx) }); err != nil {
			return fmt.Errorf("failed to schedule generation: %w", err)
		}
	}

	if expr := d.cfg.Schedule.PolishCron; expr != "" {
		if _, err := cron.ParseStandard(expr); err != nil {
			return fmt.Errorf("invalid polish cron %q: %w", expr, err)
		}
		if _, err := d.cron.AddFunc(expr, func() { d.runPolish(ctx, "cron") }); err != nil {
			return fmt.Errorf("failed to schedule polishing: %w", err)
		}
	}

	return nil
}

func (d *Daemon) runGenerate(ctx context.Context) {
	d.logger.Info("scheduled generation run starting")
	result, err := d.pipe.RunGenerate(ctx)
	if err != nil {
		d.logger.Error("scheduled generation run failed", "error", err)
		return
	}
	d.logger.Info("scheduled generation run finished",
		"succeeded", result.Succeeded,
		"failed", result.Failed,
	)
}

func (d *Daemon) runPolish(ctx context.Context, trigger string) {
	d.logger.Info("scheduled polish run starting", "trigger", trigger)
	result, err := d.pipe.RunPolish(ctx, pipeline.PolishOptions{})
	if err != nil {
		d.logger.Error("scheduled polish run failed", "trigger", trigger, "error", err)
		return
	}
	d.logger.Info("scheduled polish run finished",
		"trigger", trigger,
		"polished", len(result.Polished),
		"requests_used", result.RequestsUsed,
		"stopped", result.Stopped,
	)
}

// NextRuns returns the scheduled fire times of all registered entries,
// soonest first.
func (d *Daemon) NextRuns() []time.Time {
	entries := d.cron.Entries()
	times := make([]time.Time, 0, len(entries))
	for _, e := range entries {
		times = append(times, e.Next)
	}
	return times
}
