package relay

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"watchdog/internal/config"
	"watchdog/internal/probe"
)

var ErrRegionNotFound = errors.New("region not found in server configuration")

// Engine drives one region: it schedules every group of the region at the
// region interval, batches cycle outcomes, pushes them to the server and
// polls for configuration changes.
type Engine struct {
	logger       *zap.Logger
	client       ServerClient
	runner       *probe.Runner
	regionName   string
	pollInterval time.Duration
	batch        *Batch

	mu         sync.Mutex
	scheduler  gocron.Scheduler
	snapshot   *config.Config
	groupJobs  []uuid.UUID
	generation uint64
}

func NewEngine(logger *zap.Logger, client ServerClient, regionName string, pollInterval time.Duration) *Engine {
	return &Engine{
		logger:       logger,
		client:       client,
		runner:       probe.NewRunner(logger),
		regionName:   regionName,
		pollInterval: pollInterval,
		batch:        NewBatch(DefaultBatchCap),
	}
}

// Run fetches the initial configuration, starts the group tickers and the
// config poller, and blocks until the context is cancelled. Auth failures
// and an unknown region name are fatal here; everything after startup is
// retried on the next tick.
func (e *Engine) Run(ctx context.Context) error {
	cfg, err := e.client.FetchConfig(ctx)
	if err != nil {
		return fmt.Errorf("Engine.Run fetching configuration: %w", err)
	}
	region := cfg.Region(e.regionName)
	if region == nil {
		return fmt.Errorf("%w: %s", ErrRegionNotFound, e.regionName)
	}

	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return fmt.Errorf("Engine.Run creating scheduler: %w", err)
	}
	e.scheduler = scheduler

	e.installRegion(ctx, cfg, region)

	_, err = scheduler.NewJob(
		gocron.DurationJob(e.pollInterval),
		gocron.NewTask(e.pollConfig, ctx),
	)
	if err != nil {
		return fmt.Errorf("Engine.Run creating config poller: %w", err)
	}

	scheduler.Start()
	e.logger.Info("relay is up",
		zap.String("region", e.regionName),
		zap.Int("groups", len(region.Groups)),
		zap.Duration("interval", region.Interval.Std()))

	<-ctx.Done()
	return scheduler.Shutdown()
}

// installRegion swaps the active region snapshot: existing group tickers
// are removed, batches of removed groups discarded, new tickers installed.
// Bumping the generation invalidates cycles already in flight, their
// outcomes belong to the replaced configuration.
func (e *Engine) installRegion(ctx context.Context, cfg *config.Config, region *config.Region) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.generation++

	for _, jobID := range e.groupJobs {
		if err := e.scheduler.RemoveJob(jobID); err != nil {
			e.logger.Warn("could not remove group ticker", zap.Error(err))
		}
	}
	e.groupJobs = e.groupJobs[:0]

	surviving := make(map[string]struct{}, len(region.Groups))
	for _, group := range region.Groups {
		surviving[group.Name] = struct{}{}
	}
	for _, pending := range e.batch.Groups() {
		if _, keep := surviving[pending]; !keep {
			e.batch.Drop(pending)
		}
	}

	e.snapshot = cfg

	for _, group := range region.Groups {
		job, err := e.scheduler.NewJob(
			gocron.DurationJob(region.Interval.Std()),
			gocron.NewTask(e.runCycle, ctx, group),
			gocron.WithStartAt(gocron.WithStartImmediately()),
		)
		if err != nil {
			e.logger.Error("could not schedule group ticker",
				zap.String("group", group.Name),
				zap.Error(err))
			continue
		}
		e.groupJobs = append(e.groupJobs, job.ID())
	}
}

// runCycle is one group tick: run all tests, queue the outcome, try to
// deliver everything still pending for this group. An outcome whose cycle
// straddled a reconfigure is discarded, the group may no longer exist.
func (e *Engine) runCycle(ctx context.Context, group config.Group) {
	e.mu.Lock()
	generation := e.generation
	e.mu.Unlock()

	outcome := e.runner.RunGroup(ctx, group)

	e.mu.Lock()
	if generation != e.generation {
		e.mu.Unlock()
		e.logger.Debug("discarding outcome from a replaced configuration",
			zap.String("group", group.Name))
		return
	}
	e.batch.Add(outcome)
	e.mu.Unlock()

	e.flush(ctx, group.Name)
}

func (e *Engine) flush(ctx context.Context, group string) {
	pending := e.batch.Pending(group)
	if len(pending) == 0 {
		return
	}

	results := make([]GroupStatus, 0, len(pending))
	for _, outcome := range pending {
		status := StatusFail
		if outcome.OK {
			status = StatusOK
		}
		results = append(results, GroupStatus{Group: outcome.Group, Status: status})
	}

	if err := e.client.PushResults(ctx, e.regionName, results); err != nil {
		e.logger.Warn("could not push results, retaining batch",
			zap.String("group", group),
			zap.Int("pending", len(pending)),
			zap.Error(err))
		return
	}
	e.batch.Ack(group, len(pending))
}

// pollConfig compares the server's config hash with the applied one and
// reconfigures the tickers on change, without a process restart.
func (e *Engine) pollConfig(ctx context.Context) {
	cfg, err := e.client.FetchConfig(ctx)
	if err != nil {
		e.logger.Warn("could not poll configuration", zap.Error(err))
		return
	}

	e.mu.Lock()
	currentHash := e.snapshot.Hash
	e.mu.Unlock()

	if cfg.Hash == currentHash {
		return
	}

	region := cfg.Region(e.regionName)
	if region == nil {
		e.logger.Error("region removed from server configuration, keeping previous config",
			zap.String("region", e.regionName))
		return
	}

	e.logger.Info("configuration changed, reconfiguring tickers",
		zap.String("old_hash", currentHash),
		zap.String("new_hash", cfg.Hash),
		zap.Int("groups", len(region.Groups)))
	e.installRegion(ctx, cfg, region)
}
