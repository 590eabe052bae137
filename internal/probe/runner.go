package probe

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"watchdog/internal/config"
)

// Runner executes all tests of a group concurrently and aggregates the
// cycle outcome: ok iff every test succeeded.
type Runner struct {
	logger *zap.Logger
}

func NewRunner(logger *zap.Logger) *Runner {
	return &Runner{
		logger: logger,
	}
}

func (r *Runner) RunGroup(ctx context.Context, group config.Group) Outcome {
	g, groupCtx := errgroup.WithContext(ctx)

	for _, test := range group.Tests {
		g.Go(func() error {
			prober, err := ForTest(test)
			if err != nil {
				return err
			}
			testCtx, cancel := context.WithTimeout(groupCtx, test.Timeout)
			defer cancel()
			if err = prober.Check(testCtx, test.Target); err != nil {
				r.logger.Debug("test failed",
					zap.String("group", group.Name),
					zap.String("test", test.Raw()),
					zap.Error(err))
				return err
			}
			return nil
		})
	}

	err := g.Wait()
	return Outcome{
		Group:     group.Name,
		OK:        err == nil,
		Timestamp: time.Now(),
	}
}
