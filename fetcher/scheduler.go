package fetcher

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Scheduler triggers ingestion runs on a cron expression.
type Scheduler struct {
	cron *cron.Cron
	svc  *Service
	log  *zap.Logger
}

func NewScheduler(svc *Service, log *zap.Logger) *Scheduler {
	return &Scheduler{
		cron: cron.New(cron.WithLocation(time.UTC)),
		svc:  svc,
		log:  log,
	}
}

// Schedule registers a fetch job for the given cron expression.
func (s *Scheduler) Schedule(expr string) error {
	_, err := s.cron.AddFunc(expr, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()

		res := s.svc.Run(ctx)
		s.log.Info("scheduled fetch finished",
			zap.String("runID", res.RunID),
			zap.Int("records", res.RecordsStored),
			zap.Bool("fallback", res.Fallback))
	})
	return err
}

func (s *Scheduler) Start() { s.cron.Start() }

// Stop halts scheduling and waits for a running job to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}
