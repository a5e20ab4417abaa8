package audit

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

type Purger interface {
	Purge(ctx context.Context, cutoff time.Time) (int64, error)
}

// Retention periodically deletes audit entries older than maxAge.
type Retention struct {
	cron   *cron.Cron
	purger Purger
	maxAge time.Duration
	log    *zap.Logger
	now    func() time.Time
}

func NewRetention(purger Purger, maxAge time.Duration, spec string, log *zap.Logger) (*Retention, error) {
	r := &Retention{
		cron:   cron.New(),
		purger: purger,
		maxAge: maxAge,
		log:    log.With(zap.String("component", "audit_retention")),
		now:    time.Now,
	}

	if _, err := r.cron.AddFunc(spec, r.run); err != nil {
		return nil, fmt.Errorf("schedule audit retention %q: %w", spec, err)
	}
	return r, nil
}

func (r *Retention) Start() {
	r.cron.Start()
	r.log.Info("audit retention scheduled", zap.Duration("max_age", r.maxAge))
}

// Stop waits for a running purge to finish.
func (r *Retention) Stop() {
	<-r.cron.Stop().Done()
}

func (r *Retention) run() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	n, err := r.purger.Purge(ctx, r.now().Add(-r.maxAge))
	if err != nil {
		r.log.Error("audit purge failed", zap.Error(err))
		return
	}
	r.log.Info("audit purge done", zap.Int64("deleted", n))
}
