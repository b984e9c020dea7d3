package session

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// DefaultSweepSpec задаёт расписание очистки истёкших сессий.
const DefaultSweepSpec = "@every 5m"

// Sweeper периодически удаляет истёкшие сессии.
type Sweeper struct {
	manager *Manager
	spec    string
	logger  *zap.Logger
	cron    *cron.Cron
}

// NewSweeper создаёт планировщик очистки по расписанию spec в формате cron.
func NewSweeper(manager *Manager, spec string, logger *zap.Logger) (*Sweeper, error) {
	s := &Sweeper{
		manager: manager,
		spec:    spec,
		logger:  logger,
		cron:    cron.New(cron.WithLocation(time.UTC)),
	}

	if _, err := s.cron.AddFunc(spec, s.sweep); err != nil {
		return nil, fmt.Errorf("schedule session sweep %q: %w", spec, err)
	}
	return s, nil
}

// Run запускает планировщик и блокируется до отмены ctx.
func (s *Sweeper) Run(ctx context.Context) error {
	s.logger.Info("starting session sweeper", zap.String("schedule", s.spec))
	s.cron.Start()

	<-ctx.Done()

	stopped := s.cron.Stop()
	<-stopped.Done()
	s.logger.Info("session sweeper stopped")
	return nil
}

func (s *Sweeper) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	n, err := s.manager.Sweep(ctx)
	if err != nil {
		s.logger.Error("session sweep failed", zap.Error(err))
		return
	}
	if n > 0 {
		s.logger.Info("expired sessions removed", zap.Int("count", n))
	}
}
