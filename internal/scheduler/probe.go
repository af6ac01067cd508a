package scheduler

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/bobby-s-dev/weather-lookup/internal/services"
)

const probeTimeout = 30 * time.Second

// Prober is the part of the gateway the scheduler exercises.
type Prober interface {
	Probe(ctx context.Context, city string) error
}

// Status is the last observed state of the upstream provider.
type Status struct {
	State     string    `json:"state"`
	Schedule  string    `json:"schedule,omitempty"`
	City      string    `json:"city,omitempty"`
	LastCheck time.Time `json:"last_check"`
	LastError string    `json:"last_error,omitempty"`
}

const (
	StateDemo        = "demo"
	StatePending     = "pending"
	StateDisabled    = "disabled"
	StateReachable   = "reachable"
	StateUnreachable = "unreachable"
)

// Scheduler periodically probes the upstream provider. Results are only
// reported through Status; lookups never consult them.
type Scheduler struct {
	prober   Prober
	logger   *zap.Logger
	city     string
	schedule string
	cron     *cron.Cron
	mu       sync.Mutex
	running  bool
	status   Status
}

func NewScheduler(prober Prober, schedule, city string, logger *zap.Logger) *Scheduler {
	state := StatePending
	if schedule == "" {
		state = StateDisabled
	}
	return &Scheduler{
		prober:   prober,
		logger:   logger,
		city:     city,
		schedule: schedule,
		cron:     cron.New(),
		status:   Status{State: state, Schedule: schedule, City: city},
	}
}

func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running || s.schedule == "" {
		return nil
	}

	if _, err := s.cron.AddFunc(s.schedule, s.runProbe); err != nil {
		return err
	}
	s.cron.Start()
	s.running = true

	s.logger.Info("Upstream probe scheduled",
		zap.String("schedule", s.schedule),
		zap.String("city", s.city))

	// Run immediately on start
	go s.runProbe()
	return nil
}

func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	s.mu.Unlock()

	s.logger.Info("Stopping upstream probe")
	<-s.cron.Stop().Done()
}

// ForceRun probes synchronously.
func (s *Scheduler) ForceRun() {
	s.runProbe()
}

func (s *Scheduler) runProbe() {
	ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
	defer cancel()

	startTime := time.Now()
	err := s.prober.Probe(ctx, s.city)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.status.LastCheck = startTime
	s.status.LastError = ""

	var gwErr *services.Error
	switch {
	case err == nil:
		s.status.State = StateReachable
	case errors.Is(err, services.ErrDemoMode):
		s.status.State = StateDemo
	case errors.As(err, &gwErr) && gwErr.Kind == services.KindNotFound:
		// The upstream answered; the probe city is just unknown to it.
		s.status.State = StateReachable
		s.status.LastError = gwErr.Message
	default:
		s.status.State = StateUnreachable
		s.status.LastError = err.Error()
	}

	if s.status.State == StateUnreachable {
		s.logger.Warn("Upstream probe failed",
			zap.String("city", s.city),
			zap.Duration("duration", time.Since(startTime)),
			zap.Error(err))
	} else {
		s.logger.Debug("Upstream probe completed",
			zap.String("state", s.status.State),
			zap.Duration("duration", time.Since(startTime)))
	}
}

func (s *Scheduler) GetStatus() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}
