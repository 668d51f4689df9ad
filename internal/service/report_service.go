package service

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/cdce-console/internal/clock"
	"github.com/spec-kit/cdce-console/internal/events"
	"github.com/spec-kit/cdce-console/internal/report"
	apperrors "github.com/spec-kit/cdce-console/pkg/util"
)

// ReportService runs report generation one request at a time and keeps
// the most recent result.
type ReportService struct {
	state      *State
	composer   *report.Composer
	clock      clock.Clock
	location   *time.Location
	dispatcher events.Dispatcher
	logger     *zap.Logger

	inFlight atomic.Bool
	mu       sync.RWMutex
	last     *report.Report
}

// NewReportService constructs the service. Manual dates are read in loc.
func NewReportService(deps Dependencies, composer *report.Composer, loc *time.Location) *ReportService {
	if loc == nil {
		loc = time.UTC
	}
	return &ReportService{
		state:      deps.State,
		composer:   composer,
		clock:      deps.Clock,
		location:   loc,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
	}
}

// Generate composes a report for the requested period. A request made
// while another is running is rejected with a conflict instead of queued.
func (s *ReportService) Generate(ctx context.Context, req report.PeriodRequest) (report.Report, error) {
	if !s.inFlight.CompareAndSwap(false, true) {
		return report.Report{}, apperrors.NewConflict("a report is already being generated", nil)
	}
	defer s.inFlight.Store(false)

	now := s.clock.Now()
	period, err := report.ResolvePeriod(req, now, s.location)
	if err != nil {
		return report.Report{}, err
	}

	tickets, inventory := s.state.Snapshot()
	r := s.composer.Compose(ctx, period, tickets, inventory, now.UTC())

	s.mu.Lock()
	s.last = &r
	s.mu.Unlock()

	s.logger.Info("report composed",
		zap.String("period", period.Label),
		zap.Int("tickets", r.Summary.Tickets),
		zap.Bool("generated", r.Generated))
	s.publish(ctx, events.New(events.EventReportGenerated, "", now.UTC(), events.ReportGeneratedPayload{
		Title:     r.Title,
		Period:    period.Label,
		Generated: r.Generated,
	}))
	return r, nil
}

func (s *ReportService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("failed to publish event", zap.String("event_type", string(event.Type)), zap.Error(err))
	}
}

// Generating reports whether a generation is currently running.
func (s *ReportService) Generating() bool {
	return s.inFlight.Load()
}

// Last returns the most recent report, if any.
func (s *ReportService) Last() (report.Report, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.last == nil {
		return report.Report{}, false
	}
	return *s.last, true
}

// Clear discards the most recent report.
func (s *ReportService) Clear() {
	s.mu.Lock()
	s.last = nil
	s.mu.Unlock()
}
