package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spec-kit/cdce-console/internal/domain"
	"github.com/spec-kit/cdce-console/internal/events"
	"github.com/spec-kit/cdce-console/internal/report"
	apperrors "github.com/spec-kit/cdce-console/pkg/util"
)

type blockingGenerator struct {
	started chan struct{}
	release chan struct{}
	once    sync.Once
}

func (g *blockingGenerator) Generate(ctx context.Context, _ string) (string, error) {
	g.once.Do(func() { close(g.started) })
	select {
	case <-g.release:
		return "Informe listo", nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func TestReportGenerationIsSingleFlight(t *testing.T) {
	f := newFixture(t)
	gen := &blockingGenerator{started: make(chan struct{}), release: make(chan struct{})}
	svc := NewReportService(f.deps, report.NewComposer(gen, domain.DefaultProfile(), 0, zap.NewNop()), time.UTC)

	done := make(chan error, 1)
	go func() {
		_, err := svc.Generate(context.Background(), report.PeriodRequest{Mode: report.ModeAuto})
		done <- err
	}()
	<-gen.started
	assert.True(t, svc.Generating())

	_, err := svc.Generate(context.Background(), report.PeriodRequest{Mode: report.ModeAuto})
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeConflict))

	close(gen.release)
	require.NoError(t, <-done)
	assert.False(t, svc.Generating())

	last, ok := svc.Last()
	require.True(t, ok)
	assert.Equal(t, "Informe listo", last.Text)
	assert.Equal(t, report.TitleQuarterly, last.Title)
}

func TestReportWithoutKeyAndClear(t *testing.T) {
	f := newFixture(t)
	svc := NewReportService(f.deps, report.NewComposer(nil, domain.DefaultProfile(), 0, zap.NewNop()), time.UTC)

	_, ok := svc.Last()
	assert.False(t, ok)

	r, err := svc.Generate(context.Background(), report.PeriodRequest{Mode: report.ModeManual, Start: "2023-10-01", End: "2023-10-24"})
	require.NoError(t, err)
	assert.Equal(t, report.MessageMissingKey, r.Text)
	assert.Equal(t, "1/10/2023 - 24/10/2023", r.Period.Label)
	// 1002 (24th 14:30) and 1004 (20th) fall inside; 1001 and 1003 are later.
	assert.Equal(t, 2, r.Summary.Tickets)

	svc.Clear()
	_, ok = svc.Last()
	assert.False(t, ok)

	_, err = svc.Generate(context.Background(), report.PeriodRequest{Mode: "yearly"})
	assert.True(t, apperrors.HasCode(err, apperrors.CodeValidation))
}

type failingDispatcher struct{}

func (failingDispatcher) Publish(context.Context, events.Event) error {
	return errors.New("dispatcher closed")
}

func (failingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func TestReportPublishFailureIsLogged(t *testing.T) {
	f := newFixture(t)
	core, logs := observer.New(zap.WarnLevel)
	deps := f.deps
	deps.Dispatcher = failingDispatcher{}
	deps.Logger = zap.New(core)
	svc := NewReportService(deps, report.NewComposer(nil, domain.DefaultProfile(), 0, zap.NewNop()), time.UTC)

	_, err := svc.Generate(context.Background(), report.PeriodRequest{Mode: report.ModeAuto})
	require.NoError(t, err)

	entries := logs.FilterMessage("failed to publish event").All()
	require.Len(t, entries, 1)
	assert.Equal(t, string(events.EventReportGenerated), entries[0].ContextMap()["event_type"])
	assert.Equal(t, "dispatcher closed", entries[0].ContextMap()["error"])
}
