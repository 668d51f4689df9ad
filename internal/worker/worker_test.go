package worker

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/cdce-console/internal/events"
	"github.com/spec-kit/cdce-console/internal/observability"
	"github.com/spec-kit/cdce-console/internal/service"
)

func TestNotificationWorkerFeedsRecent(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher(zap.NewNop())
	notifications := service.NewNotificationService(dispatcher, zap.NewNop())
	StartNotificationWorker(notifications)

	at := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	require.NoError(t, dispatcher.Publish(context.Background(), events.New(events.EventTicketCreated, "1001", at, nil)))

	recent := notifications.Recent(10)
	require.Len(t, recent, 1)
	assert.Equal(t, "Ticket creado exitosamente", recent[0].Message)
}

func TestMetricsWorkerToleratesMissingDeps(t *testing.T) {
	StartMetricsWorker(nil, observability.NewMetrics())
	StartMetricsWorker(events.NewInMemoryDispatcher(nil), nil)
	StartNotificationWorker(nil)
}

func TestMetricsWorkerIgnoresForeignPayloads(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher(zap.NewNop())
	StartMetricsWorker(dispatcher, observability.NewMetrics())
	at := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	require.NoError(t, dispatcher.Publish(context.Background(), events.New(events.EventReportGenerated, "", at, "unexpected")))
	require.NoError(t, dispatcher.Publish(context.Background(), events.New(events.EventReportGenerated, "", at,
		events.ReportGeneratedPayload{Generated: true})))
}
