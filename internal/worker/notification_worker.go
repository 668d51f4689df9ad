package worker

import (
	"context"

	"github.com/spec-kit/cdce-console/internal/events"
	"github.com/spec-kit/cdce-console/internal/observability"
	"github.com/spec-kit/cdce-console/internal/service"
)

// StartNotificationWorker registers notification handlers.
func StartNotificationWorker(notificationService *service.NotificationService) {
	if notificationService == nil {
		return
	}
	notificationService.RegisterHandlers()
}

// StartMetricsWorker counts composed reports.
func StartMetricsWorker(dispatcher events.Dispatcher, metrics *observability.Metrics) {
	if dispatcher == nil || metrics == nil {
		return
	}
	dispatcher.Subscribe(events.EventReportGenerated, func(_ context.Context, event events.Event) error {
		payload, ok := event.Payload.(events.ReportGeneratedPayload)
		if !ok {
			return nil
		}
		metrics.RecordReport(payload.Generated)
		return nil
	})
}
