package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/cdce-console/internal/service"
)

const defaultNotificationLimit = 20

// NotificationsHandler exposes the recent notification feed.
type NotificationsHandler struct {
	service *service.NotificationService
}

func NewNotificationsHandler(notificationService *service.NotificationService) *NotificationsHandler {
	return &NotificationsHandler{service: notificationService}
}

// Recent GET /api/notifications?limit=.
func (h *NotificationsHandler) Recent(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", defaultNotificationLimit)
	return data(c, fiber.StatusOK, h.service.Recent(limit), "")
}
