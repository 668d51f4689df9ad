package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/cdce-console/internal/domain"
	"github.com/spec-kit/cdce-console/internal/service"
)

// DashboardHandler serves the overview and the reference lists.
type DashboardHandler struct {
	service *service.DashboardService
	profile domain.Profile
}

func NewDashboardHandler(dashboardService *service.DashboardService, profile domain.Profile) *DashboardHandler {
	return &DashboardHandler{service: dashboardService, profile: profile}
}

// Overview GET /api/dashboard.
func (h *DashboardHandler) Overview(c *fiber.Ctx) error {
	return data(c, fiber.StatusOK, h.service.Overview(), "")
}

// Departments GET /api/departments.
func (h *DashboardHandler) Departments(c *fiber.Ctx) error {
	return data(c, fiber.StatusOK, h.profile.Departments, "")
}
