package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/cdce-console/internal/api/dto"
	"github.com/spec-kit/cdce-console/internal/events"
	"github.com/spec-kit/cdce-console/internal/export"
	"github.com/spec-kit/cdce-console/internal/service"
)

// InventoryHandler manages inventory endpoints.
type InventoryHandler struct {
	service *service.InventoryService
	env     Env
}

func NewInventoryHandler(inventoryService *service.InventoryService, env Env) *InventoryHandler {
	return &InventoryHandler{service: inventoryService, env: env}
}

func (h *InventoryHandler) filter(c *fiber.Ctx) service.InventoryFilter {
	return service.InventoryFilter{
		Query:      c.Query("q"),
		Department: c.Query("department"),
		Status:     c.Query("status"),
	}
}

// List GET /api/inventory.
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	items := h.service.Filter(h.filter(c))
	return data(c, fiber.StatusOK, dto.NewInventoryResponses(items, h.env.now()), "")
}

// Get GET /api/inventory/:id.
func (h *InventoryHandler) Get(c *fiber.Ctx) error {
	it, err := h.service.Get(c.Params("id"))
	if err != nil {
		return err
	}
	return data(c, fiber.StatusOK, dto.NewInventoryResponse(it, h.env.now()), "")
}

// Create POST /api/inventory.
func (h *InventoryHandler) Create(c *fiber.Ctx) error {
	var req service.InventoryInput
	if err := c.BodyParser(&req); err != nil {
		return invalidPayload(err)
	}
	it, err := h.service.Create(c.UserContext(), req)
	if err != nil {
		return err
	}
	return data(c, fiber.StatusCreated, dto.NewInventoryResponse(it, h.env.now()), service.MessageFor(events.EventInventoryCreated))
}

// Update PUT /api/inventory/:id.
func (h *InventoryHandler) Update(c *fiber.Ctx) error {
	var req service.InventoryInput
	if err := c.BodyParser(&req); err != nil {
		return invalidPayload(err)
	}
	it, err := h.service.Update(c.UserContext(), c.Params("id"), req)
	if err != nil {
		return err
	}
	return data(c, fiber.StatusOK, dto.NewInventoryResponse(it, h.env.now()), service.MessageFor(events.EventInventoryUpdated))
}

// Delete DELETE /api/inventory/:id.
func (h *InventoryHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	removed, err := h.service.Delete(c.UserContext(), id)
	if err != nil {
		return err
	}
	message := ""
	if removed {
		message = service.MessageFor(events.EventInventoryDeleted)
	}
	return data(c, fiber.StatusOK, dto.DeleteResponse{ID: id, Removed: removed}, message)
}

// Export GET /api/inventory/export/:format exports the filtered list.
func (h *InventoryHandler) Export(c *fiber.Ctx) error {
	format, err := parseFormat(c, export.FormatPDF, export.FormatWord, export.FormatEmail)
	if err != nil {
		return err
	}
	items := h.service.Filter(h.filter(c))
	return exportRecords(c, format, export.InventoryTitles, export.InventoryRecords(items), h.env.local())
}
