package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/cdce-console/internal/api/dto"
	"github.com/spec-kit/cdce-console/internal/events"
	"github.com/spec-kit/cdce-console/internal/export"
	"github.com/spec-kit/cdce-console/internal/service"
)

// TicketsHandler manages ticket endpoints.
type TicketsHandler struct {
	service *service.TicketService
	env     Env
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(ticketService *service.TicketService, env Env) *TicketsHandler {
	return &TicketsHandler{service: ticketService, env: env}
}

// ListActive GET /api/tickets.
func (h *TicketsHandler) ListActive(c *fiber.Ctx) error {
	tickets := h.service.Active(service.TicketFilter{
		Query:  c.Query("q"),
		Status: c.Query("status"),
	})
	return data(c, fiber.StatusOK, dto.NewTicketResponses(tickets, h.env.now()), "")
}

// ListHistory GET /api/tickets/history.
func (h *TicketsHandler) ListHistory(c *fiber.Ctx) error {
	tickets := h.service.History(c.Query("q"))
	return data(c, fiber.StatusOK, dto.NewTicketResponses(tickets, h.env.now()), "")
}

// Get GET /api/tickets/:id.
func (h *TicketsHandler) Get(c *fiber.Ctx) error {
	t, err := h.service.Get(c.Params("id"))
	if err != nil {
		return err
	}
	return data(c, fiber.StatusOK, dto.NewTicketResponse(t, h.env.now()), "")
}

// Create POST /api/tickets.
func (h *TicketsHandler) Create(c *fiber.Ctx) error {
	var req service.TicketInput
	if err := c.BodyParser(&req); err != nil {
		return invalidPayload(err)
	}
	t, err := h.service.Create(c.UserContext(), req)
	if err != nil {
		return err
	}
	return data(c, fiber.StatusCreated, dto.NewTicketResponse(t, h.env.now()), service.MessageFor(events.EventTicketCreated))
}

// Update PUT /api/tickets/:id.
func (h *TicketsHandler) Update(c *fiber.Ctx) error {
	var req service.TicketInput
	if err := c.BodyParser(&req); err != nil {
		return invalidPayload(err)
	}
	t, err := h.service.Update(c.UserContext(), c.Params("id"), req)
	if err != nil {
		return err
	}
	return data(c, fiber.StatusOK, dto.NewTicketResponse(t, h.env.now()), service.MessageFor(events.EventTicketUpdated))
}

// Delete DELETE /api/tickets/:id. Unknown ids succeed without effect.
func (h *TicketsHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	removed, err := h.service.Delete(c.UserContext(), id)
	if err != nil {
		return err
	}
	message := ""
	if removed {
		message = service.MessageFor(events.EventTicketDeleted)
	}
	return data(c, fiber.StatusOK, dto.DeleteResponse{ID: id, Removed: removed}, message)
}

// ExportHistory GET /api/tickets/history/export/:format.
func (h *TicketsHandler) ExportHistory(c *fiber.Ctx) error {
	format, err := parseFormat(c, export.FormatPDF, export.FormatWord, export.FormatEmail)
	if err != nil {
		return err
	}
	tickets := h.service.History(c.Query("q"))
	at := h.env.local()
	return exportRecords(c, format, export.HistoryTitles, export.HistoryRecords(tickets), at)
}
