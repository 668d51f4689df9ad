package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/cdce-console/internal/api/dto"
	"github.com/spec-kit/cdce-console/internal/domain"
	"github.com/spec-kit/cdce-console/internal/export"
	"github.com/spec-kit/cdce-console/internal/report"
	"github.com/spec-kit/cdce-console/internal/service"
	apperrors "github.com/spec-kit/cdce-console/pkg/util"
)

// ReportHandler serves the management report.
type ReportHandler struct {
	service *service.ReportService
	profile domain.Profile
}

func NewReportHandler(reportService *service.ReportService, profile domain.Profile) *ReportHandler {
	return &ReportHandler{service: reportService, profile: profile}
}

// Generate POST /api/report. An empty body requests the automatic period.
func (h *ReportHandler) Generate(c *fiber.Ctx) error {
	var req report.PeriodRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return invalidPayload(err)
		}
	}
	r, err := h.service.Generate(c.UserContext(), req)
	if err != nil {
		return err
	}
	return data(c, fiber.StatusOK, dto.NewReportResponse(r), "")
}

// Last GET /api/report.
func (h *ReportHandler) Last(c *fiber.Ctx) error {
	r, ok := h.service.Last()
	if !ok {
		return apperrors.NewNotFound("report", nil)
	}
	return data(c, fiber.StatusOK, dto.NewReportResponse(r), "")
}

// Status GET /api/report/status.
func (h *ReportHandler) Status(c *fiber.Ctx) error {
	_, ok := h.service.Last()
	return data(c, fiber.StatusOK, dto.ReportStatus{Generating: h.service.Generating(), Available: ok}, "")
}

// Clear DELETE /api/report.
func (h *ReportHandler) Clear(c *fiber.Ctx) error {
	h.service.Clear()
	return c.SendStatus(fiber.StatusNoContent)
}

// Export POST /api/report/export/:format renders the last report.
func (h *ReportHandler) Export(c *fiber.Ctx) error {
	format, err := parseFormat(c, export.FormatPDF, export.FormatWord, export.FormatEmail, export.FormatWhatsApp, export.FormatText)
	if err != nil {
		return err
	}
	r, ok := h.service.Last()
	if !ok {
		return apperrors.NewNotFound("report", nil)
	}

	var doc export.Document
	switch format {
	case export.FormatEmail:
		return sendLink(c, format, export.ReportMailto(h.profile, r))
	case export.FormatWhatsApp:
		return sendLink(c, format, export.ReportWhatsApp(h.profile, r))
	case export.FormatText:
		doc = export.ReportText(h.profile, r)
	case export.FormatWord:
		doc, err = export.ReportWord(h.profile, r)
	default:
		doc, err = export.ReportPDF(h.profile, r)
	}
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	return sendDocument(c, doc)
}
