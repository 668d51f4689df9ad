package handlers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/cdce-console/internal/api/dto"
	"github.com/spec-kit/cdce-console/internal/clock"
	"github.com/spec-kit/cdce-console/internal/export"
	apperrors "github.com/spec-kit/cdce-console/pkg/util"
)

// Env carries what every handler needs to render times.
type Env struct {
	Clock    clock.Clock
	Location *time.Location
}

func (e Env) now() time.Time {
	return e.Clock.Now()
}

// local is the current time in the console's timezone, used for
// "Generado" stamps.
func (e Env) local() time.Time {
	if e.Location == nil {
		return e.now()
	}
	return e.now().In(e.Location)
}

func data(c *fiber.Ctx, status int, payload any, message string) error {
	body := fiber.Map{"data": payload}
	if message != "" {
		body["message"] = message
	}
	return c.Status(status).JSON(body)
}

func sendDocument(c *fiber.Ctx, doc export.Document) error {
	c.Set(fiber.HeaderContentType, doc.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", doc.Filename))
	return c.Send(doc.Content)
}

func sendLink(c *fiber.Ctx, format export.Format, link export.Link) error {
	return data(c, fiber.StatusOK, dto.ShareResponse{Format: format, URL: link.URL}, "")
}

func parseFormat(c *fiber.Ctx, accepted ...export.Format) (export.Format, error) {
	f, err := export.ParseFormat(c.Params("format"), accepted...)
	if err != nil {
		return "", apperrors.NewValidationError("unsupported export format", map[string]any{"format": c.Params("format")})
	}
	return f, nil
}

func invalidPayload(err error) error {
	return apperrors.NewValidationError("invalid payload", map[string]any{"body": err.Error()})
}
