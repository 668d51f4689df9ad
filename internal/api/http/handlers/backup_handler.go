package handlers

import (
	"io"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/cdce-console/internal/api/dto"
	"github.com/spec-kit/cdce-console/internal/events"
	"github.com/spec-kit/cdce-console/internal/service"
	apperrors "github.com/spec-kit/cdce-console/pkg/util"
)

// BackupHandler exports and restores the whole state.
type BackupHandler struct {
	service *service.BackupService
}

func NewBackupHandler(backupService *service.BackupService) *BackupHandler {
	return &BackupHandler{service: backupService}
}

// Download GET /api/backup.
func (h *BackupHandler) Download(c *fiber.Ctx) error {
	file, err := h.service.Export(c.UserContext())
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+file.Filename+`"`)
	c.Set("X-Message", service.MessageFor(events.EventBackupExported))
	return c.Send(file.Content)
}

// Restore POST /api/backup/restore accepts the backup either as the raw
// body or as a multipart "file" field.
func (h *BackupHandler) Restore(c *fiber.Ctx) error {
	raw, err := restoreBody(c)
	if err != nil {
		return err
	}
	counts, err := h.service.Restore(c.UserContext(), raw)
	if err != nil {
		return err
	}
	return data(c, fiber.StatusOK, dto.RestoreResponse{Tickets: counts.Tickets, Inventory: counts.Inventory},
		service.MessageFor(events.EventBackupRestored))
}

// Archive POST /api/backup/archive stores a snapshot in object storage.
func (h *BackupHandler) Archive(c *fiber.Ctx) error {
	location, err := h.service.Archive(c.UserContext())
	if err != nil {
		return err
	}
	return data(c, fiber.StatusCreated, dto.ArchiveResponse{Location: location}, "")
}

func restoreBody(c *fiber.Ctx) ([]byte, error) {
	if !strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		return c.Body(), nil
	}
	fh, err := c.FormFile("file")
	if err != nil {
		return nil, apperrors.NewValidationError("invalid payload", map[string]any{"file": "required"})
	}
	f, err := fh.Open()
	if err != nil {
		return nil, apperrors.NewReadError(err)
	}
	defer f.Close()
	raw, err := io.ReadAll(f)
	if err != nil {
		return nil, apperrors.NewReadError(err)
	}
	return raw, nil
}
