package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/cdce-console/internal/export"
	apperrors "github.com/spec-kit/cdce-console/pkg/util"
)

// exportRecords renders a record list in one of the list formats.
func exportRecords(c *fiber.Ctx, format export.Format, titles export.Titles, records []export.Record, at time.Time) error {
	var (
		doc export.Document
		err error
	)
	switch format {
	case export.FormatPDF:
		doc, err = export.RecordsPDF(titles.Document, records, at)
	case export.FormatWord:
		doc, err = export.RecordsWord(titles.Document, records, at)
	case export.FormatEmail:
		return sendLink(c, format, export.RecordsMailto(titles.Email, len(records), at))
	}
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	return sendDocument(c, doc)
}
