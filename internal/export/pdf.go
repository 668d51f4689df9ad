package export

import (
	"bytes"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-pdf/fpdf"

	"github.com/spec-kit/cdce-console/internal/domain"
	"github.com/spec-kit/cdce-console/internal/report"
)

// ReportFilename is the fixed name of the institutional report files.
const ReportFilename = "Informe_Gestion_CDCE"

const (
	recordsLeft      = 14.0
	recordsWrap      = 180.0
	recordsLineStep  = 7.0
	recordsFirstRow  = 40.0
	pageTopAfterTurn = 20.0
	bottomMargin     = 20.0

	reportLeft       = 20.0
	reportRight      = 190.0
	reportCenter     = 105.0
	reportWrap       = 170.0
	reportBodyTop    = 70.0
	reportLineStep   = 5.0
	reportFooterRise = 30.0
)

// pdfWriter pairs a document with its cp1252 translator. Text handed to
// the core fonts must be translated first.
type pdfWriter struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
}

func newPDF() *pdfWriter {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	return &pdfWriter{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}
}

func (w *pdfWriter) pageHeight() float64 {
	_, h := w.pdf.GetPageSize()
	return h
}

func (w *pdfWriter) text(x, y float64, s string) {
	w.pdf.Text(x, y, w.tr(s))
}

func (w *pdfWriter) centered(y float64, s string) {
	t := w.tr(s)
	w.pdf.Text(reportCenter-w.pdf.GetStringWidth(t)/2, y, t)
}

// wrap breaks s into lines no wider than width at the current font,
// splitting on spaces and cutting words that alone exceed the width.
// Returned lines are already translated.
func (w *pdfWriter) wrap(s string, width float64) []string {
	var lines []string
	for _, paragraph := range strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n") {
		words := strings.Fields(w.tr(paragraph))
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		current := ""
		for _, word := range words {
			candidate := word
			if current != "" {
				candidate = current + " " + word
			}
			if w.pdf.GetStringWidth(candidate) <= width {
				current = candidate
				continue
			}
			if current != "" {
				lines = append(lines, current)
			}
			for w.pdf.GetStringWidth(word) > width && len(word) > 1 {
				cut := len(word) - 1
				for cut > 1 && w.pdf.GetStringWidth(word[:cut]) > width {
					cut--
				}
				lines = append(lines, word[:cut])
				word = word[cut:]
			}
			current = word
		}
		lines = append(lines, current)
	}
	return lines
}

func (w *pdfWriter) output(filename string) (Document, error) {
	var buf bytes.Buffer
	if err := w.pdf.Output(&buf); err != nil {
		return Document{}, fmt.Errorf("render pdf: %w", err)
	}
	return Document{Filename: filename, ContentType: ContentTypePDF, Content: buf.Bytes()}, nil
}

// RecordsPDF lists records one per numbered row, "n. v1 | v2 | ...".
func RecordsPDF(title string, records []Record, generatedAt time.Time) (Document, error) {
	return renderRecords(title, records, generatedAt).output(Filename(title, "pdf"))
}

func renderRecords(title string, records []Record, generatedAt time.Time) *pdfWriter {
	w := newPDF()
	w.pdf.AddPage()
	w.pdf.SetFont("Helvetica", "", 18)
	w.text(recordsLeft, 22, title)
	w.pdf.SetFont("Helvetica", "", 10)
	w.text(recordsLeft, 30, "Generado: "+Timestamp(generatedAt))

	y := recordsFirstRow
	limit := w.pageHeight() - bottomMargin
	for i, rec := range records {
		if y > limit {
			w.pdf.AddPage()
			y = pageTopAfterTurn
		}
		row := fmt.Sprintf("%d. %s", i+1, strings.Join(rec.Values(), " | "))
		lines := w.wrap(row, recordsWrap)
		for j, line := range lines {
			w.pdf.Text(recordsLeft, y+float64(j)*recordsLineStep, line)
		}
		y += float64(len(lines)) * recordsLineStep
	}
	return w
}

// logoLabels derives the two lines of the letterhead logo box from the
// institution short name, e.g. "CDCE Anzoátegui" gives "CDCE" and "ANZ".
func logoLabels(profile domain.Profile) (string, string) {
	parts := strings.Fields(profile.ShortName)
	if len(parts) == 0 {
		return "", ""
	}
	top := parts[0]
	if len(parts) < 2 {
		return top, ""
	}
	bottom := parts[1]
	if utf8.RuneCountInString(bottom) > 3 {
		bottom = string([]rune(bottom)[:3])
	}
	return top, strings.ToUpper(bottom)
}

// ReportPDF lays the report out on the institutional letterhead with the
// signature block at the foot of the last page.
func ReportPDF(profile domain.Profile, r report.Report) (Document, error) {
	w := newPDF()
	w.pdf.AddPage()
	pageH := w.pageHeight()

	top, bottom := logoLabels(profile)
	w.pdf.SetFillColor(37, 99, 235)
	w.pdf.RoundedRect(20, 15, 20, 20, 3, "1234", "F")
	w.pdf.SetTextColor(255, 255, 255)
	w.pdf.SetFont("Helvetica", "B", 8)
	w.textCenteredAt(30, 26, top)
	w.pdf.SetFont("Helvetica", "B", 6)
	w.textCenteredAt(30, 32, bottom)

	w.pdf.SetTextColor(0, 0, 0)
	w.pdf.SetFont("Helvetica", "B", 16)
	w.centered(22, profile.Name)
	w.pdf.SetFont("Helvetica", "", 12)
	w.centered(30, profile.Region)
	w.pdf.SetFont("Helvetica", "B", 14)
	w.centered(45, r.Title)
	w.pdf.SetFont("Helvetica", "I", 11)
	w.centered(52, "Periodo: "+r.Period.Label)

	w.pdf.SetDrawColor(200, 200, 200)
	w.pdf.SetLineWidth(0.5)
	w.pdf.Line(reportLeft, 60, reportRight, 60)

	w.pdf.SetFont("Times", "", 11)
	w.pdf.SetTextColor(20, 20, 20)
	y := reportBodyTop
	limit := pageH - reportFooterRise - 10
	for _, line := range w.wrap(r.Text, reportWrap) {
		if y > limit {
			w.pdf.AddPage()
			y = pageTopAfterTurn
		}
		w.pdf.Text(reportLeft, y, line)
		y += reportLineStep
	}

	footerY := pageH - reportFooterRise
	w.pdf.SetTextColor(0, 0, 0)
	w.pdf.SetFont("Helvetica", "B", 10)
	w.centered(footerY, "Responsable: "+profile.Responsible)
	w.pdf.SetFont("Helvetica", "", 10)
	w.centered(footerY+5, "("+profile.ResponsibleRole+")")

	return w.output(ReportFilename + ".pdf")
}

func (w *pdfWriter) textCenteredAt(x, y float64, s string) {
	t := w.tr(s)
	w.pdf.Text(x-w.pdf.GetStringWidth(t)/2, y, t)
}
