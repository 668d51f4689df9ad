package export

import (
	"bytes"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/cdce-console/internal/domain"
	"github.com/spec-kit/cdce-console/internal/report"
)

var generatedAt = time.Date(2024, 1, 15, 10, 30, 5, 0, time.UTC)

func sampleReport() report.Report {
	return report.Report{
		Title:  report.TitleQuarterly,
		Period: report.Period{Label: "Noviembre 2023 / Enero 2024", Quarterly: true},
		Text:   "1. Resumen Operativo\n\nSe atendieron **12** solicitudes.\n<script>alert(1)</script>",
	}
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "historial_de_tickets_resueltos.pdf", Filename(HistoryTitles.Document, "pdf"))
	assert.Equal(t, "inventario_cdce.doc", Filename(InventoryTitles.Document, "doc"))
}

func TestHistoryRecordsDefaultsResolution(t *testing.T) {
	tickets := domain.SampleTickets()
	records := HistoryRecords(tickets[3:])
	require.Len(t, records, 1)
	assert.Equal(t, []string{"1004", "Solicitud de tóner impresora laser", "Asist. Martinez", "Gestion Humana", "Resuelto", "N/A"}, records[0].Values())
	assert.Equal(t, "Solucion", records[0][5].Name)
}

func TestInventoryRecords(t *testing.T) {
	records := InventoryRecords(domain.SampleInventory()[:1])
	assert.Equal(t, []string{"Laptop Lenovo ThinkPad", "Equipo", "12", "Informatica", "Activo"}, records[0].Values())
}

func TestRecordsPDFPaginates(t *testing.T) {
	var items []domain.InventoryItem
	for i := 0; i < 120; i++ {
		items = append(items, domain.SampleInventory()...)
	}
	doc, err := RecordsPDF(InventoryTitles.Document, InventoryRecords(items), generatedAt)
	require.NoError(t, err)
	assert.Equal(t, "inventario_cdce.pdf", doc.Filename)
	assert.Equal(t, ContentTypePDF, doc.ContentType)
	assert.True(t, bytes.HasPrefix(doc.Content, []byte("%PDF")))

	w := renderRecords(InventoryTitles.Document, InventoryRecords(items), generatedAt)
	// 960 single-line rows at 7mm each cannot fit on one A4 page.
	assert.Greater(t, w.pdf.PageNo(), 20)
}

func TestWrapBreaksLongRows(t *testing.T) {
	w := newPDF()
	w.pdf.AddPage()
	w.pdf.SetFont("Helvetica", "", 10)
	lines := w.wrap(strings.Repeat("palabra ", 80), recordsWrap)
	assert.Greater(t, len(lines), 1)
	for _, l := range lines {
		assert.LessOrEqual(t, w.pdf.GetStringWidth(l), recordsWrap)
	}
	assert.Len(t, w.wrap("uno\n\ndos", recordsWrap), 3)
}

func TestReportPDF(t *testing.T) {
	doc, err := ReportPDF(domain.DefaultProfile(), sampleReport())
	require.NoError(t, err)
	assert.Equal(t, "Informe_Gestion_CDCE.pdf", doc.Filename)
	assert.True(t, bytes.HasPrefix(doc.Content, []byte("%PDF")))
}

func TestLogoLabels(t *testing.T) {
	top, bottom := logoLabels(domain.DefaultProfile())
	assert.Equal(t, "CDCE", top)
	assert.Equal(t, "ANZ", bottom)
}

func TestRecordsWord(t *testing.T) {
	records := HistoryRecords(domain.SampleTickets()[3:])
	doc, err := RecordsWord(HistoryTitles.Document, records, generatedAt)
	require.NoError(t, err)

	assert.Equal(t, "historial_de_tickets_resueltos.doc", doc.Filename)
	assert.Equal(t, ContentTypeWord, doc.ContentType)
	assert.True(t, bytes.HasPrefix(doc.Content, []byte("\xef\xbb\xbf")))
	html := string(doc.Content)
	assert.Contains(t, html, "urn:schemas-microsoft-com:office:word")
	assert.Contains(t, html, "<h1>Historial de Tickets Resueltos</h1>")
	assert.Contains(t, html, "Generado: 15/1/2024, 10:30:05")
	assert.Contains(t, html, ">Solucion</th>")
	assert.Contains(t, html, ">Solicitud de tóner impresora laser</td>")
}

func TestRecordsWordEscapesValues(t *testing.T) {
	doc, err := RecordsWord("Inventario", []Record{{{Name: "Nombre", Value: "<b>Router</b>"}}}, generatedAt)
	require.NoError(t, err)
	assert.NotContains(t, string(doc.Content), "<b>Router</b>")
	assert.Contains(t, string(doc.Content), "&lt;b&gt;Router&lt;/b&gt;")
}

func TestReportWordRendersMarkdown(t *testing.T) {
	doc, err := ReportWord(domain.DefaultProfile(), sampleReport())
	require.NoError(t, err)
	html := string(doc.Content)
	assert.Equal(t, "Informe_Gestion_CDCE.doc", doc.Filename)
	assert.Contains(t, html, "<strong>12</strong>")
	assert.NotContains(t, html, "<script>")
	assert.Contains(t, html, "Periodo: Noviembre 2023 / Enero 2024")
	assert.Contains(t, html, "Responsable: ING. José García")
}

func TestRecordsMailto(t *testing.T) {
	link := RecordsMailto(HistoryTitles.Email, 3, generatedAt)
	assert.True(t, strings.HasPrefix(link.URL, "mailto:?subject=Reporte%20CDCE%3A%20Historial%20Tickets%20Resueltos&body="))
	assert.NotContains(t, link.URL, "+")

	body := link.URL[strings.Index(link.URL, "&body=")+len("&body="):]
	decoded, err := url.PathUnescape(body)
	require.NoError(t, err)
	assert.Equal(t, "Adjunto reporte de Historial Tickets Resueltos.\n\nResumen:\nTotal registros: 3\n\nGenerado: 15/1/2024, 10:30:05", decoded)
}

func TestReportShareLinks(t *testing.T) {
	profile := domain.DefaultProfile()
	r := sampleReport()

	wa := ReportWhatsApp(profile, r)
	require.True(t, strings.HasPrefix(wa.URL, "https://wa.me/?text="))
	text, err := url.PathUnescape(strings.TrimPrefix(wa.URL, "https://wa.me/?text="))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(text, "*CDCE Anzoátegui - Informe de Gestión Trimestral*\nPeriodo: Noviembre 2023 / Enero 2024\n\n"))
	assert.True(t, strings.HasSuffix(text, "\n\n*Responsable:* ING. José García"))

	mail := ReportMailto(profile, r)
	assert.Contains(t, mail.URL, "subject=Informe%20de%20Gesti%C3%B3n%20Trimestral%20CDCE%20-%20Noviembre%202023%20%2F%20Enero%202024")

	letter := ReportLetter(profile, r)
	assert.True(t, strings.HasPrefix(letter, "Centro de Desarrollo de la Calidad Educativa\nEstado Anzoategui, Venezuela\n"))
	assert.True(t, strings.HasSuffix(letter, "Responsable: ING. José García\n(Encargado de Sala de Informática)"))
}

func TestEncodeURIComponentKeepsMarks(t *testing.T) {
	assert.Equal(t, "a%20b!'()*", encodeURIComponent("a b!'()*"))
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("PDF", FormatPDF, FormatWord)
	require.NoError(t, err)
	assert.Equal(t, FormatPDF, f)
	_, err = ParseFormat("whatsapp", FormatPDF, FormatWord)
	assert.Error(t, err)
}
