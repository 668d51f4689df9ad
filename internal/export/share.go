package export

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spec-kit/cdce-console/internal/domain"
	"github.com/spec-kit/cdce-console/internal/report"
)

const whatsAppBase = "https://wa.me/?text="

var uriComponentUnescapes = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// encodeURIComponent percent-encodes s the way browsers encode a URI
// component: spaces become %20 and !'()* stay literal.
func encodeURIComponent(s string) string {
	return uriComponentUnescapes.Replace(url.QueryEscape(s))
}

func mailto(subject, body string) string {
	return "mailto:?subject=" + encodeURIComponent(subject) + "&body=" + encodeURIComponent(body)
}

// RecordsMailto builds a mail draft announcing a record export.
func RecordsMailto(title string, count int, generatedAt time.Time) Link {
	body := fmt.Sprintf("Adjunto reporte de %s.\n\nResumen:\nTotal registros: %d\n\nGenerado: %s",
		title, count, Timestamp(generatedAt))
	return Link{URL: mailto("Reporte CDCE: "+title, body)}
}

// ReportLetter is the plain-text letter used for email and text exports.
func ReportLetter(profile domain.Profile, r report.Report) string {
	const rule = "--------------------------------"
	return fmt.Sprintf("%s\n%s\n%s\nPeriodo: %s\n\n%s\n\n%s\n\n%s\nResponsable: %s\n(%s)",
		profile.Name, profile.Region, r.Title, r.Period.Label,
		rule, r.Text, rule,
		profile.Responsible, profile.ResponsibleRole)
}

// ReportMailto builds a mail draft carrying the full report letter.
func ReportMailto(profile domain.Profile, r report.Report) Link {
	subject := fmt.Sprintf("%s %s - %s", r.Title, logoName(profile), r.Period.Label)
	return Link{URL: mailto(subject, ReportLetter(profile, r))}
}

// ReportWhatsApp builds a WhatsApp share link for the report.
func ReportWhatsApp(profile domain.Profile, r report.Report) Link {
	text := fmt.Sprintf("*%s - %s*\nPeriodo: %s\n\n%s\n\n*Responsable:* %s",
		profile.ShortName, r.Title, r.Period.Label, r.Text, profile.Responsible)
	return Link{URL: whatsAppBase + encodeURIComponent(text)}
}

// ReportText renders the letter as a plain text document.
func ReportText(profile domain.Profile, r report.Report) Document {
	return Document{
		Filename:    ReportFilename + ".txt",
		ContentType: ContentTypeText,
		Content:     []byte(ReportLetter(profile, r)),
	}
}

func logoName(profile domain.Profile) string {
	top, _ := logoLabels(profile)
	return top
}
