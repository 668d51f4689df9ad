// Package export renders records and reports as downloadable documents
// and share links. Everything here is stateless.
package export

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Format names an export target.
type Format string

const (
	FormatPDF      Format = "pdf"
	FormatWord     Format = "word"
	FormatEmail    Format = "email"
	FormatWhatsApp Format = "whatsapp"
	FormatText     Format = "text"
)

// Content types of rendered documents.
const (
	ContentTypePDF  = "application/pdf"
	ContentTypeWord = "application/msword"
	ContentTypeText = "text/plain; charset=utf-8"
)

// TimestampLayout renders "Generado" stamps as day/month/year, time.
const TimestampLayout = "2/1/2006, 15:04:05"

// Field is one named value of a record.
type Field struct {
	Name  string
	Value string
}

// Record is an ordered list of fields; order drives column order.
type Record []Field

// Values returns the field values in order.
func (r Record) Values() []string {
	out := make([]string, len(r))
	for i, f := range r {
		out[i] = f.Value
	}
	return out
}

// Document is a rendered file.
type Document struct {
	Filename    string
	ContentType string
	Content     []byte
}

// Link is a share target that the client opens directly.
type Link struct {
	URL string `json:"url"`
}

// Titles names a record export in documents and in email subjects.
type Titles struct {
	Document string
	Email    string
}

var (
	HistoryTitles   = Titles{Document: "Historial de Tickets Resueltos", Email: "Historial Tickets Resueltos"}
	InventoryTitles = Titles{Document: "Inventario CDCE", Email: "Inventario Institucional"}
)

var whitespace = regexp.MustCompile(`\s`)

// Filename lower-cases title and replaces each whitespace character with
// an underscore.
func Filename(title, ext string) string {
	return whitespace.ReplaceAllString(strings.ToLower(title), "_") + "." + ext
}

// Timestamp formats t for "Generado" lines.
func Timestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}

// ParseFormat validates a format name against the accepted set.
func ParseFormat(raw string, accepted ...Format) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(raw)))
	for _, a := range accepted {
		if f == a {
			return f, nil
		}
	}
	return "", fmt.Errorf("unsupported export format %q", raw)
}
