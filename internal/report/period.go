package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/spec-kit/cdce-console/internal/domain"
	apperrors "github.com/spec-kit/cdce-console/pkg/util"
)

// Mode selects how the report window is chosen.
type Mode string

const (
	ModeAuto   Mode = "auto"
	ModeManual Mode = "manual"
)

// Report titles.
const (
	TitleQuarterly    = "Informe de Gestión Trimestral"
	TitleCustom       = "Informe de Gestión"
	PromptTitleCustom = "Informe de Gestión (Personalizado)"
	LabelCustomPeriod = "Periodo Personalizado"
)

// AutoWindow is the trailing window covered by automatic reports.
const AutoWindow = 90 * 24 * time.Hour

const dateLayout = "2006-01-02"

var monthNames = [12]string{
	"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
	"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
}

// PeriodRequest carries the user's choice. Start and End are calendar
// dates (YYYY-MM-DD) and only matter in manual mode.
type PeriodRequest struct {
	Mode  Mode   `json:"mode"`
	Start string `json:"start"`
	End   string `json:"end"`
}

// Period is a resolved reporting window. An unbounded period selects
// every ticket.
type Period struct {
	Mode      Mode      `json:"mode"`
	Start     time.Time `json:"start,omitzero"`
	End       time.Time `json:"end,omitzero"`
	Bounded   bool      `json:"bounded"`
	Label     string    `json:"label"`
	Quarterly bool      `json:"quarterly"`
}

// Title is the heading printed on exported documents.
func (p Period) Title() string {
	if p.Quarterly {
		return TitleQuarterly
	}
	return TitleCustom
}

// PromptTitle is the document name given to the text generator.
func (p Period) PromptTitle() string {
	if p.Quarterly {
		return TitleQuarterly
	}
	return PromptTitleCustom
}

// Contains reports whether t falls inside the closed interval.
func (p Period) Contains(t time.Time) bool {
	if !p.Bounded {
		return true
	}
	return !t.Before(p.Start) && !t.After(p.End)
}

// FilterTickets keeps the tickets created inside the period.
func (p Period) FilterTickets(tickets []domain.Ticket) []domain.Ticket {
	out := make([]domain.Ticket, 0, len(tickets))
	for _, t := range tickets {
		if p.Contains(t.CreatedAt) {
			out = append(out, t)
		}
	}
	return out
}

// ResolvePeriod turns a request into a window. Manual dates are
// interpreted in loc; the end date runs through 23:59:59.
func ResolvePeriod(req PeriodRequest, now time.Time, loc *time.Location) (Period, error) {
	if loc == nil {
		loc = time.UTC
	}
	now = now.In(loc)

	switch req.Mode {
	case ModeAuto, "":
		return Period{
			Mode:      ModeAuto,
			Start:     now.Add(-AutoWindow),
			End:       now,
			Bounded:   true,
			Label:     QuarterlyLabel(now),
			Quarterly: true,
		}, nil
	case ModeManual:
	default:
		return Period{}, apperrors.NewValidationError("validation failed", map[string]any{
			"mode": fmt.Sprintf("%q is not one of auto, manual", req.Mode),
		})
	}

	startRaw, endRaw := strings.TrimSpace(req.Start), strings.TrimSpace(req.End)
	if startRaw == "" || endRaw == "" {
		return Period{Mode: ModeManual, Label: LabelCustomPeriod}, nil
	}

	start, err := time.ParseInLocation(dateLayout, startRaw, loc)
	if err != nil {
		return Period{}, apperrors.NewValidationError("validation failed", map[string]any{"start": "must be a YYYY-MM-DD date"})
	}
	endDay, err := time.ParseInLocation(dateLayout, endRaw, loc)
	if err != nil {
		return Period{}, apperrors.NewValidationError("validation failed", map[string]any{"end": "must be a YYYY-MM-DD date"})
	}
	end := time.Date(endDay.Year(), endDay.Month(), endDay.Day(), 23, 59, 59, 0, loc)

	return Period{
		Mode:    ModeManual,
		Start:   start,
		End:     end,
		Bounded: true,
		Label:   fmt.Sprintf("%s - %s", start.Format("2/1/2006"), end.Format("2/1/2006")),
	}, nil
}

// QuarterlyLabel names the calendar months spanned by the trailing
// quarter ending in now's month, e.g. "Enero / Marzo 2024" or
// "Noviembre 2023 / Enero 2024".
func QuarterlyLabel(now time.Time) string {
	endIdx := int(now.Month()) - 1
	year := now.Year()

	startIdx, startYear := endIdx-2, year
	if startIdx < 0 {
		startIdx += 12
		startYear--
	}

	if startYear == year {
		return fmt.Sprintf("%s / %s %d", monthNames[startIdx], monthNames[endIdx], year)
	}
	return fmt.Sprintf("%s %d / %s %d", monthNames[startIdx], startYear, monthNames[endIdx], year)
}
