package report

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/cdce-console/internal/domain"
)

// Fixed texts returned instead of generated content.
const (
	MessageMissingKey    = "⚠️ Error: API_KEY no configurada."
	MessageServiceFailed = "Ocurrió un error al comunicarse con el servicio de IA. Por favor intente más tarde."
	MessageEmptyResult   = "No se pudo generar el análisis."
)

// Generator produces free text for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Report is a composed management report. Text is opaque prose.
type Report struct {
	Title       string    `json:"title"`
	Period      Period    `json:"period"`
	Summary     Summary   `json:"summary"`
	Text        string    `json:"text"`
	Generated   bool      `json:"generated"`
	GeneratedAt time.Time `json:"generated_at"`
}

// Lines splits the text on line breaks for display.
func (r Report) Lines() []string {
	text := strings.ReplaceAll(r.Text, "\r\n", "\n")
	return strings.Split(text, "\n")
}

// Composer builds reports. A nil generator means no API key is configured.
type Composer struct {
	generator Generator
	profile   domain.Profile
	timeout   time.Duration
	logger    *zap.Logger
}

// NewComposer wires a composer. timeout of zero leaves the call unbounded.
func NewComposer(generator Generator, profile domain.Profile, timeout time.Duration, logger *zap.Logger) *Composer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Composer{generator: generator, profile: profile, timeout: timeout, logger: logger}
}

// Compose summarizes the period's tickets and the inventory and asks the
// generator for the body text. It never fails: generation problems are
// reported through the fixed messages.
func (c *Composer) Compose(ctx context.Context, period Period, tickets []domain.Ticket, inventory []domain.InventoryItem, now time.Time) Report {
	selected := period.FilterTickets(tickets)
	summary := Summarize(selected, inventory)
	r := Report{
		Title:       period.Title(),
		Period:      period,
		Summary:     summary,
		GeneratedAt: now,
	}

	if c.generator == nil {
		r.Text = MessageMissingKey
		return r
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	text, err := c.generator.Generate(ctx, BuildPrompt(c.profile, period, summary))
	switch {
	case err != nil:
		c.logger.Error("report generation failed", zap.String("period", period.Label), zap.Error(err))
		r.Text = MessageServiceFailed
	case strings.TrimSpace(text) == "":
		c.logger.Warn("report generation returned no text", zap.String("period", period.Label))
		r.Text = MessageEmptyResult
	default:
		r.Text = text
		r.Generated = true
	}
	return r
}
