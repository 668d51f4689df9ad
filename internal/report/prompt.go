package report

import (
	"strings"
	"text/template"

	"github.com/spec-kit/cdce-console/internal/domain"
)

var promptTemplate = template.Must(template.New("prompt").Parse(`Actúa como el {{.Profile.Responsible}}, {{.Profile.ResponsibleRole}} del {{.Profile.ShortName}}.
Redacta EXCLUSIVAMENTE EL CUERPO de un "{{.Title}}" formal basado en los datos proporcionados.

IMPORTANTE: NO INCLUYAS TÍTULOS DE DOCUMENTO, FECHAS, NI FIRMAS AL FINAL. Estos elementos se agregan automáticamente en el formato de impresión.
Solo genera los párrafos de contenido.

CONTEXTO DEL PERIODO: {{.Period}}

DATOS DEL PERIODO:
- Soporte Técnico: {{.Summary.Tickets}} tickets registrados en este periodo ({{.Summary.Closed}} resueltos/cerrados, {{.Summary.Open}} pendientes).
- Casos Críticos: {{.Summary.Critical}}.
- Parque Tecnológico (Estado Actual): {{.Summary.InventoryUnits}} activos totales.
- Equipos en Mantenimiento: {{.Summary.InMaintenance}}.
- Alertas de Stock: {{.Summary.LowStockText}}.

ESTRUCTURA DEL CONTENIDO (Usa estos subtítulos):
1. Resumen Operativo ({{.Period}})
2. Gestión de Soporte Técnico
3. Estado del Parque Tecnológico
4. Requerimientos y Planificación

Tono: Estrictamente institucional, profesional y objetivo.
`))

// BuildPrompt renders the instruction sent to the text generator.
func BuildPrompt(profile domain.Profile, period Period, summary Summary) string {
	var b strings.Builder
	_ = promptTemplate.Execute(&b, struct {
		Profile domain.Profile
		Title   string
		Period  string
		Summary Summary
	}{profile, period.PromptTitle(), period.Label, summary})
	return b.String()
}
