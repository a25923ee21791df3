package pdf

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/gymhub/backend/internal/domain/report"
)

// TemplateEngine renders report data into the branded HTML layout using
// html/template with formatting helpers.
type TemplateEngine struct {
	tmpl *template.Template
}

// NewTemplateEngine parses the built-in report layout
func NewTemplateEngine() (*TemplateEngine, error) {
	funcMap := template.FuncMap{
		"formatDate":    formatDate,
		"formatDecimal": formatDecimal,
		"title":         titleCase,
		"upper":         strings.ToUpper,
		"trim":          strings.TrimSpace,
	}

	tmpl, err := template.New("hammerx").Funcs(funcMap).Parse(hammerxReportTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse report template: %w", err)
	}
	return &TemplateEngine{tmpl: tmpl}, nil
}

// reportTemplateData is the view model for the report layout
type reportTemplateData struct {
	Report      *report.HealthReport
	BMI         decimal.Decimal
	GeneratedAt time.Time
}

// RenderHealthReport produces the HTML for a health report
func (e *TemplateEngine) RenderHealthReport(r *report.HealthReport) (string, error) {
	var buf bytes.Buffer
	data := reportTemplateData{
		Report:      r,
		BMI:         r.Measurements.BMI(),
		GeneratedAt: time.Now(),
	}
	if err := e.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render report template: %w", err)
	}
	return buf.String(), nil
}

func formatDate(t time.Time) string {
	return t.Format("02/01/2006")
}

func formatDecimal(d decimal.Decimal) string {
	return d.StringFixed(1)
}

func titleCase(s string) string {
	return cases.Title(language.Spanish).String(s)
}

const hammerxReportTemplate = `<!DOCTYPE html>
<html lang="es">
<head>
<meta charset="utf-8">
<title>Informe HammerX</title>
<style>
  body { font-family: Helvetica, Arial, sans-serif; color: #1a1a1a; margin: 0; }
  .header { background: #d5281f; color: #fff; padding: 24px 32px; }
  .header h1 { margin: 0; font-size: 26px; letter-spacing: 1px; }
  .header .sede { font-size: 13px; opacity: .85; margin-top: 4px; }
  .section { padding: 16px 32px; }
  .section h2 { font-size: 15px; border-bottom: 2px solid #d5281f; padding-bottom: 4px; }
  table.meas { width: 100%; border-collapse: collapse; }
  table.meas td { padding: 6px 8px; border-bottom: 1px solid #eee; font-size: 13px; }
  table.meas td.label { color: #666; width: 45%; }
  .narrative { font-size: 13px; line-height: 1.5; white-space: pre-line; }
  .footer { padding: 12px 32px; font-size: 11px; color: #999; }
</style>
</head>
<body>
  <div class="header">
    <h1>HAMMERX · INFORME DE EVALUACIÓN</h1>
    <div class="sede">{{ title .Report.Location }} — {{ formatDate .GeneratedAt }}</div>
  </div>

  <div class="section">
    <h2>Socio</h2>
    <table class="meas">
      <tr><td class="label">Nombre</td><td>{{ .Report.MemberName }}</td></tr>
      <tr><td class="label">Documento</td><td>{{ .Report.MemberDocument }}</td></tr>
      <tr><td class="label">Evaluador</td><td>{{ .Report.Evaluator }}</td></tr>
    </table>
  </div>

  <div class="section">
    <h2>Mediciones</h2>
    <table class="meas">
      <tr><td class="label">Peso</td><td>{{ formatDecimal .Report.Measurements.WeightKg }} kg</td></tr>
      <tr><td class="label">Altura</td><td>{{ formatDecimal .Report.Measurements.HeightCm }} cm</td></tr>
      <tr><td class="label">IMC</td><td>{{ formatDecimal .BMI }}</td></tr>
      <tr><td class="label">Grasa corporal</td><td>{{ formatDecimal .Report.Measurements.BodyFatPct }} %</td></tr>
      <tr><td class="label">Frecuencia cardíaca en reposo</td><td>{{ .Report.Measurements.RestingHR }} lpm</td></tr>
      <tr><td class="label">Presión arterial</td><td>{{ .Report.Measurements.BloodPressure }}</td></tr>
    </table>
  </div>

  {{ if .Report.Goals }}
  <div class="section">
    <h2>Objetivos</h2>
    <div class="narrative">{{ .Report.Goals }}</div>
  </div>
  {{ end }}

  {{ if .Report.Narrative }}
  <div class="section">
    <h2>Evaluación</h2>
    <div class="narrative">{{ .Report.Narrative }}</div>
  </div>
  {{ end }}

  <div class="footer">Generado por GymHub — documento interno, no válido como certificado médico.</div>
</body>
</html>`
