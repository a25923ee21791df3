package pdf

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gymhub/backend/internal/domain/report"
)

func TestRenderHealthReport(t *testing.T) {
	engine, err := NewTemplateEngine()
	require.NoError(t, err)

	r, err := report.NewHealthReport("Carla Díaz", "30111222", "sede centro", "Profe Ana", report.Measurements{
		WeightKg:      decimal.NewFromFloat(82.5),
		HeightCm:      decimal.NewFromFloat(180),
		BodyFatPct:    decimal.NewFromFloat(21.3),
		RestingHR:     62,
		BloodPressure: "120/80",
	})
	require.NoError(t, err)
	r.SetNarrative("Bajar grasa corporal", "Buen estado general.")

	html, err := engine.RenderHealthReport(r)
	require.NoError(t, err)

	assert.Contains(t, html, "Carla Díaz")
	assert.Contains(t, html, "30111222")
	assert.Contains(t, html, "Sede Centro") // title-cased location
	assert.Contains(t, html, "82.5")
	assert.Contains(t, html, "25.5") // computed BMI
	assert.Contains(t, html, "Bajar grasa corporal")
}

func TestRenderHealthReportEscapesHTML(t *testing.T) {
	engine, err := NewTemplateEngine()
	require.NoError(t, err)

	r, err := report.NewHealthReport("<script>alert(1)</script>", "1", "Sede", "Eval", report.Measurements{})
	require.NoError(t, err)

	html, err := engine.RenderHealthReport(r)
	require.NoError(t, err)
	assert.NotContains(t, html, "<script>alert(1)</script>")
}
