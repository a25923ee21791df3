package report

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleMeasurements() Measurements {
	return Measurements{
		WeightKg: decimal.NewFromFloat(82.5),
		HeightCm: decimal.NewFromFloat(180),
	}
}

func TestMeasurementsBMI(t *testing.T) {
	bmi := sampleMeasurements().BMI()
	assert.Equal(t, "25.5", bmi.String())

	assert.True(t, Measurements{}.BMI().IsZero())
}

func TestNewHealthReport(t *testing.T) {
	t.Run("creates draft report", func(t *testing.T) {
		r, err := NewHealthReport("Carla Díaz", "30111222", "Sede Centro", "Profe Ana", sampleMeasurements())
		require.NoError(t, err)
		assert.Equal(t, ReportStatusDraft, r.Status)
		assert.False(t, r.IsRendered())
	})

	t.Run("rejects blank member data", func(t *testing.T) {
		_, err := NewHealthReport("", "30111222", "Sede Centro", "Profe Ana", sampleMeasurements())
		require.Error(t, err)
		_, err = NewHealthReport("Carla", "", "Sede Centro", "Profe Ana", sampleMeasurements())
		require.Error(t, err)
	})

	t.Run("rejects negative measurements", func(t *testing.T) {
		m := sampleMeasurements()
		m.WeightKg = decimal.NewFromInt(-1)
		_, err := NewHealthReport("Carla", "30111222", "Sede Centro", "Profe Ana", m)
		require.Error(t, err)
	})
}

func TestHealthReportMarkRendered(t *testing.T) {
	r, err := NewHealthReport("Carla Díaz", "30111222", "Sede Centro", "Profe Ana", sampleMeasurements())
	require.NoError(t, err)

	require.Error(t, r.MarkRendered(" "))

	require.NoError(t, r.MarkRendered("hammerx/123e4567.pdf"))
	assert.True(t, r.IsRendered())
	require.NotNil(t, r.RenderedAt)
	assert.Equal(t, "hammerx/123e4567.pdf", r.ObjectKey)
}
