package pdm_test

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"liyu1981.xyz/predictive-maintenance/pkg/common"
	"liyu1981.xyz/predictive-maintenance/pkg/metrics"
	"liyu1981.xyz/predictive-maintenance/pkg/models"
	"liyu1981.xyz/predictive-maintenance/pkg/pdm"
	"liyu1981.xyz/predictive-maintenance/pkg/scoring"
)

func TestAlertsFor(t *testing.T) {
	common.SetTestLoggerNop()
	_, p, _ := GetPDMWithMockStore(t)

	records := []models.PredictionRecord{
		{EquipmentID: "EQ-001", HealthScore: 35, FailureProbability: 0.3},
		{EquipmentID: "EQ-002", HealthScore: 55, FailureProbability: 0.2},
		{EquipmentID: "EQ-003", HealthScore: 80, FailureProbability: 0.1},
	}

	critical := testutil.ToFloat64(metrics.Alerts("critical"))
	warning := testutil.ToFloat64(metrics.Alerts("warning"))

	alerts := p.Alert.AlertsFor(records)
	require.Len(t, alerts, 2)
	assert.Equal(t, critical+1, testutil.ToFloat64(metrics.Alerts("critical")))
	assert.Equal(t, warning+1, testutil.ToFloat64(metrics.Alerts("warning")))
	assert.Equal(t, models.AlertRecord{
		EquipmentID:        "EQ-001",
		Severity:           models.SeverityCritical,
		Message:            scoring.AlertMessage,
		HealthScore:        35,
		FailureProbability: 0.3,
		Timestamp:          testNow,
	}, alerts[0])
	assert.Equal(t, models.SeverityWarning, alerts[1].Severity)
	assert.Equal(t, "EQ-002", alerts[1].EquipmentID)

	assert.NotNil(t, p.Alert.AlertsFor(nil))
	assert.Empty(t, p.Alert.AlertsFor(nil))
}

// The mock store carries no expectations, so any write fails the test.
func TestCurrentAlertsDoesNotPersist(t *testing.T) {
	common.SetTestLoggerNop()
	_, p, _ := GetPDMWithMockStore(t)

	alerts, err := p.Alert.CurrentAlerts(0)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(alerts), pdm.DefaultAlertCount)

	for _, a := range alerts {
		severity, ok := scoring.Severity(a.HealthScore, a.FailureProbability)
		assert.True(t, ok)
		assert.Equal(t, severity, a.Severity)
		assert.Equal(t, scoring.HealthScore(a.FailureProbability), a.HealthScore)
		assert.Equal(t, testNow, a.Timestamp)
	}
}

func TestCurrentAlertsMatchesScoredBatch(t *testing.T) {
	common.SetTestLoggerNop()
	p, _ := GetPDMWithMemorySqlite(t)

	// same seed and clock, so the alert batch is the first 20 of a scored batch
	batch, err := p.Prediction.PredictBatch(pdm.DefaultAlertCount)
	require.NoError(t, err)

	alerts, err := p.Alert.CurrentAlerts(pdm.DefaultAlertCount)
	require.NoError(t, err)
	assert.Equal(t, p.Alert.AlertsFor(batch.Predictions), alerts)
}

func TestCurrentAlertsRange(t *testing.T) {
	common.SetTestLoggerNop()
	_, p, _ := GetPDMWithMockStore(t)

	var rangeErr *common.RangeError
	_, err := p.Alert.CurrentAlerts(-3)
	assert.True(t, errors.As(err, &rangeErr))
}
