// Package scoring turns failure probabilities into health scores and alerts.
package scoring

import (
	"time"

	"liyu1981.xyz/predictive-maintenance/pkg/common"
	"liyu1981.xyz/predictive-maintenance/pkg/models"
)

// Alert selection and severity thresholds.
const (
	AlertHealthBelow      = 60.0
	AlertProbabilityAbove = 0.4

	CriticalHealthBelow      = 40.0
	CriticalProbabilityAbove = 0.6

	AlertMessage = "High failure probability detected"
)

// HealthScore is clip((1 - p) * 100, 0, 100).
func HealthScore(failureProbability float64) float64 {
	return common.Clamp((1-failureProbability)*100, 0, 100)
}

// NewPredictionRecord is the only constructor for prediction records, so the
// health score always agrees with the probability.
func NewPredictionRecord(sample models.SensorSample, equipmentID string, failureProbability float64) models.PredictionRecord {
	return models.PredictionRecord{
		SensorSample:       sample,
		EquipmentID:        equipmentID,
		FailureProbability: failureProbability,
		HealthScore:        HealthScore(failureProbability),
	}
}

// Severity reports whether a record should alert and how loudly.
func Severity(healthScore, failureProbability float64) (models.Severity, bool) {
	if !(healthScore < AlertHealthBelow || failureProbability > AlertProbabilityAbove) {
		return "", false
	}
	if healthScore < CriticalHealthBelow || failureProbability > CriticalProbabilityAbove {
		return models.SeverityCritical, true
	}
	return models.SeverityWarning, true
}

// DeriveAlerts is a pure view over records: one alert per record that crosses
// a threshold, stamped with now, in input order.
func DeriveAlerts(records []models.PredictionRecord, now time.Time) []models.AlertRecord {
	alerts := []models.AlertRecord{}
	for _, r := range records {
		severity, ok := Severity(r.HealthScore, r.FailureProbability)
		if !ok {
			continue
		}
		alerts = append(alerts, models.AlertRecord{
			EquipmentID:        r.EquipmentID,
			Severity:           severity,
			Message:            AlertMessage,
			HealthScore:        r.HealthScore,
			FailureProbability: r.FailureProbability,
			Timestamp:          now,
		})
	}
	return alerts
}
