package models

import "time"

type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
)

// FeatureColumns is the canonical order every classifier is trained and queried on.
var FeatureColumns = []string{"temperature", "vibration", "pressure", "current"}

type SensorSample struct {
	Timestamp   time.Time `json:"timestamp"`
	Temperature float64   `json:"temperature"` // °C
	Vibration   float64   `json:"vibration"`   // mm/s
	Pressure    float64   `json:"pressure"`    // bar
	Current     float64   `json:"current"`     // A
}

// Features returns the sample in FeatureColumns order.
func (s SensorSample) Features() []float64 {
	return []float64{s.Temperature, s.Vibration, s.Pressure, s.Current}
}

// LabeledSample only exists in training data.
type LabeledSample struct {
	SensorSample
	Failure int  `json:"failure"`
	Anomaly bool `json:"anomaly"`
}

// PredictionRecord is built by scoring.NewPredictionRecord, which keeps
// HealthScore consistent with FailureProbability.
type PredictionRecord struct {
	SensorSample
	EquipmentID        string  `json:"equipment_id"`
	FailureProbability float64 `json:"failure_probability"`
	HealthScore        float64 `json:"health_score"`
}

type AlertRecord struct {
	EquipmentID        string    `json:"equipment_id"`
	Severity           Severity  `json:"severity"`
	Message            string    `json:"message"`
	HealthScore        float64   `json:"health_score"`
	FailureProbability float64   `json:"failure_probability"`
	Timestamp          time.Time `json:"timestamp"`
}

type MaintenanceRecord struct {
	EquipmentID string    `json:"equipment_id"`
	Action      string    `json:"action"`
	Notes       string    `json:"notes"`
	Timestamp   time.Time `json:"timestamp"`
}

// HistoryWindow holds rows with ts >= now - days, ascending by ts.
type HistoryWindow struct {
	Readings    []Reading    `json:"readings"`
	Predictions []Prediction `json:"predictions"`
}
