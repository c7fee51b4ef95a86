package models

import "liyu1981.xyz/predictive-maintenance/pkg/common"

type Reading struct {
	ID          uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Ts          string  `gorm:"column:ts;index;not null" json:"ts"`
	Temperature float64 `json:"temperature"`
	Vibration   float64 `json:"vibration"`
	Pressure    float64 `json:"pressure"`
	Current     float64 `json:"current"`
}

func (Reading) TableName() string {
	return "sensor_readings"
}

type Prediction struct {
	ID                 uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Ts                 string  `gorm:"column:ts;index;not null" json:"ts"`
	EquipmentID        string  `gorm:"not null;index" json:"equipment_id"`
	Temperature        float64 `json:"temperature"`
	Vibration          float64 `json:"vibration"`
	Pressure           float64 `json:"pressure"`
	Current            float64 `json:"current"`
	FailureProbability float64 `json:"failure_probability"`
	HealthScore        float64 `json:"health_score"`
}

func (Prediction) TableName() string {
	return "predictions"
}

type Maintenance struct {
	ID          uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	EquipmentID string `gorm:"not null;index" json:"equipment_id"`
	Action      string `gorm:"not null" json:"action"`
	Notes       string `json:"notes"`
	Ts          string `gorm:"column:ts;index;not null" json:"ts"`
}

func (Maintenance) TableName() string {
	return "maintenance_records"
}

// GetAllModels returns all row types for migration.
func GetAllModels() []any {
	return []any{&Reading{}, &Prediction{}, &Maintenance{}}
}

func ReadingFromSample(s SensorSample) Reading {
	return Reading{
		Ts:          common.FormatTimestamp(s.Timestamp),
		Temperature: s.Temperature,
		Vibration:   s.Vibration,
		Pressure:    s.Pressure,
		Current:     s.Current,
	}
}

func PredictionFromRecord(r PredictionRecord) Prediction {
	return Prediction{
		Ts:                 common.FormatTimestamp(r.Timestamp),
		EquipmentID:        r.EquipmentID,
		Temperature:        r.Temperature,
		Vibration:          r.Vibration,
		Pressure:           r.Pressure,
		Current:            r.Current,
		FailureProbability: r.FailureProbability,
		HealthScore:        r.HealthScore,
	}
}

func MaintenanceFromRecord(r MaintenanceRecord) Maintenance {
	return Maintenance{
		EquipmentID: r.EquipmentID,
		Action:      r.Action,
		Notes:       r.Notes,
		Ts:          common.FormatTimestamp(r.Timestamp),
	}
}

// RecordFromPrediction turns a stored row back into a record, e.g. to derive
// alerts from history.
func RecordFromPrediction(p Prediction) (PredictionRecord, error) {
	ts, err := common.ParseTimestamp(p.Ts)
	if err != nil {
		return PredictionRecord{}, err
	}
	return PredictionRecord{
		SensorSample: SensorSample{
			Timestamp:   ts,
			Temperature: p.Temperature,
			Vibration:   p.Vibration,
			Pressure:    p.Pressure,
			Current:     p.Current,
		},
		EquipmentID:        p.EquipmentID,
		FailureProbability: p.FailureProbability,
		HealthScore:        p.HealthScore,
	}, nil
}
