// Package history persists readings, predictions and maintenance actions and
// serves time-windowed reads, retention sweeps and CSV export.
package history

import (
	"encoding/csv"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"liyu1981.xyz/predictive-maintenance/pkg/common"
	"liyu1981.xyz/predictive-maintenance/pkg/db"
	"liyu1981.xyz/predictive-maintenance/pkg/models"
)

const insertBatchSize = 100

var ExportHeader = []string{
	"type", "ts", "equipment_id",
	"temperature", "vibration", "pressure", "current",
	"failure_probability", "health_score",
}

type IStore interface {
	InsertReading(sample models.SensorSample) error
	InsertPredictions(records []models.PredictionRecord) error
	InsertMaintenance(record models.MaintenanceRecord) error
	GetHistorical(days int) (*models.HistoryWindow, error)
	GetMaintenance(days int) ([]models.Maintenance, error)
	CleanupOld(days int) (CleanupResult, error)
	ExportCSV(days int) (string, error)
}

type CleanupResult struct {
	Readings    int64 `json:"readings"`
	Predictions int64 `json:"predictions"`
}

// Store serializes writers with writeMu; every write call runs in one
// transaction, so readers see either none or all of a batch.
type Store struct {
	db      *db.DB
	writeMu sync.Mutex
	now     func() time.Time // injectable for deterministic tests
}

func NewStore(d *db.DB) *Store {
	return &Store{db: d, now: time.Now}
}

func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

func (s *Store) write(op string, fn func(tx *gorm.DB) error) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return common.NewStoreError(op, s.db.Conn.Transaction(fn))
}

func (s *Store) InsertReading(sample models.SensorSample) error {
	row := models.ReadingFromSample(sample)
	return s.write("insert_reading", func(tx *gorm.DB) error {
		return tx.Create(&row).Error
	})
}

func (s *Store) InsertPredictions(records []models.PredictionRecord) error {
	if len(records) == 0 {
		return nil
	}
	rows := common.Mapper(records, models.PredictionFromRecord)
	return s.write("insert_predictions", func(tx *gorm.DB) error {
		return tx.CreateInBatches(&rows, insertBatchSize).Error
	})
}

func (s *Store) InsertMaintenance(record models.MaintenanceRecord) error {
	row := models.MaintenanceFromRecord(record)
	return s.write("insert_maintenance", func(tx *gorm.DB) error {
		return tx.Create(&row).Error
	})
}

func (s *Store) cutoff(days int) string {
	return common.FormatTimestamp(s.now().Add(-time.Duration(days) * 24 * time.Hour))
}

func validateDays(days int) error {
	if days < 1 {
		return common.NewRangeError("days", days, "must be >= 1")
	}
	return nil
}

func (s *Store) GetHistorical(days int) (*models.HistoryWindow, error) {
	if err := validateDays(days); err != nil {
		return nil, err
	}
	cutoff := s.cutoff(days)

	window := &models.HistoryWindow{
		Readings:    []models.Reading{},
		Predictions: []models.Prediction{},
	}
	err := s.db.Conn.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("ts >= ?", cutoff).Order("ts asc, id asc").Find(&window.Readings).Error; err != nil {
			return err
		}
		return tx.Where("ts >= ?", cutoff).Order("ts asc, id asc").Find(&window.Predictions).Error
	})
	if err != nil {
		return nil, common.NewStoreError("get_historical", err)
	}
	return window, nil
}

func (s *Store) GetMaintenance(days int) ([]models.Maintenance, error) {
	if err := validateDays(days); err != nil {
		return nil, err
	}
	records := []models.Maintenance{}
	err := s.db.Conn.Where("ts >= ?", s.cutoff(days)).Order("ts asc, id asc").Find(&records).Error
	if err != nil {
		return nil, common.NewStoreError("get_maintenance", err)
	}
	return records, nil
}

// CleanupOld deletes readings and predictions strictly older than now - days.
// Maintenance records are kept.
func (s *Store) CleanupOld(days int) (CleanupResult, error) {
	if err := validateDays(days); err != nil {
		return CleanupResult{}, err
	}
	cutoff := s.cutoff(days)

	var result CleanupResult
	err := s.write("cleanup_old", func(tx *gorm.DB) error {
		readings := tx.Where("ts < ?", cutoff).Delete(&models.Reading{})
		if readings.Error != nil {
			return readings.Error
		}
		predictions := tx.Where("ts < ?", cutoff).Delete(&models.Prediction{})
		if predictions.Error != nil {
			return predictions.Error
		}
		result = CleanupResult{Readings: readings.RowsAffected, Predictions: predictions.RowsAffected}
		return nil
	})
	if err != nil {
		return CleanupResult{}, err
	}

	if result.Readings > 0 || result.Predictions > 0 {
		common.GetCategoryLogger(common.LoggerCategoryHistory).Info("Retention sweep removed rows",
			zap.Int("days", days),
			zap.String("cutoff", cutoff),
			zap.Reflect("removed", result),
		)
	}
	return result, nil
}

// ExportCSV renders GetHistorical(days) as one table: readings first, then
// predictions, with equipment and score columns blank for readings.
func (s *Store) ExportCSV(days int) (string, error) {
	window, err := s.GetHistorical(days)
	if err != nil {
		return "", err
	}

	var buf strings.Builder
	w := csv.NewWriter(&buf)
	records := make([][]string, 0, len(window.Readings)+len(window.Predictions)+1)
	records = append(records, ExportHeader)
	for _, r := range window.Readings {
		records = append(records, []string{
			"reading", r.Ts, "",
			formatFloat(r.Temperature), formatFloat(r.Vibration), formatFloat(r.Pressure), formatFloat(r.Current),
			"", "",
		})
	}
	for _, p := range window.Predictions {
		records = append(records, []string{
			"prediction", p.Ts, p.EquipmentID,
			formatFloat(p.Temperature), formatFloat(p.Vibration), formatFloat(p.Pressure), formatFloat(p.Current),
			formatFloat(p.FailureProbability), formatFloat(p.HealthScore),
		})
	}
	if err := w.WriteAll(records); err != nil {
		return "", common.NewStoreError("export_csv", err)
	}
	return buf.String(), nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
