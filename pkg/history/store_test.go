package history

import (
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"liyu1981.xyz/predictive-maintenance/pkg/common"
	"liyu1981.xyz/predictive-maintenance/pkg/db"
	"liyu1981.xyz/predictive-maintenance/pkg/models"
	_ "liyu1981.xyz/predictive-maintenance/pkg/testing"
)

var now = time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	common.SetTestLoggerNop()

	d, err := db.Open(db.UseIsolatedMemorySqliteDialector())
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })

	return NewStore(d).WithClock(func() time.Time { return now })
}

func sampleAt(ts time.Time, temp float64) models.SensorSample {
	return models.SensorSample{Timestamp: ts, Temperature: temp, Vibration: 2.1, Pressure: 11.9, Current: 111}
}

func predictionAt(ts time.Time, id string, p float64) models.PredictionRecord {
	return models.PredictionRecord{
		SensorSample:       sampleAt(ts, 62),
		EquipmentID:        id,
		FailureProbability: p,
		HealthScore:        (1 - p) * 100,
	}
}

func daysAgo(d float64) time.Time {
	return now.Add(-time.Duration(d * 24 * float64(time.Hour)))
}

func TestInsertAndGetHistorical(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.InsertReading(sampleAt(daysAgo(2), 61)))
	require.NoError(t, s.InsertReading(sampleAt(daysAgo(0.5), 63)))
	require.NoError(t, s.InsertReading(sampleAt(daysAgo(10), 59)))
	require.NoError(t, s.InsertPredictions([]models.PredictionRecord{
		predictionAt(daysAgo(0.1), "EQ-002", 0.2),
		predictionAt(daysAgo(0.2), "EQ-001", 0.7),
		predictionAt(daysAgo(8), "EQ-003", 0.1),
	}))

	window, err := s.GetHistorical(7)
	require.NoError(t, err)

	require.Len(t, window.Readings, 2)
	assert.Equal(t, 61.0, window.Readings[0].Temperature)
	assert.Equal(t, 63.0, window.Readings[1].Temperature)

	require.Len(t, window.Predictions, 2)
	assert.Equal(t, "EQ-001", window.Predictions[0].EquipmentID)
	assert.Equal(t, "EQ-002", window.Predictions[1].EquipmentID)
	assert.InDelta(t, 30.0, window.Predictions[0].HealthScore, 1e-9)
	assert.Less(t, window.Predictions[0].Ts, window.Predictions[1].Ts)

	window, err = s.GetHistorical(30)
	require.NoError(t, err)
	assert.Len(t, window.Readings, 3)
	assert.Len(t, window.Predictions, 3)
}

func TestGetHistoricalEmpty(t *testing.T) {
	s := newTestStore(t)

	window, err := s.GetHistorical(1)
	require.NoError(t, err)
	assert.NotNil(t, window.Readings)
	assert.NotNil(t, window.Predictions)
	assert.Empty(t, window.Readings)
}

func TestDaysRangeErrors(t *testing.T) {
	s := newTestStore(t)
	var rangeErr *common.RangeError

	_, err := s.GetHistorical(0)
	assert.True(t, errors.As(err, &rangeErr))
	_, err = s.CleanupOld(-1)
	assert.True(t, errors.As(err, &rangeErr))
	_, err = s.ExportCSV(0)
	assert.True(t, errors.As(err, &rangeErr))
	_, err = s.GetMaintenance(0)
	assert.True(t, errors.As(err, &rangeErr))
}

func TestCleanupOldIsIdempotent(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.InsertReading(sampleAt(daysAgo(120), 50)))
	require.NoError(t, s.InsertReading(sampleAt(daysAgo(90.5), 51)))
	require.NoError(t, s.InsertReading(sampleAt(daysAgo(89), 52)))
	require.NoError(t, s.InsertPredictions([]models.PredictionRecord{
		predictionAt(daysAgo(95), "EQ-001", 0.3),
		predictionAt(daysAgo(1), "EQ-001", 0.3),
	}))
	require.NoError(t, s.InsertMaintenance(models.MaintenanceRecord{
		EquipmentID: "EQ-001", Action: "inspect", Timestamp: daysAgo(200),
	}))

	result, err := s.CleanupOld(90)
	require.NoError(t, err)
	assert.Equal(t, CleanupResult{Readings: 2, Predictions: 1}, result)

	window, err := s.GetHistorical(91)
	require.NoError(t, err)
	require.Len(t, window.Readings, 1)
	assert.Equal(t, 52.0, window.Readings[0].Temperature)
	cutoff := common.FormatTimestamp(daysAgo(90))
	for _, r := range window.Readings {
		assert.GreaterOrEqual(t, r.Ts, cutoff)
	}
	assert.Len(t, window.Predictions, 1)

	result, err = s.CleanupOld(90)
	require.NoError(t, err)
	assert.Equal(t, CleanupResult{}, result)

	again, err := s.GetHistorical(91)
	require.NoError(t, err)
	assert.Equal(t, window, again)

	// maintenance is not subject to retention
	maint, err := s.GetMaintenance(365)
	require.NoError(t, err)
	assert.Len(t, maint, 1)
}

func TestCleanupKeepsRowExactlyAtCutoff(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.InsertReading(sampleAt(daysAgo(90), 50)))
	result, err := s.CleanupOld(90)
	require.NoError(t, err)
	assert.Equal(t, int64(0), result.Readings)
}

func TestInsertPredictionsIsAtomic(t *testing.T) {
	s := newTestStore(t)

	// one rejected row aborts the whole batch
	require.NoError(t, s.db.Conn.Exec(
		"CREATE TRIGGER reject_bad BEFORE INSERT ON predictions WHEN NEW.equipment_id = 'BAD' BEGIN SELECT RAISE(ABORT, 'rejected'); END",
	).Error)

	err := s.InsertPredictions([]models.PredictionRecord{
		predictionAt(daysAgo(0.1), "EQ-001", 0.2),
		predictionAt(daysAgo(0.1), "BAD", 0.2),
		predictionAt(daysAgo(0.1), "EQ-003", 0.2),
	})
	var storeErr *common.StoreError
	require.Error(t, err)
	require.True(t, errors.As(err, &storeErr))
	assert.Equal(t, "insert_predictions", storeErr.Op)

	window, err := s.GetHistorical(1)
	require.NoError(t, err)
	assert.Empty(t, window.Predictions)

	assert.NoError(t, s.InsertPredictions(nil))
}

func TestConcurrentWrites(t *testing.T) {
	s := newTestStore(t)

	var wg sync.WaitGroup
	for i := range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			batch := []models.PredictionRecord{
				predictionAt(daysAgo(0.1), "EQ-A", float64(i)/10),
				predictionAt(daysAgo(0.1), "EQ-B", float64(i)/10),
			}
			assert.NoError(t, s.InsertPredictions(batch))
			assert.NoError(t, s.InsertReading(sampleAt(daysAgo(0.1), float64(i))))
		}()
	}
	wg.Wait()

	window, err := s.GetHistorical(1)
	require.NoError(t, err)
	assert.Len(t, window.Predictions, 20)
	assert.Len(t, window.Readings, 10)
}

func TestExportCSV(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.InsertReading(sampleAt(daysAgo(1), 61.5)))
	require.NoError(t, s.InsertReading(sampleAt(daysAgo(0.5), 62)))
	require.NoError(t, s.InsertPredictions([]models.PredictionRecord{
		predictionAt(daysAgo(0.2), "EQ-001", 0.25),
	}))

	out, err := s.ExportCSV(7)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 2+1+1)
	assert.Equal(t, "type,ts,equipment_id,temperature,vibration,pressure,current,failure_probability,health_score", lines[0])
	assert.Equal(t, common.FormatTimestamp(daysAgo(1)), strings.Split(lines[1], ",")[1])
	assert.True(t, strings.HasPrefix(lines[1], "reading,"))
	assert.True(t, strings.HasSuffix(lines[1], ",61.5,2.1,11.9,111,,"))
	assert.True(t, strings.HasPrefix(lines[3], "prediction,"))
	assert.True(t, strings.HasSuffix(lines[3], ",EQ-001,62,2.1,11.9,111,0.25,75"))

	for _, line := range lines {
		assert.Len(t, strings.Split(line, ","), len(ExportHeader))
	}

	// the reading exactly one day old sits on the cutoff and is kept
	lastDay, err := s.ExportCSV(1)
	require.NoError(t, err)
	lastDayLines := strings.Split(strings.TrimSuffix(lastDay, "\n"), "\n")
	require.Len(t, lastDayLines, 3+1)
	assert.Equal(t, common.FormatTimestamp(daysAgo(1)), strings.Split(lastDayLines[1], ",")[1])

	s.WithClock(func() time.Time { return now.Add(30 * 24 * time.Hour) })
	empty, err := s.ExportCSV(1)
	require.NoError(t, err)
	assert.Equal(t, strings.Join(ExportHeader, ",")+"\n", empty)
}

func TestMaintenanceWindow(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.InsertMaintenance(models.MaintenanceRecord{
		EquipmentID: "EQ-007", Action: "replace bearing", Notes: "vibration trend", Timestamp: daysAgo(3),
	}))
	require.NoError(t, s.InsertMaintenance(models.MaintenanceRecord{
		EquipmentID: "EQ-002", Action: "inspect", Timestamp: daysAgo(1),
	}))

	records, err := s.GetMaintenance(2)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "EQ-002", records[0].EquipmentID)

	records, err = s.GetMaintenance(7)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "replace bearing", records[0].Action)
	assert.Equal(t, "vibration trend", records[0].Notes)
}
