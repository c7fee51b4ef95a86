package pdm_test

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap/zapcore"

	"liyu1981.xyz/predictive-maintenance/pkg/common"
	"liyu1981.xyz/predictive-maintenance/pkg/history"
	"liyu1981.xyz/predictive-maintenance/pkg/metrics"
	"liyu1981.xyz/predictive-maintenance/pkg/models"
	"liyu1981.xyz/predictive-maintenance/pkg/pdm"
	"liyu1981.xyz/predictive-maintenance/pkg/scoring"
)

func TestPredictBatch(t *testing.T) {
	common.SetTestLoggerNop()
	p, store := GetPDMWithMemorySqlite(t)

	batch, err := p.Prediction.PredictBatch(0)
	require.NoError(t, err)
	require.Len(t, batch.Predictions, pdm.DefaultPredictionCount)
	assert.True(t, batch.Persisted)
	assert.Empty(t, batch.PersistError)

	for i, r := range batch.Predictions {
		assert.Equal(t, pdm.EquipmentID(i), r.EquipmentID)
		assert.Equal(t, testNow, r.Timestamp)
		assert.GreaterOrEqual(t, r.FailureProbability, 0.0)
		assert.LessOrEqual(t, r.FailureProbability, 1.0)
		assert.Equal(t, scoring.HealthScore(r.FailureProbability), r.HealthScore)
	}
	assert.Equal(t, "EQ-001", batch.Predictions[0].EquipmentID)
	assert.Equal(t, "EQ-015", batch.Predictions[14].EquipmentID)

	window, err := store.GetHistorical(1)
	require.NoError(t, err)
	require.Len(t, window.Predictions, pdm.DefaultPredictionCount)
	assert.Equal(t, common.FormatTimestamp(testNow), window.Predictions[0].Ts)
}

func TestPredictBatchSameSeedSameScores(t *testing.T) {
	common.SetTestLoggerNop()
	p, _ := GetPDMWithMemorySqlite(t)

	first, err := p.Prediction.PredictBatch(40)
	require.NoError(t, err)
	second, err := p.Prediction.PredictBatch(40)
	require.NoError(t, err)
	assert.Equal(t, first.Predictions, second.Predictions)
}

func TestPredictBatchCountRange(t *testing.T) {
	common.SetTestLoggerNop()
	_, p, _ := GetPDMWithMockStore(t)

	var rangeErr *common.RangeError
	_, err := p.Prediction.PredictBatch(-1)
	assert.True(t, errors.As(err, &rangeErr))
	_, err = p.Prediction.PredictBatch(pdm.MaxBatchCount + 1)
	assert.True(t, errors.As(err, &rangeErr))
}

func TestPredictBatchPersistFailureKeepsScores(t *testing.T) {
	var buf bytes.Buffer
	common.SetTestCaptureLogger(&buf, zapcore.ErrorLevel)
	_, p, store := GetPDMWithMockStore(t)

	before := testutil.ToFloat64(metrics.PersistFailures("insert_predictions"))

	storeErr := common.NewStoreError("insert_predictions", errors.New("database is locked"))
	store.EXPECT().InsertPredictions(gomock.Len(pdm.DefaultPredictionCount)).Return(storeErr).Times(1)
	// no sweep after a failed write
	store.EXPECT().CleanupOld(gomock.Any()).Times(0)

	batch, err := p.Prediction.PredictBatch(0)
	require.NoError(t, err)
	assert.Len(t, batch.Predictions, pdm.DefaultPredictionCount)
	assert.False(t, batch.Persisted)
	assert.Contains(t, batch.PersistError, "database is locked")

	assert.Equal(t, before+1, testutil.ToFloat64(metrics.PersistFailures("insert_predictions")))

	logs := ParseLogs(&buf)
	require.Len(t, logs, 1)
	assert.Equal(t, "error", logs[0]["level"])
	assert.Equal(t, "insert_predictions", logs[0]["op"])
	assert.Equal(t, "history", logs[0]["category"])
}

func TestPredictSamples(t *testing.T) {
	common.SetTestLoggerNop()
	_, p, store := GetPDMWithMockStore(t)

	var saved []models.PredictionRecord
	store.EXPECT().InsertPredictions(gomock.Any()).DoAndReturn(func(records []models.PredictionRecord) error {
		saved = records
		return nil
	})
	store.EXPECT().CleanupOld(90).Return(history.CleanupResult{}, nil)

	stamped := testNow.Add(-15 * time.Minute)
	samples := []models.SensorSample{
		{Timestamp: stamped, Temperature: 61, Vibration: 2.0, Pressure: 12, Current: 110},
		{Temperature: 75, Vibration: 4.2, Pressure: 9.1, Current: 130},
	}

	batch, err := p.Prediction.PredictSamples([]string{"PUMP-7"}, samples)
	require.NoError(t, err)
	require.Len(t, batch.Predictions, 2)
	assert.True(t, batch.Persisted)
	assert.Equal(t, batch.Predictions, saved)

	assert.Equal(t, "PUMP-7", batch.Predictions[0].EquipmentID)
	assert.Equal(t, "EQ-002", batch.Predictions[1].EquipmentID)
	assert.Equal(t, stamped, batch.Predictions[0].Timestamp)
	assert.Equal(t, testNow, batch.Predictions[1].Timestamp)

	probabilities, err := p.Model.Classifier().PredictSamples(samples)
	require.NoError(t, err)
	assert.Equal(t, probabilities[0], batch.Predictions[0].FailureProbability)
}

func TestPredictSamplesRange(t *testing.T) {
	common.SetTestLoggerNop()
	_, p, _ := GetPDMWithMockStore(t)

	var rangeErr *common.RangeError
	_, err := p.Prediction.PredictSamples(nil, nil)
	assert.True(t, errors.As(err, &rangeErr))

	_, err = p.Prediction.PredictSamples([]string{"A", "B"}, []models.SensorSample{{}})
	assert.True(t, errors.As(err, &rangeErr))
}
