package pdm_test

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"liyu1981.xyz/predictive-maintenance/pkg/common"
	"liyu1981.xyz/predictive-maintenance/pkg/history"
	"liyu1981.xyz/predictive-maintenance/pkg/metrics"
	"liyu1981.xyz/predictive-maintenance/pkg/models"
)

func TestLatestReading(t *testing.T) {
	common.SetTestLoggerNop()
	_, p, store := GetPDMWithMockStore(t)

	var saved models.SensorSample
	gomock.InOrder(
		store.EXPECT().InsertReading(gomock.Any()).DoAndReturn(func(s models.SensorSample) error {
			saved = s
			return nil
		}),
		store.EXPECT().CleanupOld(90).Return(history.CleanupResult{Readings: 3}, nil),
	)

	reading, err := p.Sensor.LatestReading()
	require.NoError(t, err)
	assert.True(t, reading.Persisted)
	assert.Equal(t, saved, reading.SensorSample)

	// last of 20 points spread over the trailing day
	assert.Equal(t, testNow.Add(-72*time.Minute), reading.Timestamp)
}

func TestLatestReadingSweepFailureStillPersisted(t *testing.T) {
	common.SetTestLoggerNop()
	_, p, store := GetPDMWithMockStore(t)

	before := testutil.ToFloat64(metrics.PersistFailures("cleanup_old"))

	store.EXPECT().InsertReading(gomock.Any()).Return(nil)
	store.EXPECT().CleanupOld(90).Return(history.CleanupResult{}, common.NewStoreError("cleanup_old", errors.New("disk I/O error")))

	reading, err := p.Sensor.LatestReading()
	require.NoError(t, err)
	assert.True(t, reading.Persisted)
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.PersistFailures("cleanup_old")))
}

func TestLatestReadingWriteFailure(t *testing.T) {
	common.SetTestLoggerNop()
	_, p, store := GetPDMWithMockStore(t)

	store.EXPECT().InsertReading(gomock.Any()).Return(errors.New("read-only database"))

	reading, err := p.Sensor.LatestReading()
	require.NoError(t, err)
	assert.False(t, reading.Persisted)
	assert.Equal(t, "read-only database", reading.PersistError)
}
