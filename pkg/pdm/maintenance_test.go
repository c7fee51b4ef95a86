package pdm_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"liyu1981.xyz/predictive-maintenance/pkg/common"
)

func TestRecordMaintenance(t *testing.T) {
	common.SetTestLoggerNop()
	p, _ := GetPDMWithMemorySqlite(t)

	record, err := p.Maintenance.Record("EQ-004", "replace bearing", "vibration trending up")
	require.NoError(t, err)
	assert.Equal(t, testNow, record.Timestamp)

	saved, err := p.History.GetMaintenance(1)
	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.Equal(t, "EQ-004", saved[0].EquipmentID)
	assert.Equal(t, "replace bearing", saved[0].Action)
	assert.Equal(t, common.FormatTimestamp(testNow), saved[0].Ts)
}

func TestRecordMaintenanceValidation(t *testing.T) {
	common.SetTestLoggerNop()
	_, p, _ := GetPDMWithMockStore(t)

	var rangeErr *common.RangeError
	_, err := p.Maintenance.Record(" ", "inspect", "")
	require.True(t, errors.As(err, &rangeErr))
	assert.Equal(t, "equipment_id", rangeErr.Field)

	_, err = p.Maintenance.Record("EQ-001", "", "")
	require.True(t, errors.As(err, &rangeErr))
	assert.Equal(t, "action", rangeErr.Field)
}

func TestRecordMaintenanceStoreFailure(t *testing.T) {
	common.SetTestLoggerNop()
	_, p, store := GetPDMWithMockStore(t)

	storeErr := common.NewStoreError("insert_maintenance", errors.New("constraint failed"))
	store.EXPECT().InsertMaintenance(gomock.Any()).Return(storeErr)

	record, err := p.Maintenance.Record("EQ-001", "inspect", "")
	assert.Nil(t, record)
	assert.ErrorIs(t, err, storeErr)
}

func TestHistoryPassThrough(t *testing.T) {
	common.SetTestLoggerNop()
	p, _ := GetPDMWithMemorySqlite(t)

	_, err := p.Prediction.PredictBatch(3)
	require.NoError(t, err)
	_, err = p.Sensor.LatestReading()
	require.NoError(t, err)

	window, err := p.History.GetHistorical(1)
	require.NoError(t, err)
	assert.Len(t, window.Readings, 1)
	assert.Len(t, window.Predictions, 3)

	csv, err := p.History.ExportCSV(1)
	require.NoError(t, err)
	assert.Contains(t, csv, "prediction,")
	assert.Contains(t, csv, "reading,")
}
