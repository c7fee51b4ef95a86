package pdm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"liyu1981.xyz/predictive-maintenance/pkg/common"
	"liyu1981.xyz/predictive-maintenance/pkg/models"
	"liyu1981.xyz/predictive-maintenance/pkg/pdm"
	pdmmocks "liyu1981.xyz/predictive-maintenance/pkg/pdm/mocks"
)

func TestWithServicesReplacesOnlyGiven(t *testing.T) {
	common.SetTestLoggerNop()
	ctrl, p, _ := GetPDMWithMockStore(t)

	original := p.Prediction
	alert := pdmmocks.NewMockIAlert(ctrl)
	p.WithServices(pdm.ServiceOpts{Alert: alert})

	assert.Same(t, alert, p.Alert)
	assert.Same(t, original, p.Prediction)

	alert.EXPECT().CurrentAlerts(5).Return([]models.AlertRecord{{EquipmentID: "EQ-009"}}, nil)
	alerts, err := p.Alert.CurrentAlerts(5)
	require.NoError(t, err)
	assert.Equal(t, "EQ-009", alerts[0].EquipmentID)
}

func TestEquipmentID(t *testing.T) {
	assert.Equal(t, "EQ-001", pdm.EquipmentID(0))
	assert.Equal(t, "EQ-015", pdm.EquipmentID(14))
	assert.Equal(t, "EQ-1000", pdm.EquipmentID(999))
}

func TestServicesUseGomockMatchers(t *testing.T) {
	common.SetTestLoggerNop()
	ctrl := gomock.NewController(t)
	sensor := pdmmocks.NewMockISensor(ctrl)

	p := pdm.New(nil, nil, 90).WithServices(pdm.ServiceOpts{Sensor: sensor})
	sensor.EXPECT().LatestReading().Return(&pdm.ReadingResult{
		SensorSample:  models.SensorSample{Temperature: 64},
		PersistStatus: pdm.PersistStatus{Persisted: true},
	}, nil)

	reading, err := p.Sensor.LatestReading()
	require.NoError(t, err)
	assert.Equal(t, 64.0, reading.Temperature)
}
