package pdm

import (
	"go.uber.org/zap"
	"liyu1981.xyz/predictive-maintenance/pkg/common"
	"liyu1981.xyz/predictive-maintenance/pkg/metrics"
	"liyu1981.xyz/predictive-maintenance/pkg/models"
	"liyu1981.xyz/predictive-maintenance/pkg/scoring"
)

// currentAlerts scores a fresh live batch and derives alerts from it. The
// batch is not persisted.
func (p *PDM) currentAlerts(count int) ([]models.AlertRecord, error) {
	logger := common.GetLoggerWith(
		common.LoggerNamePDMCore,
		zap.String(common.LoggerFieldPDMCategory, common.LoggerCategoryAlert),
	)

	n, err := batchCount(count, DefaultAlertCount)
	if err != nil {
		return nil, err
	}
	records, err := p.scoreGenerated(n)
	if err != nil {
		return nil, err
	}

	alerts := p.alertsFor(records)
	if len(alerts) > 0 {
		logger.Info("Alerts derived", zap.Int("scored", len(records)), zap.Int("alerts", len(alerts)))
	}
	return alerts, nil
}

// alertsFor counts every derived alert, live or from stored history.
func (p *PDM) alertsFor(records []models.PredictionRecord) []models.AlertRecord {
	alerts := scoring.DeriveAlerts(records, p.now().UTC())
	for _, a := range alerts {
		metrics.ObserveAlert(string(a.Severity))
	}
	return alerts
}

type IAlertImpl struct {
	pdm *PDM
}

func (ia *IAlertImpl) CurrentAlerts(count int) ([]models.AlertRecord, error) {
	return ia.pdm.currentAlerts(count)
}

// AlertsFor derives alerts from any batch, e.g. stored predictions.
func (ia *IAlertImpl) AlertsFor(records []models.PredictionRecord) []models.AlertRecord {
	return ia.pdm.alertsFor(records)
}

func (p *PDM) GetIAlert() IAlert {
	return &IAlertImpl{pdm: p}
}
