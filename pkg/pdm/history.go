package pdm

import (
	"liyu1981.xyz/predictive-maintenance/pkg/models"
)

// IHistoryImpl passes reads to the store. Callers clamp days first; the
// store rejects anything below 1.
type IHistoryImpl struct {
	pdm *PDM
}

func (ih *IHistoryImpl) GetHistorical(days int) (*models.HistoryWindow, error) {
	return ih.pdm.Store.GetHistorical(days)
}

func (ih *IHistoryImpl) GetMaintenance(days int) ([]models.Maintenance, error) {
	return ih.pdm.Store.GetMaintenance(days)
}

func (ih *IHistoryImpl) ExportCSV(days int) (string, error) {
	return ih.pdm.Store.ExportCSV(days)
}

func (p *PDM) GetIHistory() IHistory {
	return &IHistoryImpl{pdm: p}
}
