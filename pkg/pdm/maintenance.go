package pdm

import (
	"strings"

	"go.uber.org/zap"
	"liyu1981.xyz/predictive-maintenance/pkg/common"
	"liyu1981.xyz/predictive-maintenance/pkg/models"
)

// recordMaintenance is the one write whose failure is returned: an operator
// action that was not stored has no result to hand back.
func (p *PDM) recordMaintenance(equipmentID, action, notes string) (*models.MaintenanceRecord, error) {
	logger := common.GetLoggerWith(
		common.LoggerNamePDMCore,
		zap.String(common.LoggerFieldPDMCategory, common.LoggerCategoryMaint),
	)

	if strings.TrimSpace(equipmentID) == "" {
		return nil, common.NewRangeError("equipment_id", equipmentID, "must not be empty")
	}
	if strings.TrimSpace(action) == "" {
		return nil, common.NewRangeError("action", action, "must not be empty")
	}

	record := models.MaintenanceRecord{
		EquipmentID: equipmentID,
		Action:      action,
		Notes:       notes,
		Timestamp:   p.now().UTC(),
	}

	logger.Info("Received maintenance record", zap.Reflect("record", record))

	if err := p.Store.InsertMaintenance(record); err != nil {
		p.recordPersistFailure("insert_maintenance", err)
		return nil, err
	}

	logger.Info("Maintenance record saved", zap.String("equipment_id", equipmentID))
	return &record, nil
}

type IMaintenanceImpl struct {
	pdm *PDM
}

func (im *IMaintenanceImpl) Record(equipmentID, action, notes string) (*models.MaintenanceRecord, error) {
	return im.pdm.recordMaintenance(equipmentID, action, notes)
}

func (p *PDM) GetIMaintenance() IMaintenance {
	return &IMaintenanceImpl{pdm: p}
}
