package pdm

import (
	"errors"

	"go.uber.org/zap"
	"liyu1981.xyz/predictive-maintenance/pkg/common"
	"liyu1981.xyz/predictive-maintenance/pkg/metrics"
)

// PersistStatus reports the write that followed a scoring call. A failed
// write never fails the call itself.
type PersistStatus struct {
	Persisted    bool   `json:"persisted"`
	PersistError string `json:"persist_error,omitempty"`
}

// persist runs write and then the retention sweep. Failures of either are
// logged and counted; only a failed write clears Persisted.
func (p *PDM) persist(op string, write func() error) PersistStatus {
	if err := write(); err != nil {
		p.recordPersistFailure(op, err)
		return PersistStatus{Persisted: false, PersistError: err.Error()}
	}

	if _, err := p.Store.CleanupOld(p.RetentionDays); err != nil {
		p.recordPersistFailure("cleanup_old", err)
	}
	return PersistStatus{Persisted: true}
}

func (p *PDM) recordPersistFailure(op string, err error) {
	var storeErr *common.StoreError
	if errors.As(err, &storeErr) {
		op = storeErr.Op
	}
	common.GetCategoryLogger(common.LoggerCategoryHistory).Error("Persistence failed, scoring result kept",
		zap.String("op", op),
		zap.Error(err),
	)
	metrics.ObservePersistFailure(op)
}
