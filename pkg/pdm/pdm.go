// Package pdm wires the generator, classifier, scoring and history store
// into the operations the transports call.
package pdm

import (
	"time"

	"liyu1981.xyz/predictive-maintenance/pkg/history"
	"liyu1981.xyz/predictive-maintenance/pkg/models"
)

type ISensor interface {
	LatestReading() (*ReadingResult, error)
}

type IPrediction interface {
	PredictBatch(count int) (*PredictionBatch, error)
	PredictSamples(equipmentIDs []string, samples []models.SensorSample) (*PredictionBatch, error)
}

type IAlert interface {
	CurrentAlerts(count int) ([]models.AlertRecord, error)
	AlertsFor(records []models.PredictionRecord) []models.AlertRecord
}

type IMaintenance interface {
	Record(equipmentID, action, notes string) (*models.MaintenanceRecord, error)
}

type IHistory interface {
	GetHistorical(days int) (*models.HistoryWindow, error)
	GetMaintenance(days int) ([]models.Maintenance, error)
	ExportCSV(days int) (string, error)
}

type PDM struct {
	Store         history.IStore
	Model         *Handle
	RetentionDays int

	Sensor      ISensor
	Prediction  IPrediction
	Alert       IAlert
	Maintenance IMaintenance
	History     IHistory

	now  func() time.Time
	seed func() int64
}

type ServiceOpts struct {
	Sensor      ISensor
	Prediction  IPrediction
	Alert       IAlert
	Maintenance IMaintenance
	History     IHistory
}

// New returns a PDM with all default services wired in.
func New(store history.IStore, model *Handle, retentionDays int) *PDM {
	p := &PDM{
		Store:         store,
		Model:         model,
		RetentionDays: retentionDays,
		now:           time.Now,
		seed:          func() int64 { return time.Now().UnixNano() },
	}
	return p.WithServices(ServiceOpts{
		Sensor:      p.GetISensor(),
		Prediction:  p.GetIPrediction(),
		Alert:       p.GetIAlert(),
		Maintenance: p.GetIMaintenance(),
		History:     p.GetIHistory(),
	})
}

func (p *PDM) WithServices(opts ServiceOpts) *PDM {
	if opts.Sensor != nil {
		p.Sensor = opts.Sensor
	}
	if opts.Prediction != nil {
		p.Prediction = opts.Prediction
	}
	if opts.Alert != nil {
		p.Alert = opts.Alert
	}
	if opts.Maintenance != nil {
		p.Maintenance = opts.Maintenance
	}
	if opts.History != nil {
		p.History = opts.History
	}
	return p
}

// WithClock replaces the clock used for generated windows, scoring
// timestamps and maintenance stamps.
func (p *PDM) WithClock(now func() time.Time) *PDM {
	p.now = now
	return p
}

// WithSeed replaces the per-call generator seed source.
func (p *PDM) WithSeed(seed func() int64) *PDM {
	p.seed = seed
	return p
}
