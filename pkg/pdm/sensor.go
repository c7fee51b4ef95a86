package pdm

import (
	"go.uber.org/zap"
	"liyu1981.xyz/predictive-maintenance/pkg/common"
	"liyu1981.xyz/predictive-maintenance/pkg/models"
	"liyu1981.xyz/predictive-maintenance/pkg/signal"
)

// Latest reading window: the last of 20 points over one day.
const (
	latestReadingPoints = 20
	latestReadingDays   = 1
)

type ReadingResult struct {
	models.SensorSample
	PersistStatus
}

func (p *PDM) generate(numPoints, days int) ([]models.SensorSample, error) {
	samples, err := signal.NewGenerator(p.now).Generate(signal.Params{
		NumPoints:   numPoints,
		Days:        days,
		AnomalyRate: signal.DefaultAnomalyRate,
		Seed:        p.seed(),
	})
	if err != nil {
		return nil, err
	}
	return signal.Unlabeled(samples), nil
}

func (p *PDM) latestReading() (*ReadingResult, error) {
	logger := common.GetLoggerWith(
		common.LoggerNamePDMCore,
		zap.String(common.LoggerFieldPDMCategory, common.LoggerCategorySignal),
	)

	samples, err := p.generate(latestReadingPoints, latestReadingDays)
	if err != nil {
		return nil, err
	}
	sample := samples[len(samples)-1]

	logger.Debug("Generated reading", zap.Reflect("reading", sample))

	status := p.persist("insert_reading", func() error {
		return p.Store.InsertReading(sample)
	})
	return &ReadingResult{SensorSample: sample, PersistStatus: status}, nil
}

type ISensorImpl struct {
	pdm *PDM
}

func (is *ISensorImpl) LatestReading() (*ReadingResult, error) {
	return is.pdm.latestReading()
}

func (p *PDM) GetISensor() ISensor {
	return &ISensorImpl{pdm: p}
}
