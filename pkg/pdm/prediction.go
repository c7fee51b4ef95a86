package pdm

import (
	"fmt"

	"go.uber.org/zap"
	"liyu1981.xyz/predictive-maintenance/pkg/common"
	"liyu1981.xyz/predictive-maintenance/pkg/metrics"
	"liyu1981.xyz/predictive-maintenance/pkg/models"
	"liyu1981.xyz/predictive-maintenance/pkg/scoring"
)

const (
	DefaultPredictionCount = 15
	DefaultAlertCount      = 20
	MaxBatchCount          = 500
)

type PredictionBatch struct {
	Predictions []models.PredictionRecord `json:"predictions"`
	PersistStatus
}

// EquipmentID numbers equipment from 1: EQ-001, EQ-002, ...
func EquipmentID(i int) string {
	return fmt.Sprintf("EQ-%03d", i+1)
}

func batchCount(count, def int) (int, error) {
	if count == 0 {
		return def, nil
	}
	if count < 0 || count > MaxBatchCount {
		return 0, common.NewRangeError("count", count, fmt.Sprintf("must be within [1, %d]", MaxBatchCount))
	}
	return count, nil
}

// score runs the serving classifier over samples and builds one record per
// sample, in order.
func (p *PDM) score(equipmentIDs []string, samples []models.SensorSample) ([]models.PredictionRecord, error) {
	probabilities, err := p.Model.Classifier().PredictSamples(samples)
	if err != nil {
		return nil, err
	}
	records := make([]models.PredictionRecord, len(samples))
	for i, s := range samples {
		records[i] = scoring.NewPredictionRecord(s, equipmentIDs[i], probabilities[i])
	}
	metrics.ObservePredictions(len(records))
	return records, nil
}

// scoreGenerated scores count fresh synthetic readings, one per equipment,
// all stamped with the scoring time.
func (p *PDM) scoreGenerated(count int) ([]models.PredictionRecord, error) {
	samples, err := p.generate(count, 1)
	if err != nil {
		return nil, err
	}
	now := p.now().UTC()
	ids := make([]string, len(samples))
	for i := range samples {
		samples[i].Timestamp = now
		ids[i] = EquipmentID(i)
	}
	return p.score(ids, samples)
}

func (p *PDM) predictBatch(count int) (*PredictionBatch, error) {
	logger := common.GetCategoryLogger(common.LoggerCategoryPrediction)

	n, err := batchCount(count, DefaultPredictionCount)
	if err != nil {
		return nil, err
	}
	records, err := p.scoreGenerated(n)
	if err != nil {
		return nil, err
	}

	logger.Info("Scored prediction batch", zap.Int("count", len(records)))

	status := p.persist("insert_predictions", func() error {
		return p.Store.InsertPredictions(records)
	})
	return &PredictionBatch{Predictions: records, PersistStatus: status}, nil
}

// predictSamples scores caller supplied readings. Missing equipment ids are
// numbered by position and zero timestamps take the scoring time.
func (p *PDM) predictSamples(equipmentIDs []string, samples []models.SensorSample) (*PredictionBatch, error) {
	logger := common.GetCategoryLogger(common.LoggerCategoryPrediction)

	if len(samples) == 0 || len(samples) > MaxBatchCount {
		return nil, common.NewRangeError("samples", len(samples), fmt.Sprintf("must hold 1 to %d readings", MaxBatchCount))
	}
	if len(equipmentIDs) > len(samples) {
		return nil, common.NewRangeError("equipment_ids", len(equipmentIDs), "more ids than samples")
	}

	now := p.now().UTC()
	ids := make([]string, len(samples))
	stamped := make([]models.SensorSample, len(samples))
	for i, s := range samples {
		ids[i] = EquipmentID(i)
		if i < len(equipmentIDs) && equipmentIDs[i] != "" {
			ids[i] = equipmentIDs[i]
		}
		if s.Timestamp.IsZero() {
			s.Timestamp = now
		}
		stamped[i] = s
	}

	records, err := p.score(ids, stamped)
	if err != nil {
		return nil, err
	}

	logger.Info("Scored live samples", zap.Int("count", len(records)))

	status := p.persist("insert_predictions", func() error {
		return p.Store.InsertPredictions(records)
	})
	return &PredictionBatch{Predictions: records, PersistStatus: status}, nil
}

type IPredictionImpl struct {
	pdm *PDM
}

func (ip *IPredictionImpl) PredictBatch(count int) (*PredictionBatch, error) {
	return ip.pdm.predictBatch(count)
}

func (ip *IPredictionImpl) PredictSamples(equipmentIDs []string, samples []models.SensorSample) (*PredictionBatch, error) {
	return ip.pdm.predictSamples(equipmentIDs, samples)
}

func (p *PDM) GetIPrediction() IPrediction {
	return &IPredictionImpl{pdm: p}
}
