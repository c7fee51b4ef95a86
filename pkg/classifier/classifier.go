// Package classifier trains and serves the failure classifier. A Classifier
// is immutable once built; replacing it means training or loading a new one.
package classifier

import (
	"fmt"
	"math"
	"slices"

	"go.uber.org/zap"
	"liyu1981.xyz/predictive-maintenance/pkg/common"
	"liyu1981.xyz/predictive-maintenance/pkg/models"
	"liyu1981.xyz/predictive-maintenance/pkg/signal"
)

type Hyperparameters struct {
	NEstimators     int     `json:"n_estimators" yaml:"n_estimators"`
	MaxDepth        int     `json:"max_depth" yaml:"max_depth"` // 0 grows until leaves are pure
	MinSamplesSplit int     `json:"min_samples_split" yaml:"min_samples_split"`
	MaxFeatures     int     `json:"max_features" yaml:"max_features"` // 0 means sqrt(#features)
	Seed            int64   `json:"seed" yaml:"seed"`
	ValidationSplit float64 `json:"validation_split" yaml:"validation_split"`
}

func DefaultHyperparameters() Hyperparameters {
	return Hyperparameters{
		NEstimators:     200,
		MinSamplesSplit: 2,
		Seed:            42,
		ValidationSplit: 0.2,
	}
}

func (h Hyperparameters) Validate() error {
	if h.NEstimators < 1 {
		return common.NewRangeError("n_estimators", h.NEstimators, "must be >= 1")
	}
	if h.MaxDepth < 0 {
		return common.NewRangeError("max_depth", h.MaxDepth, "must be >= 0")
	}
	if h.MinSamplesSplit < 2 {
		return common.NewRangeError("min_samples_split", h.MinSamplesSplit, "must be >= 2")
	}
	if h.MaxFeatures < 0 || h.MaxFeatures > len(models.FeatureColumns) {
		return common.NewRangeError("max_features", h.MaxFeatures, "must be within [0, 4]")
	}
	if h.ValidationSplit < 0 || h.ValidationSplit >= 1 {
		return common.NewRangeError("validation_split", h.ValidationSplit, "must be within [0, 1)")
	}
	return nil
}

func (h Hyperparameters) treeParams() treeParams {
	maxFeatures := h.MaxFeatures
	if maxFeatures == 0 {
		maxFeatures = max(1, int(math.Sqrt(float64(len(models.FeatureColumns)))))
	}
	return treeParams{
		maxDepth:        h.MaxDepth,
		minSamplesSplit: h.MinSamplesSplit,
		maxFeatures:     maxFeatures,
	}
}

// Report summarises the held-out validation of a training run.
type Report struct {
	TrainSize          int     `json:"train_size"`
	ValidationSize     int     `json:"validation_size"`
	ValidationAccuracy float64 `json:"validation_accuracy"`
	TrainPositiveRate  float64 `json:"train_positive_rate"`
}

type Classifier struct {
	features []string
	forest   forest
	params   Hyperparameters
	report   Report
}

// Features returns a copy of the feature order the classifier was trained on.
func (c *Classifier) Features() []string {
	return slices.Clone(c.features)
}

func (c *Classifier) Params() Hyperparameters { return c.params }

func (c *Classifier) Report() Report { return c.report }

// Train fits a classifier. With no samples it trains on the default
// synthetic dataset (1000 points, 30 days, seed 42).
func Train(samples []models.LabeledSample, hp Hyperparameters) (*Classifier, error) {
	logger := common.GetCategoryLogger(common.LoggerCategoryClassifier)

	if err := hp.Validate(); err != nil {
		return nil, err
	}

	if len(samples) == 0 {
		var err error
		samples, err = signal.NewGenerator(nil).Generate(signal.DefaultParams())
		if err != nil {
			return nil, fmt.Errorf("generate training data: %w", err)
		}
		logger.Info("No training samples supplied, generated synthetic set", zap.Int("samples", len(samples)))
	}

	for i, s := range samples {
		if s.Failure != 0 && s.Failure != 1 {
			return nil, common.NewRangeError(fmt.Sprintf("samples[%d].failure", i), s.Failure, "must be 0 or 1")
		}
	}

	x := common.Mapper(samples, func(s models.LabeledSample) []float64 { return s.Features() })
	y := common.Mapper(samples, func(s models.LabeledSample) int { return s.Failure })

	trainIdx, valIdx := stratifiedSplit(y, hp.ValidationSplit, hp.Seed)
	xTrain, yTrain := pick(x, trainIdx), pick(y, trainIdx)

	f, err := fitForest(xTrain, yTrain, hp.NEstimators, hp.treeParams(), hp.Seed)
	if err != nil {
		return nil, fmt.Errorf("fit forest: %w", err)
	}

	c := &Classifier{
		features: slices.Clone(models.FeatureColumns),
		forest:   f,
		params:   hp,
	}
	c.report = c.evaluate(xTrain, yTrain, pick(x, valIdx), pick(y, valIdx))

	logger.Info("Classifier trained",
		zap.Int("trees", len(f)),
		zap.Reflect("report", c.report),
	)
	return c, nil
}

func (c *Classifier) evaluate(xTrain [][]float64, yTrain []int, xVal [][]float64, yVal []int) Report {
	r := Report{TrainSize: len(yTrain), ValidationSize: len(yVal)}

	positives := common.Reducer(yTrain, func(acc int, v int) int { return acc + v }, 0)
	if len(yTrain) > 0 {
		r.TrainPositiveRate = float64(positives) / float64(len(yTrain))
	}

	correct := 0
	for i, row := range xVal {
		predicted := 0
		if c.forest.predict(row) >= 0.5 {
			predicted = 1
		}
		if predicted == yVal[i] {
			correct++
		}
	}
	if len(yVal) > 0 {
		r.ValidationAccuracy = float64(correct) / float64(len(yVal))
	}
	return r
}

// Predict returns one failure probability per frame row, in row order. The
// frame must contain every feature column by name.
func (c *Classifier) Predict(frame Frame) ([]float64, error) {
	rows, err := frame.Select(c.features)
	if err != nil {
		return nil, err
	}

	probabilities := make([]float64, len(rows))
	for i, row := range rows {
		probabilities[i] = c.forest.predict(row)
	}
	return probabilities, nil
}

func (c *Classifier) PredictSamples(samples []models.SensorSample) ([]float64, error) {
	return c.Predict(FrameFromSamples(samples))
}

func pick[T any](values []T, idx []int) []T {
	out := make([]T, len(idx))
	for i, j := range idx {
		out[i] = values[j]
	}
	return out
}
