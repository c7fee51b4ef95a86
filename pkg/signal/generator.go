// Package signal produces synthetic equipment telemetry with injected
// anomalies and probabilistic failure labels.
package signal

import (
	"math"
	"math/rand/v2"
	"sort"
	"time"

	"liyu1981.xyz/predictive-maintenance/pkg/common"
	"liyu1981.xyz/predictive-maintenance/pkg/models"
)

// Labeling constants. baseLogit gives roughly a 4% failure rate away from anomalies.
const (
	baseLogit    = -3.2
	anomalyBoost = 2.5

	weightTemperature = 0.08
	weightVibration   = 0.9
	weightPressure    = -0.12
	weightCurrent     = 0.04

	// θ completes one cycle every 144 samples
	samplesPerCycle = 24 * 6
)

// Default arguments used when training without caller supplied data.
const (
	DefaultNumPoints   = 1000
	DefaultDays        = 30
	DefaultAnomalyRate = 0.05
	DefaultSeed        = 42
)

type channel struct {
	offset    float64
	amplitude float64
	wave      func(theta float64) float64
	noiseSD   float64
	// anomaly shift is drawn from N(shiftMean, shiftSD) and applied with shiftSign
	shiftMean float64
	shiftSD   float64
	shiftSign float64
}

var (
	temperatureChannel = channel{60, 5, math.Sin, 0.8, 10, 2.0, 1}
	vibrationChannel   = channel{2.0, 0.6, func(t float64) float64 { return math.Sin(t / 2) }, 0.15, 1.5, 0.3, 1}
	pressureChannel    = channel{12, 1.0, func(t float64) float64 { return math.Cos(t / 3) }, 0.25, 2.5, 0.6, -1}
	currentChannel     = channel{110, 8, func(t float64) float64 { return math.Sin(t / 1.5) }, 1.8, 15, 3.0, 1}
)

type Params struct {
	NumPoints   int
	Days        int
	AnomalyRate float64
	Seed        int64
}

func DefaultParams() Params {
	return Params{
		NumPoints:   DefaultNumPoints,
		Days:        DefaultDays,
		AnomalyRate: DefaultAnomalyRate,
		Seed:        DefaultSeed,
	}
}

func (p Params) Validate() error {
	if p.NumPoints < 1 {
		return common.NewRangeError("num_points", p.NumPoints, "must be >= 1")
	}
	if p.Days <= 0 {
		return common.NewRangeError("days", p.Days, "must be > 0")
	}
	if math.IsNaN(p.AnomalyRate) || p.AnomalyRate < 0 || p.AnomalyRate > 1 {
		return common.NewRangeError("anomaly_rate", p.AnomalyRate, "must be within [0, 1]")
	}
	return nil
}

// Generator holds the clock that anchors the trailing window.
type Generator struct {
	now func() time.Time
}

func NewGenerator(now func() time.Time) *Generator {
	if now == nil {
		now = time.Now
	}
	return &Generator{now: now}
}

// Generate uses the wall clock. Values are a pure function of the params;
// timestamps also depend on when it is called.
func Generate(numPoints, days int, anomalyRate float64, seed int64) ([]models.LabeledSample, error) {
	return NewGenerator(nil).Generate(Params{
		NumPoints:   numPoints,
		Days:        days,
		AnomalyRate: anomalyRate,
		Seed:        seed,
	})
}

func (g *Generator) Generate(p Params) ([]models.LabeledSample, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	n := p.NumPoints
	rng := rand.New(rand.NewPCG(uint64(p.Seed), uint64(p.Seed)))

	start := g.now().Add(-time.Duration(p.Days) * 24 * time.Hour)
	stepMinutes := float64(p.Days*24*60) / float64(n)

	theta := linspace(0, 2*math.Pi*(float64(n)/samplesPerCycle), n)

	channels := []channel{temperatureChannel, vibrationChannel, pressureChannel, currentChannel}
	values := make([][]float64, len(channels))
	for c, ch := range channels {
		values[c] = make([]float64, n)
		for i := range n {
			values[c][i] = ch.offset + ch.amplitude*ch.wave(theta[i]) + rng.NormFloat64()*ch.noiseSD
		}
	}

	numAnomalies := max(1, int(math.Floor(p.AnomalyRate*float64(n))))
	anomalies := rng.Perm(n)[:numAnomalies]
	for c, ch := range channels {
		for _, idx := range anomalies {
			shift := ch.shiftMean + rng.NormFloat64()*ch.shiftSD
			values[c][idx] += ch.shiftSign * shift
		}
	}

	isAnomaly := make([]bool, n)
	for _, idx := range anomalies {
		isAnomaly[idx] = true
	}

	weights := []float64{weightTemperature, weightVibration, weightPressure, weightCurrent}
	medians := make([]float64, len(channels))
	for c := range channels {
		medians[c] = median(values[c])
	}

	samples := make([]models.LabeledSample, n)
	for i := range n {
		risk := 0.0
		for c := range channels {
			risk += weights[c] * (values[c][i] - medians[c])
		}
		logit := baseLogit + risk
		if isAnomaly[i] {
			logit += anomalyBoost
		}

		failure := 0
		if rng.Float64() < FailureProbability(logit) {
			failure = 1
		}

		offset := time.Duration(float64(i) * stepMinutes * float64(time.Minute))
		samples[i] = models.LabeledSample{
			SensorSample: models.SensorSample{
				Timestamp:   start.Add(offset),
				Temperature: values[0][i],
				Vibration:   values[1][i],
				Pressure:    values[2][i],
				Current:     values[3][i],
			},
			Failure: failure,
			Anomaly: isAnomaly[i],
		}
	}

	sort.SliceStable(samples, func(a, b int) bool {
		return samples[a].Timestamp.Before(samples[b].Timestamp)
	})
	return samples, nil
}

// FailureProbability is the logistic function.
func FailureProbability(logit float64) float64 {
	return 1.0 / (1.0 + math.Exp(-logit))
}

// Unlabeled strips labels for inference callers.
func Unlabeled(samples []models.LabeledSample) []models.SensorSample {
	return common.Mapper(samples, func(s models.LabeledSample) models.SensorSample {
		return s.SensorSample
	})
}

func linspace(start, stop float64, n int) []float64 {
	out := make([]float64, n)
	if n == 1 {
		out[0] = start
		return out
	}
	step := (stop - start) / float64(n-1)
	for i := range n {
		out[i] = start + float64(i)*step
	}
	out[n-1] = stop
	return out
}

func median(values []float64) float64 {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}
