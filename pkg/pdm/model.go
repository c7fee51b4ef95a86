package pdm

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"liyu1981.xyz/predictive-maintenance/pkg/classifier"
	"liyu1981.xyz/predictive-maintenance/pkg/common"
	"liyu1981.xyz/predictive-maintenance/pkg/metrics"
	"liyu1981.xyz/predictive-maintenance/pkg/models"
)

type ModelStatus struct {
	Source        classifier.Source          `json:"source"`
	ArtifactPath  string                     `json:"artifact_path"`
	ArtifactError string                     `json:"artifact_error,omitempty"`
	Features      []string                   `json:"features"`
	Params        classifier.Hyperparameters `json:"params"`
	Report        classifier.Report          `json:"report"`
	UpdatedAt     time.Time                  `json:"updated_at"`
}

type modelState struct {
	classifier *classifier.Classifier
	status     classifier.LoadStatus
	updatedAt  time.Time
}

// Handle owns the serving classifier. Readers take the current classifier
// without locking; Retrain and Reload replace it wholesale, so a caller
// holding the previous one keeps using it unchanged.
type Handle struct {
	path  string
	hp    classifier.Hyperparameters
	state atomic.Pointer[modelState]
	mu    sync.Mutex // serializes Retrain and Reload

	// digest of the artifact last written by Retrain, guarded by mu
	written []byte
}

func NewHandle(path string, hp classifier.Hyperparameters, c *classifier.Classifier, status classifier.LoadStatus) *Handle {
	h := &Handle{path: path, hp: hp}
	h.swap(c, status)
	return h
}

// LoadHandle runs the startup load-or-train once. A fallback classifier is
// returned with its artifact error visible through Status.
func LoadHandle(path string, hp classifier.Hyperparameters) (*Handle, error) {
	start := time.Now()
	c, status, err := classifier.LoadOrTrain(path, hp)
	if err != nil {
		return nil, fmt.Errorf("load or train classifier: %w", err)
	}
	if status.Source != classifier.SourceLoaded {
		metrics.ObserveTraining(time.Since(start))
	}
	if status.Fallback() {
		common.GetCategoryLogger(common.LoggerCategoryModel).Warn("Serving fallback classifier",
			zap.String("path", path), zap.Error(status.ArtifactErr))
	}
	return NewHandle(path, hp, c, status), nil
}

func (h *Handle) swap(c *classifier.Classifier, status classifier.LoadStatus) {
	h.state.Store(&modelState{classifier: c, status: status, updatedAt: time.Now().UTC()})
	metrics.SetModelSource(string(status.Source))
}

func (h *Handle) Classifier() *classifier.Classifier {
	return h.state.Load().classifier
}

func (h *Handle) Path() string {
	return h.path
}

func (h *Handle) Status() ModelStatus {
	st := h.state.Load()
	status := ModelStatus{
		Source:       st.status.Source,
		ArtifactPath: h.path,
		Features:     st.classifier.Features(),
		Params:       st.classifier.Params(),
		Report:       st.classifier.Report(),
		UpdatedAt:    st.updatedAt,
	}
	if st.status.ArtifactErr != nil {
		status.ArtifactError = st.status.ArtifactErr.Error()
	}
	return status
}

// Retrain fits a new classifier on samples (synthetic defaults when empty),
// writes the artifact and swaps it in. A failed save still swaps; the save
// error is reported in the status.
func (h *Handle) Retrain(samples []models.LabeledSample) (ModelStatus, error) {
	logger := common.GetCategoryLogger(common.LoggerCategoryModel)

	h.mu.Lock()
	defer h.mu.Unlock()

	start := time.Now()
	c, err := classifier.Train(samples, h.hp)
	if err != nil {
		return ModelStatus{}, err
	}
	metrics.ObserveTraining(time.Since(start))

	status := classifier.LoadStatus{Source: classifier.SourceTrained}
	if h.path != "" {
		if err := classifier.Save(c, h.path); err != nil {
			status.ArtifactErr = &common.ArtifactError{Path: h.path, Err: err}
			h.written = nil
			logger.Warn("Retrained classifier could not be saved", zap.String("path", h.path), zap.Error(err))
		} else {
			// nil on error, so the next event reloads
			h.written, _ = artifactDigest(h.path)
		}
	}

	h.swap(c, status)
	logger.Info("Classifier retrained", zap.Int("samples", len(samples)), zap.Reflect("report", c.Report()))
	return h.Status(), nil
}

// Reload replaces the classifier with the artifact on disk. An artifact that
// Retrain just wrote is already serving and is skipped. On error the current
// classifier stays in place.
func (h *Handle) Reload() error {
	logger := common.GetCategoryLogger(common.LoggerCategoryModel)

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.written != nil {
		if digest, err := artifactDigest(h.path); err == nil && bytes.Equal(digest, h.written) {
			logger.Debug("Artifact unchanged since last retrain, reload skipped", zap.String("path", h.path))
			return nil
		}
	}

	c, err := classifier.Load(h.path)
	if err != nil {
		logger.Warn("Classifier reload failed, keeping current", zap.String("path", h.path), zap.Error(err))
		return err
	}
	h.swap(c, classifier.LoadStatus{Source: classifier.SourceLoaded})
	logger.Info("Classifier reloaded", zap.String("path", h.path))
	return nil
}

func artifactDigest(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	sum := sha256.Sum256(data)
	return sum[:], nil
}
