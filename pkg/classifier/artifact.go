package classifier

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"go.uber.org/zap"
	"liyu1981.xyz/predictive-maintenance/pkg/common"
	"liyu1981.xyz/predictive-maintenance/pkg/models"
)

const artifactVersion = 1

type artifact struct {
	Version  int             `json:"version"`
	Features []string        `json:"features"`
	Params   Hyperparameters `json:"params"`
	Report   Report          `json:"report"`
	Trees    []tree          `json:"trees"`
}

// Save writes the classifier and its feature list as one JSON document. The
// file is written next to path and renamed into place.
func Save(c *Classifier, path string) error {
	data, err := json.Marshal(artifact{
		Version:  artifactVersion,
		Features: c.features,
		Params:   c.params,
		Report:   c.report,
		Trees:    c.forest,
	})
	if err != nil {
		return fmt.Errorf("marshal classifier: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return fmt.Errorf("create artifact directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp artifact: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write artifact: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close artifact: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename artifact: %w", err)
	}
	return nil
}

// Load reads an artifact written by Save. Every failure is an *common.ArtifactError.
func Load(path string) (*Classifier, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &common.ArtifactError{Path: path, Err: err}
	}

	var a artifact
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, &common.ArtifactError{Path: path, Err: fmt.Errorf("decode: %w", err)}
	}
	if err := a.validate(); err != nil {
		return nil, &common.ArtifactError{Path: path, Err: err}
	}

	return &Classifier{
		features: a.Features,
		forest:   a.Trees,
		params:   a.Params,
		report:   a.Report,
	}, nil
}

func (a artifact) validate() error {
	if a.Version != artifactVersion {
		return fmt.Errorf("unsupported version %d", a.Version)
	}
	if len(a.Features) == 0 {
		return errors.New("feature list is missing")
	}
	if !slices.Equal(a.Features, models.FeatureColumns) {
		return fmt.Errorf("feature list %v does not match %v", a.Features, models.FeatureColumns)
	}
	if len(a.Trees) == 0 {
		return errors.New("no trees")
	}
	for t, nodes := range a.Trees {
		if len(nodes) == 0 {
			return fmt.Errorf("tree %d is empty", t)
		}
		for i, n := range nodes {
			if n.Feature == leafFeature {
				continue
			}
			if n.Feature < 0 || n.Feature >= len(a.Features) {
				return fmt.Errorf("tree %d node %d: feature %d out of range", t, i, n.Feature)
			}
			// children are always appended after their parent
			if n.Left <= i || n.Left >= len(nodes) || n.Right <= i || n.Right >= len(nodes) {
				return fmt.Errorf("tree %d node %d: child index out of range", t, i)
			}
		}
	}
	return nil
}

type Source string

const (
	SourceLoaded   Source = "loaded"
	SourceTrained  Source = "trained"
	SourceFallback Source = "fallback"
)

// LoadStatus tells the caller where the startup classifier came from.
// ArtifactErr is set whenever the artifact could not be used.
type LoadStatus struct {
	Source      Source
	ArtifactErr error
}

func (s LoadStatus) Fallback() bool {
	return s.Source == SourceFallback
}

// LoadOrTrain loads the artifact at path. A missing artifact is trained and
// saved; an unreadable one is left in place and a fresh classifier is
// trained in memory. Only training failures are returned as errors.
func LoadOrTrain(path string, hp Hyperparameters) (*Classifier, LoadStatus, error) {
	logger := common.GetCategoryLogger(common.LoggerCategoryModel)

	c, err := Load(path)
	if err == nil {
		logger.Info("Classifier loaded", zap.String("path", path))
		return c, LoadStatus{Source: SourceLoaded}, nil
	}

	missing := errors.Is(err, fs.ErrNotExist)

	c, trainErr := Train(nil, hp)
	if trainErr != nil {
		return nil, LoadStatus{Source: SourceFallback, ArtifactErr: err}, trainErr
	}

	if !missing {
		logger.Warn("Classifier artifact unusable, using in-memory fallback",
			zap.String("path", path), zap.Error(err))
		return c, LoadStatus{Source: SourceFallback, ArtifactErr: err}, nil
	}

	if saveErr := Save(c, path); saveErr != nil {
		artifactErr := &common.ArtifactError{Path: path, Err: saveErr}
		logger.Warn("Classifier trained but artifact could not be saved, using in-memory fallback",
			zap.String("path", path), zap.Error(artifactErr))
		return c, LoadStatus{Source: SourceFallback, ArtifactErr: artifactErr}, nil
	}

	logger.Info("Classifier artifact missing, trained and saved", zap.String("path", path))
	return c, LoadStatus{Source: SourceTrained, ArtifactErr: err}, nil
}
