package pdm_test

import (
	"bufio"
	"encoding/json"
	"io"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"liyu1981.xyz/predictive-maintenance/pkg/classifier"
	"liyu1981.xyz/predictive-maintenance/pkg/db"
	"liyu1981.xyz/predictive-maintenance/pkg/history"
	"liyu1981.xyz/predictive-maintenance/pkg/history/mocks"
	"liyu1981.xyz/predictive-maintenance/pkg/models"
	"liyu1981.xyz/predictive-maintenance/pkg/pdm"
	"liyu1981.xyz/predictive-maintenance/pkg/signal"
	_ "liyu1981.xyz/predictive-maintenance/pkg/testing"
)

var (
	testNow = time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC)

	sharedOnce       sync.Once
	sharedClassifier *classifier.Classifier
	sharedErr        error
)

func testHyperparameters() classifier.Hyperparameters {
	hp := classifier.DefaultHyperparameters()
	hp.NEstimators = 15
	return hp
}

// trainedClassifier trains once per test binary.
func trainedClassifier(t *testing.T) *classifier.Classifier {
	t.Helper()
	sharedOnce.Do(func() {
		sharedClassifier, sharedErr = classifier.Train(nil, testHyperparameters())
	})
	require.NoError(t, sharedErr)
	return sharedClassifier
}

func newTestHandle(t *testing.T) *pdm.Handle {
	t.Helper()
	return pdm.NewHandle(
		filepath.Join(t.TempDir(), "model.json"),
		testHyperparameters(),
		trainedClassifier(t),
		classifier.LoadStatus{Source: classifier.SourceTrained},
	)
}

func withTestClock(p *pdm.PDM) *pdm.PDM {
	return p.
		WithClock(func() time.Time { return testNow }).
		WithSeed(func() int64 { return 7 })
}

// GetPDMWithMemorySqlite wires a PDM over an isolated in-memory store.
func GetPDMWithMemorySqlite(t *testing.T) (*pdm.PDM, *history.Store) {
	t.Helper()
	d, err := db.Open(db.UseIsolatedMemorySqliteDialector())
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })

	store := history.NewStore(d).WithClock(func() time.Time { return testNow })
	return withTestClock(pdm.New(store, newTestHandle(t), 90)), store
}

// GetPDMWithMockStore wires a PDM over a gomock store; unexpected store
// calls fail the test.
func GetPDMWithMockStore(t *testing.T) (*gomock.Controller, *pdm.PDM, *mocks.MockIStore) {
	t.Helper()
	ctrl := gomock.NewController(t)
	store := mocks.NewMockIStore(ctrl)
	return ctrl, withTestClock(pdm.New(store, newTestHandle(t), 90)), store
}

func labeledSamples(t *testing.T, n int, seed int64) []models.LabeledSample {
	t.Helper()
	samples, err := signal.Generate(n, 30, signal.DefaultAnomalyRate, seed)
	require.NoError(t, err)
	return samples
}

func unlabeled(samples []models.LabeledSample) []models.SensorSample {
	return signal.Unlabeled(samples)
}

func ParseLogs(r io.Reader) []map[string]any {
	scanner := bufio.NewScanner(r)
	var logs []map[string]any

	for scanner.Scan() {
		var j map[string]any
		if err := json.Unmarshal(scanner.Bytes(), &j); err == nil {
			logs = append(logs, j)
		}
	}
	return logs
}
