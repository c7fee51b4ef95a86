package pdm

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
	"liyu1981.xyz/predictive-maintenance/pkg/common"
)

// WatchArtifact reloads h whenever its artifact file is written or replaced.
// The parent directory is watched because Save renames into place. It runs
// until ctx is cancelled.
func WatchArtifact(ctx context.Context, h *Handle, ready chan<- struct{}) error {
	logger := common.GetCategoryLogger(common.LoggerCategoryModel)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	target := filepath.Clean(h.Path())
	dir := filepath.Dir(target)
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return fmt.Errorf("create artifact directory: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		return err
	}

	logger.Info("Watching classifier artifact", zap.String("path", target))
	if ready != nil {
		close(ready)
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			// Reload logs its own failure
			_ = h.Reload()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("Artifact watcher error", zap.Error(err))
		}
	}
}
