// Package testing moves the working directory to the module root when
// imported for side effects from a test:
//
//	import _ "liyu1981.xyz/predictive-maintenance/pkg/testing"
//
// logs/ and relative data paths then resolve the same way for every package.
package testing

import (
	"os"
	"path/filepath"
	"runtime"
)

func init() {
	_, filename, _, _ := runtime.Caller(0)
	root, err := moduleRoot(filepath.Dir(filename))
	if err != nil {
		panic(err)
	}
	if err := os.Chdir(root); err != nil {
		panic(err)
	}
}

// moduleRoot walks up from dir to the first directory holding go.mod.
func moduleRoot(dir string) (string, error) {
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", os.ErrNotExist
		}
		dir = parent
	}
}
