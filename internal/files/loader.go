// Package files is the thin input-boundary glue: it turns paths into the
// (path, content) pairs the distillation core consumes. Ignore policy
// beyond a few hard exclusions is the caller's business; the core assumes
// it receives an already-filtered list.
package files

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/mvp-joe/distill/internal/distill"
	"github.com/mvp-joe/distill/internal/logger"
)

// skipDirs are directories nobody wants distilled.
var skipDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
	"vendor":       true,
	"dist":         true,
	"build":        true,
	"target":       true,
	"__pycache__":  true,
}

// Load reads the given paths into file inputs, preserving order. A path
// that is a directory is walked recursively. Unreadable files are logged
// and skipped; they never abort the batch.
func Load(paths []string) ([]distill.FileInput, error) {
	var inputs []distill.FileInput

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", path, err)
		}

		if info.IsDir() {
			walked, err := walk(path)
			if err != nil {
				return nil, err
			}
			inputs = append(inputs, walked...)
			continue
		}

		input, ok := read(path)
		if ok {
			inputs = append(inputs, input)
		}
	}

	return inputs, nil
}

func walk(root string) ([]distill.FileInput, error) {
	var inputs []distill.FileInput

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if skipDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if input, ok := read(path); ok {
			inputs = append(inputs, input)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}

	return inputs, nil
}

func read(path string) (distill.FileInput, bool) {
	content, err := os.ReadFile(path)
	if err != nil {
		logger.Warn("skipping unreadable file", "path", path, "error", err)
		return distill.FileInput{}, false
	}
	return distill.FileInput{Path: filepath.ToSlash(path), Content: content}, true
}
