package loader

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// EnumerateFiles walks the scan paths and returns the scannable source
// files in deterministic enumeration order (per-path, then lexical walk
// order). A scan path that is itself a file is accepted as-is.
func (s *Service) EnumerateFiles(scanPaths []string) ([]string, error) {
	var files []string

	for _, scanPath := range scanPaths {
		absPath, err := filepath.Abs(scanPath)
		if err != nil {
			return nil, err
		}

		info, err := os.Stat(absPath)
		if err != nil {
			return nil, fmt.Errorf("failed to access scan path %q: %w", scanPath, err)
		}

		if !info.IsDir() {
			if !s.shouldSkipFile(absPath) {
				files = append(files, absPath)
			}
			continue
		}

		err = filepath.WalkDir(absPath, func(path string, d fs.DirEntry, wErr error) error {
			if wErr != nil {
				// Unreadable entries are skipped, never fatal to the scan.
				s.debug.Printf("warning: skipping %s: %v", path, wErr)
				if d != nil && d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			if d.IsDir() {
				if s.shouldSkipDir(path, d.Name()) {
					return filepath.SkipDir
				}
				return nil
			}

			if s.shouldSkipFile(path) {
				return nil
			}

			files = append(files, path)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	return files, nil
}

// ReadFile reads one source file.
func (s *Service) ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

func (s *Service) shouldSkipDir(path, name string) bool {
	if _, ok := skipDirs[name]; ok {
		return true
	}
	if len(name) > 1 && name[0] == '.' {
		return true
	}
	if _, ok := s.excludes[path]; ok {
		return true
	}
	return false
}

func (s *Service) shouldSkipFile(path string) bool {
	if _, ok := s.excludes[path]; ok {
		return true
	}
	if strings.HasSuffix(path, ".d.ts") {
		return true
	}
	base := strings.ToLower(filepath.Base(path))
	if strings.Contains(base, ".test.") || strings.Contains(base, ".spec.") {
		return true
	}
	_, ok := s.extensions[filepath.Ext(path)]
	return !ok
}
