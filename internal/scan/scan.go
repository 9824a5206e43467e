// Package scan walks a source directory and collects the video files the
// rest of the pipeline operates on. Results are sorted lexically by path so
// every downstream stage sees a deterministic order.
package scan

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"curator/internal/logging"
	"curator/internal/media"
	"curator/internal/services"
)

// Scanner discovers candidate files beneath a root directory.
type Scanner struct {
	extensions map[string]struct{}
	logger     *slog.Logger
}

// NewScanner builds a scanner that accepts files whose real extension is in
// extensions. Extensions are expected lowercased with a leading dot, the way
// config normalization produces them.
func NewScanner(extensions []string, logger *slog.Logger) *Scanner {
	if logger == nil {
		logger = logging.NewNop()
	}
	allowed := make(map[string]struct{}, len(extensions))
	for _, ext := range extensions {
		allowed[strings.ToLower(ext)] = struct{}{}
	}
	return &Scanner{extensions: allowed, logger: logger}
}

// Scan walks root recursively and returns every readable video file. Hidden
// files and directories are skipped, as are partial artifacts from an
// interrupted earlier run. Entries that disappear mid-walk are logged and
// skipped rather than failing the whole scan.
func (s *Scanner) Scan(root string) ([]media.File, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, "scan", "stat", fmt.Sprintf("source directory %s", root), err)
	}
	if !info.IsDir() {
		return nil, services.Wrap(services.ErrValidation, "scan", "stat", fmt.Sprintf("source %s is not a directory", root), nil)
	}

	var files []media.File
	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			s.logger.Warn("skipping unreadable entry", logging.String("path", path), logging.Error(err))
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		name := d.Name()
		if strings.HasPrefix(name, ".") && path != root {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if _, ok := s.extensions[media.RealExtension(name)]; !ok {
			return nil
		}
		fi, err := d.Info()
		if err != nil {
			s.logger.Warn("file vanished during scan", logging.String("path", path), logging.Error(err))
			return nil
		}
		files = append(files, media.NewFile(path, fi.Size()))
		return nil
	})
	if walkErr != nil {
		return nil, services.Wrap(services.ErrTransient, "scan", "walk", fmt.Sprintf("walking %s", root), walkErr)
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	s.logger.Info("scan complete", logging.String("root", root), logging.Int("files", len(files)))
	return files, nil
}
