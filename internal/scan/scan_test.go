package scan_test

import (
	"os"
	"path/filepath"
	"testing"

	"curator/internal/scan"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte("payload"), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestScanFiltersAndSorts(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "b", "Show.S01E02.mkv"))
	writeFile(t, filepath.Join(root, "a", "Show.S01E01.mkv"))
	writeFile(t, filepath.Join(root, "notes.txt"))
	writeFile(t, filepath.Join(root, "Movie.2020.MP4"))

	s := scan.NewScanner([]string{".mkv", ".mp4"}, nil)
	files, err := s.Scan(root)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(files) != 3 {
		t.Fatalf("expected 3 files, got %d", len(files))
	}
	want := []string{
		filepath.Join(root, "Movie.2020.MP4"),
		filepath.Join(root, "a", "Show.S01E01.mkv"),
		filepath.Join(root, "b", "Show.S01E02.mkv"),
	}
	for i, path := range want {
		if files[i].Path != path {
			t.Fatalf("position %d: want %s got %s", i, path, files[i].Path)
		}
	}
}

func TestScanSkipsHidden(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".hidden", "Movie.2020.mkv"))
	writeFile(t, filepath.Join(root, ".Movie.2020.mkv"))
	writeFile(t, filepath.Join(root, "Movie.2020.mkv"))

	s := scan.NewScanner([]string{".mkv"}, nil)
	files, err := s.Scan(root)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("expected only the visible file, got %d", len(files))
	}
}

func TestScanRejectsMissingRoot(t *testing.T) {
	s := scan.NewScanner([]string{".mkv"}, nil)
	if _, err := s.Scan(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Fatal("expected an error for a missing source directory")
	}
}

func TestScanRejectsFileRoot(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "file.mkv")
	writeFile(t, path)
	s := scan.NewScanner([]string{".mkv"}, nil)
	if _, err := s.Scan(path); err == nil {
		t.Fatal("expected an error when the source is a file")
	}
}
