// Package fileutil implements verified, atomically visible file copies for
// the organize stage.
package fileutil

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// progressWriter forwards the number of bytes written to a callback.
type progressWriter struct {
	fn func(n int64)
}

func (w progressWriter) Write(p []byte) (int, error) {
	if w.fn != nil {
		w.fn(int64(len(p)))
	}
	return len(p), nil
}

// CopyFileAtomic copies src into dst's directory under a hidden ".partial"
// temp name, verifies size and SHA256 of the written bytes, and renames the
// temp file over dst only on success. A crash or failure mid-copy never
// leaves dst visible in a truncated state. The progress callback, when
// non-nil, receives incremental byte counts as the copy proceeds.
func CopyFileAtomic(src, dst string, progress func(n int64)) error {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("stat source: %w", err)
	}
	srcSize := srcInfo.Size()

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	tmp := PartialPath(dst)
	out, err := os.OpenFile(tmp, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer func() {
		_ = out.Close()
	}()

	srcHasher := sha256.New()
	dstHasher := sha256.New()
	tee := io.TeeReader(in, srcHasher)
	multi := io.MultiWriter(out, dstHasher, progressWriter{fn: progress})

	written, err := io.Copy(multi, tee)
	if err != nil {
		_ = os.Remove(tmp)
		return err
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}

	if written != srcSize {
		_ = os.Remove(tmp)
		return fmt.Errorf("copy size mismatch: source %d bytes, copied %d bytes", srcSize, written)
	}
	if !bytes.Equal(srcHasher.Sum(nil), dstHasher.Sum(nil)) {
		_ = os.Remove(tmp)
		return fmt.Errorf("copy hash mismatch: file corrupted during copy")
	}

	if err := os.Rename(tmp, dst); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("finalize copy: %w", err)
	}
	return nil
}

// PartialPath returns the hidden temp name used while a copy of dst is in
// flight.
func PartialPath(dst string) string {
	return filepath.Join(filepath.Dir(dst), "."+filepath.Base(dst)+".partial")
}

// SameFile reports whether dst already holds a byte-for-byte copy of src.
// It compares sizes first and falls back to hashing both files. Used to keep
// reruns of an unchanged plan idempotent.
func SameFile(src, dst string) (bool, error) {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return false, err
	}
	dstInfo, err := os.Stat(dst)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	if srcInfo.Size() != dstInfo.Size() {
		return false, nil
	}
	srcSum, err := hashFile(src)
	if err != nil {
		return false, err
	}
	dstSum, err := hashFile(dst)
	if err != nil {
		return false, err
	}
	return bytes.Equal(srcSum, dstSum), nil
}

func hashFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return nil, err
	}
	return h.Sum(nil), nil
}
