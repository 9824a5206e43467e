package preflight

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"
)

// CheckSourceReadable verifies that the directory exists and is readable.
func CheckSourceReadable(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read ok)", path)}
}

// CheckDirectoryWritable verifies that the directory, or its closest
// existing ancestor when the library has not been created yet, is writable.
func CheckDirectoryWritable(name, path string) Result {
	target := existingAncestor(path)
	info, err := os.Stat(target)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %s is not a directory)", path, target)}
	}
	if err := unix.Access(target, unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (write ok)", path)}
}

// CheckFreeSpace verifies the filesystem holding path has at least required
// bytes available.
func CheckFreeSpace(name, path string, required int64) Result {
	var stat unix.Statfs_t
	if err := unix.Statfs(existingAncestor(path), &stat); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: statfs: %v)", path, err)}
	}
	available := int64(stat.Bavail) * int64(stat.Bsize)
	if available < required {
		return Result{Name: name, Detail: fmt.Sprintf("need %d bytes, %d available on %s", required, available, path)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%d bytes available", available)}
}

// existingAncestor walks up from path to the nearest directory that exists.
func existingAncestor(path string) string {
	for {
		if _, err := os.Stat(path); err == nil {
			return path
		}
		parent := filepath.Dir(path)
		if parent == path {
			return path
		}
		path = parent
	}
}
