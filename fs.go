// fs.go: Filesystem plumbing - retrying file operations, path hygiene,
// directory resolution
//
// XLogger software is published under GPLv2 license
//
// Author : Siarhei Skavarodkin
// email  : komarevsky (at) gmail (dot) com

package xlogger

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"
)

const (
	defaultRetryCount = 3
	defaultRetryDelay = 10 * time.Millisecond
	dirPerm           = 0750
)

// retryFileOperation executes a file operation with bounded retry.
// Windows antivirus scans, network shares, and overlay filesystems can all
// fail transiently; a few short retries smooth that over without hanging.
func retryFileOperation(operation func() error, retryCount int, retryDelay time.Duration) error {
	if retryCount <= 0 {
		retryCount = defaultRetryCount
	}
	if retryDelay <= 0 {
		retryDelay = defaultRetryDelay
	}

	var lastErr error
	for i := 0; i < retryCount; i++ {
		err := operation()
		if err == nil {
			return nil
		}
		lastErr = err
		if i < retryCount-1 {
			time.Sleep(retryDelay)
		}
	}
	return fmt.Errorf("operation failed after %d retries: %v", retryCount, lastErr)
}

// sanitizeFilename replaces characters that are invalid on the current
// platform so a pattern produced on one OS still opens on another.
func sanitizeFilename(filename string) string {
	if runtime.GOOS == "windows" {
		result := filename
		for _, char := range []string{"<", ">", ":", "\"", "|", "?", "*"} {
			result = strings.ReplaceAll(result, char, "_")
		}
		var sanitized strings.Builder
		for _, r := range result {
			if r >= 32 {
				sanitized.WriteRune(r)
			} else {
				sanitized.WriteRune('_')
			}
		}
		return sanitized.String()
	}
	return strings.ReplaceAll(filename, "\x00", "_")
}

// validatePathLength checks the absolute path against OS limits.
func validatePathLength(path string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("invalid path: %v", err)
	}

	limit := 4096
	if runtime.GOOS == "windows" {
		limit = 260
	}
	if len(absPath) > limit {
		return fmt.Errorf("path too long: %d characters (limit: %d)", len(absPath), limit)
	}
	return nil
}

// defaultFileMode returns the default permission bits for log files.
func defaultFileMode() os.FileMode {
	return 0644
}

// ensureDir makes sure dir exists, creating it (and parents) if absent.
func ensureDir(dir string) error {
	return retryFileOperation(func() error {
		return os.MkdirAll(dir, dirPerm)
	}, defaultRetryCount, defaultRetryDelay)
}

// dirWritable probes dir by creating and removing a scratch file. Permission
// bits alone cannot answer this portably (ACLs, read-only mounts), so the
// probe mirrors what the sink is about to do.
func dirWritable(dir string) bool {
	probe, err := os.CreateTemp(dir, ".xlogger-probe-*")
	if err != nil {
		return false
	}
	name := probe.Name()
	_ = probe.Close()
	_ = os.Remove(name)
	return true
}
