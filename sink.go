// sink.go: Size-bounded rotating file sink with numbered backups
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
	"sort"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// Sink is a rotating file destination. The active file lives at Pattern;
// once a write would push it past MaxFileSize the file is renamed to a
// numbered backup (numeric suffix before the extension) and a fresh active
// file is opened. Oldest backups are pruned so that at most MaxFileCount
// files (active file included) remain on disk.
//
// Writes are serialized internally: a record handed to Write is never split
// across files and never interleaves with another record, including across a
// rotation boundary. Zero value is not usable; call Open before Write.
type Sink struct {
	// Pattern is the path of the active log file. Backups derive from it
	// by inserting a sequence number before the extension, e.g.
	// "logs/x_logger.log" rotates to "logs/x_logger.1.log".
	Pattern string

	// MaxFileSize is the rotation threshold in bytes. A single record
	// larger than this is written whole into a freshly rotated file.
	MaxFileSize int64

	// MaxFileCount caps the total number of files retained, active file
	// included. Zero or negative disables pruning.
	MaxFileCount int

	// FileMode is the permission for created files (default 0644).
	FileMode os.FileMode

	// RetryCount and RetryDelay bound the retry loop around file
	// operations (defaults: 3 tries, 10ms apart).
	RetryCount int
	RetryDelay time.Duration

	// ErrorCallback receives failures from rotation and pruning, which are
	// not surfaced through Write. May be nil.
	ErrorCallback func(operation string, err error)

	mu     sync.Mutex
	file   *os.File
	size   int64
	seq    uint64
	closed bool

	writeCount  atomic.Uint64
	totalBytes  atomic.Uint64
	rotations   atomic.Uint64
	prunedFiles atomic.Uint64
	currentSize atomic.Int64
}

// SinkStats is a snapshot of sink counters, safe to collect concurrently
// with writers.
type SinkStats struct {
	Writes          uint64
	Bytes           uint64
	Rotations       uint64
	PrunedFiles     uint64
	CurrentFileSize int64
}

// Open starts a fresh rotation sequence. The active file is truncated if a
// file of the same name already exists; a sink never appends to output from
// a previous sequence.
func (s *Sink) Open() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.file != nil {
		return fmt.Errorf("sink already open")
	}

	if err := validatePathLength(s.Pattern); err != nil {
		return fmt.Errorf("invalid log file path: %v", err)
	}
	dir := filepath.Dir(s.Pattern)
	base := sanitizeFilename(filepath.Base(s.Pattern))
	s.Pattern = filepath.Join(dir, base)

	var file *os.File
	err := retryFileOperation(func() error {
		var err error
		file, err = os.OpenFile(s.Pattern, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, s.fileMode())
		return err
	}, s.RetryCount, s.RetryDelay)
	if err != nil {
		return fmt.Errorf("failed to open log file %q: %v", s.Pattern, err)
	}

	s.file = file
	s.size = 0
	s.seq = 0
	s.closed = false
	s.currentSize.Store(0)
	return nil
}

// Write appends one formatted record to the active file, rotating first if
// the record would overflow it. Implements io.Writer.
func (s *Sink) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || s.file == nil {
		return 0, fmt.Errorf("sink is not open")
	}

	if s.MaxFileSize > 0 && s.size > 0 && s.size+int64(len(p)) > s.MaxFileSize {
		if err := s.rotate(); err != nil {
			// Keep writing to the old file rather than drop the record.
			s.reportError("rotation", err)
		}
	}

	n, err := s.file.Write(p)
	if n > 0 {
		s.size += int64(n)
		s.currentSize.Store(s.size)
		s.totalBytes.Add(uint64(n))
	}
	if err != nil {
		return n, err
	}
	s.writeCount.Add(1)
	return n, nil
}

// rotate closes the active file, renames it to the next numbered backup,
// opens a fresh active file, and prunes beyond the retention cap.
// Caller must hold s.mu.
func (s *Sink) rotate() error {
	backupName := s.nextBackupName()

	if err := retryFileOperation(s.file.Close, s.RetryCount, s.RetryDelay); err != nil {
		// The descriptor state is unknown; reopen in append mode so the
		// sequence can continue.
		s.reopenAppend()
		return fmt.Errorf("failed to close active file: %v", err)
	}

	err := retryFileOperation(func() error {
		return os.Rename(s.Pattern, backupName)
	}, s.RetryCount, s.RetryDelay)
	if err != nil {
		s.reopenAppend()
		return fmt.Errorf("failed to rename %q to %q: %v", s.Pattern, backupName, err)
	}

	var file *os.File
	err = retryFileOperation(func() error {
		var err error
		file, err = os.OpenFile(s.Pattern, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, s.fileMode())
		return err
	}, s.RetryCount, s.RetryDelay)
	if err != nil {
		s.reopenAppend()
		return fmt.Errorf("failed to create new log file: %v", err)
	}

	s.file = file
	s.size = 0
	s.currentSize.Store(0)
	s.rotations.Add(1)
	s.prune()
	return nil
}

// reopenAppend restores a usable descriptor after a failed rotation step.
// Caller must hold s.mu.
func (s *Sink) reopenAppend() {
	file, err := os.OpenFile(s.Pattern, os.O_CREATE|os.O_WRONLY|os.O_APPEND, s.fileMode())
	if err != nil {
		s.reportError("reopen", fmt.Errorf("failed to reopen log file %q: %v", s.Pattern, err))
		return
	}
	s.file = file
	if info, err := file.Stat(); err == nil {
		s.size = info.Size()
		s.currentSize.Store(s.size)
	}
}

// nextBackupName returns the next unused numbered backup path. Sequence
// numbers restart at 1 for every Open; names left over from an earlier
// sequence are skipped, not overwritten, and fall to the pruner instead.
func (s *Sink) nextBackupName() string {
	ext := filepath.Ext(s.Pattern)
	base := strings.TrimSuffix(s.Pattern, ext)
	for {
		s.seq++
		candidate := fmt.Sprintf("%s.%d%s", base, s.seq, ext)
		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			return candidate
		}
	}
}

// backupFile pairs a backup path with its modification time for pruning.
type backupFile struct {
	name    string
	modTime time.Time
}

// prune removes the oldest backups until the total file count (active file
// plus backups) is within MaxFileCount. Caller must hold s.mu.
func (s *Sink) prune() {
	if s.MaxFileCount <= 0 {
		return
	}

	backups := s.listBackups()
	excess := len(backups) + 1 - s.MaxFileCount
	if excess <= 0 {
		return
	}

	sort.Slice(backups, func(i, j int) bool {
		return backups[i].modTime.Before(backups[j].modTime)
	})

	for i := 0; i < excess; i++ {
		if err := os.Remove(backups[i].name); err != nil {
			s.reportError("prune", fmt.Errorf("failed to remove old backup %s: %v", backups[i].name, err))
			continue
		}
		s.prunedFiles.Add(1)
	}
}

// listBackups finds the numbered backups belonging to this sink's pattern.
func (s *Sink) listBackups() []backupFile {
	ext := filepath.Ext(s.Pattern)
	base := strings.TrimSuffix(s.Pattern, ext)

	matches, err := filepath.Glob(base + ".*" + ext)
	if err != nil {
		return nil
	}

	var backups []backupFile
	for _, match := range matches {
		// Only files whose inserted suffix is purely numeric are ours.
		middle := strings.TrimSuffix(strings.TrimPrefix(match, base+"."), ext)
		if _, err := strconv.ParseUint(middle, 10, 64); err != nil {
			continue
		}
		info, err := os.Stat(match)
		if err != nil {
			continue
		}
		backups = append(backups, backupFile{name: match, modTime: info.ModTime()})
	}
	return backups
}

// Stats returns a snapshot of the sink counters.
func (s *Sink) Stats() SinkStats {
	return SinkStats{
		Writes:          s.writeCount.Load(),
		Bytes:           s.totalBytes.Load(),
		Rotations:       s.rotations.Load(),
		PrunedFiles:     s.prunedFiles.Load(),
		CurrentFileSize: s.currentSize.Load(),
	}
}

// Close closes the active file. Safe to call more than once.
func (s *Sink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || s.file == nil {
		return nil
	}
	s.closed = true
	err := s.file.Close()
	s.file = nil
	return err
}

func (s *Sink) fileMode() os.FileMode {
	if s.FileMode == 0 {
		return defaultFileMode()
	}
	return s.FileMode
}

func (s *Sink) reportError(operation string, err error) {
	if s.ErrorCallback != nil {
		s.ErrorCallback(operation, err)
	}
}
