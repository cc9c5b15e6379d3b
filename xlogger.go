// xlogger.go: Public API - process-wide leveled logger with lazy setup
//
// XLogger software is published under GPLv2 license
//
// Author : Siarhei Skavarodkin
// email  : komarevsky (at) gmail (dot) com

package xlogger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/agilira/go-timecache"
	pkgerrors "github.com/pkg/errors"
)

const (
	// DefaultPattern is the file name used when no pattern is supplied.
	DefaultPattern = "x_logger.log"

	// DefaultLogsDirectory is the directory created relative to the
	// working directory when no directory is supplied.
	DefaultLogsDirectory = "logs"

	fileSizeLimit  = 3 * 1024 * 1024 // 3 MiB per file
	fileCountLimit = 2048            // retained files, active file included

	timestampFormat = "2006-01-02 15:04:05.000"
)

// callerSkip is the number of facility frames between a log call site and
// the stack inspection point: 0 callerLocation, 1 send, 2 SendX wrapper,
// 3 real caller. Covered by TestCallerLocationIsCallSite; recalibrate there
// if the internal call shape changes.
const callerSkip = 3

// Logger writes leveled records through a rotating file sink, prefixing each
// record with the immediate caller's location. The zero value is usable:
// the first send attempts setup with the default directory and pattern, and
// if that fails the failure is printed to the error writer and the record is
// dropped (a send never returns or raises an error to its caller).
//
// A process-wide instance backs the package-level functions; construct
// additional instances with New when explicit injection is preferred.
type Logger struct {
	mu          sync.Mutex
	initialized atomic.Bool
	minLevel    atomic.Int32
	sink        atomic.Pointer[Sink]

	// errOut receives setup and write failures. Defaults to os.Stderr.
	errOut io.Writer

	timeCache     *timecache.TimeCache
	timeCacheOnce sync.Once
}

// New returns an uninitialized Logger. Setup may be called explicitly, or
// left to the first send.
func New() *Logger {
	return &Logger{}
}

// Setup initializes the logger with the default directory and file pattern.
func (l *Logger) Setup() error {
	return l.SetupDir("", DefaultPattern)
}

// SetupPattern initializes the logger with the default directory and the
// given file pattern.
func (l *Logger) SetupPattern(filePattern string) error {
	return l.SetupDir("", filePattern)
}

// SetupDir initializes the logger: it resolves the log directory, attaches a
// fresh rotating sink bound to dirName/filePattern, and resets the minimum
// level to Finest. Empty arguments fall back to DefaultLogsDirectory and
// DefaultPattern.
//
// If the directory cannot be created, or exists but is not writable, files
// are silently written to the working directory instead; that fallback is
// decided once per call and is not an error. Only sink construction can fail,
// in which case the previous state (if any) is left untouched.
//
// Calling SetupDir again after success replaces the sink and starts a fresh
// rotation sequence: last initializer wins, the previous sink is closed.
func (l *Logger) SetupDir(dirName, filePattern string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.setupLocked(dirName, filePattern)
}

// setupLocked carries out initialization. Caller must hold l.mu.
func (l *Logger) setupLocked(dirName, filePattern string) error {
	if filePattern == "" {
		filePattern = DefaultPattern
	}
	logDir := dirName
	if logDir == "" {
		logDir = DefaultLogsDirectory
	}

	if info, err := os.Stat(logDir); err != nil {
		if ensureDir(logDir) != nil {
			// Unable to use the preferred dir. Writing to the working dir.
			logDir = ""
		}
	} else if !info.IsDir() || !dirWritable(logDir) {
		logDir = ""
	}

	pattern := filePattern
	if logDir != "" {
		pattern = filepath.Join(logDir, filePattern)
	}

	sink := &Sink{
		Pattern:       pattern,
		MaxFileSize:   fileSizeLimit,
		MaxFileCount:  fileCountLimit,
		ErrorCallback: l.reportSinkError,
	}
	if err := sink.Open(); err != nil {
		return pkgerrors.Wrap(err, "failed to attach log sink")
	}

	if old := l.sink.Swap(sink); old != nil {
		_ = old.Close()
	}
	l.minLevel.Store(int32(LevelFinest))
	l.initialized.Store(true)
	return nil
}

// SetLevel updates the minimum level and announces the change with an
// Info-level record named after the new level. Values outside the defined
// levels are ignored. The announcement goes through the normal send path, so
// it is filtered like any other record and is subject to the usual silent
// degradation if implicit setup fails.
func (l *Logger) SetLevel(level Level) {
	if !level.valid() {
		return
	}
	// Initialize first: setup resets the minimum to Finest, which would
	// otherwise clobber the level being applied here.
	if !l.ensureInitialized() {
		// The threshold still updates; only the announcement is lost.
		l.minLevel.Store(int32(level))
		return
	}
	l.minLevel.Store(int32(level))
	l.SendInfo("Log level is changed to " + level.Name())
}

// SendFinest logs msg at Finest level.
func (l *Logger) SendFinest(msg string) { l.send(LevelFinest, msg) }

// SendFiner logs msg at Finer level.
func (l *Logger) SendFiner(msg string) { l.send(LevelFiner, msg) }

// SendFine logs msg at Fine level.
func (l *Logger) SendFine(msg string) { l.send(LevelFine, msg) }

// SendConfig logs msg at Config level.
func (l *Logger) SendConfig(msg string) { l.send(LevelConfig, msg) }

// SendInfo logs msg at Info level.
func (l *Logger) SendInfo(msg string) { l.send(LevelInfo, msg) }

// SendWarning logs msg at Warning level.
func (l *Logger) SendWarning(msg string) { l.send(LevelWarning, msg) }

// SendSevere logs msg at Severe level.
func (l *Logger) SendSevere(msg string) { l.send(LevelSevere, msg) }

// SendSevereError renders err with ErrorToString and logs the result at
// Severe level.
func (l *Logger) SendSevereError(err error) {
	l.send(LevelSevere, ErrorToString(err))
}

// send is the shared emit path. Its depth below the public wrappers is part
// of the callerSkip contract.
func (l *Logger) send(level Level, msg string) {
	if !l.ensureInitialized() {
		return
	}
	if int32(level) < l.minLevel.Load() {
		return
	}

	body := msg
	if location, ok := callerLocation(); ok {
		body = location + "\n" + msg
	}

	sink := l.sink.Load()
	if sink == nil {
		return
	}
	record := fmt.Sprintf("[%s] %s: %s\n", l.now().Format(timestampFormat), level.Name(), body)
	if _, err := sink.Write([]byte(record)); err != nil {
		fmt.Fprintf(l.errorWriter(), "xlogger: write: %v\n", err)
	}
}

// ensureInitialized runs implicit setup on first use. On failure the
// description is printed to the error writer and false is returned; the
// failure is not cached, so the next send retries.
func (l *Logger) ensureInitialized() bool {
	if l.initialized.Load() {
		return true
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.initialized.Load() {
		return true
	}
	if err := l.setupLocked("", DefaultPattern); err != nil {
		fmt.Fprintln(l.errorWriter(), ErrorToString(err))
		return false
	}
	return true
}

// callerLocation resolves the frame callerSkip levels above this function,
// formatted as "<function>:<line>" with the package-qualified function name.
// Returns false when the stack is shallower than expected.
func callerLocation() (string, bool) {
	var pcs [1]uintptr
	// +1 skips the runtime.Callers frame itself.
	n := runtime.Callers(callerSkip+1, pcs[:])
	if n == 0 {
		return "", false
	}
	frame, _ := runtime.CallersFrames(pcs[:n]).Next()
	if frame.Function == "" {
		return "", false
	}
	return fmt.Sprintf("%s:%d", frame.Function, frame.Line), true
}

// Stats returns a snapshot of the attached sink's counters, or zeros if the
// logger is not initialized.
func (l *Logger) Stats() SinkStats {
	if sink := l.sink.Load(); sink != nil {
		return sink.Stats()
	}
	return SinkStats{}
}

// Close detaches and closes the sink. The logger reverts to uninitialized;
// a later send runs implicit setup again, starting a fresh rotation
// sequence.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.initialized.Store(false)
	if sink := l.sink.Swap(nil); sink != nil {
		return sink.Close()
	}
	return nil
}

// now returns a cached timestamp, creating the time cache on first use.
func (l *Logger) now() time.Time {
	l.timeCacheOnce.Do(func() {
		l.timeCache = timecache.NewWithResolution(time.Millisecond)
	})
	return l.timeCache.CachedTime()
}

func (l *Logger) errorWriter() io.Writer {
	if l.errOut != nil {
		return l.errOut
	}
	return os.Stderr
}

func (l *Logger) reportSinkError(operation string, err error) {
	fmt.Fprintf(l.errorWriter(), "xlogger: %s: %v\n", operation, err)
}

// Process-wide default instance backing the package-level operations.
var defaultLogger = New()

// Default returns the process-wide Logger used by the package-level
// functions.
func Default() *Logger { return defaultLogger }

// Setup initializes the default logger with the default directory and file
// pattern.
func Setup() error { return defaultLogger.Setup() }

// SetupPattern initializes the default logger with the given file pattern.
func SetupPattern(filePattern string) error { return defaultLogger.SetupPattern(filePattern) }

// SetupDir initializes the default logger with the given directory and file
// pattern. See Logger.SetupDir for the fallback rules.
func SetupDir(dirName, filePattern string) error { return defaultLogger.SetupDir(dirName, filePattern) }

// SetLevel updates the default logger's minimum level.
func SetLevel(level Level) { defaultLogger.SetLevel(level) }

// The package-level send wrappers call the shared emit path directly rather
// than the corresponding methods, keeping the internal frame depth identical
// for caller resolution.

// SendFinest logs msg at Finest level through the default logger.
func SendFinest(msg string) { defaultLogger.send(LevelFinest, msg) }

// SendFiner logs msg at Finer level through the default logger.
func SendFiner(msg string) { defaultLogger.send(LevelFiner, msg) }

// SendFine logs msg at Fine level through the default logger.
func SendFine(msg string) { defaultLogger.send(LevelFine, msg) }

// SendConfig logs msg at Config level through the default logger.
func SendConfig(msg string) { defaultLogger.send(LevelConfig, msg) }

// SendInfo logs msg at Info level through the default logger.
func SendInfo(msg string) { defaultLogger.send(LevelInfo, msg) }

// SendWarning logs msg at Warning level through the default logger.
func SendWarning(msg string) { defaultLogger.send(LevelWarning, msg) }

// SendSevere logs msg at Severe level through the default logger.
func SendSevere(msg string) { defaultLogger.send(LevelSevere, msg) }

// SendSevereError renders err with ErrorToString and logs it at Severe level
// through the default logger.
func SendSevereError(err error) { defaultLogger.send(LevelSevere, ErrorToString(err)) }

// Stats returns the default logger's sink counters.
func Stats() SinkStats { return defaultLogger.Stats() }

// Close closes the default logger's sink; the next send re-initializes.
func Close() error { return defaultLogger.Close() }
