// doc.go: Package documentation
//
// XLogger software is published under GPLv2 license
//
// Author : Siarhei Skavarodkin
// email  : komarevsky (at) gmail (dot) com

// Package xlogger is a process-wide logging facility that lazily initializes
// itself, writes leveled records to size-rotated files on disk, and prefixes
// each record with the caller's source location.
//
// The facility is deliberately small: a single synchronous file sink with
// bounded retained history, seven java.util.logging-style severities, and
// nothing else. There is no network transport, no structured output, and no
// async queuing.
//
// # Quick Start
//
// Nothing needs to be configured. The first send creates a logs/ directory
// under the working directory and starts writing:
//
//	xlogger.SendInfo("application started")
//	xlogger.SendWarning("cache miss rate is high")
//
// Each record carries the caller's function and line on its own line:
//
//	[2026-08-26 12:00:00.000] INFO: main.run:42
//	application started
//
// # Explicit setup
//
// The directory and file pattern can be chosen up front; setup errors are
// then returned to the caller instead of degrading silently:
//
//	if err := xlogger.SetupDir("/var/log/myapp", "myapp.log"); err != nil {
//		// filesystem is unusable even after fallback
//	}
//
// If the preferred directory cannot be created or written to, files go to
// the working directory instead; that fallback never fails a Setup call.
//
// # Rotation
//
// Files rotate at 3 MiB. Backups get a sequence number before the extension
// (myapp.log, myapp.1.log, myapp.2.log, ...) and the oldest files are pruned
// once 2048 are retained. Every initialization starts a fresh sequence; an
// existing file of the same name is truncated, never appended to.
//
// # Levels
//
// Severities, least to most severe: Finest < Finer < Fine < Config < Info <
// Warning < Severe. Setup accepts everything; raise the threshold at
// runtime with:
//
//	xlogger.SetLevel(xlogger.LevelWarning)
//
// # Errors with stack traces
//
// SendSevereError and ErrorToString understand errors created with
// github.com/pkg/errors and render one line per captured stack frame:
//
//	err := errors.New("connection lost")
//	xlogger.SendSevereError(err)
//
// # Injected instances
//
// Hosts that prefer explicit dependencies over the process-wide instance can
// construct their own:
//
//	logger := xlogger.New()
//	if err := logger.SetupDir("", "worker.log"); err != nil { ... }
//	logger.SendFine("worker ready")
//
// Logging is best-effort by contract: a send never panics and never returns
// an error. Failures inside the logging path are written to standard error
// and the affected record is dropped.
package xlogger
