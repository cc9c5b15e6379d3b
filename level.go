// level.go: Severity levels and the minimum-level threshold
//
// XLogger software is published under GPLv2 license
//
// Author : Siarhei Skavarodkin
// email  : komarevsky (at) gmail (dot) com

package xlogger

import "strings"

// Level is the severity of a log record. Higher values are more severe.
// The numeric spacing matches java.util.logging so relative comparisons
// between the seven levels behave exactly like the original library.
type Level int32

// Severity levels, least to most severe.
const (
	LevelFinest  Level = 300
	LevelFiner   Level = 400
	LevelFine    Level = 500
	LevelConfig  Level = 700
	LevelInfo    Level = 800
	LevelWarning Level = 900
	LevelSevere  Level = 1000
)

var levelNames = map[Level]string{
	LevelFinest:  "FINEST",
	LevelFiner:   "FINER",
	LevelFine:    "FINE",
	LevelConfig:  "CONFIG",
	LevelInfo:    "INFO",
	LevelWarning: "WARNING",
	LevelSevere:  "SEVERE",
}

var levelByName = map[string]Level{
	"FINEST":  LevelFinest,
	"FINER":   LevelFiner,
	"FINE":    LevelFine,
	"CONFIG":  LevelConfig,
	"INFO":    LevelInfo,
	"WARNING": LevelWarning,
	"SEVERE":  LevelSevere,
}

// Name returns the upper-case name of the level, or "UNKNOWN" for values
// outside the defined set.
func (l Level) Name() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return "UNKNOWN"
}

// valid reports whether l is one of the seven defined levels.
func (l Level) valid() bool {
	_, ok := levelNames[l]
	return ok
}

// ParseLevel converts a case-insensitive level name ("info", "SEVERE", ...)
// to its Level value. The second return value is false for unknown names.
func ParseLevel(name string) (Level, bool) {
	level, ok := levelByName[strings.ToUpper(strings.TrimSpace(name))]
	return level, ok
}
