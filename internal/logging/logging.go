// Package logging builds the goakt logger shared by the commands.
// The level is read from VICSEK_LOG_LEVEL: DEBUG, INFO, WARN or ERROR.
// Anything else falls back to INFO.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/tochemey/goakt/v3/log"
)

// EnvLevel names the environment variable holding the log level.
const EnvLevel = "VICSEK_LOG_LEVEL"

// New returns a logger writing to w at the level set in the environment.
func New(w io.Writer) log.Logger {
	return log.New(LevelFromEnv(), w)
}

// LevelFromEnv parses EnvLevel.
func LevelFromEnv() log.Level {
	switch strings.ToUpper(strings.TrimSpace(os.Getenv(EnvLevel))) {
	case "DEBUG":
		return log.DebugLevel
	case "WARN", "WARNING":
		return log.WarningLevel
	case "ERROR":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}
