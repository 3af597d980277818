// Package logger sets up the global zerolog logger.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const milliTimeFormat = "2006-01-02T15:04:05.000Z07:00"

const callerWidth = 24

// Init configures the global logger. An unknown level falls back to
// info; LOG_FILE additionally tees output to a file. The returned func
// closes that file.
func Init(stage, levelName string) func() {
	zerolog.TimeFieldFormat = milliTimeFormat
	zerolog.TimestampFunc = func() time.Time { return time.Now().UTC() }
	zerolog.CallerMarshalFunc = func(pc uintptr, file string, line int) string {
		path := fmt.Sprintf("%s:%d", filepath.Base(file), line)
		if len(path) >= callerWidth {
			return path[len(path)-callerWidth:]
		}
		return path + strings.Repeat(" ", callerWidth-len(path))
	}

	level, err := zerolog.ParseLevel(levelName)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	// stdout belongs to the game board
	var output io.Writer = zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: milliTimeFormat,
		NoColor:    stage == "prod",
	}

	closeFn := func() {}
	var fileErr error
	if logFile := os.Getenv("LOG_FILE"); logFile != "" {
		f, ferr := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if ferr != nil {
			fileErr = ferr
		} else {
			output = io.MultiWriter(output, f)
			closeFn = func() { _ = f.Close() }
		}
	}

	log.Logger = log.Output(output).With().Caller().Logger()

	if fileErr != nil {
		log.Warn().Err(fileErr).Msg("failed to open LOG_FILE; logging to stderr only")
	}

	log.Debug().
		Str("level", level.String()).
		Str("stage", stage).
		Msg("logger initialized")

	return closeFn
}

// ForSession returns a logger tagged with a spectator session id.
func ForSession(sessionId string) zerolog.Logger {
	return log.Logger.With().Str("session", sessionId).Logger()
}

// ForGame returns a logger tagged with a game uuid.
func ForGame(gameUuid string) zerolog.Logger {
	return log.Logger.With().Str("game", gameUuid).Logger()
}
