// Package logger holds the process-wide structured logger.
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// Logger is shared by every package; Configure replaces it.
var Logger *log.Logger

// logFile is the --log-file handle behind Logger, if any.
var logFile *os.File

func init() {
	Logger = log.New(os.Stderr)
	Logger.SetTimeFormat("")
	Logger.SetLevel(log.WarnLevel)
}

// Configure sets the level and destination. An empty level falls back to
// STEPDSL_LOG_LEVEL, then to warn. An empty file keeps stderr.
func Configure(level, file string) error {
	if level == "" {
		level = os.Getenv("STEPDSL_LOG_LEVEL")
	}

	var output io.Writer = os.Stderr
	var f *os.File
	if file != "" {
		var err error
		f, err = os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return err
		}
		output = f
	}

	Logger = log.New(output)
	Logger.SetTimeFormat("")
	Logger.SetLevel(ParseLevel(level))
	swapLogFile(f)
	return nil
}

// swapLogFile closes the previous log file once Logger no longer writes to it.
func swapLogFile(f *os.File) {
	if logFile != nil && logFile != f {
		logFile.Close()
	}
	logFile = f
}

// SetOutput redirects the logger, keeping its level. Tests use it to capture output.
func SetOutput(w io.Writer) {
	level := Logger.GetLevel()
	Logger = log.New(w)
	Logger.SetTimeFormat("")
	Logger.SetLevel(level)
	if f, ok := w.(*os.File); ok && f == logFile {
		return
	}
	swapLogFile(nil)
}

func ParseLevel(level string) log.Level {
	switch strings.ToLower(level) {
	case "debug":
		return log.DebugLevel
	case "info":
		return log.InfoLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.WarnLevel
	}
}

// Component returns a child logger tagged with the component name.
func Component(name string) *log.Logger {
	return Logger.With("component", name)
}

func Debug(msg interface{}, keyvals ...interface{}) {
	Logger.Debug(msg, keyvals...)
}

func Info(msg interface{}, keyvals ...interface{}) {
	Logger.Info(msg, keyvals...)
}

func Warn(msg interface{}, keyvals ...interface{}) {
	Logger.Warn(msg, keyvals...)
}

func Error(msg interface{}, keyvals ...interface{}) {
	Logger.Error(msg, keyvals...)
}
