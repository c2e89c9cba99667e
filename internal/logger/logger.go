package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/carbonquest/carbonquest/internal/constants"
)

var std *log.Logger

// Setup initializes the package logger. Logs rotate in <configDir>/logs; with
// debug enabled output also mirrors to stderr at debug level.
func Setup(configDir string, debug bool) error {
	logDir := filepath.Join(configDir, "logs")
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return err
	}

	rotating := &lumberjack.Logger{
		Filename:   filepath.Join(logDir, constants.AppName+".log"),
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}

	level := log.WarnLevel
	var w io.Writer = rotating
	if debug {
		level = log.DebugLevel
		w = io.MultiWriter(os.Stderr, rotating)
	}

	std = log.NewWithOptions(w, log.Options{
		ReportCaller:    debug,
		ReportTimestamp: true,
		Level:           level,
		Prefix:          constants.AppName,
	})
	return nil
}

func Debug(msg string, keyvals ...interface{}) {
	if std != nil {
		std.Debug(msg, keyvals...)
	}
}

func Info(msg string, keyvals ...interface{}) {
	if std != nil {
		std.Info(msg, keyvals...)
	}
}

func Warn(msg string, keyvals ...interface{}) {
	if std != nil {
		std.Warn(msg, keyvals...)
	}
}

func Error(msg string, keyvals ...interface{}) {
	if std != nil {
		std.Error(msg, keyvals...)
	}
}
