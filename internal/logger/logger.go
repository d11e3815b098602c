package logger

import (
	"io"
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	once   sync.Once
	logger *logrus.Logger
)

// Init configures the package logger. Unknown levels fall back to info.
func Init(level string) {
	once.Do(func() {
		logger = newLogger(os.Stdout, level)
	})
}

func newLogger(w io.Writer, level string) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	l.SetLevel(lvl)
	return l
}

// SetOutput replaces the logger with one writing to w at the given level.
func SetOutput(w io.Writer, level string) {
	once.Do(func() {})
	logger = newLogger(w, level)
}

func get() *logrus.Logger {
	if logger == nil {
		Init("info")
	}
	return logger
}

func Info(message string, v ...interface{}) {
	get().Infof(message, v...)
}

func Warn(message string, v ...interface{}) {
	get().Warnf(message, v...)
}

func Error(message string, v ...interface{}) {
	get().Errorf(message, v...)
}

func Debug(message string, v ...interface{}) {
	get().Debugf(message, v...)
}
