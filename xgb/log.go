package xgb

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// PrintLog controls whether XGB emits errors to stderr. By default, it is
// enabled.
var PrintLog = true

// Logger is where XGB writes its diagnostics when PrintLog is set.
// Callers may change its level, output or formatter.
var Logger = newLogger()

var discard = &logrus.Logger{
	Out:       io.Discard,
	Formatter: new(logrus.TextFormatter),
	Hooks:     make(logrus.LevelHooks),
	Level:     logrus.PanicLevel,
}

func newLogger() *logrus.Logger {
	lg := logrus.New()
	lg.SetOutput(os.Stderr)
	lg.SetLevel(logrus.InfoLevel)
	return lg
}

// logger returns the logger to use right now. Every entry is tagged so the
// transport's output can be told apart from its callers'.
func logger() *logrus.Entry {
	if !PrintLog {
		return logrus.NewEntry(discard)
	}
	return Logger.WithField("pkg", "xgb")
}
