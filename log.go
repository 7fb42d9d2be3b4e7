package ewmh

import (
	"io"

	"github.com/sirupsen/logrus"

	"github.com/BurntSushi/xgbewmh/xgb"
)

var quiet = &logrus.Logger{
	Out:       io.Discard,
	Formatter: new(logrus.TextFormatter),
	Hooks:     make(logrus.LevelHooks),
	Level:     logrus.PanicLevel,
}

// logger writes through xgb.Logger and is silenced by xgb.PrintLog.
func logger() *logrus.Entry {
	if !xgb.PrintLog {
		return logrus.NewEntry(quiet)
	}
	return xgb.Logger.WithField("pkg", "ewmh")
}
