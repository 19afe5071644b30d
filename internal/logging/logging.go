// Package logging holds the shared project logger.
package logging

import (
	"github.com/sirupsen/logrus"
)

// Log is the public logger of the whole project.
var Log *logrus.Logger

func init() {
	Log = logrus.New()
	Log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:          true,
		DisableLevelTruncation: true,
		PadLevelText:           true,
	})
}

// SetLevel applies a configured level name; unknown names keep the default.
func SetLevel(level string) {
	if level == "" {
		return
	}
	l, err := logrus.ParseLevel(level)
	if err != nil {
		Log.WithField("level", level).Warn("未知的日志级别，保持默认")
		return
	}
	Log.SetLevel(l)
}
