package logger

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Init builds the tool's structured logger. Level falls back to info when
// the configured value is unrecognized; LOG_FORMAT=json switches to JSON
// output for non-interactive use.
func Init(logLevel string) *logrus.Logger {
	log := logrus.New()

	level, err := logrus.ParseLevel(strings.ToLower(logLevel))
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		log.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
		})
	} else {
		log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}
	log.SetOutput(os.Stderr)
	return log
}
