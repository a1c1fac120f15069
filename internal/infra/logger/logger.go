package logger

import (
	"os"
	"strings"

	"github.com/sankalpsthakur/astronova-sub001/internal/infra/config"

	"github.com/sirupsen/logrus"
)

var root = logrus.New()

// Init configures the process logger from application config. Production
// and staging emit JSON lines for log collectors; everything else gets a
// readable text format.
func Init(cfg *config.AppConfig) {
	root.SetOutput(os.Stdout)

	if level, err := logrus.ParseLevel(strings.ToLower(cfg.LogLevel)); err == nil {
		root.SetLevel(level)
	} else {
		root.SetLevel(logrus.InfoLevel)
		root.WithField("log_level", cfg.LogLevel).Warn("Unknown log level, using info")
	}

	if cfg.Environment == "production" || cfg.Environment == "staging" {
		root.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
		})
	} else {
		root.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}
}

// Get returns the process-wide entry, tagged with the service name so
// component fields added downstream always ride alongside it.
func Get() *logrus.Entry {
	return root.WithField("service", "astronova")
}
