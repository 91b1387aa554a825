package utils

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

var (
	InfoLogger  *logrus.Logger
	ErrorLogger *logrus.Logger
)

func InitLogger() {
	InfoLogger = logrus.New()
	ErrorLogger = logrus.New()

	// InfoLogger ke stdout
	InfoLogger.SetOutput(os.Stdout)
	InfoLogger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	// ErrorLogger ke stderr
	ErrorLogger.SetOutput(os.Stderr)
	ErrorLogger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	InfoLogger.SetLevel(logrus.InfoLevel)
	ErrorLogger.SetLevel(logrus.ErrorLevel)
}

// SetLogLevel mengatur level InfoLogger dari string konfigurasi (debug|info|warn|error).
// ErrorLogger selalu berada di level error.
func SetLogLevel(level string) {
	if InfoLogger == nil {
		InitLogger()
	}

	lvl, err := logrus.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		InfoLogger.Warnf("Unknown log level %q, falling back to info", level)
		lvl = logrus.InfoLevel
	}
	InfoLogger.SetLevel(lvl)
}
