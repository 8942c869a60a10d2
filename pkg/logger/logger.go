package logger

import (
	"io"
	"os"
	"sync"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	// Logger is the shared instance. Packages that want a field context
	// should derive an entry with WithField.
	Logger = logrus.New()
	initMu sync.Mutex
)

// Config controls log level and optional file rotation.
type Config struct {
	Level      string // debug, info, warn, error
	OutputFile string // empty = console only
	MaxSize    int    // MB per file before rotation
	MaxBackups int
	MaxAge     int // days
	Compress   bool
}

// Init configures the shared logger. Safe to call more than once.
func Init(config Config) error {
	initMu.Lock()
	defer initMu.Unlock()

	level, err := logrus.ParseLevel(config.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	Logger.SetLevel(level)

	Logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "06-01-02 15:04:05",
	})

	if config.OutputFile != "" {
		rotator := &lumberjack.Logger{
			Filename:   config.OutputFile,
			MaxSize:    config.MaxSize,
			MaxBackups: config.MaxBackups,
			MaxAge:     config.MaxAge,
			Compress:   config.Compress,
		}
		Logger.SetOutput(io.MultiWriter(os.Stdout, rotator))
	} else {
		Logger.SetOutput(os.Stdout)
	}
	return nil
}

// WithField returns a contextual entry on the shared logger.
func WithField(key string, value interface{}) *logrus.Entry {
	return Logger.WithField(key, value)
}
