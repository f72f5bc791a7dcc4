// Package logger builds the logrus loggers used by the command line tools
// and provides a silent default for the library packages.
package logger

import (
	"fmt"
	"io"
	"os"
	"path"
	"runtime"
	"strings"

	formatter "github.com/antonfisher/nested-logrus-formatter"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Fields is an alias so callers need not import logrus for field maps
type Fields = logrus.Fields

// Options configures a logger
type Options struct {
	// Level is a logrus level name, eg: "info", "debug"
	Level string
	// File is an optional path to also write rotated log output to
	File string
	// NoColors disables terminal colors
	NoColors bool
	// Caller adds the calling file and function to each entry
	Caller bool
}

// New creates a logger writing to stderr and optionally a rotated log file
func New(opts Options) (*logrus.Logger, error) {

	log := logrus.New()

	level := logrus.InfoLevel

	if opts.Level != "" {
		var err error
		level, err = logrus.ParseLevel(opts.Level)

		if err != nil {
			return nil, errors.Wrapf(err, "invalid log level %q", opts.Level)
		}
	}

	log.SetLevel(level)

	log.SetFormatter(&formatter.Formatter{
		NoColors:        opts.NoColors,
		TimestampFormat: "2006-01-02 15:04:05",
		HideKeys:        false,
		CallerFirst:     true,
		CustomCallerFormatter: func(f *runtime.Frame) string {
			s := strings.Split(f.Function, ".")
			funcName := s[len(s)-1]
			return fmt.Sprintf(" [%s:%d][%s()]", path.Base(f.File), f.Line, funcName)
		},
	})

	writers := []io.Writer{os.Stderr}

	if opts.File != "" {
		writers = append(writers, &lumberjack.Logger{
			Filename:   opts.File,
			LocalTime:  true,
			Compress:   true,
			MaxSize:    100,
			MaxAge:     7,
			MaxBackups: 3,
		})
	}

	log.SetOutput(io.MultiWriter(writers...))
	log.SetReportCaller(opts.Caller)

	return log, nil
}

// Discard returns a logger that drops all output, used as the default by
// library packages
func Discard() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	log.SetLevel(logrus.PanicLevel)
	return log
}
