// Package logging builds the logrus logger shared by the game binaries.
package logging

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options selects the level and, optionally, a rotating log file.
type Options struct {
	Level string `mapstructure:"level" yaml:"level"`
	// File enables JSON logging to a lumberjack-rotated file. Empty logs text
	// to the fallback writer instead.
	File       string `mapstructure:"file" yaml:"file"`
	MaxSize    int    `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge     int    `mapstructure:"max_age" yaml:"max_age"`
	Compress   bool   `mapstructure:"compress" yaml:"compress"`
}

// New returns a logger configured by opts and a Closer for its output.
// Without a file it writes text to fallback and the Closer is a no-op.
func New(opts Options, fallback io.Writer) (*logrus.Logger, io.Closer, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, nil, err
	}

	log := logrus.New()
	log.SetLevel(level)

	if opts.File == "" {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		log.SetOutput(fallback)
		return log, nopCloser{}, nil
	}

	out := &lumberjack.Logger{
		Filename:   opts.File,
		MaxSize:    opts.MaxSize,
		MaxBackups: opts.MaxBackups,
		MaxAge:     opts.MaxAge,
		Compress:   opts.Compress,
	}
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(out)
	return log, out, nil
}

// ParseLevel accepts logrus level names in any case. Empty means info.
func ParseLevel(name string) (logrus.Level, error) {
	if name == "" {
		return logrus.InfoLevel, nil
	}
	level, err := logrus.ParseLevel(name)
	if err != nil {
		return 0, fmt.Errorf("log level: %w", err)
	}
	return level, nil
}

// SetLevel changes log's level by name, leaving it untouched on error.
func SetLevel(log *logrus.Logger, name string) error {
	level, err := ParseLevel(name)
	if err != nil {
		return err
	}
	if log.GetLevel() != level {
		log.SetLevel(level)
		log.WithField("level", level.String()).Info("log level changed")
	}
	return nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
