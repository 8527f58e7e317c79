package logging

import (
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log output formats
const (
	TextFormat = "text"
	JSONFormat = "json"
)

// Config selects the level and output format of the process logger
type Config struct {
	Level  string
	Format string
	Output io.Writer // stderr when nil
}

// NewLogger builds a logrus logger from cfg
func NewLogger(cfg Config) (*logrus.Logger, error) {
	lg := logrus.New()
	if cfg.Output != nil {
		lg.SetOutput(cfg.Output)
	}

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	lg.SetLevel(level)

	switch strings.ToLower(cfg.Format) {
	case "", TextFormat:
		lg.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	case JSONFormat:
		lg.SetFormatter(&logrus.JSONFormatter{})
	default:
		return nil, fmt.Errorf("unknown log format %q", cfg.Format)
	}

	return lg, nil
}
