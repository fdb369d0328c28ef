// Package viewkit wires configuration and logging around the retained view
// engine. Most programs only need NewEngine; the tree itself lives in
// package retained.
package viewkit

import (
	"io"
	"log/slog"

	"github.com/agiangrant/viewkit/internal/logging"
	"github.com/agiangrant/viewkit/retained"
)

// NewLogger builds the logger described by cfg.Log, writing to w.
func NewLogger(cfg Config, w io.Writer) (*slog.Logger, error) {
	if w == nil {
		return logging.Discard(), nil
	}
	return logging.New(w, cfg.Log.Level, cfg.Log.Format)
}

// NewEngine creates a view engine from cfg, logging to w. A nil w discards
// log output.
func NewEngine(cfg Config, w io.Writer) (*retained.Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger, err := NewLogger(cfg, w)
	if err != nil {
		return nil, err
	}
	return retained.NewEngine(cfg.Engine, logger)
}
