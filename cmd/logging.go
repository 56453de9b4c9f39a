package cmd

import (
	"go.uber.org/zap"
)

// newLogger returns a development logger when debug output is requested
// and a no-op logger otherwise. Human-facing progress goes to stdout via
// fmt; the zap logger only carries structured diagnostics.
func newLogger(debug bool) (*zap.Logger, error) {
	if !debug {
		return zap.NewNop(), nil
	}
	return zap.NewDevelopment()
}
