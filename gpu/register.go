//go:build !nogpu

package gpu

import (
	"log/slog"

	"github.com/gogpu/compute"
)

// logSink forwards compute.SetLogger to this package.
type logSink struct{}

func (logSink) SetLogger(l *slog.Logger) { SetLogger(l) }

func init() {
	compute.RegisterLogger(logSink{})
}
