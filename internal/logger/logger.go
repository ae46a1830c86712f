// Package logger builds the zap loggers used by the command line tools.
package logger

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options selects the logger format and level.
type Options struct {
	// JSON switches to structured JSON output for machine consumption.
	JSON bool
	// Verbose enables debug level.
	Verbose bool
	// Output is where console logs go. Defaults to stderr.
	Output io.Writer
}

// New builds a logger. JSON output uses the zap production config; console
// output uses a terse human-readable encoder.
func New(opts Options) (*zap.Logger, error) {
	level := zap.InfoLevel
	if opts.Verbose {
		level = zap.DebugLevel
	}

	if opts.JSON {
		config := zap.NewProductionConfig()
		config.Level = zap.NewAtomicLevelAt(level)
		config.OutputPaths = []string{"stderr"}
		config.ErrorOutputPaths = []string{"stderr"}
		return config.Build()
	}

	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	return zap.New(zapcore.NewCore(consoleEncoder(), zapcore.AddSync(out), level)), nil
}

func consoleEncoder() zapcore.Encoder {
	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.TimeKey = ""
	cfg.CallerKey = ""
	cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	return zapcore.NewConsoleEncoder(cfg)
}
