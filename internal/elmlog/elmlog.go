// Package elmlog wraps zap for the structured logging the original
// implementation's support/log.rs did with eprintln! macros (info!,
// error!, mk_err!). Where log.rs tagged every constructed error with
// its own source file and line, this package leans on zap's own
// caller-reporting instead of reimplementing that by hand.
package elmlog

import (
	"github.com/kylelemons/godebug/pretty"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds the process-wide logger: human-readable console output
// to stderr, since elm-pair talks to its editor over stdin/stdout and
// must never write anything else there.
func New(debug bool) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if debug {
		level = zapcore.DebugLevel
	}
	cfg := zap.Config{
		Level:            zap.NewAtomicLevelAt(level),
		Development:      debug,
		Encoding:         "console",
		EncoderConfig:    consoleEncoderConfig(),
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	}
	return cfg.Build()
}

func consoleEncoderConfig() zapcore.EncoderConfig {
	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.TimeKey = "t"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	return cfg
}

// Nop returns a logger that discards everything, used by tests and by
// the simulation harness so scenario runs stay quiet by default.
func Nop() *zap.Logger { return zap.NewNop() }

// Pretty renders v with godebug/pretty's Go-syntax-like formatter and
// wraps it as a zap.Field, for debug-level dumps of a classified
// change kind or refactor batch that are awkward to read as the
// default %+v a zap.Any would produce.
func Pretty(key string, v any) zap.Field {
	return zap.String(key, pretty.Sprint(v))
}
