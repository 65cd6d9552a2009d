package main

import (
	"go.uber.org/zap"
)

// zapLogger adapts a zap sugared logger to the engine's Logger interface.
type zapLogger struct {
	s *zap.SugaredLogger
}

func newZapLogger() (*zapLogger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.DisableStacktrace = true
	l, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return &zapLogger{s: l.Sugar()}, nil
}

func (z *zapLogger) Debugf(format string, args ...any) { z.s.Debugf(format, args...) }
func (z *zapLogger) Warnf(format string, args ...any)  { z.s.Warnf(format, args...) }

func (z *zapLogger) Sync() {
	_ = z.s.Sync()
}
