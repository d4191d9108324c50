// Package zap adapts a zap logger to the hybridcache Logger interface.
package zap

import (
	"github.com/sharedmem/hybridcache"
	"go.uber.org/zap"
)

type Logger struct{ L *zap.Logger }

var _ hybridcache.Logger = Logger{}

func (z Logger) Debug(msg string, f hybridcache.Fields) { z.L.Debug(msg, zf(f)...) }
func (z Logger) Info(msg string, f hybridcache.Fields)  { z.L.Info(msg, zf(f)...) }
func (z Logger) Warn(msg string, f hybridcache.Fields)  { z.L.Warn(msg, zf(f)...) }
func (z Logger) Error(msg string, f hybridcache.Fields) { z.L.Error(msg, zf(f)...) }

func zf(f hybridcache.Fields) []zap.Field {
	if len(f) == 0 {
		return nil
	}
	out := make([]zap.Field, 0, len(f))
	for k, v := range f {
		out = append(out, zap.Any(k, v))
	}
	return out
}
