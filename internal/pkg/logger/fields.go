package logger

import (
	"time"

	"go.uber.org/zap"
)

func String(key, value string) zap.Field {
	return zap.String(key, value)
}

func Int(key string, value int) zap.Field {
	return zap.Int(key, value)
}

// Uint64 creates a field with a uint64 value
func Uint64(key string, value uint64) zap.Field {
	return zap.Uint64(key, value)
}

func Float64(key string, value float64) zap.Field {
	return zap.Float64(key, value)
}

func Bool(key string, value bool) zap.Field {
	return zap.Bool(key, value)
}

func Duration(key string, value time.Duration) zap.Field {
	return zap.Duration(key, value)
}

func Any(key string, value interface{}) zap.Field {
	return zap.Any(key, value)
}

// Err adds the error under the "error" key
func Err(err error) zap.Field {
	return zap.Error(err)
}
