package storage

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/julianstephens/worthy/internal/constants"
)

// Option configures a store built by New.
type Option func(*options)

type options struct {
	clock func() time.Time
}

// WithClock sets the clock used for settings defaults.
func WithClock(clock func() time.Time) Option {
	return func(o *options) {
		o.clock = clock
	}
}

func buildOptions(opts []Option) options {
	o := options{clock: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// EngineForPath picks the engine a path implies: files ending in .json use
// the JSON engine, everything else SQLite.
func EngineForPath(path string) string {
	if strings.EqualFold(filepath.Ext(path), constants.JSONEngineSuffix) {
		return constants.EngineJSON
	}
	return constants.EngineSQLite
}

// New builds an unopened store for engine at path. An empty engine is
// inferred from the path.
func New(engine, path string, opts ...Option) (Provider, error) {
	engine = strings.ToLower(strings.TrimSpace(engine))
	if engine == "" {
		engine = EngineForPath(path)
	}
	switch engine {
	case constants.EngineSQLite:
		return NewSQLiteStore(path, opts...), nil
	case constants.EngineJSON:
		return NewJSONStore(path, opts...), nil
	default:
		return nil, fmt.Errorf("unsupported store engine: %q", engine)
	}
}
