package core

import (
	"log/slog"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/memoirlab/memoir-api/pkg/sqlstore"
)

func MustLoadBaseConfig(path string) CoreConfig {
	if path == "" {
		return LoadBaseConfigFromENV()
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var conf CoreConfig
	if err = toml.Unmarshal(raw, &conf); err != nil {
		panic(err)
	}
	conf.raw = raw
	return conf
}

func LoadBaseConfigFromENV() CoreConfig {
	var c CoreConfig
	c.FromENV()
	return c
}

type CoreConfig struct {
	Addr     string                 `toml:"addr"`
	Log      Log                    `toml:"log"`
	Postgres sqlstore.ConnectConfig `toml:"postgres"`

	raw []byte
}

// NewCustomConfigPayload wraps a plugin owned config section so plugins can
// unmarshal their part of the same config file.
func NewCustomConfigPayload[T any]() CustomConfigPayload[T] {
	return CustomConfigPayload[T]{}
}

type CustomConfigPayload[T any] struct {
	CustomConfig T `toml:"custom_config"`
}

func (c CoreConfig) LoadCustomConfig(v any) error {
	if len(c.raw) == 0 {
		return nil
	}
	return toml.Unmarshal(c.raw, v)
}

func (c *CoreConfig) FromENV() {
	c.Addr = os.Getenv("MEMOIR_API_SERVICE_ADDRESS")
	c.Log.FromENV()
	c.Postgres.DSN = os.Getenv("MEMOIR_API_POSTGRESQL_DSN")
}

type Log struct {
	Level string `toml:"level"`
	Path  string `toml:"path"`
}

func (l *Log) FromENV() {
	l.Level = os.Getenv("MEMOIR_API_LOG_LEVEL")
	l.Path = os.Getenv("MEMOIR_API_LOG_PATH")
}

func (l *Log) SlogLevel() slog.Level {
	switch strings.ToLower(l.Level) {
	case "info":
		return slog.LevelInfo
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelDebug
	}
}
