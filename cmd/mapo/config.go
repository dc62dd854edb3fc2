package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/sirupsen/logrus"
)

type Config struct {
	HTTPAddr   string `env:"MAPO_HTTP_ADDR" envDefault:":8080"`
	LogLevel   string `env:"MAPO_LOG_LEVEL" envDefault:"info"`
	LogFormat  string `env:"MAPO_LOG_FORMAT" envDefault:"text"`
	CatalogDir string `env:"MAPO_CATALOG_DIR"`
	EventSeed  int64  `env:"MAPO_EVENT_SEED"`
}

var logLevels = map[string]logrus.Level{
	"trace": logrus.TraceLevel,
	"debug": logrus.DebugLevel,
	"info":  logrus.InfoLevel,
	"warn":  logrus.WarnLevel,
	"error": logrus.ErrorLevel,
	"fatal": logrus.FatalLevel,
	"off":   logrus.PanicLevel,
}

func loadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

func configureLogging(cfg Config) error {
	level, ok := logLevels[strings.ToLower(strings.TrimSpace(cfg.LogLevel))]
	if !ok {
		return fmt.Errorf("MAPO_LOG_LEVEL must be one of trace debug info warn error fatal off, got %q", cfg.LogLevel)
	}
	logrus.SetLevel(level)
	logrus.SetOutput(os.Stderr)

	switch strings.ToLower(strings.TrimSpace(cfg.LogFormat)) {
	case "", "text":
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: "2006-01-02 15:04:05.000"})
	case "json":
		logrus.SetFormatter(&logrus.JSONFormatter{})
	default:
		return fmt.Errorf("MAPO_LOG_FORMAT must be text or json, got %q", cfg.LogFormat)
	}
	return nil
}
