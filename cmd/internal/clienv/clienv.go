// Package clienv reads the operator CLI's environment and builds its logger.
package clienv

import (
	"github.com/caarlos0/env/v11"
	"github.com/cockroachdb/errors"
	"github.com/orcabus/pdxmanager/infra/stage"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Environment holds the variables the CLI reads.
type Environment struct {
	LogLevel  zapcore.Level `env:"PDX_LOG_LEVEL" envDefault:"info"`
	LogFormat string        `env:"PDX_LOG_FORMAT" envDefault:"console"`
	Region    string        `env:"AWS_REGION"`
	Profile   string        `env:"AWS_PROFILE"`
}

// Parse reads the environment.
func Parse() (Environment, error) {
	return ParseFrom(nil)
}

// ParseFrom reads vars instead of the process environment when vars is
// non-nil.
func ParseFrom(vars map[string]string) (Environment, error) {
	var e Environment
	opts := env.Options{}
	if vars != nil {
		opts.Environment = vars
	}
	if err := env.ParseWithOptions(&e, opts); err != nil {
		return e, errors.Wrap(err, "failed to parse environment")
	}
	if e.LogFormat != "console" && e.LogFormat != "json" {
		return e, errors.Newf("PDX_LOG_FORMAT must be console or json, got %q", e.LogFormat)
	}
	return e, nil
}

// RegionOr returns the configured region, or fallback when AWS_REGION is
// unset.
func (e Environment) RegionOr(fallback string) string {
	if e.Region != "" {
		return e.Region
	}
	return fallback
}

// StageRegion is the region AWS clients use for stage operations.
func (e Environment) StageRegion() string {
	return e.RegionOr(stage.Region)
}

// NewLogger builds a logger writing to standard error at the configured
// level.
func (e Environment) NewLogger() (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if e.LogFormat == "console" {
		cfg = zap.NewDevelopmentConfig()
		cfg.Development = false
	}
	cfg.Level = zap.NewAtomicLevelAt(e.LogLevel)
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.DisableStacktrace = true

	logger, err := cfg.Build()
	if err != nil {
		return nil, errors.Wrap(err, "building logger")
	}
	return logger, nil
}
