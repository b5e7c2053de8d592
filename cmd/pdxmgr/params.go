package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/cockroachdb/errors"
	"github.com/orcabus/pdxmanager/cmd/internal/clienv"
	"github.com/orcabus/pdxmanager/cmd/internal/ssmdrift"
	"github.com/orcabus/pdxmanager/infra/stage"
	"github.com/orcabus/pdxmanager/pdxcdk/pdxcdkparams"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// deployedSchemaVersion stands in for schema versions, which the registry
// assigns at deploy time.
const deployedSchemaVersion = "assigned-at-deploy"

func expectedParameters(stageName string) (*pdxcdkparams.Set, error) {
	n, err := stage.ParseName(stageName)
	if err != nil {
		return nil, err
	}
	props := stage.GetStatefulStackProps(n)
	set, err := stage.ParameterSet(props.SsmParameterValues, props.SsmParameterPaths)
	if err != nil {
		return nil, err
	}
	stage.AddSchemaParameters(set, func(stage.SchemaName) string { return deployedSchemaVersion })
	return set, nil
}

func encode(w io.Writer, format string, v any) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return errors.Newf("unknown format %q", format)
	}
}

type ParamsShowCmd struct {
	Stage  string `arg:"" help:"Stage name (BETA, GAMMA, PROD)."`
	Format string `default:"yaml" enum:"yaml,json" help:"Output format (yaml, json)."`
}

func (c *ParamsShowCmd) Run(out io.Writer) error {
	set, err := expectedParameters(c.Stage)
	if err != nil {
		return err
	}
	params, err := set.Parameters()
	if err != nil {
		return err
	}
	return encode(out, c.Format, params)
}

type ParamsDriftCmd struct {
	Stage  string `arg:"" help:"Stage name (BETA, GAMMA, PROD)."`
	Format string `default:"yaml" enum:"yaml,json" help:"Output format (yaml, json)."`
}

func (c *ParamsDriftCmd) Run(ctx context.Context, env clienv.Environment, logger *zap.Logger, out io.Writer) error {
	set, err := expectedParameters(c.Stage)
	if err != nil {
		return err
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(env.StageRegion()))
	if err != nil {
		return errors.Wrap(err, "loading AWS config")
	}

	log := component(logger, "params drift")
	log.Info("reading deployed parameters",
		zap.String("stage", c.Stage),
		zap.String("root", set.Root()))

	report, err := ssmdrift.Check(ctx, ssm.NewFromConfig(awsCfg), set, stage.SchemaLatestParameterPaths()...)
	if err != nil {
		return err
	}
	if err := encode(out, c.Format, report); err != nil {
		return err
	}
	if !report.InSync() {
		return errors.Newf("%d missing, %d changed, %d extra parameters",
			len(report.Missing), len(report.Changed), len(report.Extra))
	}
	fmt.Fprintln(out, "parameters are in sync")
	return nil
}
