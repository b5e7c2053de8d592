package main

import (
	"context"
	"io"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/cockroachdb/errors"
	"github.com/orcabus/pdxmanager/cmd/internal/clienv"
	"github.com/orcabus/pdxmanager/cmd/internal/lookupcheck"
	"github.com/orcabus/pdxmanager/infra/stage"
	"go.uber.org/zap"
)

type LookupCheckCmd struct {
	Stage  string `arg:"" help:"Stage name (BETA, GAMMA, PROD)."`
	Format string `default:"yaml" enum:"yaml,json" help:"Output format (yaml, json)."`
}

func (c *LookupCheckCmd) Run(ctx context.Context, env clienv.Environment, logger *zap.Logger, out io.Writer) error {
	n, err := stage.ParseName(c.Stage)
	if err != nil {
		return err
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(env.StageRegion()))
	if err != nil {
		return errors.Wrap(err, "loading AWS config")
	}

	component(logger, "lookup check").Info("probing lookup objects",
		zap.String("stage", n.String()),
		zap.String("bucket", stage.LookupBucketName(n)))

	results, err := lookupcheck.Check(ctx, s3.NewFromConfig(awsCfg), lookupcheck.StageURIs(n))
	if err != nil {
		return err
	}
	if err := encode(out, c.Format, results); err != nil {
		return err
	}
	if !lookupcheck.AllPresent(results) {
		return errors.New("lookup bucket is missing objects")
	}
	return nil
}
