package main

import (
	"context"
	"io"

	"github.com/orcabus/pdxmanager/cmd/internal/bincheck"
	"github.com/orcabus/pdxmanager/cmd/internal/cfnread"
	"github.com/orcabus/pdxmanager/cmd/internal/clienv"
	"github.com/orcabus/pdxmanager/infra/cdk"
	"github.com/orcabus/pdxmanager/infra/stage"
	"github.com/orcabus/pdxmanager/pdxcdk/pdxcdkutil"
	"go.uber.org/zap"
)

type LogGroupsCmd struct {
	Stage  string `arg:"" help:"Stage name (BETA, GAMMA, PROD)."`
	Format string `default:"yaml" enum:"yaml,json" help:"Output format (yaml, json)."`
}

func (c *LogGroupsCmd) Run(ctx context.Context, env clienv.Environment, logger *zap.Logger, out io.Writer) error {
	n, err := stage.ParseName(c.Stage)
	if err != nil {
		return err
	}

	if err := bincheck.NewChecker().Require("aws"); err != nil {
		return err
	}

	stackName := cdk.StackName(n, pdxcdkutil.DeployModeStateless)
	outputs, err := cfnread.StackOutputs(ctx, component(logger, "cdk loggroups"), env.StageRegion(), stackName)
	if err != nil {
		return err
	}
	return encode(out, c.Format, cfnread.LogGroups(outputs))
}
