package main

import (
	"context"

	"github.com/orcabus/pdxmanager/cmd/internal/bincheck"
	"github.com/orcabus/pdxmanager/cmd/internal/cmdexec"
	"github.com/orcabus/pdxmanager/cmd/internal/projcfg"
	"github.com/orcabus/pdxmanager/infra/cdk"
	"github.com/orcabus/pdxmanager/infra/stage"
	"github.com/orcabus/pdxmanager/pdxcdk/pdxcdkutil"
	"go.uber.org/zap"
)

// StackArgs select the stack of one stage in one deploy mode.
type StackArgs struct {
	Mode  string `arg:"" enum:"stateful,stateless" help:"Deploy mode (stateful, stateless)."`
	Stage string `arg:"" help:"Stage name (BETA, GAMMA, PROD)."`
}

// cdkArgs builds the CDK CLI arguments that select the stack and pass the
// app's context.
func (a StackArgs) cdkArgs(cfg *projcfg.Config, verb string, extra ...string) ([]string, error) {
	n, err := stage.ParseName(a.Stage)
	if err != nil {
		return nil, err
	}
	mode := pdxcdkutil.DeployMode(a.Mode)

	args := []string{verb,
		"-c", cdk.ContextPrefix + "deploy-mode=" + string(mode),
		"-c", cdk.ContextPrefix + "stages=" + n.String(),
		"-c", cdk.ContextPrefix + "app-root=" + cfg.AppRoot(),
	}
	args = append(args, extra...)
	return append(args, cdk.StackName(n, mode)), nil
}

// cdkBinaries are needed by every cdk command. Docker bundles the Python
// functions and layers.
var cdkBinaries = []string{"cdk", "docker"}

func runCdk(ctx context.Context, cfg *projcfg.Config, logger *zap.Logger, args []string) error {
	if err := bincheck.NewChecker().Require(cdkBinaries...); err != nil {
		return err
	}
	logger.Info("running cdk", zap.String("verb", args[0]), zap.String("stack", args[len(args)-1]))
	return cmdexec.Command(cfg.CdkDir(), "cdk", args...).Run(ctx, logger)
}

type SynthCmd struct {
	StackArgs
	Quiet bool `help:"Do not print the synthesized template."`
}

func (c *SynthCmd) Run(ctx context.Context, cfg *projcfg.Config, logger *zap.Logger) error {
	var extra []string
	if c.Quiet {
		extra = append(extra, "--quiet")
	}
	args, err := c.cdkArgs(cfg, "synth", extra...)
	if err != nil {
		return err
	}
	return runCdk(ctx, cfg, component(logger, "cdk synth"), args)
}

type DiffCmd struct {
	StackArgs
}

func (c *DiffCmd) Run(ctx context.Context, cfg *projcfg.Config, logger *zap.Logger) error {
	args, err := c.cdkArgs(cfg, "diff")
	if err != nil {
		return err
	}
	return runCdk(ctx, cfg, component(logger, "cdk diff"), args)
}

type DeployCmd struct {
	StackArgs
	RequireApproval string `default:"broadening" enum:"never,any-change,broadening" help:"CDK approval level."`
}

func (c *DeployCmd) Run(ctx context.Context, cfg *projcfg.Config, logger *zap.Logger) error {
	args, err := c.cdkArgs(cfg, "deploy", "--require-approval", c.RequireApproval)
	if err != nil {
		return err
	}
	return runCdk(ctx, cfg, component(logger, "cdk deploy"), args)
}
