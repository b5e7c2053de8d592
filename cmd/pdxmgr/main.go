package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/orcabus/pdxmanager/cmd/internal/clienv"
	"github.com/orcabus/pdxmanager/cmd/internal/projcfg"
	"go.uber.org/zap"
)

type App struct {
	Cdk struct {
		Synth     SynthCmd     `cmd:"" help:"Synthesize the stack of a stage."`
		Diff      DiffCmd      `cmd:"" help:"Show the CDK diff of a stage."`
		Deploy    DeployCmd    `cmd:"" help:"Deploy the stack of a stage."`
		LogGroups LogGroupsCmd `cmd:"" name:"loggroups" help:"Show the function log groups of a stage."`
	} `cmd:"" help:"CDK commands."`
	Params struct {
		Show  ParamsShowCmd  `cmd:"" help:"Print the SSM parameters a stage publishes."`
		Drift ParamsDriftCmd `cmd:"" help:"Compare the expected SSM parameters with the deployed ones."`
	} `cmd:"" help:"SSM parameter commands."`
	Templates struct {
		Check TemplatesCheckCmd `cmd:"" help:"Validate state machine templates against their substitutions."`
	} `cmd:"" help:"State machine template commands."`
	Topology TopologyCmd `cmd:"" help:"Print the build order of the stateless stack."`
	Lookup   struct {
		Check LookupCheckCmd `cmd:"" help:"Check the SNOMED CT lookup objects of a stage."`
	} `cmd:"" help:"Lookup bucket commands."`
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := projcfg.Load()
	if err != nil {
		return err
	}
	env, err := clienv.Parse()
	if err != nil {
		return err
	}
	logger, err := env.NewLogger()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var app App
	kctx := kong.Parse(&app,
		kong.Name("pdxmgr"),
		kong.Description("Operator CLI for the PierianDx ctDNA service."),
		kong.Bind(cfg, env, logger),
		kong.BindTo(ctx, (*context.Context)(nil)),
		kong.BindTo(io.Writer(os.Stdout), (*io.Writer)(nil)),
	)
	return kctx.Run()
}

// component returns a logger scoped to one command.
func component(logger *zap.Logger, name string) *zap.Logger {
	return logger.With(zap.String("cmd", name))
}
