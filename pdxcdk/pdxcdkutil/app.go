package pdxcdkutil

import (
	"github.com/aws/aws-cdk-go/awscdk/v2"
)

// StackConstructor creates the infrastructure of one stage in the given stack.
type StackConstructor func(stack awscdk.Stack, stageIdent string)

// AppConfig configures the CDK app setup.
type AppConfig struct {
	// Prefix for context keys (e.g., "pdx-" for "pdx-deploy-mode", "pdx-stages", etc.)
	Prefix string
	// Platform and Service make up the stack names, e.g. "OrcaBus" and "PdxService"
	// give "BetaOrcaBusStatefulPdxServiceStack".
	Platform string
	Service  string
	// ResourcePrefix prefixes physical resource names (e.g., "orca-pdx").
	ResourcePrefix string
	// Accounts maps every known stage identifier to its AWS account.
	Accounts map[string]string
}

// SetupApp configures a CDK app with one stack per selected stage.
//
// The deploy mode read from context decides which constructor runs: stateful
// apps only hold resources that survive redeploys, stateless apps hold
// everything that can be replaced freely. Any other mode aborts synthesis.
//
// SetupApp validates all context values upfront and panics with a clear error
// message if any required values are missing or invalid.
func SetupApp(
	app awscdk.App,
	cfg AppConfig,
	newStateful StackConstructor,
	newStateless StackConstructor,
) {
	config, err := NewConfig(app, cfg)
	if err != nil {
		panic(err)
	}
	StoreConfig(app, config)

	construct := newStateless
	if config.IsStateful() {
		construct = newStateful
	}

	for _, stageIdent := range config.Stages {
		stack := NewStageStack(app, config, stageIdent)
		construct(stack, stageIdent)

		if NagEnabled(stack) {
			EnableNag(stack)
		}
	}
}
