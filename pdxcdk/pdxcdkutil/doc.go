// Package pdxcdkutil provides app and stack setup for the PierianDx service's
// CDK applications.
//
// # Quick Start
//
// Use [SetupApp] to create one stack per selected stage:
//
//	func main() {
//	    defer jsii.Close()
//	    app := awscdk.NewApp(nil)
//
//	    pdxcdkutil.SetupApp(app, pdxcdkutil.AppConfig{
//	        Prefix:         "pdx-",
//	        Platform:       "OrcaBus",
//	        Service:        "PdxService",
//	        ResourcePrefix: "orca-pdx",
//	        Accounts:       map[string]string{"BETA": "843407916570"},
//	    },
//	        func(stack awscdk.Stack, stageIdent string) { NewStateful(stack, stageIdent) },
//	        func(stack awscdk.Stack, stageIdent string) { NewStateless(stack, stageIdent) },
//	    )
//
//	    app.Synth(nil)
//	}
//
// # CDK Context Configuration
//
// The package reads configuration from CDK context (cdk.json). With prefix "pdx-":
//
//	{
//	  "pdx-deploy-mode": "stateless",
//	  "pdx-stages": ["BETA", "GAMMA", "PROD"],
//	  "pdx-region": "ap-southeast-2",
//	  "pdx-app-root": "../../app",
//	  "pdx-nag": true
//	}
//
// The deploy mode and stages are usually overridden per invocation, e.g.
// "cdk synth -c pdx-deploy-mode=stateful -c pdx-stages=PROD".
//
// # Features
//
//   - [SetupApp]: per-stage stacks for the stateful or stateless half
//   - [ConfigFromScope]: validated context anywhere in the construct tree
//   - [ResourceName]: prefixed physical names
//   - [EnableNag], [Suppress]: AwsSolutions checks and suppressions
package pdxcdkutil
