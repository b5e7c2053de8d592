package cdk

import (
	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsiam"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
	"github.com/cockroachdb/errors"
	"github.com/orcabus/pdxmanager/infra/stage"
	"github.com/orcabus/pdxmanager/pdxcdk/pdxcdkparams"
	"github.com/orcabus/pdxmanager/pdxcdk/pdxcdksfn"
	"github.com/orcabus/pdxmanager/pdxcdk/pdxcdkutil"
)

// StateMachines are the built state machines keyed by name.
type StateMachines = Built[stage.StateMachineName, pdxcdksfn.StateMachine]

// StepFunctionsProps configures NewStepFunctions.
type StepFunctionsProps struct {
	Imports                      *Imports
	Lambdas                      *Lambdas
	NewWorkflowManagerIsDeployed bool
	SsmParameterPaths            stage.SsmParameterPaths
}

// NewStepFunctions builds every registered state machine from its template.
func NewStepFunctions(scope constructs.Construct, props StepFunctionsProps) *StateMachines {
	scope = constructs.NewConstruct(scope, jsii.String("StepFunctions"))

	built := newBuilt[stage.StateMachineName, pdxcdksfn.StateMachine]("state machine")
	for _, name := range stage.StepFunctions.Names() {
		built.add(name, newStepFunction(scope, name, props))
	}
	return built
}

func newStepFunction(
	scope constructs.Construct, name stage.StateMachineName, props StepFunctionsProps,
) pdxcdksfn.StateMachine {
	spec, err := stage.StepFunctions.Get(name)
	if err != nil {
		panic(err)
	}

	subs, err := stage.Substitutions(name, stage.SubstitutionInputs{
		EventBusName:                 *props.Imports.EventBus.EventBusName(),
		NewWorkflowManagerIsDeployed: props.NewWorkflowManagerIsDeployed,
		SsmParameterPaths:            props.SsmParameterPaths,
		LambdaArn:                    lambdaArn(props.Lambdas),
	})
	if err != nil {
		panic(errors.Wrap(err, "computing substitutions"))
	}

	sm := pdxcdksfn.New(scope, pdxcdksfn.Props{
		Name:          jsii.String(string(name)),
		PhysicalName:  jsii.String(name.PhysicalName()),
		TemplatePath:  jsii.String(pdxcdkutil.AppPath(scope, stage.StepFunctionsDir, name.TemplateFile())),
		Substitutions: subs,
	})

	for _, fn := range spec.Lambdas {
		props.Lambdas.MustGet(fn).CurrentVersion().GrantInvoke(sm.StateMachine())
	}

	req := spec.Requirements
	if req.NeedsEventPutPermission {
		sm.AddToRolePolicy(awsiam.NewPolicyStatement(&awsiam.PolicyStatementProps{
			Actions:   jsii.Strings("events:PutEvents"),
			Resources: &[]*string{props.Imports.EventBus.EventBusArn()},
		}))
	}

	if req.NeedsSsmParameterStoreAccess {
		sm.AddToRolePolicy(pdxcdkparams.GetParameterStatement(props.SsmParameterPaths.RootPrefix))
		sm.Suppress(map[pdxcdkutil.NagRule]string{
			pdxcdkutil.NagWildcardPermission: "We need to give access to the full prefix for the SSM parameter store",
		})
	}

	if req.NeedsEventRulePermissions {
		sm.AddToRolePolicy(awsiam.NewPolicyStatement(&awsiam.PolicyStatementProps{
			Actions:   jsii.Strings("events:EnableRule", "events:DisableRule"),
			Resources: &[]*string{ruleArn(scope, stage.RuleMonitorPdxRunsSchedule)},
		}))
	}

	return sm
}

// ruleArn is the ARN of a rule in the stack's account and region, built from
// its physical name so it can be referenced before the rule exists.
func ruleArn(scope constructs.Construct, name stage.RuleName) *string {
	return awscdk.Stack_Of(scope).FormatArn(&awscdk.ArnComponents{
		Service:      jsii.String("events"),
		Resource:     jsii.String("rule"),
		ResourceName: jsii.String(name.PhysicalName()),
	})
}
