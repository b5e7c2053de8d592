// Package cdk builds the stacks of the PierianDx ctDNA service.
//
// Each stage gets a stateful stack, holding the SSM parameters and the lookup
// bucket, and a stateless stack holding the functions, state machines and
// event wiring. The two are deployed separately, selected by the deploy mode
// in the CDK context.
package cdk

import (
	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/cockroachdb/errors"
	"github.com/orcabus/pdxmanager/infra/stage"
	"github.com/orcabus/pdxmanager/infra/topology"
)

// Stateless holds the constructs of a stateless stack.
type Stateless struct {
	Imports       *Imports
	Lambdas       *Lambdas
	StateMachines *StateMachines
	Rules         *Rules
	Targets       *Targets
}

// NewStateless creates the replaceable resources of a stage.
func NewStateless(stack awscdk.Stack, stageIdent string) {
	BuildStateless(stack, stageIdent)
}

// BuildStateless creates the stateless resources and returns them. Functions
// are built first, then state machines, rules and targets.
func BuildStateless(stack awscdk.Stack, stageIdent string) *Stateless {
	name, err := stage.ParseName(stageIdent)
	if err != nil {
		panic(err)
	}
	if _, err := topology.FromRegistries(); err != nil {
		panic(errors.Wrap(err, "stateless stack declarations"))
	}
	props := stage.GetStatelessStackProps(name)

	out := &Stateless{Imports: NewImports(stack, props)}

	out.Lambdas = NewLambdas(stack, LambdasProps{
		Imports:           out.Imports,
		SsmParameterPaths: props.SsmParameterPaths,
	})
	out.StateMachines = NewStepFunctions(stack, StepFunctionsProps{
		Imports:                      out.Imports,
		Lambdas:                      out.Lambdas,
		NewWorkflowManagerIsDeployed: props.NewWorkflowManagerIsDeployed,
		SsmParameterPaths:            props.SsmParameterPaths,
	})
	out.Rules = NewEventRules(stack, out.Imports.EventBus)
	out.Targets = NewEventTargets(out.Rules, out.StateMachines)

	return out
}
