package cdk

import (
	"github.com/aws/aws-cdk-go/awscdk/v2/awsevents"
	"github.com/aws/aws-cdk-go/awscdk/v2/awseventstargets"
	"github.com/aws/jsii-runtime-go"
	"github.com/cockroachdb/errors"
	"github.com/orcabus/pdxmanager/infra/stage"
)

// Target records one rule to state machine binding after it was wired.
type Target struct {
	Name   stage.TargetName
	Rule   awsevents.Rule
	Target awseventstargets.SfnStateMachine
}

// Targets are the wired bindings keyed by name.
type Targets = Built[stage.TargetName, *Target]

// NewEventTargets binds every registered target's rule to its state machine.
// A target whose rule or state machine was not built aborts synthesis.
func NewEventTargets(rules *Rules, machines *StateMachines) *Targets {
	built := newBuilt[stage.TargetName, *Target]("event target")
	for _, name := range stage.EventTargets.Names() {
		spec, err := stage.EventTargets.Get(name)
		if err != nil {
			panic(err)
		}

		rule, err := rules.Get(spec.Rule)
		if err != nil {
			panic(errors.Wrapf(err, "event target %q", name))
		}
		sm, err := machines.Get(spec.StateMachine)
		if err != nil {
			panic(errors.Wrapf(err, "event target %q", name))
		}

		target := awseventstargets.NewSfnStateMachine(sm.StateMachine(), &awseventstargets.SfnStateMachineProps{
			Input: TargetInput(spec.Input),
		})
		rule.AddTarget(target)

		built.add(name, &Target{Name: name, Rule: rule, Target: target})
	}
	return built
}

// TargetInput returns the state machine input of a transform.
func TargetInput(input stage.InputTransform) awsevents.RuleTargetInput {
	switch input {
	case stage.InputLegacy:
		return awsevents.RuleTargetInput_FromObject(eventFields(stage.LegacyInputPaths()))
	case stage.InputDetail:
		return awsevents.RuleTargetInput_FromEventPath(jsii.String(stage.DetailPath))
	default:
		panic(errors.Newf("unknown input transform %q", input))
	}
}

// eventFields replaces every path leaf with the event field it selects.
func eventFields(paths map[string]any) map[string]any {
	out := make(map[string]any, len(paths))
	for k, v := range paths {
		switch leaf := v.(type) {
		case string:
			out[k] = awsevents.EventField_FromPath(jsii.String(leaf))
		case map[string]any:
			out[k] = eventFields(leaf)
		default:
			panic(errors.Newf("input field %q: unsupported value %T", k, v))
		}
	}
	return out
}
