package cdk

import (
	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsevents"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
	"github.com/cockroachdb/errors"
	"github.com/iancoleman/strcase"
	"github.com/orcabus/pdxmanager/infra/stage"
)

// Rules are the built rules keyed by name.
type Rules = Built[stage.RuleName, awsevents.Rule]

// NewEventRules builds every registered rule. Pattern rules listen on bus,
// schedule rules on the account's default bus.
func NewEventRules(scope constructs.Construct, bus awsevents.IEventBus) *Rules {
	scope = constructs.NewConstruct(scope, jsii.String("EventRules"))

	built := newBuilt[stage.RuleName, awsevents.Rule]("event rule")
	for _, name := range stage.EventRules.Names() {
		spec, err := stage.EventRules.Get(name)
		if err != nil {
			panic(err)
		}
		built.add(name, newEventRule(scope, name, spec, bus))
	}
	return built
}

func newEventRule(
	scope constructs.Construct, name stage.RuleName, spec stage.RuleSpec, bus awsevents.IEventBus,
) awsevents.Rule {
	props := &awsevents.RuleProps{
		RuleName: jsii.String(name.PhysicalName()),
	}

	switch spec.Shape {
	case stage.ShapeSchedule:
		props.Schedule = awsevents.Schedule_Rate(
			awscdk.Duration_Minutes(jsii.Number(spec.Schedule.Minutes())))
	case stage.ShapeLegacy, stage.ShapeCurrent:
		if spec.Pattern == nil {
			panic(errors.Newf("event rule %q: %s rule without a pattern", name, spec.Shape))
		}
		props.EventBus = bus
		props.EventPattern = EventPattern(spec.Pattern)
	default:
		panic(errors.Newf("event rule %q: unknown shape %q", name, spec.Shape))
	}

	return awsevents.NewRule(scope, jsii.String(strcase.ToCamel(string(name))), props)
}

// EventPattern converts a declared pattern into its CDK form.
func EventPattern(p *stage.EventPattern) *awsevents.EventPattern {
	detail, _ := plainValue(p.Detail).(map[string]any)
	return &awsevents.EventPattern{
		Source:     jsii.Strings(p.Source...),
		DetailType: jsii.Strings(p.DetailType...),
		Detail:     &detail,
	}
}

// plainValue rewrites typed slices and maps into the []any and map[string]any
// forms the jsii runtime serializes.
func plainValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = plainValue(item)
		}
		return out
	case []string:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = item
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = plainValue(item)
		}
		return out
	default:
		return v
	}
}
