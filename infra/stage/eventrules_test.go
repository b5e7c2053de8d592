package stage_test

import (
	"testing"

	"github.com/orcabus/pdxmanager/infra/stage"
)

func TestEventRules_Shapes(t *testing.T) {
	for _, name := range stage.EventRules.Names() {
		spec, err := stage.EventRules.Get(name)
		if err != nil {
			t.Fatalf("Get(%s): %v", name, err)
		}

		switch spec.Shape {
		case stage.ShapeSchedule:
			if spec.Pattern != nil || spec.Schedule <= 0 {
				t.Errorf("%s: schedule rule must have a rate and no pattern", name)
			}
		case stage.ShapeLegacy:
			if _, ok := spec.Pattern.Detail["workflowName"]; !ok {
				t.Errorf("%s: legacy pattern has no workflowName", name)
			}
			if _, ok := spec.Pattern.Detail["workflow"]; ok {
				t.Errorf("%s: legacy pattern matches the nested workflow field", name)
			}
		case stage.ShapeCurrent:
			if _, ok := spec.Pattern.Detail["workflow"]; !ok {
				t.Errorf("%s: current pattern has no workflow.name", name)
			}
			if _, ok := spec.Pattern.Detail["workflowName"]; ok {
				t.Errorf("%s: current pattern matches the flat workflowName field", name)
			}
		default:
			t.Errorf("%s: unknown shape %q", name, spec.Shape)
		}

		if spec.Pattern != nil {
			if len(spec.Pattern.Source) != 1 || spec.Pattern.Source[0] != stage.WorkflowManagerEventSource {
				t.Errorf("%s: source = %v", name, spec.Pattern.Source)
			}
		}
	}
}

func TestEventRules_ReadyMatchesPayloadVersion(t *testing.T) {
	for _, name := range []stage.RuleName{stage.RuleWrscReady, stage.RuleWrscReadyLegacy} {
		spec, err := stage.EventRules.Get(name)
		if err != nil {
			t.Fatalf("Get(%s): %v", name, err)
		}
		payload, ok := spec.Pattern.Detail["payload"].(map[string]any)
		if !ok {
			t.Fatalf("%s: no payload filter", name)
		}
		versions, _ := payload["version"].([]string)
		if len(versions) != 1 || versions[0] != stage.DefaultPayloadVersion {
			t.Errorf("%s: payload versions = %v", name, versions)
		}
	}
}

func TestEventRules_UpstreamDetailTypes(t *testing.T) {
	tests := []struct {
		name stage.RuleName
		want string
	}{
		{stage.RuleUpstreamSucceededEventLegacy, stage.WorkflowRunStateChangeDetailType},
		{stage.RuleUpstreamSucceededEvent, stage.WorkflowRunUpdateDetailType},
		{stage.RuleWrscDraft, stage.WorkflowRunStateChangeDetailType},
	}
	for _, tt := range tests {
		spec, err := stage.EventRules.Get(tt.name)
		if err != nil {
			t.Fatalf("Get(%s): %v", tt.name, err)
		}
		if got := spec.Pattern.DetailType; len(got) != 1 || got[0] != tt.want {
			t.Errorf("%s detail-type = %v, want %q", tt.name, got, tt.want)
		}
	}
}
