package stage

import "time"

// RuleName identifies one of the service's EventBridge rules.
type RuleName string

const (
	RuleUpstreamSucceededEventLegacy RuleName = "upstreamSucceededEventLegacy"
	RuleUpstreamSucceededEvent       RuleName = "upstreamSucceededEvent"
	RuleWrscDraftLegacy              RuleName = "wrscDraftLegacy"
	RuleWrscDraft                    RuleName = "wrscDraft"
	RuleWrscReadyLegacy              RuleName = "wrscReadyLegacy"
	RuleWrscReady                    RuleName = "wrscReady"
	RuleMonitorPdxRunsSchedule       RuleName = "monitorPdxRunsSchedule"
)

// PhysicalName is the deployed rule name.
func (n RuleName) PhysicalName() string {
	return PrefixedName(string(n))
}

// EventShape is the layout of the event detail a rule matches.
type EventShape string

const (
	// ShapeLegacy events carry a flat "workflowName" field.
	ShapeLegacy EventShape = "legacy"
	// ShapeCurrent events carry a nested "workflow.name" field.
	ShapeCurrent EventShape = "current"
	// ShapeSchedule rules fire on a timer and match no event.
	ShapeSchedule EventShape = "schedule"
)

// EventPattern is an EventBridge event pattern. Detail leaves are lists of
// accepted values.
type EventPattern struct {
	Source     []string       `json:"source"`
	DetailType []string       `json:"detail-type"`
	Detail     map[string]any `json:"detail"`
}

// RuleSpec declares a rule. Pattern rules listen on the OrcaBus bus, schedule
// rules on the default bus.
type RuleSpec struct {
	Shape    EventShape
	Pattern  *EventPattern
	Schedule time.Duration
}

var ruleNames = []RuleName{
	RuleUpstreamSucceededEventLegacy,
	RuleUpstreamSucceededEvent,
	RuleWrscDraftLegacy,
	RuleWrscDraft,
	RuleWrscReadyLegacy,
	RuleWrscReady,
	RuleMonitorPdxRunsSchedule,
}

var ruleSpecs = map[RuleName]RuleSpec{
	RuleUpstreamSucceededEventLegacy: legacyRule(WorkflowRunStateChangeDetailType,
		DragenTso500CtdnaWorkflowName, SucceededStatus, nil),
	RuleUpstreamSucceededEvent: currentRule(WorkflowRunUpdateDetailType,
		DragenTso500CtdnaWorkflowName, SucceededStatus, nil),
	RuleWrscDraftLegacy: legacyRule(WorkflowRunStateChangeDetailType,
		WorkflowName, DraftStatus, nil),
	RuleWrscDraft: currentRule(WorkflowRunStateChangeDetailType,
		WorkflowName, DraftStatus, nil),
	RuleWrscReadyLegacy: legacyRule(WorkflowRunStateChangeDetailType,
		WorkflowName, ReadyStatus, payloadVersion(DefaultPayloadVersion)),
	RuleWrscReady: currentRule(WorkflowRunStateChangeDetailType,
		WorkflowName, ReadyStatus, payloadVersion(DefaultPayloadVersion)),
	RuleMonitorPdxRunsSchedule: {
		Shape:    ShapeSchedule,
		Schedule: MonitorRunsFrequency,
	},
}

// EventRules holds the declaration of every rule.
var EventRules = MustRegistry("event rule", ruleNames, ruleSpecs)

func payloadVersion(version string) map[string]any {
	return map[string]any{"version": []string{version}}
}

func legacyRule(detailType, workflow, status string, payload map[string]any) RuleSpec {
	detail := map[string]any{
		"workflowName": []string{workflow},
		"status":       []string{status},
	}
	if payload != nil {
		detail["payload"] = payload
	}
	return RuleSpec{Shape: ShapeLegacy, Pattern: workflowManagerPattern(detailType, detail)}
}

func currentRule(detailType, workflow, status string, payload map[string]any) RuleSpec {
	detail := map[string]any{
		"workflow": map[string]any{"name": []string{workflow}},
		"status":   []string{status},
	}
	if payload != nil {
		detail["payload"] = payload
	}
	return RuleSpec{Shape: ShapeCurrent, Pattern: workflowManagerPattern(detailType, detail)}
}

func workflowManagerPattern(detailType string, detail map[string]any) *EventPattern {
	return &EventPattern{
		Source:     []string{WorkflowManagerEventSource},
		DetailType: []string{detailType},
		Detail:     detail,
	}
}
