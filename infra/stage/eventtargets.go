package stage

// TargetName identifies a binding of a rule to a state machine.
type TargetName string

const (
	TargetUpstreamSucceededEventLegacyToGlueSucceededEvents TargetName = "upstreamSucceededEventLegacyToGlueSucceededEvents"
	TargetUpstreamSucceededEventToGlueSucceededEvents       TargetName = "upstreamSucceededEventToGlueSucceededEvents"
	TargetDraftLegacyToPopulateDraftDataSfn                 TargetName = "draftLegacyToPopulateDraftDataSfnTarget"
	TargetDraftToPopulateDraftDataSfn                       TargetName = "draftToPopulateDraftDataSfnTarget"
	TargetDraftLegacyToValidateDraftSfn                     TargetName = "draftLegacyToValidateDraftSfnTarget"
	TargetDraftToValidateDraftSfn                           TargetName = "draftToValidateDraftSfnTarget"
	TargetReadyLegacyToLaunchPieriandxSfn                   TargetName = "readyLegacyToIcav2WesSubmittedSfnTarget"
	TargetReadyToLaunchPieriandxSfn                         TargetName = "readyToIcav2WesSubmittedSfnTarget"
	TargetMonitorPdxRuns                                    TargetName = "monitorPdxRuns"
)

// InputTransform selects how an event is turned into state machine input.
type InputTransform string

const (
	// InputLegacy remaps the flat legacy detail into the current layout.
	InputLegacy InputTransform = "legacy"
	// InputDetail passes the event detail through unchanged.
	InputDetail InputTransform = "detail"
)

// DetailPath is the event path passed through by InputDetail.
const DetailPath = "$.detail"

// TargetSpec binds one rule to one state machine.
type TargetSpec struct {
	Rule         RuleName
	StateMachine StateMachineName
	Input        InputTransform
}

var targetNames = []TargetName{
	TargetUpstreamSucceededEventLegacyToGlueSucceededEvents,
	TargetUpstreamSucceededEventToGlueSucceededEvents,
	TargetDraftLegacyToPopulateDraftDataSfn,
	TargetDraftToPopulateDraftDataSfn,
	TargetDraftLegacyToValidateDraftSfn,
	TargetDraftToValidateDraftSfn,
	TargetReadyLegacyToLaunchPieriandxSfn,
	TargetReadyToLaunchPieriandxSfn,
	TargetMonitorPdxRuns,
}

var targetSpecs = map[TargetName]TargetSpec{
	TargetUpstreamSucceededEventLegacyToGlueSucceededEvents: {
		RuleUpstreamSucceededEventLegacy, StateMachineGlueSucceededEventsToDraftUpdate, InputLegacy,
	},
	TargetUpstreamSucceededEventToGlueSucceededEvents: {
		RuleUpstreamSucceededEvent, StateMachineGlueSucceededEventsToDraftUpdate, InputDetail,
	},
	TargetDraftLegacyToPopulateDraftDataSfn: {
		RuleWrscDraftLegacy, StateMachinePopulateDraftData, InputLegacy,
	},
	TargetDraftToPopulateDraftDataSfn: {
		RuleWrscDraft, StateMachinePopulateDraftData, InputDetail,
	},
	TargetDraftLegacyToValidateDraftSfn: {
		RuleWrscDraftLegacy, StateMachineValidateDraftDataAndPutReadyEvent, InputLegacy,
	},
	TargetDraftToValidateDraftSfn: {
		RuleWrscDraft, StateMachineValidateDraftDataAndPutReadyEvent, InputDetail,
	},
	TargetReadyLegacyToLaunchPieriandxSfn: {
		RuleWrscReadyLegacy, StateMachineLaunchPieriandxFromReadyEvent, InputLegacy,
	},
	TargetReadyToLaunchPieriandxSfn: {
		RuleWrscReady, StateMachineLaunchPieriandxFromReadyEvent, InputDetail,
	},
	TargetMonitorPdxRuns: {
		RuleMonitorPdxRunsSchedule, StateMachineMonitorPdxRuns, InputDetail,
	},
}

// EventTargets holds every rule to state machine binding.
var EventTargets = MustRegistry("event target", targetNames, targetSpecs)

// LegacyInputPaths returns the layout of the state machine input built from a
// legacy event. Leaves are event paths.
func LegacyInputPaths() map[string]any {
	return map[string]any{
		"status":    "$.detail.status",
		"timestamp": "$.detail.timestamp",
		"workflow": map[string]any{
			"name":    "$.detail.workflowName",
			"version": "$.detail.workflowVersion",
		},
		"workflowRunName": "$.detail.workflowRunName",
		"portalRunId":     "$.detail.portalRunId",
		"libraries":       "$.detail.linkedLibraries",
		"payload":         "$.detail.payload",
	}
}
