package stage

import (
	"maps"
	"strconv"

	"github.com/cockroachdb/errors"
)

// StateMachineName identifies one of the service's state machines.
type StateMachineName string

const (
	StateMachineGlueSucceededEventsToDraftUpdate  StateMachineName = "glueSucceededEventsToDraftUpdate"
	StateMachinePopulateDraftData                 StateMachineName = "populateDraftData"
	StateMachineValidateDraftDataAndPutReadyEvent StateMachineName = "validateDraftDataAndPutReadyEvent"
	StateMachineLaunchPieriandxFromReadyEvent     StateMachineName = "launchPieriandxFromReadyEvent"
	StateMachineMonitorPdxRuns                    StateMachineName = "monitorPdxRuns"
)

// StepFunctionRequirements are the capabilities a state machine needs.
type StepFunctionRequirements struct {
	NeedsEventPutPermission      bool
	NeedsSsmParameterStoreAccess bool
	NeedsEventRulePermissions    bool
}

// StepFunctionSpec declares a state machine: what it needs and which
// functions its template references.
type StepFunctionSpec struct {
	Requirements StepFunctionRequirements
	Lambdas      []LambdaName
}

var stateMachineNames = []StateMachineName{
	StateMachineGlueSucceededEventsToDraftUpdate,
	StateMachinePopulateDraftData,
	StateMachineValidateDraftDataAndPutReadyEvent,
	StateMachineLaunchPieriandxFromReadyEvent,
	StateMachineMonitorPdxRuns,
}

var sharedPreReadyLambdas = []LambdaName{
	LambdaComparePayload,
	LambdaGetPayload,
	LambdaGetWorkflowRunObject,
	LambdaGenerateWruEventObjectWithMergedData,
	LambdaFindLatestWorkflow,
	LambdaGetDataFilesFromTso500WorkflowRun,
}

var stepFunctionSpecs = map[StateMachineName]StepFunctionSpec{
	StateMachineGlueSucceededEventsToDraftUpdate: {
		Requirements: StepFunctionRequirements{NeedsEventPutPermission: true},
		Lambdas:      sharedPreReadyLambdas,
	},
	StateMachinePopulateDraftData: {
		Requirements: StepFunctionRequirements{
			NeedsEventPutPermission:      true,
			NeedsSsmParameterStoreAccess: true,
		},
		Lambdas: append(append([]LambdaName{}, sharedPreReadyLambdas...),
			LambdaGetLibraries,
			LambdaGetFastqRgidsFromLibraryID,
			LambdaGetMetadataTags,
			LambdaGetFastqIDListFromRgidList,
			LambdaGetRedcapTagsForLibraryID,
			LambdaGenerateCaseMetadata,
			LambdaGetCaseMetadataFromRedcap,
			LambdaValidateDraftDataCompleteSchema,
		),
	},
	StateMachineValidateDraftDataAndPutReadyEvent: {
		Requirements: StepFunctionRequirements{NeedsEventPutPermission: true},
		Lambdas:      []LambdaName{LambdaValidateDraftDataCompleteSchema},
	},
	StateMachineLaunchPieriandxFromReadyEvent: {
		Requirements: StepFunctionRequirements{
			NeedsEventPutPermission:      true,
			NeedsEventRulePermissions:    true,
			NeedsSsmParameterStoreAccess: true,
		},
		Lambdas: []LambdaName{
			LambdaGeneratePieriandxObjects,
			LambdaGenerateCase,
			LambdaGenerateSequencerrun,
			LambdaGenerateInformaticsjob,
			LambdaUploadPieriandxSampleDataToS3,
			LambdaGetPayload,
			LambdaGenerateWruEventObjectWithMergedData,
		},
	},
	StateMachineMonitorPdxRuns: {
		Requirements: StepFunctionRequirements{
			NeedsEventPutPermission:   true,
			NeedsEventRulePermissions: true,
		},
		Lambdas: []LambdaName{
			LambdaListActiveWorkflowRuns,
			LambdaGetPayload,
			LambdaGetInformaticsjobAndReportStatus,
			LambdaGenerateOutputDataPayload,
			LambdaGenerateWruEventObjectWithMergedData,
			LambdaComparePayload,
		},
	},
}

// StepFunctions holds the declaration of every state machine.
var StepFunctions = MustRegistry("state machine", stateMachineNames, stepFunctionSpecs)

// Snake returns the snake_case form of the state machine name.
func (n StateMachineName) Snake() string {
	return SnakeName(string(n))
}

// TemplateFile is the ASL template file relative to the templates root.
func (n StateMachineName) TemplateFile() string {
	return n.Snake() + "_sfn_template.asl.json"
}

// PhysicalName is the deployed state machine name.
func (n StateMachineName) PhysicalName() string {
	return PrefixedName(string(n))
}

// SubstitutionInputs carries the deploy-time values substitutions draw on.
type SubstitutionInputs struct {
	EventBusName                 string
	NewWorkflowManagerIsDeployed bool
	SsmParameterPaths            SsmParameterPaths
	// LambdaArn resolves the current version ARN of a function. In a CDK app
	// this returns a token.
	LambdaArn func(LambdaName) string
}

// Substitutions computes the template substitution table of a state machine.
// Keys are the bare placeholder names (e.g. "__draft_status__").
func Substitutions(name StateMachineName, in SubstitutionInputs) (map[string]string, error) {
	spec, err := StepFunctions.Get(name)
	if err != nil {
		return nil, err
	}
	if in.LambdaArn == nil {
		return nil, errors.Newf("state machine %q: no lambda ARN resolver", name)
	}

	subs := map[string]string{}
	for _, fn := range spec.Lambdas {
		if _, err := Lambdas.Get(fn); err != nil {
			return nil, errors.Wrapf(err, "state machine %q", name)
		}
		subs[fn.ArnPlaceholder()] = in.LambdaArn(fn)
	}

	maps.Copy(subs, map[string]string{
		"__draft_status__":                      DraftStatus,
		"__ready_status__":                      ReadyStatus,
		"__succeeded_status__":                  SucceededStatus,
		"__runnable_status__":                   RunnableStatus,
		"__dragen_tso500_ctdna_workflow_name__": DragenTso500CtdnaWorkflowName,
		"__default_payload_version__":           DefaultPayloadVersion,
		"__workflow_name__":                     WorkflowName,
	})

	req := spec.Requirements
	if req.NeedsEventPutPermission {
		maps.Copy(subs, map[string]string{
			"__event_bus_name__":                              in.EventBusName,
			"__workflow_run_state_change_event_detail_type__": WorkflowRunStateChangeDetailType,
			"__workflow_run_update_event_detail_type__":       WorkflowRunUpdateDetailType,
			"__stack_source__":                                EventSource,
			"__ready_event_status__":                          ReadyStatus,
			"__new_workflow_manager_is_deployed__":            strconv.FormatBool(in.NewWorkflowManagerIsDeployed),
		})
	}

	if req.NeedsSsmParameterStoreAccess {
		paths := in.SsmParameterPaths
		maps.Copy(subs, map[string]string{
			"__workflow_name_ssm_parameter_name__":       paths.WorkflowName,
			"__dag_version_ssm_parameter_prefix__":       paths.DagNameByDagVersionPrefix,
			"__dag_version_default_ssm_parameter_path__": paths.DefaultDagVersion,
			"__panel_name_ssm_parameter_prefix__":        paths.PanelIDByPanelNamePrefix,
			"__panel_name_default_ssm_parameter_path__":  paths.DefaultPanelName,
			"__sequencerrun_s3_path_ssm_parameter__":     paths.SequencerrunRoot,
		})
	}

	if req.NeedsEventRulePermissions {
		subs["__scheduler_rule_name__"] = RuleMonitorPdxRunsSchedule.PhysicalName()
	}

	return subs, nil
}
