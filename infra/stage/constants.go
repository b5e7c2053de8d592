package stage

import "time"

// Workflow.
const (
	WorkflowName          = "pieriandx-tso500-ctdna"
	DefaultPayloadVersion = "2025.09.25"
)

// Events.
const (
	EventSource                      = "orcabus.pieriandxtso500ctdna"
	WorkflowManagerEventSource       = "orcabus.workflowmanager"
	DragenTso500CtdnaWorkflowName    = "dragen-tso500-ctdna"
	WorkflowRunStateChangeDetailType = "WorkflowRunStateChange"
	WorkflowRunUpdateDetailType      = "WorkflowRunUpdate"
	EventBusName                     = "OrcaBusMain"
	SchemaRegistryName               = "orcabus.data"
	CompleteDataDraftSchemaName      = "completeDataDraft"
	MonitorRunsFrequency             = 15 * time.Minute
)

// Workflow run statuses.
const (
	DraftStatus     = "DRAFT"
	ReadyStatus     = "READY"
	SucceededStatus = "SUCCEEDED"
	RunnableStatus  = "RUNNABLE"
)

// ResourcePrefix prefixes every named resource of the service.
const ResourcePrefix = "orca-pdx"

// PierianDx.
const (
	UserEmail                         = "services@umccr.org"
	PierianDxS3CredentialsSecretName  = "PierianDx/S3Credentials" //nolint:gosec // secret name, not a secret
	PierianDxCollectAuthTokenFunction = "collectPierianDxAccessToken"
)

// OrcaBus API tools, shared by functions that talk to the platform APIs.
const (
	OrcabusAPIToolsLayerArnParameterName = "/orcabus/layers/orcabus-api-tools-layer-arn"
	HostnameParameterName                = "/hosted_zone/umccr/name"
	OrcabusTokenSecretID                 = "orcabus/token-service-jwt" //nolint:gosec // secret name, not a secret
)

// SNOMED CT lookup objects inside the lookup bucket.
const (
	SpecimenTypeMapKey = "snomed/tso500_ctdna_snomed_ct_specimen_type_map.json.gz"
	DiseaseTreeKey     = "snomed/tso500_ctdna_snomed_ct_disease_tree.json.gz"
)

// Directories below the application root.
const (
	LambdasDir            = "lambdas"
	StepFunctionsDir      = "step-functions-templates"
	LayersDir             = "layers"
	PierianDxToolsLayerID = "pieriandx_tools_layer"
	EventSchemasDir       = "event-schemas"
)

// PrefixedName returns the physical name of a service resource.
func PrefixedName(label string) string {
	return ResourcePrefix + "-" + label
}
