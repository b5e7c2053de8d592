package stage

import (
	"strings"
	"unicode"
)

// LambdaName identifies one of the service's Python functions.
type LambdaName string

const (
	// Shared pre-ready.
	LambdaComparePayload                       LambdaName = "comparePayload"
	LambdaGetPayload                           LambdaName = "getPayload"
	LambdaGetWorkflowRunObject                 LambdaName = "getWorkflowRunObject"
	LambdaGenerateWruEventObjectWithMergedData LambdaName = "generateWruEventObjectWithMergedData"
	LambdaFindLatestWorkflow                   LambdaName = "findLatestWorkflow"
	LambdaGetDataFilesFromTso500WorkflowRun    LambdaName = "getDataFilesFromTso500WorkflowRun"

	// Draft to ready, generic.
	LambdaGetLibraries               LambdaName = "getLibraries"
	LambdaGetFastqRgidsFromLibraryID LambdaName = "getFastqRgidsFromLibraryId"
	LambdaGetMetadataTags            LambdaName = "getMetadataTags"
	LambdaGetFastqIDListFromRgidList LambdaName = "getFastqIdListFromRgidList"

	// Draft to ready, PierianDx specific.
	LambdaGetRedcapTagsForLibraryID       LambdaName = "getRedcapTagsForLibraryId"
	LambdaGenerateCaseMetadata            LambdaName = "generateCaseMetadata"
	LambdaGetCaseMetadataFromRedcap       LambdaName = "getCaseMetadataFromRedcap"
	LambdaValidateDraftDataCompleteSchema LambdaName = "validateDraftDataCompleteSchema"

	// Ready to PierianDx submission.
	LambdaGeneratePieriandxObjects      LambdaName = "generatePieriandxObjects"
	LambdaGenerateCase                  LambdaName = "generateCase"
	LambdaGenerateSequencerrun          LambdaName = "generateSequencerrun"
	LambdaGenerateInformaticsjob        LambdaName = "generateInformaticsjob"
	LambdaUploadPieriandxSampleDataToS3 LambdaName = "uploadPieriandxSampleDataToS3"

	// Monitoring.
	LambdaGenerateOutputDataPayload        LambdaName = "generateOutputDataPayload"
	LambdaListActiveWorkflowRuns           LambdaName = "listActiveWorkflowRuns"
	LambdaGetInformaticsjobAndReportStatus LambdaName = "getInformaticsjobAndReportStatus"
)

// LambdaRequirements are the capabilities a function needs. Each flag maps
// to a fixed set of policies and environment variables.
type LambdaRequirements struct {
	NeedsOrcabusAPITools        bool
	NeedsPieriandxLayerAccess   bool
	NeedsRedcapLambdaPermission bool
	NeedsSsmParametersAccess    bool
	NeedsSchemaRegistryAccess   bool
}

var lambdaNames = []LambdaName{
	LambdaComparePayload,
	LambdaGetPayload,
	LambdaGetWorkflowRunObject,
	LambdaGenerateWruEventObjectWithMergedData,
	LambdaFindLatestWorkflow,
	LambdaGetDataFilesFromTso500WorkflowRun,
	LambdaGetLibraries,
	LambdaGetFastqRgidsFromLibraryID,
	LambdaGetMetadataTags,
	LambdaGetFastqIDListFromRgidList,
	LambdaGetRedcapTagsForLibraryID,
	LambdaGenerateCaseMetadata,
	LambdaGetCaseMetadataFromRedcap,
	LambdaValidateDraftDataCompleteSchema,
	LambdaGeneratePieriandxObjects,
	LambdaGenerateCase,
	LambdaGenerateSequencerrun,
	LambdaGenerateInformaticsjob,
	LambdaUploadPieriandxSampleDataToS3,
	LambdaGenerateOutputDataPayload,
	LambdaListActiveWorkflowRuns,
	LambdaGetInformaticsjobAndReportStatus,
}

var (
	apiTools         = LambdaRequirements{NeedsOrcabusAPITools: true}
	apiToolsAndLayer = LambdaRequirements{NeedsOrcabusAPITools: true, NeedsPieriandxLayerAccess: true}
)

var lambdaRequirements = map[LambdaName]LambdaRequirements{
	LambdaComparePayload:                       {},
	LambdaGetPayload:                           apiTools,
	LambdaGetWorkflowRunObject:                 apiTools,
	LambdaGenerateWruEventObjectWithMergedData: apiTools,
	LambdaFindLatestWorkflow:                   apiTools,
	LambdaGetDataFilesFromTso500WorkflowRun:    apiTools,
	LambdaGetLibraries:                         apiTools,
	LambdaGetFastqRgidsFromLibraryID:           apiTools,
	LambdaGetMetadataTags:                      apiTools,
	LambdaGetFastqIDListFromRgidList:           apiTools,
	LambdaGetRedcapTagsForLibraryID:            {NeedsOrcabusAPITools: true, NeedsSsmParametersAccess: true},
	LambdaGenerateCaseMetadata:                 apiToolsAndLayer,
	LambdaGetCaseMetadataFromRedcap:            {NeedsRedcapLambdaPermission: true},
	LambdaValidateDraftDataCompleteSchema:      {NeedsSchemaRegistryAccess: true, NeedsSsmParametersAccess: true},
	LambdaGeneratePieriandxObjects:             apiToolsAndLayer,
	LambdaGenerateCase:                         apiToolsAndLayer,
	LambdaGenerateSequencerrun:                 apiToolsAndLayer,
	LambdaGenerateInformaticsjob:               apiToolsAndLayer,
	LambdaUploadPieriandxSampleDataToS3:        apiToolsAndLayer,
	LambdaGenerateOutputDataPayload:            apiToolsAndLayer,
	LambdaListActiveWorkflowRuns:               apiTools,
	LambdaGetInformaticsjobAndReportStatus:     apiToolsAndLayer,
}

// Lambdas holds the requirements of every function.
var Lambdas = MustRegistry("lambda", lambdaNames, lambdaRequirements)

// SnakeName converts a camelCase name to the snake_case used by the code and
// template directories. Digits stay attached to the preceding word, so
// "getDataFilesFromTso500WorkflowRun" becomes
// "get_data_files_from_tso500_workflow_run".
func SnakeName(name string) string {
	var b strings.Builder
	b.Grow(len(name) + 8)
	for i, r := range name {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Snake returns the snake_case form of the function name.
func (n LambdaName) Snake() string {
	return SnakeName(string(n))
}

// CodeDir is the function's code directory relative to the lambdas root.
func (n LambdaName) CodeDir() string {
	return n.Snake() + "_py"
}

// Index is the function's handler module file.
func (n LambdaName) Index() string {
	return n.Snake() + ".py"
}

// ArnPlaceholder is the template substitution key of the function's ARN.
func (n LambdaName) ArnPlaceholder() string {
	return "__" + n.Snake() + "_lambda_function_arn__"
}
