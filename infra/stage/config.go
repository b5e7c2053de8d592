package stage

import (
	"fmt"
	"path"
)

// Dag describes one version of the analysis pipeline.
type Dag struct {
	Name        string `json:"name"        validate:"required"`
	Description string `json:"description" validate:"required"`
}

// ProjectInfo is the per-project case configuration read by the case
// generating functions.
type ProjectInfo struct {
	Panel                    string `json:"panel"                    validate:"required"`
	SampleType               string `json:"sampleType"               validate:"required,oneof=patientcare validation"`
	IsIdentified             bool   `json:"isIdentified"`
	DefaultSnomedDiseaseCode *int   `json:"defaultSnomedDiseaseCode"`
}

// StatefulStackProps configures the stateful stack of one stage.
type StatefulStackProps struct {
	SsmParameterValues SsmParameterValues
	SsmParameterPaths  SsmParameterPaths
	LookupBucketName   string
}

// StatelessStackProps configures the stateless stack of one stage.
type StatelessStackProps struct {
	EventBusName                 string
	NewWorkflowManagerIsDeployed bool
	SsmParameterPaths            SsmParameterPaths
	RedcapLambdaName             string
	LookupBucketName             string
}

var baseURL = map[Name]string{
	Beta:  "https://app.uat.pieriandx.com/cgw-api/v2.0.0",
	Gamma: "https://app.uat.pieriandx.com/cgw-api/v2.0.0",
	Prod:  "https://app.pieriandx.com/cgw-api/v2.0.0",
}

var institution = map[Name]string{
	Beta:  "melbournetest",
	Gamma: "melbournetest",
	Prod:  "melbourne",
}

var sequencerrunRoot = map[Name]string{
	Beta:  "s3://pdx-cgwxfer-test/" + institution[Beta] + "/",
	Gamma: "s3://pdx-cgwxfer-test/" + institution[Gamma] + "/",
	Prod:  "s3://pdx-xfer/" + institution[Prod] + "/",
}

var redcapLambdaName = map[Name]string{
	Beta:  "redcap-apis-dev-lambda-function",
	Gamma: "redcap-apis-stg-lambda-function",
	Prod:  "redcap-apis-prod-lambda-function",
}

var newWorkflowManagerIsDeployed = map[Name]bool{
	Beta:  true,
	Gamma: true,
	Prod:  false,
}

// PanelMap maps panel names to PierianDx panel identifiers.
var PanelMap = map[string]string{
	"main":     "tso500_DRAGEN_ctDNA_v2_1_Universityofmelbourne",
	"subpanel": "tso500_DRAGEN_ctDNA_v2_1_subpanel_Universityofmelbourne",
}

// DefaultPanelName selects the panel when a project does not name one.
const DefaultPanelName = "main"

// DagMap maps DAG versions to their pipeline descriptions.
var DagMap = map[string]Dag{
	"1.0.4": {
		Name:        "cromwell_tso500_ctdna_workflow_1.0.4",
		Description: "tso500_ctdna_workflow",
	},
}

// DefaultDagVersion selects the DAG when a payload does not name one.
const DefaultDagVersion = "1.0.4"

// ProjectInfoMap holds the case configuration of every known project.
var ProjectInfoMap = map[string]ProjectInfo{
	"PO":           {Panel: "subpanel", SampleType: "patientcare", IsIdentified: true},
	"COUMN":        {Panel: "subpanel", SampleType: "patientcare", IsIdentified: true},
	"CUP":          {Panel: "main", SampleType: "patientcare", IsIdentified: true, DefaultSnomedDiseaseCode: snomed(285645000)},
	"PPGL":         {Panel: "main", SampleType: "patientcare", IsIdentified: true},
	"MESO":         {Panel: "subpanel", SampleType: "patientcare", IsIdentified: true},
	"OCEANiC":      {Panel: "subpanel", SampleType: "patientcare", IsIdentified: false},
	"SOLACE2":      {Panel: "main", SampleType: "patientcare", IsIdentified: false, DefaultSnomedDiseaseCode: snomed(55342001)},
	"IMPARP":       {Panel: "main", SampleType: "patientcare", IsIdentified: false, DefaultSnomedDiseaseCode: snomed(55342001)},
	"Control":      {Panel: "main", SampleType: "validation", IsIdentified: false, DefaultSnomedDiseaseCode: snomed(55342001)},
	"BatchControl": {Panel: "main", SampleType: "validation", IsIdentified: false, DefaultSnomedDiseaseCode: snomed(55342001)},
	"QAP":          {Panel: "subpanel", SampleType: "patientcare", IsIdentified: true},
	"iPredict2":    {Panel: "subpanel", SampleType: "patientcare", IsIdentified: true},
}

// DefaultProjectInfo applies to projects missing from ProjectInfoMap.
var DefaultProjectInfo = ProjectInfo{
	Panel:                    "main",
	SampleType:               "patientcare",
	IsIdentified:             false,
	DefaultSnomedDiseaseCode: snomed(55342001),
}

func snomed(code int) *int {
	return &code
}

// LookupBucketName returns the name of the stage's SNOMED lookup bucket.
func LookupBucketName(n Name) string {
	return fmt.Sprintf("pdx-lookup-bucket-%s-%s", n.Account(), Region)
}

// LookupObjectPath returns the s3:// path of an object in the lookup bucket.
func LookupObjectPath(n Name, key string) string {
	return "s3://" + path.Join(LookupBucketName(n), key)
}

// GetSsmParameterValues returns the parameter values published for a stage.
func GetSsmParameterValues(n Name) SsmParameterValues {
	return SsmParameterValues{
		WorkflowName:             WorkflowName,
		PayloadVersion:           DefaultPayloadVersion,
		PierianDxUserEmail:       UserEmail,
		PierianDxInstitution:     institution[n],
		PierianDxBaseURL:         baseURL[n],
		SequencerrunRoot:         sequencerrunRoot[n],
		DagNameByDagVersion:      DagMap,
		DefaultDagVersion:        DefaultDagVersion,
		PanelIDByPanelName:       PanelMap,
		DefaultPanelName:         DefaultPanelName,
		ProjectInfoByProjectName: ProjectInfoMap,
		DefaultProjectInfo:       DefaultProjectInfo,
		SnomedSpecimenTypeS3Path: LookupObjectPath(n, SpecimenTypeMapKey),
		SnomedDiseaseTreeS3Path:  LookupObjectPath(n, DiseaseTreeKey),
	}
}

// GetStatefulStackProps returns the stateful stack configuration of a stage.
func GetStatefulStackProps(n Name) StatefulStackProps {
	return StatefulStackProps{
		SsmParameterValues: GetSsmParameterValues(n),
		SsmParameterPaths:  GetSsmParameterPaths(),
		LookupBucketName:   LookupBucketName(n),
	}
}

// GetStatelessStackProps returns the stateless stack configuration of a stage.
func GetStatelessStackProps(n Name) StatelessStackProps {
	return StatelessStackProps{
		EventBusName:                 EventBusName,
		NewWorkflowManagerIsDeployed: newWorkflowManagerIsDeployed[n],
		SsmParameterPaths:            GetSsmParameterPaths(),
		RedcapLambdaName:             redcapLambdaName[n],
		LookupBucketName:             LookupBucketName(n),
	}
}
