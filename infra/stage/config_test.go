package stage_test

import (
	"testing"

	"github.com/orcabus/pdxmanager/infra/stage"
)

func TestGetStatefulStackProps_Prod(t *testing.T) {
	props := stage.GetStatefulStackProps(stage.Prod)

	if got := props.SsmParameterValues.PierianDxInstitution; got != "melbourne" {
		t.Errorf("institution = %q, want %q", got, "melbourne")
	}
	if got := props.SsmParameterValues.SequencerrunRoot; got != "s3://pdx-xfer/melbourne/" {
		t.Errorf("sequencerrun root = %q, want %q", got, "s3://pdx-xfer/melbourne/")
	}
	if got := props.SsmParameterValues.PierianDxBaseURL; got != "https://app.pieriandx.com/cgw-api/v2.0.0" {
		t.Errorf("base url = %q", got)
	}
	if got := props.LookupBucketName; got != "pdx-lookup-bucket-472057503814-ap-southeast-2" {
		t.Errorf("lookup bucket = %q", got)
	}
	wantSpecimen := "s3://pdx-lookup-bucket-472057503814-ap-southeast-2/" + stage.SpecimenTypeMapKey
	if got := props.SsmParameterValues.SnomedSpecimenTypeS3Path; got != wantSpecimen {
		t.Errorf("specimen type path = %q, want %q", got, wantSpecimen)
	}
}

func TestGetStatefulStackProps_NonProd(t *testing.T) {
	for _, n := range []stage.Name{stage.Beta, stage.Gamma} {
		props := stage.GetStatefulStackProps(n)
		if got := props.SsmParameterValues.PierianDxInstitution; got != "melbournetest" {
			t.Errorf("%s institution = %q", n, got)
		}
		if got := props.SsmParameterValues.SequencerrunRoot; got != "s3://pdx-cgwxfer-test/melbournetest/" {
			t.Errorf("%s sequencerrun root = %q", n, got)
		}
	}
}

func TestGetStatelessStackProps(t *testing.T) {
	tests := []struct {
		stage     stage.Name
		redcap    string
		newWfmDep bool
	}{
		{stage.Beta, "redcap-apis-dev-lambda-function", true},
		{stage.Gamma, "redcap-apis-stg-lambda-function", true},
		{stage.Prod, "redcap-apis-prod-lambda-function", false},
	}
	for _, tt := range tests {
		t.Run(string(tt.stage), func(t *testing.T) {
			props := stage.GetStatelessStackProps(tt.stage)
			if props.RedcapLambdaName != tt.redcap {
				t.Errorf("redcap lambda = %q, want %q", props.RedcapLambdaName, tt.redcap)
			}
			if props.NewWorkflowManagerIsDeployed != tt.newWfmDep {
				t.Errorf("new workflow manager deployed = %v, want %v", props.NewWorkflowManagerIsDeployed, tt.newWfmDep)
			}
			if props.EventBusName != "OrcaBusMain" {
				t.Errorf("event bus = %q", props.EventBusName)
			}
			if props.SsmParameterPaths != stage.GetSsmParameterPaths() {
				t.Error("stateless stack paths differ from the published paths")
			}
		})
	}
}

func TestProjectInfoMap_PanelsExist(t *testing.T) {
	if len(stage.ProjectInfoMap) != 12 {
		t.Errorf("got %d projects, want 12", len(stage.ProjectInfoMap))
	}
	for project, info := range stage.ProjectInfoMap {
		if _, ok := stage.PanelMap[info.Panel]; !ok {
			t.Errorf("project %q uses unknown panel %q", project, info.Panel)
		}
	}
}
