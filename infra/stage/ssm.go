package stage

import (
	"fmt"
	"path"
	"slices"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"github.com/orcabus/pdxmanager/pdxcdk/pdxcdkparams"
)

// SsmParameterRoot is the namespace every published parameter lives under.
const SsmParameterRoot = "/orcabus/workflows/" + WorkflowName + "/"

// SsmSchemaRoot holds the event schema pointers of the service.
var SsmSchemaRoot = path.Join(SsmParameterRoot, "schemas")

// SsmParameterValues are the values published by the stateful stack.
type SsmParameterValues struct {
	WorkflowName   string `validate:"required"`
	PayloadVersion string `validate:"required"`

	PierianDxUserEmail   string `validate:"required,email"`
	PierianDxInstitution string `validate:"required"`
	PierianDxBaseURL     string `validate:"required,url"`

	SequencerrunRoot string `validate:"required,startswith=s3://,endswith=/"`

	DagNameByDagVersion map[string]Dag `validate:"required,min=1,dive"`
	DefaultDagVersion   string         `validate:"required"`

	PanelIDByPanelName map[string]string `validate:"required,min=1,dive,required"`
	DefaultPanelName   string            `validate:"required"`

	ProjectInfoByProjectName map[string]ProjectInfo `validate:"required,min=1,dive"`
	DefaultProjectInfo       ProjectInfo

	SnomedSpecimenTypeS3Path string `validate:"required,startswith=s3://"`
	SnomedDiseaseTreeS3Path  string `validate:"required,startswith=s3://"`
}

// SsmParameterPaths are the parameter names consumers read by exact path.
type SsmParameterPaths struct {
	RootPrefix string

	WorkflowName   string
	PayloadVersion string

	PierianDxUserEmail   string
	PierianDxInstitution string
	PierianDxBaseURL     string

	SequencerrunRoot string

	DagNameByDagVersionPrefix string
	DefaultDagVersion         string

	PanelIDByPanelNamePrefix string
	DefaultPanelName         string

	ProjectInfoByProjectNamePrefix string
	DefaultProjectInfo             string

	SnomedSpecimenTypeS3Path string
	SnomedDiseaseTreeS3Path  string
}

// GetSsmParameterPaths returns the parameter paths, identical for all stages.
func GetSsmParameterPaths() SsmParameterPaths {
	p := func(name string) string { return path.Join(SsmParameterRoot, name) }
	return SsmParameterPaths{
		RootPrefix:                     SsmParameterRoot,
		WorkflowName:                   p("workflow-name"),
		PayloadVersion:                 p("payload-version"),
		PierianDxUserEmail:             p("pieriandx-user-email"),
		PierianDxInstitution:           p("pieriandx-institution"),
		PierianDxBaseURL:               p("pieriandx-base-url"),
		SequencerrunRoot:               p("sequencer-root"),
		DagNameByDagVersionPrefix:      p("dag-name-by-dag-version"),
		DefaultDagVersion:              p("default-dag-version"),
		PanelIDByPanelNamePrefix:       p("panel-by-panel-name-map"),
		DefaultPanelName:               p("default-panel-name"),
		ProjectInfoByProjectNamePrefix: p("project-info-by-project-type-map"),
		DefaultProjectInfo:             p("default-project-info"),
		SnomedSpecimenTypeS3Path:       p("s3-snomed-ct-specimen-type-map"),
		SnomedDiseaseTreeS3Path:        p("s3-snomed-ct-disease-tree"),
	}
}

// Validate checks the values, including that every category's default
// selects an existing entry.
func (v SsmParameterValues) Validate() error {
	validate := validator.New(validator.WithRequiredStructEnabled())

	var problems []string
	if err := validate.Struct(v); err != nil {
		var validationErrs validator.ValidationErrors
		if !errors.As(err, &validationErrs) {
			return errors.Wrap(err, "validating parameter values")
		}
		for _, e := range validationErrs {
			problems = append(problems, fmt.Sprintf("%s failed %q (got %v)", e.Namespace(), e.Tag(), e.Value()))
		}
	}

	for _, version := range sortedKeys(v.DagNameByDagVersion) {
		if _, err := semver.StrictNewVersion(version); err != nil {
			problems = append(problems, fmt.Sprintf("dag version %q is not a semantic version", version))
		}
	}
	if _, ok := v.DagNameByDagVersion[v.DefaultDagVersion]; !ok {
		problems = append(problems, fmt.Sprintf("default dag version %q is not a known dag version", v.DefaultDagVersion))
	}
	if _, ok := v.PanelIDByPanelName[v.DefaultPanelName]; !ok {
		problems = append(problems, fmt.Sprintf("default panel %q is not a known panel", v.DefaultPanelName))
	}
	for _, project := range sortedKeys(v.ProjectInfoByProjectName) {
		panel := v.ProjectInfoByProjectName[project].Panel
		if _, ok := v.PanelIDByPanelName[panel]; !ok {
			problems = append(problems, fmt.Sprintf("project %q uses unknown panel %q", project, panel))
		}
	}
	if _, ok := v.PanelIDByPanelName[v.DefaultProjectInfo.Panel]; !ok {
		problems = append(problems, fmt.Sprintf("default project info uses unknown panel %q", v.DefaultProjectInfo.Panel))
	}

	if len(problems) > 0 {
		return errors.Errorf("invalid parameter values:\n  - %s", strings.Join(problems, "\n  - "))
	}
	return nil
}

// ParameterSet computes every parameter the stateful stack publishes. The
// result only depends on its inputs: map entries are visited in key order
// and construct ids are derived from the keys.
func ParameterSet(values SsmParameterValues, paths SsmParameterPaths) (*pdxcdkparams.Set, error) {
	if err := values.Validate(); err != nil {
		return nil, err
	}

	set := pdxcdkparams.NewSet(paths.RootPrefix)

	set.Put("workflow-name", paths.WorkflowName, values.WorkflowName)
	set.Put("payload-version", paths.PayloadVersion, values.PayloadVersion)

	set.Put("user-email", paths.PierianDxUserEmail, values.PierianDxUserEmail)
	set.Put("institution", paths.PierianDxInstitution, values.PierianDxInstitution)
	set.Put("base-url", paths.PierianDxBaseURL, values.PierianDxBaseURL)

	set.Put("sequencerrun-prefix", paths.SequencerrunRoot, values.SequencerrunRoot)

	pdxcdkparams.PutJSONEach(set, "dag-", paths.DagNameByDagVersionPrefix, values.DagNameByDagVersion)
	set.Put("dag-default-version", paths.DefaultDagVersion, values.DefaultDagVersion)

	pdxcdkparams.PutEach(set, "panel-", paths.PanelIDByPanelNamePrefix, values.PanelIDByPanelName)
	set.Put("panel-default-version", paths.DefaultPanelName, values.DefaultPanelName)

	pdxcdkparams.PutJSONEach(set, "project-info-", paths.ProjectInfoByProjectNamePrefix, values.ProjectInfoByProjectName)
	set.PutJSON("default-project-info", paths.DefaultProjectInfo, values.DefaultProjectInfo)

	set.Put("snomed-specimen-type-s3-path", paths.SnomedSpecimenTypeS3Path, values.SnomedSpecimenTypeS3Path)
	set.Put("snomed-ct-disease-tree-s3-path", paths.SnomedDiseaseTreeS3Path, values.SnomedDiseaseTreeS3Path)

	if _, err := set.Parameters(); err != nil {
		return nil, err
	}
	return set, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
