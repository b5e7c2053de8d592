package pdxcdkpylambda

import (
	"path"

	"github.com/aws/aws-cdk-go/awscdk/v2/awslambda"
	"github.com/aws/aws-cdk-go/awscdklambdapythonalpha/v2"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
	"github.com/cockroachdb/errors"
)

// LayerProps configures a Python layer.
type LayerProps struct {
	// Entry is the directory of an installable Python package.
	// Required.
	Entry *string
	// Description of the layer version.
	Description *string
	// PruneDirs are paths below the bundle removed after installation,
	// e.g. "pandas/tests".
	PruneDirs []string
}

// pipInstallHooks installs the layer's package into the bundle and prunes
// directories not needed at runtime.
type pipInstallHooks struct {
	pruneDirs []string
}

func (h *pipInstallHooks) BeforeBundling(_, _ *string) *[]*string {
	return &[]*string{}
}

func (h *pipInstallHooks) AfterBundling(inputDir, outputDir *string) *[]*string {
	cmds := []*string{jsii.Sprintf("pip install %s --target %s", *inputDir, *outputDir)}
	for _, dir := range h.pruneDirs {
		cmds = append(cmds, jsii.Sprintf("rm -rf %s", path.Join(*outputDir, dir)))
	}
	return &cmds
}

// NewLayer creates a Python layer for the function runtime and architecture.
func NewLayer(scope constructs.Construct, id string, props LayerProps) awscdklambdapythonalpha.PythonLayerVersion {
	if props.Entry == nil || *props.Entry == "" {
		panic(errors.Newf("layer %q: entry is required", id))
	}

	return awscdklambdapythonalpha.NewPythonLayerVersion(scope, jsii.String(id),
		&awscdklambdapythonalpha.PythonLayerVersionProps{
			Entry:                   props.Entry,
			Description:             props.Description,
			CompatibleRuntimes:      &[]awslambda.Runtime{Runtime()},
			CompatibleArchitectures: &[]awslambda.Architecture{Architecture()},
			Bundling: &awscdklambdapythonalpha.BundlingOptions{
				CommandHooks: &pipInstallHooks{pruneDirs: props.PruneDirs},
			},
		})
}

// LayerFromParameter imports a layer whose version ARN is published in SSM.
// The ARN is resolved at deploy time.
func LayerFromParameter(scope constructs.Construct, id string, arn *string) awslambda.ILayerVersion {
	return awslambda.LayerVersion_FromLayerVersionArn(scope, jsii.String(id), arn)
}
