package cdk

import (
	"path"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsiam"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
	"github.com/cockroachdb/errors"
	"github.com/orcabus/pdxmanager/infra/stage"
	"github.com/orcabus/pdxmanager/pdxcdk/pdxcdkparams"
	"github.com/orcabus/pdxmanager/pdxcdk/pdxcdkpylambda"
	"github.com/orcabus/pdxmanager/pdxcdk/pdxcdkutil"
)

// Lambdas are the built functions keyed by name.
type Lambdas = Built[stage.LambdaName, pdxcdkpylambda.Lambda]

// LambdasProps configures NewLambdas.
type LambdasProps struct {
	Imports           *Imports
	SsmParameterPaths stage.SsmParameterPaths
}

// NewLambdas builds every registered function and wires the capabilities its
// requirements ask for.
func NewLambdas(scope constructs.Construct, props LambdasProps) *Lambdas {
	scope = constructs.NewConstruct(scope, jsii.String("Lambdas"))

	built := newBuilt[stage.LambdaName, pdxcdkpylambda.Lambda]("lambda")
	for _, name := range stage.Lambdas.Names() {
		built.add(name, newLambda(scope, name, props))
	}
	return built
}

func newLambda(scope constructs.Construct, name stage.LambdaName, props LambdasProps) pdxcdkpylambda.Lambda {
	req, err := stage.Lambdas.Get(name)
	if err != nil {
		panic(err)
	}

	fn := pdxcdkpylambda.New(scope, pdxcdkpylambda.Props{
		Name:  jsii.String(string(name)),
		Entry: jsii.String(pdxcdkutil.AppPath(scope, stage.LambdasDir, name.CodeDir())),
		Index: jsii.String(name.Index()),
	})

	imp := props.Imports
	paths := props.SsmParameterPaths

	if req.NeedsOrcabusAPITools {
		withOrcabusAPITools(fn, imp)
	}

	if req.NeedsSsmParametersAccess || req.NeedsPieriandxLayerAccess {
		fn.AddToRolePolicy(pdxcdkparams.GetParameterStatement(paths.RootPrefix))
		fn.AddEnvironment("PROJECT_INFO_SSM_PARAMETER_PREFIX", paths.ProjectInfoByProjectNamePrefix)
		fn.AddEnvironment("PROJECT_INFO_DEFAULT_SSM_PARAMETER_NAME", paths.DefaultProjectInfo)
		fn.Suppress(map[pdxcdkutil.NagRule]string{
			pdxcdkutil.NagWildcardPermission: "Functions read every parameter below the service prefix",
		})
	}

	if req.NeedsPieriandxLayerAccess {
		withPierianDx(fn, imp, paths)
	}

	if req.NeedsRedcapLambdaPermission {
		imp.RedcapFunction.GrantInvoke(fn.CurrentVersion())
		fn.AddEnvironment("REDCAP_LAMBDA_FUNCTION_NAME", *imp.RedcapFunction.FunctionName())
		fn.Suppress(map[pdxcdkutil.NagRule]string{
			pdxcdkutil.NagWildcardPermission: "The REDCap function may be invoked on any version",
		})
	}

	if req.NeedsSchemaRegistryAccess {
		fn.AddToRolePolicy(schemaRegistryStatement(scope, stage.SchemaRegistryName))
		fn.Suppress(map[pdxcdkutil.NagRule]string{
			pdxcdkutil.NagWildcardPermission: "Schemas are read from every version in the registry",
		})
	}

	if name == stage.LambdaValidateDraftDataCompleteSchema {
		fn.AddEnvironment("SSM_REGISTRY_NAME", stage.SsmSchemaRegistryPath)
		fn.AddEnvironment("SSM_SCHEMA_NAME", stage.SchemaCompleteDataDraft.LatestParameterPath())
	}

	return fn
}

// withOrcabusAPITools attaches the platform API tools layer and the
// hostname and token lookups the layer performs.
func withOrcabusAPITools(fn pdxcdkpylambda.Lambda, imp *Imports) {
	fn.AddLayers(imp.OrcabusAPIToolsLayer)
	fn.AddEnvironment("HOSTNAME_SSM_PARAMETER_NAME", stage.HostnameParameterName)
	fn.AddEnvironment("ORCABUS_TOKEN_SECRET_ID", stage.OrcabusTokenSecretID)
	fn.AddToRolePolicy(awsiam.NewPolicyStatement(&awsiam.PolicyStatementProps{
		Actions:   jsii.Strings("ssm:GetParameter"),
		Resources: &[]*string{pdxcdkparams.ParameterArn(stage.HostnameParameterName)},
	}))
	imp.OrcabusTokenSecret.GrantRead(fn.CurrentVersion(), nil)
	fn.Suppress(map[pdxcdkutil.NagRule]string{
		pdxcdkutil.NagWildcardPermission: "Secrets imported by name are granted with a version suffix wildcard",
	})
}

func withPierianDx(fn pdxcdkpylambda.Lambda, imp *Imports, paths stage.SsmParameterPaths) {
	fn.AddLayers(imp.PierianDxToolsLayer)

	imp.AuthTokenFunction.GrantInvoke(fn.CurrentVersion())
	imp.S3CredentialsSecret.GrantRead(fn.CurrentVersion(), nil)
	imp.LookupBucket.GrantRead(fn.CurrentVersion(), nil)

	fn.AddEnvironment("PIERIANDX_USER_EMAIL_SSM_PARAMETER_NAME", paths.PierianDxUserEmail)
	fn.AddEnvironment("PIERIANDX_INSTITUTION_SSM_PARAMETER_NAME", paths.PierianDxInstitution)
	fn.AddEnvironment("PIERIANDX_BASE_URL_SSM_PARAMETER_NAME", paths.PierianDxBaseURL)
	fn.AddEnvironment("PIERIANDX_COLLECT_AUTH_TOKEN_LAMBDA_NAME", *imp.AuthTokenFunction.FunctionName())
	fn.AddEnvironment("PIERIANDX_S3_ACCESS_CREDENTIALS_SECRET_ID", *imp.S3CredentialsSecret.SecretName())
	fn.AddEnvironment("SNOMED_CT_SPECIMEN_TYPE_SSM_PARAMETER_NAME", paths.SnomedSpecimenTypeS3Path)
	fn.AddEnvironment("SNOMED_CT_DISEASE_TREE_S3_PATH_SSM_PARAMETER_NAME", paths.SnomedDiseaseTreeS3Path)

	fn.Suppress(map[pdxcdkutil.NagRule]string{
		pdxcdkutil.NagWildcardPermission: "Reading the lookup bucket grants access to every object in it",
	})
}

// schemaRegistryStatement allows describing a registry and every schema in it.
func schemaRegistryStatement(scope constructs.Construct, registry string) awsiam.PolicyStatement {
	stack := awscdk.Stack_Of(scope)
	return awsiam.NewPolicyStatement(&awsiam.PolicyStatementProps{
		Actions: jsii.Strings("schemas:DescribeRegistry", "schemas:DescribeSchema"),
		Resources: &[]*string{
			stack.FormatArn(&awscdk.ArnComponents{
				Service:      jsii.String("schemas"),
				Resource:     jsii.String("registry"),
				ResourceName: jsii.String(registry),
			}),
			stack.FormatArn(&awscdk.ArnComponents{
				Service:      jsii.String("schemas"),
				Resource:     jsii.String("schema"),
				ResourceName: jsii.String(path.Join(registry, "*")),
			}),
		},
	})
}

// lambdaArn resolves the current version ARN of a built function.
func lambdaArn(lambdas *Lambdas) func(stage.LambdaName) string {
	return func(name stage.LambdaName) string {
		fn, err := lambdas.Get(name)
		if err != nil {
			panic(errors.Wrap(err, "resolving function ARN"))
		}
		return *fn.CurrentVersion().FunctionArn()
	}
}
