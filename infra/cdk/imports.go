package cdk

import (
	"github.com/aws/aws-cdk-go/awscdk/v2/awsevents"
	"github.com/aws/aws-cdk-go/awscdk/v2/awslambda"
	"github.com/aws/aws-cdk-go/awscdk/v2/awss3"
	"github.com/aws/aws-cdk-go/awscdk/v2/awssecretsmanager"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
	"github.com/orcabus/pdxmanager/infra/stage"
	"github.com/orcabus/pdxmanager/pdxcdk/pdxcdkparams"
	"github.com/orcabus/pdxmanager/pdxcdk/pdxcdkpylambda"
	"github.com/orcabus/pdxmanager/pdxcdk/pdxcdkutil"
)

// Imports are the resources the stateless stack uses but does not own.
type Imports struct {
	EventBus             awsevents.IEventBus
	AuthTokenFunction    awslambda.IFunction
	RedcapFunction       awslambda.IFunction
	S3CredentialsSecret  awssecretsmanager.ISecret
	OrcabusTokenSecret   awssecretsmanager.ISecret
	LookupBucket         awss3.IBucket
	OrcabusAPIToolsLayer awslambda.ILayerVersion
	PierianDxToolsLayer  awslambda.ILayerVersion
}

// NewImports references the shared platform resources by name and builds the
// PierianDx tools layer from the application tree.
func NewImports(scope constructs.Construct, props stage.StatelessStackProps) *Imports {
	scope = constructs.NewConstruct(scope, jsii.String("Imports"))

	return &Imports{
		EventBus: awsevents.EventBus_FromEventBusName(scope,
			jsii.String("EventBus"), jsii.String(props.EventBusName)),
		AuthTokenFunction: awslambda.Function_FromFunctionName(scope,
			jsii.String("PierianDxAuthLambdaFunction"), jsii.String(stage.PierianDxCollectAuthTokenFunction)),
		RedcapFunction: awslambda.Function_FromFunctionName(scope,
			jsii.String("RedcapLambdaFunction"), jsii.String(props.RedcapLambdaName)),
		S3CredentialsSecret: awssecretsmanager.Secret_FromSecretNameV2(scope,
			jsii.String("PierianDxS3CredentialsSecret"), jsii.String(stage.PierianDxS3CredentialsSecretName)),
		OrcabusTokenSecret: awssecretsmanager.Secret_FromSecretNameV2(scope,
			jsii.String("OrcabusTokenSecret"), jsii.String(stage.OrcabusTokenSecretID)),
		LookupBucket: awss3.Bucket_FromBucketName(scope,
			jsii.String("S3LookUpBucket"), jsii.String(props.LookupBucketName)),
		OrcabusAPIToolsLayer: pdxcdkpylambda.LayerFromParameter(scope, "OrcabusApiToolsLayer",
			pdxcdkparams.LookupLocal(scope, stage.OrcabusAPIToolsLayerArnParameterName)),
		PierianDxToolsLayer: pdxcdkpylambda.NewLayer(scope, "PierianDxToolsLayer", pdxcdkpylambda.LayerProps{
			Entry:       jsii.String(pdxcdkutil.AppPath(scope, stage.LayersDir, stage.PierianDxToolsLayerID)),
			Description: jsii.String("PierianDx tools shared by the case and run functions"),
			PruneDirs:   []string{"pandas/tests"},
		}),
	}
}
