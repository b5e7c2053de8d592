package cdk

import (
	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
	"github.com/cockroachdb/errors"
	"github.com/orcabus/pdxmanager/infra/stage"
	"github.com/orcabus/pdxmanager/pdxcdk/pdxcdkparams"
)

// NewStateful creates the resources of a stage that must survive redeploys:
// the event schemas, the published SSM parameters and the lookup bucket.
func NewStateful(stack awscdk.Stack, stageIdent string) {
	name, err := stage.ParseName(stageIdent)
	if err != nil {
		panic(err)
	}
	props := stage.GetStatefulStackProps(name)

	set, err := stage.ParameterSet(props.SsmParameterValues, props.SsmParameterPaths)
	if err != nil {
		panic(errors.Wrapf(err, "stage %s", name))
	}

	schemas := NewEventSchemas(stack)
	stage.AddSchemaParameters(set, func(n stage.SchemaName) string {
		return *schemas.MustGet(n).AttrSchemaVersion()
	})
	pdxcdkparams.Publish(constructs.NewConstruct(stack, jsii.String("SsmParameters")), set)

	NewLookupBucket(stack, props.LookupBucketName)
}
