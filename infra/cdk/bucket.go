package cdk

import (
	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awss3"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
	"github.com/orcabus/pdxmanager/pdxcdk/pdxcdkutil"
)

// NewLookupBucket creates the bucket holding the SNOMED CT lookup objects.
// The bucket outlives the stack, is never public and only accepts TLS
// requests.
func NewLookupBucket(scope constructs.Construct, bucketName string) awss3.Bucket {
	bucket := awss3.NewBucket(scope, jsii.String("LookupBucket"), &awss3.BucketProps{
		BucketName:        jsii.String(bucketName),
		RemovalPolicy:     awscdk.RemovalPolicy_RETAIN_ON_UPDATE_OR_DELETE,
		EnforceSSL:        jsii.Bool(true),
		BlockPublicAccess: awss3.BlockPublicAccess_BLOCK_ALL(),
	})

	pdxcdkutil.Suppress(bucket, map[pdxcdkutil.NagRule]string{
		pdxcdkutil.NagS3AccessLogs: "We dont need server access logs for this bucket",
	})

	return bucket
}
