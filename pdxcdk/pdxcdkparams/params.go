// Package pdxcdkparams publishes configuration values to AWS Systems Manager
// Parameter Store and grants read access to them.
//
// Values are first collected into a [Set], which is plain data and can be
// compared or printed without a CDK app. [Publish] then materializes the set
// as one StringParameter per entry.
package pdxcdkparams

import (
	"path"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsiam"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsssm"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
)

// Publish creates one StringParameter per entry of the set, using the
// entry's ID as construct id. It panics if the set is invalid.
func Publish(scope constructs.Construct, set *Set) []awsssm.StringParameter {
	params, err := set.Parameters()
	if err != nil {
		panic(err)
	}

	out := make([]awsssm.StringParameter, 0, len(params))
	for _, p := range params {
		out = append(out, awsssm.NewStringParameter(scope, jsii.String(p.ID),
			&awsssm.StringParameterProps{
				ParameterName: jsii.String(p.Name),
				StringValue:   jsii.String(p.Value),
			}))
	}
	return out
}

// LookupLocal resolves a parameter of the deploying account and region at
// deploy time.
func LookupLocal(scope constructs.Construct, name string) *string {
	return awsssm.StringParameter_ValueForStringParameter(scope, jsii.String(name), nil)
}

// ParameterArn returns the ARN of a parameter, or of every parameter below a
// prefix when name ends with "/*".
func ParameterArn(name string) *string {
	return jsii.Sprintf("arn:aws:ssm:%s:%s:parameter%s",
		*awscdk.Aws_REGION(), *awscdk.Aws_ACCOUNT_ID(), name)
}

// GetParameterStatement allows ssm:GetParameter on every parameter below prefix.
func GetParameterStatement(prefix string) awsiam.PolicyStatement {
	return awsiam.NewPolicyStatement(&awsiam.PolicyStatementProps{
		Actions:   jsii.Strings("ssm:GetParameter"),
		Resources: &[]*string{ParameterArn(path.Join(prefix, "*"))},
	})
}
