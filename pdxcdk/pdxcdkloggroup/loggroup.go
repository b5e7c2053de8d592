// Package pdxcdkloggroup provides the CloudWatch Log Group every function of
// the service logs into.
//
// Each log group exports its name as a stack output so operators can find a
// function's logs with a single "aws cloudformation describe-stacks" query.
package pdxcdkloggroup

import (
	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awslogs"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
	"github.com/cockroachdb/errors"
)

// LogGroup provides access to a CloudWatch Log Group with standardized configuration.
type LogGroup interface {
	// LogGroup returns the underlying CDK log group.
	LogGroup() awslogs.ILogGroup
	// OutputKey returns the key of the stack output holding the group name.
	OutputKey() string
}

// Props configures the LogGroup construct.
type Props struct {
	// Purpose describes what this log group is for (e.g., "function getPayload").
	// Used in the CfnOutput description.
	// Required.
	Purpose *string
	// Retention overrides the default retention of one week.
	// Optional.
	Retention awslogs.RetentionDays
}

type logGroup struct {
	lg        awslogs.ILogGroup
	outputKey string
}

// New creates a LogGroup construct below scope.
//
// The log group is created with:
//   - Retention: ONE_WEEK unless Props.Retention is set
//   - RemovalPolicy: DESTROY (log groups are deleted with the stack)
//
// A CfnOutput keyed "{id}LogGroup" holds the log group name.
func New(scope constructs.Construct, id string, props Props) LogGroup {
	if props.Purpose == nil || *props.Purpose == "" {
		panic(errors.Newf("log group %q: purpose is required", id))
	}

	scope = constructs.NewConstruct(scope, jsii.String(id))
	con := &logGroup{outputKey: id + "LogGroup"}

	retention := props.Retention
	if retention == "" {
		retention = awslogs.RetentionDays_ONE_WEEK
	}

	con.lg = awslogs.NewLogGroup(scope, jsii.String("LogGroup"), &awslogs.LogGroupProps{
		Retention:     retention,
		RemovalPolicy: awscdk.RemovalPolicy_DESTROY,
	})

	awscdk.NewCfnOutput(scope, jsii.String("LogGroupOutput"), &awscdk.CfnOutputProps{
		Key:         jsii.String(con.outputKey),
		Description: jsii.String("CloudWatch Log Group for " + *props.Purpose),
		Value:       con.lg.LogGroupName(),
	})

	return con
}

func (l *logGroup) LogGroup() awslogs.ILogGroup {
	return l.lg
}

func (l *logGroup) OutputKey() string {
	return l.outputKey
}
