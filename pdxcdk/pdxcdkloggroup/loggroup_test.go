//nolint:paralleltest // jsii runtime doesn't support parallel tests
package pdxcdkloggroup_test

import (
	"testing"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/assertions"
	"github.com/aws/aws-cdk-go/awscdk/v2/awslogs"
	"github.com/aws/jsii-runtime-go"
	"github.com/orcabus/pdxmanager/pdxcdk/pdxcdkloggroup"
)

func TestNew_CreatesLogGroupAndOutput(t *testing.T) {
	defer jsii.Close()

	app := awscdk.NewApp(nil)
	stack := awscdk.NewStack(app, jsii.String("TestStack"), nil)

	lg := pdxcdkloggroup.New(stack, "GetPayloadLogs", pdxcdkloggroup.Props{
		Purpose: jsii.String("function getPayload"),
	})
	if lg.LogGroup() == nil {
		t.Fatal("LogGroup() should not be nil")
	}
	if lg.OutputKey() != "GetPayloadLogsLogGroup" {
		t.Errorf("OutputKey() = %q", lg.OutputKey())
	}

	template := assertions.Template_FromStack(stack, nil)
	template.HasResourceProperties(jsii.String("AWS::Logs::LogGroup"), map[string]any{
		"RetentionInDays": 7,
	})
	template.HasOutput(jsii.String("GetPayloadLogsLogGroup"), map[string]any{
		"Description": "CloudWatch Log Group for function getPayload",
	})
}

func TestNew_CustomRetention(t *testing.T) {
	defer jsii.Close()

	app := awscdk.NewApp(nil)
	stack := awscdk.NewStack(app, jsii.String("TestStack"), nil)

	pdxcdkloggroup.New(stack, "Long", pdxcdkloggroup.Props{
		Purpose:   jsii.String("long lived"),
		Retention: awslogs.RetentionDays_ONE_MONTH,
	})

	template := assertions.Template_FromStack(stack, nil)
	template.HasResourceProperties(jsii.String("AWS::Logs::LogGroup"), map[string]any{
		"RetentionInDays": 30,
	})
}

func TestNew_RequiresPurpose(t *testing.T) {
	defer jsii.Close()

	app := awscdk.NewApp(nil)
	stack := awscdk.NewStack(app, jsii.String("TestStack"), nil)

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic without a purpose")
		}
	}()
	pdxcdkloggroup.New(stack, "NoPurpose", pdxcdkloggroup.Props{})
}
