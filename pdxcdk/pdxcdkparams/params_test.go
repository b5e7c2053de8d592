//nolint:paralleltest // jsii runtime doesn't support parallel tests
package pdxcdkparams_test

import (
	"testing"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/assertions"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsiam"
	"github.com/aws/jsii-runtime-go"
	"github.com/orcabus/pdxmanager/pdxcdk/pdxcdkparams"
)

func TestPublish(t *testing.T) {
	defer jsii.Close()

	app := awscdk.NewApp(nil)
	stack := awscdk.NewStack(app, jsii.String("TestStack"), nil)

	set := pdxcdkparams.NewSet("/svc/")
	set.Put("name", "/svc/name", "pdx")
	pdxcdkparams.PutEach(set, "panel-", "/svc/panel", map[string]string{"main": "p1", "sub": "p2"})

	params := pdxcdkparams.Publish(stack, set)
	if len(params) != 3 {
		t.Fatalf("got %d parameters, want 3", len(params))
	}

	template := assertions.Template_FromStack(stack, nil)
	template.ResourceCountIs(jsii.String("AWS::SSM::Parameter"), jsii.Number(3))
	template.HasResourceProperties(jsii.String("AWS::SSM::Parameter"), map[string]any{
		"Name":  "/svc/panel/sub",
		"Type":  "String",
		"Value": "p2",
	})
}

func TestPublish_PanicsOnInvalidSet(t *testing.T) {
	defer jsii.Close()

	app := awscdk.NewApp(nil)
	stack := awscdk.NewStack(app, jsii.String("TestStack"), nil)

	set := pdxcdkparams.NewSet("/svc/")
	set.Put("empty", "/svc/empty", "")

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for an invalid set")
		}
	}()
	pdxcdkparams.Publish(stack, set)
}

func TestGetParameterStatement(t *testing.T) {
	defer jsii.Close()

	app := awscdk.NewApp(nil)
	stack := awscdk.NewStack(app, jsii.String("TestStack"), nil)

	role := awsiam.NewRole(stack, jsii.String("Role"), &awsiam.RoleProps{
		AssumedBy: awsiam.NewServicePrincipal(jsii.String("lambda.amazonaws.com"), nil),
	})
	role.AddToPolicy(pdxcdkparams.GetParameterStatement("/svc/"))

	template := assertions.Template_FromStack(stack, nil)
	template.HasResourceProperties(jsii.String("AWS::IAM::Policy"), map[string]any{
		"PolicyDocument": map[string]any{
			"Statement": assertions.Match_ArrayWith(&[]any{
				assertions.Match_ObjectLike(&map[string]any{
					"Action": "ssm:GetParameter",
					"Effect": "Allow",
				}),
			}),
		},
	})
}
