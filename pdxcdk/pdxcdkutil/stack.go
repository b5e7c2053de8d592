package pdxcdkutil

import (
	"fmt"
	"strings"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
	"github.com/iancoleman/strcase"
)

// stageIdentContextKey stores the stage identifier on each stage stack.
const stageIdentContextKey = "__pdxcdkutil_stage_ident"

// StackName returns the CloudFormation stack name of a stage stack.
// This is the canonical function for generating stack names.
func StackName(platform, service, stageIdent string, mode DeployMode) string {
	return strcase.ToCamel(strings.ToLower(stageIdent)) +
		platform +
		strcase.ToCamel(string(mode)) +
		service + "Stack"
}

// NewStageStack creates the stack of one stage in the stage's account and
// the configured region.
func NewStageStack(scope constructs.Construct, cfg *Config, stageIdent string) awscdk.Stack {
	if strings.ToUpper(stageIdent) != stageIdent {
		panic("stage identifier must be upper-case, got: " + stageIdent)
	}

	stackName := StackName(cfg.Platform, cfg.Service, stageIdent, cfg.DeployMode)
	description := fmt.Sprintf("%s %s (stage: %s, region: %s/%s)",
		cfg.Platform+cfg.Service, cfg.DeployMode, stageIdent, cfg.Region, RegionIdentFor(cfg.Region))

	stack := awscdk.NewStack(scope, jsii.String(stackName), &awscdk.StackProps{
		Env: &awscdk.Environment{
			Account: jsii.String(cfg.Account(stageIdent)),
			Region:  jsii.String(cfg.Region),
		},
		Description: jsii.String(description),
	})

	stack.Node().SetContext(jsii.String(stageIdentContextKey), stageIdent)

	awscdk.Tags_Of(stack).Add(jsii.String("Stage"), jsii.String(stageIdent), nil)
	awscdk.Tags_Of(stack).Add(jsii.String("Service"), jsii.String(cfg.Service), nil)

	return stack
}

// StageIdent returns the stage identifier of the stack enclosing scope, or
// an empty string outside a stage stack.
func StageIdent(scope constructs.Construct) string {
	val := scope.Node().TryGetContext(jsii.String(stageIdentContextKey))
	if val == nil {
		return ""
	}
	ident, ok := val.(string)
	if !ok {
		return ""
	}
	return ident
}
