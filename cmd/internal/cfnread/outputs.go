// Package cfnread reads CloudFormation stack outputs through the AWS CLI.
package cfnread

import (
	"context"
	"encoding/json"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/orcabus/pdxmanager/cmd/internal/cmdexec"
	"go.uber.org/zap"
)

// LogGroupSuffix ends the output key of every function log group.
const LogGroupSuffix = "LogGroup"

type describeStacksResponse struct {
	Stacks []struct {
		StackName string `json:"StackName"`
		Outputs   []struct {
			OutputKey   string `json:"OutputKey"`
			OutputValue string `json:"OutputValue"`
		} `json:"Outputs"`
	} `json:"Stacks"`
}

// Output is a single stack output.
type Output struct {
	Key   string `json:"key"   yaml:"key"`
	Value string `json:"value" yaml:"value"`
}

// ParseOutputs decodes "aws cloudformation describe-stacks --output json".
func ParseOutputs(stackName string, data []byte) ([]Output, error) {
	var resp describeStacksResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, errors.Wrapf(err, "parsing stack outputs for %s", stackName)
	}
	if len(resp.Stacks) == 0 {
		return nil, errors.Newf("stack %s not found", stackName)
	}

	outputs := make([]Output, 0, len(resp.Stacks[0].Outputs))
	for _, o := range resp.Stacks[0].Outputs {
		outputs = append(outputs, Output{Key: o.OutputKey, Value: o.OutputValue})
	}
	slices.SortFunc(outputs, func(a, b Output) int { return strings.Compare(a.Key, b.Key) })
	return outputs, nil
}

// StackOutputs describes a deployed stack and returns its outputs sorted by
// key.
func StackOutputs(ctx context.Context, logger *zap.Logger, region, stackName string) ([]Output, error) {
	out, err := cmdexec.Command("/", "aws", "cloudformation", "describe-stacks",
		"--no-cli-pager",
		"--region", region,
		"--stack-name", stackName,
		"--output", "json",
	).Output(ctx, logger)
	if err != nil {
		return nil, errors.Wrapf(err, "describing stack %s in %s", stackName, region)
	}
	return ParseOutputs(stackName, []byte(out))
}

// LogGroups keeps the outputs that name function log groups.
func LogGroups(outputs []Output) []Output {
	var groups []Output
	for _, o := range outputs {
		if strings.HasSuffix(o.Key, LogGroupSuffix) {
			groups = append(groups, o)
		}
	}
	return groups
}
