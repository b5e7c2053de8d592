package pdxcdkutil

import (
	"slices"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/jsii-runtime-go"
	"github.com/cdklabs/cdk-nag-go/cdknag/v2"
)

// NagRule is an AwsSolutions rule id without the pack prefix, e.g. "IAM5".
type NagRule string

// Rules suppressed by the service's constructs.
const (
	NagLambdaRuntime      NagRule = "L1"
	NagManagedPolicy      NagRule = "IAM4"
	NagWildcardPermission NagRule = "IAM5"
	NagSfnLogging         NagRule = "SF1"
	NagSfnXRay            NagRule = "SF2"
	NagS3AccessLogs       NagRule = "S1"
)

// ID returns the rule id as reported by cdk-nag.
func (r NagRule) ID() string {
	return "AwsSolutions-" + string(r)
}

// Suppress records suppressions on a construct and its children.
func Suppress(construct any, reasons map[NagRule]string) {
	cdknag.NagSuppressions_AddResourceSuppressions(construct, nagSuppressions(reasons), jsii.Bool(true))
}

// EnableNag attaches the AwsSolutions checks to a stack. Suppressions live on
// the constructs that need them.
func EnableNag(stack awscdk.Stack) {
	awscdk.Aspects_Of(stack).Add(cdknag.NewAwsSolutionsChecks(&cdknag.NagPackProps{
		Verbose: jsii.Bool(true),
	}), nil)
}

func nagSuppressions(reasons map[NagRule]string) *[]*cdknag.NagPackSuppression {
	out := make([]*cdknag.NagPackSuppression, 0, len(reasons))
	for _, rule := range sortedRules(reasons) {
		out = append(out, &cdknag.NagPackSuppression{
			Id:     jsii.String(rule.ID()),
			Reason: jsii.String(reasons[rule]),
		})
	}
	return &out
}

func sortedRules(reasons map[NagRule]string) []NagRule {
	rules := make([]NagRule, 0, len(reasons))
	for r := range reasons {
		rules = append(rules, r)
	}
	slices.Sort(rules)
	return rules
}
