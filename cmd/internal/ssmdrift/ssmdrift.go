// Package ssmdrift compares the parameters a stage is expected to publish
// with what Parameter Store currently holds.
package ssmdrift

import (
	"context"
	"slices"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/cockroachdb/errors"
	"github.com/orcabus/pdxmanager/pdxcdk/pdxcdkparams"
)

// Client is the subset of the SSM API used to read parameters.
type Client interface {
	ssm.GetParametersByPathAPIClient
}

// Change is a parameter whose live value differs from the expected one.
type Change struct {
	Name     string `json:"name"     yaml:"name"`
	Expected string `json:"expected" yaml:"expected"`
	Actual   string `json:"actual"   yaml:"actual"`
}

// Report lists the differences between expected and live parameters. All
// lists are sorted by name.
type Report struct {
	Missing []string `json:"missing" yaml:"missing"`
	Changed []Change `json:"changed" yaml:"changed"`
	Extra   []string `json:"extra"   yaml:"extra"`
}

// InSync reports whether live state matches the expected set.
func (r Report) InSync() bool {
	return len(r.Missing) == 0 && len(r.Changed) == 0 && len(r.Extra) == 0
}

// Fetch reads every parameter below root, recursively.
func Fetch(ctx context.Context, client Client, root string) (map[string]string, error) {
	paginator := ssm.NewGetParametersByPathPaginator(client, &ssm.GetParametersByPathInput{
		Path:           aws.String(root),
		Recursive:      aws.Bool(true),
		WithDecryption: aws.Bool(false),
	})

	live := map[string]string{}
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, errors.Wrapf(err, "listing parameters under %s", root)
		}
		for _, p := range page.Parameters {
			live[aws.ToString(p.Name)] = aws.ToString(p.Value)
		}
	}
	return live, nil
}

// Compare diffs expected against live. Parameters named in presenceOnly hold
// values assigned at deploy time and are only checked for existence.
func Compare(expected, live map[string]string, presenceOnly ...string) Report {
	var report Report
	for _, name := range sortedNames(expected) {
		actual, ok := live[name]
		switch {
		case !ok:
			report.Missing = append(report.Missing, name)
		case slices.Contains(presenceOnly, name):
		case actual != expected[name]:
			report.Changed = append(report.Changed, Change{Name: name, Expected: expected[name], Actual: actual})
		}
	}
	for _, name := range sortedNames(live) {
		if _, ok := expected[name]; !ok {
			report.Extra = append(report.Extra, name)
		}
	}
	return report
}

// Check fetches the live parameters below the set's root and compares them
// with the set.
func Check(ctx context.Context, client Client, set *pdxcdkparams.Set, presenceOnly ...string) (Report, error) {
	if _, err := set.Parameters(); err != nil {
		return Report{}, err
	}
	live, err := Fetch(ctx, client, set.Root())
	if err != nil {
		return Report{}, err
	}
	return Compare(set.Values(), live, presenceOnly...), nil
}

func sortedNames(m map[string]string) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
