// Package stage holds the static configuration of the PierianDx ctDNA
// service: per-stage values, SSM parameter values and paths, and the typed
// registries that describe which functions, state machines, rules and
// targets make up the stateless stack.
//
// Nothing in this package creates CDK resources. The infra/cdk package turns
// these declarations into constructs; the operator CLI reads them to compare
// and validate deployed state.
package stage

import (
	"fmt"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
)

// Name identifies a deployment environment.
type Name string

const (
	Beta  Name = "BETA"
	Gamma Name = "GAMMA"
	Prod  Name = "PROD"
)

// Region is the single region every stage deploys into.
const Region = "ap-southeast-2"

var names = []Name{Beta, Gamma, Prod}

var accounts = map[Name]string{
	Beta:  "843407916570",
	Gamma: "455634345446",
	Prod:  "472057503814",
}

// Names returns all stages in promotion order.
func Names() []Name {
	return slices.Clone(names)
}

// ParseName parses a stage name case-insensitively.
func ParseName(s string) (Name, error) {
	n := Name(strings.ToUpper(strings.TrimSpace(s)))
	if !slices.Contains(names, n) {
		return "", errors.Newf("unknown stage %q, expected one of %s", s, joinNames(names))
	}
	return n, nil
}

// Account returns the AWS account a stage deploys into.
func (n Name) Account() string {
	acct, ok := accounts[n]
	if !ok {
		panic(fmt.Sprintf("no account for stage %q", n))
	}
	return acct
}

func (n Name) String() string {
	return string(n)
}

func joinNames(ns []Name) string {
	parts := make([]string, 0, len(ns))
	for _, n := range ns {
		parts = append(parts, string(n))
	}
	return strings.Join(parts, ", ")
}
