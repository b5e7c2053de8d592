// Package tmplcheck validates the state machine templates under an
// application root against the substitutions each state machine receives at
// synth time.
package tmplcheck

import (
	"path/filepath"
	"slices"

	"github.com/cockroachdb/errors"
	"github.com/orcabus/pdxmanager/cmd/internal/aslvalidate"
	"github.com/orcabus/pdxmanager/infra/stage"
	"github.com/orcabus/pdxmanager/pdxcdk/pdxcdksfn"
)

// placeholderArn stands in for function ARNs, which are tokens at synth time.
const placeholderArn = "arn:aws:lambda:" + stage.Region + ":000000000000:function:placeholder"

// Result is the outcome of checking one template.
type Result struct {
	StateMachine stage.StateMachineName `json:"stateMachine"`
	Path         string                 `json:"path"`
	Placeholders int                    `json:"placeholders"`
	// Unused lists substitution keys the template never references.
	Unused []string `json:"unused,omitempty"`
	Err    error    `json:"-"`
}

// OK reports whether the template passed.
func (r Result) OK() bool {
	return r.Err == nil
}

// Check validates the template of every registered state machine.
func Check(appRoot string, newWorkflowManagerIsDeployed bool) []Result {
	names := stage.StepFunctions.Names()
	results := make([]Result, 0, len(names))
	for _, name := range names {
		results = append(results, CheckOne(appRoot, name, newWorkflowManagerIsDeployed))
	}
	return results
}

// CheckOne loads a state machine's template, checks its placeholders and
// validates the structure of the rendered definition.
func CheckOne(appRoot string, name stage.StateMachineName, newWorkflowManagerIsDeployed bool) Result {
	res := Result{
		StateMachine: name,
		Path:         filepath.Join(appRoot, stage.StepFunctionsDir, name.TemplateFile()),
	}

	subs, err := stage.Substitutions(name, stage.SubstitutionInputs{
		EventBusName:                 stage.EventBusName,
		NewWorkflowManagerIsDeployed: newWorkflowManagerIsDeployed,
		SsmParameterPaths:            stage.GetSsmParameterPaths(),
		LambdaArn:                    func(stage.LambdaName) string { return placeholderArn },
	})
	if err != nil {
		res.Err = err
		return res
	}

	tmpl, err := pdxcdksfn.LoadTemplate(res.Path)
	if err != nil {
		res.Err = err
		return res
	}
	placeholders := tmpl.Placeholders()
	res.Placeholders = len(placeholders)

	for key := range subs {
		if !slices.Contains(placeholders, key) {
			res.Unused = append(res.Unused, key)
		}
	}
	slices.Sort(res.Unused)

	rendered, err := tmpl.Render(subs)
	if err != nil {
		res.Err = err
		return res
	}
	if err := aslvalidate.Validate([]byte(rendered)); err != nil {
		res.Err = errors.Wrapf(err, "template %s", tmpl.Name())
	}
	return res
}

// Failed returns the results that did not pass.
func Failed(results []Result) []Result {
	var failed []Result
	for _, r := range results {
		if !r.OK() {
			failed = append(failed, r)
		}
	}
	return failed
}
