package main

import (
	"fmt"
	"io"

	"github.com/cockroachdb/errors"
	"github.com/orcabus/pdxmanager/cmd/internal/projcfg"
	"github.com/orcabus/pdxmanager/cmd/internal/tmplcheck"
)

type TemplatesCheckCmd struct {
	NewWorkflowManager bool `help:"Check with the new workflow manager deployed." default:"true" negatable:""`
	ShowUnused         bool `help:"List substitutions a template does not reference."`
}

func (c *TemplatesCheckCmd) Run(cfg *projcfg.Config, out io.Writer) error {
	results := tmplcheck.Check(cfg.AppRoot(), c.NewWorkflowManager)
	for _, r := range results {
		status := "ok"
		if !r.OK() {
			status = "FAIL"
		}
		fmt.Fprintf(out, "%-4s %s (%d placeholders)\n", status, r.StateMachine, r.Placeholders)
		if !r.OK() {
			fmt.Fprintf(out, "     %v\n", r.Err)
		}
		if c.ShowUnused {
			for _, key := range r.Unused {
				fmt.Fprintf(out, "     unused: %s\n", key)
			}
		}
	}

	if failed := tmplcheck.Failed(results); len(failed) > 0 {
		return errors.Newf("%d of %d templates failed", len(failed), len(results))
	}
	return nil
}
