package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/orcabus/pdxmanager/infra/topology"
)

type TopologyCmd struct {
	Deps bool `help:"Print the direct dependencies of each node."`
}

func (c *TopologyCmd) Run(out io.Writer) error {
	g, err := topology.FromRegistries()
	if err != nil {
		return err
	}
	for _, n := range g.Order() {
		line := n.Name()
		if c.Deps {
			line += " <- " + strings.Join(g.Dependencies(n.Name()), ", ")
		}
		if _, err := fmt.Fprintln(out, line); err != nil {
			return err
		}
	}
	return nil
}
