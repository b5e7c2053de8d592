// Package topology derives the build order of the stateless stack from the
// stage registries.
//
// Functions come first, then the state machines that invoke them, then the
// rules and finally the targets that bind a rule to a state machine. The
// graph makes that order explicit and rejects declarations that reference
// something that does not exist.
package topology

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/orcabus/pdxmanager/infra/stage"
	tfdag "github.com/sourcegraph/tf-dag/dag"
)

// Kind is the kind of construct a node stands for.
type Kind string

const (
	KindLambda       Kind = "lambda"
	KindStateMachine Kind = "stateMachine"
	KindRule         Kind = "rule"
	KindTarget       Kind = "target"
)

var kindRank = map[Kind]int{
	KindLambda:       0,
	KindStateMachine: 1,
	KindRule:         2,
	KindTarget:       3,
}

// ErrDangling is returned when a node depends on a node that was not declared.
var ErrDangling = errors.New("dangling reference")

// ErrCycle is returned when the declarations depend on each other in a loop.
var ErrCycle = errors.New("dependency cycle")

// Node is one construct of the stateless stack.
type Node struct {
	Kind  Kind
	Ident string

	index int
}

// Name returns the node's unique name, e.g. "lambda:getPayload".
func (n *Node) Name() string {
	return fmt.Sprintf("%s:%s", n.Kind, n.Ident)
}

// Decl declares a node and the names of the nodes it depends on.
type Decl struct {
	Kind      Kind
	Ident     string
	DependsOn []string
}

// Graph is a validated dependency graph.
type Graph struct {
	graph tfdag.AcyclicGraph
	nodes map[string]*Node
}

// Build creates the graph of decls. Every dependency must name a declared
// node and the dependencies must not form a cycle.
func Build(decls []Decl) (*Graph, error) {
	g := &Graph{nodes: make(map[string]*Node, len(decls))}

	for i, d := range decls {
		if _, ok := kindRank[d.Kind]; !ok {
			return nil, errors.Newf("node %q: unknown kind %q", d.Ident, d.Kind)
		}
		node := &Node{Kind: d.Kind, Ident: d.Ident, index: i}
		if _, dup := g.nodes[node.Name()]; dup {
			return nil, errors.Newf("node %s declared twice", node.Name())
		}
		g.nodes[node.Name()] = node
		g.graph.Add(node)
	}

	var dangling []string
	for _, d := range decls {
		node := g.nodes[nodeName(d.Kind, d.Ident)]
		for _, dep := range d.DependsOn {
			if dep == node.Name() {
				return nil, errors.Wrapf(ErrCycle, "%s depends on itself", dep)
			}
			target, ok := g.nodes[dep]
			if !ok {
				dangling = append(dangling, fmt.Sprintf("%s -> %s", node.Name(), dep))
				continue
			}
			g.graph.Connect(tfdag.BasicEdge(node, target))
		}
	}
	if len(dangling) > 0 {
		return nil, errors.Wrapf(ErrDangling, "\n  - %s", strings.Join(dangling, "\n  - "))
	}

	if cycles := g.graph.Cycles(); len(cycles) > 0 {
		var loops []string
		for _, cycle := range cycles {
			names := make([]string, 0, len(cycle))
			for _, v := range cycle {
				names = append(names, tfdag.VertexName(v))
			}
			slices.Sort(names)
			loops = append(loops, strings.Join(names, ", "))
		}
		slices.Sort(loops)
		return nil, errors.Wrapf(ErrCycle, "\n  - %s", strings.Join(loops, "\n  - "))
	}

	return g, nil
}

// FromRegistries builds the graph of the stateless stack.
func FromRegistries() (*Graph, error) {
	return Build(Declarations())
}

// Declarations lists every registered construct with its dependencies.
func Declarations() []Decl {
	var decls []Decl

	for _, name := range stage.Lambdas.Names() {
		decls = append(decls, Decl{Kind: KindLambda, Ident: string(name)})
	}

	for _, name := range stage.StepFunctions.Names() {
		spec, _ := stage.StepFunctions.Get(name)
		deps := make([]string, 0, len(spec.Lambdas))
		for _, fn := range spec.Lambdas {
			deps = append(deps, nodeName(KindLambda, string(fn)))
		}
		decls = append(decls, Decl{Kind: KindStateMachine, Ident: string(name), DependsOn: deps})
	}

	for _, name := range stage.EventRules.Names() {
		decls = append(decls, Decl{Kind: KindRule, Ident: string(name)})
	}

	for _, name := range stage.EventTargets.Names() {
		spec, _ := stage.EventTargets.Get(name)
		decls = append(decls, Decl{
			Kind:  KindTarget,
			Ident: string(name),
			DependsOn: []string{
				nodeName(KindRule, string(spec.Rule)),
				nodeName(KindStateMachine, string(spec.StateMachine)),
			},
		})
	}

	return decls
}

func nodeName(kind Kind, ident string) string {
	return (&Node{Kind: kind, Ident: ident}).Name()
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// Dependencies returns the names of the nodes name directly depends on,
// sorted.
func (g *Graph) Dependencies(name string) []string {
	node, ok := g.nodes[name]
	if !ok {
		return nil
	}
	var deps []string
	for _, e := range g.graph.Edges() {
		if e.Source() == node {
			deps = append(deps, tfdag.VertexName(e.Target()))
		}
	}
	slices.Sort(deps)
	return deps
}

// Order returns the nodes so that every node follows its dependencies. Among
// nodes that are ready at the same time, kinds come in build order and
// nodes of one kind in declaration order, so the result is deterministic.
func (g *Graph) Order() []*Node {
	pending := make(map[*Node]int, len(g.nodes))
	dependents := make(map[*Node][]*Node, len(g.nodes))
	for _, node := range g.nodes {
		pending[node] = 0
	}
	for _, e := range g.graph.Edges() {
		src, _ := e.Source().(*Node)
		dst, _ := e.Target().(*Node)
		pending[src]++
		dependents[dst] = append(dependents[dst], src)
	}

	var ready []*Node
	for node, n := range pending {
		if n == 0 {
			ready = append(ready, node)
		}
	}

	order := make([]*Node, 0, len(g.nodes))
	for len(ready) > 0 {
		slices.SortFunc(ready, compareNodes)
		next := ready[0]
		ready = ready[1:]
		order = append(order, next)

		for _, dep := range dependents[next] {
			pending[dep]--
			if pending[dep] == 0 {
				ready = append(ready, dep)
			}
		}
	}
	return order
}

// Walk calls fn for every node in Order, stopping at the first error.
func (g *Graph) Walk(fn func(*Node) error) error {
	for _, node := range g.Order() {
		if err := fn(node); err != nil {
			return errors.Wrapf(err, "visiting %s", node.Name())
		}
	}
	return nil
}

func compareNodes(a, b *Node) int {
	if c := cmp.Compare(kindRank[a.Kind], kindRank[b.Kind]); c != 0 {
		return c
	}
	return cmp.Compare(a.index, b.index)
}
