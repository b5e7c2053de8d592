// Package aslvalidate checks the structure of Amazon States Language
// definitions: the start state exists, every state has a known type and every
// transition lands on a state of the same scope. Parallel branches and Map
// processors are checked as nested scopes.
package aslvalidate

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// ErrInvalid is returned when a definition has structural problems.
var ErrInvalid = errors.New("invalid state machine definition")

var stateTypes = []string{"Task", "Pass", "Choice", "Wait", "Succeed", "Fail", "Parallel", "Map"}

// Definition is a state machine or a nested scope of one.
type Definition struct {
	Comment string           `json:"Comment" yaml:"Comment"`
	StartAt string           `json:"StartAt" yaml:"StartAt"`
	States  map[string]State `json:"States" yaml:"States"`
}

// State holds the fields of a state that affect control flow.
type State struct {
	Type    string   `json:"Type" yaml:"Type"`
	Next    string   `json:"Next" yaml:"Next"`
	End     bool     `json:"End" yaml:"End"`
	Default string   `json:"Default" yaml:"Default"`
	Choices []Choice `json:"Choices" yaml:"Choices"`
	Catch   []Catch  `json:"Catch" yaml:"Catch"`

	Branches      []Definition `json:"Branches" yaml:"Branches"`
	Iterator      *Definition  `json:"Iterator" yaml:"Iterator"`
	ItemProcessor *Definition  `json:"ItemProcessor" yaml:"ItemProcessor"`
}

type Choice struct {
	Next string `json:"Next" yaml:"Next"`
}

type Catch struct {
	Next string `json:"Next" yaml:"Next"`
}

// Parse decodes a JSON or YAML definition. JSON is decoded strictly since
// tab indented JSON is not valid YAML.
func Parse(data []byte) (*Definition, error) {
	var def Definition
	var err error
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '{' {
		err = json.Unmarshal(data, &def)
	} else {
		err = yaml.Unmarshal(data, &def)
	}
	if err != nil {
		return nil, errors.Wrap(err, "decoding state machine definition")
	}
	return &def, nil
}

// Validate parses data and checks its structure.
func Validate(data []byte) error {
	def, err := Parse(data)
	if err != nil {
		return err
	}
	return def.Validate()
}

// Validate checks the definition and all nested scopes.
func (d *Definition) Validate() error {
	problems := d.check("")
	if len(problems) > 0 {
		return errors.Wrapf(ErrInvalid, "\n  - %s", strings.Join(problems, "\n  - "))
	}
	return nil
}

func (d *Definition) check(scope string) []string {
	var problems []string
	report := func(format string, args ...any) {
		problems = append(problems, scope+fmt.Sprintf(format, args...))
	}

	if d.StartAt == "" {
		report("StartAt is required")
	}
	if len(d.States) == 0 {
		report("States must not be empty")
		return problems
	}
	if _, ok := d.States[d.StartAt]; d.StartAt != "" && !ok {
		report("StartAt %q is not a state", d.StartAt)
	}

	names := make([]string, 0, len(d.States))
	for name := range d.States {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		st := d.States[name]
		transition := func(field, target string) {
			if _, ok := d.States[target]; !ok {
				report("state %q: %s %q is not a state", name, field, target)
			}
		}

		if !slices.Contains(stateTypes, st.Type) {
			report("state %q: unknown Type %q", name, st.Type)
			continue
		}

		switch st.Type {
		case "Choice":
			if len(st.Choices) == 0 {
				report("state %q: Choice needs at least one rule", name)
			}
			for _, c := range st.Choices {
				transition("choice Next", c.Next)
			}
			if st.Default != "" {
				transition("Default", st.Default)
			}
		case "Succeed", "Fail":
		default:
			switch {
			case st.End && st.Next != "":
				report("state %q: sets both Next and End", name)
			case st.Next != "":
				transition("Next", st.Next)
			case !st.End:
				report("state %q: needs Next or End", name)
			}
		}

		for _, c := range st.Catch {
			transition("catch Next", c.Next)
		}

		for i := range st.Branches {
			problems = append(problems, st.Branches[i].check(fmt.Sprintf("%s%s.Branches[%d]: ", scope, name, i))...)
		}
		if st.Iterator != nil {
			problems = append(problems, st.Iterator.check(scope+name+".Iterator: ")...)
		}
		if st.ItemProcessor != nil {
			problems = append(problems, st.ItemProcessor.check(scope+name+".ItemProcessor: ")...)
		}
	}
	return problems
}
