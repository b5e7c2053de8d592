package pdxcdksfn

import (
	"github.com/aws/aws-cdk-go/awscdk/v2/awsiam"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsstepfunctions"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
	"github.com/cockroachdb/errors"
	"github.com/iancoleman/strcase"
	"github.com/orcabus/pdxmanager/pdxcdk/pdxcdkutil"
)

// StateMachine provides access to a templated state machine.
type StateMachine interface {
	// StateMachine returns the underlying state machine.
	StateMachine() awsstepfunctions.StateMachine
	// Name returns the logical name, e.g. "populateDraftData".
	Name() string
	// Template returns the parsed definition template.
	Template() *Template
	// AddToRolePolicy adds a statement to the state machine's role.
	AddToRolePolicy(statement awsiam.PolicyStatement)
	// Suppress records cdk-nag suppressions on the state machine and its role.
	Suppress(reasons map[pdxcdkutil.NagRule]string)
}

// Props configures the StateMachine construct.
type Props struct {
	// Name is the lowerCamelCase logical name. The construct id is its
	// UpperCamelCase form.
	// Required.
	Name *string
	// PhysicalName is the deployed state machine name.
	// Required.
	PhysicalName *string
	// TemplatePath is the ASL template file.
	// Required.
	TemplatePath *string
	// Substitutions maps placeholder names to values. Every placeholder of
	// the template must have an entry.
	Substitutions map[string]string
}

type stateMachine struct {
	machine  awsstepfunctions.StateMachine
	template *Template
	name     string
}

func validateProps(props Props) error {
	if props.Name == nil || *props.Name == "" {
		return errors.New("state machine name is required")
	}
	if props.PhysicalName == nil || *props.PhysicalName == "" {
		return errors.Newf("state machine %q: physical name is required", *props.Name)
	}
	if props.TemplatePath == nil || *props.TemplatePath == "" {
		return errors.Newf("state machine %q: template path is required", *props.Name)
	}
	return nil
}

// New creates a state machine whose definition is the template file with
// the given substitutions. It panics when the template cannot be read or a
// placeholder is unresolved.
//
// Execution logging and tracing are not enabled; both rules are suppressed.
func New(scope constructs.Construct, props Props) StateMachine {
	if err := validateProps(props); err != nil {
		panic(err)
	}

	tmpl, err := LoadTemplate(*props.TemplatePath)
	if err != nil {
		panic(errors.Wrapf(err, "state machine %q", *props.Name))
	}
	if err := tmpl.Validate(props.Substitutions); err != nil {
		panic(errors.Wrapf(err, "state machine %q", *props.Name))
	}

	subs := make(map[string]*string, len(props.Substitutions))
	for k, v := range props.Substitutions {
		subs[k] = jsii.String(v)
	}

	con := &stateMachine{template: tmpl, name: *props.Name}
	con.machine = awsstepfunctions.NewStateMachine(scope, jsii.String(strcase.ToCamel(*props.Name)),
		&awsstepfunctions.StateMachineProps{
			StateMachineName:        props.PhysicalName,
			DefinitionBody:          awsstepfunctions.DefinitionBody_FromFile(props.TemplatePath, nil),
			DefinitionSubstitutions: &subs,
		})

	con.Suppress(map[pdxcdkutil.NagRule]string{
		pdxcdkutil.NagSfnLogging: "We do not need all events to be logged",
		pdxcdkutil.NagSfnXRay:    "We do not need X-Ray tracing",
	})

	return con
}

func (s *stateMachine) StateMachine() awsstepfunctions.StateMachine {
	return s.machine
}

func (s *stateMachine) Name() string {
	return s.name
}

func (s *stateMachine) Template() *Template {
	return s.template
}

func (s *stateMachine) AddToRolePolicy(statement awsiam.PolicyStatement) {
	s.machine.AddToRolePolicy(statement)
}

func (s *stateMachine) Suppress(reasons map[pdxcdkutil.NagRule]string) {
	pdxcdkutil.Suppress(s.machine, reasons)
}
