// Package pdxcdkpylambda provides the Python function and layer constructs
// the service's functions are built with.
//
// Functions run on Python 3.12 on arm64 with a dedicated JSON log group. The
// handler code itself lives outside this repository; the construct only
// points at its directory and bundles it.
package pdxcdkpylambda

import (
	"maps"
	"path/filepath"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsiam"
	"github.com/aws/aws-cdk-go/awscdk/v2/awslambda"
	"github.com/aws/aws-cdk-go/awscdk/v2/awslogs"
	"github.com/aws/aws-cdk-go/awscdklambdapythonalpha/v2"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
	"github.com/cockroachdb/errors"
	"github.com/iancoleman/strcase"
	"github.com/orcabus/pdxmanager/pdxcdk/pdxcdkloggroup"
	"github.com/orcabus/pdxmanager/pdxcdk/pdxcdkutil"
)

// Function defaults.
const (
	DefaultHandler    = "handler"
	DefaultMemorySize = 2048
	DefaultTimeout    = 60
)

// Runtime is the Python runtime of every function and layer.
func Runtime() awslambda.Runtime {
	return awslambda.Runtime_PYTHON_3_12()
}

// Architecture is the CPU architecture of every function and layer.
func Architecture() awslambda.Architecture {
	return awslambda.Architecture_ARM_64()
}

// Lambda provides access to a Python function.
type Lambda interface {
	// Function returns the underlying Python function.
	Function() awscdklambdapythonalpha.PythonFunction
	// CurrentVersion returns the version state machines and grants refer to.
	CurrentVersion() awslambda.IVersion
	// LogGroup returns the CloudWatch Log Group for the function.
	LogGroup() awslogs.ILogGroup
	// Name returns the function's logical name, e.g. "getPayload".
	Name() string
	// AddEnvironment sets an environment variable on the function.
	AddEnvironment(key, value string)
	// AddToRolePolicy adds a statement to the function's execution role.
	AddToRolePolicy(statement awsiam.PolicyStatement)
	// AddLayers attaches layers to the function.
	AddLayers(layers ...awslambda.ILayerVersion)
	// Suppress records cdk-nag suppressions on the function and its role.
	Suppress(reasons map[pdxcdkutil.NagRule]string)
}

// Props configures the Lambda construct.
type Props struct {
	// Name is the lowerCamelCase logical name of the function.
	// Required.
	Name *string
	// Entry is the directory holding the handler module.
	// Required.
	Entry *string
	// Index is the handler module file inside Entry.
	// Required.
	Index *string
	// Handler is the function inside Index. Defaults to DefaultHandler.
	Handler *string
	// Environment variables to pass to the function.
	Environment *map[string]*string
	// Layers to attach at creation.
	Layers []awslambda.ILayerVersion
}

// ValidateName checks that name is a non-empty lowerCamelCase identifier.
func ValidateName(name string) error {
	if name == "" {
		return errors.New("function name is required")
	}
	if name != strcase.ToLowerCamel(name) {
		return errors.Newf("function name must be lowerCamelCase, got %q", name)
	}
	return nil
}

func validateProps(props Props) error {
	if props.Name == nil {
		return errors.New("function name is required")
	}
	if err := ValidateName(*props.Name); err != nil {
		return err
	}
	if props.Entry == nil || *props.Entry == "" {
		return errors.Newf("function %q: entry is required", *props.Name)
	}
	if props.Index == nil || filepath.Ext(*props.Index) != ".py" {
		return errors.Newf("function %q: index must be a .py file", *props.Name)
	}
	return nil
}

type lambda struct {
	function awscdklambdapythonalpha.PythonFunction
	logGroup awslogs.ILogGroup
	name     string
}

// New creates a Python function below its own scope named after the function
// (e.g. "getPayload" becomes "GetPayload").
//
// Every function carries suppressions for the runtime version and managed
// execution role rules, which apply to all of them alike.
func New(scope constructs.Construct, props Props) Lambda {
	if err := validateProps(props); err != nil {
		panic(err)
	}

	scopeName := strcase.ToCamel(*props.Name)
	scope = constructs.NewConstruct(scope, jsii.String(scopeName))
	con := &lambda{name: *props.Name}

	env := make(map[string]*string)
	if props.Environment != nil {
		maps.Copy(env, *props.Environment)
	}

	handler := props.Handler
	if handler == nil {
		handler = jsii.String(DefaultHandler)
	}

	con.logGroup = pdxcdkloggroup.New(scope, scopeName+"Logs", pdxcdkloggroup.Props{
		Purpose: jsii.String("function " + *props.Name),
	}).LogGroup()

	var layers *[]awslambda.ILayerVersion
	if len(props.Layers) > 0 {
		layers = &props.Layers
	}

	con.function = awscdklambdapythonalpha.NewPythonFunction(scope, jsii.String("Function"),
		&awscdklambdapythonalpha.PythonFunctionProps{
			Entry:         props.Entry,
			Index:         props.Index,
			Handler:       handler,
			Runtime:       Runtime(),
			Architecture:  Architecture(),
			MemorySize:    jsii.Number(DefaultMemorySize),
			Timeout:       awscdk.Duration_Seconds(jsii.Number(DefaultTimeout)),
			Environment:   &env,
			Layers:        layers,
			LogGroup:      con.logGroup,
			LoggingFormat: awslambda.LoggingFormat_JSON,
		})

	con.Suppress(map[pdxcdkutil.NagRule]string{
		pdxcdkutil.NagLambdaRuntime: "Functions stay on Python 3.12 until the shared layers support a newer runtime",
		pdxcdkutil.NagManagedPolicy: "Functions use the basic execution role",
	})

	return con
}

func (l *lambda) Function() awscdklambdapythonalpha.PythonFunction {
	return l.function
}

func (l *lambda) CurrentVersion() awslambda.IVersion {
	return l.function.CurrentVersion()
}

func (l *lambda) LogGroup() awslogs.ILogGroup {
	return l.logGroup
}

func (l *lambda) Name() string {
	return l.name
}

func (l *lambda) AddEnvironment(key, value string) {
	l.function.AddEnvironment(jsii.String(key), jsii.String(value), nil)
}

func (l *lambda) AddToRolePolicy(statement awsiam.PolicyStatement) {
	l.function.AddToRolePolicy(statement)
}

func (l *lambda) AddLayers(layers ...awslambda.ILayerVersion) {
	l.function.AddLayers(layers...)
}

func (l *lambda) Suppress(reasons map[pdxcdkutil.NagRule]string) {
	pdxcdkutil.Suppress(l.function, reasons)
}
