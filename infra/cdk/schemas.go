package cdk

import (
	"encoding/json"
	"os"

	"github.com/aws/aws-cdk-go/awscdk/v2/awseventschemas"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
	"github.com/cockroachdb/errors"
	"github.com/orcabus/pdxmanager/infra/stage"
	"github.com/orcabus/pdxmanager/pdxcdk/pdxcdkutil"
)

// EventSchemas are the registered schemas keyed by name.
type EventSchemas = Built[stage.SchemaName, awseventschemas.CfnSchema]

// NewEventSchemas registers every schema document below the event schemas
// directory in the shared data registry.
func NewEventSchemas(scope constructs.Construct) *EventSchemas {
	scope = constructs.NewConstruct(scope, jsii.String("EventSchemas"))

	built := newBuilt[stage.SchemaName, awseventschemas.CfnSchema]("event schema")
	for _, name := range stage.EventSchemas.Names() {
		spec, err := stage.EventSchemas.Get(name)
		if err != nil {
			panic(err)
		}

		file := pdxcdkutil.AppPath(scope, stage.EventSchemasDir, name.File())
		content, err := os.ReadFile(file)
		if err != nil {
			panic(errors.Wrapf(err, "reading schema %s", name))
		}
		if !json.Valid(content) {
			panic(errors.Newf("schema %s: %s is not valid JSON", name, file))
		}

		built.add(name, awseventschemas.NewCfnSchema(scope, jsii.String(pdxcdkutil.ConstructID(string(name))),
			&awseventschemas.CfnSchemaProps{
				RegistryName: jsii.String(stage.SchemaRegistryName),
				SchemaName:   jsii.String(name.QualifiedName()),
				Type:         jsii.String(stage.SchemaType),
				Description:  jsii.String(spec.Description),
				Content:      jsii.String(string(content)),
			}))
	}
	return built
}
