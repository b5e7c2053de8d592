package stage

import (
	"path"

	"github.com/iancoleman/strcase"
	"github.com/orcabus/pdxmanager/pdxcdk/pdxcdkparams"
)

// SchemaName identifies an event schema the service registers.
type SchemaName string

const SchemaCompleteDataDraft SchemaName = CompleteDataDraftSchemaName

// SchemaSpec declares an event schema.
type SchemaSpec struct {
	Description string
}

// Schema definitions are JSON Schema draft 4 documents.
const SchemaType = "JSONSchemaDraft4"

var schemaNames = []SchemaName{SchemaCompleteDataDraft}

var schemaSpecs = map[SchemaName]SchemaSpec{
	SchemaCompleteDataDraft: {
		Description: "Complete draft data of a " + WorkflowName + " workflow run, validated before the READY event",
	},
}

// EventSchemas holds every schema published into the data registry.
var EventSchemas = MustRegistry("event schema", schemaNames, schemaSpecs)

// SsmSchemaRegistryPath holds the name of the schema registry.
var SsmSchemaRegistryPath = path.Join(SsmSchemaRoot, "registry")

// Kebab returns the kebab-case form of the schema name.
func (n SchemaName) Kebab() string {
	return strcase.ToKebab(string(n))
}

// File is the schema document relative to the event schemas root.
func (n SchemaName) File() string {
	return n.Kebab() + ".schema.json"
}

// QualifiedName is the schema's name in the registry, e.g.
// "orcabus.pieriandxtso500ctdna@CompleteDataDraft".
func (n SchemaName) QualifiedName() string {
	return EventSource + "@" + strcase.ToCamel(string(n))
}

// LatestParameterPath holds the pointer to the schema's latest version.
func (n SchemaName) LatestParameterPath() string {
	return path.Join(SsmSchemaRoot, n.Kebab(), "latest")
}

// SchemaPointer is the value of a schema's latest parameter.
type SchemaPointer struct {
	RegistryName  string `json:"registryName"`
	SchemaName    string `json:"schemaName"`
	SchemaVersion string `json:"schemaVersion"`
}

// AddSchemaParameters adds the registry name and one latest pointer per
// schema to set. version returns the deployed version of a schema, a token
// in a CDK app.
func AddSchemaParameters(set *pdxcdkparams.Set, version func(SchemaName) string) {
	set.Put("schema-registry", SsmSchemaRegistryPath, SchemaRegistryName)
	for _, name := range EventSchemas.Names() {
		set.PutJSON("schema-"+name.Kebab()+"-latest", name.LatestParameterPath(), SchemaPointer{
			RegistryName:  SchemaRegistryName,
			SchemaName:    name.QualifiedName(),
			SchemaVersion: version(name),
		})
	}
}

// SchemaLatestParameterPaths returns the latest pointer of every schema.
// Their values carry a version assigned at deploy time.
func SchemaLatestParameterPaths() []string {
	paths := make([]string, 0, EventSchemas.Len())
	for _, name := range EventSchemas.Names() {
		paths = append(paths, name.LatestParameterPath())
	}
	return paths
}
