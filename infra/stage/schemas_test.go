package stage_test

import (
	"encoding/json"
	"testing"

	"github.com/orcabus/pdxmanager/infra/stage"
	"github.com/orcabus/pdxmanager/pdxcdk/pdxcdkparams"
)

func TestSchemaNames(t *testing.T) {
	t.Parallel()

	n := stage.SchemaCompleteDataDraft
	if got := n.Kebab(); got != "complete-data-draft" {
		t.Errorf("Kebab() = %q, want complete-data-draft", got)
	}
	if got := n.File(); got != "complete-data-draft.schema.json" {
		t.Errorf("File() = %q", got)
	}
	if got := n.QualifiedName(); got != "orcabus.pieriandxtso500ctdna@CompleteDataDraft" {
		t.Errorf("QualifiedName() = %q", got)
	}
	if got := n.LatestParameterPath(); got != "/orcabus/workflows/pieriandx-tso500-ctdna/schemas/complete-data-draft/latest" {
		t.Errorf("LatestParameterPath() = %q", got)
	}
	if got := stage.SsmSchemaRegistryPath; got != "/orcabus/workflows/pieriandx-tso500-ctdna/schemas/registry" {
		t.Errorf("SsmSchemaRegistryPath = %q", got)
	}
}

func TestAddSchemaParameters(t *testing.T) {
	t.Parallel()

	set := pdxcdkparams.NewSet(stage.SsmParameterRoot)
	stage.AddSchemaParameters(set, func(stage.SchemaName) string { return "3" })

	params, err := set.Parameters()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(params) != 1+stage.EventSchemas.Len() {
		t.Fatalf("expected %d parameters, got %d", 1+stage.EventSchemas.Len(), len(params))
	}

	registry, ok := set.Lookup(stage.SsmSchemaRegistryPath)
	if !ok || registry.Value != stage.SchemaRegistryName {
		t.Errorf("registry parameter = %+v, want %s", registry, stage.SchemaRegistryName)
	}

	latest, ok := set.Lookup(stage.SchemaCompleteDataDraft.LatestParameterPath())
	if !ok {
		t.Fatalf("missing latest pointer")
	}
	var ptr stage.SchemaPointer
	if err := json.Unmarshal([]byte(latest.Value), &ptr); err != nil {
		t.Fatalf("latest pointer is not JSON: %v", err)
	}
	want := stage.SchemaPointer{
		RegistryName:  "orcabus.data",
		SchemaName:    "orcabus.pieriandxtso500ctdna@CompleteDataDraft",
		SchemaVersion: "3",
	}
	if ptr != want {
		t.Errorf("pointer = %+v, want %+v", ptr, want)
	}

	paths := stage.SchemaLatestParameterPaths()
	if len(paths) != 1 || paths[0] != latest.Name {
		t.Errorf("SchemaLatestParameterPaths() = %v", paths)
	}
}
