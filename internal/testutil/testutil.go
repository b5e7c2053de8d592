// Package testutil builds on-disk fixtures for tests that synthesize stacks
// or inspect the application tree.
package testutil

import (
	"fmt"
	"os"
	"os/exec"
	"path"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/orcabus/pdxmanager/infra/stage"
)

// NoBundling is the context that makes CDK skip asset bundling, so Python
// functions and layers synthesize without docker.
func NoBundling() map[string]any {
	return map[string]any{"aws:cdk:bundling-stacks": []any{}}
}

// Setup writes files below a fresh temporary directory and returns its path.
func Setup(tb testing.TB, files map[string]string) string {
	tb.Helper()

	root := tb.TempDir()

	for relPath, content := range files {
		fullPath := filepath.Join(root, relPath)

		dir := filepath.Dir(fullPath)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			tb.Fatalf("creating directory %s: %v", dir, err)
		}

		if err := os.WriteFile(fullPath, []byte(content), 0o600); err != nil {
			tb.Fatalf("writing file %s: %v", fullPath, err)
		}
	}

	return root
}

// AppFiles returns the files of a minimal application tree: a handler per
// function, the PierianDx tools layer, a document per event schema, and one
// template per state machine that references every substitution the machine
// receives.
func AppFiles(tb testing.TB) map[string]string {
	tb.Helper()

	files := map[string]string{
		path.Join(stage.LayersDir, stage.PierianDxToolsLayerID, "pyproject.toml"):                        "[project]\nname = \"pieriandx_tools\"\nversion = \"0.0.1\"\n",
		path.Join(stage.LayersDir, stage.PierianDxToolsLayerID, "src", "pieriandx_tools", "__init__.py"): "",
	}

	for _, name := range stage.Lambdas.Names() {
		files[path.Join(stage.LambdasDir, name.CodeDir(), name.Index())] = "def handler(event, context):\n    return event\n"
	}

	for _, name := range stage.EventSchemas.Names() {
		files[path.Join(stage.EventSchemasDir, name.File())] = SchemaDocument
	}

	for _, name := range stage.StepFunctions.Names() {
		subs, err := stage.Substitutions(name, stage.SubstitutionInputs{
			EventBusName:      stage.EventBusName,
			SsmParameterPaths: stage.GetSsmParameterPaths(),
			LambdaArn:         func(stage.LambdaName) string { return "arn" },
		})
		if err != nil {
			tb.Fatalf("computing substitutions of %s: %v", name, err)
		}
		files[path.Join(stage.StepFunctionsDir, name.TemplateFile())] = PassTemplate(subs)
	}

	return files
}

// SchemaDocument is a minimal JSON Schema draft 4 document.
const SchemaDocument = `{"$schema": "http://json-schema.org/draft-04/schema#", "type": "object"}`

// AppRoot writes AppFiles below a temporary directory and returns its path.
func AppRoot(tb testing.TB) string {
	tb.Helper()
	return Setup(tb, AppFiles(tb))
}

// PassTemplate renders a single Pass state whose parameters reference every
// key of subs as a placeholder.
func PassTemplate(subs map[string]string) string {
	keys := make([]string, 0, len(subs))
	for k := range subs {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	params := make([]string, 0, len(keys))
	for _, k := range keys {
		params = append(params, fmt.Sprintf(`        %q: "${%s}"`, strings.Trim(k, "_"), k))
	}

	return "{\n" +
		"  \"StartAt\": \"Pass\",\n" +
		"  \"States\": {\n" +
		"    \"Pass\": {\n" +
		"      \"Type\": \"Pass\",\n" +
		"      \"Parameters\": {\n" +
		strings.Join(params, ",\n") + "\n" +
		"      },\n" +
		"      \"End\": true\n" +
		"    }\n" +
		"  }\n" +
		"}\n"
}

// RequireBinary skips the test when name is not on PATH.
func RequireBinary(tb testing.TB, name string) {
	tb.Helper()

	if _, err := exec.LookPath(name); err != nil {
		tb.Skipf("skipping: %s not in PATH", name)
	}
}
