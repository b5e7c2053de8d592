package pdxcdksfn_test

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/orcabus/pdxmanager/pdxcdk/pdxcdksfn"
)

const draftTemplate = `{
  "StartAt": "Put",
  "States": {
    "Put": {
      "Type": "Task",
      "Resource": "arn:aws:states:::events:putEvents",
      "Parameters": {
        "Entries": [{
          "EventBusName": "${__event_bus_name__}",
          "Source": "${__stack_source__}",
          "Detail": {"status": "${__draft_status__}", "again": "${__draft_status__}"}
        }]
      },
      "Next": "Invoke"
    },
    "Invoke": {
      "Type": "Task",
      "Resource": "${__get_payload_lambda_function_arn__}",
      "Comment": "$.not_a_placeholder ${NotOne} ${__Upper__}",
      "End": true
    }
  }
}`

func TestParseTemplate_Placeholders(t *testing.T) {
	t.Parallel()

	tmpl := pdxcdksfn.ParseTemplate("draft", draftTemplate)
	want := []string{
		"__draft_status__",
		"__event_bus_name__",
		"__get_payload_lambda_function_arn__",
		"__stack_source__",
	}
	if got := tmpl.Placeholders(); !slices.Equal(got, want) {
		t.Errorf("Placeholders() = %v, want %v", got, want)
	}
	if tmpl.Name() != "draft" {
		t.Errorf("Name() = %q, want draft", tmpl.Name())
	}
}

func TestParseTemplate_NoPlaceholders(t *testing.T) {
	t.Parallel()

	tmpl := pdxcdksfn.ParseTemplate("empty", `{"StartAt":"A","States":{"A":{"Type":"Succeed"}}}`)
	if len(tmpl.Placeholders()) != 0 {
		t.Errorf("Placeholders() = %v, want none", tmpl.Placeholders())
	}
	if err := tmpl.Validate(nil); err != nil {
		t.Errorf("Validate(nil) = %v, want nil", err)
	}
}

func TestTemplate_Validate(t *testing.T) {
	t.Parallel()

	tmpl := pdxcdksfn.ParseTemplate("draft.asl.json", draftTemplate)

	tests := []struct {
		name        string
		subs        map[string]string
		wantMissing []string
	}{
		{
			name: "all resolved",
			subs: map[string]string{
				"__draft_status__":                    "DRAFT",
				"__event_bus_name__":                  "OrcaBusMain",
				"__get_payload_lambda_function_arn__": "arn",
				"__stack_source__":                    "orcabus.pieriandxtso500ctdna",
			},
		},
		{
			name: "extra keys allowed",
			subs: map[string]string{
				"__draft_status__":                    "DRAFT",
				"__event_bus_name__":                  "OrcaBusMain",
				"__get_payload_lambda_function_arn__": "arn",
				"__stack_source__":                    "orcabus.pieriandxtso500ctdna",
				"__ready_status__":                    "READY",
			},
		},
		{
			name: "two missing",
			subs: map[string]string{
				"__draft_status__":   "DRAFT",
				"__event_bus_name__": "OrcaBusMain",
			},
			wantMissing: []string{"__get_payload_lambda_function_arn__", "__stack_source__"},
		},
		{
			name: "nil substitutions",
			wantMissing: []string{
				"__draft_status__",
				"__event_bus_name__",
				"__get_payload_lambda_function_arn__",
				"__stack_source__",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tmpl.Validate(tt.subs)
			if len(tt.wantMissing) == 0 {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error but got nil")
			}
			if !errors.Is(err, pdxcdksfn.ErrUnresolved) {
				t.Errorf("error %v should wrap ErrUnresolved", err)
			}
			if !strings.Contains(err.Error(), "draft.asl.json") {
				t.Errorf("error %q should name the template", err.Error())
			}
			for _, m := range tt.wantMissing {
				if !strings.Contains(err.Error(), m) {
					t.Errorf("error %q should list %s", err.Error(), m)
				}
			}
			if got := tmpl.Unresolved(tt.subs); !slices.Equal(got, tt.wantMissing) {
				t.Errorf("Unresolved() = %v, want %v", got, tt.wantMissing)
			}
		})
	}
}

func TestTemplate_Render(t *testing.T) {
	t.Parallel()

	tmpl := pdxcdksfn.ParseTemplate("small", `{"a": "${__first_value__}", "b": "${__second__}", "c": "${__first_value__}"}`)

	got, err := tmpl.Render(map[string]string{
		"__first_value__": "one",
		"__second__":      "two",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := `{"a": "one", "b": "two", "c": "one"}`; got != want {
		t.Errorf("Render() = %s, want %s", got, want)
	}

	if _, err := tmpl.Render(map[string]string{"__first_value__": "one"}); err == nil {
		t.Fatalf("expected error but got nil")
	}
}

func TestLoadTemplate(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "populate_draft_data_sfn_template.asl.json")
	if err := os.WriteFile(path, []byte(draftTemplate), 0o600); err != nil {
		t.Fatalf("writing template: %v", err)
	}

	tmpl, err := pdxcdksfn.LoadTemplate(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tmpl.Name() != path {
		t.Errorf("Name() = %q, want %q", tmpl.Name(), path)
	}
	if len(tmpl.Placeholders()) != 4 {
		t.Errorf("Placeholders() = %v, want 4 entries", tmpl.Placeholders())
	}

	if _, err := pdxcdksfn.LoadTemplate(filepath.Join(dir, "missing.asl.json")); err == nil {
		t.Fatalf("expected error but got nil")
	}
}
