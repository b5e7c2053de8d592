package pdxcdkpylambda

import (
	"strings"
	"testing"

	"github.com/aws/jsii-runtime-go"
)

func TestValidateProps(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		props       Props
		errContains string
	}{
		{
			name: "valid",
			props: Props{
				Name: jsii.String("getPayload"), Entry: jsii.String("/app/lambdas/get_payload_py"),
				Index: jsii.String("get_payload.py"),
			},
		},
		{
			name:        "missing name",
			props:       Props{Entry: jsii.String("/app"), Index: jsii.String("x.py")},
			errContains: "name is required",
		},
		{
			name:        "missing entry",
			props:       Props{Name: jsii.String("getPayload"), Index: jsii.String("x.py")},
			errContains: "entry is required",
		},
		{
			name:        "empty entry",
			props:       Props{Name: jsii.String("getPayload"), Entry: jsii.String(""), Index: jsii.String("x.py")},
			errContains: "entry is required",
		},
		{
			name:        "missing index",
			props:       Props{Name: jsii.String("getPayload"), Entry: jsii.String("/app")},
			errContains: "index must be a .py file",
		},
		{
			name:        "index without extension",
			props:       Props{Name: jsii.String("getPayload"), Entry: jsii.String("/app"), Index: jsii.String("index")},
			errContains: "index must be a .py file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := validateProps(tt.props)
			if tt.errContains == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error but got nil")
			}
			if !strings.Contains(err.Error(), tt.errContains) {
				t.Errorf("error %q should contain %q", err.Error(), tt.errContains)
			}
		})
	}
}

func TestPipInstallHooks(t *testing.T) {
	t.Parallel()

	hooks := &pipInstallHooks{pruneDirs: []string{"pandas/tests", "numpy/tests"}}

	before := hooks.BeforeBundling(jsii.String("/in"), jsii.String("/out"))
	if len(*before) != 0 {
		t.Errorf("BeforeBundling returned %d commands, want 0", len(*before))
	}

	after := hooks.AfterBundling(jsii.String("/asset-input"), jsii.String("/asset-output/python"))
	want := []string{
		"pip install /asset-input --target /asset-output/python",
		"rm -rf /asset-output/python/pandas/tests",
		"rm -rf /asset-output/python/numpy/tests",
	}
	if len(*after) != len(want) {
		t.Fatalf("AfterBundling returned %d commands, want %d", len(*after), len(want))
	}
	for i, cmd := range *after {
		if *cmd != want[i] {
			t.Errorf("command %d = %q, want %q", i, *cmd, want[i])
		}
	}
}
