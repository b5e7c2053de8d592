package projcfg_test

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/orcabus/pdxmanager/cmd/internal/projcfg"
	"github.com/orcabus/pdxmanager/internal/testutil"
)

func TestLoadFrom(t *testing.T) {
	t.Parallel()

	root := testutil.Setup(t, map[string]string{
		"pdx.toml":               "[cdk]\ndir = \"infra/cdk/cdk\"\n\n[app]\nroot = \"../app\"\n",
		"infra/cdk/cdk/cdk.json": "{}",
	})

	cfg, err := projcfg.LoadFrom(filepath.Join(root, "infra", "cdk", "cdk"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Root != root {
		t.Errorf("Root = %q, want %q", cfg.Root, root)
	}
	if want := filepath.Join(root, "infra", "cdk", "cdk"); cfg.CdkDir() != want {
		t.Errorf("CdkDir() = %q, want %q", cfg.CdkDir(), want)
	}
	if want := filepath.Join(filepath.Dir(root), "app"); cfg.AppRoot() != want {
		t.Errorf("AppRoot() = %q, want %q", cfg.AppRoot(), want)
	}
}

func TestLoadFrom_AbsoluteAppRoot(t *testing.T) {
	t.Parallel()

	root := testutil.Setup(t, map[string]string{
		"pdx.toml": "[cdk]\ndir = \"cdk\"\n\n[app]\nroot = \"/srv/app\"\n",
	})

	cfg, err := projcfg.LoadFrom(root)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.AppRoot() != "/srv/app" {
		t.Errorf("AppRoot() = %q, want /srv/app", cfg.AppRoot())
	}
}

func TestLoadFrom_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		files       map[string]string
		errContains string
	}{
		{
			name:        "missing file",
			files:       map[string]string{"README.md": ""},
			errContains: "could not find pdx.toml",
		},
		{
			name:        "missing cdk dir",
			files:       map[string]string{"pdx.toml": "[app]\nroot = \"app\"\n"},
			errContains: "cdk.dir is required",
		},
		{
			name:        "absolute cdk dir",
			files:       map[string]string{"pdx.toml": "[cdk]\ndir = \"/cdk\"\n[app]\nroot = \"app\"\n"},
			errContains: "cdk.dir must be relative",
		},
		{
			name:        "missing app root",
			files:       map[string]string{"pdx.toml": "[cdk]\ndir = \"cdk\"\n"},
			errContains: "app.root is required",
		},
		{
			name:        "invalid toml",
			files:       map[string]string{"pdx.toml": "[cdk\n"},
			errContains: "parsing pdx.toml",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			root := testutil.Setup(t, tt.files)
			_, err := projcfg.LoadFrom(root)
			if err == nil {
				t.Fatalf("expected error but got nil")
			}
			if !strings.Contains(err.Error(), tt.errContains) {
				t.Errorf("error %q should contain %q", err.Error(), tt.errContains)
			}
		})
	}
}
