package pdxcdkparams_test

import (
	"strings"
	"testing"

	"github.com/orcabus/pdxmanager/pdxcdk/pdxcdkparams"
)

func TestSet_Parameters(t *testing.T) {
	tests := []struct {
		name        string
		build       func(s *pdxcdkparams.Set)
		wantNames   []string
		errContains []string
	}{
		{
			name: "map entries in key order",
			build: func(s *pdxcdkparams.Set) {
				s.Put("first", "/root/first", "1")
				pdxcdkparams.PutEach(s, "panel-", "/root/panel", map[string]string{"b": "B", "a": "A"})
			},
			wantNames: []string{"/root/first", "/root/panel/a", "/root/panel/b"},
		},
		{
			name: "json entries",
			build: func(s *pdxcdkparams.Set) {
				pdxcdkparams.PutJSONEach(s, "n-", "/root/n", map[string]int{"x": 1})
				s.PutJSON("obj", "/root/obj", struct {
					A string `json:"a"`
				}{"v"})
			},
			wantNames: []string{"/root/n/x", "/root/obj"},
		},
		{
			name: "outside root",
			build: func(s *pdxcdkparams.Set) {
				s.Put("x", "/elsewhere/x", "v")
			},
			errContains: []string{`"/elsewhere/x" is outside root "/root/"`},
		},
		{
			name: "duplicates and empty values",
			build: func(s *pdxcdkparams.Set) {
				s.Put("x", "/root/x", "v")
				s.Put("x", "/root/x", "")
			},
			errContains: []string{
				`parameter "/root/x" is defined more than once`,
				`construct id "x" is used more than once`,
				`parameter "/root/x" has an empty value`,
			},
		},
		{
			name: "value too long",
			build: func(s *pdxcdkparams.Set) {
				s.Put("x", "/root/x", strings.Repeat("a", pdxcdkparams.MaxValueLength+1))
			},
			errContains: []string{"exceeds 4096 characters"},
		},
		{
			name: "unencodable value",
			build: func(s *pdxcdkparams.Set) {
				s.PutJSON("ch", "/root/ch", make(chan int))
			},
			errContains: []string{"encoding /root/ch"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set := pdxcdkparams.NewSet("/root/")
			tt.build(set)

			params, err := set.Parameters()
			if len(tt.errContains) > 0 {
				if err == nil {
					t.Fatalf("expected error but got nil")
				}
				for _, want := range tt.errContains {
					if !strings.Contains(err.Error(), want) {
						t.Errorf("error %q does not contain %q", err.Error(), want)
					}
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			got := make([]string, 0, len(params))
			for _, p := range params {
				got = append(got, p.Name)
			}
			if strings.Join(got, ",") != strings.Join(tt.wantNames, ",") {
				t.Errorf("names = %v, want %v", got, tt.wantNames)
			}
		})
	}
}

func TestSet_LookupAndValues(t *testing.T) {
	set := pdxcdkparams.NewSet("/root/")
	set.Put("a", "/root/a", "1")

	if p, ok := set.Lookup("/root/a"); !ok || p.Value != "1" || p.ID != "a" {
		t.Errorf("Lookup(/root/a) = %+v, %v", p, ok)
	}
	if _, ok := set.Lookup("/root/missing"); ok {
		t.Error("Lookup(/root/missing) should not be found")
	}
	if got := set.Values()["/root/a"]; got != "1" {
		t.Errorf("Values()[/root/a] = %q", got)
	}
}
