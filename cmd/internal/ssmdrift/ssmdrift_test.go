package ssmdrift_test

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/orcabus/pdxmanager/cmd/internal/ssmdrift"
	"github.com/orcabus/pdxmanager/pdxcdk/pdxcdkparams"
)

// fakeClient serves parameters in pages of pageSize.
type fakeClient struct {
	params   []types.Parameter
	pageSize int
	err      error
	inputs   []*ssm.GetParametersByPathInput
}

func (f *fakeClient) GetParametersByPath(
	_ context.Context, in *ssm.GetParametersByPathInput, _ ...func(*ssm.Options),
) (*ssm.GetParametersByPathOutput, error) {
	f.inputs = append(f.inputs, in)
	if f.err != nil {
		return nil, f.err
	}

	start := 0
	if in.NextToken != nil {
		for i, p := range f.params {
			if aws.ToString(p.Name) == aws.ToString(in.NextToken) {
				start = i
			}
		}
	}
	end := min(start+f.pageSize, len(f.params))

	out := &ssm.GetParametersByPathOutput{Parameters: f.params[start:end]}
	if end < len(f.params) {
		out.NextToken = f.params[end].Name
	}
	return out, nil
}

func param(name, value string) types.Parameter {
	return types.Parameter{Name: aws.String(name), Value: aws.String(value)}
}

func TestFetch_Paginates(t *testing.T) {
	t.Parallel()

	client := &fakeClient{
		pageSize: 2,
		params: []types.Parameter{
			param("/root/a", "1"),
			param("/root/b", "2"),
			param("/root/c/d", "3"),
		},
	}

	live, err := ssmdrift.Fetch(context.Background(), client, "/root/")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := map[string]string{"/root/a": "1", "/root/b": "2", "/root/c/d": "3"}
	if !reflect.DeepEqual(live, want) {
		t.Errorf("Fetch() = %v, want %v", live, want)
	}
	if len(client.inputs) != 2 {
		t.Fatalf("expected 2 page requests, got %d", len(client.inputs))
	}
	first := client.inputs[0]
	if aws.ToString(first.Path) != "/root/" || !aws.ToBool(first.Recursive) {
		t.Errorf("request should be recursive under /root/, got path=%q recursive=%v",
			aws.ToString(first.Path), aws.ToBool(first.Recursive))
	}
}

func TestFetch_Error(t *testing.T) {
	t.Parallel()

	client := &fakeClient{pageSize: 1, err: errors.New("access denied")}
	_, err := ssmdrift.Fetch(context.Background(), client, "/root/")
	if err == nil {
		t.Fatalf("expected error but got nil")
	}
	if !strings.Contains(err.Error(), "/root/") || !strings.Contains(err.Error(), "access denied") {
		t.Errorf("error %q should name the root and the cause", err.Error())
	}
}

func TestCompare(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		expected map[string]string
		live     map[string]string
		want     ssmdrift.Report
		inSync   bool
	}{
		{
			name:     "in sync",
			expected: map[string]string{"/a": "1"},
			live:     map[string]string{"/a": "1"},
			inSync:   true,
		},
		{
			name:     "missing and extra",
			expected: map[string]string{"/a": "1", "/b": "2"},
			live:     map[string]string{"/b": "2", "/z": "9", "/y": "8"},
			want: ssmdrift.Report{
				Missing: []string{"/a"},
				Extra:   []string{"/y", "/z"},
			},
		},
		{
			name:     "changed",
			expected: map[string]string{"/a": "1", "/b": "2"},
			live:     map[string]string{"/a": "1", "/b": "3"},
			want: ssmdrift.Report{
				Changed: []ssmdrift.Change{{Name: "/b", Expected: "2", Actual: "3"}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := ssmdrift.Compare(tt.expected, tt.live)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Compare() = %+v, want %+v", got, tt.want)
			}
			if got.InSync() != tt.inSync {
				t.Errorf("InSync() = %v, want %v", got.InSync(), tt.inSync)
			}
		})
	}
}

func TestCheck(t *testing.T) {
	t.Parallel()

	set := pdxcdkparams.NewSet("/orcabus/workflows/pieriandx/")
	set.Put("workflow-name", "/orcabus/workflows/pieriandx/workflow_name", "pieriandx")
	set.Put("institution", "/orcabus/workflows/pieriandx/pieriandx_institution", "melbourne")

	client := &fakeClient{
		pageSize: 10,
		params: []types.Parameter{
			param("/orcabus/workflows/pieriandx/workflow_name", "pieriandx"),
			param("/orcabus/workflows/pieriandx/pieriandx_institution", "sydney"),
		},
	}

	report, err := ssmdrift.Check(context.Background(), client, set)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(report.Changed) != 1 || report.Changed[0].Actual != "sydney" {
		t.Errorf("expected one change to sydney, got %+v", report.Changed)
	}
	if aws.ToString(client.inputs[0].Path) != "/orcabus/workflows/pieriandx/" {
		t.Errorf("Check should read below the set root, got %q", aws.ToString(client.inputs[0].Path))
	}
}

func TestCheck_PresenceOnly(t *testing.T) {
	t.Parallel()

	set := pdxcdkparams.NewSet("/root/")
	set.Put("name", "/root/name", "pdx")
	set.Put("latest", "/root/schemas/x/latest", "unknown")
	set.Put("pending", "/root/schemas/y/latest", "unknown")

	client := &fakeClient{
		pageSize: 10,
		params: []types.Parameter{
			param("/root/name", "pdx"),
			param("/root/schemas/x/latest", `{"schemaVersion":"4"}`),
		},
	}

	report, err := ssmdrift.Check(context.Background(), client, set,
		"/root/schemas/x/latest", "/root/schemas/y/latest")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := ssmdrift.Report{Missing: []string{"/root/schemas/y/latest"}}
	if !reflect.DeepEqual(report, want) {
		t.Errorf("Check() = %+v, want %+v", report, want)
	}
}

func TestCheck_InvalidSet(t *testing.T) {
	t.Parallel()

	set := pdxcdkparams.NewSet("/root/")
	set.Put("outside", "/elsewhere/x", "1")

	client := &fakeClient{pageSize: 1}
	if _, err := ssmdrift.Check(context.Background(), client, set); err == nil {
		t.Fatalf("expected error but got nil")
	}
	if len(client.inputs) != 0 {
		t.Errorf("an invalid set should not reach SSM")
	}
}
