// Package lookupcheck verifies that the SNOMED CT lookup objects the
// functions read are present in a stage's lookup bucket.
package lookupcheck

import (
	"context"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/cockroachdb/errors"
	"github.com/orcabus/pdxmanager/infra/stage"
)

// Client is the subset of the S3 API used to check objects.
type Client interface {
	s3.HeadObjectAPIClient
}

// Status is the outcome of probing one object.
type Status string

const (
	StatusPresent Status = "present"
	StatusMissing Status = "missing"
	StatusError   Status = "error"
)

// Result describes one checked object.
type Result struct {
	URI    string `json:"uri"             yaml:"uri"`
	Status Status `json:"status"          yaml:"status"`
	Size   int64  `json:"size,omitempty"  yaml:"size,omitempty"`
	Error  string `json:"error,omitempty" yaml:"error,omitempty"`
}

// Location is a parsed s3:// URI.
type Location struct {
	Bucket string
	Key    string
}

// ParseURI splits an s3://bucket/key URI.
func ParseURI(uri string) (Location, error) {
	rest, ok := strings.CutPrefix(uri, "s3://")
	if !ok {
		return Location{}, errors.Newf("%q is not an s3:// URI", uri)
	}
	bucket, key, _ := strings.Cut(rest, "/")
	if bucket == "" || key == "" {
		return Location{}, errors.Newf("%q needs both a bucket and a key", uri)
	}
	return Location{Bucket: bucket, Key: key}, nil
}

// StageURIs returns the lookup objects of a stage.
func StageURIs(n stage.Name) []string {
	values := stage.GetSsmParameterValues(n)
	return []string{values.SnomedSpecimenTypeS3Path, values.SnomedDiseaseTreeS3Path}
}

// Check issues a HEAD request per URI. Failures are reported per object; only a
// malformed URI fails the whole check.
func Check(ctx context.Context, client Client, uris []string) ([]Result, error) {
	results := make([]Result, 0, len(uris))
	for _, uri := range uris {
		loc, err := ParseURI(uri)
		if err != nil {
			return nil, err
		}

		out, err := client.HeadObject(ctx, &s3.HeadObjectInput{
			Bucket: aws.String(loc.Bucket),
			Key:    aws.String(loc.Key),
		})

		var notFound *types.NotFound
		switch {
		case errors.As(err, &notFound):
			results = append(results, Result{URI: uri, Status: StatusMissing})
		case err != nil:
			results = append(results, Result{URI: uri, Status: StatusError, Error: err.Error()})
		default:
			results = append(results, Result{URI: uri, Status: StatusPresent, Size: aws.ToInt64(out.ContentLength)})
		}
	}
	return results, nil
}

// AllPresent reports whether every result is StatusPresent.
func AllPresent(results []Result) bool {
	for _, r := range results {
		if r.Status != StatusPresent {
			return false
		}
	}
	return true
}
