package bincheck_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/orcabus/pdxmanager/cmd/internal/bincheck"
	"github.com/orcabus/pdxmanager/internal/testutil"
)

func TestRequire(t *testing.T) {
	t.Parallel()
	testutil.RequireBinary(t, "sh")

	c := bincheck.NewChecker()
	if err := c.Require("sh"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err := c.Require("sh", "pdx-no-such-binary", "pdx-also-missing")
	if !errors.Is(err, bincheck.ErrMissing) {
		t.Fatalf("expected ErrMissing, got %v", err)
	}
	if !strings.Contains(err.Error(), "pdx-no-such-binary, pdx-also-missing") {
		t.Errorf("error %q should list missing binaries", err.Error())
	}
	if strings.Contains(err.Error(), "sh,") {
		t.Errorf("error %q should not list sh", err.Error())
	}
}

func TestInPath_Cached(t *testing.T) {
	t.Parallel()

	c := bincheck.NewChecker()
	first := c.InPath("pdx-no-such-binary")
	if first || c.InPath("pdx-no-such-binary") != first {
		t.Errorf("InPath should be false and stable for a missing binary")
	}
}
