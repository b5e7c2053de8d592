// Package bincheck verifies that the external tools a command shells out to
// are installed.
package bincheck

import (
	"os/exec"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"
)

// ErrMissing is returned when a required binary is not on PATH.
var ErrMissing = errors.New("required binaries not found on PATH")

// Checker looks up binaries once and caches the answer.
type Checker struct {
	cache sync.Map
}

func NewChecker() *Checker {
	return &Checker{}
}

// InPath reports whether name resolves on PATH.
func (c *Checker) InPath(name string) bool {
	if v, ok := c.cache.Load(name); ok {
		found, _ := v.(bool)
		return found
	}
	_, err := exec.LookPath(name)
	actual, _ := c.cache.LoadOrStore(name, err == nil)
	found, _ := actual.(bool)
	return found
}

// Require fails with ErrMissing naming every binary that is not on PATH.
func (c *Checker) Require(names ...string) error {
	var missing []string
	for _, name := range names {
		if !c.InPath(name) {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return errors.Wrapf(ErrMissing, "%s", strings.Join(missing, ", "))
	}
	return nil
}
