// Package pdxcdksfn builds state machines from ASL templates with
// placeholder substitution.
//
// Templates reference deploy-time values as ${__name__} tokens. CloudFormation
// performs the substitution; this package checks ahead of synthesis that every
// token in a template has a value, so a typo fails the build instead of the
// deployment.
package pdxcdksfn

import (
	"os"
	"regexp"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
)

var placeholderRe = regexp.MustCompile(`\$\{(__[a-z0-9]+(?:_[a-z0-9]+)*__)\}`)

// ErrUnresolved is returned when a template references a placeholder that
// has no substitution.
var ErrUnresolved = errors.New("unresolved placeholders")

// Template is a parsed ASL template.
type Template struct {
	name         string
	body         string
	placeholders []string
}

// ParseTemplate parses body. The name is used in error messages.
func ParseTemplate(name, body string) *Template {
	seen := map[string]bool{}
	var names []string
	for _, m := range placeholderRe.FindAllStringSubmatch(body, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			names = append(names, m[1])
		}
	}
	slices.Sort(names)
	return &Template{name: name, body: body, placeholders: names}
}

// LoadTemplate reads and parses the template file at path.
func LoadTemplate(path string) (*Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading state machine template")
	}
	return ParseTemplate(path, string(data)), nil
}

// Name returns the template's name.
func (t *Template) Name() string {
	return t.name
}

// Placeholders returns the sorted, unique placeholder names in the template,
// e.g. "__draft_status__".
func (t *Template) Placeholders() []string {
	return slices.Clone(t.placeholders)
}

// Unresolved returns the placeholders without a key in subs.
func (t *Template) Unresolved(subs map[string]string) []string {
	var missing []string
	for _, p := range t.placeholders {
		if _, ok := subs[p]; !ok {
			missing = append(missing, p)
		}
	}
	return missing
}

// Validate fails listing every placeholder without a substitution. Keys in
// subs that the template does not reference are allowed.
func (t *Template) Validate(subs map[string]string) error {
	missing := t.Unresolved(subs)
	if len(missing) == 0 {
		return nil
	}
	return errors.Wrapf(ErrUnresolved, "template %s:\n  - %s", t.name, strings.Join(missing, "\n  - "))
}

// Render substitutes every placeholder. It is meant for previews; deployed
// state machines are substituted by CloudFormation.
func (t *Template) Render(subs map[string]string) (string, error) {
	if err := t.Validate(subs); err != nil {
		return "", err
	}
	return placeholderRe.ReplaceAllStringFunc(t.body, func(tok string) string {
		return subs[tok[2:len(tok)-1]]
	}), nil
}
