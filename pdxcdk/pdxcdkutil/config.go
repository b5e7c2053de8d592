package pdxcdkutil

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
)

// DeployMode selects which half of the service an app synthesizes.
type DeployMode string

const (
	// DeployModeStateful synthesizes the long-lived resources: parameters and buckets.
	DeployModeStateful DeployMode = "stateful"
	// DeployModeStateless synthesizes functions, state machines and event wiring.
	DeployModeStateless DeployMode = "stateless"
)

// Scope-based convenience functions that retrieve Config from the construct tree.

// AppPath joins elems onto the application root.
func AppPath(scope constructs.Construct, elems ...string) string {
	return ConfigFromScope(scope).AppPath(elems...)
}

// NagEnabled reports whether the AwsSolutions checks are attached to stacks.
func NagEnabled(scope constructs.Construct) bool {
	return ConfigFromScope(scope).Nag
}

// ResourcePrefix returns the prefix of the service's physical resource names.
func ResourcePrefix(scope constructs.Construct) string {
	return ConfigFromScope(scope).ResourcePrefix
}

// Config holds all CDK context values validated upfront.
type Config struct {
	Prefix     string     `validate:"required"`
	DeployMode DeployMode `validate:"required,oneof=stateful stateless"`
	Stages     []string   `validate:"required,unique,dive,required"`
	Region     string     `validate:"required"`
	AppRoot    string     `validate:"required"`
	Nag        bool

	// From AppConfig (not context)
	Platform       string            `validate:"required,alpha"`
	Service        string            `validate:"required,alphanum"`
	ResourcePrefix string            `validate:"required"`
	Accounts       map[string]string `validate:"required,min=1,dive,len=12,numeric"`
}

// NewConfig reads and validates all CDK context values.
// Returns an error if any required value is missing or invalid.
func NewConfig(scope constructs.Construct, acfg AppConfig) (*Config, error) {
	var readErrs []string

	cfg := &Config{
		Prefix:         acfg.Prefix,
		Platform:       acfg.Platform,
		Service:        acfg.Service,
		ResourcePrefix: acfg.ResourcePrefix,
		Accounts:       acfg.Accounts,
	}

	var mode string
	mode, readErrs = readContextString(scope, acfg.Prefix+"deploy-mode", readErrs)
	cfg.DeployMode = DeployMode(mode)
	cfg.Stages, readErrs = readContextStringSlice(scope, acfg.Prefix+"stages", readErrs)
	cfg.Region, readErrs = readContextString(scope, acfg.Prefix+"region", readErrs)
	cfg.AppRoot, readErrs = readContextString(scope, acfg.Prefix+"app-root", readErrs)
	cfg.Nag = readOptionalContextBool(scope, acfg.Prefix+"nag")

	if cfg.Region != "" && !IsKnownRegion(cfg.Region) {
		readErrs = append(readErrs, fmt.Sprintf(
			"unknown region %q - add it to pdxcdkutil.RegionIdents", cfg.Region))
	}
	for _, ident := range cfg.Stages {
		if _, ok := acfg.Accounts[ident]; !ok {
			readErrs = append(readErrs, fmt.Sprintf(
				"unknown stage %q, expected one of %s", ident, strings.Join(knownStages(acfg.Accounts), ", ")))
		}
	}

	if len(readErrs) > 0 {
		return nil, errors.Errorf("CDK context read errors:\n  - %s", strings.Join(readErrs, "\n  - "))
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	if err := validate.Struct(cfg); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			msgs := make([]string, 0, len(validationErrs))
			for _, e := range validationErrs {
				msgs = append(msgs, formatValidationError(e))
			}
			return nil, errors.Errorf("CDK context validation errors:\n  - %s", strings.Join(msgs, "\n  - "))
		}
		return nil, errors.Wrap(err, "CDK context validation failed")
	}

	return cfg, nil
}

// Account returns the account a stage deploys into.
func (c *Config) Account(stageIdent string) string {
	acct, ok := c.Accounts[stageIdent]
	if !ok {
		panic(fmt.Sprintf("no account configured for stage %q", stageIdent))
	}
	return acct
}

// AppPath joins elems onto the application root.
func (c *Config) AppPath(elems ...string) string {
	return filepath.Join(append([]string{c.AppRoot}, elems...)...)
}

// IsStateful reports whether the app synthesizes the stateful stacks.
func (c *Config) IsStateful() bool {
	return c.DeployMode == DeployModeStateful
}

// configContextKey is the well-known key used to store validated Config in the construct tree.
const configContextKey = "__pdxcdkutil_config"

// StoreConfig stores a validated Config in the app's context so it can be retrieved
// anywhere in the construct tree via ConfigFromScope.
func StoreConfig(app awscdk.App, cfg *Config) {
	app.Node().SetContext(jsii.String(configContextKey), cfg)
}

// ConfigFromScope retrieves the validated Config from the construct tree.
// It panics if Config was not stored (i.e., SetupApp was not called).
func ConfigFromScope(scope constructs.Construct) *Config {
	val := scope.Node().TryGetContext(jsii.String(configContextKey))
	if val == nil {
		panic("pdxcdkutil.Config not found in construct tree - was SetupApp or StoreConfig called?")
	}
	cfg, ok := val.(*Config)
	if !ok {
		panic(fmt.Sprintf("pdxcdkutil.Config has unexpected type %T", val))
	}
	return cfg
}

func knownStages(accounts map[string]string) []string {
	idents := make([]string, 0, len(accounts))
	for ident := range accounts {
		idents = append(idents, ident)
	}
	slices.Sort(idents)
	return idents
}

func formatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", e.Field())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s] (got %q)", e.Field(), e.Param(), e.Value())
	case "unique":
		return fmt.Sprintf("%s must not contain duplicates (got %v)", e.Field(), e.Value())
	case "len", "numeric":
		return fmt.Sprintf("%s must be a 12 digit account id (got %q)", e.Field(), e.Value())
	default:
		return fmt.Sprintf("%s failed validation %q", e.Field(), e.Tag())
	}
}

func readContextString(scope constructs.Construct, key string, errs []string) (string, []string) {
	val := scope.Node().TryGetContext(jsii.String(key))
	if val == nil {
		return "", append(errs, fmt.Sprintf("context key %q is not set", key))
	}
	s, ok := val.(string)
	if !ok {
		return "", append(errs, fmt.Sprintf("context key %q must be a string, got %T", key, val))
	}
	return s, errs
}

// readContextStringSlice accepts a JSON array or, as passed with -c on the
// command line, a comma separated string.
func readContextStringSlice(scope constructs.Construct, key string, errs []string) ([]string, []string) {
	val := scope.Node().TryGetContext(jsii.String(key))
	if val == nil {
		return nil, append(errs, fmt.Sprintf("context key %q is not set", key))
	}

	if str, ok := val.(string); ok {
		var result []string
		for part := range strings.SplitSeq(str, ",") {
			if part = strings.TrimSpace(part); part != "" {
				result = append(result, part)
			}
		}
		return result, errs
	}

	slice, ok := val.([]any)
	if !ok {
		return nil, append(errs, fmt.Sprintf("context key %q must be an array, got %T", key, val))
	}

	result := make([]string, 0, len(slice))
	for i, v := range slice {
		s, ok := v.(string)
		if !ok {
			return nil, append(errs, fmt.Sprintf("context key %q[%d] must be a string, got %T", key, i, v))
		}
		result = append(result, s)
	}
	return result, errs
}

// readOptionalContextBool accepts a bool or the strings "true"/"false".
func readOptionalContextBool(scope constructs.Construct, key string) bool {
	val := scope.Node().TryGetContext(jsii.String(key))
	switch b := val.(type) {
	case bool:
		return b
	case string:
		return b == "true"
	default:
		return false
	}
}
