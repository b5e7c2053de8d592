// Package projcfg loads the pdx.toml project file.
package projcfg

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/cockroachdb/errors"
)

// ConfigFile is the name of the project file, looked up in the working
// directory and its parents.
const ConfigFile = "pdx.toml"

type Config struct {
	Root string    `toml:"-"`
	Cdk  CdkConfig `toml:"cdk"`
	App  AppConfig `toml:"app"`
}

type CdkConfig struct {
	Dir string `toml:"dir"`
}

// AppConfig locates the application tree holding function code, layers and
// state machine templates.
type AppConfig struct {
	Root string `toml:"root"`
}

// CdkDir is the absolute directory of the CDK app.
func (c *Config) CdkDir() string {
	return filepath.Join(c.Root, c.Cdk.Dir)
}

// AppRoot is the absolute application tree directory.
func (c *Config) AppRoot() string {
	if filepath.IsAbs(c.App.Root) {
		return c.App.Root
	}
	return filepath.Join(c.Root, c.App.Root)
}

// Load finds pdx.toml from the working directory upwards and parses it.
func Load() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	return LoadFrom(wd)
}

// LoadFrom finds pdx.toml from dir upwards and parses it.
func LoadFrom(dir string) (*Config, error) {
	root, err := findRoot(dir)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if _, err := toml.DecodeFile(filepath.Join(root, ConfigFile), &cfg); err != nil {
		return nil, errors.Wrapf(err, "parsing %s", ConfigFile)
	}

	cfg.Root = root

	if err := cfg.validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid %s", ConfigFile)
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Cdk.Dir == "" {
		return errors.New("cdk.dir is required")
	}
	if filepath.IsAbs(c.Cdk.Dir) {
		return errors.Newf("cdk.dir must be relative, got %q", c.Cdk.Dir)
	}
	if c.App.Root == "" {
		return errors.New("app.root is required")
	}
	return nil
}

func findRoot(dir string) (string, error) {
	for {
		if _, err := os.Stat(filepath.Join(dir, ConfigFile)); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.Newf("could not find %s in any parent directory", ConfigFile)
		}
		dir = parent
	}
}
