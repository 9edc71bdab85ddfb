package config

import (
	"fmt"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Environ returns the settings from the environment.
func Environ() (*Config, error) {
	cfg := Config{}
	err := envconfig.Process("", &cfg)
	if err != nil {
		return nil, err
	}

	return &cfg, cfg.Validate()
}

// Validate fails fast on configuration errors, before any network call.
func (c *Config) Validate() error {
	if c.Repo == "" {
		return fmt.Errorf("REPO environment variable is mandatory")
	}
	if _, _, err := c.RepoOwnerAndName(); err != nil {
		return err
	}
	if c.SHA == "" {
		return fmt.Errorf("PR_HEAD_SHA environment variable is mandatory")
	}
	if c.Token == "" {
		return fmt.Errorf("GH_TOKEN environment variable is mandatory")
	}
	if c.RequiredContext == "" {
		return fmt.Errorf("REQUIRED_CONTEXT environment variable is mandatory")
	}

	return nil
}

// RepoOwnerAndName splits the owner/name repository identifier.
func (c *Config) RepoOwnerAndName() (string, string, error) {
	parts := strings.SplitN(c.Repo, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("REPO must be in owner/name format, got %q", c.Repo)
	}
	return parts[0], parts[1], nil
}

// String returns the configuration in string format.
func (c *Config) String() string {
	toDump := *c
	if toDump.Token != "" {
		toDump.Token = "***"
	}
	out, _ := yaml.Marshal(toDump)
	return string(out)
}

type Config struct {
	Logging         Logging
	Repo            string `envconfig:"REPO"`
	SHA             string `envconfig:"PR_HEAD_SHA"`
	Token           string `envconfig:"GH_TOKEN"`
	RequiredContext string `envconfig:"REQUIRED_CONTEXT"`
	WaitSeconds     int    `envconfig:"LOCAL_STATUS_WAIT_SECS" default:"900"`
	PollSeconds     int    `envconfig:"LOCAL_STATUS_POLL_SECS" default:"10"`
}

// Logging provides the logging configuration.
type Logging struct {
	Debug  bool `envconfig:"DEBUG"`
	Trace  bool `envconfig:"TRACE"`
	Color  bool `envconfig:"LOGS_COLOR"`
	Pretty bool `envconfig:"LOGS_PRETTY"`
	Text   bool `envconfig:"LOGS_TEXT"`
}
