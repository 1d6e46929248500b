// internal/config/runtime.go
//
// Process-level knobs read from the environment with caarlos0/env.
package config

import (
	"os"

	"github.com/caarlos0/env/v11"
)

// Selection is read before anything else.  It decides which files the run
// uses, so it is never re-read after the environment overlay.
type Selection struct {
	Mode string `env:"MODE"`
	Dir  string `env:"WEBSTACK_ENV_DIR"`
	Root string `env:"WEBSTACK_ROOT"`
}

// ReadSelection parses the selection variables.
func ReadSelection() (Selection, error) {
	var s Selection
	if err := env.Parse(&s); err != nil {
		return Selection{}, err
	}
	return s, nil
}

// ResolvedMode maps the MODE signal to a Mode.
func (s Selection) ResolvedMode() Mode { return ParseMode(s.Mode) }

// ResolvedDir returns the configuration directory for this run.
func (s Selection) ResolvedDir() string {
	if s.Dir != "" {
		return s.Dir
	}
	return DefaultDir()
}

// ResolvedRoot returns the directory logs are written under.
func (s Selection) ResolvedRoot() string {
	if s.Root != "" {
		return s.Root
	}
	wd, _ := os.Getwd()
	return wd
}

// Target is the AWS account the stacks deploy into.  It is read after the
// overlay so the secrets file may supply it.
type Target struct {
	DeployAccount  string `env:"CDK_DEPLOY_ACCOUNT"`
	DefaultAccount string `env:"CDK_DEFAULT_ACCOUNT"`
}

// ReadTarget parses the account variables.
func ReadTarget() (Target, error) {
	var t Target
	if err := env.Parse(&t); err != nil {
		return Target{}, err
	}
	return t, nil
}

// Account prefers CDK_DEPLOY_ACCOUNT over the toolkit's CDK_DEFAULT_ACCOUNT.
func (t Target) Account() string {
	if t.DeployAccount != "" {
		return t.DeployAccount
	}
	return t.DefaultAccount
}
