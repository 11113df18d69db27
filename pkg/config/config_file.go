package config

import (
	"fmt"
	"os"

	"github.com/GetPageSpeed/rpmbuilder/pkg/plugin"
	"github.com/GetPageSpeed/rpmbuilder/pkg/repos"
	"github.com/goccy/go-yaml"
)

var ErrExprPatternRequired = fmt.Errorf("user_agent pattern is required with the expr matcher")

const (
	MatcherGlob = "glob"
	MatcherExpr = "expr"
)

type Repo struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	BaseURL     string   `json:"baseurl" yaml:"baseurl"`
	Enabled     *bool    `json:"enabled" yaml:"enabled"` // defaults to true
	Proxy       string   `json:"proxy" yaml:"proxy"`
	HTTPHeaders []string `json:"http_headers" yaml:"http_headers"`
}

type UserAgentPlugin struct {
	Enabled *bool    `json:"enabled" yaml:"enabled"` // defaults to true
	Matcher string   `json:"matcher" yaml:"matcher"` // glob(default) or expr
	Pattern string   `json:"pattern" yaml:"pattern"`
	Headers []string `json:"headers" yaml:"headers"`
}

type Plugins struct {
	UserAgent *UserAgentPlugin `json:"user_agent" yaml:"user_agent"`
}

type ConfigFile struct {
	Repos   []*Repo `json:"repos" yaml:"repos"`
	Plugins Plugins `json:"plugins" yaml:"plugins"`
}

func ReadConfigFile(path string) (*ConfigFile, error) {
	yamlFile, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &ConfigFile{}
	if err := yaml.Unmarshal(yamlFile, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config file: %w", err)
	}

	return cfg, nil
}

func (c *ConfigFile) matcher() (repos.Matcher, error) {
	ua := c.Plugins.UserAgent
	if ua == nil {
		return repos.GlobMatcher{}, nil
	}
	switch ua.Matcher {
	case "", MatcherGlob:
		return repos.GlobMatcher{}, nil
	case MatcherExpr:
		m := &repos.ExprMatcher{}
		if ua.Enabled != nil && !*ua.Enabled {
			return m, nil
		}
		// the default pattern is a glob, so expr needs its own
		if ua.Pattern == "" {
			return nil, ErrExprPatternRequired
		}
		if err := m.Compile(ua.Pattern); err != nil {
			return nil, fmt.Errorf("invalid user_agent pattern: %w", err)
		}
		return m, nil
	default:
		return nil, fmt.Errorf("unknown matcher %q", ua.Matcher)
	}
}

// BuildDict creates the repo registry described by the config.
func (c *ConfigFile) BuildDict() (*repos.Dict, error) {
	m, err := c.matcher()
	if err != nil {
		return nil, err
	}

	d := repos.NewDict(m)
	for _, rc := range c.Repos {
		if rc == nil {
			continue
		}
		r := &repos.Repo{
			ID:      rc.ID,
			Name:    rc.Name,
			BaseURL: rc.BaseURL,
			Enabled: rc.Enabled == nil || *rc.Enabled,
			Proxy:   rc.Proxy,
		}
		r.SetHeaders(rc.HTTPHeaders)
		if err := d.Add(r); err != nil {
			return nil, fmt.Errorf("failed to add repo: %w", err)
		}
	}
	return d, nil
}

// UserAgentPlugin returns the configured user-agent hook, or nil when it is disabled.
func (c *ConfigFile) UserAgentPlugin() *plugin.UserAgent {
	ua := c.Plugins.UserAgent
	if ua == nil {
		return &plugin.UserAgent{}
	}
	if ua.Enabled != nil && !*ua.Enabled {
		return nil
	}
	return &plugin.UserAgent{
		Pattern: ua.Pattern,
		Headers: ua.Headers,
	}
}
