// Package plugin runs configuration hooks against the repo registry.
package plugin

import (
	"fmt"
	"sync"

	"github.com/GetPageSpeed/rpmbuilder/pkg/repos"
	"github.com/sirupsen/logrus"
)

// Plugin is a hook invoked once during the configuration phase,
// after repos are loaded and before any request is sent.
type Plugin interface {
	Name() string
	Config(repos *repos.Dict) error
}

var (
	ErrEmptyPluginName = fmt.Errorf("plugin name is empty")
	ErrDuplicatePlugin = fmt.Errorf("duplicate plugin")
)

type Registry struct {
	mu      sync.Mutex
	plugins []Plugin
	names   map[string]struct{}
}

func NewRegistry() *Registry {
	return &Registry{names: make(map[string]struct{})}
}

func (r *Registry) Register(p Plugin) error {
	name := p.Name()
	if name == "" {
		return ErrEmptyPluginName
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.names[name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicatePlugin, name)
	}
	r.names[name] = struct{}{}
	r.plugins = append(r.plugins, p)
	return nil
}

// Names returns plugin names in registration order.
func (r *Registry) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, 0, len(r.plugins))
	for _, p := range r.plugins {
		names = append(names, p.Name())
	}
	return names
}

// Configure calls Config on every plugin in registration order and stops at the first error.
func (r *Registry) Configure(rs *repos.Dict) error {
	r.mu.Lock()
	plugins := append([]Plugin{}, r.plugins...)
	r.mu.Unlock()

	for _, p := range plugins {
		logrus.Debugf("[plugin] configuring %s", p.Name())
		if err := p.Config(rs); err != nil {
			logrus.Errorf("[plugin] %s config error: %s", p.Name(), err.Error())
			return fmt.Errorf("plugin %s: %w", p.Name(), err)
		}
	}
	return nil
}
