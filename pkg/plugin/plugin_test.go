package plugin

import (
	"errors"
	"testing"

	"github.com/GetPageSpeed/rpmbuilder/pkg/repos"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type funcPlugin struct {
	name string
	fn   func(rs *repos.Dict) error
}

func (p *funcPlugin) Name() string { return p.name }

func (p *funcPlugin) Config(rs *repos.Dict) error { return p.fn(rs) }

func TestRegistry_Register(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(&UserAgent{}))

	err := r.Register(&UserAgent{Pattern: "other"})
	assert.ErrorIs(t, err, ErrDuplicatePlugin)

	err = r.Register(&funcPlugin{name: ""})
	assert.ErrorIs(t, err, ErrEmptyPluginName)

	assert.Equal(t, []string{"rpmbuilder_ua"}, r.Names())
}

func TestRegistry_ConfigureRunsInOrder(t *testing.T) {
	var calls []string
	r := NewRegistry()
	for _, name := range []string{"first", "second"} {
		name := name
		require.NoError(t, r.Register(&funcPlugin{name: name, fn: func(rs *repos.Dict) error {
			calls = append(calls, name)
			return nil
		}}))
	}
	require.NoError(t, r.Register(&UserAgent{}))

	d := repos.NewDict(nil)
	require.NoError(t, d.Add(&repos.Repo{ID: "getpagespeed"}))
	require.NoError(t, r.Configure(d))

	assert.Equal(t, []string{"first", "second"}, calls)
	gps, _ := d.Get("getpagespeed")
	assert.Equal(t, DefaultHeaders, gps.Headers())
}

func TestRegistry_ConfigureStopsOnError(t *testing.T) {
	boom := errors.New("boom")
	called := false
	r := NewRegistry()
	require.NoError(t, r.Register(&funcPlugin{name: "failing", fn: func(rs *repos.Dict) error { return boom }}))
	require.NoError(t, r.Register(&funcPlugin{name: "after", fn: func(rs *repos.Dict) error {
		called = true
		return nil
	}}))

	err := r.Configure(repos.NewDict(nil))
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "failing")
	assert.False(t, called)
}
