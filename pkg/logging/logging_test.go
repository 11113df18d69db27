package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rpmbuilder-ua.log")
	closer, err := Setup("debug", path)
	require.NoError(t, err)
	t.Cleanup(func() { logrus.SetOutput(os.Stderr) })

	assert.Equal(t, logrus.DebugLevel, logrus.GetLevel())
	logrus.Info("hello from test")
	require.NoError(t, closer.Close())

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "hello from test")
}

func TestSetup_Stderr(t *testing.T) {
	closer, err := Setup("warn", "")
	require.NoError(t, err)
	assert.NoError(t, closer.Close())
	assert.Equal(t, logrus.WarnLevel, logrus.GetLevel())
}

func TestSetup_InvalidLevel(t *testing.T) {
	_, err := Setup("loud", "")
	assert.Error(t, err)
}
