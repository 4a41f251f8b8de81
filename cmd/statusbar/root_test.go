package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmd_Flags(t *testing.T) {
	cmd := newRootCmd()
	flags := cmd.Flags()

	noInit := flags.Lookup("no-init")
	require.NotNil(t, noInit)
	assert.True(t, noInit.Hidden)

	threads := flags.Lookup("threads")
	require.NotNil(t, threads)
	assert.Equal(t, "j", threads.Shorthand)
	assert.Equal(t, "2", threads.DefValue)

	config := flags.Lookup("config")
	require.NotNil(t, config)
	assert.Equal(t, "config.toml", config.DefValue)

	assert.NotNil(t, flags.Lookup("never-pause"))
	assert.NotNil(t, flags.Lookup("metrics-addr"))
}

func TestRootCmd_TooManyArgs(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"a.toml", "b.toml"})
	assert.Error(t, cmd.Execute())
}

func TestRootCmd_ConflictingConfig(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"-c", "a.toml", "b.toml"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "both as argument and with --config")
}

func TestRootCmd_InvalidThreads(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"-j", "0", "-"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--threads")
}
