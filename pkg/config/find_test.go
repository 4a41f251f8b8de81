package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFinder(env map[string]string) *Finder {
	return &Finder{
		Getenv: func(k string) string { return env[k] },
		Home:   func() (string, error) { return "", errors.New("no home") },
	}
}

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(""), 0o644))
}

func TestFinder_Candidates(t *testing.T) {
	f := testFinder(map[string]string{"XDG_CONFIG_HOME": "/cfg", "XDG_DATA_HOME": "/data"})
	f.SystemDir = "/usr/share/statusbar"

	assert.Equal(t, []string{
		"bar",
		"bar.toml",
		"/cfg/statusbar/bar",
		"/cfg/statusbar/bar.toml",
		"/data/statusbar/bar",
		"/data/statusbar/bar.toml",
		"/usr/share/statusbar/bar",
		"/usr/share/statusbar/bar.toml",
	}, f.Candidates("bar", "", "toml"))

	assert.Equal(t, []string{"/abs/bar.yaml"}, f.Candidates("/abs/bar.yaml", "", "toml"))
	assert.Contains(t, f.Candidates("theme", "themes", "toml"), "/cfg/statusbar/themes/theme.toml")
}

func TestFinder_HomeFallback(t *testing.T) {
	f := &Finder{
		Getenv: func(string) string { return "" },
		Home:   func() (string, error) { return "/home/u", nil },
	}
	c := f.Candidates("config.toml", "", "toml")
	assert.Contains(t, c, "/home/u/.config/statusbar/config.toml")
	assert.Contains(t, c, "/home/u/.local/share/statusbar/config.toml")
}

func TestFinder_FindFile(t *testing.T) {
	dir := t.TempDir()
	cfgHome := filepath.Join(dir, "xdg-config")
	f := testFinder(map[string]string{"XDG_CONFIG_HOME": cfgHome})

	_, err := f.FindFile("bar", "", "toml")
	assert.ErrorIs(t, err, ErrNotFound)

	touch(t, filepath.Join(cfgHome, AppName, "bar.toml"))
	got, err := f.FindFile("bar", "", "toml")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(cfgHome, AppName, "bar.toml"), got)

	literal := filepath.Join(dir, "bar")
	touch(t, literal)
	got, err = f.FindFile(literal, "", "toml")
	require.NoError(t, err)
	assert.Equal(t, literal, got, "the literal identifier wins")

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "adir"), 0o755))
	_, err = f.FindFile(filepath.Join(dir, "adir"), "", "")
	assert.ErrorIs(t, err, ErrNotFound, "directories are not configuration files")
}
