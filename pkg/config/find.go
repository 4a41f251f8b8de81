package config

import (
	"errors"
	"os"
	"path/filepath"
)

// AppName is the directory name used under the XDG and system locations.
const AppName = "statusbar"

// ErrNotFound is returned by FindFile when no candidate exists.
var ErrNotFound = errors.New("file not found")

// Finder resolves file names against the usual search locations.
// The zero value is not usable; use NewFinder.
type Finder struct {
	Getenv    func(string) string
	Home      func() (string, error)
	SystemDir string
}

// NewFinder returns a Finder reading the process environment.
func NewFinder() *Finder {
	return &Finder{
		Getenv:    os.Getenv,
		Home:      os.UserHomeDir,
		SystemDir: filepath.Join("/usr/share", AppName),
	}
}

// FindFile returns the first existing candidate for name, trying in order:
// name as given, name with ext appended if it has no extension, then the
// same under $XDG_CONFIG_HOME/statusbar[/subdir], $XDG_DATA_HOME/statusbar[/subdir]
// and the system directory.
func (f *Finder) FindFile(name, subdir, ext string) (string, error) {
	for _, candidate := range f.Candidates(name, subdir, ext) {
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
	}
	return "", ErrNotFound
}

// Candidates lists the paths FindFile checks, in order.
func (f *Finder) Candidates(name, subdir, ext string) []string {
	names := []string{name}
	if ext != "" && filepath.Ext(name) == "" {
		names = append(names, name+"."+ext)
	}

	out := append([]string(nil), names...)
	if filepath.IsAbs(name) {
		return out
	}

	for _, dir := range f.searchDirs() {
		if subdir != "" {
			dir = filepath.Join(dir, subdir)
		}
		for _, n := range names {
			out = append(out, filepath.Join(dir, n))
		}
	}
	return out
}

func (f *Finder) searchDirs() []string {
	var dirs []string
	home := ""
	if f.Home != nil {
		home, _ = f.Home()
	}

	configHome := f.Getenv("XDG_CONFIG_HOME")
	if configHome == "" && home != "" {
		configHome = filepath.Join(home, ".config")
	}
	if configHome != "" {
		dirs = append(dirs, filepath.Join(configHome, AppName))
	}

	dataHome := f.Getenv("XDG_DATA_HOME")
	if dataHome == "" && home != "" {
		dataHome = filepath.Join(home, ".local", "share")
	}
	if dataHome != "" {
		dirs = append(dirs, filepath.Join(dataHome, AppName))
	}

	if f.SystemDir != "" {
		dirs = append(dirs, f.SystemDir)
	}
	return dirs
}
