package engine

import (
	"context"
	"errors"
	"os/exec"
	"path/filepath"
	"runtime"
)

// pythonRelPath returns the engine-relative interpreter location.
func pythonRelPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join("Engine", "Binaries", "ThirdParty", "Python3", "Win64", "python.exe")
	case "darwin":
		return filepath.Join("Engine", "Binaries", "ThirdParty", "Python3", "Mac", "bin", "python3")
	}
	return filepath.Join("Engine", "Binaries", "ThirdParty", "Python3", "Linux", "bin", "python3")
}

// PythonPath returns the bundled interpreter of an install when present.
func (f *Finder) PythonPath(ctx context.Context, install Install) (string, bool) {
	location := filepath.Join(install.Root, pythonRelPath())
	if !f.exists(ctx, location) {
		return "", false
	}
	return location, true
}

// FindPython resolves a Python interpreter, preferring the newest engine
// bundled one and falling back to the system installation on PATH. The
// SystemFirst option inverts the preference.
func (f *Finder) FindPython(ctx context.Context) (string, error) {
	if f.systemFirst {
		if location, ok := systemPython(); ok {
			return location, nil
		}
	}
	for _, install := range f.Installs(ctx) {
		if location, ok := f.PythonPath(ctx, install); ok {
			f.logger.Debugf("engine: using %v interpreter at %v", install.Version, location)
			return location, nil
		}
	}
	if !f.systemFirst {
		if location, ok := systemPython(); ok {
			return location, nil
		}
	}
	return "", errors.New("no python interpreter found")
}

func systemPython() (string, bool) {
	for _, name := range []string{"python3", "python"} {
		if location, err := exec.LookPath(name); err == nil {
			return location, true
		}
	}
	return "", false
}
