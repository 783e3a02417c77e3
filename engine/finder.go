// Package engine locates local Unreal Engine installations and their
// bundled Python runtime. The bridge itself only uses it to qualify the
// fatal diagnostic when no server answers; the engine-python command
// exposes it to launcher configurations that need an interpreter path.
package engine

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"sort"

	"github.com/sirupsen/logrus"
	"github.com/viant/afs"
)

// Install describes one engine installation.
type Install struct {
	Version Version
	Root    string
}

// Finder discovers engine installations through the Epic launcher manifest
// and well-known install roots. Every probe is best effort; a missing or
// malformed source is skipped, never raised.
type Finder struct {
	fs          afs.Service
	logger      *logrus.Logger
	systemFirst bool
	roots       []string
	manifests   []string
}

// Option customizes a Finder.
type Option func(*Finder)

// WithLogger replaces the diagnostic logger.
func WithLogger(logger *logrus.Logger) Option {
	return func(f *Finder) {
		f.logger = logger
	}
}

// WithSystemFirst prefers the system interpreter over engine bundled ones.
func WithSystemFirst(systemFirst bool) Option {
	return func(f *Finder) {
		f.systemFirst = systemFirst
	}
}

// WithInstallRoots replaces the well-known install roots.
func WithInstallRoots(roots ...string) Option {
	return func(f *Finder) {
		f.roots = roots
	}
}

// WithManifests replaces the launcher manifest candidates.
func WithManifests(manifests ...string) Option {
	return func(f *Finder) {
		f.manifests = manifests
	}
}

// New creates a finder.
func New(options ...Option) *Finder {
	ret := &Finder{
		fs:     afs.New(),
		logger: logrus.New(),
	}
	for _, option := range options {
		option(ret)
	}
	if ret.roots == nil {
		ret.roots = defaultRoots()
	}
	if ret.manifests == nil {
		ret.manifests = defaultManifests()
	}
	return ret
}

// manifestEntry is one record of the Epic launcher install registry.
type manifestEntry struct {
	InstallLocation string `json:"InstallLocation"`
	AppName         string `json:"AppName"`
}

type launcherManifest struct {
	InstallationList []manifestEntry `json:"InstallationList"`
}

// Installs returns the detected installations newest first, deduplicated
// by cleaned root path.
func (f *Finder) Installs(ctx context.Context) []Install {
	var installs []Install
	seen := map[string]bool{}
	add := func(root string, version Version) {
		cleaned := filepath.Clean(root)
		if cleaned == "" || seen[cleaned] {
			return
		}
		if !f.exists(ctx, cleaned) {
			return
		}
		seen[cleaned] = true
		installs = append(installs, Install{Root: cleaned, Version: version})
	}
	for _, manifest := range f.manifests {
		for _, entry := range f.launcherInstalls(ctx, manifest) {
			if version, ok := ParseVersion(entry.AppName); ok {
				add(entry.InstallLocation, version)
			}
		}
	}
	for _, root := range f.roots {
		objects, err := f.fs.List(ctx, root)
		if err != nil {
			f.logger.Debugf("engine: cannot list %v: %v", root, err)
			continue
		}
		for _, object := range objects {
			if !object.IsDir() {
				continue
			}
			if version, ok := ParseVersion(object.Name()); ok {
				add(filepath.Join(root, object.Name()), version)
			}
		}
	}
	sort.SliceStable(installs, func(i, j int) bool {
		return installs[j].Version.Less(installs[i].Version)
	})
	return installs
}

func (f *Finder) launcherInstalls(ctx context.Context, manifestPath string) []manifestEntry {
	data, err := f.fs.DownloadWithURL(ctx, manifestPath)
	if err != nil {
		f.logger.Debugf("engine: no launcher manifest at %v: %v", manifestPath, err)
		return nil
	}
	manifest := &launcherManifest{}
	if err := json.Unmarshal(data, manifest); err != nil {
		f.logger.Debugf("engine: malformed launcher manifest %v: %v", manifestPath, err)
		return nil
	}
	return manifest.InstallationList
}

func (f *Finder) exists(ctx context.Context, location string) bool {
	_, err := f.fs.Object(ctx, location)
	return err == nil
}

// defaultManifests returns the launcher install registry locations; the
// launcher does not exist on Linux.
func defaultManifests() []string {
	switch runtime.GOOS {
	case "windows":
		programData := os.Getenv("PROGRAMDATA")
		if programData == "" {
			programData = `C:\ProgramData`
		}
		return []string{filepath.Join(programData, "Epic", "UnrealEngineLauncher", "LauncherInstalled.dat")}
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return nil
		}
		return []string{filepath.Join(home, "Library", "Application Support", "Epic", "UnrealEngineLauncher", "LauncherInstalled.dat")}
	}
	return nil
}

// defaultRoots returns the conventional install parents scanned for
// UE_<version> directories.
func defaultRoots() []string {
	switch runtime.GOOS {
	case "windows":
		return []string{`C:\Program Files\Epic Games`}
	case "darwin":
		return []string{"/Users/Shared/Epic Games"}
	}
	return nil
}
