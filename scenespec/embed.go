package scenespec

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

//go:embed scripts/*.tengo
var ScriptsFS embed.FS

//go:embed *.yaml
var ScenesFS embed.FS

// LoadScript reads a placement script, preferring the copy on disk.
func LoadScript(name string) ([]byte, error) {
	clean := cleanScriptPath(name)
	if data, err := os.ReadFile(diskScenePath(clean)); err == nil {
		return data, nil
	}
	if data, err := os.ReadFile(name); err == nil {
		return data, nil
	}
	return ScriptsFS.ReadFile(clean)
}

// Load reads a scene file from scenespec/ on disk, then from the given path,
// then from the embedded copies.
func Load(name string) ([]byte, error) {
	clean := cleanScenePath(name)
	if data, err := os.ReadFile(diskScenePath(clean)); err == nil {
		return data, nil
	}
	if data, err := os.ReadFile(name); err == nil {
		return data, nil
	}
	return ScenesFS.ReadFile(clean)
}

func ModTime(name string) (time.Time, bool) {
	clean := cleanScenePath(name)
	info, err := os.Stat(diskScenePath(clean))
	if err != nil {
		info, err = os.Stat(name)
	}
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime(), true
}

func cleanScenePath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	if after, ok := strings.CutPrefix(s, "scenespec/"); ok {
		return after
	}
	return s
}

func cleanScriptPath(path string) string {
	if path == "" {
		return ""
	}

	s := filepath.ToSlash(path)

	if after, ok := strings.CutPrefix(s, "scenespec/scripts/"); ok {
		s = after
	}

	if after, ok := strings.CutPrefix(s, "scenespec/"); ok {
		s = after
	}

	if after, ok := strings.CutPrefix(s, "scripts/"); ok {
		s = after
	}

	return fmt.Sprintf("scripts/%s", s)
}

func diskScenePath(clean string) string {
	return filepath.Join("scenespec", filepath.FromSlash(clean))
}
