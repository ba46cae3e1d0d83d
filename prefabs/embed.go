package prefabs

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Dir is the on-disk directory checked before the embedded defaults. Files
// found there win, so specs and scripts can be edited without rebuilding.
var Dir = "prefabs"

//go:embed *.yaml
var PrefabsFS embed.FS

//go:embed scripts/*.tengo
var ScriptsFS embed.FS

// layered resolves a name against Dir first and an embedded tree second.
type layered struct {
	embedded embed.FS
	clean    func(string) string
}

var (
	specFiles   = layered{embedded: PrefabsFS, clean: cleanSpecName}
	scriptFiles = layered{embedded: ScriptsFS, clean: cleanScriptName}
)

func (l layered) read(name string) ([]byte, error) {
	clean := l.clean(name)
	if !fs.ValidPath(clean) || clean == "." {
		return nil, fmt.Errorf("prefabs: invalid name %q", name)
	}
	if data, err := os.ReadFile(diskPath(clean)); err == nil {
		return data, nil
	}
	return l.embedded.ReadFile(clean)
}

func (l layered) origin(name string) (string, bool) {
	clean := l.clean(name)
	if p := diskPath(clean); fileExists(p) {
		return p, true
	}
	return "embedded:" + clean, false
}

// Load returns a spec file, preferring the disk copy under Dir.
func Load(name string) ([]byte, error) {
	return specFiles.read(name)
}

// LoadScript returns the source of a tengo input script, preferring the disk
// copy under Dir/scripts. The .tengo extension may be omitted.
func LoadScript(name string) ([]byte, error) {
	return scriptFiles.read(name)
}

// Origin reports where Load would read name from, and whether that is a disk
// override.
func Origin(name string) (string, bool) {
	return specFiles.origin(name)
}

// ScriptName returns the canonical name of a script, "scripts/<name>.tengo",
// as the watcher reports it. Any form LoadScript accepts maps to the same
// value.
func ScriptName(name string) string {
	return cleanScriptName(name)
}

func cleanSpecName(name string) string {
	s := filepath.ToSlash(name)
	s, _ = strings.CutPrefix(s, "prefabs/")
	return path.Clean(s)
}

func cleanScriptName(name string) string {
	s := strings.TrimPrefix(cleanSpecName(name), "scripts/")
	if path.Ext(s) == "" {
		s += ".tengo"
	}
	return path.Join("scripts", s)
}

func diskPath(clean string) string {
	return filepath.Join(Dir, filepath.FromSlash(clean))
}

func fileExists(p string) bool {
	info, err := os.Stat(p)
	return err == nil && !info.IsDir()
}
