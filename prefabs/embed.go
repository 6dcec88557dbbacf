package prefabs

import (
	"embed"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

//go:embed *.yaml scripts/*.tengo
var builtinFS embed.FS

// Source resolves prefab names against a directory on disk first and an
// embedded copy second, so edited files win without a rebuild. Only a
// missing disk file falls back; any other read error is returned.
type Source struct {
	Dir string
	FS  fs.FS
}

// Builtin reads from ./prefabs and the files compiled into the binary.
var Builtin = Source{Dir: "prefabs", FS: builtinFS}

func (s Source) ReadFile(name string) ([]byte, error) {
	if s.Dir != "" {
		data, err := os.ReadFile(s.DiskPath(name))
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}
	if s.FS == nil {
		return nil, fs.ErrNotExist
	}
	return fs.ReadFile(s.FS, name)
}

// DiskPath is where name would live on disk.
func (s Source) DiskPath(name string) string {
	return filepath.Join(s.Dir, filepath.FromSlash(name))
}

// Load reads a tuning prefab such as "arena.yaml".
func Load(name string) ([]byte, error) {
	return Builtin.ReadFile(cleanPrefabPath(name))
}

// LoadScript reads a wave script from scripts/.
func LoadScript(name string) ([]byte, error) {
	return Builtin.ReadFile(cleanScriptPath(name))
}

func cleanPrefabPath(path string) string {
	if path == "" {
		return ""
	}
	return strings.TrimPrefix(filepath.ToSlash(path), "prefabs/")
}

func cleanScriptPath(path string) string {
	if path == "" {
		return ""
	}
	s := cleanPrefabPath(path)
	s = strings.TrimPrefix(s, "scripts/")
	return "scripts/" + s
}
