package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Manifest describes several independent merges run by `csmerge batch`.
//
//	jobs = 4
//
//	[[merge]]
//	input  = "src/Lib"
//	output = "dist/Lib.cs"
//	[merge.options]
//	internalize = true
type Manifest struct {
	Path    string
	Jobs    int
	Entries []ManifestEntry
}

// ManifestEntry is one [[merge]] table. Input and Output are resolved
// against the manifest directory.
type ManifestEntry struct {
	Input   string
	Output  string
	Options map[string]string
}

type manifestFile struct {
	Jobs  int                 `toml:"jobs"`
	Merge []manifestFileEntry `toml:"merge"`
}

type manifestFileEntry struct {
	Input   string         `toml:"input"`
	Output  string         `toml:"output"`
	Options map[string]any `toml:"options"`
}

// LoadManifest reads and validates a batch manifest.
func LoadManifest(path string) (*Manifest, error) {
	var mf manifestFile
	meta, err := toml.DecodeFile(path, &mf)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("merge") || len(mf.Merge) == 0 {
		return nil, fmt.Errorf("%s: missing [[merge]]", path)
	}
	if mf.Jobs < 0 {
		return nil, fmt.Errorf("%s: jobs must not be negative", path)
	}

	root := filepath.Dir(path)
	m := &Manifest{Path: path, Jobs: mf.Jobs}
	for i, e := range mf.Merge {
		if strings.TrimSpace(e.Input) == "" {
			return nil, fmt.Errorf("%s: [[merge]] #%d: missing input", path, i+1)
		}
		if strings.TrimSpace(e.Output) == "" {
			return nil, fmt.Errorf("%s: [[merge]] #%d: missing output", path, i+1)
		}
		opts, err := optionValues(e.Options)
		if err != nil {
			return nil, fmt.Errorf("%s: [[merge]] #%d: %w", path, i+1, err)
		}
		m.Entries = append(m.Entries, ManifestEntry{
			Input:   resolveAgainst(root, e.Input),
			Output:  resolveAgainst(root, e.Output),
			Options: opts,
		})
	}
	return m, nil
}

func resolveAgainst(root, p string) string {
	p = filepath.FromSlash(strings.TrimSpace(p))
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(root, p)
}

// Builder returns a configuration builder for e. Entry options form the
// file layer; flags set on the returned builder still override them.
func (e ManifestEntry) Builder() *Builder {
	b := NewBuilder()
	b.SetPositional(e.Input, e.Output)
	b.DisableAutoLoad()
	for k, v := range e.Options {
		b.layers[layerFile][k] = v
	}
	return b
}
