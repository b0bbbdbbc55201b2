package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"csmerge/internal/source"
)

// ErrUsage marks configuration errors caused by missing or malformed
// arguments; the CLI prints usage for it.
var ErrUsage = errors.New("usage")

// Config is the effective configuration of one merge. It is built once by
// Builder.Build and never mutated afterwards.
type Config struct {
	InputDir   string
	OutputPath string

	Internalize bool
	Exclude     []string
	ExcludeNs   []string
	Comments    []string
	// Nullable is the #nullable directive value; empty means no directive.
	Nullable string
	Encoding source.Encoding
	Symbols  []string

	IncludeAssemblyInfo bool
	IncludeVersions     bool
	IncludeSuppressions bool
	TopOnly             bool
	NoSonar             bool

	NoWarn  []string
	Newline string
	Tabs    bool

	// ConfigFile is the TOML file that contributed defaults, if any.
	ConfigFile string
}

type layer map[string]string

const (
	layerFile = iota
	layerLegacy
	layerFlags
	layerCount
)

// Builder collects option sources. Later layers override earlier ones
// regardless of the order the methods are called in.
type Builder struct {
	layers     [layerCount]layer
	positional []string
	configFile string
	noAutoLoad bool
}

func NewBuilder() *Builder {
	b := &Builder{}
	for i := range b.layers {
		b.layers[i] = layer{}
	}
	return b
}

// SetPositional sets the input directory and output file arguments.
func (b *Builder) SetPositional(input, output string) {
	b.positional = []string{input, output}
}

// Set records a command-line flag value.
func (b *Builder) Set(name, value string) error {
	return b.set(layerFlags, name, value)
}

func (b *Builder) set(l int, name, value string) error {
	canon, _, ok := lookupOption(name)
	if !ok {
		return fmt.Errorf("%w: unknown option %q", ErrUsage, name)
	}
	b.layers[l][canon] = value
	return nil
}

// SetConfigFile uses path instead of <input>/csmerge.toml.
func (b *Builder) SetConfigFile(path string) {
	b.configFile = path
}

// DisableAutoLoad stops Build from reading <input>/csmerge.toml.
func (b *Builder) DisableAutoLoad() {
	b.noAutoLoad = true
}

// Build validates the collected options and returns the configuration.
// It touches the file system only to resolve and check the input directory
// and to read the optional TOML file.
func (b *Builder) Build() (Config, error) {
	if len(b.positional) < 2 || strings.TrimSpace(b.positional[0]) == "" || strings.TrimSpace(b.positional[1]) == "" {
		return Config{}, fmt.Errorf("%w: expected <input-directory> <output-file>", ErrUsage)
	}
	input, err := filepath.Abs(b.positional[0])
	if err != nil {
		return Config{}, fmt.Errorf("failed to resolve input directory: %w", err)
	}
	info, err := os.Stat(input)
	if err != nil || !info.IsDir() {
		return Config{}, fmt.Errorf("%w: %s directory does not exist", ErrUsage, input)
	}
	output, err := filepath.Abs(b.positional[1])
	if err != nil {
		return Config{}, fmt.Errorf("failed to resolve output file: %w", err)
	}

	cfg := Config{InputDir: input, OutputPath: output}
	if err := b.loadFileLayer(&cfg); err != nil {
		return Config{}, err
	}
	if err := b.apply(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (b *Builder) loadFileLayer(cfg *Config) error {
	path := b.configFile
	if path == "" {
		if b.noAutoLoad {
			return nil
		}
		candidate := filepath.Join(cfg.InputDir, ProjectFile)
		if _, err := os.Stat(candidate); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil
			}
			return fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		path = candidate
	}
	values, err := LoadOptionsFile(path)
	if err != nil {
		return err
	}
	b.layers[layerFile] = values
	cfg.ConfigFile = path
	return nil
}

// lookup returns the value of name from the highest layer that sets it.
func (b *Builder) lookup(name string) (string, bool) {
	for i := layerCount - 1; i >= 0; i-- {
		if v, ok := b.layers[i][name]; ok {
			return v, true
		}
	}
	return "", false
}

func (b *Builder) boolOpt(name string, def bool) (bool, error) {
	v, ok := b.lookup(name)
	if !ok {
		return def, nil
	}
	if strings.TrimSpace(v) == "" {
		return true, nil // голый флаг: /incai
	}
	val, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return false, fmt.Errorf("%w: option %s: invalid boolean %q", ErrUsage, name, v)
	}
	return val, nil
}

func (b *Builder) listOpt(name, def string) []string {
	v, ok := b.lookup(name)
	if !ok {
		v = def
	}
	return SplitList(v)
}

func (b *Builder) stringOpt(name, def string) string {
	v, ok := b.lookup(name)
	if !ok {
		return def
	}
	return strings.TrimSpace(v)
}

func (b *Builder) apply(cfg *Config) error {
	var err error
	bools := []struct {
		name string
		def  bool
		dst  *bool
	}{
		{OptInternalize, false, &cfg.Internalize},
		{OptIncAI, false, &cfg.IncludeAssemblyInfo},
		{OptIncGS, false, &cfg.IncludeSuppressions},
		{OptTopOnly, false, &cfg.TopOnly},
		{OptNoSonar, true, &cfg.NoSonar},
		{OptTabs, false, &cfg.Tabs},
	}
	for _, o := range bools {
		if *o.dst, err = b.boolOpt(o.name, o.def); err != nil {
			return err
		}
	}
	// incav по умолчанию = !incai
	if cfg.IncludeVersions, err = b.boolOpt(OptIncAV, !cfg.IncludeAssemblyInfo); err != nil {
		return err
	}

	cfg.Exclude = b.listOpt(OptExclude, "")
	cfg.ExcludeNs = b.listOpt(OptExcludeNs, "")
	cfg.Comments = b.listOpt(OptComments, DefaultComments)
	cfg.Symbols = b.listOpt(OptSymbols, "")
	cfg.NoWarn = b.listOpt(OptNoWarn, DefaultNoWarn)
	cfg.Nullable = b.stringOpt(OptNullable, "")

	cfg.Newline = strings.ToLower(b.stringOpt(OptNewline, DefaultNewline))
	switch cfg.Newline {
	case "auto", "lf", "crlf":
	default:
		return fmt.Errorf("%w: option %s: want auto, lf or crlf, got %q", ErrUsage, OptNewline, cfg.Newline)
	}

	enc, err := source.LookupEncoding(b.stringOpt(OptEncoding, ""))
	if err != nil {
		return fmt.Errorf("%w: option %s: %w", ErrUsage, OptEncoding, err)
	}
	cfg.Encoding = enc
	return nil
}

// Clone returns a deep copy of c.
func (c Config) Clone() Config {
	c.Exclude = slices.Clone(c.Exclude)
	c.ExcludeNs = slices.Clone(c.ExcludeNs)
	c.Comments = slices.Clone(c.Comments)
	c.Symbols = slices.Clone(c.Symbols)
	c.NoWarn = slices.Clone(c.NoWarn)
	return c
}
