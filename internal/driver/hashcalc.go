package driver

import (
	"os"

	"github.com/vmihailenco/msgpack/v5"

	"csmerge/internal/config"
	"csmerge/internal/project"
	"csmerge/internal/trace"
)

// configKey is the part of the configuration that shapes the output.
type configKey struct {
	Schema      uint16
	InputDir    string
	OutputPath  string
	Internalize bool
	Exclude     []string
	ExcludeNs   []string
	Comments    []string
	Nullable    string
	Encoding    string
	EncodingBOM bool
	Symbols     []string
	IncAI       bool
	IncAV       bool
	IncGS       bool
	TopOnly     bool
	NoSonar     bool
	NoWarn      []string
	Newline     string
	Tabs        bool
}

// ConfigDigest hashes every option that affects the merged output.
func ConfigDigest(cfg config.Config) (project.Digest, error) {
	data, err := msgpack.Marshal(configKey{
		Schema:      diskCacheSchemaVersion,
		InputDir:    cfg.InputDir,
		OutputPath:  cfg.OutputPath,
		Internalize: cfg.Internalize,
		Exclude:     cfg.Exclude,
		ExcludeNs:   cfg.ExcludeNs,
		Comments:    cfg.Comments,
		Nullable:    cfg.Nullable,
		Encoding:    cfg.Encoding.Name,
		EncodingBOM: cfg.Encoding.HasBOM(),
		Symbols:     cfg.Symbols,
		IncAI:       cfg.IncludeAssemblyInfo,
		IncAV:       cfg.IncludeVersions,
		IncGS:       cfg.IncludeSuppressions,
		TopOnly:     cfg.TopOnly,
		NoSonar:     cfg.NoSonar,
		NoWarn:      cfg.NoWarn,
		Newline:     cfg.Newline,
		Tabs:        cfg.Tabs,
	})
	if err != nil {
		return project.Digest{}, err
	}
	return project.Sum(data), nil
}

// inputsDigest = H(config || H(path‖class) || raw ...). Порядок входов
// фиксирован обходом, поэтому ключ детерминирован.
func inputsDigest(cfgDigest project.Digest, inputs []*input) project.Digest {
	deps := make([]project.Digest, 0, len(inputs)*2)
	for _, in := range inputs {
		deps = append(deps, project.Sum([]byte(in.class.String()+"\x00"+in.path)), in.hash)
	}
	return project.Combine(cfgDigest, deps...)
}

// upToDate reports whether the cache recorded this exact merge and the
// output on disk still matches it. Cache failures count as a miss.
func (m *merger) upToDate() bool {
	if m.opts.Cache == nil {
		return false
	}
	cfgDigest, err := ConfigDigest(m.cfg)
	if err != nil {
		trace.Point(m.tracer, trace.ScopeStage, "cache", err.Error(), m.spanID)
		return false
	}
	m.key = inputsDigest(cfgDigest, m.inputs)

	var payload DiskPayload
	ok, err := m.opts.Cache.Get(m.key, &payload)
	if err != nil {
		trace.Point(m.tracer, trace.ScopeStage, "cache", err.Error(), m.spanID)
		return false
	}
	if !ok || payload.Schema != diskCacheSchemaVersion {
		return false
	}
	// #nosec G304 -- output path is the user's choice
	raw, err := os.ReadFile(m.cfg.OutputPath)
	if err != nil || project.Sum(raw) != payload.OutputHash {
		return false
	}
	m.res.OutputHash = payload.OutputHash
	m.res.Bytes = payload.Bytes
	m.res.Imports = payload.Imports
	m.res.Groups = payload.Groups
	trace.Point(m.tracer, trace.ScopeStage, "cache", "hit", m.spanID)
	return true
}

func (m *merger) store() {
	if m.opts.Cache == nil || m.key.IsZero() {
		return
	}
	payload := &DiskPayload{
		Schema:     diskCacheSchemaVersion,
		OutputPath: m.cfg.OutputPath,
		Encoding:   m.cfg.Encoding.Name,
		OutputHash: m.res.OutputHash,
		Bytes:      m.res.Bytes,
		Imports:    m.res.Imports,
		Groups:     m.res.Groups,
	}
	for _, in := range m.inputs {
		payload.FilePaths = append(payload.FilePaths, in.path)
		payload.FileHashes = append(payload.FileHashes, in.hash)
	}
	if err := m.opts.Cache.Put(m.key, payload); err != nil {
		trace.Point(m.tracer, trace.ScopeStage, "cache", err.Error(), m.spanID)
	}
}
