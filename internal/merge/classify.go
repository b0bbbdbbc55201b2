package merge

import (
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Class is the bucket a discovered file falls into.
type Class uint8

const (
	ClassIgnored Class = iota
	ClassComment
	ClassVersion
	ClassCode
)

func (c Class) String() string {
	switch c {
	case ClassIgnored:
		return "ignored"
	case ClassComment:
		return "comment"
	case ClassVersion:
		return "version"
	case ClassCode:
		return "code"
	default:
		return "unknown"
	}
}

const (
	sourceExt          = ".cs"
	generatedMarker    = "temporarygeneratedfile"
	suppressionsSuffix = "globalsuppressions.cs"
)

var assemblyInfoSuffixes = []string{"assemblyinfo.cs", "assemblyattributes.cs"}

// DiscoveredFile is one file found under the input directory.
type DiscoveredFile struct {
	Path string // абсолютный путь
	Name string
}

// NewDiscoveredFile builds a DiscoveredFile from an absolute path.
func NewDiscoveredFile(path string) DiscoveredFile {
	return DiscoveredFile{Path: path, Name: filepath.Base(path)}
}

// Rules are the classification inputs taken from the configuration.
type Rules struct {
	InputDir string
	// OutputPath is never classified as code so that re-runs stay stable
	// when the output lives inside the input tree.
	OutputPath          string
	Comments            []string
	Exclude             []string
	IncludeAssemblyInfo bool // incai
	IncludeVersions     bool // incav
	IncludeSuppressions bool // incgs
}

// Decision is a classification result with a short reason for logs.
type Decision struct {
	Class  Class
	Reason string
}

// Classifier decides the bucket of each discovered file. It is immutable
// and safe for concurrent use.
type Classifier struct {
	rules    Rules
	comments matcher
	exclude  matcher
}

// NewClassifier prepares the entry matchers of rules.
func NewClassifier(rules Rules) *Classifier {
	return &Classifier{
		rules:    rules,
		comments: newMatcher(rules.InputDir, rules.Comments),
		exclude:  newMatcher(rules.InputDir, rules.Exclude),
	}
}

// Classify applies the classification precedence to f.
func (c *Classifier) Classify(f DiscoveredFile) Decision {
	name := strings.ToLower(f.Name)

	if c.comments.match(f) {
		return Decision{Class: ClassComment, Reason: "comment file"}
	}
	if !strings.EqualFold(filepath.Ext(f.Name), sourceExt) {
		return Decision{Class: ClassIgnored, Reason: "not a source file"}
	}
	if strings.Contains(name, generatedMarker) {
		return Decision{Class: ClassIgnored, Reason: "generated file"}
	}
	if !c.rules.IncludeAssemblyInfo && hasAnySuffix(name, assemblyInfoSuffixes) {
		if c.rules.IncludeVersions {
			return Decision{Class: ClassVersion, Reason: "assembly info"}
		}
		return Decision{Class: ClassIgnored, Reason: "assembly info"}
	}
	if !c.rules.IncludeSuppressions && strings.HasSuffix(name, suppressionsSuffix) {
		return Decision{Class: ClassIgnored, Reason: "global suppressions"}
	}
	if c.exclude.match(f) {
		return Decision{Class: ClassIgnored, Reason: "excluded"}
	}
	if c.rules.OutputPath != "" && samePath(f.Path, c.rules.OutputPath) {
		return Decision{Class: ClassIgnored, Reason: "output file"}
	}
	return Decision{Class: ClassCode}
}

func hasAnySuffix(s string, suffixes []string) bool {
	for _, suf := range suffixes {
		if strings.HasSuffix(s, suf) {
			return true
		}
	}
	return false
}

func samePath(a, b string) bool {
	return strings.EqualFold(filepath.Clean(a), filepath.Clean(b))
}

// matcher сравнивает файл со списком записей: имя, полный путь,
// путь относительно входного каталога или glob-шаблон.
type matcher struct {
	inputDir string
	names    map[string]struct{} // имена и пути в нижнем регистре
	globs    []string
}

func newMatcher(inputDir string, entries []string) matcher {
	m := matcher{inputDir: inputDir, names: make(map[string]struct{}, len(entries)*2)}
	for _, e := range entries {
		e = NormalizeEntry(e)
		if e == "" {
			continue
		}
		if isGlob(e) {
			m.globs = append(m.globs, strings.ToLower(filepath.ToSlash(e)))
			continue
		}
		m.names[strings.ToLower(e)] = struct{}{}
		if !filepath.IsAbs(e) && inputDir != "" {
			m.names[strings.ToLower(filepath.Join(inputDir, e))] = struct{}{}
		}
	}
	return m
}

func (m matcher) match(f DiscoveredFile) bool {
	if _, ok := m.names[strings.ToLower(f.Name)]; ok {
		return true
	}
	if _, ok := m.names[strings.ToLower(filepath.Clean(f.Path))]; ok {
		return true
	}
	if len(m.globs) == 0 {
		return false
	}
	name := strings.ToLower(f.Name)
	rel := name
	if m.inputDir != "" {
		if r, err := filepath.Rel(m.inputDir, f.Path); err == nil {
			rel = strings.ToLower(filepath.ToSlash(r))
		}
	}
	for _, pattern := range m.globs {
		if ok, err := doublestar.Match(pattern, rel); err == nil && ok {
			return true
		}
		if ok, err := doublestar.Match(pattern, name); err == nil && ok {
			return true
		}
	}
	return false
}

func isGlob(s string) bool {
	return strings.ContainsAny(s, "*?[{")
}

// NormalizeEntry trims an option list entry and converts Windows
// separators so that entries like `..\LICENSE` work on every platform.
func NormalizeEntry(e string) string {
	e = strings.TrimSpace(e)
	if e == "" {
		return ""
	}
	if filepath.Separator != '\\' {
		e = strings.ReplaceAll(e, `\`, "/")
	}
	return filepath.Clean(filepath.FromSlash(e))
}
