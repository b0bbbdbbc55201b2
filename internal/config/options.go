package config

import "strings"

type kind uint8

const (
	kindBool kind = iota
	kindList
	kindString
)

// Option names as accepted on the command line and in csmerge.toml.
const (
	OptInternalize = "internalize"
	OptExclude     = "exclude"
	OptExcludeNs   = "excludeNs"
	OptComments    = "comments"
	OptNullable    = "nullable"
	OptEncoding    = "encoding"
	OptSymbols     = "symbols"
	OptIncAI       = "incai"
	OptIncAV       = "incav"
	OptIncGS       = "incgs"
	OptTopOnly     = "toponly"
	OptNoSonar     = "nosonar"
	OptNoWarn      = "nowarn"
	OptNewline     = "newline"
	OptTabs        = "tabs"
)

var optionKinds = map[string]kind{
	OptInternalize: kindBool,
	OptExclude:     kindList,
	OptExcludeNs:   kindList,
	OptComments:    kindList,
	OptNullable:    kindString,
	OptEncoding:    kindString,
	OptSymbols:     kindList,
	OptIncAI:       kindBool,
	OptIncAV:       kindBool,
	OptIncGS:       kindBool,
	OptTopOnly:     kindBool,
	OptNoSonar:     kindBool,
	OptNoWarn:      kindList,
	OptNewline:     kindString,
	OptTabs:        kindBool,
}

// canonical maps lower-cased option names to their canonical spelling.
var canonical = func() map[string]string {
	m := make(map[string]string, len(optionKinds))
	for name := range optionKinds {
		m[strings.ToLower(name)] = name
	}
	return m
}()

// lookupOption resolves an option name case-insensitively.
func lookupOption(name string) (string, kind, bool) {
	c, ok := canonical[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return "", 0, false
	}
	return c, optionKinds[c], true
}

// IsOption reports whether name is a recognized option.
func IsOption(name string) bool {
	_, _, ok := lookupOption(name)
	return ok
}

// Defaults.
const (
	DefaultComments = `..\LICENSE`
	DefaultNoWarn   = "IDE0130;IDE0161"
	DefaultNewline  = "auto"
	// ProjectFile is looked up in the input directory when no --config is given.
	ProjectFile = "csmerge.toml"
)

// SplitList splits a ';'-separated option value, trimming entries and
// dropping empty ones.
func SplitList(value string) []string {
	var out []string
	for part := range strings.SplitSeq(value, ";") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
