package config

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// LoadOptionsFile reads a csmerge.toml file of top-level option keys:
//
//	internalize = true
//	exclude     = ["Generated.cs", "obj/**"]
//	encoding    = 1252
func LoadOptionsFile(path string) (map[string]string, error) {
	raw := map[string]any{}
	if _, err := toml.DecodeFile(path, &raw); err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	values, err := optionValues(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return values, nil
}

// optionValues converts decoded TOML values into option strings.
func optionValues(raw map[string]any) (map[string]string, error) {
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make(map[string]string, len(raw))
	for _, key := range keys {
		name, k, ok := lookupOption(key)
		if !ok {
			return nil, fmt.Errorf("unknown option %q", key)
		}
		v, err := optionString(name, k, raw[key])
		if err != nil {
			return nil, err
		}
		out[name] = v
	}
	return out, nil
}

func optionString(name string, k kind, v any) (string, error) {
	switch val := v.(type) {
	case bool:
		if k != kindBool {
			return "", fmt.Errorf("option %s: unexpected boolean", name)
		}
		return strconv.FormatBool(val), nil
	case int64:
		if k == kindBool {
			return "", fmt.Errorf("option %s: expected boolean", name)
		}
		return strconv.FormatInt(val, 10), nil
	case string:
		if k == kindBool {
			return "", fmt.Errorf("option %s: expected boolean", name)
		}
		return val, nil
	case []any:
		if k != kindList {
			return "", fmt.Errorf("option %s: unexpected array", name)
		}
		parts := make([]string, 0, len(val))
		for _, item := range val {
			s, ok := item.(string)
			if !ok {
				return "", fmt.Errorf("option %s: array items must be strings", name)
			}
			parts = append(parts, s)
		}
		return strings.Join(parts, ";"), nil
	default:
		return "", fmt.Errorf("option %s: unsupported value %v", name, v)
	}
}
