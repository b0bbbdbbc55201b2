package config

import (
	"fmt"
	"strings"
)

// ParseArgs splits raw arguments into positionals and legacy option tokens
// of the form "/name" or "/name:value". A token is an option only when
// name is a recognized option, so absolute paths stay positional.
func (b *Builder) ParseArgs(args []string) error {
	var positional []string
	for _, arg := range args {
		name, value, ok := legacyToken(arg)
		if !ok {
			positional = append(positional, arg)
			continue
		}
		if err := b.set(layerLegacy, name, value); err != nil {
			return err
		}
	}
	switch len(positional) {
	case 0:
	case 1:
		b.positional = []string{positional[0], ""}
	case 2:
		b.positional = positional
	default:
		return fmt.Errorf("%w: unexpected argument %q", ErrUsage, positional[2])
	}
	return nil
}

func legacyToken(arg string) (name, value string, ok bool) {
	if !strings.HasPrefix(arg, "/") {
		return "", "", false
	}
	name, value, _ = strings.Cut(arg[1:], ":")
	if !IsOption(name) {
		return "", "", false
	}
	return name, value, true
}
