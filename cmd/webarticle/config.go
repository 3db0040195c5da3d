package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/pelletier/go-toml/v2"
)

// DefaultConfigPath returns $XDG_CONFIG_HOME/webarticle/config.toml, or
// the platform equivalent.
func DefaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "webarticle", "config.toml")
}

// TOMLLoader is a kong.ConfigurationLoader for TOML files.
//
// Top-level keys set flags for every command. A table named after a
// command sets flags for that command only and wins over top-level keys.
// Keys are flag names; underscores may stand in for dashes.
//
//	user_agent = "mybot/1.0"
//	cache = true
//
//	[batch]
//	concurrency = 8
func TOMLLoader(r io.Reader) (kong.Resolver, error) {
	values := map[string]any{}
	if err := toml.NewDecoder(r).Decode(&values); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return kong.ResolverFunc(func(kctx *kong.Context, parent *kong.Path, flag *kong.Flag) (any, error) {
		if cmd := selectedCommand(kctx); cmd != "" {
			if table, ok := values[cmd].(map[string]any); ok {
				if v, ok := lookup(table, flag.Name); ok {
					return v, nil
				}
			}
		}
		if v, ok := lookup(values, flag.Name); ok {
			return v, nil
		}
		return nil, nil
	}), nil
}

func selectedCommand(kctx *kong.Context) string {
	if kctx == nil {
		return ""
	}
	if node := kctx.Selected(); node != nil {
		return node.Name
	}
	return ""
}

// lookup returns the value of the flag called name as a string kong can
// parse. Tables never match a flag.
func lookup(values map[string]any, name string) (string, bool) {
	v, ok := values[name]
	if !ok {
		v, ok = values[strings.ReplaceAll(name, "-", "_")]
	}
	if !ok {
		return "", false
	}
	switch v := v.(type) {
	case map[string]any:
		return "", false
	case []any:
		parts := make([]string, len(v))
		for i, p := range v {
			parts[i] = fmt.Sprint(p)
		}
		return strings.Join(parts, ","), true
	default:
		return fmt.Sprint(v), true
	}
}
