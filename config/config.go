// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const fileName = "shdc.toml"

// Defaults holds the project-wide fallback values for CLI flags.
type Defaults struct {
	// Slang is a colon-separated dialect tag list, e.g. "glsl330:hlsl5".
	Slang string `toml:"slang"`
	// Format is "gcc" or "msvc".
	Format string `toml:"format"`
	// ByteCode enables the vendor bytecode stage by default.
	ByteCode bool `toml:"byte_code"`
	// NoIfdef disables preprocessor-conditional wrapping by default.
	NoIfdef bool `toml:"no_ifdef"`
	// GenVersion is stamped into generated headers when set.
	GenVersion string `toml:"gen_version"`
}

// Config is the parsed contents of a shdc.toml file.
type Config struct {
	Path     string
	Root     string
	Defaults Defaults `toml:"defaults"`
}

// find walks upward from startDir looking for a shdc.toml file,
// following the same find-upward-to-project-root idiom used to locate
// surge.toml.
func find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("config: resolving start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, fileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("config: stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load searches upward from startDir for shdc.toml and parses it. The
// second return value is false, with a nil error, when no file is
// found — this is the expected common case, not a failure.
func Load(startDir string) (Config, bool, error) {
	path, ok, err := find(startDir)
	if err != nil || !ok {
		return Config{}, ok, err
	}
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, true, fmt.Errorf("config: %s: %w", path, err)
	}
	cfg.Path = path
	cfg.Root = filepath.Dir(path)
	return cfg, true, nil
}

// SlangTags splits Defaults.Slang the same way --slang is split,
// trimming blanks.
func (d Defaults) SlangTags() []string {
	if strings.TrimSpace(d.Slang) == "" {
		return nil
	}
	var tags []string
	for _, t := range strings.Split(d.Slang, ":") {
		t = strings.TrimSpace(t)
		if t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
