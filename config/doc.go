// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package config loads project-wide defaults for the sokol-shdc CLI
// from a "shdc.toml" file, so a project's usual --slang/--format/
// --byte-code choices don't need to be repeated on every invocation.
// The file is optional: Load walks upward from a starting directory
// looking for it the same way a project manifest is discovered, and
// reports its absence as a plain false rather than an error.
//
// Values found on the command line always take precedence over the
// file: config.Config only supplies fallbacks for flags the caller
// left unset.
package config
