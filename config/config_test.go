// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, dir, contents string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, fileName), []byte(contents), 0o644); err != nil {
		t.Fatalf("writing shdc.toml: %v", err)
	}
}

func TestLoadFindsFileInStartDir(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
[defaults]
slang = "glsl330:hlsl5"
format = "gcc"
byte_code = true
`)
	cfg, ok, err := Load(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatal("expected config to be found")
	}
	if cfg.Defaults.Slang != "glsl330:hlsl5" {
		t.Errorf("Slang = %q", cfg.Defaults.Slang)
	}
	if !cfg.Defaults.ByteCode {
		t.Error("expected ByteCode to be true")
	}
}

func TestLoadFindsFileInParentDir(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, `
[defaults]
slang = "metal_macos"
`)
	sub := filepath.Join(root, "a", "b", "c")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	cfg, ok, err := Load(sub)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatal("expected config to be found in an ancestor directory")
	}
	if cfg.Defaults.Slang != "metal_macos" {
		t.Errorf("Slang = %q", cfg.Defaults.Slang)
	}
}

func TestLoadReturnsFalseWhenAbsent(t *testing.T) {
	dir := t.TempDir()
	_, ok, err := Load(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatal("expected no config to be found")
	}
}

func TestSlangTagsSplitsAndTrims(t *testing.T) {
	d := Defaults{Slang: " glsl330 : hlsl5 :metal_macos"}
	got := d.SlangTags()
	want := []string{"glsl330", "hlsl5", "metal_macos"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("index %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSlangTagsEmpty(t *testing.T) {
	if got := (Defaults{}).SlangTags(); got != nil {
		t.Errorf("expected nil for an empty Slang field, got %v", got)
	}
}
