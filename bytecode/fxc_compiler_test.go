// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

//go:build windows

package bytecode

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mothfuzz/sokol-shdc/cross"
)

// fakeFxc writes a batch script standing in for fxc.exe that always
// reports one compile error and exits non-zero, the same shape a real
// HLSL syntax error produces.
func fakeFxc(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "fxc.bat")
	script := "@echo off\r\necho shader.hlsl(3,5): error X3004: undeclared identifier 'foo'\r\nexit /b 1\r\n"
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatalf("writing fake fxc.exe: %v", err)
	}
	return path
}

// TestCompileBytecodeReturnsDiagnosticsNotErrOnCompileFailure guards
// the contract CompileBytecode must share with
// spirvc.ShadercCompiler.CompileToSPIRV: a tool-reported compile
// failure comes back as (nil, diags, nil), not a non-nil err that
// would make bytecode.Compile skip the diagnostics entirely.
func TestCompileBytecodeReturnsDiagnosticsNotErrOnCompileFailure(t *testing.T) {
	c := &FxcCompiler{binPath: fakeFxc(t), workDir: t.TempDir()}
	defer c.Close()

	data, diags, err := c.CompileBytecode("float4 main() : SV_Target { return foo; }", cross.StageFragment, cross.HLSL5)
	if err != nil {
		t.Fatalf("expected a nil err on a tool-reported compile failure, got %v", err)
	}
	if data != nil {
		t.Errorf("expected no bytecode data on failure, got %d bytes", len(data))
	}
	if len(diags) != 1 {
		t.Fatalf("expected exactly one diagnostic, got %d: %+v", len(diags), diags)
	}
	if diags[0].Line != 3 {
		t.Errorf("diagnostic line = %d, want 3", diags[0].Line)
	}
	if !strings.Contains(diags[0].Message, "X3004") {
		t.Errorf("diagnostic message = %q, want it to contain X3004", diags[0].Message)
	}
}
