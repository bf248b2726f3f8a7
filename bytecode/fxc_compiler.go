// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

//go:build windows

package bytecode

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/mothfuzz/sokol-shdc/cross"
)

// FxcCompiler shells out to fxc.exe, the Direct3D HLSL bytecode
// compiler, to produce HLSL5 vendor bytecode.
type FxcCompiler struct {
	binPath string
	workDir string
}

// NewFxcCompiler locates fxc.exe via $FXC_PATH or $PATH.
func NewFxcCompiler() (*FxcCompiler, error) {
	bin := os.Getenv("FXC_PATH")
	if bin == "" {
		found, err := exec.LookPath("fxc.exe")
		if err != nil {
			return nil, fmt.Errorf("bytecode: fxc.exe not found on PATH and FXC_PATH not set: %w", err)
		}
		bin = found
	}
	dir, err := os.MkdirTemp("", "sokol-shdc-fxc-*")
	if err != nil {
		return nil, fmt.Errorf("bytecode: creating scratch dir: %w", err)
	}
	return &FxcCompiler{binPath: bin, workDir: dir}, nil
}

// Close removes the scratch directory.
func (c *FxcCompiler) Close() error { return os.RemoveAll(c.workDir) }

func (c *FxcCompiler) target(stage cross.Stage) string {
	if stage == cross.StageVertex {
		return "vs_5_0"
	}
	return "ps_5_0"
}

func (c *FxcCompiler) CompileBytecode(source string, stage cross.Stage, dialect cross.Dialect) ([]byte, []ToolDiagnostic, error) {
	if dialect != cross.HLSL5 {
		return nil, nil, fmt.Errorf("fxc only compiles the hlsl5 dialect, got %s", dialect)
	}
	srcPath := filepath.Join(c.workDir, "shader.hlsl")
	outPath := filepath.Join(c.workDir, "shader.fxc")
	if err := os.WriteFile(srcPath, []byte(source), 0o644); err != nil {
		return nil, nil, fmt.Errorf("writing hlsl source: %w", err)
	}

	cmd := exec.Command(c.binPath, "/T", c.target(stage), "/E", "main", "/Fo", outPath, srcPath)
	out, err := cmd.CombinedOutput()
	if err != nil {
		if _, ok := err.(*exec.ExitError); ok {
			// fxc.exe ran and reported a compile error; the caller
			// consults toolDiags, not err, for this case.
			return nil, parseFxcDiagnostics(string(out)), nil
		}
		return nil, nil, fmt.Errorf("running fxc.exe: %w", err)
	}
	data, err := os.ReadFile(outPath)
	if err != nil {
		return nil, nil, fmt.Errorf("reading fxc output: %w", err)
	}
	return data, nil, nil
}

// parseFxcDiagnostics recognizes fxc.exe's "shader.hlsl(12,3): error ...".
func parseFxcDiagnostics(log string) []ToolDiagnostic {
	var diags []ToolDiagnostic
	for _, line := range strings.Split(log, "\n") {
		line = strings.TrimSpace(line)
		open := strings.Index(line, "(")
		comma := strings.Index(line, ",")
		if open < 0 || comma < 0 || comma < open {
			continue
		}
		var lineNo int
		if _, err := fmt.Sscanf(line[open+1:comma], "%d", &lineNo); err != nil {
			continue
		}
		diags = append(diags, ToolDiagnostic{Line: lineNo, Message: line})
	}
	return diags
}
