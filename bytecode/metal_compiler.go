// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

//go:build darwin

package bytecode

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/mothfuzz/sokol-shdc/cross"
)

// MetalCompiler shells out to xcrun's metal and metallib tools to
// produce a .metallib vendor bytecode blob, following the same
// invocation shape as
// _examples/gogpu-naga/msl/xcrun_helper_test_darwin.go.
type MetalCompiler struct {
	workDir string
}

// NewMetalCompiler verifies xcrun and its metal tool are available.
func NewMetalCompiler() (*MetalCompiler, error) {
	if _, err := exec.LookPath("xcrun"); err != nil {
		return nil, fmt.Errorf("bytecode: xcrun not found: %w", err)
	}
	if err := exec.Command("xcrun", "--find", "metal").Run(); err != nil {
		return nil, fmt.Errorf("bytecode: xcrun metal tool not found: %w", err)
	}
	dir, err := os.MkdirTemp("", "sokol-shdc-metal-*")
	if err != nil {
		return nil, fmt.Errorf("bytecode: creating scratch dir: %w", err)
	}
	return &MetalCompiler{workDir: dir}, nil
}

// Close removes the scratch directory.
func (c *MetalCompiler) Close() error { return os.RemoveAll(c.workDir) }

func (c *MetalCompiler) CompileBytecode(source string, stage cross.Stage, dialect cross.Dialect) ([]byte, []ToolDiagnostic, error) {
	if dialect != cross.MetalMacOS && dialect != cross.MetalIOS {
		return nil, nil, fmt.Errorf("MetalCompiler only compiles metal dialects, got %s", dialect)
	}
	sdk := "macosx"
	if dialect == cross.MetalIOS {
		sdk = "iphoneos"
	}

	srcPath := filepath.Join(c.workDir, "shader.metal")
	airPath := filepath.Join(c.workDir, "shader.air")
	libPath := filepath.Join(c.workDir, "shader.metallib")
	if err := os.WriteFile(srcPath, []byte(source), 0o644); err != nil {
		return nil, nil, fmt.Errorf("writing metal source: %w", err)
	}

	compile := exec.Command("xcrun", "-sdk", sdk, "metal", "-c", srcPath, "-o", airPath)
	if out, err := compile.CombinedOutput(); err != nil {
		return nil, nil, fmt.Errorf("xcrun metal failed: %w\n%s", err, out)
	}
	link := exec.Command("xcrun", "-sdk", sdk, "metallib", airPath, "-o", libPath)
	if out, err := link.CombinedOutput(); err != nil {
		return nil, nil, fmt.Errorf("xcrun metallib failed: %w\n%s", err, out)
	}
	data, err := os.ReadFile(libPath)
	if err != nil {
		return nil, nil, fmt.Errorf("reading metallib output: %w", err)
	}
	return data, nil, nil
}
