// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package shdc

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mothfuzz/sokol-shdc/cross"
)

func writeSource(t *testing.T, dir, contents string) string {
	t.Helper()
	path := filepath.Join(dir, "triangle.glsl")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return path
}

const trianglSource = `@block uniforms
layout(binding=0) uniform vs_params {
    mat4 mvp;
};
@end
@vs vs
@include_block uniforms
void main() { gl_Position = mvp * vec4(0); }
@end
@fs fs
void main() { frag_color = vec4(1); }
@end
@program prog vs fs
`

func TestRunProducesHeaderForGLSL330(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, trianglSource)

	result, diags, err := Run(Options{
		InputPath: path,
		Dialects:  []cross.Dialect{cross.GLSL330},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	if !strings.Contains(result.HeaderText, "vs_glsl330_source") {
		t.Error("expected a vertex source constant")
	}
	if !strings.Contains(result.HeaderText, "fs_glsl330_source") {
		t.Error("expected a fragment source constant")
	}
	if !strings.Contains(result.HeaderText, "prog_shader_desc") {
		t.Error("expected the program's shader_desc accessor function to appear")
	}
	if !strings.Contains(result.HeaderText, `.name = "mvp"`) {
		t.Error("expected the mvp uniform to appear in a typed reflection array")
	}
	if !strings.Contains(result.HeaderText, "SG_UNIFORMTYPE_MAT4") {
		t.Error("expected the mvp uniform's type to be reflected as a typed constant")
	}
}

func TestRunWithHLSL5AndByteCodeEmbedsBoth(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, trianglSource)

	result, diags, err := Run(Options{
		InputPath: path,
		Dialects:  []cross.Dialect{cross.HLSL5},
		ByteCode:  true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	if !strings.Contains(result.HeaderText, "SOKOL_D3D11") {
		t.Error("expected the HLSL5 conditional token")
	}
	if !strings.Contains(result.HeaderText, "_bytecode[") {
		t.Error("expected an embedded bytecode array")
	}
	if !strings.Contains(result.HeaderText, "_source") {
		t.Error("expected an embedded source constant alongside the bytecode")
	}
	if !strings.Contains(result.HeaderText, "prog_shader_desc") {
		t.Error("expected the program's shader_desc accessor function to appear")
	}
}

const multiProgramSource = `@vs vs_z
void main() { gl_Position = vec4(0); }
@end
@fs fs_z
void main() { frag_color = vec4(0); }
@end
@vs vs_y
void main() { gl_Position = vec4(1); }
@end
@fs fs_y
void main() { frag_color = vec4(1); }
@end
@program zeta vs_z fs_z
@program yankee vs_y fs_y
`

// TestRunProducesByteIdenticalHeadersAcrossRepeatedRuns guards the
// whole pipeline's determinism guarantee end to end: "zeta" is
// declared before "yankee" but sorts after it alphabetically, so any
// stage that iterates input.Input.Programs as a map instead of in
// declaration order would make this flaky.
func TestRunProducesByteIdenticalHeadersAcrossRepeatedRuns(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, multiProgramSource)

	var want string
	for i := 0; i < 20; i++ {
		result, diags, err := Run(Options{
			InputPath: path,
			Dialects:  []cross.Dialect{cross.GLSL330},
		})
		if err != nil {
			t.Fatalf("run %d: unexpected error: %v", i, err)
		}
		if len(diags) != 0 {
			t.Fatalf("run %d: unexpected diagnostics: %v", i, diags)
		}
		if want == "" {
			want = result.HeaderText
			continue
		}
		if result.HeaderText != want {
			t.Fatalf("run %d: header text differs from the first run", i)
		}
	}
	if strings.Index(want, "zeta_shader_desc") > strings.Index(want, "yankee_shader_desc") {
		t.Error("expected zeta_shader_desc (declared first) to precede yankee_shader_desc")
	}
}

func TestRunReportsParseErrorsWithoutRunningLaterStages(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "@vs a\nvoid main() {}\n@end\n@block a\nint x;\n@end\n")

	result, diags, err := Run(Options{
		InputPath: path,
		Dialects:  []cross.Dialect{cross.GLSL330},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(diags) == 0 {
		t.Fatal("expected a diagnostic for the duplicate snippet name")
	}
	if result.HeaderText != "" {
		t.Error("expected no header text when parsing fails")
	}
}

func TestRunWritesDebugDumpWhenRequested(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, trianglSource)
	dumpPath := filepath.Join(dir, "dump.mpack")

	_, diags, err := Run(Options{
		InputPath:     path,
		Dialects:      []cross.Dialect{cross.GLSL330},
		DebugDumpPath: dumpPath,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	if _, err := os.Stat(dumpPath); err != nil {
		t.Errorf("expected a debug dump file to be written: %v", err)
	}
}
