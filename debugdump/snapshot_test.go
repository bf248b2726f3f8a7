// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package debugdump

import (
	"path/filepath"
	"testing"

	"github.com/mothfuzz/sokol-shdc/bytecode"
	"github.com/mothfuzz/sokol-shdc/cross"
	"github.com/mothfuzz/sokol-shdc/input"
	"github.com/mothfuzz/sokol-shdc/spirvc"
)

const simpleProgram = `@vs vs
void main() { gl_Position = vec4(0); }
@end
@fs fs
void main() { frag_color = vec4(1); }
@end
@program triangle vs fs
`

func TestBuildAndRoundTripThroughMsgpack(t *testing.T) {
	inp := input.ParseSource("f.glsl", simpleProgram)
	if inp.Err.Valid {
		t.Fatalf("unexpected parse error: %v", inp.Err)
	}
	spirv := spirvc.Compile(inp, spirvc.NewSoftCompiler())
	dialects := []cross.Dialect{cross.GLSL330, cross.HLSL5}
	crossSet := cross.Translate(inp, spirv, dialects, cross.NewSoftTranslator())
	byteSet := bytecode.Compile(inp, crossSet, dialects, true, bytecode.NewSoftCompiler())

	snap := Build(inp, crossSet, byteSet, dialects)
	if len(snap.Snippets) != 2 {
		t.Fatalf("got %d snippets, want 2", len(snap.Snippets))
	}
	if len(snap.Programs) != 1 || snap.Programs[0].Name != "triangle" {
		t.Fatalf("got programs %+v, want one named triangle", snap.Programs)
	}
	if len(snap.Dialects) != 2 {
		t.Fatalf("got %d dialects, want 2", len(snap.Dialects))
	}

	path := filepath.Join(t.TempDir(), "dump.mpack")
	if err := Write(path, snap); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	got, err := Read(path)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if got.Path != snap.Path || got.Module != snap.Module {
		t.Errorf("round trip mismatch: got %+v, want %+v", got, snap)
	}
	if len(got.Snippets) != len(snap.Snippets) {
		t.Errorf("snippet count mismatch after round trip: %d vs %d", len(got.Snippets), len(snap.Snippets))
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

// TestBuildOrdersProgramsByDeclarationOrder guards against
// input.Input.Programs's map iteration order leaking into the
// snapshot: "zeta" is declared before "yankee" but sorts after it
// alphabetically, so a name-keyed map iteration would very likely
// surface them in the wrong order across runs.
func TestBuildOrdersProgramsByDeclarationOrder(t *testing.T) {
	inp := input.ParseSource("f.glsl", multiProgramSource)
	if inp.Err.Valid {
		t.Fatalf("unexpected parse error: %v", inp.Err)
	}
	spirv := spirvc.Compile(inp, spirvc.NewSoftCompiler())
	dialects := []cross.Dialect{cross.GLSL330}
	crossSet := cross.Translate(inp, spirv, dialects, cross.NewSoftTranslator())
	byteSet := bytecode.Compile(inp, crossSet, dialects, true, bytecode.NewSoftCompiler())

	for i := 0; i < 20; i++ {
		snap := Build(inp, crossSet, byteSet, dialects)
		if len(snap.Programs) != 2 {
			t.Fatalf("run %d: got %d programs, want 2", i, len(snap.Programs))
		}
		if snap.Programs[0].Name != "zeta" || snap.Programs[1].Name != "yankee" {
			t.Fatalf("run %d: got program order %+v, want [zeta yankee]", i, snap.Programs)
		}
	}
}

func TestBuildRecordsBytecodeLengthsOnlyForCompiledDialects(t *testing.T) {
	inp := input.ParseSource("f.glsl", simpleProgram)
	spirv := spirvc.Compile(inp, spirvc.NewSoftCompiler())
	dialects := []cross.Dialect{cross.GLSL330, cross.HLSL5}
	crossSet := cross.Translate(inp, spirv, dialects, cross.NewSoftTranslator())
	// GLSL330 has no binary form; only HLSL5 should get bytecode.
	byteSet := bytecode.Compile(inp, crossSet, dialects, true, bytecode.NewSoftCompiler())

	snap := Build(inp, crossSet, byteSet, dialects)
	for _, di := range snap.Dialects {
		if di.Tag == "glsl330" && len(di.BytecodeLen) != 0 {
			t.Errorf("expected no bytecode entries for glsl330, got %v", di.BytecodeLen)
		}
		if di.Tag == "hlsl5" && len(di.BytecodeLen) != 2 {
			t.Errorf("expected 2 bytecode entries for hlsl5, got %d", len(di.BytecodeLen))
		}
	}
}
