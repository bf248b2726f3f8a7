// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package bytecode

import (
	"testing"

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
@program p vs fs
`

func buildCrossSet(t *testing.T, dialects []cross.Dialect) (*input.Input, cross.CrossSet) {
	t.Helper()
	inp := input.ParseSource("f.glsl", simpleProgram)
	if inp.Err.Valid {
		t.Fatalf("unexpected parse error: %v", inp.Err)
	}
	spirv := spirvc.Compile(inp, spirvc.NewSoftCompiler())
	if len(spirv.Errors) != 0 {
		t.Fatalf("unexpected spirv errors: %v", spirv.Errors)
	}
	set := cross.Translate(inp, spirv, dialects, cross.NewSoftTranslator())
	if len(set.Errors) != 0 {
		t.Fatalf("unexpected cross errors: %v", set.Errors)
	}
	return inp, set
}

func TestCompileSkippedWhenNotEmitting(t *testing.T) {
	inp, crossSet := buildCrossSet(t, []cross.Dialect{cross.HLSL5})
	set := Compile(inp, crossSet, []cross.Dialect{cross.HLSL5}, false, NewSoftCompiler())
	if len(set.Blobs) != 0 || len(set.Errors) != 0 {
		t.Fatalf("expected an empty set when emit=false, got %+v", set)
	}
}

func TestCompileSkipsDialectsWithoutBinaryForm(t *testing.T) {
	inp, crossSet := buildCrossSet(t, []cross.Dialect{cross.GLSL330})
	set := Compile(inp, crossSet, []cross.Dialect{cross.GLSL330}, true, NewSoftCompiler())
	if len(set.Blobs) != 0 {
		t.Fatalf("GLSL330 has no binary form; expected 0 blobs, got %d", len(set.Blobs))
	}
}

func TestCompileProducesOneBlobPerSnippet(t *testing.T) {
	inp, crossSet := buildCrossSet(t, []cross.Dialect{cross.HLSL5})
	set := Compile(inp, crossSet, []cross.Dialect{cross.HLSL5}, true, NewSoftCompiler())
	if len(set.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", set.Errors)
	}
	if len(set.Blobs) != 2 {
		t.Fatalf("got %d blobs, want 2", len(set.Blobs))
	}
	vsIdx := inp.SnippetIndex("vs")
	blob, ok := set.BlobFor(cross.HLSL5, vsIdx)
	if !ok {
		t.Fatal("expected a blob for the vs snippet")
	}
	if len(blob.Data) == 0 {
		t.Error("expected non-empty bytecode data")
	}
}

func TestCompileIsDeterministic(t *testing.T) {
	inp, crossSet := buildCrossSet(t, []cross.Dialect{cross.HLSL5})
	setA := Compile(inp, crossSet, []cross.Dialect{cross.HLSL5}, true, NewSoftCompiler())
	setB := Compile(inp, crossSet, []cross.Dialect{cross.HLSL5}, true, NewSoftCompiler())
	if len(setA.Blobs) != len(setB.Blobs) {
		t.Fatalf("blob count differs across runs: %d vs %d", len(setA.Blobs), len(setB.Blobs))
	}
	for i := range setA.Blobs {
		a, b := setA.Blobs[i], setB.Blobs[i]
		if string(a.Data) != string(b.Data) {
			t.Errorf("blob %d differs across runs", i)
		}
	}
}
