// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package spirvc

import (
	"testing"

	"github.com/mothfuzz/sokol-shdc/input"
)

func TestCompileValidSnippetsProducesOneBlobEach(t *testing.T) {
	src := `@vs vs
void main() { gl_Position = vec4(0); }
@end
@fs fs
void main() { frag_color = vec4(1); }
@end
`
	inp := input.ParseSource("f.glsl", src)
	if inp.Err.Valid {
		t.Fatalf("unexpected parse error: %v", inp.Err)
	}

	set := Compile(inp, NewSoftCompiler())
	if len(set.Errors) != 0 {
		t.Fatalf("unexpected compile errors: %v", set.Errors)
	}
	if len(set.Blobs) != 2 {
		t.Fatalf("got %d blobs, want 2", len(set.Blobs))
	}
	for _, b := range set.Blobs {
		if len(b.Bytecode) < 5 {
			t.Errorf("blob for snippet %d too short: %d words", b.SnippetIndex, len(b.Bytecode))
		}
		if b.Bytecode[0] != spirvMagicNumber {
			t.Errorf("blob for snippet %d missing SPIR-V magic number", b.SnippetIndex)
		}
	}
}

func TestCompileSkipsBlockSnippets(t *testing.T) {
	src := `@block b
const int N = 1;
@end
@vs vs
@include_block b
void main() {}
@end
`
	inp := input.ParseSource("f.glsl", src)
	if inp.Err.Valid {
		t.Fatalf("unexpected parse error: %v", inp.Err)
	}
	set := Compile(inp, NewSoftCompiler())
	if len(set.Blobs) != 1 {
		t.Fatalf("got %d blobs, want 1 (block must not be compiled standalone)", len(set.Blobs))
	}
}

func TestCompileErrorRemapsThroughIncludedBlock(t *testing.T) {
	// The syntax error lives inside the shared block; two vertex
	// shaders include it, and each diagnostic must point at the
	// block's own line, not at the including snippet's local offset.
	src := `@block broken
}
@end
@vs a
@include_block broken
void main() {}
@end
@vs b
void other() {}
@include_block broken
void main() {}
@end
`
	inp := input.ParseSource("f.glsl", src)
	if inp.Err.Valid {
		t.Fatalf("unexpected parse error: %v", inp.Err)
	}
	set := Compile(inp, NewSoftCompiler())
	if len(set.Errors) != 2 {
		t.Fatalf("got %d errors, want 2 (one per including vertex shader)", len(set.Errors))
	}
	for _, e := range set.Errors {
		if e.Line != 1 {
			t.Errorf("error line = %d, want 1 (the broken block's own line)", e.Line)
		}
	}
}

func TestCompileMissingEntryPointIsReported(t *testing.T) {
	src := `@vs vs
gl_Position = vec4(0);
@end
`
	inp := input.ParseSource("f.glsl", src)
	if inp.Err.Valid {
		t.Fatalf("unexpected parse error: %v", inp.Err)
	}
	set := Compile(inp, NewSoftCompiler())
	if len(set.Errors) != 1 {
		t.Fatalf("got %d errors, want 1", len(set.Errors))
	}
	if len(set.Blobs) != 0 {
		t.Fatalf("got %d blobs, want 0", len(set.Blobs))
	}
}

func TestBlobForSnippet(t *testing.T) {
	src := "@vs vs\nvoid main() {}\n@end\n"
	inp := input.ParseSource("f.glsl", src)
	set := Compile(inp, NewSoftCompiler())
	idx := inp.SnippetIndex("vs")
	if _, ok := set.BlobForSnippet(idx); !ok {
		t.Fatal("expected a blob for the vs snippet")
	}
	if _, ok := set.BlobForSnippet(999); ok {
		t.Fatal("expected no blob for a nonexistent snippet index")
	}
}
