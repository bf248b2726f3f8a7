// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package spirvc

import "github.com/mothfuzz/sokol-shdc/diag"

// Stage identifies which shader stage a compilation unit targets.
// It is passed to Compiler.CompileToSPIRV as an explicit parameter
// rather than injected into the source text as a "#pragma
// shader_stage(...)" line, so the 1-based line numbers a compiler
// reports always map directly onto the snippet's own resolved line
// set with no synthetic-line offset (see SPEC_FULL.md §5, item 3).
type Stage uint8

const (
	StageVertex Stage = iota
	StageFragment
)

// String returns "vertex" or "fragment".
func (s Stage) String() string {
	if s == StageFragment {
		return "fragment"
	}
	return "vertex"
}

// SpirvBlob is one compiled SPIR-V module, back-linked to the snippet
// it was compiled from.
type SpirvBlob struct {
	// SnippetIndex indexes into the owning input.Input.Snippets.
	SnippetIndex int
	// Bytecode is the SPIR-V binary, as a sequence of 32-bit words.
	Bytecode []uint32
}

// SpirvSet is the result of compiling every Vertex/Fragment snippet of
// an Input. If Errors is non-empty the downstream cross-translate and
// bytecode stages must not run.
type SpirvSet struct {
	Errors []diag.Diagnostic
	Blobs  []SpirvBlob
}

// BlobForSnippet returns the blob compiled from snippet index idx, if
// any succeeded.
func (s SpirvSet) BlobForSnippet(idx int) (SpirvBlob, bool) {
	for _, b := range s.Blobs {
		if b.SnippetIndex == idx {
			return b, true
		}
	}
	return SpirvBlob{}, false
}

// ToolDiagnostic is a diagnostic as reported by the underlying
// GLSL-to-SPIR-V toolchain: Line is 1-based and relative to the
// assembled compilation unit text passed to CompileToSPIRV, not to the
// original input file. Compile (in stage.go) performs the remapping.
type ToolDiagnostic struct {
	Line    int
	Message string
}

// Compiler is the contract every GLSL-to-SPIR-V toolchain
// implementation satisfies. Accepting it as a parameter, rather than
// having stage.go reach for a package-level global, is what keeps the
// pipeline testable with a mock translator in place of the real
// toolchain handle.
type Compiler interface {
	// CompileToSPIRV compiles source (the concatenation of a snippet's
	// resolved lines) for the given stage. A non-nil err indicates an
	// internal toolchain failure unrelated to the shader text itself;
	// GLSL errors in the shader text are reported via diags with err
	// left nil.
	CompileToSPIRV(source string, stage Stage) (words []uint32, diags []ToolDiagnostic, err error)
	// Close releases any process-wide resources the compiler holds.
	Close() error
}

// NewDefaultCompiler returns whichever Compiler implementation this
// binary was built with: ShadercCompiler when built with the
// "shaderc" build tag and cgo enabled, SoftCompiler otherwise.
func NewDefaultCompiler() (Compiler, error) {
	return newDefaultCompiler()
}
