// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package spirvc

import (
	"github.com/mothfuzz/sokol-shdc/diag"
	"github.com/mothfuzz/sokol-shdc/input"
)

// Compile runs stage (b) of the pipeline: it compiles every
// Vertex/Fragment snippet of inp to SPIR-V using compiler, remapping
// any reported diagnostic back to inp's original line numbering.
//
// Block snippets are never compiled on their own — they only ever
// contribute lines to the Vertex/Fragment units that include them.
func Compile(inp *input.Input, compiler Compiler) SpirvSet {
	var set SpirvSet
	for idx, sn := range inp.Snippets {
		stage, ok := stageOf(sn.Kind)
		if !ok {
			continue
		}
		source := inp.Source(sn)
		words, toolDiags, err := compiler.CompileToSPIRV(source, stage)
		if err != nil {
			set.Errors = append(set.Errors, diag.New(inp.Path, sn.FirstLine(),
				"internal error compiling snippet %q: %v", sn.Name, err))
			continue
		}
		if len(toolDiags) > 0 {
			for _, td := range toolDiags {
				set.Errors = append(set.Errors, remap(inp, sn, td))
			}
			continue
		}
		set.Blobs = append(set.Blobs, SpirvBlob{SnippetIndex: idx, Bytecode: words})
	}
	return set
}

func stageOf(k input.Kind) (Stage, bool) {
	switch k {
	case input.KindVertex:
		return StageVertex, true
	case input.KindFragment:
		return StageFragment, true
	default:
		return 0, false
	}
}

// remap converts a 1-based line number relative to a snippet's
// assembled compilation unit into a Diagnostic pointing at the
// original input file: unit line L maps to snippet.lines[L-1]. An
// out-of-range L indicates a toolchain bug and is reported as an
// internal error pinned to the snippet's first line.
func remap(inp *input.Input, sn input.Snippet, td ToolDiagnostic) diag.Diagnostic {
	idx := td.Line - 1
	if idx < 0 || idx >= len(sn.Lines) {
		return diag.New(inp.Path, sn.FirstLine(),
			"internal error: toolchain reported out-of-range line %d in snippet %q: %s", td.Line, sn.Name, td.Message)
	}
	return diag.New(inp.Path, sn.Lines[idx], "%s", td.Message)
}
