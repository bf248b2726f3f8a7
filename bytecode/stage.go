// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package bytecode

import (
	"github.com/mothfuzz/sokol-shdc/cross"
	"github.com/mothfuzz/sokol-shdc/diag"
	"github.com/mothfuzz/sokol-shdc/input"
)

// Compile runs the vendor bytecode stage. When emit is false it
// returns an empty BytecodeSet immediately: bytecode generation is
// opt-in (the --byte-code flag / emit_bytecode_flag), never a
// hard requirement. Only dialects with a native binary form
// (cross.Dialect.HasBinaryForm) are attempted; others, such as the
// GLSL dialects, are silently skipped without a diagnostic.
func Compile(inp *input.Input, crossSet cross.CrossSet, dialects []cross.Dialect, emit bool, compiler VendorCompiler) BytecodeSet {
	var set BytecodeSet
	if !emit {
		return set
	}
	for _, d := range dialects {
		if !d.HasBinaryForm() {
			continue
		}
		for _, src := range crossSet.Sources[d] {
			sn := inp.Snippets[src.SnippetIndex]
			data, toolDiags, err := compiler.CompileBytecode(src.SourceCode, src.Reflection.Stage, d)
			if err != nil {
				set.Errors = append(set.Errors, diag.New(inp.Path, sn.FirstLine(),
					"%s bytecode compile failed for snippet %q: %v", d.Tag(), sn.Name, err))
				continue
			}
			if len(toolDiags) > 0 {
				for _, td := range toolDiags {
					set.Errors = append(set.Errors, diag.New(inp.Path, sn.FirstLine(),
						"%s bytecode compiler: %s", d.Tag(), td.Message))
				}
				continue
			}
			set.Blobs = append(set.Blobs, BytecodeBlob{SnippetIndex: src.SnippetIndex, Dialect: d, Data: data})
		}
	}
	return set
}
