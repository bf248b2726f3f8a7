// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package bytecode

import (
	"github.com/mothfuzz/sokol-shdc/cross"
	"github.com/mothfuzz/sokol-shdc/diag"
)

// BytecodeBlob is one snippet compiled to one dialect's native binary
// form.
type BytecodeBlob struct {
	SnippetIndex int
	Dialect      cross.Dialect
	Data         []byte
}

// BytecodeSet is the output of the vendor bytecode stage.
type BytecodeSet struct {
	Errors []diag.Diagnostic
	Blobs  []BytecodeBlob
}

// BlobFor returns the compiled blob for a given dialect and snippet
// index, if one exists.
func (s BytecodeSet) BlobFor(d cross.Dialect, snippetIndex int) (BytecodeBlob, bool) {
	for _, b := range s.Blobs {
		if b.Dialect == d && b.SnippetIndex == snippetIndex {
			return b, true
		}
	}
	return BytecodeBlob{}, false
}

// ToolDiagnostic is a single line-tagged message from a vendor
// compiler, prior to remapping into the original source's coordinates.
type ToolDiagnostic struct {
	Line    int
	Message string
}

// VendorCompiler turns one dialect's translated source into that
// vendor's native bytecode.
type VendorCompiler interface {
	CompileBytecode(source string, stage cross.Stage, dialect cross.Dialect) (data []byte, diags []ToolDiagnostic, err error)
	Close() error
}
