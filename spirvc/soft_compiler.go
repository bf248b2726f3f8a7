// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package spirvc

import (
	"encoding/binary"
	"strings"
)

// SoftCompiler is the dependency-free, deterministic Compiler used
// whenever no native GLSL compiler is linked in, and by every test in
// this module. It does not implement the GLSL language: it performs
// the structural checks a real front end would catch first (balanced
// braces, a "void main" entry point) and, when those pass, emits a
// minimal but structurally valid SPIR-V module.
//
// The binary layout — magic number, version word, generator id, id
// bound, schema, followed by OpCapability/OpMemoryModel/OpEntryPoint —
// follows the same instruction-word packing an IR-to-SPIR-V
// ModuleBuilder would use, trimmed down to the handful of header
// instructions a structural placeholder needs; see DESIGN.md.
type SoftCompiler struct{}

// NewSoftCompiler returns a ready-to-use SoftCompiler. It holds no
// state and Close is a no-op.
func NewSoftCompiler() *SoftCompiler {
	return &SoftCompiler{}
}

func (c *SoftCompiler) Close() error { return nil }

func (c *SoftCompiler) CompileToSPIRV(source string, stage Stage) ([]uint32, []ToolDiagnostic, error) {
	lines := strings.Split(source, "\n")

	if diags := scanStructural(lines); len(diags) > 0 {
		return nil, diags, nil
	}

	return encodeModule(source, stage), nil, nil
}

// scanStructural performs the two checks a syntactically-broken shader
// would fail before any real code generation begins: balanced braces
// and the presence of an entry point. It returns one ToolDiagnostic
// per unmatched '}', one for any unclosed '{', and a missing-entry-point
// diagnostic only when the brace checks found nothing; each carries a
// 1-based line number relative to source.
func scanStructural(lines []string) []ToolDiagnostic {
	var diags []ToolDiagnostic
	depth := 0
	hasMain := false
	for i, line := range lines {
		for _, r := range line {
			switch r {
			case '{':
				depth++
			case '}':
				depth--
				if depth < 0 {
					diags = append(diags, ToolDiagnostic{Line: i + 1, Message: "unmatched '}'"})
					depth = 0
				}
			}
		}
		if strings.Contains(line, "void main") {
			hasMain = true
		}
	}
	if depth > 0 {
		diags = append(diags, ToolDiagnostic{Line: len(lines), Message: "unbalanced '{': missing '}'"})
	}
	if !hasMain && len(diags) == 0 {
		diags = append(diags, ToolDiagnostic{Line: 1, Message: "no 'main' entry point found"})
	}
	return diags
}

// SPIR-V module header constants.
const (
	spirvMagicNumber   = 0x07230203
	spirvVersion1_0    = 0x00010000
	spirvGeneratorID   = 0
	opCapability       = 17
	opMemoryModel      = 14
	opEntryPointOpcode = 15
	capabilityShader   = 1
	addressingLogical  = 0
	memoryModelGLSL450 = 1
	executionModelVert = 0
	executionModelFrag = 4
)

// encodeModule builds a minimal, deterministic SPIR-V module: a real
// header followed by OpCapability, OpMemoryModel and OpEntryPoint. It
// carries no type or function section, since SoftCompiler never
// generates code — it exists purely to keep the pipeline's back-links
// and byte-stream plumbing exercised without a native toolchain.
func encodeModule(source string, stage Stage) []uint32 {
	var words []uint32
	words = append(words,
		spirvMagicNumber,
		spirvVersion1_0,
		spirvGeneratorID,
		4, // id bound: reserve ids 1..3 plus the unused 0 id
		0, // schema
	)

	words = append(words, instrWords(opCapability, []uint32{capabilityShader})...)
	words = append(words, instrWords(opMemoryModel, []uint32{addressingLogical, memoryModelGLSL450})...)

	model := uint32(executionModelVert)
	if stage == StageFragment {
		model = executionModelFrag
	}
	nameWords := encodeLiteralString("main")
	entryPoint := append([]uint32{model, 1 /* entry point id */}, nameWords...)
	words = append(words, instrWords(opEntryPointOpcode, entryPoint)...)

	// A trailing checksum word derived from the source text keeps
	// distinct (but structurally identical) shaders from producing
	// byte-identical blobs, without pretending to be real codegen.
	words = append(words, checksum(source))
	return words
}

// instrWords encodes a full instruction: opcode word followed by its
// operand words.
func instrWords(opcode uint32, operands []uint32) []uint32 {
	out := make([]uint32, 0, len(operands)+1)
	out = append(out, packOpcodeWord(opcode, len(operands)+1))
	out = append(out, operands...)
	return out
}

func packOpcodeWord(opcode uint32, wordCount int) uint32 {
	return (uint32(wordCount) << 16) | opcode
}

// encodeLiteralString encodes s as SPIR-V does: UTF-8 bytes, a NUL
// terminator, then padded to a 4-byte word boundary.
func encodeLiteralString(s string) []uint32 {
	b := []byte(s)
	b = append(b, 0)
	for len(b)%4 != 0 {
		b = append(b, 0)
	}
	words := make([]uint32, len(b)/4)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(b[i*4 : i*4+4])
	}
	return words
}

func checksum(s string) uint32 {
	var h uint32 = 2166136261
	for i := 0; i < len(s); i++ {
		h ^= uint32(s[i])
		h *= 16777619
	}
	return h
}

