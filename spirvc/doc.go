// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package spirvc implements stage (b) of the sokol-shdc pipeline: it
// compiles every Vertex/Fragment snippet of a parsed input.Input to a
// SPIR-V binary blob, remapping any diagnostic the underlying GLSL
// compiler reports back to a line in the original annotated file.
//
// The actual GLSL-to-SPIR-V compiler is treated as an opaque,
// process-wide native toolchain: this package only defines the
// Compiler contract and the remapping logic around it. Two
// implementations satisfy that contract:
//
//   - ShadercCompiler (build tag "shaderc") binds libshaderc via cgo.
//   - SoftCompiler is a deterministic, dependency-free fallback used
//     whenever the shaderc build tag is absent, and in every test in
//     this module. It performs a lightweight structural scan of the
//     GLSL text (balanced braces, presence of a "void main" entry
//     point) so the diagnostic-remapping path has real line numbers to
//     exercise, and emits a structurally valid, minimal SPIR-V module
//     using the same binary header layout a real compiler would
//     produce (magic number, version word, bound, a handful of
//     header-section opcodes).
//
// NewDefaultCompiler selects whichever implementation was compiled in.
package spirvc
