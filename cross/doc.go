// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package cross implements stage (c) of the sokol-shdc pipeline: for
// each requested target dialect, it lowers every compiled SPIR-V blob
// to that dialect's source text and extracts a normalized Reflection
// record (vertex attributes, uniform blocks with member layout, image
// bindings, entry point).
//
// Six target dialects are supported: GLSL 3.30, GLSL 1.00 (ES 2.0),
// GLSL ES 3.00, HLSL 5.0, and Metal for macOS and iOS. Each carries a
// file extension, an optional binary extension, and a
// conditional-inclusion token the header generator uses to gate
// per-backend code.
//
// The actual SPIR-V-to-dialect lowering is delegated to the
// spirv-cross tool, treated as an opaque external collaborator: this
// package only defines the Translator contract, the dialect table,
// and the reflection-normalization rules. Translator has two
// implementations:
//
//   - SpirvCrossTranslator shells out to the spirv-cross binary,
//     requesting its --reflect JSON side output, following the usual
//     subprocess-wrapper idiom for a CLI-only native toolchain.
//   - SoftTranslator is a deterministic, dependency-free fallback used
//     in every test in this module and whenever spirv-cross is not on
//     $PATH.
package cross
