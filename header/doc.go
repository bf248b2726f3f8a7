// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package header implements the final pipeline stage: generating a C
// header from a fully translated Input, CrossSet and BytecodeSet. It
// owns the case-conversion helpers used to derive C identifiers from
// shader/program names (Camel, Pascal, Ada, Upper), the module-prefix
// rule, and the per-dialect conditional-compilation wrapping that lets
// one generated header serve every requested backend.
//
// Generate first checks a completeness precondition — every program
// must have both a vertex and fragment CrossSource for every requested
// dialect — before emitting a single line, so a caller always gets
// either a complete header or a diagnostic, never a partial file.
package header
