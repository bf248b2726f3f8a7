// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package bytecode implements the optional vendor bytecode stage: for
// dialects that have a native compiled binary form (HLSL5's .fxc via
// fxc.exe, Metal's .metallib via xcrun), it compiles each translated
// CrossSource down to that vendor's bytecode so the generated header
// can embed ready-to-load binaries instead of source text.
//
// This stage only runs when the caller opts in (the --byte-code CLI
// flag / emit_bytecode_flag). It is entirely skipped, producing an
// empty BytecodeSet with no diagnostics, for GLSL dialects, which have
// no native bytecode form, and when opted out.
//
// VendorCompiler has three implementations, chosen by build tag the
// same way spirvc chooses between ShadercCompiler and SoftCompiler:
//
//   - FxcCompiler (windows) shells out to fxc.exe.
//   - MetalCompiler (darwin) shells out to xcrun metal / xcrun metallib,
//     following the idiom in
//     _examples/gogpu-naga/msl/xcrun_helper_test_darwin.go.
//   - SoftCompiler is the deterministic, dependency-free fallback used
//     on every other platform and in the platform-independent tests;
//     FxcCompiler's own test runs only on windows.
package bytecode
