// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package bytecode

// NewDefaultCompiler returns the platform's native VendorCompiler
// (FxcCompiler on windows, MetalCompiler on darwin) or SoftCompiler
// everywhere else.
func NewDefaultCompiler() (VendorCompiler, error) {
	return newDefaultCompiler()
}
