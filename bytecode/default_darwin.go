// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

//go:build darwin

package bytecode

func newDefaultCompiler() (VendorCompiler, error) {
	return NewMetalCompiler()
}
