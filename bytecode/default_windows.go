// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

//go:build windows

package bytecode

func newDefaultCompiler() (VendorCompiler, error) {
	return NewFxcCompiler()
}
