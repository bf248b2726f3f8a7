// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package bytecode

import (
	"encoding/binary"
	"hash/fnv"

	"github.com/mothfuzz/sokol-shdc/cross"
)

// SoftCompiler is a deterministic, dependency-free VendorCompiler used
// in tests and on platforms lacking the real vendor toolchain. It
// never reports diagnostics: it treats its input source as already
// validated by the cross-translate stage, since real syntax checking
// already happened against SPIR-V.
type SoftCompiler struct{}

// NewSoftCompiler returns a ready-to-use SoftCompiler.
func NewSoftCompiler() *SoftCompiler { return &SoftCompiler{} }

// Close is a no-op; SoftCompiler holds no resources.
func (c *SoftCompiler) Close() error { return nil }

func (c *SoftCompiler) CompileBytecode(source string, stage cross.Stage, dialect cross.Dialect) ([]byte, []ToolDiagnostic, error) {
	h := fnv.New64a()
	h.Write([]byte(dialect.Tag()))
	h.Write([]byte{0})
	h.Write([]byte(stage.String()))
	h.Write([]byte{0})
	h.Write([]byte(source))

	out := make([]byte, 8+8)
	binary.LittleEndian.PutUint64(out[0:8], softBytecodeMagic)
	binary.LittleEndian.PutUint64(out[8:16], h.Sum64())
	return out, nil, nil
}

const softBytecodeMagic = 0x1533f4654424301
