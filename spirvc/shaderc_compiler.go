// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

//go:build shaderc && cgo

package spirvc

/*
#cgo pkg-config: shaderc
#include <shaderc/shaderc.h>
#include <stdlib.h>
*/
import "C"

import (
	"fmt"
	"strings"
	"unsafe"
)

// ShadercCompiler binds libshaderc, Google's GLSL/HLSL-to-SPIR-V
// compiler, via cgo. The binding shape — compiler/options/result
// handles, explicit Release calls — follows the usual cgo pattern for
// wrapping an opaque native handle.
//
// Built only with -tags shaderc, since it links against a system
// library this module does not vendor.
type ShadercCompiler struct {
	handle  C.shaderc_compiler_t
	options C.shaderc_compile_options_t
}

// NewShadercCompiler acquires the process-wide shaderc compiler
// handle. Callers must call Close exactly once, on every exit path.
func NewShadercCompiler() (*ShadercCompiler, error) {
	handle := C.shaderc_compiler_initialize()
	if handle == nil {
		return nil, fmt.Errorf("shaderc: failed to initialize compiler")
	}
	opts := C.shaderc_compile_options_initialize()
	if opts == nil {
		C.shaderc_compiler_release(handle)
		return nil, fmt.Errorf("shaderc: failed to initialize compile options")
	}
	// Vulkan semantics, descriptor set 0.
	C.shaderc_compile_options_set_target_env(opts, C.shaderc_target_env_vulkan, C.shaderc_env_version_vulkan_1_0)
	return &ShadercCompiler{handle: handle, options: opts}, nil
}

func (c *ShadercCompiler) Close() error {
	C.shaderc_compile_options_release(c.options)
	C.shaderc_compiler_release(c.handle)
	return nil
}

func (c *ShadercCompiler) CompileToSPIRV(source string, stage Stage) ([]uint32, []ToolDiagnostic, error) {
	kind := C.shaderc_vertex_shader
	if stage == StageFragment {
		kind = C.shaderc_fragment_shader
	}

	cSource := C.CString(source)
	defer C.free(unsafe.Pointer(cSource))
	cFilename := C.CString("snippet")
	defer C.free(unsafe.Pointer(cFilename))
	cEntry := C.CString("main")
	defer C.free(unsafe.Pointer(cEntry))

	result := C.shaderc_compile_into_spv(
		c.handle,
		cSource,
		C.size_t(len(source)),
		C.shaderc_shader_kind(kind),
		cFilename,
		cEntry,
		c.options,
	)
	defer C.shaderc_result_release(result)

	status := C.shaderc_result_get_compilation_status(result)
	if status != C.shaderc_compilation_status_success {
		msg := C.GoString(C.shaderc_result_get_error_message(result))
		return nil, parseShadercDiagnostics(msg), nil
	}

	ptr := C.shaderc_result_get_bytes(result)
	length := C.shaderc_result_get_length(result)
	raw := C.GoBytes(unsafe.Pointer(ptr), C.int(length))
	return bytesToWords(raw), nil, nil
}

// parseShadercDiagnostics turns shaderc's "file:line: error: msg"
// formatted error log into ToolDiagnostics. shaderc reports one error
// per line in that format.
func parseShadercDiagnostics(log string) []ToolDiagnostic {
	var diags []ToolDiagnostic
	for _, line := range strings.Split(strings.TrimSpace(log), "\n") {
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, ":", 3)
		lineNo := 1
		msg := line
		if len(parts) == 3 {
			if n, err := fmt.Sscanf(parts[1], "%d", &lineNo); err == nil && n == 1 {
				msg = strings.TrimSpace(parts[2])
			}
		}
		diags = append(diags, ToolDiagnostic{Line: lineNo, Message: msg})
	}
	if len(diags) == 0 {
		diags = append(diags, ToolDiagnostic{Line: 1, Message: log})
	}
	return diags
}

func bytesToWords(b []byte) []uint32 {
	words := make([]uint32, len(b)/4)
	for i := range words {
		words[i] = uint32(b[i*4]) | uint32(b[i*4+1])<<8 | uint32(b[i*4+2])<<16 | uint32(b[i*4+3])<<24
	}
	return words
}
