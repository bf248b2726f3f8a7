// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package shdc sequences the full sokol-shdc pipeline: parse the
// annotated input, compile to SPIR-V, translate to every requested
// dialect, optionally produce vendor bytecode, and generate a C
// header. See DESIGN.md for how each stage maps to a package.
package shdc

import (
	"fmt"
	"os"

	"github.com/mothfuzz/sokol-shdc/bytecode"
	"github.com/mothfuzz/sokol-shdc/cross"
	"github.com/mothfuzz/sokol-shdc/debugdump"
	"github.com/mothfuzz/sokol-shdc/diag"
	"github.com/mothfuzz/sokol-shdc/header"
	"github.com/mothfuzz/sokol-shdc/input"
	"github.com/mothfuzz/sokol-shdc/spirvc"
)

// Options configures one Driver run.
type Options struct {
	InputPath  string
	OutputPath string
	Dialects   []cross.Dialect
	ByteCode   bool
	NoIfdef    bool
	GenVersion string
	// DebugDumpPath, if non-empty, writes a MessagePack snapshot of the
	// run's artifacts alongside the generated header.
	DebugDumpPath string
	// DebugDump requests that Result.Snapshot be populated even when
	// DebugDumpPath is empty, for a caller that only wants the
	// plain-text trace (see debugdump.RenderText).
	DebugDump bool
}

// Result is a completed run's output.
type Result struct {
	HeaderText string
	Snapshot   debugdump.Snapshot
}

// Driver owns the two process-wide toolchain handles (the GLSL-to-
// SPIR-V compiler and the SPIR-V-to-dialect translator) across a run,
// acquiring them once and releasing them on every exit path.
type Driver struct {
	Options Options
}

// Run sequences the pipeline in order: parse, compile, translate,
// optionally emit bytecode, generate. Any stage producing a
// diagnostic short-circuits the remaining stages; Run's error return
// is reserved for failures unrelated to shader content (a toolchain
// that could not be acquired, an output file that could not be
// written).
func (d *Driver) Run() (Result, []diag.Diagnostic, error) {
	inp := input.Parse(d.Options.InputPath)
	if inp.Err.Valid {
		return Result{}, []diag.Diagnostic{inp.Err}, nil
	}

	compiler, err := spirvc.NewDefaultCompiler()
	if err != nil {
		return Result{}, nil, fmt.Errorf("acquiring SPIR-V toolchain: %w", err)
	}
	defer compiler.Close()

	spirvSet := spirvc.Compile(inp, compiler)
	if len(spirvSet.Errors) > 0 {
		return Result{}, spirvSet.Errors, nil
	}

	translator := cross.NewDefaultTranslator()
	defer translator.Close()

	crossSet := cross.Translate(inp, spirvSet, d.Options.Dialects, translator)
	if len(crossSet.Errors) > 0 {
		return Result{}, crossSet.Errors, nil
	}
	if covErrs := cross.CheckCoverage(inp, crossSet, d.Options.Dialects); len(covErrs) > 0 {
		return Result{}, covErrs, nil
	}

	var byteSet bytecode.BytecodeSet
	if d.Options.ByteCode {
		vc, err := bytecode.NewDefaultCompiler()
		if err != nil {
			return Result{}, nil, fmt.Errorf("acquiring vendor bytecode toolchain: %w", err)
		}
		defer vc.Close()
		byteSet = bytecode.Compile(inp, crossSet, d.Options.Dialects, true, vc)
		if len(byteSet.Errors) > 0 {
			return Result{}, byteSet.Errors, nil
		}
	}

	text, genErrs := header.Generate(inp, crossSet, byteSet, d.Options.Dialects, header.Options{
		NoIfdef:    d.Options.NoIfdef,
		GenVersion: d.Options.GenVersion,
	})
	if len(genErrs) > 0 {
		return Result{}, genErrs, nil
	}

	result := Result{HeaderText: text}
	if d.Options.DebugDumpPath != "" || d.Options.DebugDump {
		result.Snapshot = debugdump.Build(inp, crossSet, byteSet, d.Options.Dialects)
	}
	if d.Options.DebugDumpPath != "" {
		if err := debugdump.Write(d.Options.DebugDumpPath, result.Snapshot); err != nil {
			return Result{}, nil, err
		}
	}
	return result, nil, nil
}

// Run is a convenience wrapper around Driver.Run for callers that
// don't need to reuse a Driver value.
func Run(opts Options) (Result, []diag.Diagnostic, error) {
	d := &Driver{Options: opts}
	return d.Run()
}

// WriteHeader writes result.HeaderText to opts.OutputPath.
func WriteHeader(opts Options, result Result) error {
	if err := os.WriteFile(opts.OutputPath, []byte(result.HeaderText), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", opts.OutputPath, err)
	}
	return nil
}
