// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package diag implements the source-located diagnostic value shared by
// every stage of the sokol-shdc pipeline.
//
// A Diagnostic points at a zero-based line in the original annotated
// input file, regardless of which stage raised it: the SPIR-V compile
// stage remaps toolchain line numbers back through a snippet's
// resolved line set, and the cross-translate and bytecode stages pin
// their errors to a snippet's or program's first original line. This
// keeps every reported error actionable in the file the user actually
// wrote, never in a synthesized intermediate unit.
package diag

import "fmt"

// Format selects a Diagnostic's textual rendering.
type Format int

const (
	// FormatCompiler renders "path:line+1:0: error: msg", the format
	// most Unix toolchains (gcc, clang) use.
	FormatCompiler Format = iota

	// FormatEditor renders "path(line+1): error: msg", the format
	// Visual Studio's error list recognizes.
	FormatEditor
)

// String returns the flag value ("gcc" or "msvc") for f.
func (f Format) String() string {
	switch f {
	case FormatEditor:
		return "msvc"
	default:
		return "gcc"
	}
}

// ParseFormat parses the --format flag value. Unrecognized values fall
// back to FormatCompiler.
func ParseFormat(s string) Format {
	if s == "msvc" {
		return FormatEditor
	}
	return FormatCompiler
}

// Diagnostic is a source-located error, or the absence of one.
//
// A zero-value Diagnostic (Valid == false) means "no error"; every
// stage function that can fail returns a slice of Diagnostics rather
// than a single error, and an empty or all-invalid slice means the
// stage succeeded. Line is zero-based; -1 means the diagnostic has no
// associated line (an I/O error reading the input file, for example).
type Diagnostic struct {
	File  string
	Line  int
	Msg   string
	Valid bool
}

// New creates a line-pointing Diagnostic, formatting Msg with fmt.Sprintf.
func New(file string, line int, format string, args ...any) Diagnostic {
	return Diagnostic{File: file, Line: line, Msg: fmt.Sprintf(format, args...), Valid: true}
}

// NewFile creates a Diagnostic with no associated line, for failures
// that happen before any line can be attributed (e.g. the input file
// could not be read at all).
func NewFile(file string, format string, args ...any) Diagnostic {
	return Diagnostic{File: file, Line: -1, Msg: fmt.Sprintf(format, args...), Valid: true}
}

// None is the canonical "no error" value.
var None = Diagnostic{}

// Error implements the error interface, rendering in FormatCompiler.
func (d Diagnostic) Error() string {
	return d.Render(FormatCompiler)
}

// Render renders d in the requested format. An invalid Diagnostic
// renders as the empty string.
func (d Diagnostic) Render(f Format) string {
	if !d.Valid {
		return ""
	}
	switch f {
	case FormatEditor:
		return fmt.Sprintf("%s(%d): error: %s", d.File, d.Line+1, d.Msg)
	default:
		return fmt.Sprintf("%s:%d:0: error: %s", d.File, d.Line+1, d.Msg)
	}
}

// RenderAll renders a slice of Diagnostics, one per line, skipping any
// invalid entries.
func RenderAll(diags []Diagnostic, f Format) string {
	out := ""
	for _, d := range diags {
		if !d.Valid {
			continue
		}
		if out != "" {
			out += "\n"
		}
		out += d.Render(f)
	}
	return out
}

// AnyValid reports whether diags contains at least one valid Diagnostic.
func AnyValid(diags []Diagnostic) bool {
	for _, d := range diags {
		if d.Valid {
			return true
		}
	}
	return false
}
