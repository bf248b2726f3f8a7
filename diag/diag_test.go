// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package diag

import "testing"

func TestRenderFormats(t *testing.T) {
	d := New("shader.glsl", 4, "unexpected token %q", "}")

	tests := []struct {
		name string
		fmt  Format
		want string
	}{
		{"compiler", FormatCompiler, `shader.glsl:5:0: error: unexpected token "}"`},
		{"editor", FormatEditor, `shader.glsl(5): error: unexpected token "}"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := d.Render(tt.fmt); got != tt.want {
				t.Errorf("Render(%v) = %q, want %q", tt.fmt, got, tt.want)
			}
		})
	}
}

func TestNoLineDiagnostic(t *testing.T) {
	d := NewFile("shader.glsl", "cannot open file: %v", "permission denied")
	want := "shader.glsl:0:0: error: cannot open file: permission denied"
	if got := d.Render(FormatCompiler); got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestInvalidDiagnosticRendersEmpty(t *testing.T) {
	if got := None.Render(FormatCompiler); got != "" {
		t.Errorf("Render() on invalid Diagnostic = %q, want empty", got)
	}
	if None.Valid {
		t.Error("zero-value Diagnostic must be invalid")
	}
}

func TestRenderAllSkipsInvalid(t *testing.T) {
	diags := []Diagnostic{
		New("a.glsl", 0, "first"),
		None,
		New("a.glsl", 2, "second"),
	}
	want := "a.glsl:1:0: error: first\na.glsl:3:0: error: second"
	if got := RenderAll(diags, FormatCompiler); got != want {
		t.Errorf("RenderAll() = %q, want %q", got, want)
	}
}

func TestAnyValid(t *testing.T) {
	if AnyValid(nil) {
		t.Error("AnyValid(nil) = true, want false")
	}
	if AnyValid([]Diagnostic{None}) {
		t.Error("AnyValid([None]) = true, want false")
	}
	if !AnyValid([]Diagnostic{None, New("f", 0, "x")}) {
		t.Error("AnyValid([None, valid]) = false, want true")
	}
}

func TestParseFormat(t *testing.T) {
	if ParseFormat("msvc") != FormatEditor {
		t.Error(`ParseFormat("msvc") != FormatEditor`)
	}
	if ParseFormat("gcc") != FormatCompiler {
		t.Error(`ParseFormat("gcc") != FormatCompiler`)
	}
	if ParseFormat("bogus") != FormatCompiler {
		t.Error(`ParseFormat("bogus") should default to FormatCompiler`)
	}
}
