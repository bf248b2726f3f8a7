// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package cross

import "fmt"

// SoftTranslator is a deterministic, dependency-free Translator used
// by every test in this module and whenever no real spirv-cross
// binary is available. It ignores the actual bytecode content and
// always emits the same canonical reflection shape for a given
// (stage, dialect) pair: one vertex attribute for vertex stages, one
// mat4 uniform block for both stages, and one 2D image for fragment
// stages. Re-running Translate on identical inputs always yields
// byte-identical output.
type SoftTranslator struct{}

// NewSoftTranslator returns a ready-to-use SoftTranslator.
func NewSoftTranslator() *SoftTranslator { return &SoftTranslator{} }

// Close is a no-op; SoftTranslator holds no resources.
func (t *SoftTranslator) Close() error { return nil }

func (t *SoftTranslator) Translate(bytecode []uint32, stage Stage, dialect Dialect) (string, RawReflection, error) {
	if len(bytecode) == 0 {
		return "", RawReflection{}, fmt.Errorf("empty bytecode")
	}

	refl := RawReflection{
		EntryPoint: "main",
		UniformBlocks: []RawUniformBlock{
			{
				Slot: 0,
				Name: "params",
				Members: []RawUniform{
					{Name: "mvp", TypeName: t.matrixTypeName(dialect), ArrayCount: 0, Offset: 0},
				},
			},
		},
	}

	var body string
	switch stage {
	case StageVertex:
		refl.Attrs = []RawAttr{
			{Slot: 0, Name: "position", SemName: t.semName(dialect, "POSITION"), SemIndex: 0},
		}
		body = t.vertexBody(dialect)
	case StageFragment:
		refl.Images = []RawImage{{Slot: 0, Name: "tex", Dim: "2D"}}
		body = t.fragmentBody(dialect)
	}

	source := fmt.Sprintf("// soft-translated %s for stage %s (%d words consumed)\n%s",
		dialect.Tag(), stage, len(bytecode), body)
	return source, refl, nil
}

func (t *SoftTranslator) matrixTypeName(d Dialect) string {
	switch d {
	case GLSL330, GLSL100, GLSL300ES:
		return "mat4"
	default:
		return "float4x4"
	}
}

func (t *SoftTranslator) semName(d Dialect, name string) string {
	if d == HLSL5 {
		return name
	}
	return ""
}

func (t *SoftTranslator) vertexBody(d Dialect) string {
	switch d {
	case GLSL330, GLSL100, GLSL300ES:
		return "void main() { gl_Position = params.mvp * vec4(position, 1.0); }\n"
	case HLSL5:
		return "float4 main(float4 position : POSITION) : SV_Position { return mul(params.mvp, position); }\n"
	default:
		return "vertex float4 main0(float4 position [[attribute(0)]]) { return float4(0); }\n"
	}
}

func (t *SoftTranslator) fragmentBody(d Dialect) string {
	switch d {
	case GLSL330, GLSL100, GLSL300ES:
		return "void main() { frag_color = texture(tex, uv); }\n"
	case HLSL5:
		return "float4 main() : SV_Target { return tex.Sample(smp, uv); }\n"
	default:
		return "fragment float4 main0() { return float4(1); }\n"
	}
}
