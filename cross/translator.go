// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package cross

import "fmt"

// RawAttr is a vertex attribute as reported by a Translator, before
// normalization.
type RawAttr struct {
	Slot     int
	Name     string
	SemName  string
	SemIndex int
}

// RawUniform is a uniform block member as reported by a Translator.
// TypeName is spelled the way the target dialect itself spells types
// (e.g. "vec4" for GLSL, "float4" for HLSL and Metal) and is resolved
// to a UniformType via the dialect's own type table.
type RawUniform struct {
	Name       string
	TypeName   string
	ArrayCount int
	Offset     int
}

// RawUniformBlock is a uniform/constant buffer as reported by a Translator.
type RawUniformBlock struct {
	Slot    int
	Name    string
	Members []RawUniform
}

// RawImage is a texture binding as reported by a Translator. Dim is
// one of "2D", "Cube", "3D", "2DArray".
type RawImage struct {
	Slot int
	Name string
	Dim  string
}

// RawReflection is the translator-native reflection shape, prior to
// dialect-independent normalization.
type RawReflection struct {
	EntryPoint    string
	Attrs         []RawAttr
	UniformBlocks []RawUniformBlock
	Images        []RawImage
}

// Translator lowers one compiled SPIR-V blob to one target dialect's
// source text plus its native reflection metadata. Implementations
// are stateful only in that they may hold a subprocess or handle open
// across calls; Translate itself must be safe to call repeatedly and
// must not mutate bytecode.
type Translator interface {
	Translate(bytecode []uint32, stage Stage, dialect Dialect) (source string, refl RawReflection, err error)
	Close() error
}

// dialectTypeMap resolves a dialect's own type spelling to the
// canonical UniformType set via a fixed mapping. GLSL spells vectors
// as vecN/ivecN and matrices as matN; HLSL and Metal both spell them
// floatN/floatNxN.
var dialectTypeMap = map[Dialect]map[string]UniformType{
	GLSL330:    glslTypeMap(),
	GLSL100:    glslTypeMap(),
	GLSL300ES:  glslTypeMap(),
	HLSL5:      cLikeTypeMap(),
	MetalMacOS: cLikeTypeMap(),
	MetalIOS:   cLikeTypeMap(),
}

func glslTypeMap() map[string]UniformType {
	return map[string]UniformType{
		"float": Float, "vec2": Float2, "vec3": Float3, "vec4": Float4,
		"mat4": Mat4,
		"int":  Int, "ivec2": Int2, "ivec3": Int3, "ivec4": Int4,
	}
}

func cLikeTypeMap() map[string]UniformType {
	return map[string]UniformType{
		"float": Float, "float2": Float2, "float3": Float3, "float4": Float4,
		"float4x4": Mat4,
		"int":      Int, "int2": Int2, "int3": Int3, "int4": Int4,
	}
}

func resolveUniformType(d Dialect, typeName string) (UniformType, error) {
	m, ok := dialectTypeMap[d]
	if !ok {
		return UniformInvalid, fmt.Errorf("no type table for dialect %s", d)
	}
	t, ok := m[typeName]
	if !ok {
		return UniformInvalid, fmt.Errorf("unrecognized %s uniform type %q", d, typeName)
	}
	return t, nil
}

func resolveImageKind(dim string) (ImageKind, error) {
	switch dim {
	case "2D":
		return Image2D, nil
	case "Cube":
		return ImageCube, nil
	case "3D":
		return Image3D, nil
	case "2DArray":
		return ImageArray, nil
	default:
		return ImageInvalid, fmt.Errorf("unrecognized image dimensionality %q", dim)
	}
}

// memberRange is a uniform member's byte extent within its block,
// used to check for overlap.
type memberRange struct {
	name       string
	start, end int
}

// normalize converts a Translator's native RawReflection into the
// dialect-independent Reflection shape, applying uniform type
// resolution and block-size rounding. It also verifies, rather than
// recomputes, two layout invariants a Translator must already
// satisfy: an arrayed member's offset is a multiple of 16, and no two
// members of the same block overlap.
func normalize(d Dialect, stage Stage, raw RawReflection) (Reflection, error) {
	refl := Reflection{
		Stage:      stage,
		EntryPoint: raw.EntryPoint,
	}
	for _, a := range raw.Attrs {
		refl.Attrs = append(refl.Attrs, Attr{
			Slot: a.Slot, Name: a.Name, SemName: a.SemName, SemIndex: a.SemIndex,
		})
	}
	for _, rb := range raw.UniformBlocks {
		block := UniformBlock{Slot: rb.Slot, Name: rb.Name}
		maxEnd := 0
		var ranges []memberRange
		for _, rm := range rb.Members {
			t, err := resolveUniformType(d, rm.TypeName)
			if err != nil {
				return Reflection{}, fmt.Errorf("uniform block %q member %q: %w", rb.Name, rm.Name, err)
			}
			sz, err := uniformSize(t, rm.ArrayCount)
			if err != nil {
				return Reflection{}, fmt.Errorf("uniform block %q member %q: %w", rb.Name, rm.Name, err)
			}
			if rm.ArrayCount > 1 && rm.Offset%16 != 0 {
				return Reflection{}, fmt.Errorf("uniform block %q member %q: offset %d is not a multiple of 16 for an arrayed member", rb.Name, rm.Name, rm.Offset)
			}
			r := memberRange{name: rm.Name, start: rm.Offset, end: rm.Offset + sz}
			for _, prev := range ranges {
				if r.start < prev.end && prev.start < r.end {
					return Reflection{}, fmt.Errorf("uniform block %q members %q and %q overlap: [%d,%d) and [%d,%d)",
						rb.Name, prev.name, r.name, prev.start, prev.end, r.start, r.end)
				}
			}
			ranges = append(ranges, r)
			block.Uniforms = append(block.Uniforms, Uniform{
				Name: rm.Name, Type: t, ArrayCount: rm.ArrayCount, Offset: rm.Offset,
			})
			if r.end > maxEnd {
				maxEnd = r.end
			}
		}
		block.Size = roundup(maxEnd, 16)
		refl.UniformBlocks = append(refl.UniformBlocks, block)
	}
	for _, ri := range raw.Images {
		kind, err := resolveImageKind(ri.Dim)
		if err != nil {
			return Reflection{}, fmt.Errorf("image %q: %w", ri.Name, err)
		}
		refl.Images = append(refl.Images, Image{Slot: ri.Slot, Name: ri.Name, Kind: kind})
	}
	return refl, nil
}
