// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package cross

import "fmt"

// Stage identifies which pipeline stage a Reflection describes.
type Stage uint8

const (
	StageVertex Stage = iota
	StageFragment
)

func (s Stage) String() string {
	if s == StageVertex {
		return "vertex"
	}
	return "fragment"
}

// Attr describes a single vertex-stage input attribute.
type Attr struct {
	Slot     int
	Name     string
	SemName  string // HLSL semantic name; empty on dialects without semantics
	SemIndex int
}

// UniformType is the closed set of scalar/vector/matrix shapes a
// uniform block member may have.
type UniformType uint8

const (
	UniformInvalid UniformType = iota
	Float
	Float2
	Float3
	Float4
	Mat4
	Int
	Int2
	Int3
	Int4
)

func (t UniformType) String() string {
	switch t {
	case Float:
		return "FLOAT"
	case Float2:
		return "FLOAT2"
	case Float3:
		return "FLOAT3"
	case Float4:
		return "FLOAT4"
	case Mat4:
		return "MAT4"
	case Int:
		return "INT"
	case Int2:
		return "INT2"
	case Int3:
		return "INT3"
	case Int4:
		return "INT4"
	default:
		return "INVALID"
	}
}

// elementSize is the byte size of a single (non-array) instance of t,
// grounded on util.cc's uniform_size, or 0 for UniformInvalid.
func (t UniformType) elementSize() int {
	switch t {
	case Float, Int:
		return 4
	case Float2, Int2:
		return 8
	case Float3, Int3:
		return 12
	case Float4, Int4:
		return 16
	case Mat4:
		return 64
	default:
		return 0
	}
}

// roundup rounds val up to the next multiple of roundTo, which must
// be a power of two. Mirrors util.cc's roundup helper.
func roundup(val, roundTo int) int {
	return (val + (roundTo - 1)) &^ (roundTo - 1)
}

// uniformSize computes the byte size of a uniform member. An
// array_count greater than 1 is only legal for Float4, Int4 and Mat4,
// since those are the only types whose native array stride matches
// their unpadded size on every backend. Any other base type with
// array_count > 1 is a reflection error.
func uniformSize(t UniformType, arrayCount int) (int, error) {
	if arrayCount > 1 {
		switch t {
		case Float4, Int4:
			return 16 * arrayCount, nil
		case Mat4:
			return 64 * arrayCount, nil
		default:
			return 0, fmt.Errorf("array_count %d not allowed for uniform type %s (only FLOAT4, INT4 and MAT4 may be arrayed)", arrayCount, t)
		}
	}
	sz := t.elementSize()
	if sz == 0 {
		return 0, fmt.Errorf("invalid uniform type %s", t)
	}
	return sz, nil
}

// Uniform is a single member of a UniformBlock.
type Uniform struct {
	Name       string
	Type       UniformType
	ArrayCount int // 0 or 1 means not an array
	Offset     int
}

// UniformBlock is a reflected constant/uniform buffer binding.
type UniformBlock struct {
	Slot     int
	Name     string
	Size     int // rounded up to a multiple of 16
	Uniforms []Uniform
}

// ImageKind is the closed set of texture dimensionalities sokol-shdc
// recognizes.
type ImageKind uint8

const (
	ImageInvalid ImageKind = iota
	Image2D
	ImageCube
	Image3D
	ImageArray
)

func (k ImageKind) String() string {
	switch k {
	case Image2D:
		return "IMAGE_TYPE_2D"
	case ImageCube:
		return "IMAGE_TYPE_CUBE"
	case Image3D:
		return "IMAGE_TYPE_3D"
	case ImageArray:
		return "IMAGE_TYPE_ARRAY"
	default:
		return "IMAGE_TYPE_INVALID"
	}
}

// Image is a reflected texture/sampler binding.
type Image struct {
	Slot int
	Name string
	Kind ImageKind
}

// Reflection is the normalized shape-and-binding metadata extracted
// from one translated shader stage, independent of target dialect.
type Reflection struct {
	Stage         Stage
	EntryPoint    string
	Attrs         []Attr
	UniformBlocks []UniformBlock
	Images        []Image
}
