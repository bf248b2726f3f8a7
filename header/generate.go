// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package header

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mothfuzz/sokol-shdc/bytecode"
	"github.com/mothfuzz/sokol-shdc/cross"
	"github.com/mothfuzz/sokol-shdc/diag"
	"github.com/mothfuzz/sokol-shdc/input"
)

// Options configures header emission.
type Options struct {
	// NoIfdef disables wrapping each dialect's block in a
	// preprocessor conditional on its ConditionalToken. Used when the
	// caller already scopes compilation to a single backend.
	NoIfdef bool
	// GenVersion is stamped into the header's top comment so
	// regenerating from an unchanged input is diff-clean.
	GenVersion string
}

// writer accumulates generated header text with simple indent
// tracking, following the Writer-plus-strings.Builder idiom this
// module's stages use throughout.
type writer struct {
	out    strings.Builder
	indent int
}

func (w *writer) line(format string, args ...any) {
	w.out.WriteString(strings.Repeat("    ", w.indent))
	fmt.Fprintf(&w.out, format, args...)
	w.out.WriteByte('\n')
}

func (w *writer) blank() { w.out.WriteByte('\n') }

// Generate emits a single C header covering every requested dialect
// for every program in inp. It first checks the completeness
// precondition and returns only diagnostics, no partial text, if it
// fails.
func Generate(inp *input.Input, crossSet cross.CrossSet, byteSet bytecode.BytecodeSet, dialects []cross.Dialect, opts Options) (string, []diag.Diagnostic) {
	if errs := cross.CheckCoverage(inp, crossSet, dialects); len(errs) > 0 {
		return "", errs
	}
	if opts.NoIfdef && len(dialects) != 1 {
		return "", []diag.Diagnostic{diag.NewFile(inp.Path,
			"--no-ifdef requires exactly one target dialect, got %d", len(dialects))}
	}

	prefix := ModPrefix(inp.Module)
	guard := strings.ToUpper(prefix) + "SHADER_H_INCLUDED"

	w := &writer{}
	w.line("// generated by sokol-shdc; do not edit")
	if opts.GenVersion != "" {
		w.line("// version: %s", opts.GenVersion)
	}
	w.line("#pragma once")
	w.line("#ifndef %s", guard)
	w.line("#define %s", guard)
	w.blank()

	writeReflectTypedefs(w)

	for _, d := range dialects {
		writeDialectBlock(w, inp, crossSet, byteSet, d, prefix, opts.NoIfdef)
	}

	writeShaderDescFuncs(w, inp, dialects, prefix, opts.NoIfdef)

	w.line("#endif // %s", guard)
	return w.out.String(), nil
}

// writeReflectTypedefs emits the descriptor types every stage
// descriptor and shader descriptor below is built from. It is written
// once per header, guarded independently of the main include guard so
// two generated headers can be included from the same translation
// unit without a redefinition error.
func writeReflectTypedefs(w *writer) {
	w.line("#ifndef SG_SHDC_REFLECT_TYPES_DEFINED")
	w.line("#define SG_SHDC_REFLECT_TYPES_DEFINED")
	w.line("typedef struct sg_shader_attr_desc_t {")
	w.line("    const char* name;")
	w.line("    int slot;")
	w.line("    const char* sem_name;")
	w.line("    int sem_index;")
	w.line("} sg_shader_attr_desc_t;")
	w.line("typedef struct sg_shader_uniform_desc_t {")
	w.line("    const char* name;")
	w.line("    sg_uniform_type type;")
	w.line("    int array_count;")
	w.line("    int offset;")
	w.line("} sg_shader_uniform_desc_t;")
	w.line("typedef struct sg_shader_uniform_block_desc_t {")
	w.line("    int slot;")
	w.line("    const char* name;")
	w.line("    int size;")
	w.line("    int num_uniforms;")
	w.line("    const sg_shader_uniform_desc_t* uniforms;")
	w.line("} sg_shader_uniform_block_desc_t;")
	w.line("typedef struct sg_shader_image_desc_t {")
	w.line("    int slot;")
	w.line("    const char* name;")
	w.line("    sg_image_type image_type;")
	w.line("} sg_shader_image_desc_t;")
	w.line("typedef struct sg_shader_stage_desc_t {")
	w.line("    const char* source;")
	w.line("    const void* bytecode;")
	w.line("    int bytecode_size;")
	w.line("    const char* entry;")
	w.line("    int num_attrs;")
	w.line("    const sg_shader_attr_desc_t* attrs;")
	w.line("    int num_uniform_blocks;")
	w.line("    const sg_shader_uniform_block_desc_t* uniform_blocks;")
	w.line("    int num_images;")
	w.line("    const sg_shader_image_desc_t* images;")
	w.line("} sg_shader_stage_desc_t;")
	w.line("typedef struct sg_shader_desc_t {")
	w.line("    const char* label;")
	w.line("    sg_shader_stage_desc_t vs;")
	w.line("    sg_shader_stage_desc_t fs;")
	w.line("} sg_shader_desc_t;")
	w.line("#endif // SG_SHDC_REFLECT_TYPES_DEFINED")
	w.blank()
}

func writeDialectBlock(w *writer, inp *input.Input, crossSet cross.CrossSet, byteSet bytecode.BytecodeSet, d cross.Dialect, prefix string, noIfdef bool) {
	if !noIfdef {
		w.line("#if defined(%s)", d.ConditionalToken())
		w.indent++
	}
	for idx, sn := range inp.Snippets {
		if sn.Kind != input.KindVertex && sn.Kind != input.KindFragment {
			continue
		}
		src, ok := crossSet.FindBySnippet(d, idx)
		if !ok {
			continue
		}
		base := fmt.Sprintf("%s%s_%s", prefix, Camel(sn.Name), d.Tag())
		writeSourceConstant(w, base, src)
		blob, hasBytecode := byteSet.BlobFor(d, idx)
		if hasBytecode {
			writeBytecodeArray(w, base, blob)
		}
		writeReflectionArrays(w, base, src.Reflection)
		writeStageDesc(w, base, src.Reflection, hasBytecode, blob)
	}
	if !noIfdef {
		w.indent--
		w.line("#endif // %s", d.ConditionalToken())
	}
	w.blank()
}

func writeSourceConstant(w *writer, base string, src cross.CrossSource) {
	escaped := escapeCString(ReplaceCommentTokens(src.SourceCode))
	w.line("static const char* %s_source =", base)
	w.indent++
	for _, l := range strings.Split(escaped, "\n") {
		w.line("%q", l+"\n")
	}
	w.out.WriteString(strings.Repeat("    ", w.indent))
	w.out.WriteString(";\n")
	w.indent--
}

func escapeCString(s string) string {
	return strings.ReplaceAll(s, `"`, `\"`)
}

// writeReflectionArrays emits the typed attr/uniform-block/image
// arrays a stage descriptor points into. Empty categories emit no
// array; writeStageDesc substitutes NULL/0 for those.
func writeReflectionArrays(w *writer, base string, r cross.Reflection) {
	if len(r.Attrs) > 0 {
		w.line("static const sg_shader_attr_desc_t %s_attrs[] = {", base)
		w.indent++
		for _, a := range r.Attrs {
			w.line("{ .name = %q, .slot = %d, .sem_name = %q, .sem_index = %d },", a.Name, a.Slot, a.SemName, a.SemIndex)
		}
		w.indent--
		w.line("};")
	}
	for bi, b := range r.UniformBlocks {
		if len(b.Uniforms) == 0 {
			continue
		}
		w.line("static const sg_shader_uniform_desc_t %s_ub%d_uniforms[] = {", base, bi)
		w.indent++
		for _, u := range b.Uniforms {
			w.line("{ .name = %q, .type = SG_UNIFORMTYPE_%s, .array_count = %d, .offset = %d },",
				u.Name, u.Type, maxInt(u.ArrayCount, 1), u.Offset)
		}
		w.indent--
		w.line("};")
	}
	if len(r.UniformBlocks) > 0 {
		w.line("static const sg_shader_uniform_block_desc_t %s_blocks[] = {", base)
		w.indent++
		for bi, b := range r.UniformBlocks {
			uniforms := "0"
			if len(b.Uniforms) > 0 {
				uniforms = fmt.Sprintf("%s_ub%d_uniforms", base, bi)
			}
			w.line("{ .slot = %d, .name = %q, .size = %d, .num_uniforms = %d, .uniforms = %s },",
				b.Slot, b.Name, b.Size, len(b.Uniforms), uniforms)
		}
		w.indent--
		w.line("};")
	}
	if len(r.Images) > 0 {
		w.line("static const sg_shader_image_desc_t %s_images[] = {", base)
		w.indent++
		for _, img := range r.Images {
			w.line("{ .slot = %d, .name = %q, .image_type = SG_%s },", img.Slot, img.Name, img.Kind)
		}
		w.indent--
		w.line("};")
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func writeBytecodeArray(w *writer, base string, blob bytecode.BytecodeBlob) {
	w.line("static const uint8_t %s_bytecode[%d] = {", base, len(blob.Data))
	w.indent++
	const perLine = 16
	for i := 0; i < len(blob.Data); i += perLine {
		end := i + perLine
		if end > len(blob.Data) {
			end = len(blob.Data)
		}
		parts := make([]string, 0, end-i)
		for _, b := range blob.Data[i:end] {
			parts = append(parts, "0x"+strconv.FormatUint(uint64(b), 16))
		}
		w.line("%s,", strings.Join(parts, ", "))
	}
	w.indent--
	w.line("};")
}

// writeStageDesc emits the sg_shader_stage_desc_t value for one
// (snippet, dialect) pair, wiring in whichever reflection arrays
// writeReflectionArrays produced above it.
func writeStageDesc(w *writer, base string, r cross.Reflection, hasBytecode bool, blob bytecode.BytecodeBlob) {
	bytecodeExpr, bytecodeSize := "0", "0"
	if hasBytecode {
		bytecodeExpr = base + "_bytecode"
		bytecodeSize = fmt.Sprintf("%d", len(blob.Data))
	}
	attrsExpr, numAttrs := "0", 0
	if len(r.Attrs) > 0 {
		attrsExpr, numAttrs = base+"_attrs", len(r.Attrs)
	}
	blocksExpr, numBlocks := "0", 0
	if len(r.UniformBlocks) > 0 {
		blocksExpr, numBlocks = base+"_blocks", len(r.UniformBlocks)
	}
	imagesExpr, numImages := "0", 0
	if len(r.Images) > 0 {
		imagesExpr, numImages = base+"_images", len(r.Images)
	}

	w.line("static const sg_shader_stage_desc_t %s_desc = {", base)
	w.indent++
	w.line(".source = %s_source,", base)
	w.line(".bytecode = %s, .bytecode_size = %s,", bytecodeExpr, bytecodeSize)
	w.line(".entry = %q,", r.EntryPoint)
	w.line(".num_attrs = %d, .attrs = %s,", numAttrs, attrsExpr)
	w.line(".num_uniform_blocks = %d, .uniform_blocks = %s,", numBlocks, blocksExpr)
	w.line(".num_images = %d, .images = %s,", numImages, imagesExpr)
	w.indent--
	w.line("};")
}

// writeShaderDescFuncs emits, per program, an accessor that assembles
// a full sg_shader_desc_t from both sides' stage descriptors for
// whichever dialect the including translation unit was built with.
func writeShaderDescFuncs(w *writer, inp *input.Input, dialects []cross.Dialect, prefix string, noIfdef bool) {
	for _, prog := range inp.OrderedPrograms() {
		w.line("// shader program: %s", prog.Name)
		w.line("static inline sg_shader_desc_t %s%s_shader_desc(void) {", prefix, prog.Name)
		w.indent++
		writeShaderDescDispatch(w, prefix, prog, dialects, noIfdef)
		w.indent--
		w.line("}")
		w.blank()
	}
}

func writeShaderDescDispatch(w *writer, prefix string, prog input.Program, dialects []cross.Dialect, noIfdef bool) {
	for _, d := range dialects {
		vsBase := fmt.Sprintf("%s%s_%s", prefix, Camel(prog.VSName), d.Tag())
		fsBase := fmt.Sprintf("%s%s_%s", prefix, Camel(prog.FSName), d.Tag())
		if !noIfdef {
			w.line("#if defined(%s)", d.ConditionalToken())
		}
		w.line("return (sg_shader_desc_t){ .label = %q, .vs = %s_desc, .fs = %s_desc };", prog.Name, vsBase, fsBase)
		if !noIfdef {
			w.line("#endif")
		}
	}
	w.line("return (sg_shader_desc_t){0};")
}
