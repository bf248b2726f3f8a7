// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package cross

import (
	"github.com/mothfuzz/sokol-shdc/diag"
	"github.com/mothfuzz/sokol-shdc/input"
	"github.com/mothfuzz/sokol-shdc/spirvc"
)

// Translate runs stage (c) of the pipeline: every SPIR-V blob in spirv
// is translated to every dialect in dialects using translator. A
// failure translating or reflecting a single (snippet, dialect) pair
// is recorded as a diagnostic and does not prevent the remaining
// pairs from being attempted.
func Translate(inp *input.Input, spirv spirvc.SpirvSet, dialects []Dialect, translator Translator) CrossSet {
	set := CrossSet{Sources: make(map[Dialect][]CrossSource, len(dialects))}
	for _, d := range dialects {
		for _, blob := range spirv.Blobs {
			sn := inp.Snippets[blob.SnippetIndex]
			stage, ok := stageOf(sn.Kind)
			if !ok {
				continue
			}
			source, raw, err := translator.Translate(blob.Bytecode, stage, d)
			if err != nil {
				set.Errors = append(set.Errors, diag.New(inp.Path, sn.FirstLine(),
					"%s translation failed for snippet %q: %v", d.Tag(), sn.Name, err))
				continue
			}
			refl, err := normalize(d, stage, raw)
			if err != nil {
				set.Errors = append(set.Errors, diag.New(inp.Path, sn.FirstLine(),
					"%s reflection failed for snippet %q: %v", d.Tag(), sn.Name, err))
				continue
			}
			set.Sources[d] = append(set.Sources[d], CrossSource{
				SnippetIndex: blob.SnippetIndex,
				SourceCode:   source,
				Reflection:   refl,
			})
		}
	}
	return set
}

func stageOf(k input.Kind) (Stage, bool) {
	switch k {
	case input.KindVertex:
		return StageVertex, true
	case input.KindFragment:
		return StageFragment, true
	default:
		return 0, false
	}
}

// CheckCoverage verifies the coverage precondition: for every
// program and every dialect in dialects, both its vertex and fragment
// snippets must have a CrossSource. It returns one diagnostic per
// missing side; an empty result means the header generator may
// proceed for all of dialects.
func CheckCoverage(inp *input.Input, set CrossSet, dialects []Dialect) []diag.Diagnostic {
	var errs []diag.Diagnostic
	for _, prog := range inp.OrderedPrograms() {
		vsIdx, vsOK := inp.VSMap[prog.VSName]
		fsIdx, fsOK := inp.FSMap[prog.FSName]
		if !vsOK {
			errs = append(errs, diag.New(inp.Path, prog.DeclLine,
				"program %q: vertex shader %q not found", prog.Name, prog.VSName))
		}
		if !fsOK {
			errs = append(errs, diag.New(inp.Path, prog.DeclLine,
				"program %q: fragment shader %q not found", prog.Name, prog.FSName))
		}
		for _, d := range dialects {
			if vsOK {
				if _, ok := set.FindBySnippet(d, vsIdx); !ok {
					errs = append(errs, diag.New(inp.Path, prog.DeclLine,
						"program %q: no %s translation for vertex shader %q", prog.Name, d.Tag(), prog.VSName))
				}
			}
			if fsOK {
				if _, ok := set.FindBySnippet(d, fsIdx); !ok {
					errs = append(errs, diag.New(inp.Path, prog.DeclLine,
						"program %q: no %s translation for fragment shader %q", prog.Name, d.Tag(), prog.FSName))
				}
			}
		}
	}
	return errs
}
