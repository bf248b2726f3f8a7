// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package input

import (
	"sort"

	"github.com/mothfuzz/sokol-shdc/diag"
)

// Kind identifies which of the three snippet types a Snippet is.
type Kind uint8

const (
	// KindBlock is a reusable fragment only ever pulled in via
	// @include_block; it is never compiled on its own.
	KindBlock Kind = iota
	// KindVertex is a @vs snippet, compiled as a vertex shader.
	KindVertex
	// KindFragment is a @fs snippet, compiled as a fragment shader.
	KindFragment
)

// String returns the directive keyword associated with k ("block",
// "vs" or "fs").
func (k Kind) String() string {
	switch k {
	case KindBlock:
		return "block"
	case KindVertex:
		return "vs"
	case KindFragment:
		return "fs"
	default:
		return "<invalid>"
	}
}

// Snippet is a named, contiguous-in-declaration-order region of shader
// source, resolved from the input file's directives.
//
// Lines holds the *resolved* line-index sequence: for a snippet with
// no @include_block directives it is simply the indices of its own
// source lines in file order; for one that includes blocks, the
// included block's already-resolved indices are spliced in at the
// point of inclusion.
type Snippet struct {
	Kind  Kind
	Name  string
	Lines []int
	// DeclLine is the zero-based line index of the directive that
	// opened this snippet (@block/@vs/@fs). It is used as the
	// diagnostic anchor for a snippet whose Lines is empty, and is not
	// itself part of the resolved line set.
	DeclLine int
}

// FirstLine returns the line downstream stages should pin a
// snippet-scoped diagnostic to: the first resolved source line, or the
// snippet's own declaration line if it has none.
func (s Snippet) FirstLine() int {
	if len(s.Lines) > 0 {
		return s.Lines[0]
	}
	return s.DeclLine
}

// Program pairs a vertex snippet with a fragment snippet under a
// single output name.
type Program struct {
	Name    string
	VSName  string
	FSName  string
	// DeclLine is the zero-based line index of the @program directive.
	DeclLine int
}

// Input is the fully parsed and resolved annotated source file: the
// single arena every downstream pipeline stage addresses by index.
type Input struct {
	Err  diag.Diagnostic
	Path string
	// Module is the optional @module prefix used when deriving output
	// symbol names; empty if the file has no @module directive.
	Module string
	// Lines is the input file split on line boundaries. Snippet.Lines
	// entries are indices into this slice.
	Lines []string
	// Snippets holds every @block/@vs/@fs snippet in declaration order.
	Snippets []Snippet
	// TypeMap holds @type NAME TYPESTR aliases.
	TypeMap map[string]string
	// Programs holds every @program, keyed by program name.
	Programs map[string]Program

	// AllMap, BlockMap, VSMap and FSMap map a snippet name to its index
	// in Snippets. AllMap covers every kind; the other three are
	// restricted to snippets of the matching Kind and are the maps
	// @include_block, program vs_name/fs_name resolution consult.
	AllMap   map[string]int
	BlockMap map[string]int
	VSMap    map[string]int
	FSMap    map[string]int
}

// Snippet returns the snippet named name and whether it exists.
func (inp *Input) Snippet(name string) (Snippet, bool) {
	idx, ok := inp.AllMap[name]
	if !ok {
		return Snippet{}, false
	}
	return inp.Snippets[idx], true
}

// SnippetIndex returns the index of the snippet named name, or -1.
func (inp *Input) SnippetIndex(name string) int {
	idx, ok := inp.AllMap[name]
	if !ok {
		return -1
	}
	return idx
}

// OrderedPrograms returns every @program in inp.Programs sorted by
// DeclLine, i.e. the order they appeared in the source file. Map
// iteration order is randomized per process, so any stage that must
// produce byte-identical output across repeated runs on identical
// input — diagnostics, generated header text, debug snapshots — ranges
// over this slice instead of Programs directly.
func (inp *Input) OrderedPrograms() []Program {
	progs := make([]Program, 0, len(inp.Programs))
	for _, p := range inp.Programs {
		progs = append(progs, p)
	}
	sort.Slice(progs, func(i, j int) bool { return progs[i].DeclLine < progs[j].DeclLine })
	return progs
}

// Source concatenates the resolved lines of a snippet with '\n',
// reproducing the exact non-directive shader text that snippet
// represents.
func (inp *Input) Source(s Snippet) string {
	out := ""
	for i, li := range s.Lines {
		if i > 0 {
			out += "\n"
		}
		out += inp.Lines[li]
	}
	return out
}
