// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package input

import (
	"os"
	"strings"

	"github.com/mothfuzz/sokol-shdc/diag"
)

// Parse reads the annotated source file at path and resolves it into
// an Input. On any failure the returned Input's Err field is a valid
// Diagnostic and the other fields hold only what was resolved before
// the failing line; callers must check Err before using the result.
func Parse(path string) *Input {
	raw, err := os.ReadFile(path)
	if err != nil {
		return &Input{Path: path, Err: diag.NewFile(path, "cannot read input file: %v", err)}
	}
	return ParseSource(path, string(raw))
}

// ParseSource parses already-loaded source text as if it had been read
// from path. It is the entry point Parse delegates to, split out so
// tests can exercise the directive grammar without touching a
// filesystem.
func ParseSource(path, source string) *Input {
	p := &parser{
		inp: &Input{
			Path:     path,
			Lines:    splitLines(source),
			TypeMap:  make(map[string]string),
			Programs: make(map[string]Program),
			AllMap:   make(map[string]int),
			BlockMap: make(map[string]int),
			VSMap:    make(map[string]int),
			FSMap:    make(map[string]int),
		},
		current: -1,
	}
	p.run()
	return p.inp
}

func splitLines(source string) []string {
	source = strings.ReplaceAll(source, "\r\n", "\n")
	source = strings.ReplaceAll(source, "\r", "\n")
	return strings.Split(source, "\n")
}

// parser holds the mutable state of a single top-to-bottom pass over
// Input.Lines. Because blocks must be fully closed before they can be
// included, and includes only ever splice an already-resolved index
// slice, a single forward pass is sufficient: there is no recursive
// re-expansion step, so an include cycle cannot arise structurally.
type parser struct {
	inp     *Input
	current int // index into inp.Snippets of the open snippet, or -1
}

func (p *parser) fail(line int, format string, args ...any) {
	if p.inp.Err.Valid {
		return // first error wins
	}
	p.inp.Err = diag.New(p.inp.Path, line, format, args...)
}

func (p *parser) failed() bool {
	return p.inp.Err.Valid
}

func (p *parser) run() {
	for i, line := range p.inp.Lines {
		if p.failed() {
			return
		}
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || trimmed[0] != '@' {
			p.codeLine(i)
			continue
		}
		p.directive(i, trimmed)
	}
	if p.failed() {
		return
	}
	if p.current >= 0 {
		p.fail(p.inp.Snippets[p.current].DeclLine, "unclosed snippet %q", p.inp.Snippets[p.current].Name)
	}
}

func (p *parser) codeLine(i int) {
	if p.current < 0 {
		// A stray or blank line outside any snippet (a header comment
		// before the first @block, typically) contributes nothing.
		return
	}
	sn := &p.inp.Snippets[p.current]
	sn.Lines = append(sn.Lines, i)
}

func (p *parser) directive(i int, trimmed string) {
	fields := strings.Fields(trimmed)
	keyword := fields[0]
	switch keyword {
	case "@block":
		p.beginSnippet(i, fields, KindBlock)
	case "@vs":
		p.beginSnippet(i, fields, KindVertex)
	case "@fs":
		p.beginSnippet(i, fields, KindFragment)
	case "@end":
		p.endSnippet(i, fields)
	case "@include_block":
		p.includeBlock(i, fields)
	case "@program":
		p.program(i, fields)
	case "@type":
		p.typeAlias(i, trimmed, fields)
	case "@module":
		p.module(i, fields)
	default:
		p.fail(i, "unknown directive %q", keyword)
	}
}

func (p *parser) beginSnippet(i int, fields []string, kind Kind) {
	if p.current >= 0 {
		p.fail(i, "cannot nest %s inside snippet %q", fields[0], p.inp.Snippets[p.current].Name)
		return
	}
	if len(fields) != 2 {
		p.fail(i, "%s requires exactly one name argument", fields[0])
		return
	}
	name := fields[1]
	if _, exists := p.inp.AllMap[name]; exists {
		p.fail(i, "duplicate snippet name %q", name)
		return
	}
	p.inp.Snippets = append(p.inp.Snippets, Snippet{Kind: kind, Name: name, DeclLine: i})
	p.current = len(p.inp.Snippets) - 1
}

func (p *parser) endSnippet(i int, fields []string) {
	if len(fields) != 1 {
		p.fail(i, "@end takes no arguments")
		return
	}
	if p.current < 0 {
		p.fail(i, "@end without a matching @block/@vs/@fs")
		return
	}
	idx := p.current
	sn := p.inp.Snippets[idx]
	p.inp.AllMap[sn.Name] = idx
	switch sn.Kind {
	case KindBlock:
		p.inp.BlockMap[sn.Name] = idx
	case KindVertex:
		p.inp.VSMap[sn.Name] = idx
	case KindFragment:
		p.inp.FSMap[sn.Name] = idx
	}
	p.current = -1
}

func (p *parser) includeBlock(i int, fields []string) {
	if p.current < 0 {
		p.fail(i, "@include_block outside any snippet")
		return
	}
	if len(fields) != 2 {
		p.fail(i, "@include_block requires exactly one name argument")
		return
	}
	name := fields[1]
	bidx, ok := p.inp.BlockMap[name]
	if !ok {
		p.fail(i, "unknown block %q in @include_block", name)
		return
	}
	sn := &p.inp.Snippets[p.current]
	sn.Lines = append(sn.Lines, p.inp.Snippets[bidx].Lines...)
}

func (p *parser) program(i int, fields []string) {
	if p.current >= 0 {
		p.fail(i, "@program not allowed inside a snippet")
		return
	}
	if len(fields) != 4 {
		p.fail(i, "@program requires a name, a vertex-shader name and a fragment-shader name")
		return
	}
	name, vs, fs := fields[1], fields[2], fields[3]
	if _, exists := p.inp.Programs[name]; exists {
		p.fail(i, "duplicate program %q", name)
		return
	}
	if _, ok := p.inp.VSMap[vs]; !ok {
		p.fail(i, "@program %q: %q is not a known vertex shader", name, vs)
		return
	}
	if _, ok := p.inp.FSMap[fs]; !ok {
		p.fail(i, "@program %q: %q is not a known fragment shader", name, fs)
		return
	}
	p.inp.Programs[name] = Program{Name: name, VSName: vs, FSName: fs, DeclLine: i}
}

func (p *parser) typeAlias(i int, trimmed string, fields []string) {
	if p.current >= 0 {
		p.fail(i, "@type not allowed inside a snippet")
		return
	}
	if len(fields) < 3 {
		p.fail(i, "@type requires a name and a GLSL type string")
		return
	}
	name := fields[1]
	// The type string is the remainder of the line after the name;
	// interior whitespace is normalized to single spaces since GLSL
	// type syntax does not depend on it.
	typeStr := strings.Join(fields[2:], " ")
	if _, exists := p.inp.TypeMap[name]; exists {
		p.fail(i, "duplicate @type alias %q", name)
		return
	}
	p.inp.TypeMap[name] = typeStr
}

func (p *parser) module(i int, fields []string) {
	if p.current >= 0 {
		p.fail(i, "@module not allowed inside a snippet")
		return
	}
	if len(fields) != 2 {
		p.fail(i, "@module requires exactly one name argument")
		return
	}
	if p.inp.Module != "" {
		p.fail(i, "duplicate @module directive")
		return
	}
	p.inp.Module = fields[1]
}
