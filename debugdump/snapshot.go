// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package debugdump

import (
	"fmt"
	"os"
	"strings"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/mothfuzz/sokol-shdc/bytecode"
	"github.com/mothfuzz/sokol-shdc/cross"
	"github.com/mothfuzz/sokol-shdc/input"
)

// SnippetInfo is one @block/@vs/@fs snippet's summary.
type SnippetInfo struct {
	Name      string `msgpack:"name"`
	Kind      string `msgpack:"kind"`
	NumLines  int    `msgpack:"num_lines"`
	FirstLine int    `msgpack:"first_line"`
}

// ProgramInfo is one @program's summary.
type ProgramInfo struct {
	Name string `msgpack:"name"`
	VS   string `msgpack:"vs"`
	FS   string `msgpack:"fs"`
}

// ReflectionInfo mirrors cross.Reflection in a msgpack-friendly shape.
type ReflectionInfo struct {
	Stage         string   `msgpack:"stage"`
	EntryPoint    string   `msgpack:"entry_point"`
	NumAttrs      int      `msgpack:"num_attrs"`
	UniformBlocks []string `msgpack:"uniform_blocks"`
	Images        []string `msgpack:"images"`
}

// DialectInfo is one requested dialect's per-snippet translation and
// bytecode summary.
type DialectInfo struct {
	Tag         string           `msgpack:"tag"`
	Sources     []ReflectionInfo `msgpack:"sources"`
	BytecodeLen []int            `msgpack:"bytecode_lengths"`
}

// Snapshot is the full machine-readable record of one pipeline run.
type Snapshot struct {
	Path     string        `msgpack:"path"`
	Module   string        `msgpack:"module"`
	Snippets []SnippetInfo `msgpack:"snippets"`
	Programs []ProgramInfo `msgpack:"programs"`
	Dialects []DialectInfo `msgpack:"dialects"`
}

// Build assembles a Snapshot from a completed pipeline run's outputs.
func Build(inp *input.Input, crossSet cross.CrossSet, byteSet bytecode.BytecodeSet, dialects []cross.Dialect) Snapshot {
	snap := Snapshot{Path: inp.Path, Module: inp.Module}
	for _, sn := range inp.Snippets {
		snap.Snippets = append(snap.Snippets, SnippetInfo{
			Name: sn.Name, Kind: sn.Kind.String(), NumLines: len(sn.Lines), FirstLine: sn.FirstLine(),
		})
	}
	for _, prog := range inp.OrderedPrograms() {
		snap.Programs = append(snap.Programs, ProgramInfo{Name: prog.Name, VS: prog.VSName, FS: prog.FSName})
	}
	for _, d := range dialects {
		di := DialectInfo{Tag: d.Tag()}
		for _, src := range crossSet.Sources[d] {
			var blocks []string
			for _, b := range src.Reflection.UniformBlocks {
				blocks = append(blocks, fmt.Sprintf("%s(%d bytes)", b.Name, b.Size))
			}
			var images []string
			for _, img := range src.Reflection.Images {
				images = append(images, img.Name)
			}
			di.Sources = append(di.Sources, ReflectionInfo{
				Stage:         src.Reflection.Stage.String(),
				EntryPoint:    src.Reflection.EntryPoint,
				NumAttrs:      len(src.Reflection.Attrs),
				UniformBlocks: blocks,
				Images:        images,
			})
		}
		for _, blob := range byteSet.Blobs {
			if blob.Dialect == d {
				di.BytecodeLen = append(di.BytecodeLen, len(blob.Data))
			}
		}
		snap.Dialects = append(snap.Dialects, di)
	}
	return snap
}

// Write encodes snap as MessagePack and writes it to path.
func Write(path string, snap Snapshot) error {
	data, err := msgpack.Marshal(snap)
	if err != nil {
		return fmt.Errorf("debugdump: encoding snapshot: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("debugdump: writing %s: %w", path, err)
	}
	return nil
}

// RenderText formats snap as the terse, indented stage-by-stage trace
// that args_t::dump_debug() and friends printed in the original tool:
// one line per snippet, program, and per-dialect translation result.
func RenderText(snap Snapshot) string {
	var b strings.Builder
	fmt.Fprintf(&b, "input: %s\n", snap.Path)
	fmt.Fprintf(&b, "module: %s\n", snap.Module)
	fmt.Fprintf(&b, "snippets: %d\n", len(snap.Snippets))
	for _, sn := range snap.Snippets {
		fmt.Fprintf(&b, "  %s %s (line %d, %d lines)\n", sn.Kind, sn.Name, sn.FirstLine, sn.NumLines)
	}
	fmt.Fprintf(&b, "programs: %d\n", len(snap.Programs))
	for _, p := range snap.Programs {
		fmt.Fprintf(&b, "  %s: vs=%s fs=%s\n", p.Name, p.VS, p.FS)
	}
	fmt.Fprintf(&b, "dialects: %d\n", len(snap.Dialects))
	for _, d := range snap.Dialects {
		fmt.Fprintf(&b, "  %s: %d source(s), %d bytecode blob(s)\n", d.Tag, len(d.Sources), len(d.BytecodeLen))
		for _, src := range d.Sources {
			fmt.Fprintf(&b, "    %s entry=%s attrs=%d uniform_blocks=%v images=%v\n",
				src.Stage, src.EntryPoint, src.NumAttrs, src.UniformBlocks, src.Images)
		}
	}
	return b.String()
}

// Read decodes a MessagePack file back into a Snapshot, used by tests
// and by tooling that consumes --dump-artifacts output.
func Read(path string) (Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Snapshot{}, fmt.Errorf("debugdump: reading %s: %w", path, err)
	}
	var snap Snapshot
	if err := msgpack.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("debugdump: decoding %s: %w", path, err)
	}
	return snap, nil
}
