// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package cross

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// SpirvCrossTranslator wraps the spirv-cross command-line tool,
// following the same "write a temp file, invoke the binary, read its
// output back" idiom used to wrap xcrun's metal compiler and fxc.exe
// elsewhere in this module. It is exercised only when SPIRVCROSS_PATH
// or a spirv-cross binary on $PATH is present; call NewSpirvCrossTranslator
// to construct one, which fails fast if the binary can't be found.
type SpirvCrossTranslator struct {
	binPath string
	workDir string
}

// NewSpirvCrossTranslator locates the spirv-cross binary (via
// $SPIRVCROSS_PATH or $PATH) and prepares a scratch directory for
// intermediate files.
func NewSpirvCrossTranslator() (*SpirvCrossTranslator, error) {
	bin := os.Getenv("SPIRVCROSS_PATH")
	if bin == "" {
		found, err := exec.LookPath("spirv-cross")
		if err != nil {
			return nil, fmt.Errorf("cross: spirv-cross not found on PATH and SPIRVCROSS_PATH not set: %w", err)
		}
		bin = found
	}
	dir, err := os.MkdirTemp("", "sokol-shdc-cross-*")
	if err != nil {
		return nil, fmt.Errorf("cross: creating scratch dir: %w", err)
	}
	return &SpirvCrossTranslator{binPath: bin, workDir: dir}, nil
}

// Close removes the scratch directory.
func (t *SpirvCrossTranslator) Close() error {
	return os.RemoveAll(t.workDir)
}

func (t *SpirvCrossTranslator) dialectFlags(d Dialect) []string {
	switch d {
	case GLSL330:
		return []string{"--version", "330", "--no-es"}
	case GLSL100:
		return []string{"--version", "100", "--es"}
	case GLSL300ES:
		return []string{"--version", "300", "--es"}
	case HLSL5:
		return []string{"--hlsl", "--shader-model", "50"}
	case MetalMacOS:
		return []string{"--msl", "--msl-version", "20100"}
	case MetalIOS:
		return []string{"--msl", "--msl-version", "20100", "--msl-ios"}
	default:
		return nil
	}
}

func (t *SpirvCrossTranslator) Translate(bytecode []uint32, stage Stage, dialect Dialect) (string, RawReflection, error) {
	if len(bytecode) == 0 {
		return "", RawReflection{}, fmt.Errorf("empty bytecode")
	}

	spvPath := filepath.Join(t.workDir, fmt.Sprintf("in-%s-%s.spv", stage, dialect.Tag()))
	if err := writeSpirvFile(spvPath, bytecode); err != nil {
		return "", RawReflection{}, err
	}

	outPath := filepath.Join(t.workDir, fmt.Sprintf("out-%s-%s%s", stage, dialect.Tag(), dialect.FileExtension()))
	args := append([]string{spvPath, "--output", outPath}, t.dialectFlags(dialect)...)
	if out, err := exec.Command(t.binPath, args...).CombinedOutput(); err != nil {
		return "", RawReflection{}, fmt.Errorf("spirv-cross translate failed: %w: %s", err, out)
	}
	source, err := os.ReadFile(outPath)
	if err != nil {
		return "", RawReflection{}, fmt.Errorf("reading translated source: %w", err)
	}

	reflPath := filepath.Join(t.workDir, fmt.Sprintf("refl-%s-%s.json", stage, dialect.Tag()))
	reflArgs := []string{spvPath, "--reflect", "--output", reflPath}
	if out, err := exec.Command(t.binPath, reflArgs...).CombinedOutput(); err != nil {
		return "", RawReflection{}, fmt.Errorf("spirv-cross reflect failed: %w: %s", err, out)
	}
	reflData, err := os.ReadFile(reflPath)
	if err != nil {
		return "", RawReflection{}, fmt.Errorf("reading reflect json: %w", err)
	}
	raw, err := parseSpirvCrossReflectJSON(reflData)
	if err != nil {
		return "", RawReflection{}, err
	}
	return string(source), raw, nil
}

func writeSpirvFile(path string, words []uint32) error {
	var buf bytes.Buffer
	if err := binary.Write(&buf, binary.LittleEndian, words); err != nil {
		return fmt.Errorf("encoding SPIR-V words: %w", err)
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

// spirvCrossReflectJSON mirrors the shape of spirv-cross's --reflect
// output closely enough to drive this pipeline's normalization step.
type spirvCrossReflectJSON struct {
	EntryPoints []struct {
		Name string `json:"name"`
	} `json:"entryPoints"`
	Inputs []struct {
		Name     string `json:"name"`
		Location int    `json:"location"`
		Semantic string `json:"semantic"`
	} `json:"inputs"`
	UBOs []struct {
		Name    string `json:"name"`
		Binding int    `json:"binding"`
		Members []struct {
			Name      string `json:"name"`
			Type      string `json:"type"`
			Offset    int    `json:"offset"`
			ArraySize int    `json:"array_size"`
		} `json:"members"`
	} `json:"ubos"`
	Textures []struct {
		Name    string `json:"name"`
		Binding int    `json:"binding"`
		Dim     string `json:"dim"`
	} `json:"textures"`
}

func parseSpirvCrossReflectJSON(data []byte) (RawReflection, error) {
	var doc spirvCrossReflectJSON
	if err := json.Unmarshal(data, &doc); err != nil {
		return RawReflection{}, fmt.Errorf("parsing spirv-cross reflect json: %w", err)
	}
	raw := RawReflection{}
	if len(doc.EntryPoints) > 0 {
		raw.EntryPoint = doc.EntryPoints[0].Name
	}
	for i, in := range doc.Inputs {
		raw.Attrs = append(raw.Attrs, RawAttr{
			Slot: in.Location, Name: in.Name, SemName: in.Semantic, SemIndex: i,
		})
	}
	for _, ubo := range doc.UBOs {
		block := RawUniformBlock{Slot: ubo.Binding, Name: ubo.Name}
		for _, m := range ubo.Members {
			block.Members = append(block.Members, RawUniform{
				Name: m.Name, TypeName: m.Type, ArrayCount: m.ArraySize, Offset: m.Offset,
			})
		}
		raw.UniformBlocks = append(raw.UniformBlocks, block)
	}
	for _, tex := range doc.Textures {
		raw.Images = append(raw.Images, RawImage{Slot: tex.Binding, Name: tex.Name, Dim: tex.Dim})
	}
	return raw, nil
}
