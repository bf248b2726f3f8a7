// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Command sokolshdc is the sokol-shdc CLI driver: it parses arguments,
// sequences the pipeline in package shdc, writes the generated
// header, and returns an exit code of 0 on success, 10 on an argument
// error, or 1 if the shader itself produced any diagnostic.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	shdc "github.com/mothfuzz/sokol-shdc"
	"github.com/mothfuzz/sokol-shdc/config"
	"github.com/mothfuzz/sokol-shdc/cross"
	"github.com/mothfuzz/sokol-shdc/debugdump"
	"github.com/mothfuzz/sokol-shdc/diag"
)

const (
	exitOK       = 0
	exitArgError = 10
	exitFailure  = 1
)

var errorLabel = color.New(color.FgRed, color.Bold)

var (
	flagInput        string
	flagOutput       string
	flagSlang        string
	flagByteCode     bool
	flagNoIfdef      bool
	flagGenVersion   string
	flagFormat       string
	flagDebugDump    bool
	flagDumpArtifact string
)

var rootCmd = &cobra.Command{
	Use:   "sokolshdc",
	Short: "Cross-compile annotated GLSL into a sokol-gfx C header",
	Args:  cobra.NoArgs,
	RunE:  runGenerate,
}

func main() {
	rootCmd.Flags().StringVarP(&flagInput, "input", "i", "", "annotated GLSL input path (required)")
	rootCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "output header path (required)")
	rootCmd.Flags().StringVar(&flagSlang, "slang", "", "colon-separated target dialects, e.g. glsl330:hlsl5")
	rootCmd.Flags().BoolVar(&flagByteCode, "byte-code", false, "also compile vendor bytecode for dialects that support it")
	rootCmd.Flags().BoolVar(&flagNoIfdef, "no-ifdef", false, "omit per-dialect #if guards (requires exactly one dialect)")
	rootCmd.Flags().StringVar(&flagGenVersion, "gen-version", "", "version string stamped into the generated header")
	rootCmd.Flags().StringVar(&flagFormat, "format", "gcc", "diagnostic format: gcc or msvc")
	rootCmd.Flags().BoolVar(&flagDebugDump, "debug-dump", false, "print a plain-text trace of every stage's output to stderr")
	rootCmd.Flags().StringVar(&flagDumpArtifact, "dump-artifacts", "", "also write a MessagePack debug snapshot to this path")

	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		var exitErr *exitStatusError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.code)
		}
		// Any other error comes from cobra's own flag/argument parsing.
		os.Exit(exitArgError)
	}
}

func runGenerate(cmd *cobra.Command, args []string) error {
	if flagInput == "" {
		return &exitStatusError{code: exitArgError, err: fmt.Errorf("--input is required")}
	}

	cfg, _, err := config.Load(".")
	if err != nil {
		return &exitStatusError{code: exitArgError, err: fmt.Errorf("loading shdc.toml: %w", err)}
	}

	slangSpec := flagSlang
	if slangSpec == "" {
		slangSpec = cfg.Defaults.Slang
	}
	if slangSpec == "" {
		return &exitStatusError{code: exitArgError, err: fmt.Errorf("--slang is required (no shdc.toml default found)")}
	}
	dialects, err := cross.ParseDialectSet(slangSpec)
	if err != nil {
		return &exitStatusError{code: exitArgError, err: err}
	}

	if flagOutput == "" {
		return &exitStatusError{code: exitArgError, err: fmt.Errorf("--output is required")}
	}

	format := flagFormat
	if !cmd.Flags().Changed("format") && cfg.Defaults.Format != "" {
		format = cfg.Defaults.Format
	}
	diagFormat := diag.ParseFormat(format)

	byteCode := cfg.Defaults.ByteCode
	if cmd.Flags().Changed("byte-code") {
		byteCode = flagByteCode
	}
	noIfdef := cfg.Defaults.NoIfdef
	if cmd.Flags().Changed("no-ifdef") {
		noIfdef = flagNoIfdef
	}
	genVersion := flagGenVersion
	if genVersion == "" {
		genVersion = cfg.Defaults.GenVersion
	}

	opts := shdc.Options{
		InputPath:     flagInput,
		OutputPath:    flagOutput,
		Dialects:      dialects,
		ByteCode:      byteCode,
		NoIfdef:       noIfdef,
		GenVersion:    genVersion,
		DebugDumpPath: flagDumpArtifact,
		DebugDump:     flagDebugDump,
	}

	result, diags, err := shdc.Run(opts)
	if err != nil {
		return &exitStatusError{code: exitFailure, err: err}
	}
	if flagDebugDump {
		fmt.Fprint(os.Stderr, debugdump.RenderText(result.Snapshot))
	}
	if len(diags) > 0 {
		for _, d := range diags {
			errorLabel.Fprint(os.Stderr, "error: ")
			fmt.Fprintln(os.Stderr, d.Render(diagFormat))
		}
		return &exitStatusError{code: exitFailure, err: fmt.Errorf("%d diagnostic(s)", len(diags))}
	}

	if err := shdc.WriteHeader(opts, result); err != nil {
		return &exitStatusError{code: exitFailure, err: err}
	}
	return nil
}

// exitStatusError carries an explicit process exit code alongside a
// cobra-compatible error so main can propagate it precisely.
type exitStatusError struct {
	code int
	err  error
}

func (e *exitStatusError) Error() string { return e.err.Error() }
