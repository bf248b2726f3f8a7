// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package input implements stage (a) of the sokol-shdc pipeline: it
// reads a single annotated GLSL-dialect source file and resolves it
// into a set of named Snippets and Programs.
//
// # Directive grammar
//
// A line beginning (after leading whitespace) with '@' is a directive;
// every other line is shader source text belonging to whichever
// snippet is currently open. Recognised directives:
//
//	@block NAME             begin a Block snippet
//	@vs NAME                begin a Vertex snippet
//	@fs NAME                begin a Fragment snippet
//	@end                    end the current snippet
//	@include_block NAME     splice a Block's resolved lines here
//	@program NAME VS FS     record a vertex/fragment pairing
//	@type NAME TYPESTR      record a uniform type alias
//	@module NAME            set the output symbol-name prefix
//
// Snippet definitions cannot nest, @program/@type/@module are only
// valid outside any snippet, and every name (snippet, program,
// include, module) is resolved as soon as it is used: blocks must
// be fully closed (their lines fully resolved) before they can be
// named by @include_block, and a @program's VS/FS names must already
// name closed Vertex/Fragment snippets at the point of declaration.
//
// # Back-linking
//
// Every Snippet's Lines field holds zero-based indices into the
// owning Input's Lines slice, not copies of the text. This is an
// arena model: Input outlives every downstream pipeline artifact, and
// everything after this stage addresses source text by index rather
// than owning it.
package input
