// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package cross

import "github.com/mothfuzz/sokol-shdc/diag"

// CrossSource is one snippet successfully translated to one dialect.
type CrossSource struct {
	SnippetIndex int
	SourceCode   string
	Reflection   Reflection
}

// CrossSet is the output of stage (c): the accumulated translations
// and diagnostics across every requested dialect. Sources is keyed by
// dialect; within a dialect's slice, entries are in ascending
// SnippetIndex order because Translate walks blobs in that order.
type CrossSet struct {
	Errors  []diag.Diagnostic
	Sources map[Dialect][]CrossSource
}

// FindBySnippet returns the CrossSource for a given dialect and
// snippet index, if one was produced.
func (s CrossSet) FindBySnippet(d Dialect, snippetIndex int) (CrossSource, bool) {
	for _, cs := range s.Sources[d] {
		if cs.SnippetIndex == snippetIndex {
			return cs, true
		}
	}
	return CrossSource{}, false
}

// HasErrors reports whether any translation in this set failed.
func (s CrossSet) HasErrors() bool { return len(s.Errors) > 0 }
