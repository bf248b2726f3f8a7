// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package header

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.Und)

// capitalizeWord mirrors Python's str.capitalize(): the first rune is
// uppercased, the rest are lowercased. Grounded on util.cc's
// to_pascal_case/to_ada_case, which both call pystring::capitalize on
// each underscore-separated part.
func capitalizeWord(s string) string {
	if s == "" {
		return s
	}
	return titleCaser.String(strings.ToLower(s))
}

// Pascal joins the underscore-separated parts of s, each capitalized:
// "vs_params" -> "VsParams". Grounded verbatim on util.cc's
// to_pascal_case.
func Pascal(s string) string {
	parts := strings.Split(s, "_")
	var b strings.Builder
	for _, p := range parts {
		b.WriteString(capitalizeWord(p))
	}
	return b.String()
}

// Ada joins the underscore-separated parts of s with underscores, each
// capitalized: "vs_params" -> "Vs_Params". Grounded verbatim on
// util.cc's to_ada_case.
func Ada(s string) string {
	parts := strings.Split(s, "_")
	for i, p := range parts {
		parts[i] = capitalizeWord(p)
	}
	return strings.Join(parts, "_")
}

// Camel is Pascal with the first rune lowercased: "vs_params" ->
// "vsParams". Grounded verbatim on util.cc's to_camel_case.
func Camel(s string) string {
	p := Pascal(s)
	if p == "" {
		return p
	}
	first := []rune(p)
	first[0] = []rune(strings.ToLower(string(first[0])))[0]
	return string(first)
}

// Upper is s in all upper case, grounded on util.cc's to_upper_case.
func Upper(s string) string {
	return cases.Upper(language.Und).String(s)
}

// ReplaceCommentTokens rewrites "/*" and "*/" so that generated shader
// source embedded inside a C block comment cannot prematurely close
// it. It is its own inverse under the reverse substitution, grounded
// verbatim on util.cc's replace_C_comment_tokens.
func ReplaceCommentTokens(s string) string {
	s = strings.ReplaceAll(s, "/*", "/_")
	s = strings.ReplaceAll(s, "*/", "_/")
	return s
}

// ModPrefix returns "<module>_" for a non-empty module name, or "" if
// module is empty. Grounded verbatim on util.cc's mod_prefix.
func ModPrefix(module string) string {
	if module == "" {
		return ""
	}
	return module + "_"
}
