// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package debugdump writes a machine-readable snapshot of a pipeline
// run to a MessagePack sidecar file (--dump-artifacts), so tooling
// other than the CLI's own text diagnostic output — IDE plugins,
// build-cache invalidation, asset pipelines — can inspect what a run
// produced without re-parsing generated C headers. The same Snapshot
// also backs the plain-text stage trace printed for --debug-dump,
// which RenderText formats.
package debugdump
