// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package version provides build version information for the cronkit
// binary.
//
// Version information is injected at build time via -ldflags, for example:
//
//	go build -ldflags "-X github.com/bureau-foundation/cronkit/lib/version.GitCommit=$(git rev-parse --short HEAD)"
//
// Unstamped builds report the VCS revision recorded by the Go toolchain
// when one is available.
package version
