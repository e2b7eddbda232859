// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli provides the command-line framework for the cronkit CLI.
//
// The central type is [Command], which represents a named subcommand with
// optional nested [Command.Subcommands], a parameter struct whose tagged
// fields become pflag flags (see [BindFlags]), and a Run function.
// Commands are assembled into a tree by cmd/cronkit/commands and
// dispatched via [Command.Execute], which handles flag parsing,
// subcommand routing, and structured help output with examples.
//
// When a user types an unknown subcommand or flag, the framework computes
// Levenshtein edit distance against all known names and suggests the
// closest match (threshold: distance <= 3). This is implemented in
// suggest.go.
//
// Output goes through [Emit], which writes a command's result as text,
// JSON, or CBOR according to its --format flag. Diagnostics go to stderr
// through the logger from [NewCommandLogger]; [ExitError] carries a
// non-zero exit status for outcomes that are not failures, such as an
// instant that does not match.
package cli
