// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides YAML configuration loading for the cronkit
// CLI.
//
// Configuration is loaded from a single file specified by either the
// --config flag (via [LoadFile]) or the CRONKIT_CONFIG environment
// variable (via [Load]). [Resolve] applies that precedence and falls
// back to [Default] when neither is given. There is no automatic file
// search.
//
// A complete file:
//
//	dialect: quartz
//	time_zone: ${TZ:-Europe/Berlin}
//	lookahead_years: 20
//	format: json
//	schedules: ${HOME}/schedules.jsonc
//
// Variable expansion is performed on time_zone and schedules after
// loading: ${VAR} and ${VAR:-default} patterns are expanded. No other
// environment variables override config values.
//
// Key exports:
//
//   - [Config] -- dialect, time zone, lookahead, output format, schedule set
//   - [Default] -- the configuration used without a file
//   - [Resolve], [Load] and [LoadFile] -- the entry points for loading
package config
