// Copyright 2026 The ReqCockpit Authors
// SPDX-License-Identifier: Apache-2.0

// Package config loads the YAML configuration shared by the ReqCockpit
// binaries.
//
// A single file supplies all settings, named either by the
// REQCOCKPIT_CONFIG environment variable (via [Load]) or by a --config
// flag (via [LoadFile]). There is no ~/.config discovery and no
// automatic file search. Unlike a server deployment, a desktop bridge
// must work out of the box, so a missing REQCOCKPIT_CONFIG is not an
// error: [Load] then returns [Default], which points at ~/.reqcockpit
// and a PATH-resolved python3.
//
// After loading, path fields get ${HOME}, ${REQCOCKPIT_ROOT}, and
// ${VAR:-default} references expanded. No other environment variables
// override config values.
//
// The main entry points:
//
//   - [Config] -- master struct with Paths, Invoke, Transcripts, Log
//   - [Default] -- the out-of-the-box configuration
//   - [Load] / [LoadFile] -- environment-named and flag-named loading
//
// This package depends only on lib/project (for the store directory
// layout).
package config
