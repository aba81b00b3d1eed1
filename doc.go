// Copyright (c) 2026 The prefer authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

/*
Package prefer resolves an application's configuration by name.

Given a bare name like "settings", [Load] probes the platform's standard
configuration locations (current directory first, then user-scoped, then
system-wide) for a file in any enabled format (JSON, JSON5, YAML, TOML, INI,
XML), parses the first file that exists, and returns an immutable [Config]
snapshot. Values are read with the dot-notation accessor [Get], or decoded
into structs with [Config.Unmarshal].

[Watch] keeps a snapshot current: it re-runs the full discovery pipeline when
the resolved file changes and publishes each fresh [Config] to subscribers.
A snapshot is never mutated in place, so readers holding an older Config keep
seeing consistent data.
*/
package prefer
