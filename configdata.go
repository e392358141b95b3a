package discordipc

import _ "embed"

// DefaultConfigTOML holds the raw bytes of config.default.toml, embedded at
// build time. The [internal/config] package does not read it: its Load
// returns DefaultConfig when the config file is missing.
//
//go:embed config.default.toml
var DefaultConfigTOML []byte
