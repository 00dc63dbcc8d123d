// Package config loads and validates the pipeline configuration.
//
// Configuration is layered: stock defaults, then an optional TOML file
// (repoprompt.toml), then command-line flags applied by the CLI. Validate
// must pass before a pipeline is constructed.
//
// MaxTokens is the raw per-chunk budget; the splitter receives
// EffectiveChunkTokens, which is MaxTokens minus the safety margin, so
// estimation error has headroom before a real model limit is hit.
package config
