// Package config loads, normalizes, and validates tubenotes configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// OPENAI_API_KEY and YOUTUBE_DATA_API_KEY. The Config type centralizes every
// knob the CLI needs: data directories, model endpoints, and the splitter
// and chunker tuning values.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
