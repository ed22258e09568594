// Package config loads, normalizes, and validates studylab configuration data.
//
// It supplies repository defaults, reads TOML files, and honours environment
// fallbacks such as OPENAI_API_KEY and GEMINI_API_KEY. The Config type
// centralizes every knob the HTTP server and CLI need so provider credentials,
// the bind address, and log settings are discovered in one pass.
//
// Always obtain settings through this package so downstream code receives
// trimmed values, canonical log formats, and clear validation errors.
package config
