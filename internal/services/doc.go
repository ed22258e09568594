// Package services defines shared utilities consumed by the study tools and
// their model integrations.
//
// Key responsibilities:
//   - Context helpers that stamp request IDs, tool names, and provider names
//     for logging.
//   - Structured error markers plus the Wrap helper that translate failures
//     into consistent HTTP statuses (client error vs upstream failure).
//
// Use these helpers when wiring a new tool so error handling and
// observability stay uniform across the API and CLI.
package services
