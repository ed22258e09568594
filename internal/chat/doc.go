// Package chat implements the shared completion contract every study tool
// goes through: a request carries either a bare prompt or a full message
// list, and is answered by one of the configured providers.
//
// A bare prompt is sent behind the default study-partner system prompt.
// Providers are looked up by name in a Registry; the empty name selects the
// registry's default. Registry.Check pings each provider with a small JSON
// request.
package chat
