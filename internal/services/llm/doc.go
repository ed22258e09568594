// Package llm provides an OpenAI-compatible chat completion client used by
// the chat endpoint, the physics analyzer, and the study tools.
//
// # Requests
//
// Complete sends an arbitrary conversation and returns the answer text.
// CompleteJSON sends a system/user pair with response_format=json_object
// and temperature 0. HealthCheck verifies the key and model with a tiny JSON
// round trip.
//
// # Configuration
//
// Requires api_key; base_url defaults to the OpenAI endpoint and model to
// gpt-3.5-turbo. OpenRouter works by pointing base_url at its completions
// URL and setting referer/title.
//
// # Retry Behaviour
//
// The client retries on HTTP 408/429/5xx errors, network timeouts and empty
// content with exponential backoff (base 1s, max 10s, up to 5 attempts by
// default). Retry-After is honoured. Context cancellation aborts retries
// immediately. Final errors carry services.ErrUpstream or
// services.ErrTimeout.
//
// # Response Tolerance
//
// Answers are taken from message.content, then delta.content, then the
// legacy text field, then function/tool call arguments. DecodeLLMJSON
// strips code fences and surrounding prose before decoding.
package llm
