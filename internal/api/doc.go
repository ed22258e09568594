// Package api serves the study tools over HTTP.
//
// # Routes
//
// /api/chat keeps the plain-text contract of the original chat endpoint: the
// body is {prompt, messages, stream, provider} and the answer is the raw
// completion. Every other route speaks JSON and reports failures as
// {"error": "..."}.
//
// /api/explain runs the physics analyzer; /api/segment resolves caller text
// without a model call; /api/equations lists the equation dictionary. The
// /api/tools/* routes expose the studio tools. /healthz answers "ok";
// /healthz?deep=1 pings every provider and answers 503 when one fails.
//
// # Request IDs
//
// Each request carries an ID taken from X-Request-ID or generated as a UUID.
// It is echoed in the response header and attached to the request context so
// log lines from the chat, analyzer, and studio layers can be correlated.
package api
