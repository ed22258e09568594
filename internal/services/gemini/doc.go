// Package gemini completes chat conversations with Google's Gemini models
// through the generative-ai-go SDK. It accepts the same llm.Message and
// llm.CompletionOptions as the OpenAI-compatible client so both can sit in
// the chat provider registry.
//
// A fresh SDK client is dialed per request and closed afterwards. Failed
// calls are retried with a linear backoff (300ms, 600ms, ...) that honours
// context cancellation.
package gemini
