// Package llm provides a client for OpenAI-compatible chat completion
// endpoints. It is used for block title generation, transcript chat, and
// subtitle translation. Requests are retried with exponential backoff on
// transient failures.
package llm
