// Package llm provides chat completion clients for AI-assisted product
// selection. Providers speaking the OpenAI chat completions protocol
// (OpenAI and Qwen via DashScope) share one client; a Strategy tries the
// configured providers in priority order with rate limiting, retries and
// response caching.
package llm
