// Package llm provides a client for OpenRouter-style chat completion APIs.
//
// The classifier uses it to send one prompt per classification and read back
// the plain-text reply found in choices[0].message.content.
//
// # Configuration
//
// Requires api_key and model; base_url defaults to the OpenRouter endpoint.
// max_tokens and temperature are forwarded on every request. Optional referer
// and title populate the OpenRouter attribution headers. timeout_seconds of
// zero leaves the HTTP client without a deadline.
//
// # Entry Points
//
// NewClient: construct client from Config.
// Client.Complete: send a single user prompt, receive the reply text.
// Client.HealthCheck: verify API key and model availability.
//
// # Failures
//
// Every request is attempted exactly once. A missing key yields
// ErrMissingAPIKey without touching the network, any status other than 200
// yields *StatusError, and a reply without choices yields ErrEmptyChoices.
// Callers decide how to degrade.
package llm
