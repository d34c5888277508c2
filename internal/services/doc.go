// Package services defines shared utilities consumed by the classifier and its
// external integrations.
//
// Key responsibilities:
//   - Context helpers that stamp correlation identifiers and the issuing
//     operation (classify, demo, interactive, eval) for logging.
//   - A home for remote service clients (see services/llm) so the classifier
//     depends on small interfaces instead of HTTP plumbing.
//
// Use these helpers when wiring new callers so log lines from one
// classification can be correlated end to end.
package services
