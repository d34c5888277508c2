// Package main hosts the nimbus CLI entrypoint and command graph.
//
// The Cobra command tree builds the classifier from the loaded configuration
// once per invocation and exposes it through one-shot and interactive
// classification, the demo, labelled evaluation runs with their history, a
// health check and configuration scaffolding.
//
// Keep this package thin: behaviour belongs in internal packages and commands
// only parse flags, call them and render output.
package main
