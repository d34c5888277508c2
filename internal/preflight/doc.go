// Package preflight provides readiness checks for the remote model and the
// local directories nimbus writes to.
//
// The CLI "nimbus health" command runs RunAll and renders one status line per
// Result. Checks never return errors; failures are described in Result.Detail.
package preflight
