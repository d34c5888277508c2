// Package classifier maps short free-text descriptions onto cloud service
// models (IaaS, PaaS, SaaS, FaaS) with the help of a remote language model.
//
// Classify validates the raw text, normalizes a copy for display, sends one
// prompt through a Completer and turns the reply into a Result. Reply parsing
// is a plain substring search in fixed priority order; confidence is a
// heuristic over the reply's shape, not a calibrated probability.
//
// Invalid input is the only failure returned as an error (*ValidationError,
// matching ErrValidation). Any remote problem yields a Result whose Category
// is Error, with zero confidence and zero scores.
package classifier
